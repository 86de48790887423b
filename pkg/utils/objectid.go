package utils

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsValidObjectID 只做语法校验(24位十六进制), 是否存在由调用方再查询
func IsValidObjectID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func NewObjectID() string {
	return primitive.NewObjectID().Hex()
}

// AllValidObjectID reports whether every id is well formed.
func AllValidObjectID(ids ...string) bool {
	for _, id := range ids {
		if !IsValidObjectID(id) {
			return false
		}
	}
	return true
}
