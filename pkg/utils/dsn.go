package utils

import (
	"strings"
)

// GetMysqlDsn 生成数据库的dsn
func GetMysqlDsn(username, password, addr, database, charset string) string {
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn := strings.Join([]string{username, ":", password, "@tcp(", addr, ")/",
		database, "?charset=" + charset + "&parseTime=true&loc=Local"}, "") //nolint:lll
	return dsn
}
