package service

import (
	"errors"
	"strings"

	"VideoTube.com/cmd/model"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
	"VideoTube.com/pkg/utils"
)

var errBadCredentials = errno.TokenInvalidErr.WithMessage("Invalid user credentials")

// Login checks the password of the user named by username or email.
func (service *UserService) Login(account, password string) (pipeline.Doc, error) {
	account = strings.ToLower(strings.TrimSpace(account))
	if account == "" || password == "" {
		return nil, errno.MalformedInputErr.WithMessage("Username or email and password are required")
	}
	doc, err := service.d.Store.FindOne(service.ctx, model.Users,
		pipeline.Or(pipeline.Eq("username", account), pipeline.Eq("email", account)))
	if errors.Is(err, store.ErrNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, deps.StoreErr(service.ctx, "logging in", err)
	}
	hashed, _ := doc["password"].(string)
	if !utils.VerifyPassword(password, hashed) {
		return nil, errBadCredentials
	}
	return publicUser(doc), nil
}

// Me returns the current user.
func (service *UserService) Me(userID string) (pipeline.Doc, error) {
	if err := deps.ValidID(userID, "user"); err != nil {
		return nil, err
	}
	doc, err := service.d.Find(service.ctx, model.Users, userID, "user")
	if err != nil {
		return nil, err
	}
	return publicUser(doc), nil
}
