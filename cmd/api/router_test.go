package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"VideoTube.com/cmd/api/mw"
	"VideoTube.com/config"
	"VideoTube.com/pkg/deps/depstest"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/test/assert"
	"github.com/cloudwego/hertz/pkg/common/ut"
)

type envelope struct {
	Code    int64           `json:"code"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t *testing.T
	r *server.Hertz
}

func newTestServer(t *testing.T, env *depstest.Env) *testServer {
	cfg := &config.Config{}
	cfg.Server.MaxBodyMB = 16
	cfg.Server.AllowOrigins = []string{"http://localhost:3000"}
	auth, err := mw.NewAuth(env.Deps, mw.AuthOptions{Secret: "test-secret", Timeout: time.Hour})
	assert.Nil(t, err)
	r := newServer(cfg)
	register(r, env.Deps, auth, t.TempDir())
	return &testServer{t: t, r: r}
}

func (s *testServer) do(method, url, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var payload []byte
	var headers []ut.Header
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		assert.Nil(s.t, err)
		headers = append(headers, ut.Header{Key: "Content-Type", Value: "application/json"})
	}
	if token != "" {
		headers = append(headers, ut.Header{Key: "Authorization", Value: "Bearer " + token})
	}
	w := ut.PerformRequest(s.r.Engine, method, url, &ut.Body{Body: bytes.NewReader(payload), Len: len(payload)}, headers...)
	resp := w.Result()
	var env envelope
	assert.Nil(s.t, json.Unmarshal(resp.Body(), &env))
	return resp.StatusCode(), env
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	status, env := s.do("POST", "/api/v1/users/register", "", map[string]string{
		"username": username, "email": username + "@example.com", "full_name": username, "password": password,
	})
	assert.DeepEqual(s.t, 200, status)
	var user struct {
		ID string `json:"id"`
	}
	assert.Nil(s.t, json.Unmarshal(env.Data, &user))

	status, env = s.do("POST", "/api/v1/users/login", "", map[string]string{"username": username, "password": password})
	assert.DeepEqual(s.t, 200, status)
	var data struct {
		AccessToken string `json:"access_token"`
	}
	assert.Nil(s.t, json.Unmarshal(env.Data, &data))
	assert.True(s.t, data.AccessToken != "")
	return data.AccessToken
}

type pageOf struct {
	TotalDocs int64 `json:"total_docs"`
	Docs      []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"docs"`
}

func TestLikeFlow(t *testing.T) {
	env := depstest.New(t)
	s := newTestServer(t, env)
	token := s.login("alice", "pa55word")
	owner := env.User("bob")
	vid := env.Video(owner, "published one", true)
	env.Video(owner, "hidden one", false)

	status, resp := s.do("GET", "/api/v1/videos", "", nil)
	assert.DeepEqual(t, 200, status)
	var listed pageOf
	assert.Nil(t, json.Unmarshal(resp.Data, &listed))
	assert.DeepEqual(t, int64(1), listed.TotalDocs)
	assert.DeepEqual(t, vid, listed.Docs[0].ID)

	toggle := func(want bool) {
		status, resp := s.do("POST", "/api/v1/likes/toggle/v/"+vid, token, nil)
		assert.DeepEqual(t, 200, status)
		var data map[string]bool
		assert.Nil(t, json.Unmarshal(resp.Data, &data))
		assert.DeepEqual(t, want, data["is_liked"])
	}
	liked := func() pageOf {
		status, resp := s.do("GET", "/api/v1/likes/videos", token, nil)
		assert.DeepEqual(t, 200, status)
		var page pageOf
		assert.Nil(t, json.Unmarshal(resp.Data, &page))
		return page
	}

	toggle(true)
	page := liked()
	assert.DeepEqual(t, 1, len(page.Docs))
	assert.DeepEqual(t, "published one", page.Docs[0].Title)

	toggle(false)
	assert.DeepEqual(t, 0, len(liked().Docs))
}

func TestErrorEnvelopes(t *testing.T) {
	env := depstest.New(t)
	s := newTestServer(t, env)
	token := s.login("carol", "secret")

	status, resp := s.do("POST", "/api/v1/likes/toggle/v/64b7f2a1c3d4e5f601234567", "", nil)
	assert.DeepEqual(t, 401, status)
	assert.False(t, resp.Success)

	status, resp = s.do("GET", "/api/v1/videos/not-an-id", "", nil)
	assert.DeepEqual(t, 400, status)
	assert.DeepEqual(t, "Invalid video id", resp.Message)
	assert.DeepEqual(t, "", string(bytes.TrimSpace(resp.Data)))

	status, _ = s.do("GET", "/api/v1/videos/64b7f2a1c3d4e5f601234567", token, nil)
	assert.DeepEqual(t, 404, status)

	status, resp = s.do("GET", "/api/v1/dashboard/stats", token, nil)
	assert.DeepEqual(t, 200, status)
	assert.True(t, resp.Success)

	status, resp = s.do("POST", "/api/v1/users/login", "", map[string]string{"username": "carol", "password": "nope"})
	assert.DeepEqual(t, 401, status)
	assert.DeepEqual(t, "Invalid user credentials", resp.Message)

	status, resp = s.do("GET", "/healthcheck", "", nil)
	assert.DeepEqual(t, 200, status)
	assert.True(t, resp.Success)
}

func TestTLSOptions(t *testing.T) {
	cfg := &config.Config{}
	opts, err := tlsOptions(cfg)
	assert.Nil(t, err)
	assert.DeepEqual(t, 0, len(opts))

	cfg.Server.TLSCert = "missing.pem"
	cfg.Server.TLSKey = "missing.key"
	_, err = tlsOptions(cfg)
	assert.NotNil(t, err)
}
