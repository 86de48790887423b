// Package common holds what every api handler needs: the caller identity and
// the multipart upload plumbing.
package common

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/oss"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

// IdentityKey is where the auth middleware stores the caller's user id.
const IdentityKey = "user_id"

// ActorID returns the authenticated user id, or "" for anonymous requests.
func ActorID(c *app.RequestContext) string {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

// BindErr wraps a binding failure as malformed input.
func BindErr(err error) error {
	return errno.MalformedInputErr.WithMessage("Invalid request parameters").WithErrors(err.Error())
}

// Uploads saves multipart files into dir and removes them once the request is done.
type Uploads struct {
	dir   string
	paths []string
}

func NewUploads(dir string) *Uploads {
	return &Uploads{dir: dir}
}

// Save stores the file sent as field. A missing optional part gives nil.
func (u *Uploads) Save(ctx context.Context, c *app.RequestContext, field string) (*oss.LocalFile, error) {
	form, err := c.MultipartForm()
	if err != nil || len(form.File[field]) == 0 {
		return nil, nil
	}
	fh := form.File[field][0]
	if err = os.MkdirAll(u.dir, 0o755); err != nil {
		hlog.CtxErrorf(ctx, "create upload dir %s: %v", u.dir, err)
		return nil, errno.ServiceErr.WithMessage("Something went wrong while receiving the file")
	}
	dst := filepath.Join(u.dir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err = c.SaveUploadedFile(fh, dst); err != nil {
		hlog.CtxErrorf(ctx, "save upload %s: %v", field, err)
		return nil, errno.ServiceErr.WithMessage("Something went wrong while receiving the file")
	}
	u.paths = append(u.paths, dst)
	return &oss.LocalFile{Path: dst, ContentType: fh.Header.Get("Content-Type")}, nil
}

// Cleanup deletes the temporary files.
func (u *Uploads) Cleanup() {
	for _, p := range u.paths {
		_ = os.Remove(p)
	}
}
