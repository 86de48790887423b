package deps

import (
	"context"
	"errors"
	"strings"

	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/pipeline"
	"VideoTube.com/pkg/store"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// ValidID checks id syntax before any storage access.
func ValidID(id, what string) error {
	if !utils.IsValidObjectID(id) {
		return errno.MalformedInputErr.WithMessage("Invalid " + what + " id")
	}
	return nil
}

// StoreErr converts a storage failure into the response taxonomy.
func StoreErr(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	var e errno.ErrNo
	if errors.As(err, &e) {
		return e
	}
	if errors.Is(err, store.ErrNotFound) {
		return errno.NotFoundErr
	}
	hlog.CtxErrorf(ctx, "%s: %v", op, err)
	return errno.ServiceErr.WithMessage("Something went wrong while " + op)
}

// Find loads the document id of collection, or NotFound.
func (d *Deps) Find(ctx context.Context, collection, id, what string) (pipeline.Doc, error) {
	doc, err := d.Store.FindOne(ctx, collection, pipeline.Eq("id", id))
	if errors.Is(err, store.ErrNotFound) {
		return nil, errno.NotFoundErr.WithMessage(capitalize(what) + " not found")
	}
	if err != nil {
		return nil, StoreErr(ctx, "fetching the "+what, err)
	}
	return doc, nil
}

// MustExist is Find without the document.
func (d *Deps) MustExist(ctx context.Context, collection, id, what string) error {
	ok, err := d.Store.Exists(ctx, collection, pipeline.Eq("id", id))
	if err != nil {
		return StoreErr(ctx, "fetching the "+what, err)
	}
	if !ok {
		return errno.NotFoundErr.WithMessage(capitalize(what) + " not found")
	}
	return nil
}

// Owned loads the document and checks that actor owns it.
func (d *Deps) Owned(ctx context.Context, collection, id, actor, what string) (pipeline.Doc, error) {
	doc, err := d.Find(ctx, collection, id, what)
	if err != nil {
		return nil, err
	}
	if owner, _ := doc["owner"].(string); owner != actor {
		return nil, errno.UnauthorizedErr.WithMessage("You are not the owner of this " + what)
	}
	return doc, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
