// Package oss stores uploaded media files and hands back public URLs.
package oss

import (
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Object is one stored file. Key is what Remove needs later.
type Object struct {
	URL string
	Key string
}

// LocalFile is an upload saved to local disk, waiting to be stored.
type LocalFile struct {
	Path        string
	ContentType string
}

// MediaStore is the object storage behind video, thumbnail and avatar uploads.
type MediaStore interface {
	// Upload copies the local file at filePath into folder.
	Upload(ctx context.Context, folder, filePath, contentType string) (Object, error)
	Remove(ctx context.Context, key string) error
}

const (
	VideoFolder     = "video"
	ThumbnailFolder = "picture/thumbnail"
	AvatarFolder    = "picture/avatar"
)

// objectKey 生成对象名: folder/uuid.ext
func objectKey(folder, filePath string) string {
	ext := strings.ToLower(path.Ext(filePath))
	return folder + "/" + uuid.NewString() + ext
}
