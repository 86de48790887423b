package model

import (
	"time"

	"VideoTube.com/pkg/pipeline"
)

// 集合名, 同时也是表名
const (
	Users         = "users"
	Videos        = "videos"
	Comments      = "comments"
	Likes         = "likes"
	Subscriptions = "subscriptions"
	Tweets        = "tweets"
	Playlists     = "playlists"
)

// UniqueIndexes lists the unique keys besides id, per collection.
var UniqueIndexes = map[string][][]string{
	Users:         {{"username"}, {"email"}},
	Likes:         {{"liked_by", "target_kind", "target_id"}},
	Subscriptions: {{"subscriber", "channel"}},
}

// Document is a row type convertible to and from a pipeline document.
type Document interface {
	TableName() string
	ToDoc() pipeline.Doc
	FromDoc(d pipeline.Doc)
}

func str(d pipeline.Doc, k string) string {
	s, _ := d[k].(string)
	return s
}

func num(d pipeline.Doc, k string) float64 {
	switch v := d[k].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	}
	n, _ := pipeline.Int64(d[k])
	return float64(n)
}

func integer(d pipeline.Doc, k string) int64 {
	n, ok := pipeline.Int64(d[k])
	if !ok {
		if f, isFloat := d[k].(float64); isFloat {
			return int64(f)
		}
	}
	return n
}

func boolean(d pipeline.Doc, k string) bool {
	b, _ := d[k].(bool)
	return b
}

func stamp(d pipeline.Doc, k string) time.Time {
	switch t := d[k].(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	}
	return time.Time{}
}

func strs(d pipeline.Doc, k string) []string {
	items, _ := pipeline.Items(d[k])
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func anys(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
