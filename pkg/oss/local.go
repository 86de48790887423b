package oss

import (
	"context"
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// LocalStore keeps uploaded files in memory. It backs the memory store driver
// and the tests.
type LocalStore struct {
	mu      sync.Mutex
	baseURL string
	objects map[string][]byte
}

func NewLocalStore(baseURL string) *LocalStore {
	return &LocalStore{baseURL: baseURL, objects: make(map[string][]byte)}
}

func (l *LocalStore) Upload(ctx context.Context, folder, filePath, contentType string) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Object{}, errors.Wrapf(err, "read %s", filePath)
	}
	key := objectKey(folder, filePath)
	l.mu.Lock()
	l.objects[key] = data
	l.mu.Unlock()
	return Object{URL: l.baseURL + "/" + key, Key: key}, nil
}

func (l *LocalStore) Remove(ctx context.Context, key string) error {
	l.mu.Lock()
	delete(l.objects, key)
	l.mu.Unlock()
	return nil
}

// Keys lists the stored object keys in order.
func (l *LocalStore) Keys() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make([]string, 0, len(l.objects))
	for k := range l.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
