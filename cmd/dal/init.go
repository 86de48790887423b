// Package dal opens the document store selected by configuration.
package dal

import (
	"fmt"

	"VideoTube.com/cmd/dal/db"
	"VideoTube.com/cmd/model"
	"VideoTube.com/config"
	"VideoTube.com/pkg/store"
	"VideoTube.com/pkg/store/memory"
)

// NewMemoryStore returns an empty in-memory store with the schema's unique
// indexes.
func NewMemoryStore() *memory.Store {
	opts := make([]memory.Option, 0, len(model.UniqueIndexes))
	for collection, indexes := range model.UniqueIndexes {
		for _, fields := range indexes {
			opts = append(opts, memory.WithUnique(collection, fields...))
		}
	}
	return memory.New(opts...)
}

func Init(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Driver {
	case "", "mysql":
		return db.Init(db.Options{
			Addr:         cfg.Mysql.Addr,
			Database:     cfg.Mysql.Database,
			Username:     cfg.Mysql.Username,
			Password:     cfg.Mysql.Password,
			Charset:      cfg.Mysql.Charset,
			MaxOpenConns: cfg.Mysql.MaxOpenConns,
			MaxIdleConns: cfg.Mysql.MaxIdleConns,
			AutoMigrate:  cfg.Mysql.AutoMigrate,
		})
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
