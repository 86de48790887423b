package db

import (
	"time"

	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormopentracing "gorm.io/plugin/opentracing"
)

type Options struct {
	Addr         string
	Database     string
	Username     string
	Password     string
	Charset      string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

// Init init DB
func Init(opts Options) (*Store, error) {
	dsn := utils.GetMysqlDsn(opts.Username, opts.Password, opts.Addr, opts.Database, opts.Charset)
	DB, err := gorm.Open(mysql.Open(dsn),
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			TranslateError:         true,
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}
	if err = DB.Use(gormopentracing.New()); err != nil {
		return nil, errors.Wrap(err, "register tracing plugin")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if opts.AutoMigrate {
		if err = DB.AutoMigrate(Models()...); err != nil {
			return nil, errors.Wrap(err, "auto migrate")
		}
	}
	hlog.Infof("Connect MySQL Success: %s/%s", opts.Addr, opts.Database)
	return NewStore(DB), nil
}
