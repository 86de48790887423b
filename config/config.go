package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo Config

var defaultPaths = []string{
	"./config",
	"../config",
	"../../config",
	".",
}

// AutomaticEnv 只对已知的 key 生效, 所以能被环境变量覆盖的 key 都需要一个默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8000")
	v.SetDefault("server.max_body_mb", 512)
	v.SetDefault("server.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.upload_dir", filepath.Join(os.TempDir(), "videotube-uploads"))
	v.SetDefault("store.driver", "mysql")
	v.SetDefault("mysql.addr", "127.0.0.1:3306")
	v.SetDefault("mysql.database", "videotube")
	v.SetDefault("mysql.username", "root")
	v.SetDefault("mysql.password", "")
	v.SetDefault("mysql.charset", "utf8mb4")
	v.SetDefault("mysql.max_open_conns", 50)
	v.SetDefault("mysql.max_idle_conns", 10)
	v.SetDefault("minio.endpoint", "localhost:9000")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "videotube")
	v.SetDefault("rabbitmq.addr", "localhost:5672")
	v.SetDefault("rabbitmq.username", "guest")
	v.SetDefault("rabbitmq.password", "guest")
	v.SetDefault("rabbitmq.prefetch", 10)
	v.SetDefault("rabbitmq.metrics_addr", "0.0.0.0:9101")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.timeout", "24h")
	v.SetDefault("jwt.max_refresh", "72h")
	v.SetDefault("jaeger.service_name", "videotube-api")
	v.SetDefault("jaeger.sample_rate", 1.0)
}

// Load reads config.yml from paths (or the default search paths) with
// VIDEOTUBE_ prefixed environment overrides.
// Viper对于大小写并不敏感, 所以 VIDEOTUBE_MINIO_ENDPOINT 会覆盖 minio.endpoint
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("config.yml")
	if len(paths) == 0 {
		paths = defaultPaths
	}
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	v.SetEnvPrefix("VIDEOTUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "config error")
		}
		logrus.Warnf("config file not found, using defaults and environment: %v", err)
	} else {
		logrus.Infof("Successfully read config file: %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	logrus.Infof("Config loaded - store: %s, MySQL: %s:%s@%s/%s",
		cfg.Store.Driver, cfg.Mysql.Username, "***", cfg.Mysql.Addr, cfg.Mysql.Database)
	return &cfg, nil
}

// Init loads the configuration into ConfigInfo and exits on failure.
func Init() *Config {
	cfg, err := Load()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	ConfigInfo = *cfg
	return cfg
}
