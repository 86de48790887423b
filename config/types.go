package config

type Config struct {
	Server   server   `yaml:"server" mapstructure:"server"`
	Store    storeCfg `yaml:"store" mapstructure:"store"`
	Mysql    mysql    `yaml:"mysql" mapstructure:"mysql"`
	Minio    minio    `yaml:"minio" mapstructure:"minio"`
	RabbitMq rabbitmq `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jwt      jwt      `yaml:"jwt" mapstructure:"jwt"`
	Jaeger   jaeger   `yaml:"jaeger" mapstructure:"jaeger"`
	Sentinel sentinel `yaml:"sentinel" mapstructure:"sentinel"`
}

type server struct {
	Addr           string   `yaml:"addr" mapstructure:"addr"`
	MaxBodyMB      int      `yaml:"max_body_mb" mapstructure:"max_body_mb"`
	AllowOrigins   []string `yaml:"allow_origins" mapstructure:"allow_origins"`
	UploadDir      string   `yaml:"upload_dir" mapstructure:"upload_dir"`
	PprofAddr      string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
	MediaPublicURL string   `yaml:"media_public_url" mapstructure:"media_public_url"`
	TLSCert        string   `yaml:"tls_cert" mapstructure:"tls_cert"`
	TLSKey         string   `yaml:"tls_key" mapstructure:"tls_key"`
	TLSClientCA    string   `yaml:"tls_client_ca" mapstructure:"tls_client_ca"`
}

type storeCfg struct {
	// mysql | memory
	Driver string `yaml:"driver" mapstructure:"driver"`
}

type mysql struct {
	Addr         string `yaml:"addr" mapstructure:"addr"`
	Database     string `yaml:"database" mapstructure:"database"`
	Username     string `yaml:"username" mapstructure:"username"`
	Password     string `yaml:"password" mapstructure:"password"`
	Charset      string `yaml:"charset" mapstructure:"charset"`
	MaxOpenConns int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate" mapstructure:"auto_migrate"`
}

type minio struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint  string `yaml:"endpoint" mapstructure:"endpoint"`
	AccessKey string `yaml:"access_key" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key" mapstructure:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl" mapstructure:"use_ssl"`
	Bucket    string `yaml:"bucket" mapstructure:"bucket"`
	PublicURL string `yaml:"public_url" mapstructure:"public_url"`
}

type rabbitmq struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	Prefetch int    `yaml:"prefetch" mapstructure:"prefetch"`

	// consumer 进程暴露 /metrics 的地址
	MetricsAddr string `yaml:"metrics_addr" mapstructure:"metrics_addr"`
}

type jwt struct {
	Secret     string `yaml:"secret" mapstructure:"secret"`
	Timeout    string `yaml:"timeout" mapstructure:"timeout"`
	MaxRefresh string `yaml:"max_refresh" mapstructure:"max_refresh"`
}

type jaeger struct {
	Enabled     bool    `yaml:"enabled" mapstructure:"enabled"`
	ServiceName string  `yaml:"service_name" mapstructure:"service_name"`
	AgentAddr   string  `yaml:"agent_addr" mapstructure:"agent_addr"`
	SampleRate  float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

type sentinel struct {
	// 每秒允许的请求数, 0 表示不限流
	PublishQPS  float64 `yaml:"publish_qps" mapstructure:"publish_qps"`
	CommentQPS  float64 `yaml:"comment_qps" mapstructure:"comment_qps"`
	RegisterQPS float64 `yaml:"register_qps" mapstructure:"register_qps"`
}

// URL builds the amqp url.
func (r rabbitmq) URL() string {
	return "amqp://" + r.Username + ":" + r.Password + "@" + r.Addr + "/"
}
