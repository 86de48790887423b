package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"VideoTube.com/cmd/api/mw"
	"VideoTube.com/cmd/dal"
	"VideoTube.com/config"
	"VideoTube.com/config/jaeger"
	"VideoTube.com/config/pprof"
	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"VideoTube.com/pkg/metrics"
	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/security"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network/standard"
	"github.com/hertz-contrib/cors"
)

func Init(ctx context.Context, cfg *config.Config) (*deps.Deps, []io.Closer, error) {
	var closers []io.Closer

	if cfg.Jaeger.Enabled {
		closer, err := jaeger.Init(jaeger.Options{
			ServiceName: cfg.Jaeger.ServiceName,
			AgentAddr:   cfg.Jaeger.AgentAddr,
			SampleRate:  cfg.Jaeger.SampleRate,
		})
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, closer)
	}

	st, err := dal.Init(cfg)
	if err != nil {
		return nil, closers, err
	}

	var media oss.MediaStore
	if cfg.Minio.Enabled {
		if media, err = oss.NewMinioStore(ctx, oss.MinioOptions{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
			Bucket:    cfg.Minio.Bucket,
			PublicURL: cfg.Minio.PublicURL,
		}); err != nil {
			return nil, closers, err
		}
	} else {
		hlog.Warn("minio disabled, uploads are kept in memory")
		media = oss.NewLocalStore(cfg.Server.MediaPublicURL)
	}

	var events mq.Publisher = mq.Nop{}
	if cfg.RabbitMq.Enabled {
		producer, err := mq.NewProducer(cfg.RabbitMq.URL())
		if err != nil {
			return nil, closers, err
		}
		events = producer
		closers = append(closers, producer)
	}

	return &deps.Deps{
		Store:  st,
		Media:  media,
		Events: events,
		Prober: utils.FFProbe{},
	}, closers, nil
}

func authOptions(cfg *config.Config) (mw.AuthOptions, error) {
	timeout, err := time.ParseDuration(cfg.Jwt.Timeout)
	if err != nil {
		return mw.AuthOptions{}, fmt.Errorf("jwt.timeout: %w", err)
	}
	maxRefresh, err := time.ParseDuration(cfg.Jwt.MaxRefresh)
	if err != nil {
		return mw.AuthOptions{}, fmt.Errorf("jwt.max_refresh: %w", err)
	}
	return mw.AuthOptions{Secret: cfg.Jwt.Secret, Timeout: timeout, MaxRefresh: maxRefresh}, nil
}

// tlsOptions returns the server options enabling HTTPS, or none when no
// certificate is configured.
func tlsOptions(cfg *config.Config) ([]hertzconfig.Option, error) {
	opts := security.TLSOptions{
		CertFile: cfg.Server.TLSCert,
		KeyFile:  cfg.Server.TLSKey,
		CAFile:   cfg.Server.TLSClientCA,
	}
	if !opts.Enabled() {
		return nil, nil
	}
	tlsCfg, err := security.ServerTLS(opts)
	if err != nil {
		return nil, err
	}
	if notAfter, err := security.NotAfter(tlsCfg); err == nil && time.Until(notAfter) < 30*24*time.Hour {
		hlog.Warnf("server certificate expires at %s", notAfter.Format(time.RFC3339))
	}
	// netpoll 不支持 TLS, 需要切换到标准库传输层
	return []hertzconfig.Option{server.WithTLS(tlsCfg), server.WithTransport(standard.NewTransporter)}, nil
}

func newServer(cfg *config.Config, opts ...hertzconfig.Option) *server.Hertz {
	r := server.New(append([]hertzconfig.Option{
		server.WithHostPorts(cfg.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(cfg.Server.MaxBodyMB * 1024 * 1024),
	}, opts...)...)

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			errno.SendResponse(c, errno.ServiceErr.WithMessage("Internal server error"), nil)
		})))
	r.Use(metrics.Middleware(), mw.Tracing())
	return r
}

func main() {
	ctx := context.Background()
	cfg := config.Init()
	if cfg.Server.PprofAddr != "" {
		pprof.Load(cfg.Server.PprofAddr)
	}

	d, closers, err := Init(ctx, cfg)
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	if err != nil {
		hlog.Fatalf("init dependencies: %v", err)
	}

	if err = mw.InitSentinel(map[string]float64{
		mw.PublishResource:  cfg.Sentinel.PublishQPS,
		mw.CommentResource:  cfg.Sentinel.CommentQPS,
		mw.RegisterResource: cfg.Sentinel.RegisterQPS,
	}); err != nil {
		hlog.Fatalf("init sentinel: %v", err)
	}

	authOpts, err := authOptions(cfg)
	if err != nil {
		hlog.Fatalf("%v", err)
	}
	auth, err := mw.NewAuth(d, authOpts)
	if err != nil {
		hlog.Fatalf("init jwt: %v", err)
	}

	tlsOpts, err := tlsOptions(cfg)
	if err != nil {
		hlog.Fatalf("init tls: %v", err)
	}
	r := newServer(cfg, tlsOpts...)
	// 注册路由
	register(r, d, auth, cfg.Server.UploadDir)
	r.Spin()
}
