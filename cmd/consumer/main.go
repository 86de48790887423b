package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"VideoTube.com/config"
	"VideoTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/adaptor"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	hlog.SetLevel(hlog.LevelInfo)
	cfg := config.Init()

	consumer, err := mq.NewConsumer(cfg.RabbitMq.URL(), cfg.RabbitMq.Prefetch)
	if err != nil {
		hlog.Fatalf("Failed to create consumer: %v", err)
	}
	defer consumer.Close()

	h := server.New(server.WithHostPorts(cfg.RabbitMq.MetricsAddr))
	h.GET("/metrics", adaptor.HertzHandler(promhttp.Handler()))
	go h.Spin()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	hlog.Info("Event consumer started successfully, waiting for messages...")
	if err := consumer.Consume(ctx, activityHandler{}); err != nil {
		hlog.Errorf("Event consumer stopped: %v", err)
	}
	_ = h.Shutdown(context.Background())
	hlog.Info("Event consumer stopped")
}
