package handlers

import (
	"context"
	"time"

	"VideoTube.com/pkg/deps"
	"VideoTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/shirou/gopsutil/mem"
)

type Handler struct {
	d     *deps.Deps
	start time.Time
}

func New(d *deps.Deps) *Handler {
	return &Handler{d: d, start: time.Now()}
}

// HealthCheck 检查存储连通性并附带主机内存使用情况
func (h *Handler) HealthCheck(ctx context.Context, c *app.RequestContext) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.d.Store.Ping(pingCtx); err != nil {
		hlog.CtxErrorf(ctx, "healthcheck: store ping: %v", err)
		errno.SendResponse(c, errno.ServiceErr.WithMessage("Store is unreachable"), nil)
		return
	}

	status := map[string]interface{}{
		"status": "OK",
		"uptime": time.Since(h.start).Round(time.Second).String(),
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory_used_percent"] = vm.UsedPercent
	} else {
		hlog.CtxWarnf(ctx, "healthcheck: read memory stats: %v", err)
	}
	errno.SendResponse(c, nil, status)
}
