// Package deps carries the process-wide handles every service works with.
package deps

import (
	"context"

	"VideoTube.com/pkg/mq"
	"VideoTube.com/pkg/oss"
	"VideoTube.com/pkg/store"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type Deps struct {
	Store  store.Store
	Media  oss.MediaStore
	Events mq.Publisher
	Prober utils.Prober
}

// Publish sends an interaction event. Delivery failures are logged and never
// fail the request that produced the event.
func (d *Deps) Publish(ctx context.Context, e *mq.Event) {
	if d.Events == nil {
		return
	}
	if err := d.Events.Publish(ctx, e); err != nil {
		hlog.CtxWarnf(ctx, "publish %s event failed: %v", e.Type, err)
	}
}
