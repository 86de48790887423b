package mw

import (
	"context"

	"VideoTube.com/pkg/errno"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// 限流资源名
const (
	PublishResource  = "video_publish"
	CommentResource  = "comment_add"
	RegisterResource = "user_register"
)

// InitSentinel loads one QPS rule per resource. A zero limit leaves the
// resource unlimited.
func InitSentinel(limits map[string]float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return err
	}
	rules := make([]*flow.Rule, 0, len(limits))
	for resource, qps := range limits {
		if qps <= 0 {
			continue
		}
		rules = append(rules, &flow.Rule{
			Resource:               resource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		})
	}
	_, err := flow.LoadRules(rules)
	return err
}

// Limit rejects requests over the resource's flow rule.
func Limit(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blockErr := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blockErr != nil {
			hlog.CtxWarnf(ctx, "%s blocked: %v", resource, blockErr.BlockMsg())
			errno.SendResponse(c, errno.TooManyRequestsErr, nil)
			c.Abort()
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
