package mw

import (
	"context"

	"VidTube.com/cmd/api/pack"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/metrics"
	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/pkg/errors"
)

const FlowResource = "vidtube-api"

// InitFlowControl 整个API共享一个QPS阈值
func InitFlowControl(qps float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return errors.Wrap(err, "init sentinel")
	}
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               FlowResource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		},
	})
	return errors.Wrap(err, "load flow rules")
}

func FlowControl() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		e, b := sentinel.Entry(FlowResource, sentinel.WithTrafficType(base.Inbound))
		if b != nil {
			metrics.FlowBlocked.WithLabelValues(FlowResource).Inc()
			pack.SendError(ctx, c, errno.TooManyRequestsErr)
			return
		}
		defer e.Exit()
		c.Next(ctx)
	}
}
