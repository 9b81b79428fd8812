package service

import (
	"context"

	"VidTube.com/pkg/mq"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// publish 事件发送失败不影响主流程
func publish(ctx context.Context, events EventPublisher, event *mq.InteractionEvent) {
	if events == nil {
		return
	}
	if err := events.Publish(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "publish %s event failed: %v", event.Type, err)
	}
}
