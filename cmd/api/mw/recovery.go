package mw

import (
	"context"
	"fmt"

	"VidTube.com/cmd/api/pack"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Recovery panic按500错误信封返回
func Recovery() app.HandlerFunc {
	return recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			pack.SendError(ctx, c, errno.ServiceErr.WithMessage(fmt.Sprintf("[Recovery] err=%v", err)))
		}))
}
