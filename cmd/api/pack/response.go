package pack

import (
	"context"
	"fmt"

	"VidTube.com/config"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Response struct {
	StatusCode int64       `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

type ErrorResponse struct {
	StatusCode int64    `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	Success    bool     `json:"success"`
	Stack      string   `json:"stack,omitempty"`
}

// SendResponse 200 成功响应
func SendResponse(c *app.RequestContext, data interface{}, message string) {
	send(c, errno.SuccessCode, data, message)
}

// SendCreated 201 成功响应
func SendCreated(c *app.RequestContext, data interface{}, message string) {
	send(c, errno.CreatedCode, data, message)
}

func send(c *app.RequestContext, code int64, data interface{}, message string) {
	c.JSON(int(code), Response{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// SendError 统一错误出口 生产环境隐藏5xx细节
func SendError(ctx context.Context, c *app.RequestContext, err error) {
	Err := errno.ConvertErr(err)
	resp := ErrorResponse{
		StatusCode: Err.ErrCode,
		Message:    Err.ErrMsg,
		Errors:     []string{},
		Success:    false,
	}
	if errno.IsServerError(err) {
		hlog.CtxErrorf(ctx, "%s %s failed: %+v", c.Method(), c.Path(), err)
	}
	if config.IsDevelopment() {
		resp.Stack = fmt.Sprintf("%+v", err)
	} else if Err.ErrCode >= errno.ServiceErrCode {
		resp.Message = "Internal Server Error"
	}
	status := Err.StatusCode()
	if status < 400 || status > 599 {
		status = consts.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, resp)
}
