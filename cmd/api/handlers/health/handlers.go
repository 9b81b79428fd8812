package handlers

import (
	"context"
	"time"

	"VidTube.com/cmd/api/pack"
	"VidTube.com/pkg/errno"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Pinger 数据库连通性
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	db      Pinger
	started time.Time
}

func New(db Pinger) *Handler {
	return &Handler{db: db, started: time.Now()}
}

type Status struct {
	Status        string  `json:"status"`
	Uptime        float64 `json:"uptime"`
	Database      string  `json:"database"`
	MemoryPercent float64 `json:"memoryUsedPercent"`
	CPUPercent    float64 `json:"cpuPercent"`
}

// Check 主机指标取不到时只记录日志 数据库不可用时返回500
func (h *Handler) Check(ctx context.Context, c *app.RequestContext) {
	status := Status{
		Status:   "OK",
		Uptime:   time.Since(h.started).Seconds(),
		Database: "up",
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		status.MemoryPercent = vm.UsedPercent
	} else {
		hlog.CtxWarnf(ctx, "read memory stats failed: %v", err)
	}
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	} else if err != nil {
		hlog.CtxWarnf(ctx, "read cpu stats failed: %v", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.db.Ping(pingCtx); err != nil {
		pack.SendError(ctx, c, errno.ServiceErr.WithMessage("database is unreachable: "+err.Error()))
		return
	}
	pack.SendResponse(c, status, "Health check passed")
}
