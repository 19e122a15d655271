package health

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"kone-backend/internal/cache"
)

// StalenessSource reports whether the live change channel is down.
type StalenessSource interface {
	Stale() bool
}

type HealthChecker struct {
	db       *pgxpool.Pool // nil in simulation mode
	realtime StalenessSource
}

type HealthStatus struct {
	Status   string         `json:"status"`
	Database DatabaseHealth `json:"database"`
	Cache    string         `json:"cache"`
	Realtime string         `json:"realtime"`
}

type DatabaseHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// SystemHealth is the detailed probe for the ops view.
type SystemHealth struct {
	HealthStatus
	CPUPercent  float64 `json:"cpu_percent"`
	MemPercent  float64 `json:"mem_percent"`
	MemUsed     string  `json:"mem_used"`
	MemTotal    string  `json:"mem_total"`
	DiskPercent float64 `json:"disk_percent"`
	DiskUsed    string  `json:"disk_used"`
	DiskTotal   string  `json:"disk_total"`
}

func NewHealthChecker(db *pgxpool.Pool, realtime StalenessSource) *HealthChecker {
	return &HealthChecker{db: db, realtime: realtime}
}

// CheckBasic reports readiness. A missing database is simulation mode, not
// an outage; only a configured-but-unreachable database fails the probe.
func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()

	status := "healthy"
	if dbHealth.Status == "unhealthy" {
		status = "unhealthy"
	}

	cacheStatus := "disabled"
	if cache.IsHealthy() {
		cacheStatus = "healthy"
	}

	realtimeStatus := "disabled"
	if h.realtime != nil {
		realtimeStatus = "connected"
		if h.realtime.Stale() {
			realtimeStatus = "stale"
		}
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
		Cache:    cacheStatus,
		Realtime: realtimeStatus,
	}
}

// CheckDetailed adds host resource usage to the readiness picture.
func (h *HealthChecker) CheckDetailed() SystemHealth {
	out := SystemHealth{HealthStatus: h.CheckBasic()}

	if cpuPercents, err := cpu.Percent(0, false); err == nil && len(cpuPercents) > 0 {
		out.CPUPercent = cpuPercents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		out.MemPercent = memStats.UsedPercent
		out.MemUsed = formatBytes(memStats.Used)
		out.MemTotal = formatBytes(memStats.Total)
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		out.DiskPercent = diskStats.UsedPercent
		out.DiskUsed = formatBytes(diskStats.Used)
		out.DiskTotal = formatBytes(diskStats.Total)
	}
	return out
}

func (h *HealthChecker) checkDatabase() DatabaseHealth {
	if h.db == nil {
		return DatabaseHealth{Status: "simulation"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return DatabaseHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
