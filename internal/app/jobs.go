package app

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
)

// SystemStats is a resource usage sample of the host and this process.
type SystemStats struct {
	CPUPercent     float64   `json:"cpuPercent"`
	MemUsedMB      uint64    `json:"memUsedMb"`
	MemPercent     float64   `json:"memPercent"`
	ProcCPUPercent float64   `json:"procCpuPercent"`
	ProcRSSMB      uint64    `json:"procRssMb"`
	Goroutines     int       `json:"goroutines"`
	SampledAt      time.Time `json:"sampledAt"`
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, err := time.LoadLocation(a.appConfig.System.Location)
	if err != nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	a.SchedSystemMonitorTask()
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	_, err = a.sched.AddFunc("@daily", func() {
		a.SchedClearAuditLog(time.Now())
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SystemStats returns the latest sample taken by the monitor job.
func (a *Application) SystemStats() SystemStats {
	if s, ok := a.stats.Load().(SystemStats); ok {
		return s
	}
	return SystemStats{Goroutines: runtime.NumGoroutine()}
}

// SchedSystemMonitorTask samples host and process resource usage
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	s := SystemStats{Goroutines: runtime.NumGoroutine(), SampledAt: time.Now()}
	if cpuuse, err := cpu.Percent(0, false); err == nil && len(cpuuse) > 0 {
		s.CPUPercent = cpuuse[0]
	}
	if meminfo, err := mem.VirtualMemory(); err == nil {
		s.MemUsedMB = meminfo.Used / 1024 / 1024
		s.MemPercent = meminfo.UsedPercent
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil { //nolint:gosec // G115: PID is always within int32 range
		if cpuuse, err := p.CPUPercent(); err == nil {
			s.ProcCPUPercent = cpuuse
		}
		if meminfo, err := p.MemoryInfo(); err == nil {
			s.ProcRSSMB = meminfo.RSS / 1024 / 1024
		}
	}
	a.stats.Store(s)
}

// SchedClearAuditLog removes audit entries older than the retention period.
func (a *Application) SchedClearAuditLog(now time.Time) int64 {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()
	days := a.appConfig.System.AuditRetentionDays
	if days <= 0 {
		days = 365
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	n, err := a.repos.OprLogs.DeleteBefore(ctx, now.AddDate(0, 0, -days))
	if err != nil {
		zap.L().Error("clear audit log", zap.Error(err))
		return 0
	}
	if n > 0 {
		zap.L().Info("cleared audit log", zap.Int64("rows", n), zap.Int("retentionDays", days))
	}
	return n
}
