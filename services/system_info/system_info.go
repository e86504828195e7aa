package systeminfo

import (
	"math"
	"runtime"
	"runtime/debug"
	"time"

	dtos "github.com/Open-Source-Life/AxolotlIndex/DTOs"
	"github.com/Open-Source-Life/AxolotlIndex/config"
	"github.com/Open-Source-Life/AxolotlIndex/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	unknown    = "Unknown"
	timeLayout = "2006-01-02 15:04:05 MST"
)

// Collector reports host and process diagnostics. It holds no state besides
// its start time and the static runtime settings.
type Collector struct {
	cfg     *config.Config
	started time.Time
}

func NewCollector(cfg *config.Config) *Collector {
	return &Collector{
		cfg:     cfg,
		started: time.Now(),
	}
}

func (c *Collector) Snapshot(dir string) dtos.SystemInfo {
	return dtos.SystemInfo{
		Server:  c.server(),
		Memory:  c.memory(),
		Disk:    diskUsage(dir),
		Runtime: c.runtimeConfig(),
	}
}

func (c *Collector) server() dtos.ServerInfo {
	now := time.Now()
	info := dtos.ServerInfo{
		GoVersion:       runtime.Version(),
		ServerSoftware:  "AxolotlIndex (fiber " + fiber.Version + ")",
		OperatingSystem: runtime.GOOS,
		Architecture:    runtime.GOARCH,
		Hostname:        unknown,
		ServerTime:      now.Format(timeLayout),
		Timezone:        now.Location().String(),
		Uptime:          now.Sub(c.started).Truncate(time.Second).String(),
	}

	hostInfo, err := host.Info()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read host info")
		return info
	}

	if hostInfo.Hostname != "" {
		info.Hostname = hostInfo.Hostname
	}
	if hostInfo.OS != "" {
		info.OperatingSystem = hostInfo.OS
		if hostInfo.KernelVersion != "" {
			info.OperatingSystem += " " + hostInfo.KernelVersion
		}
	}
	if hostInfo.KernelArch != "" {
		info.Architecture = hostInfo.KernelArch
	}

	return info
}

func (c *Collector) memory() dtos.MemoryInfo {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	info := dtos.MemoryInfo{
		MemoryLimit:     memoryLimit(),
		MemoryUsage:     utils.FormatUnsignedSize(stats.HeapAlloc),
		MemoryPeak:      utils.FormatUnsignedSize(stats.HeapSys),
		MemoryUsageReal: utils.FormatUnsignedSize(stats.Sys),
		SystemTotal:     unknown,
		SystemAvailable: unknown,
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read system memory")
		return info
	}

	info.SystemTotal = utils.FormatUnsignedSize(vm.Total)
	info.SystemAvailable = utils.FormatUnsignedSize(vm.Available)
	return info
}

// memoryLimit reports the Go soft memory limit without changing it.
func memoryLimit() string {
	limit := debug.SetMemoryLimit(-1)
	if limit == math.MaxInt64 {
		return "unlimited"
	}
	return utils.FormatFileSize(limit)
}

func diskUsage(dir string) dtos.DiskInfo {
	usage, err := disk.Usage(dir)
	if err != nil {
		log.Warn().Err(err).Str("path", dir).Msg("Failed to read disk usage")
		return dtos.DiskInfo{
			TotalSpace: unknown,
			FreeSpace:  unknown,
			UsedSpace:  unknown,
		}
	}

	percent := 0.0
	if usage.Total > 0 {
		used := usage.Total - usage.Free
		percent = math.Round(float64(used)/float64(usage.Total)*10000) / 100
	}

	return dtos.DiskInfo{
		TotalSpace:   utils.FormatUnsignedSize(usage.Total),
		FreeSpace:    utils.FormatUnsignedSize(usage.Free),
		UsedSpace:    utils.FormatUnsignedSize(usage.Total - usage.Free),
		UsagePercent: percent,
	}
}

func (c *Collector) runtimeConfig() dtos.RuntimeConfig {
	rc := dtos.RuntimeConfig{
		GoMaxProcs:   runtime.GOMAXPROCS(0),
		NumGoroutine: runtime.NumGoroutine(),
	}
	if c.cfg == nil {
		return rc
	}

	rc.ReadTimeout = c.cfg.ReadTimeout.String()
	rc.WriteTimeout = c.cfg.WriteTimeout.String()
	rc.IdleTimeout = c.cfg.IdleTimeout.String()
	rc.BodyLimit = utils.FormatFileSize(int64(c.cfg.BodyLimit))
	rc.RateLimit = c.cfg.RateLimit
	return rc
}
