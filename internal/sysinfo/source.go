package sysinfo

import (
	"context"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"
)

// Source is the set of OS queries a snapshot is built from.
type Source interface {
	HostInfo(ctx context.Context) (*host.InfoStat, error)
	BootTime(ctx context.Context) (uint64, error)
	CPUCounts(ctx context.Context, logical bool) (int, error)
	CPUInfo(ctx context.Context) ([]cpu.InfoStat, error)
	CPUFreq(ctx context.Context) (Frequency, error)
	KernelVersion(ctx context.Context) (string, error)
	CPUPercent(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error)
	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error)
	Partitions(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	Usage(ctx context.Context, path string) (*disk.UsageStat, error)
	DiskIOCounters(ctx context.Context) (map[string]disk.IOCountersStat, error)
	Interfaces(ctx context.Context) (psnet.InterfaceStatList, error)
	NetIOCounters(ctx context.Context, pernic bool) ([]psnet.IOCountersStat, error)
}

// System queries the local host through gopsutil.
type System struct{}

var _ Source = System{}

// HostInfo returns host identity. On Linux the platform is replaced by the
// os-release PRETTY_NAME when one is present.
func (System) HostInfo(ctx context.Context) (*host.InfoStat, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}
	if runtime.GOOS == "linux" {
		if prettyName := readOSReleasePrettyName(); prettyName != "" {
			info.Platform = prettyName
			info.PlatformVersion = ""
		}
	}
	return info, nil
}

func (System) BootTime(ctx context.Context) (uint64, error) {
	return host.BootTimeWithContext(ctx)
}

func (System) CPUCounts(ctx context.Context, logical bool) (int, error) {
	return cpu.CountsWithContext(ctx, logical)
}

func (System) CPUInfo(ctx context.Context) ([]cpu.InfoStat, error) {
	return cpu.InfoWithContext(ctx)
}

// CPUFreq reads cpufreq on Linux. Elsewhere gopsutil only knows the rated
// clock, which stands in for both current and max.
func (System) CPUFreq(ctx context.Context) (Frequency, error) {
	if runtime.GOOS == "linux" {
		return readFrequency(ctx)
	}
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil || len(infos) == 0 {
		return Frequency{}, err
	}
	return Frequency{Current: infos[0].Mhz, Max: infos[0].Mhz}, nil
}

func (System) KernelVersion(ctx context.Context) (string, error) {
	return kernelVersion()
}

func (System) CPUPercent(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error) {
	return cpu.PercentWithContext(ctx, interval, percpu)
}

func (System) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (System) SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error) {
	return mem.SwapMemoryWithContext(ctx)
}

func (System) Partitions(ctx context.Context, all bool) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, all)
}

func (System) Usage(ctx context.Context, path string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, path)
}

func (System) DiskIOCounters(ctx context.Context) (map[string]disk.IOCountersStat, error) {
	return disk.IOCountersWithContext(ctx)
}

func (System) Interfaces(ctx context.Context) (psnet.InterfaceStatList, error) {
	return psnet.InterfacesWithContext(ctx)
}

func (System) NetIOCounters(ctx context.Context, pernic bool) ([]psnet.IOCountersStat, error) {
	return psnet.IOCountersWithContext(ctx, pernic)
}

// readOSReleasePrettyName parses /etc/os-release for the PRETTY_NAME field.
func readOSReleasePrettyName() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "PRETTY_NAME=") {
			val := strings.TrimPrefix(line, "PRETTY_NAME=")
			val = strings.Trim(val, "\"")
			return val
		}
	}
	return ""
}
