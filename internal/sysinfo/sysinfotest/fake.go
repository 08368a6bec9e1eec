// Package sysinfotest provides a canned sysinfo.Source for tests.
package sysinfotest

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"

	"toolbox/internal/sysinfo"
)

// Fake answers every query from its fields. Errs maps a method name to the
// error that method returns; UsageErrs does the same per mountpoint.
// Like gopsutil on a cpufreq host, every entry of CPUs carries the max
// clock, while Freq holds the current, min and max figures.
type Fake struct {
	Host       host.InfoStat
	Kernel     string
	Boot       uint64
	Physical   int
	Logical    int
	CPUs       []cpu.InfoStat
	Freq       sysinfo.Frequency
	PerCore    []float64
	VM         mem.VirtualMemoryStat
	Swap       mem.SwapMemoryStat
	Parts      []disk.PartitionStat
	Usages     map[string]disk.UsageStat
	UsageErrs  map[string]error
	DiskIO     map[string]disk.IOCountersStat
	Ifaces     psnet.InterfaceStatList
	NetIO      []psnet.IOCountersStat
	Errs       map[string]error
	UsageCalls []string
	Intervals  []time.Duration

	mu sync.Mutex
}

// New returns a Fake describing a small single-disk Linux host.
func New() *Fake {
	return &Fake{
		Host: host.InfoStat{
			Hostname:      "kali",
			OS:            "linux",
			Platform:      "debian",
			KernelVersion: "5.9.0-kali1-amd64",
			KernelArch:    "x86_64",
		},
		Kernel:   "#1 SMP Debian 5.9.1-1kali2 (2020-10-29)",
		Boot:     1619303257,
		Physical: 1,
		Logical:  2,
		CPUs: []cpu.InfoStat{
			{CPU: 0, ModelName: "Test CPU @ 2.40GHz", Mhz: 2400},
			{CPU: 1, ModelName: "Test CPU @ 2.40GHz", Mhz: 2400},
		},
		Freq:     sysinfo.Frequency{Current: 1190.40, Min: 800, Max: 2400},
		PerCore: []float64{1.0, 12.0},
		VM: mem.VirtualMemoryStat{
			Total:       4133834752,
			Available:   3339268096,
			Used:        545693696,
			UsedPercent: 19.3,
		},
		Swap: mem.SwapMemoryStat{
			Total:       1022357504,
			Free:        1022357504,
			UsedPercent: 0,
		},
		Parts: []disk.PartitionStat{
			{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
		},
		Usages: map[string]disk.UsageStat{
			"/": {Path: "/", Total: 51561271296, Used: 13239123968, Free: 35681091584, UsedPercent: 27.1},
		},
		UsageErrs: map[string]error{},
		DiskIO: map[string]disk.IOCountersStat{
			"sda": {Name: "sda", ReadBytes: 345022464, WriteBytes: 20961280},
		},
		Ifaces: psnet.InterfaceStatList{
			{
				Name:  "lo",
				Flags: []string{"up", "loopback"},
				Addrs: psnet.InterfaceAddrList{{Addr: "127.0.0.1/8"}},
			},
			{
				Name:         "eth0",
				HardwareAddr: "08:00:27:15:3f:d8",
				Flags:        []string{"up", "broadcast", "multicast"},
				Addrs:        psnet.InterfaceAddrList{{Addr: "10.0.2.15/24"}, {Addr: "fe80::a00:27ff:fe15:3fd8/64"}},
			},
		},
		NetIO: []psnet.IOCountersStat{
			{Name: "all", BytesSent: 43766, BytesRecv: 43366},
		},
		Errs: map[string]error{},
	}
}

func (f *Fake) HostInfo(ctx context.Context) (*host.InfoStat, error) {
	if err := f.Errs["HostInfo"]; err != nil {
		return nil, err
	}
	h := f.Host
	return &h, nil
}

func (f *Fake) BootTime(ctx context.Context) (uint64, error) {
	return f.Boot, f.Errs["BootTime"]
}

func (f *Fake) CPUCounts(ctx context.Context, logical bool) (int, error) {
	if logical {
		return f.Logical, f.Errs["CPUCounts"]
	}
	return f.Physical, f.Errs["CPUCounts"]
}

func (f *Fake) CPUInfo(ctx context.Context) ([]cpu.InfoStat, error) {
	return f.CPUs, f.Errs["CPUInfo"]
}

func (f *Fake) CPUFreq(ctx context.Context) (sysinfo.Frequency, error) {
	return f.Freq, f.Errs["CPUFreq"]
}

func (f *Fake) KernelVersion(ctx context.Context) (string, error) {
	return f.Kernel, f.Errs["KernelVersion"]
}

func (f *Fake) CPUPercent(ctx context.Context, interval time.Duration, percpu bool) ([]float64, error) {
	f.mu.Lock()
	f.Intervals = append(f.Intervals, interval)
	f.mu.Unlock()
	if !percpu {
		var sum float64
		for _, p := range f.PerCore {
			sum += p
		}
		return []float64{sum / float64(len(f.PerCore))}, f.Errs["CPUPercent"]
	}
	return f.PerCore, f.Errs["CPUPercent"]
}

func (f *Fake) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	if err := f.Errs["VirtualMemory"]; err != nil {
		return nil, err
	}
	vm := f.VM
	return &vm, nil
}

func (f *Fake) SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error) {
	if err := f.Errs["SwapMemory"]; err != nil {
		return nil, err
	}
	sw := f.Swap
	return &sw, nil
}

func (f *Fake) Partitions(ctx context.Context, all bool) ([]disk.PartitionStat, error) {
	return f.Parts, f.Errs["Partitions"]
}

func (f *Fake) Usage(ctx context.Context, path string) (*disk.UsageStat, error) {
	f.mu.Lock()
	f.UsageCalls = append(f.UsageCalls, path)
	f.mu.Unlock()
	if err := f.UsageErrs[path]; err != nil {
		return nil, err
	}
	u := f.Usages[path]
	return &u, nil
}

func (f *Fake) DiskIOCounters(ctx context.Context) (map[string]disk.IOCountersStat, error) {
	return f.DiskIO, f.Errs["DiskIOCounters"]
}

func (f *Fake) Interfaces(ctx context.Context) (psnet.InterfaceStatList, error) {
	return f.Ifaces, f.Errs["Interfaces"]
}

func (f *Fake) NetIOCounters(ctx context.Context, pernic bool) ([]psnet.IOCountersStat, error) {
	return f.NetIO, f.Errs["NetIOCounters"]
}
