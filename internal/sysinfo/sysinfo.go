// Package sysinfo collects a point-in-time snapshot of host metrics.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	psnet "github.com/shirou/gopsutil/v3/net"
)

const broadcastMAC = "ff:ff:ff:ff:ff:ff"

// Options tunes a collection.
type Options struct {
	// SampleInterval is the window per-core CPU utilization is measured over.
	// Zero compares against the previous call instead of blocking.
	SampleInterval time.Duration
	Log            zerolog.Logger
}

// Collect queries every metric category once and returns the snapshot.
// A partition whose usage query is denied is kept without usage; any other
// failed query aborts the collection.
func Collect(ctx context.Context, src Source, opts Options) (*Snapshot, error) {
	snap := &Snapshot{CapturedAt: time.Now()}

	infos, err := src.CPUInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying cpu info: %w", err)
	}

	if snap.Platform, err = collectPlatform(ctx, src, infos); err != nil {
		return nil, err
	}

	bt, err := src.BootTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying boot time: %w", err)
	}
	snap.BootTime = time.Unix(int64(bt), 0)

	if snap.CPU, err = collectCPU(ctx, src, opts.SampleInterval); err != nil {
		return nil, err
	}

	vm, err := src.VirtualMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying virtual memory: %w", err)
	}
	snap.Memory = MemoryInfo{
		Total:     vm.Total,
		Available: vm.Available,
		Used:      vm.Used,
		Percent:   vm.UsedPercent,
	}

	sw, err := src.SwapMemory(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying swap memory: %w", err)
	}
	snap.Swap = SwapInfo{
		Total:   sw.Total,
		Free:    sw.Free,
		Used:    sw.Used,
		Percent: sw.UsedPercent,
	}

	if snap.Partitions, err = collectPartitions(ctx, src, opts.Log); err != nil {
		return nil, err
	}

	counters, err := src.DiskIOCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying disk io counters: %w", err)
	}
	for _, c := range counters {
		snap.DiskIO.ReadBytes += c.ReadBytes
		snap.DiskIO.WriteBytes += c.WriteBytes
	}

	ifaces, err := src.Interfaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying network interfaces: %w", err)
	}
	snap.Interfaces = convertInterfaces(ifaces, opts.Log)

	netIO, err := src.NetIOCounters(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("querying network io counters: %w", err)
	}
	for _, c := range netIO {
		snap.NetIO.BytesSent += c.BytesSent
		snap.NetIO.BytesRecv += c.BytesRecv
	}

	opts.Log.Debug().
		Str("node", snap.Platform.Node).
		Int("partitions", len(snap.Partitions)).
		Int("interfaces", len(snap.Interfaces)).
		Msg("Snapshot collected")

	return snap, nil
}

func collectPlatform(ctx context.Context, src Source, infos []cpu.InfoStat) (PlatformInfo, error) {
	hi, err := src.HostInfo(ctx)
	if err != nil {
		return PlatformInfo{}, fmt.Errorf("querying host info: %w", err)
	}

	version, err := src.KernelVersion(ctx)
	if err != nil {
		return PlatformInfo{}, fmt.Errorf("querying kernel version: %w", err)
	}

	p := PlatformInfo{
		System:       systemName(hi.OS),
		Node:         hi.Hostname,
		Release:      hi.KernelVersion,
		Version:      version,
		Machine:      hi.KernelArch,
		Distribution: strings.TrimSpace(hi.Platform + " " + hi.PlatformVersion),
	}
	if len(infos) > 0 {
		p.Processor = infos[0].ModelName
	}
	return p, nil
}

// systemName renders the GOOS-style name the way uname prints it.
func systemName(goos string) string {
	switch goos {
	case "":
		return ""
	case "darwin":
		return "Darwin"
	case "freebsd":
		return "FreeBSD"
	case "openbsd":
		return "OpenBSD"
	case "netbsd":
		return "NetBSD"
	case "aix":
		return "AIX"
	default:
		return strings.ToUpper(goos[:1]) + goos[1:]
	}
}

func collectCPU(ctx context.Context, src Source, interval time.Duration) (CPUInfo, error) {
	var c CPUInfo
	var err error

	if c.PhysicalCores, err = src.CPUCounts(ctx, false); err != nil {
		return c, fmt.Errorf("querying physical cpu count: %w", err)
	}
	if c.LogicalCores, err = src.CPUCounts(ctx, true); err != nil {
		return c, fmt.Errorf("querying logical cpu count: %w", err)
	}
	freq, err := src.CPUFreq(ctx)
	if err != nil {
		return c, fmt.Errorf("querying cpu frequency: %w", err)
	}
	c.MaxMhz, c.MinMhz, c.CurrentMhz = freq.Max, freq.Min, freq.Current

	if c.PerCore, err = src.CPUPercent(ctx, interval, true); err != nil {
		return c, fmt.Errorf("querying per-core cpu usage: %w", err)
	}
	c.Total = mean(c.PerCore)
	return c, nil
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

func collectPartitions(ctx context.Context, src Source, log zerolog.Logger) ([]Partition, error) {
	stats, err := src.Partitions(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("querying disk partitions: %w", err)
	}

	parts := make([]Partition, 0, len(stats))
	for _, ps := range stats {
		part := Partition{
			Device:     ps.Device,
			Mountpoint: ps.Mountpoint,
			Fstype:     ps.Fstype,
		}

		usage, err := src.Usage(ctx, ps.Mountpoint)
		switch {
		case errors.Is(err, fs.ErrPermission):
			// e.g. a removable drive that is not ready
			log.Debug().Err(err).Str("mountpoint", ps.Mountpoint).Msg("Partition usage denied, skipping")
		case err != nil:
			return nil, fmt.Errorf("querying usage of %s: %w", ps.Mountpoint, err)
		default:
			part.Usage = &DiskUsage{
				Total:   usage.Total,
				Used:    usage.Used,
				Free:    usage.Free,
				Percent: usage.UsedPercent,
			}
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func convertInterfaces(list psnet.InterfaceStatList, log zerolog.Logger) []Interface {
	out := make([]Interface, 0, len(list))
	for _, is := range list {
		iface := Interface{Name: is.Name}
		canBroadcast := slices.Contains(is.Flags, "broadcast")

		for _, a := range is.Addrs {
			ip, ipNet, err := net.ParseCIDR(a.Addr)
			if err != nil {
				log.Debug().Err(err).Str("interface", is.Name).Str("addr", a.Addr).Msg("Unparseable address, skipping")
				continue
			}
			addr := Address{
				Address: ip.String(),
				Netmask: net.IP(ipNet.Mask).String(),
			}
			if ip.To4() != nil {
				addr.Family = FamilyIPv4
				if canBroadcast {
					addr.Broadcast = getBroadcastIP(ipNet).String()
				}
			} else {
				addr.Family = FamilyIPv6
			}
			iface.Addresses = append(iface.Addresses, addr)
		}

		if is.HardwareAddr != "" {
			mac := Address{Family: FamilyMAC, Address: is.HardwareAddr}
			if canBroadcast {
				mac.Broadcast = broadcastMAC
			}
			iface.Addresses = append(iface.Addresses, mac)
		}
		out = append(out, iface)
	}
	return out
}

func getBroadcastIP(n *net.IPNet) net.IP {
	ip := n.IP.To4()
	if ip == nil {
		return nil
	}
	mask := n.Mask
	if len(mask) == net.IPv6len {
		mask = mask[12:]
	}
	broadcastIP := make(net.IP, len(ip))
	for i := range ip {
		broadcastIP[i] = ip[i] | ^mask[i]
	}
	return broadcastIP
}
