// Package report renders a sysinfo.Snapshot for humans and machines.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"toolbox/internal/sysinfo"
)

// Formats lists the names Render accepts.
var Formats = []string{"text", "yaml", "json"}

var units = []string{"", "K", "M", "G", "T", "P"}

// FormatBytes scales n into the largest unit that keeps it below 1024 and
// prints it with two decimals, e.g. 1253656 => "1.20MB". Values beyond the
// petabyte range stay in P.
func FormatBytes(n uint64) string {
	v := float64(n)
	for i, unit := range units {
		if v < 1024 || i == len(units)-1 {
			return fmt.Sprintf("%.2f%sB", v, unit)
		}
		v /= 1024
	}
	return "" // unreachable
}

// Render writes snap in the named format.
func Render(w io.Writer, format string, snap *sysinfo.Snapshot) error {
	switch format {
	case "", "text":
		return Text(w, snap)
	case "yaml":
		return YAML(w, snap)
	case "json":
		return JSON(w, snap)
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// YAML writes snap as a YAML document.
func YAML(w io.Writer, snap *sysinfo.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// JSON writes snap as indented JSON.
func JSON(w io.Writer, snap *sysinfo.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func banner(title string, width int) string {
	bar := strings.Repeat("=", width)
	return bar + " " + title + " " + bar
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

// Text writes the sectioned plain-text report.
func Text(w io.Writer, snap *sysinfo.Snapshot) error {
	b := bufio.NewWriter(w)
	p := func(format string, args ...any) {
		fmt.Fprintf(b, format+"\n", args...)
	}

	p("%s", banner("System Information", 40))
	p("System: %s", snap.Platform.System)
	p("Node Name: %s", snap.Platform.Node)
	p("Release: %s", snap.Platform.Release)
	p("Version: %s", snap.Platform.Version)
	p("Machine: %s", snap.Platform.Machine)
	p("Processor: %s", snap.Platform.Processor)

	p("%s", banner("Boot Time", 40))
	bt := snap.BootTime.Local()
	p("Boot Time: %d/%d/%d %d:%d:%d", bt.Year(), int(bt.Month()), bt.Day(), bt.Hour(), bt.Minute(), bt.Second())

	p("%s", banner("CPU Info", 40))
	p("Physical cores: %d", snap.CPU.PhysicalCores)
	p("Total cores: %d", snap.CPU.LogicalCores)
	p("Max Frequency: %.2fMhz", snap.CPU.MaxMhz)
	p("Min Frequency: %.2fMhz", snap.CPU.MinMhz)
	p("Current Frequency: %.2fMhz", snap.CPU.CurrentMhz)
	p("CPU Usage Per Core:")
	for i, pct := range snap.CPU.PerCore {
		p("Core %d: %.1f%%", i, pct)
	}
	p("Total CPU Usage: %.1f%%", snap.CPU.Total)

	p("%s", banner("Memory Information", 40))
	p("Total: %s", FormatBytes(snap.Memory.Total))
	p("Available: %s", FormatBytes(snap.Memory.Available))
	p("Used: %s", FormatBytes(snap.Memory.Used))
	p("Percentage: %.1f%%", snap.Memory.Percent)
	p("%s", banner("SWAP", 20))
	p("Total: %s", FormatBytes(snap.Swap.Total))
	p("Free: %s", FormatBytes(snap.Swap.Free))
	p("Used: %s", FormatBytes(snap.Swap.Used))
	p("Percentage: %.1f%%", snap.Swap.Percent)

	p("%s", banner("Disk Information", 40))
	p("Partitions and Usage:")
	for _, part := range snap.Partitions {
		p("=== Device: %s ===", part.Device)
		p("  Mountpoint: %s", part.Mountpoint)
		p("  File system type: %s", part.Fstype)
		if part.Usage == nil {
			continue
		}
		p("  Total Size: %s", FormatBytes(part.Usage.Total))
		p("  Used: %s", FormatBytes(part.Usage.Used))
		p("  Free: %s", FormatBytes(part.Usage.Free))
		p("  Percentage: %.1f%%", part.Usage.Percent)
	}
	p("Total read: %s", FormatBytes(snap.DiskIO.ReadBytes))
	p("Total write: %s", FormatBytes(snap.DiskIO.WriteBytes))

	p("%s", banner("Network Information", 40))
	for _, iface := range snap.Interfaces {
		for _, addr := range iface.Addresses {
			p("=== Interface: %s ===", iface.Name)
			switch addr.Family {
			case sysinfo.FamilyIPv4:
				p("  IP Address: %s", addr.Address)
				p("  Netmask: %s", orNone(addr.Netmask))
				p("  Broadcast IP: %s", orNone(addr.Broadcast))
			case sysinfo.FamilyIPv6:
				p("  IPv6 Address: %s", addr.Address)
				p("  Netmask: %s", orNone(addr.Netmask))
			case sysinfo.FamilyMAC:
				p("  MAC Address: %s", addr.Address)
				p("  Netmask: %s", orNone(addr.Netmask))
				p("  Broadcast MAC: %s", orNone(addr.Broadcast))
			}
		}
	}
	p("Total Bytes Sent: %s", FormatBytes(snap.NetIO.BytesSent))
	p("Total Bytes Received: %s", FormatBytes(snap.NetIO.BytesRecv))

	return b.Flush()
}
