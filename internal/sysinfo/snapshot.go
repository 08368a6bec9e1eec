package sysinfo

import "time"

// Snapshot is a point-in-time, read-only view of host state.
type Snapshot struct {
	CapturedAt time.Time    `msgpack:"captured_at" json:"captured_at" yaml:"captured_at"`
	Platform   PlatformInfo `msgpack:"platform" json:"platform" yaml:"platform"`
	BootTime   time.Time    `msgpack:"boot_time" json:"boot_time" yaml:"boot_time"`
	CPU        CPUInfo      `msgpack:"cpu" json:"cpu" yaml:"cpu"`
	Memory     MemoryInfo   `msgpack:"memory" json:"memory" yaml:"memory"`
	Swap       SwapInfo     `msgpack:"swap" json:"swap" yaml:"swap"`
	Partitions []Partition  `msgpack:"partitions" json:"partitions" yaml:"partitions"`
	DiskIO     IOTotals     `msgpack:"disk_io" json:"disk_io" yaml:"disk_io"`
	Interfaces []Interface  `msgpack:"interfaces" json:"interfaces" yaml:"interfaces"`
	NetIO      NetIOTotals  `msgpack:"net_io" json:"net_io" yaml:"net_io"`
}

// PlatformInfo mirrors the fields of uname, plus the distribution name.
type PlatformInfo struct {
	System       string `msgpack:"system" json:"system" yaml:"system"`
	Node         string `msgpack:"node" json:"node" yaml:"node"`
	Release      string `msgpack:"release" json:"release" yaml:"release"`
	Version      string `msgpack:"version" json:"version" yaml:"version"`
	Machine      string `msgpack:"machine" json:"machine" yaml:"machine"`
	Processor    string `msgpack:"processor" json:"processor" yaml:"processor"`
	Distribution string `msgpack:"distribution,omitempty" json:"distribution,omitempty" yaml:"distribution,omitempty"`
}

// CPUInfo holds core counts, frequencies in MHz and utilization in percent.
type CPUInfo struct {
	PhysicalCores int       `msgpack:"physical_cores" json:"physical_cores" yaml:"physical_cores"`
	LogicalCores  int       `msgpack:"logical_cores" json:"logical_cores" yaml:"logical_cores"`
	MaxMhz        float64   `msgpack:"max_mhz" json:"max_mhz" yaml:"max_mhz"`
	MinMhz        float64   `msgpack:"min_mhz" json:"min_mhz" yaml:"min_mhz"`
	CurrentMhz    float64   `msgpack:"current_mhz" json:"current_mhz" yaml:"current_mhz"`
	PerCore       []float64 `msgpack:"per_core" json:"per_core" yaml:"per_core"`
	Total         float64   `msgpack:"total" json:"total" yaml:"total"`
}

// MemoryInfo is virtual memory in bytes.
type MemoryInfo struct {
	Total     uint64  `msgpack:"total" json:"total" yaml:"total"`
	Available uint64  `msgpack:"available" json:"available" yaml:"available"`
	Used      uint64  `msgpack:"used" json:"used" yaml:"used"`
	Percent   float64 `msgpack:"percent" json:"percent" yaml:"percent"`
}

// SwapInfo is swap memory in bytes.
type SwapInfo struct {
	Total   uint64  `msgpack:"total" json:"total" yaml:"total"`
	Free    uint64  `msgpack:"free" json:"free" yaml:"free"`
	Used    uint64  `msgpack:"used" json:"used" yaml:"used"`
	Percent float64 `msgpack:"percent" json:"percent" yaml:"percent"`
}

// Partition is a mounted volume. Usage is nil when the usage query was denied.
type Partition struct {
	Device     string     `msgpack:"device" json:"device" yaml:"device"`
	Mountpoint string     `msgpack:"mountpoint" json:"mountpoint" yaml:"mountpoint"`
	Fstype     string     `msgpack:"fstype" json:"fstype" yaml:"fstype"`
	Usage      *DiskUsage `msgpack:"usage,omitempty" json:"usage,omitempty" yaml:"usage,omitempty"`
}

// DiskUsage is the capacity of one partition in bytes.
type DiskUsage struct {
	Total   uint64  `msgpack:"total" json:"total" yaml:"total"`
	Used    uint64  `msgpack:"used" json:"used" yaml:"used"`
	Free    uint64  `msgpack:"free" json:"free" yaml:"free"`
	Percent float64 `msgpack:"percent" json:"percent" yaml:"percent"`
}

// IOTotals aggregates disk I/O since boot.
type IOTotals struct {
	ReadBytes  uint64 `msgpack:"read_bytes" json:"read_bytes" yaml:"read_bytes"`
	WriteBytes uint64 `msgpack:"write_bytes" json:"write_bytes" yaml:"write_bytes"`
}

// NetIOTotals aggregates network I/O since boot.
type NetIOTotals struct {
	BytesSent uint64 `msgpack:"bytes_sent" json:"bytes_sent" yaml:"bytes_sent"`
	BytesRecv uint64 `msgpack:"bytes_recv" json:"bytes_recv" yaml:"bytes_recv"`
}

// Family classifies an interface address.
type Family string

const (
	FamilyIPv4 Family = "ipv4"
	FamilyIPv6 Family = "ipv6"
	FamilyMAC  Family = "mac"
)

// Interface is one network interface and its addresses.
type Interface struct {
	Name      string    `msgpack:"name" json:"name" yaml:"name"`
	Addresses []Address `msgpack:"addresses" json:"addresses" yaml:"addresses"`
}

// Address is one address of an interface. Netmask and Broadcast are empty
// when the OS reports none.
type Address struct {
	Family    Family `msgpack:"family" json:"family" yaml:"family"`
	Address   string `msgpack:"address" json:"address" yaml:"address"`
	Netmask   string `msgpack:"netmask,omitempty" json:"netmask,omitempty" yaml:"netmask,omitempty"`
	Broadcast string `msgpack:"broadcast,omitempty" json:"broadcast,omitempty" yaml:"broadcast,omitempty"`
}
