// Package metrics exposes host snapshots as Prometheus metrics.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"toolbox/internal/sysinfo"
)

const namespace = "toolbox"

var (
	upDesc = prometheus.NewDesc(
		namespace+"_up", "Whether the last host query succeeded.", nil, nil)
	bootTimeDesc = prometheus.NewDesc(
		namespace+"_boot_time_seconds", "Host boot time as a unix timestamp.", nil, nil)
	coresDesc = prometheus.NewDesc(
		namespace+"_cpu_cores", "Number of CPU cores.", []string{"kind"}, nil)
	cpuPercentDesc = prometheus.NewDesc(
		namespace+"_cpu_usage_percent", "CPU utilization per core over the sample window.", []string{"core"}, nil)
	cpuTotalDesc = prometheus.NewDesc(
		namespace+"_cpu_usage_total_percent", "Mean CPU utilization over the sample window.", nil, nil)
	memoryDesc = prometheus.NewDesc(
		namespace+"_memory_bytes", "Virtual memory by state.", []string{"state"}, nil)
	swapDesc = prometheus.NewDesc(
		namespace+"_swap_bytes", "Swap memory by state.", []string{"state"}, nil)
	diskDesc = prometheus.NewDesc(
		namespace+"_filesystem_bytes", "Partition capacity by state.", []string{"device", "mountpoint", "fstype", "state"}, nil)
	diskIODesc = prometheus.NewDesc(
		namespace+"_disk_io_bytes_total", "Bytes transferred by all disks since boot.", []string{"direction"}, nil)
	netIODesc = prometheus.NewDesc(
		namespace+"_network_io_bytes_total", "Bytes transferred by all interfaces since boot.", []string{"direction"}, nil)
)

// Collector gathers a fresh snapshot on every scrape.
type Collector struct {
	src      sysinfo.Source
	interval time.Duration
	timeout  time.Duration
	log      zerolog.Logger
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a Collector sampling CPU utilization over interval.
func NewCollector(src sysinfo.Source, interval time.Duration, log zerolog.Logger) *Collector {
	return &Collector{
		src:      src,
		interval: interval,
		timeout:  interval + 10*time.Second,
		log:      log,
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		upDesc, bootTimeDesc, coresDesc, cpuPercentDesc, cpuTotalDesc,
		memoryDesc, swapDesc, diskDesc, diskIODesc, netIODesc,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	snap, err := sysinfo.Collect(ctx, c.src, sysinfo.Options{SampleInterval: c.interval, Log: c.log})
	if err != nil {
		c.log.Error().Err(err).Msg("Host query failed during scrape")
		ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, 1)
	Emit(ch, snap)
}

// Emit writes the metrics for one snapshot to ch.
func Emit(ch chan<- prometheus.Metric, snap *sysinfo.Snapshot) {
	gauge := func(d *prometheus.Desc, v float64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, labels...)
	}
	counter := func(d *prometheus.Desc, v float64, labels ...string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, v, labels...)
	}

	gauge(bootTimeDesc, float64(snap.BootTime.Unix()))
	gauge(coresDesc, float64(snap.CPU.PhysicalCores), "physical")
	gauge(coresDesc, float64(snap.CPU.LogicalCores), "logical")
	for i, pct := range snap.CPU.PerCore {
		gauge(cpuPercentDesc, pct, strconv.Itoa(i))
	}
	gauge(cpuTotalDesc, snap.CPU.Total)

	gauge(memoryDesc, float64(snap.Memory.Total), "total")
	gauge(memoryDesc, float64(snap.Memory.Available), "available")
	gauge(memoryDesc, float64(snap.Memory.Used), "used")
	gauge(swapDesc, float64(snap.Swap.Total), "total")
	gauge(swapDesc, float64(snap.Swap.Free), "free")
	gauge(swapDesc, float64(snap.Swap.Used), "used")

	seen := make(map[string]bool)
	for _, p := range snap.Partitions {
		// bind mounts repeat a mountpoint; duplicate label sets would fail the scrape
		if p.Usage == nil || seen[p.Mountpoint] {
			continue
		}
		seen[p.Mountpoint] = true
		gauge(diskDesc, float64(p.Usage.Total), p.Device, p.Mountpoint, p.Fstype, "total")
		gauge(diskDesc, float64(p.Usage.Used), p.Device, p.Mountpoint, p.Fstype, "used")
		gauge(diskDesc, float64(p.Usage.Free), p.Device, p.Mountpoint, p.Fstype, "free")
	}

	counter(diskIODesc, float64(snap.DiskIO.ReadBytes), "read")
	counter(diskIODesc, float64(snap.DiskIO.WriteBytes), "write")
	counter(netIODesc, float64(snap.NetIO.BytesSent), "sent")
	counter(netIODesc, float64(snap.NetIO.BytesRecv), "received")
}
