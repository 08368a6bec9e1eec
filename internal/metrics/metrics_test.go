package metrics

import (
	"errors"
	"strings"
	"syscall"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbox/internal/sysinfo/sysinfotest"
)

func TestCollector_Count(t *testing.T) {
	c := NewCollector(sysinfotest.New(), 0, zerolog.Nop())

	// up, boot, 2 core kinds, 2 cores, total, 3 memory, 3 swap, 3 disk, 2 disk io, 2 net io
	assert.Equal(t, 20, testutil.CollectAndCount(c))
}

func TestCollector_Values(t *testing.T) {
	c := NewCollector(sysinfotest.New(), 0, zerolog.Nop())

	expected := `
# HELP toolbox_memory_bytes Virtual memory by state.
# TYPE toolbox_memory_bytes gauge
toolbox_memory_bytes{state="available"} 3339268096
toolbox_memory_bytes{state="total"} 4133834752
toolbox_memory_bytes{state="used"} 545693696
# HELP toolbox_cpu_usage_percent CPU utilization per core over the sample window.
# TYPE toolbox_cpu_usage_percent gauge
toolbox_cpu_usage_percent{core="0"} 1
toolbox_cpu_usage_percent{core="1"} 12
# HELP toolbox_network_io_bytes_total Bytes transferred by all interfaces since boot.
# TYPE toolbox_network_io_bytes_total counter
toolbox_network_io_bytes_total{direction="received"} 43366
toolbox_network_io_bytes_total{direction="sent"} 43766
# HELP toolbox_up Whether the last host query succeeded.
# TYPE toolbox_up gauge
toolbox_up 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"toolbox_memory_bytes", "toolbox_cpu_usage_percent", "toolbox_network_io_bytes_total", "toolbox_up")
	require.NoError(t, err)
}

func TestCollector_DuplicateMountpointsAndDeniedPartitions(t *testing.T) {
	src := sysinfotest.New()
	src.Parts = append(src.Parts,
		disk.PartitionStat{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
		disk.PartitionStat{Device: "/dev/sr0", Mountpoint: "/media/cdrom", Fstype: "iso9660"},
	)
	src.UsageErrs["/media/cdrom"] = syscall.EACCES

	c := NewCollector(src, 0, zerolog.Nop())
	assert.Equal(t, 3, testutil.CollectAndCount(c, "toolbox_filesystem_bytes"))
}

func TestCollector_QueryFailure(t *testing.T) {
	src := sysinfotest.New()
	src.Errs["VirtualMemory"] = errors.New("no /proc/meminfo")

	c := NewCollector(src, 0, zerolog.Nop())
	assert.Equal(t, 1, testutil.CollectAndCount(c))
	assert.Equal(t, 0.0, testutil.ToFloat64(c))
}
