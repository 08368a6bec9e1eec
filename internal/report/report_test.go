package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"toolbox/internal/sysinfo"
	"toolbox/internal/sysinfo/sysinfotest"
)

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{0, "0.00B"},
		{1023, "1023.00B"},
		{1024, "1.00KB"},
		{43766, "42.74KB"},
		{1253656, "1.20MB"},
		{1253656678, "1.17GB"},
		{51561271296, "48.02GB"},
		{1 << 50, "1.00PB"},
		{1 << 60, "1024.00PB"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatBytes(tc.in), "FormatBytes(%d)", tc.in)
	}
}

func sampleSnapshot(t *testing.T, src *sysinfotest.Fake) *sysinfo.Snapshot {
	t.Helper()
	snap, err := sysinfo.Collect(context.Background(), src, sysinfo.Options{Log: zerolog.Nop()})
	require.NoError(t, err)
	snap.BootTime = time.Date(2021, 4, 24, 22, 27, 37, 0, time.Local)
	return snap
}

const wantText = `======================================== System Information ========================================
System: Linux
Node Name: kali
Release: 5.9.0-kali1-amd64
Version: #1 SMP Debian 5.9.1-1kali2 (2020-10-29)
Machine: x86_64
Processor: Test CPU @ 2.40GHz
======================================== Boot Time ========================================
Boot Time: 2021/4/24 22:27:37
======================================== CPU Info ========================================
Physical cores: 1
Total cores: 2
Max Frequency: 2400.00Mhz
Min Frequency: 800.00Mhz
Current Frequency: 1190.40Mhz
CPU Usage Per Core:
Core 0: 1.0%
Core 1: 12.0%
Total CPU Usage: 6.5%
======================================== Memory Information ========================================
Total: 3.85GB
Available: 3.11GB
Used: 520.41MB
Percentage: 19.3%
==================== SWAP ====================
Total: 975.00MB
Free: 975.00MB
Used: 0.00B
Percentage: 0.0%
======================================== Disk Information ========================================
Partitions and Usage:
=== Device: /dev/sda1 ===
  Mountpoint: /
  File system type: ext4
  Total Size: 48.02GB
  Used: 12.33GB
  Free: 33.23GB
  Percentage: 27.1%
Total read: 329.04MB
Total write: 19.99MB
======================================== Network Information ========================================
=== Interface: lo ===
  IP Address: 127.0.0.1
  Netmask: 255.0.0.0
  Broadcast IP: None
=== Interface: eth0 ===
  IP Address: 10.0.2.15
  Netmask: 255.255.255.0
  Broadcast IP: 10.0.2.255
=== Interface: eth0 ===
  IPv6 Address: fe80::a00:27ff:fe15:3fd8
  Netmask: ffff:ffff:ffff:ffff::
=== Interface: eth0 ===
  MAC Address: 08:00:27:15:3f:d8
  Netmask: None
  Broadcast MAC: ff:ff:ff:ff:ff:ff
Total Bytes Sent: 42.74KB
Total Bytes Received: 42.35KB
`

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleSnapshot(t, sysinfotest.New())))
	assert.Equal(t, wantText, buf.String())
}

func TestText_DeniedPartitionPrintsHeaderOnly(t *testing.T) {
	src := sysinfotest.New()
	src.Parts = append(src.Parts, disk.PartitionStat{Device: "/dev/sr0", Mountpoint: "/media/cdrom", Fstype: "iso9660"})
	src.UsageErrs["/media/cdrom"] = syscall.EACCES

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleSnapshot(t, src)))

	out := buf.String()
	assert.Contains(t, out, "=== Device: /dev/sr0 ===\n  Mountpoint: /media/cdrom\n  File system type: iso9660\nTotal read: 329.04MB\n")
	assert.Equal(t, 1, strings.Count(out, "Total Size:"))
}

func TestRender_Structured(t *testing.T) {
	snap := sampleSnapshot(t, sysinfotest.New())

	var js bytes.Buffer
	require.NoError(t, Render(&js, "json", snap))
	var fromJSON map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &fromJSON))
	assert.Equal(t, "kali", fromJSON["platform"].(map[string]any)["node"])

	var ym bytes.Buffer
	require.NoError(t, Render(&ym, "yaml", snap))
	var fromYAML sysinfo.Snapshot
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))
	assert.Equal(t, snap.Memory, fromYAML.Memory)
	assert.Equal(t, snap.Interfaces, fromYAML.Interfaces)
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, "xml", sampleSnapshot(t, sysinfotest.New()))
	assert.ErrorContains(t, err, "unknown format")
}
