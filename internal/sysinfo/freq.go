package sysinfo

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/common"
)

// Frequency is the CPU clock in MHz, averaged over all cores.
type Frequency struct {
	Current float64
	Min     float64
	Max     float64
}

// hostPath resolves parts under the root named by key, honoring a
// common.EnvMap on ctx, then the environment, then def.
func hostPath(ctx context.Context, key common.EnvKeyType, def string, parts ...string) string {
	root := def
	if env, ok := ctx.Value(common.EnvKey).(common.EnvMap); ok && env[key] != "" {
		root = env[key]
	} else if v := os.Getenv(string(key)); v != "" {
		root = v
	}
	return filepath.Join(append([]string{root}, parts...)...)
}

// readFrequency reads cpufreq from sysfs. Without cpufreq it falls back to
// the "cpu MHz" lines of cpuinfo for the current clock and leaves min and
// max at zero.
func readFrequency(ctx context.Context) (Frequency, error) {
	dirs, err := filepath.Glob(hostPath(ctx, common.HostSysEnvKey, "/sys", "devices/system/cpu/cpu[0-9]*/cpufreq"))
	if err != nil {
		return Frequency{}, err
	}

	var f Frequency
	n := 0
	for _, dir := range dirs {
		cur, ok := readKHz(filepath.Join(dir, "scaling_cur_freq"))
		if !ok {
			if cur, ok = readKHz(filepath.Join(dir, "cpuinfo_cur_freq")); !ok {
				continue
			}
		}
		minKHz, _ := readKHz(filepath.Join(dir, "cpuinfo_min_freq"))
		maxKHz, _ := readKHz(filepath.Join(dir, "cpuinfo_max_freq"))
		f.Current += cur / 1000
		f.Min += minKHz / 1000
		f.Max += maxKHz / 1000
		n++
	}
	if n > 0 {
		f.Current /= float64(n)
		f.Min /= float64(n)
		f.Max /= float64(n)
		return f, nil
	}

	return Frequency{Current: cpuinfoMHz(hostPath(ctx, common.HostProcEnvKey, "/proc", "cpuinfo"))}, nil
}

func readKHz(path string) (float64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(data)), 64)
	return v, err == nil
}

// cpuinfoMHz averages the "cpu MHz" lines of a cpuinfo file, or returns 0.
func cpuinfoMHz(path string) float64 {
	file, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer file.Close()

	var mhz []float64
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok || strings.TrimSpace(key) != "cpu MHz" {
			continue
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			mhz = append(mhz, v)
		}
	}
	return mean(mhz)
}
