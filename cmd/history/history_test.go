package history

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbox/internal/store"
	"toolbox/internal/sysinfo"
)

func seeded(t *testing.T, nodes ...string) store.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	db, err := store.New(path, zerolog.Nop())
	require.NoError(t, err)
	for _, n := range nodes {
		_, err := db.Save(&sysinfo.Snapshot{
			Platform: sysinfo.PlatformInfo{System: "Linux", Node: n, Release: "6.1.0"},
			CPU:      sysinfo.CPUInfo{Total: 6.5},
			Memory:   sysinfo.MemoryInfo{Percent: 19.3},
		})
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())
	return store.File{Path: path, Log: zerolog.Nop()}
}

func TestList(t *testing.T) {
	db := seeded(t, "alpha", "a-very-long-hostname-indeed")

	var out bytes.Buffer
	require.NoError(t, list(db, &out, 0))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "NODE")
	assert.Contains(t, lines[2], "a-very-long-hostnam…")
	assert.Contains(t, lines[2], "Linux 6.1.0")
	assert.Contains(t, lines[2], "6.5")
	assert.Contains(t, lines[3], "alpha")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[3]), "1 "))
}

func TestList_Limit(t *testing.T) {
	db := seeded(t, "a", "b", "c")

	var out bytes.Buffer
	require.NoError(t, list(db, &out, 1))
	assert.Len(t, strings.Split(strings.TrimRight(out.String(), "\n"), "\n"), 3)
}

func TestList_Empty(t *testing.T) {
	db := store.File{Path: filepath.Join(t.TempDir(), "none.db"), Log: zerolog.Nop()}

	var out bytes.Buffer
	require.NoError(t, list(db, &out, 0))
	assert.Contains(t, out.String(), "No snapshots saved")
}

func TestShow(t *testing.T) {
	db := seeded(t, "alpha", "beta")

	var out bytes.Buffer
	require.NoError(t, show(db, &out, 2, "json"))

	var snap sysinfo.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.Equal(t, "beta", snap.Platform.Node)
}

func TestShow_NotFound(t *testing.T) {
	db := seeded(t, "alpha")

	var out bytes.Buffer
	err := show(db, &out, 7, "text")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTruncate_Runes(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 20, "short"},
		{"exactly-five", 12, "exactly-five"},
		{"a-very-long-hostname-indeed", 20, "a-very-long-hostnam…"},
		{"服务器-北京-生产环境-数据库-主节点-01", 10, "服务器-北京-生产…"},
		{"ÄÖÜäöüÄÖÜäöü", 5, "ÄÖÜä…"},
	}
	for _, tc := range cases {
		got := truncate(tc.in, tc.n)
		assert.Equal(t, tc.want, got, tc.in)
		assert.True(t, utf8.ValidString(got), tc.in)
		assert.LessOrEqual(t, utf8.RuneCountInString(got), tc.n, tc.in)
	}
}
