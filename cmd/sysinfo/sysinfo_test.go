package sysinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"toolbox/internal/store"
	"toolbox/internal/sysinfo"
	"toolbox/internal/sysinfo/sysinfotest"
	"toolbox/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.SysInfo.SampleInterval = "0s"
	cfg.SysInfo.HistoryDB = filepath.Join(t.TempDir(), "db", "history.db")
	cfg.SysInfo.HistoryKeep = 2
	return cfg
}

func TestRun_Text(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), testConfig(t), sysinfotest.New(), &out, zerolog.Nop(), Options{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "System Information")
	assert.Contains(t, out.String(), "Node Name: kali")
}

func TestRun_FormatOverride(t *testing.T) {
	cfg := testConfig(t)
	cfg.SysInfo.Format = "yaml"

	var out bytes.Buffer
	err := run(context.Background(), cfg, sysinfotest.New(), &out, zerolog.Nop(), Options{Format: "json"})
	require.NoError(t, err)

	var snap sysinfo.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.Equal(t, "kali", snap.Platform.Node)
}

func TestRun_ConfigFormat(t *testing.T) {
	cfg := testConfig(t)
	cfg.SysInfo.Format = "yaml"

	var out bytes.Buffer
	err := run(context.Background(), cfg, sysinfotest.New(), &out, zerolog.Nop(), Options{})
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	assert.Contains(t, doc, "platform")
}

func TestRun_UnknownFormatSkipsCollection(t *testing.T) {
	src := sysinfotest.New()
	var out bytes.Buffer

	err := run(context.Background(), testConfig(t), src, &out, zerolog.Nop(), Options{Format: "xml"})
	require.Error(t, err)
	assert.Empty(t, src.Intervals)
	assert.Empty(t, out.String())
}

func TestRun_CollectFailure(t *testing.T) {
	src := sysinfotest.New()
	src.Errs["HostInfo"] = errors.New("uname failed")

	var out bytes.Buffer
	err := run(context.Background(), testConfig(t), src, &out, zerolog.Nop(), Options{})
	assert.ErrorContains(t, err, "uname failed")
	assert.Empty(t, out.String())
}

func TestRun_SaveKeepsNewest(t *testing.T) {
	cfg := testConfig(t)

	for i := 0; i < 3; i++ {
		var out bytes.Buffer
		err := run(context.Background(), cfg, sysinfotest.New(), &out, zerolog.Nop(), Options{Save: true})
		require.NoError(t, err)
	}

	records, err := store.File{Path: cfg.SysInfo.HistoryDB, Log: zerolog.Nop()}.List(0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, uint64(3), records[0].ID)
	assert.Equal(t, "kali", records[0].Snapshot.Platform.Node)
}
