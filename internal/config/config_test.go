package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  endpoint: https://api.example-dns.net
  user: acct
  key: secret
sync:
  zone_dir: /etc/bind/zones
  master_ip: 192.0.2.10
`)
	cfg, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, 10, cfg.Sync.MinDomains)
	assert.Equal(t, 15, cfg.Sync.TransferFrequency)
	assert.Equal(t, "Hardware", cfg.Check.HostType)
	assert.Nil(t, cfg.Check.WarningPercent)
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `
api:
  endpoint: https://api.example-dns.net
  user: acct
  key: secret
  private: true
  timeout_seconds: 10
sync:
  zone_dir: /var/zones
  min_domains: 25
  master_ip: 192.0.2.10
  transfer_frequency: 60
check:
  host_type: VirtualGuests
  warning_percent: 80
  critical_percent: 95
  renewal_day: 3
`)
	cfg, err := Load(path, false)
	require.NoError(t, err)

	assert.True(t, cfg.API.Private)
	assert.Equal(t, 25, cfg.Sync.MinDomains)
	assert.Equal(t, 60, cfg.Sync.TransferFrequency)
	assert.Equal(t, "VirtualGuests", cfg.Check.HostType)
	require.NotNil(t, cfg.Check.CriticalPercent)
	assert.Equal(t, 95.0, *cfg.Check.CriticalPercent)
	assert.Equal(t, 3, cfg.Check.RenewalDay)
}

func TestLoadRejectsBadHostType(t *testing.T) {
	path := writeConfig(t, `
check:
  host_type: Mainframes
`)
	_, err := Load(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid host type")
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := Load(missing, false)
	require.Error(t, err)

	cfg, err := Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Sync.MinDomains)
}
