package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MEDASSIST_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout())
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, ChannelLog, cfg.Notifications.Channel)
	assert.Equal(t, 24, cfg.Schedule.MaxDosesPerDay)
	assert.Equal(t, 365, cfg.Schedule.MaxTreatmentDays)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "medassist.yaml")
	content := `
server:
  port: 9090
app:
  timezone: America/Bogota
storage:
  driver: sqlite
  sqlite_path: /tmp/med.db
schedule:
  max_treatment_days: 90
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("MEDASSIST_SERVER_PORT", "7070")
	t.Setenv("MEDASSIST_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port, "env wins over file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/med.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 90, cfg.Schedule.MaxTreatmentDays)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Bogota", loc.String())
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":       {"MEDASSIST_STORAGE_DRIVER": "mongo"},
		"postgres without dsn": {"MEDASSIST_STORAGE_DRIVER": "postgres"},
		"webhook without url":  {"MEDASSIST_NOTIFICATIONS_CHANNEL": "webhook"},
		"telegram no token":    {"MEDASSIST_NOTIFICATIONS_CHANNEL": "telegram"},
		"bad timezone":         {"MEDASSIST_APP_TIMEZONE": "Mars/Olympus"},
		"zero doses cap":       {"MEDASSIST_SCHEDULE_MAX_DOSES_PER_DAY": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
