package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DoesNotMutateDefaults(t *testing.T) {
	t.Setenv("CRAFTSTORE_SYSTEM_WORKDIR", t.TempDir())
	t.Setenv("CRAFTSTORE_WEB_PORT", "9999")

	cfg := LoadConfig("")
	assert.Equal(t, 9999, cfg.Web.Port)
	assert.NotEqual(t, DefaultAppConfig.System.Workdir, cfg.System.Workdir)

	// the package defaults must survive a load untouched
	assert.Equal(t, "/var/craftstore", DefaultAppConfig.System.Workdir)
	assert.Equal(t, 1816, DefaultAppConfig.Web.Port)

	cfg.Web.Secret = "rotated"
	assert.NotEqual(t, "rotated", DefaultAppConfig.Web.Secret)
}

func TestLoadConfig_FileThenEnvPrecedence(t *testing.T) {
	workdir := t.TempDir()
	cfile := filepath.Join(workdir, "craftstore.yml")
	require.NoError(t, os.WriteFile(cfile, []byte(
		"system:\n  workdir: "+workdir+"\nweb:\n  port: 2816\n  host: 127.0.0.1\n"), 0o644))

	t.Setenv("CRAFTSTORE_WEB_PORT", "3816")

	cfg := LoadConfig(cfile)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	// env overrides win over the file
	assert.Equal(t, 3816, cfg.Web.Port)
	assert.Equal(t, workdir, cfg.System.Workdir)
}
