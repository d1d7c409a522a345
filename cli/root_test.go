package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagrkit/dagr/pkg/config"
	"github.com/dagrkit/dagr/pkg/logger"
)

const testConfig = `
bwa:
  executable: /opt/bwa/bwa
  threads: 4
  memory: 512M
samtools:
  bin-dir: /opt/samtools/bin
`

func writeFile(t *testing.T, dir, name, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

// runDagr executes the root command with args and returns its standard output.
func runDagr(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { logger.Init(logger.DefaultConfig()) })
	cmd := RootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-level", "disabled"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func setupWorkspace(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	binDir := filepath.Join(dir, "bin")
	require.NoError(t, os.Mkdir(binDir, 0o755))
	writeFile(t, binDir, "picard", "#!/bin/sh\n", 0o755)
	t.Setenv("PATH", binDir)
	t.Setenv(ConfigEnvVar, "")
	return writeFile(t, dir, "dagr.yaml", testConfig, 0o600), binDir
}

func TestGetCommand(t *testing.T) {
	t.Run("Should print a configured value", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		out, err := runDagr(t, "--config", cfg, "get", "bwa.executable")

		require.NoError(t, err)
		assert.Equal(t, "/opt/bwa/bwa\n", out)
	})

	t.Run("Should coerce to the selected type", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		out, err := runDagr(t, "--config", cfg, "get", "bwa.memory", "--type", "memory")

		require.NoError(t, err)
		assert.Equal(t, "512MiB\n", out)
	})

	t.Run("Should fail for missing keys without a default", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		_, err := runDagr(t, "--config", cfg, "get", "gatk.executable")

		assert.ErrorIs(t, err, config.ErrMissingKey)
	})

	t.Run("Should print the default for missing keys", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		out, err := runDagr(t, "--config", cfg, "get", "gatk.threads", "--type", "int32", "--default", "2")

		require.NoError(t, err)
		assert.Equal(t, "2\n", out)
	})

	t.Run("Should reject unknown types", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		_, err := runDagr(t, "--config", cfg, "get", "bwa.threads", "--type", "complex")

		assert.ErrorIs(t, err, config.ErrUnsupportedType)
	})

	t.Run("Should reject values of the wrong type", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		_, err := runDagr(t, "--config", cfg, "get", "bwa.executable", "--type", "int32")

		assert.ErrorIs(t, err, config.ErrTypeMismatch)
	})

	t.Run("Should read files named by DAGR_CONFIG", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)
		t.Setenv(ConfigEnvVar, cfg)

		out, err := runDagr(t, "get", "bwa.threads", "--type", "int16")

		require.NoError(t, err)
		assert.Equal(t, "4\n", out)
	})

	t.Run("Should let prefixed environment variables override files", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)
		t.Setenv("DAGR_BWA__THREADS", "16")

		out, err := runDagr(t, "--config", cfg, "get", "bwa.threads", "--type", "int32")

		require.NoError(t, err)
		assert.Equal(t, "16\n", out)
	})
}

func TestWhichCommand(t *testing.T) {
	t.Run("Should print a configured override", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		out, err := runDagr(t, "--config", cfg, "which", "bwa")

		require.NoError(t, err)
		assert.Equal(t, "/opt/bwa/bwa\n", out)
	})

	t.Run("Should find executables on the search path", func(t *testing.T) {
		cfg, binDir := setupWorkspace(t)

		out, err := runDagr(t, "--config", cfg, "which", "picard")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(binDir, "picard")+"\n", out)
	})

	t.Run("Should join the configured bin directory", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		out, err := runDagr(t, "--config", cfg, "which", "samtools", "--bin-dir-key", "samtools.bin-dir")

		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/opt/samtools/bin", "samtools")+"\n", out)
	})

	t.Run("Should fail when the executable cannot be found", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		_, err := runDagr(t, "--config", cfg, "which", "gatk")

		assert.ErrorIs(t, err, config.ErrExecutableNotFound)
	})
}

func TestSearchPathCommand(t *testing.T) {
	t.Run("Should print each search path directory", func(t *testing.T) {
		cfg, binDir := setupWorkspace(t)
		t.Setenv("PATH", strings.Join([]string{binDir, "", "/usr/local/bin"}, string(os.PathListSeparator)))

		out, err := runDagr(t, "--config", cfg, "search-path")

		require.NoError(t, err)
		assert.Equal(t, binDir+"\n/usr/local/bin\n", out)
	})
}

func TestKeysCommand(t *testing.T) {
	t.Run("Should list keys under a prefix", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		out, err := runDagr(t, "--config", cfg, "keys", "--prefix", "bwa.")

		require.NoError(t, err)
		assert.Equal(t, "bwa.executable\nbwa.memory\nbwa.threads\n", out)
	})

	t.Run("Should show the overriding environment variables", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		out, err := runDagr(t, "--config", cfg, "keys", "--prefix", "samtools.", "--env")

		require.NoError(t, err)
		assert.Regexp(t, `samtools\.bin-dir\s+DAGR_SAMTOOLS__BIN_DIR\s+no`, out)
	})

	t.Run("Should mark keys that are read as dagr settings", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		out, err := runDagr(t, "--config", cfg, "keys", "--prefix", "dagr.", "--env")

		require.NoError(t, err)
		assert.Regexp(t, `KEY\s+ENVIRONMENT VARIABLE\s+SETTING`, out)
		assert.Regexp(t, `dagr\.log-level\s+DAGR_DAGR__LOG_LEVEL\s+yes`, out)
		assert.Regexp(t, `dagr\.path\s+DAGR_DAGR__PATH\s+no`, out)
	})
}

func TestShowCommand(t *testing.T) {
	t.Run("Should print the merged configuration with exact numbers", func(t *testing.T) {
		cfg, binDir := setupWorkspace(t)
		extra := writeFile(t, filepath.Dir(cfg), "extra.yaml", `
tools:
  home: "${bwa.executable}-home"
  seed: 123456789012345678901234567890
`, 0o600)

		out, err := runDagr(t, "--config", cfg, "--config", extra, "show")

		require.NoError(t, err)
		assert.Contains(t, out, "executable: /opt/bwa/bwa")
		assert.Contains(t, out, "home: /opt/bwa/bwa-home")
		assert.Contains(t, out, "123456789012345678901234567890")
		assert.Contains(t, out, binDir)
	})

	t.Run("Should not record any request", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		out, err := runDagr(t, "--config", cfg, "--report", "yaml", "show")

		require.NoError(t, err)
		assert.Contains(t, out, "requested: []")
	})
}

func TestRequestReport(t *testing.T) {
	t.Run("Should print the requested keys after the command", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		out, err := runDagr(t, "--config", cfg, "--report", "json", "which", "picard")
		require.NoError(t, err)

		lines := strings.SplitN(out, "\n", 2)
		require.Len(t, lines, 2)
		var report struct {
			Requested []config.RequestedKey `json:"requested"`
		}
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &report))
		keys := make([]string, 0, len(report.Requested))
		for _, row := range report.Requested {
			keys = append(keys, row.Key)
		}
		assert.Equal(t, []string{config.DefaultSearchPathKey, "picard.executable"}, keys)
	})

	t.Run("Should reject unknown report formats", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)

		_, err := runDagr(t, "--config", cfg, "--report", "xml", "keys")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported report format")
	})
}

func TestSetupGlobalConfig(t *testing.T) {
	t.Run("Should load variables from the env file", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		t.Setenv(ConfigEnvVar, "")
		t.Cleanup(func() { _ = os.Unsetenv("DAGR_TEST_TOOLS_HOME") })
		writeFile(t, dir, ".env", "DAGR_TEST_TOOLS_HOME=/from/env-file\n", 0o600)
		cfg := writeFile(t, dir, "dagr.yaml", "tools:\n  home: \"${DAGR_TEST_TOOLS_HOME}\"\n", 0o600)

		out, err := runDagr(t, "--config", cfg, "--env-file", ".env", "get", "tools.home", "--type", "path")

		require.NoError(t, err)
		assert.Equal(t, "/from/env-file\n", out)
	})

	t.Run("Should reject env files outside the working directory", func(t *testing.T) {
		t.Chdir(t.TempDir())
		envFile := writeFile(t, t.TempDir(), ".env", "A=1\n", 0o600)

		_, err := runDagr(t, "--env-file", envFile, "keys")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "outside the working directory")
	})

	t.Run("Should prefix log lines with the configured command line name", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)
		named := writeFile(t, filepath.Dir(cfg), "named.yaml", "dagr:\n  command-line-name: align-kit\n", 0o600)
		t.Cleanup(func() { logger.Init(logger.DefaultConfig()) })
		cmd := RootCmd()
		var stderr bytes.Buffer
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"--log-level", "debug", "--config", cfg, "--config", named, "keys"})

		require.NoError(t, cmd.Execute())

		assert.Contains(t, stderr.String(), "align-kit")
		assert.Contains(t, stderr.String(), "configuration loaded")
	})

	t.Run("Should fail on invalid settings", func(t *testing.T) {
		cfg, _ := setupWorkspace(t)
		bad := writeFile(t, filepath.Dir(cfg), "bad.yaml", "dagr:\n  log-level: loud\n", 0o600)

		_, err := runDagr(t, "--config", cfg, "--config", bad, "keys")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "settings validation failed")
	})

	t.Run("Should fail when a configuration file is missing", func(t *testing.T) {
		setupWorkspace(t)

		_, err := runDagr(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "keys")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load configuration")
	})
}
