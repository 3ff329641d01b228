package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/parser"
)

const armDocument = `
robot:
  arm:
    ros__parameters:
      gains:
        p: 1.5
      joints: [shoulder, elbow]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	options := NewRootOptions()
	options.Out = &out
	options.ErrOut = &errOut

	cmd := NewRootCmd(options)
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	return out.String(), err
}

func TestDump_YAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "arm.yaml", armDocument)

	out, err := execute(t, "dump", "-f", path, "-p", "robot/arm:gains.p:=2.0")
	require.NoError(t, err)

	assert.Contains(t, out, "robot/arm:")
	assert.Contains(t, out, "ros__parameters:")
	assert.Contains(t, out, "gains.p: 2")
	assert.Contains(t, out, "shoulder")
}

func TestDump_Table(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "arm.yaml", armDocument)

	out, err := execute(t, "dump", "-f", path, "--output", FormatTable)
	require.NoError(t, err)

	assert.Contains(t, out, "Node Name")
	assert.Contains(t, out, "robot/arm\n")
	assert.Contains(t, out, "gains.p: 1.500000")
	assert.Contains(t, out, "joints: [shoulder, elbow]")
}

func TestDump_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "dump", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestGet(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "arm.yaml", armDocument)

	out, err := execute(t, "get", "-f", path, "robot/arm", "joints")
	require.NoError(t, err)
	assert.Equal(t, "[shoulder, elbow] (string array)\n", out)

	_, err = execute(t, "get", "-f", path, "robot/arm", "missing")
	require.ErrorIs(t, err, errParameterNotFound)

	_, err = execute(t, "get", "robot/arm")
	require.Error(t, err, "two arguments are required")
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.yaml", "- a\n- b\n")

	_, err := execute(t, "dump", "-f", broken)
	require.ErrorIs(t, err, parser.ErrGrammar)

	_, err = execute(t, "dump", "-p", "not a rule")
	require.ErrorIs(t, err, parser.ErrInvalidOverride)

	_, err = execute(t, "dump", "-f", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	out, err := execute(t, "dump", "--skip-missing", "-f", filepath.Join(dir, "missing.yaml"), "-p", "a:=1")
	require.NoError(t, err)
	assert.Contains(t, out, parser.AllNodes)
}

func TestSettings_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := writeFile(t, dir, "service.yaml", `
params:
  files: [base.yaml]
  overrides: ["use_sim_time:=true"]
  memory_limit: 65536
http:
  address: ":9000"
log:
  level: debug
  format: text
`)

	options := NewRootOptions()
	options.ConfigFile = configPath
	options.Files = []string{"extra.yaml"}
	options.Overrides = []string{"arm:gains.p:=2.0"}
	options.LogLevel = "error"

	settings, err := options.Settings()
	require.NoError(t, err)

	assert.Equal(t, config.Params{
		Files:        []string{"base.yaml", "extra.yaml"},
		Overrides:    []string{"use_sim_time:=true", "arm:gains.p:=2.0"},
		NodeCapacity: 128,
		MemoryLimit:  65536,
	}, settings.Params)
	assert.Equal(t, ":9000", settings.HTTP.Address)
	assert.Equal(t, 15*time.Second, settings.HTTP.ShutdownTimeout)
	assert.Equal(t, "error", settings.Log.Level)
	assert.Equal(t, "text", settings.Log.Format)
}

func TestSettings_ConfigFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	options := NewRootOptions()
	options.ConfigFile = filepath.Join(dir, "missing.yaml")

	_, err := options.Settings()
	require.Error(t, err)

	options.ConfigFile = writeFile(t, dir, "unknown.yaml", "params:\n  filez: [a.yaml]\n")

	_, err = options.Settings()
	require.Error(t, err, "unknown fields are rejected")

	options.ConfigFile = writeFile(t, dir, "negative.yaml", "params:\n  node_capacity: -1\n")

	_, err = options.Settings()
	require.ErrorIs(t, err, config.ErrInvalidNodeCapacity)
}

func TestServe_App(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "arm.yaml", armDocument)

	options := NewRootOptions()
	options.Files = []string{path}
	options.LogLevel = "error"

	serve := NewServeOptions(options)
	serve.Address = "127.0.0.1:0"

	app, err := serve.App()
	require.NoError(t, err)
	require.NoError(t, app.Start())
	require.NoError(t, app.Stop())
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hjarta-params version dev (commit none, built unknown)\n", out)
}
