package yaml

import (
	"testing"

	"github.com/0xalexb/hjarta-params/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceDocument = `
log:
  level: debug
params:
  files:
    - robot.yaml
    - site.yaml
  overrides: ["arm:gains.p:=2.0"]
  node_capacity: 16
http:
  address: ":9090"
`

func TestParser_Parse_Section(t *testing.T) {
	t.Parallel()

	var params config.Params

	err := NewParser().Parse([]byte(serviceDocument), &params, config.ParamsPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"robot.yaml", "site.yaml"}, params.Files)
	assert.Equal(t, []string{"arm:gains.p:=2.0"}, params.Overrides)
	assert.Equal(t, 16, params.NodeCapacity)
	assert.False(t, params.SkipMissing)
}

func TestParser_Parse_WholeDocument(t *testing.T) {
	t.Parallel()

	var document map[string]any

	require.NoError(t, NewParser().Parse([]byte(serviceDocument), &document, ""))
	assert.Contains(t, document, "log")
	assert.Contains(t, document, "params")
	assert.Contains(t, document, "http")
}

func TestParser_Parse_NestedPath(t *testing.T) {
	t.Parallel()

	var level string

	require.NoError(t, NewParser().Parse([]byte(serviceDocument), &level, "log:level"))
	assert.Equal(t, "debug", level)
}

func TestParser_Parse_MissingSection(t *testing.T) {
	t.Parallel()

	var params config.Params

	err := NewParser().Parse([]byte("log:\n  level: info\n"), &params, config.ParamsPath)
	require.ErrorIs(t, err, ErrPathNotFound)
	require.ErrorIs(t, err, config.ErrSectionNotFound)
}

func TestParser_Parse_NonMappingIntermediate(t *testing.T) {
	t.Parallel()

	var level string

	err := NewParser().Parse([]byte("log: plain\n"), &level, "log:level")
	require.Error(t, err)
}

func TestParser_Parse_EmptyData(t *testing.T) {
	t.Parallel()

	var params config.Params

	require.ErrorIs(t, NewParser().Parse(nil, &params, ""), ErrEmptyData)
}

func TestParser_Parse_InvalidYAML(t *testing.T) {
	t.Parallel()

	var params config.Params

	err := NewParser().Parse([]byte("params: [unclosed\n"), &params, "")
	require.Error(t, err)
}

func TestStrictParser_RejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	document := []byte("params:\n  files: [a.yaml]\n  node_capcity: 3\n")

	var lenient config.Params

	require.NoError(t, NewParser().Parse(document, &lenient, config.ParamsPath))
	assert.Equal(t, []string{"a.yaml"}, lenient.Files)

	var strict config.Params

	require.Error(t, NewStrictParser().Parse(document, &strict, config.ParamsPath))
	require.Error(t, NewStrictParser().Parse(document, &map[string]config.Params{}, ""))
}

func TestToYAMLPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$.params", toYAMLPath("params"))
	assert.Equal(t, "$.http.tls.cert", toYAMLPath("http:tls:cert"))
}
