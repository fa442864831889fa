package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCountFromStdin(t *testing.T) {
	out, err := run(t, `{"a": "x", "b": [], "c": {"from": "2024-01-01"}, "d": null}`, "count")
	require.NoError(t, err)
	assert.Equal(t, "2 active filters\n", out)

	out, err = run(t, `{"name": "Alice"}`, "count", "-")
	require.NoError(t, err)
	assert.Equal(t, "1 active filter\n", out)
}

func TestCountJSONOutput(t *testing.T) {
	out, err := run(t, `{"price": {"min": "10", "max": ""}, "tags": []}`, "count", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"count": 1, "hasActive": true, "activeFields": ["price"]}`, out)
}

func TestCountFailOnActive(t *testing.T) {
	_, err := run(t, `{"name": ""}`, "count", "--fail-on-active")
	assert.NoError(t, err)

	_, err = run(t, `{"name": "Alice"}`, "count", "--fail-on-active")
	assert.ErrorIs(t, err, errFiltersActive)
}

func TestCountYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.yaml")
	doc := "vendor: Acme\nprice:\n  min: \"\"\n  max: \"250\"\ncreated:\n  from: null\n  to: null\nstatus: []\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := run(t, "", "count", "--format", "yaml", path)
	require.NoError(t, err)
	assert.Equal(t, "2 active filters\n", out)
}

func TestCountInvalidInput(t *testing.T) {
	_, err := run(t, `{"name":`, "count")
	assert.Error(t, err)

	_, err = run(t, `[]`, "count")
	assert.Error(t, err)

	_, err = run(t, `{}`, "count", "--format", "toml")
	assert.Error(t, err)

	_, err = run(t, `null`, "count")
	assert.Error(t, err)

	_, err = run(t, "", "count", "--format", "yaml")
	assert.Error(t, err)
}

func TestExplain(t *testing.T) {
	out, err := run(t, `{"qty": 3, "name": "Bob", "range": {"min": "", "max": ""}, "gone": null}`, "explain")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"FIELD", "KIND", "ACTIVE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"gone", "empty", "false"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"name", "text", "true"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"qty", "unrecognized", "false"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"range", "minMax", "false"}, strings.Fields(lines[4]))
}

func TestExplainJSONOutput(t *testing.T) {
	out, err := run(t, `{"name": "Bob", "created": {"from": null, "to": "2024-06-30"}, "tags": []}`, "explain", "--json")
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"field": "created", "kind": "dateRange", "active": true},
		{"field": "name", "kind": "text", "active": true},
		{"field": "tags", "kind": "list", "active": false}
	]`, out)
}
