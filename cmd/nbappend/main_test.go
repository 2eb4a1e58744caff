package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/ukaji3/nbappend-go/pkg/nbappend"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func execute(t *testing.T, fs afero.Fs, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(fs)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func newNotebookFs(t *testing.T, path, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	return fs
}

func cellCount(t *testing.T, fs afero.Fs, path string) int64 {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return gjson.GetBytes(data, "cells.#").Int()
}

func TestAppendCommand(t *testing.T) {
	fs := newNotebookFs(t, "nb.ipynb", `{"cells": [{"cell_type": "markdown", "metadata": {}, "source": ["x"]}]}`)

	stdout, stderr, err := execute(t, fs, "nb.ipynb")
	require.NoError(t, err)
	assert.Equal(t, "Notebook updated successfully.\n", stdout)
	assert.Empty(t, stderr)
	assert.Equal(t, int64(5), cellCount(t, fs, "nb.ipynb"))
}

func TestAppendCommandDefaultPath(t *testing.T) {
	fs := newNotebookFs(t, nbappend.DefaultNotebookPath, `{"cells": []}`)

	_, _, err := execute(t, fs)
	require.NoError(t, err)
	assert.Equal(t, int64(4), cellCount(t, fs, nbappend.DefaultNotebookPath))
}

func TestAppendCommandNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()

	stdout, stderr, err := execute(t, fs, "missing.ipynb")
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, "Error updating notebook: notebook not found"), stderr)

	var reported *reportedError
	assert.True(t, errors.As(err, &reported))
	assert.True(t, errors.Is(err, nbappend.ErrNotFound))

	exists, err := afero.Exists(fs, "missing.ipynb")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAppendCommandParseError(t *testing.T) {
	fs := newNotebookFs(t, "nb.ipynb", `{"metadata": {}}`)

	_, stderr, err := execute(t, fs, "nb.ipynb")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nbappend.ErrParse))
	assert.Equal(t, "Error updating notebook: invalid notebook document: nb.ipynb: missing \"cells\" field\n", stderr)
}

func TestAppendCommandDryRun(t *testing.T) {
	content := `{"cells": []}`
	fs := newNotebookFs(t, "nb.ipynb", content)

	stdout, _, err := execute(t, fs, "nb.ipynb", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, `+     "## Target Country Selection\n",`)
	assert.Contains(t, stdout, "Dry run: 4 cells would be appended to nb.ipynb (0 -> 4 cells).")

	data, err := afero.ReadFile(fs, "nb.ipynb")
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

func TestAppendCommandConfigFile(t *testing.T) {
	fs := newNotebookFs(t, "analysis.ipynb", `{"cells": []}`)
	require.NoError(t, afero.WriteFile(fs, "nbappend.yaml", []byte("notebook: analysis.ipynb\nindent: 2\natomic: true\n"), 0o644))

	_, _, err := execute(t, fs, "--config", "nbappend.yaml")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "analysis.ipynb")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"cells\": ["), string(data))
	assert.Equal(t, int64(4), gjson.GetBytes(data, "cells.#").Int())
}

func TestAppendCommandMissingConfigFile(t *testing.T) {
	fs := newNotebookFs(t, "nb.ipynb", `{"cells": []}`)

	_, _, err := execute(t, fs, "--config", "absent.yaml", "nb.ipynb")
	require.Error(t, err)
	assert.Equal(t, int64(0), cellCount(t, fs, "nb.ipynb"))
}

func TestAppendCommandEnvIndent(t *testing.T) {
	t.Setenv("NBAPPEND_INDENT", "3")
	fs := newNotebookFs(t, "nb.ipynb", `{"cells": []}`)

	_, _, err := execute(t, fs, "nb.ipynb")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "nb.ipynb")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n   \"cells\": ["), string(data))
}

func TestAppendCommandTemplateFlag(t *testing.T) {
	fs := newNotebookFs(t, "nb.ipynb", `{"cells": []}`)
	require.NoError(t, afero.WriteFile(fs, "cells.yaml", []byte("cells:\n  - cell_type: markdown\n    source: \"# Notes\"\n"), 0o644))

	_, _, err := execute(t, fs, "nb.ipynb", "--template", "cells.yaml")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "nb.ipynb")
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.GetBytes(data, "cells.#").Int())
	assert.Equal(t, "# Notes", gjson.GetBytes(data, "cells.0.source.0").String())
}

func TestAppendCommandBadTemplate(t *testing.T) {
	fs := newNotebookFs(t, "nb.ipynb", `{"cells": []}`)

	_, stderr, err := execute(t, fs, "nb.ipynb", "--template", "missing.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nbappend.ErrTemplate))
	assert.True(t, strings.HasPrefix(stderr, "Error updating notebook: invalid cell template"), stderr)
}

func TestCellsCommand(t *testing.T) {
	fs := newNotebookFs(t, "nb.ipynb", `{"cells": [{"cell_type": "code", "execution_count": 2, "metadata": {}, "outputs": [], "source": ["import pandas as pd\n", "df = pd.read_csv('data.csv')"]}]}`)

	stdout, _, err := execute(t, fs, "cells", "nb.ipynb")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "INDEX"))
	assert.Contains(t, lines[1], "code")
	assert.Contains(t, lines[1], "import pandas as pd")

	stdout, _, err = execute(t, fs, "cells", "nb.ipynb", "--json")
	require.NoError(t, err)
	var summaries []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, float64(2), summaries[0]["execution_count"])

	stdout, _, err = execute(t, fs, "cells", "nb.ipynb", "--xlsx", "cells.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "Wrote 1 cells to cells.xlsx\n", stdout)
	exists, err := afero.Exists(fs, "cells.xlsx")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCellsCommandNotFound(t *testing.T) {
	_, _, err := execute(t, afero.NewMemMapFs(), "cells", "missing.ipynb")
	require.Error(t, err)
	assert.True(t, errors.Is(err, nbappend.ErrNotFound))
}

func TestTemplateCommand(t *testing.T) {
	stdout, _, err := execute(t, afero.NewMemMapFs(), "template")
	require.NoError(t, err)

	var cells []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &cells))
	require.Len(t, cells, 4)
	assert.Equal(t, "markdown", cells[0]["cell_type"])
	assert.Equal(t, "code", cells[3]["cell_type"])
}

func TestSchemaCommand(t *testing.T) {
	stdout, _, err := execute(t, afero.NewMemMapFs(), "schema")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
