package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/incsweep/internal/report"
	"github.com/Sumatoshi-tech/incsweep/pkg/include"
)

func TestListCommand_TableOutput(t *testing.T) {
	t.Parallel()

	records := []include.Record{
		{Name: "stdio.h", File: "main.c", Line: 2},
		{Name: "util.h", File: "src/util.c", Line: 1},
	}

	var out bytes.Buffer

	cmd := newListCommandWithDeps(func(_ string, _ []string, _ io.Writer) ([]include.Record, error) {
		return records, nil
	})
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--silent"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "stdio.h")
	assert.Contains(t, out.String(), "util.h")
}

func TestListCommand_EmptyTree(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	cmd := newListCommandWithDeps(func(_ string, _ []string, _ io.Writer) ([]include.Record, error) {
		return nil, nil
	})
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--silent"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "No include directives found.")
}

func TestListCommand_JSONOutput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	cmd := newListCommandWithDeps(func(_ string, _ []string, _ io.Writer) ([]include.Record, error) {
		return []include.Record{{Name: "a.h", File: "x.c", Line: 3}}, nil
	})
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--format", "json", "--silent"})

	require.NoError(t, cmd.Execute())

	var records []include.Record

	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, include.Record{Name: "a.h", File: "x.c", Line: 3}, records[0])
}

func TestListCommand_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	cmd := newListCommandWithDeps(func(_ string, _ []string, _ io.Writer) ([]include.Record, error) {
		return nil, nil
	})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--format", "csv", "--silent"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, report.ErrUnsupportedFormat)
}

func TestListCommand_EndToEnd(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.c"),
		[]byte("// #include <dead.h>\n#include <stdio.h>\n"), 0o644))

	var out bytes.Buffer

	cmd := NewListCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--silent", root})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "stdio.h")
	assert.NotContains(t, out.String(), "dead.h")
}
