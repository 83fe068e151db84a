package rpmmacro

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadLogicalLineSimple(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("first\nsecond\n"))
	line, err := readLogicalLine(r)
	require.NoError(t, err)
	require.Equal(t, "first", line)

	line, err = readLogicalLine(r)
	require.NoError(t, err)
	require.Equal(t, "second", line)

	_, err = readLogicalLine(r)
	require.ErrorIs(t, err, io.EOF)
}

func TestReadLogicalLineBackslashContinuation(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("one \\\ntwo\nthree\n"))
	line, err := readLogicalLine(r)
	require.NoError(t, err)
	require.Equal(t, "one \\\ntwo", line)

	line, err = readLogicalLine(r)
	require.NoError(t, err)
	require.Equal(t, "three", line)
}

func TestReadLogicalLineUnbalancedBrace(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("%define foo %{bar\nbaz}\nnext\n"))
	line, err := readLogicalLine(r)
	require.NoError(t, err)
	require.Equal(t, "%define foo %{bar\nbaz}", line)

	line, err = readLogicalLine(r)
	require.NoError(t, err)
	require.Equal(t, "next", line)
}

func TestLoadFileInstallsAtMacrofilesLevel(t *testing.T) {
	mc := NewMacroContext()
	mc.Shell = stubShell{}
	path := filepath.Join(t.TempDir(), "macros")
	require.NoError(t, os.WriteFile(path, []byte("\n%foo bar\n# not a macro line\n%baz 1\n"), 0o644))

	require.NoError(t, LoadFile(mc, path))

	foo := mc.Table.find("foo")
	require.NotNil(t, foo)
	require.Equal(t, "bar", foo.Body)
	require.Equal(t, LevelMacrofiles-1, foo.Level)

	require.Nil(t, mc.Table.find("not"))
}

func TestInitSkipsBackupSuffixes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "macros"), []byte("%kept 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "macros.rpmnew"), []byte("%skipped 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "macros.rpmsave"), []byte("%alsoskipped 1\n"), 0o644))

	mc := NewMacroContext()
	mc.Shell = stubShell{}
	require.NoError(t, Init(mc, filepath.Join(dir, "macros*")))

	require.NotNil(t, mc.Table.find("kept"))
	require.Nil(t, mc.Table.find("skipped"))
	require.Nil(t, mc.Table.find("alsoskipped"))
}

func TestInitReimportsCLIContext(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "macros"), []byte("%fromfile 1\n"), 0o644))

	CLIContext.Table.Add("fromcli", "", "cli-value", LevelCmdline)
	defer CLIContext.Table.Del("fromcli")

	mc := NewMacroContext()
	mc.Shell = stubShell{}
	require.NoError(t, Init(mc, filepath.Join(dir, "macros")))

	fromCLI := mc.Table.find("fromcli")
	require.NotNil(t, fromCLI)
	require.Equal(t, "cli-value", fromCLI.Body)
}
