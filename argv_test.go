package rpmmacro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitArgsSpaceAndTabOnly(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, splitArgs("a b\tc"))
	require.Equal(t, []string{"one"}, splitArgs("  one  "))
	require.Nil(t, splitArgs("   "))
	require.Nil(t, splitArgs(""))
}

func TestParseShortOptsNoArgOption(t *testing.T) {
	opts, optind, err := parseShortOpts([]string{"-a", "rest"}, "a")
	require.NoError(t, err)
	require.Equal(t, []parsedOption{{letter: 'a'}}, opts)
	require.Equal(t, 1, optind)
}

func TestParseShortOptsOptionWithArg(t *testing.T) {
	opts, optind, err := parseShortOpts([]string{"-n", "there", "rest"}, "n:")
	require.NoError(t, err)
	require.Equal(t, []parsedOption{{letter: 'n', arg: "there", hasArg: true}}, opts)
	require.Equal(t, 2, optind)
}

func TestParseShortOptsAttachedArg(t *testing.T) {
	opts, optind, err := parseShortOpts([]string{"-nthere", "rest"}, "n:")
	require.NoError(t, err)
	require.Equal(t, []parsedOption{{letter: 'n', arg: "there", hasArg: true}}, opts)
	require.Equal(t, 1, optind)
}

func TestParseShortOptsUnknownOption(t *testing.T) {
	_, _, err := parseShortOpts([]string{"-z"}, "abc:d")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unknown option")
}

func TestParseShortOptsMissingOptArg(t *testing.T) {
	_, _, err := parseShortOpts([]string{"-n"}, "n:")
	require.Error(t, err)
}

func TestParseShortOptsStopsAtNonOption(t *testing.T) {
	opts, optind, err := parseShortOpts([]string{"-a", "plain", "-b"}, "ab")
	require.NoError(t, err)
	require.Equal(t, []parsedOption{{letter: 'a'}}, opts)
	require.Equal(t, 1, optind)
}

func TestGrabArgsUnknownOptionAbortsBinding(t *testing.T) {
	mc := newTestContext()
	mc.Table.Add("greet", "n:", "hello %{-n*}", LevelCmdline)
	_, err := Expand(mc, "%greet -z bad\n")
	require.Error(t, err)
	require.Nil(t, mc.Table.find("0"))
}
