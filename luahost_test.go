package rpmmacro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGopherLuaHostCapturesPrint(t *testing.T) {
	host := &GopherLuaHost{}
	out, err := host.Eval(`print("hello", "world")`)
	require.NoError(t, err)
	require.Equal(t, "hello\tworld\n", out)
}

func TestGopherLuaHostDoesNotLeakToStdout(t *testing.T) {
	host := &GopherLuaHost{}
	out, err := host.Eval(`print(1) print(2)`)
	require.NoError(t, err)
	require.Equal(t, "1\n2\n", out)
}

func TestGopherLuaHostScriptError(t *testing.T) {
	host := &GopherLuaHost{}
	_, err := host.Eval(`this is not lua (`)
	require.Error(t, err)
}

func TestNilScriptHostFailsCleanly(t *testing.T) {
	h := nilScriptHost{}
	_, err := h.Eval("print(1)")
	require.Error(t, err)
}

func TestDoLuaUsesConfiguredHost(t *testing.T) {
	mc := newTestContext()
	mc.Script = &GopherLuaHost{}
	out, err := Expand(mc, `%{lua: print("from lua") }`)
	require.NoError(t, err)
	require.Equal(t, "from lua\n", out)
}

func TestDoLuaWithoutHostFails(t *testing.T) {
	mc := newTestContext()
	_, err := Expand(mc, `%{lua: print("nope") }`)
	require.Error(t, err)
}
