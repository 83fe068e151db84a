package rpmmacro

import (
	lua "github.com/yuin/gopher-lua"
)

// ScriptHost is the optional embedded scripting collaborator: it evaluates
// a script snippet and returns its captured output. A nil host is allowed;
// %{lua: ...} then fails with a runtime-class error instead of panicking.
type ScriptHost interface {
	Eval(script string) (output string, err error)
}

// GopherLuaHost backs %{lua: ...} with a real embedded Lua interpreter,
// grounded on oisee-minz's minzc/pkg/meta/lua_evaluator.go (lua.NewState,
// SetGlobal, NewFunction, DoString). Unlike that evaluator, this host
// overrides the global "print" to append to a capture buffer instead of
// writing to stdout, mirroring rpmluaPushPrintBuffer/rpmluaPopPrintBuffer
// in original_source/rpmio/macro.c.
type GopherLuaHost struct {
	// NewState, if set, is called to obtain a fresh *lua.LState per Eval
	// call instead of the package default. Tests can use this to install
	// extra globals.
	NewState func() *lua.LState
}

func (h *GopherLuaHost) Eval(script string) (string, error) {
	newState := h.NewState
	if newState == nil {
		newState = lua.NewState
	}
	L := newState()
	defer L.Close()

	var captured []byte
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		for i := 1; i <= n; i++ {
			if i > 1 {
				captured = append(captured, '\t')
			}
			captured = append(captured, []byte(L.ToStringMeta(L.Get(i)).String())...)
		}
		captured = append(captured, '\n')
		return 0
	}))

	if err := L.DoString(script); err != nil {
		return "", wrap("lua", err)
	}

	return string(captured), nil
}

// nilScriptHost is used when no host is configured; %{lua: ...} fails with
// a clear runtime error rather than a nil-pointer panic.
type nilScriptHost struct{}

func (nilScriptHost) Eval(string) (string, error) {
	return "", newError("lua", -1, "", errLuaUnsupported)
}

var errLuaUnsupported = luaUnsupportedError{}

type luaUnsupportedError struct{}

func (luaUnsupportedError) Error() string {
	return "embedded scripting host not configured"
}
