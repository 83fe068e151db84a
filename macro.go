// Package rpmmacro implements a recursive, %-introduced macro expansion
// engine over a scoped, stacked macro table, after the design of RPM's
// rpmio/macro.c: a small recursive-descent parser, built-in operators, and
// parameterized macros with short-option argument binding.
package rpmmacro

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Version is the package's semantic version string.
const Version = "1.0.0"

// MacroContext bundles a MacroTable with the external collaborators an
// expansion may call out to: Logger, Shell runner, (optional) scripting
// host, and environment/config provider. It is the Go counterpart of
// rpmMacroContext in original_source/rpmio/macro.c.
//
// A MacroContext is not safe for concurrent mutation; the embedder must
// serialize writes to GlobalContext and CLIContext itself.
type MacroContext struct {
	Table *MacroTable

	Logger Logger
	Shell  ShellRunner
	Script ScriptHost
	Env    EnvProvider

	// MaxDepth is the recursion ceiling, reset to 16 by LoadFile/Init.
	MaxDepth int

	// Verbose gates the %verbose built-in.
	Verbose bool
}

// NewMacroContext returns an empty context with the default collaborators:
// a discarding logger, the real system shell, no scripting host, and the
// real OS environment.
func NewMacroContext() *MacroContext {
	return &MacroContext{
		Table:    NewMacroTable(),
		Logger:   DiscardLogger{},
		Shell:    OSShellRunner{},
		Script:   nilScriptHost{},
		Env:      OSEnvProvider{},
		MaxDepth: defaultMaxDepth,
	}
}

func (mc *MacroContext) maxDepth() int {
	if mc.MaxDepth <= 0 {
		return defaultMaxDepth
	}
	return mc.MaxDepth
}

// dumpTable writes the context's table to stderr, the %dump built-in's
// destination.
func (mc *MacroContext) dumpTable() error {
	return mc.Table.Dump(os.Stderr)
}

// GlobalContext and CLIContext are the two process-wide singletons. They
// are never destroyed implicitly; callers that want an isolated table
// should construct their own MacroContext instead. Neither is exposed as
// an ambient global to any built-in -- every operation here accepts an
// explicit *MacroContext, defaulting to GlobalContext only when given nil.
var (
	GlobalContext *MacroContext
	CLIContext    *MacroContext
)

func init() {
	GlobalContext = NewMacroContext()
	CLIContext = NewMacroContext()
}

func resolve(ctx *MacroContext) *MacroContext {
	if ctx == nil {
		return GlobalContext
	}
	return ctx
}

func newSession(ctx *MacroContext) *expansionSession {
	ctx = resolve(ctx)
	return &expansionSession{mc: ctx, table: ctx.Table}
}

// Expand allocates and returns src fully macro-expanded against ctx (nil
// meaning GlobalContext). It never truncates.
func Expand(ctx *MacroContext, src string) (string, error) {
	s := newSession(ctx)
	return s.expandToString(0, src)
}

// ExpandInto expands src and copies up to len(buf)-1 bytes into buf,
// truncating if needed, returning the number of bytes written and any
// expansion error.
func ExpandInto(ctx *MacroContext, buf []byte, src string) (int, error) {
	out, err := Expand(ctx, src)
	if len(buf) == 0 {
		return 0, err
	}
	n := copy(buf[:len(buf)-1], out)
	buf[n] = 0
	return n, err
}

// Define parses exactly one "%define"-style string -- "name[(opts)] body",
// without the leading "%define" keyword -- and installs it at level.
func Define(ctx *MacroContext, spec string, level Level) error {
	s := newSession(ctx)
	return s.doDefine(0, spec, level, false)
}

// Add installs name directly at level with no expansion, the public
// addMacro operation.
func Add(ctx *MacroContext, name, opts, body string, level Level) {
	resolve(ctx).Table.Add(name, opts, body, level)
}

// Del pops name's top-of-stack entry, the public delMacro operation.
func Del(ctx *MacroContext, name string) {
	resolve(ctx).Table.Del(name)
}

// LoadFile reads macro definitions from path at level MACROFILES and
// resets the context's recursion ceiling back to 16. Every line starting
// with '%' is passed to define at level MACROFILES.
func LoadFile(ctx *MacroContext, path string) error {
	c := resolve(ctx)
	if err := loadMacroFile(c, path); err != nil {
		return err
	}
	c.MaxDepth = defaultMaxDepth
	return nil
}

// Init glob-expands each colon-separated element of globs (skipping
// entries ending in .rpmnew/.rpmsave/.rpmorig), loads each matching file,
// then re-imports every entry from CLIContext into ctx at level CMDLINE.
func Init(ctx *MacroContext, globs string) error {
	c := resolve(ctx)
	for _, pattern := range strings.Split(globs, ":") {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return wrap("init", err)
		}
		for _, m := range matches {
			if strings.HasSuffix(m, ".rpmnew") || strings.HasSuffix(m, ".rpmsave") || strings.HasSuffix(m, ".rpmorig") {
				continue
			}
			if err := loadMacroFile(c, m); err != nil {
				return err
			}
		}
	}
	c.MaxDepth = defaultMaxDepth
	LoadFrom(CLIContext, ctx, LevelCmdline)
	return nil
}

// LoadFrom imports every top-of-stack entry from src into dst at level.
func LoadFrom(src, dst *MacroContext, level Level) {
	resolve(dst).Table.LoadFrom(resolve(src).Table, level)
}

// Free pops every entry in every stack of ctx, releasing its contents.
func Free(ctx *MacroContext) {
	resolve(ctx).Table.Free()
}

// ExpandNumeric expands expr, then interprets the result as a boolean
// (leading 'Y'/'y' -> 1, leading 'N'/'n' -> 0, matching only the first
// character, not the whole string) or else parses it as a base-auto
// integer; an unexpanded macro (result still starts with '%') or a parse
// failure yields 0.
func ExpandNumeric(ctx *MacroContext, expr string) int {
	out, err := Expand(ctx, expr)
	if err != nil {
		return 0
	}
	if out == "" {
		return 0
	}
	switch out[0] {
	case 'Y', 'y':
		return 1
	case 'N', 'n':
		return 0
	case '%':
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(out), 0, 64)
	if err != nil {
		return 0
	}
	return int(n)
}

// Dump writes a human-readable table dump of ctx to sink.
func Dump(ctx *MacroContext, sink io.Writer) error {
	return resolve(ctx).Table.Dump(sink)
}
