package rpmmacro

import (
	"fmt"
	"strings"
)

// defaultMaxDepth is the recursion ceiling used until a macro file is
// loaded (which resets it back to this value).
const defaultMaxDepth = 16

// expansionSession carries the state for one top-level Expand call: the
// macro table being consulted, the collaborators, and the trace flags
// toggled by %trace. It is the Go counterpart of RPM's own MacroBuf, split
// from the growable output buffer (expansionBuffer) so that private,
// isolated sub-expansions (expandThis in the original) can share the
// session's table/collaborators/depth accounting while writing into a
// buffer of their own.
type expansionSession struct {
	mc          *MacroContext
	table       *MacroTable
	macroTrace  bool
	expandTrace bool
}

// expand is the main macro recursion loop. It consumes src character by
// character, appending literal text and substitution results to buf,
// recursing for nested forms. depth is the recursion depth BEFORE this call
// is charged; expand increments it first thing, exactly as expandMacro does
// with mb->depth.
func (s *expansionSession) expand(buf *expansionBuffer, depth int, src string) error {
	depth++
	if depth > s.mc.maxDepth() {
		s.expandTrace = true
		s.mc.Logger.Errorf("Too many levels of recursion in macro expansion. It is likely caused by recursive macro declaration.")
		return newError("expand", -1, "", errTooManyLevels)
	}

	tpos := buf.len()
	i := 0
	var rc error

	for i < len(src) && rc == nil {
		c := src[i]
		i++
		if c != '%' {
			buf.appendByte(c)
			continue
		}
		if i >= len(src) {
			buf.appendByte(c)
			continue
		}
		if src[i] == '%' {
			buf.appendByte('%')
			i++
			continue
		}

		tpos = buf.len()
		formStart := i // position just past the triggering '%'

		var (
			flags   macroFlags
			name    string
			after   int // index in src just past the whole %form, where scanning resumes
			condArg string
			hasCond bool
			argArea string
			hasArgs bool
		)

		switch src[i] {
		case '(':
			// %(...) shell escape. matchChar must see the opening
			// '(' itself (s[0] == pl) so nested %(...)/%{...} inside
			// the command are leveled correctly; it returns the index,
			// relative to that same string, of the matching ')'.
			rest := src[i:]
			m := matchChar(rest, '(', ')')
			if m < 0 {
				s.mc.Logger.Errorf("Unterminated (: %s", rest)
				return newError("expand", i, "(", errUnterminated)
			}
			cmdSrc := rest[1:m]
			if s.macroTrace {
				s.printMacro(depth, rest[:m+1])
			}
			cmd, cerr := s.expandToString(depth, cmdSrc)
			if cerr != nil {
				rc = cerr
				i = i + m + 1
				continue
			}
			out, rerr := s.mc.Shell.Run(cmd)
			if rerr != nil {
				rc = rerr
				i = i + m + 1
				continue
			}
			for len(out) > 0 && isEOL(out[len(out)-1]) {
				out = out[:len(out)-1]
			}
			buf.appendString(out)
			i = i + m + 1
			continue

		case '{':
			// Likewise: include the opening '{' itself in the slice
			// matchChar scans, for the same nesting reason.
			rest := src[i:]
			m := matchChar(rest, '{', '}')
			if m < 0 {
				s.mc.Logger.Errorf("Unterminated {: %s", rest)
				return newError("expand", i, "{", errUnterminated)
			}
			inner := rest[1:m] // between { and }
			whole := rest[:m+1]
			after = i + m + 1

			var fi int
			flags, fi = parseFlags(inner)
			nm, ni := parseName(inner[fi:])
			if ni < 0 {
				s.mc.Logger.Errorf("Invalid macro name: %%%s", whole)
				return newError("expand", i, whole, errInvalidName)
			}
			name = nm
			rest2 := inner[fi+ni:]
			switch {
			case rest2 == "":
				// pure reference
			case rest2[0] == ':':
				hasCond = true
				condArg = rest2[1:]
			case rest2[0] == ' ' || rest2[0] == '\t':
				hasArgs = true
				argArea = rest2[1:]
			default:
				s.mc.Logger.Errorf("Invalid macro syntax: %%%s", whole)
				return newError("expand", i, whole, errInvalidSyntax)
			}

			if s.macroTrace {
				s.printMacro(depth, whole)
			}

		default:
			rest := src[i:]
			var fi int
			flags, fi = parseFlags(rest)
			nm, ni := parseName(rest[fi:])
			if ni < 0 {
				// No valid name: emit the '%' literally and resume right
				// after it.
				buf.appendByte('%')
				continue
			}
			name = nm
			nameEnd := i + fi + ni
			after = nameEnd
			if nameEnd < len(src) && isBlank(src[nameEnd]) {
				hasArgs = true
				nl := strings.IndexByte(src[nameEnd:], '\n')
				if nl < 0 {
					argArea = src[nameEnd+1:]
					after = len(src)
				} else {
					argArea = src[nameEnd+1 : nameEnd+nl]
					after = nameEnd + nl + 1
				}
			}
			if s.macroTrace {
				s.printMacro(depth, src[i:after])
			}
		}

		err := s.dispatch(buf, depth, name, flags, hasCond, condArg, hasArgs, argArea)
		if err == errUnknownMacro {
			// Rewind: re-walk the bytes of this %form as literal text, so
			// anything nested inside gets re-parsed rather than copied
			// verbatim. See errUnknownMacro in dispatch.go.
			buf.appendByte('%')
			i = formStart
			continue
		}
		if err != nil {
			rc = err
		}
		i = after
	}

	if rc != nil || s.expandTrace {
		s.printExpansion(depth, buf.since(tpos))
	}
	return rc
}

// expandToString expands src into a private buffer (expandThis in the
// original): used wherever a result is needed as a Go string rather than
// appended straight to the caller's output (shell-escape commands, op
// arguments, %echo/%warn/%error messages, %global's pre-expansion).
func (s *expansionSession) expandToString(depth int, src string) (string, error) {
	buf := &expansionBuffer{}
	err := s.expand(buf, depth, src)
	return buf.String(), err
}

var errTooManyLevels = fmt.Errorf("too many levels of recursion in macro expansion")
var errUnterminated = fmt.Errorf("unterminated macro expression")
var errInvalidName = fmt.Errorf("invalid macro name")
var errInvalidSyntax = fmt.Errorf("invalid macro syntax")
