package rpmmacro

import "errors"

// dispatch handles one parsed %form: flag/name already parsed, plus
// whichever of a conditional ":" body or a parameterized-call argument
// area followed it. It routes, in order, to built-in dispatch,
// conditional/existence logic, and user-defined substitution.
func (s *expansionSession) dispatch(buf *expansionBuffer, depth int, name string, flags macroFlags, hasCond bool, condBody string, hasArgs bool, argArea string) error {
	// Directives that consume the rest of the form themselves (no
	// conditional/existence logic applies to them).
	switch name {
	case "global":
		return s.doDefine(depth, argArea, LevelGlobal, true)
	case "define":
		return s.doDefine(depth, argArea, Level(depth), false)
	case "undefine":
		return s.doUndefine(argArea)
	case "echo", "warn", "error":
		msg := argArea
		if hasCond {
			msg = condBody
		}
		return s.doOutput(depth, name == "error", msg)
	case "trace":
		on := depth
		if flags.negate {
			on = 0
		}
		s.macroTrace = on != 0
		s.expandTrace = on != 0
		return nil
	case "dump":
		return s.mc.dumpTable()
	case "lua":
		return s.doLua(buf, depth, condBody, hasCond)
	case "basename", "dirname", "suffix", "expand", "verbose", "uncompress",
		"url2path", "u2p", "getenv", "getconfdir", "S", "P", "F":
		arg := ""
		if hasCond {
			arg = condBody
		} else if hasArgs {
			arg = argArea
		}
		return s.doOperator(buf, depth, name, flags.negate, arg)
	}

	me := s.table.find(name)

	// "-X" option-reference form: not a symbol lookup, matches
	// argument-bound entries from grabArgs.
	if len(name) > 0 && name[0] == '-' {
		if me != nil {
			me.markUsed()
		}
		if (me == nil && !flags.negate) || (me != nil && flags.negate) {
			return nil
		}
		if hasCond {
			return s.expand(buf, depth, condBody)
		}
		if me != nil && me.Body != "" {
			return s.expand(buf, depth, me.Body)
		}
		return nil
	}

	if flags.chkExist > 0 {
		if (me == nil && !flags.negate) || (me != nil && flags.negate) {
			return nil
		}
		if hasCond {
			return s.expand(buf, depth, condBody)
		}
		if me != nil && me.Body != "" {
			return s.expand(buf, depth, me.Body)
		}
		return nil
	}

	if me == nil {
		// Unknown macro: the form is emitted as-is. RPM does this by
		// backing the scan pointer up to just past the '%' and letting the
		// ordinary literal-copy path re-walk the bytes it already looked
		// at, so anything nested inside (another %macro, a further
		// %{...}) gets a fresh chance to expand. errUnknownMacro tells
		// expand to do the same rewind; dispatch itself writes nothing.
		return errUnknownMacro
	}

	var argErr error
	if me.HasOpts() {
		if hasArgs {
			argErr = s.grabArgs(depth, me, argArea)
		} else {
			s.table.Add("**", "", "", Level(depth))
			s.table.Add("*", "", "", Level(depth))
			s.table.Add("#", "", "0", Level(depth))
			s.table.Add("0", "", me.name, Level(depth))
		}
	}

	var bodyErr error
	if argErr == nil && me.Body != "" {
		bodyErr = s.expand(buf, depth, me.Body)
		if bodyErr == nil {
			me.markUsed()
		}
	}

	if me.HasOpts() {
		s.freeArgs(depth)
	}

	if argErr != nil {
		return argErr
	}
	return bodyErr
}

// errUnknownMacro is a sentinel, never surfaced to a caller of Expand: it
// tells expand's loop to rewind and re-copy the %form it just parsed as
// literal text instead of treating dispatch's return value as a real
// failure.
var errUnknownMacro = errors.New("unknown macro")
