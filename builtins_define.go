package rpmmacro

import "strings"

// doDefine parses one "%define"/"%global" form -- NAME[(OPTS)] BODY -- out
// of argArea and installs it at level. expandBody pre-expands the body once
// before installing it, the one difference between %define and %global.
//
// Naming and body errors are logged and leave the table untouched; they do
// not fail the surrounding expansion.
func (s *expansionSession) doDefine(depth int, argArea string, level Level, expandBody bool) error {
	t := argArea

	skipBlank := func(t string) string {
		i := 0
		for i < len(t) && isBlank(t[i]) {
			i++
		}
		return t[i:]
	}

	t = skipBlank(t)
	ni := 0
	for ni < len(t) && (isAlnum(t[ni]) || t[ni] == '_') {
		ni++
	}
	name := t[:ni]
	t = t[ni:]

	var opts string
	hasOpts := false
	optsTerminated := true
	if strings.HasPrefix(t, "(") {
		hasOpts = true
		t = t[1:]
		oi := strings.IndexByte(t, ')')
		if oi < 0 {
			opts = t
			optsTerminated = false
			t = ""
		} else {
			opts = t[:oi]
			t = t[oi+1:]
		}
	}

	sbody := t
	bodyStart := skipBlank(t)

	var body string
	if strings.HasPrefix(bodyStart, "{") {
		// XXX permit silent {...} grouping.
		m := matchChar(bodyStart, '{', '}')
		if m < 0 {
			s.mc.Logger.Errorf("Macro %%%s has unterminated body", name)
			return nil
		}
		body = bodyStart[1:m]
	} else {
		var b strings.Builder
		bc, pc := 0, 0
		i := 0
		for i < len(bodyStart) {
			c := bodyStart[i]
			if bc == 0 && pc == 0 && isEOL(c) {
				break
			}
			switch c {
			case '\\':
				if i+1 < len(bodyStart) {
					i++
					b.WriteByte(bodyStart[i])
					i++
					continue
				}
			case '%':
				if i+1 < len(bodyStart) {
					switch bodyStart[i+1] {
					case '{':
						b.WriteByte('%')
						b.WriteByte('{')
						i += 2
						bc++
						continue
					case '(':
						b.WriteByte('%')
						b.WriteByte('(')
						i += 2
						pc++
						continue
					case '%':
						b.WriteByte('%')
						b.WriteByte('%')
						i += 2
						continue
					}
				}
			case '{':
				if bc > 0 {
					bc++
				}
			case '}':
				if bc > 0 {
					bc--
				}
			case '(':
				if pc > 0 {
					pc++
				}
			case ')':
				if pc > 0 {
					pc--
				}
			}
			b.WriteByte(c)
			i++
		}
		if bc != 0 || pc != 0 {
			s.mc.Logger.Errorf("Macro %%%s has unterminated body", name)
			return nil
		}
		body = b.String()
		for len(body) > 0 && (isBlank(body[len(body)-1]) || isEOL(body[len(body)-1])) {
			body = body[:len(body)-1]
		}
	}

	// A length-2 name is always invalid; every other length (single
	// letters included) is fine, matching the identifier rule parseName
	// already enforces for macro references.
	if !validDefineName(name) {
		directive := "%define"
		if level == LevelGlobal {
			directive = "%global"
		}
		s.mc.Logger.Errorf("Macro %%%s has illegal name (%s)", name, directive)
		return nil
	}
	if hasOpts && !optsTerminated {
		s.mc.Logger.Errorf("Macro %%%s has unterminated opts", name)
		return nil
	}
	if len(body) < 1 {
		s.mc.Logger.Errorf("Macro %%%s has empty body", name)
		return nil
	}
	if !(len(sbody) > 0 && isBlank(sbody[0])) && !(len(sbody) >= 2 && sbody[0] == '\\' && isEOL(sbody[1])) {
		s.mc.Logger.Warningf("Macro %%%s needs whitespace before body", name)
	}

	if expandBody {
		expanded, err := s.expandToString(depth, body)
		if err != nil {
			s.mc.Logger.Errorf("Macro %%%s failed to expand", name)
			return nil
		}
		body = expanded
	}

	// Always installs one level below the level it was handed, for both
	// %define (level = current depth) and %global (level = LevelGlobal):
	// a %global definition therefore lands one below LevelGlobal, not at
	// it. This is deliberate, not an off-by-one to fix.
	s.table.Add(name, opts, body, level-1)
	return nil
}

// validDefineName reports whether name is an acceptable %define/%global/
// %undefine identifier: starts with a letter or underscore and is any
// length other than exactly two.
func validDefineName(name string) bool {
	return name != "" && (isAlpha(name[0]) || name[0] == '_') && len(name) != 2
}

// doUndefine parses "%undefine NAME" and pops its top entry.
func (s *expansionSession) doUndefine(argArea string) error {
	t := argArea
	i := 0
	for i < len(t) && isBlank(t[i]) {
		i++
	}
	t = t[i:]
	ni := 0
	for ni < len(t) && (isAlnum(t[ni]) || t[ni] == '_') {
		ni++
	}
	name := t[:ni]

	if !validDefineName(name) {
		s.mc.Logger.Errorf("Macro %%%s has illegal name (%%undefine)", name)
		return nil
	}

	s.table.Del(name)
	return nil
}
