package rpmmacro

import "strings"

// doOperator expands arg, transforms it per one of the built-in operators,
// and recursively expands the result into buf.
func (s *expansionSession) doOperator(buf *expansionBuffer, depth int, op string, negate bool, arg string) error {
	val, err := s.expandToString(depth, arg)
	if err != nil {
		return err
	}

	var out string
	switch op {
	case "basename":
		if i := strings.LastIndexByte(val, '/'); i >= 0 {
			out = val[i+1:]
		} else {
			out = val
		}
	case "dirname":
		if i := strings.LastIndexByte(val, '/'); i >= 0 {
			out = val[:i]
		} else {
			out = val
		}
	case "suffix":
		if i := strings.LastIndexByte(val, '.'); i >= 0 {
			out = val[i+1:]
		}
	case "expand":
		out = val
	case "verbose":
		on := s.mc.Verbose
		if negate {
			on = !on
		}
		if on {
			out = val
		}
	case "uncompress":
		t := strings.TrimLeft(val, " \t")
		if i := strings.IndexAny(t, " \t"); i >= 0 {
			t = t[:i]
		}
		out = uncompressCommand(t)
	case "url2path", "u2p":
		out = url2path(val)
	case "getenv":
		out = s.mc.Env.Getenv(val)
	case "getconfdir":
		out = s.mc.Env.ConfigDir()
	case "S":
		if val != "" && allDigits(val) {
			out = "%SOURCE" + val
		} else {
			out = val
		}
	case "P":
		if val != "" && allDigits(val) {
			out = "%PATCH" + val
		} else {
			out = val
		}
	case "F":
		out = "file" + val + ".file"
	}

	return s.expand(buf, depth, out)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// url2path strips a URL's scheme and authority, leaving the path; an empty
// path becomes "/".
func url2path(s string) string {
	if i := strings.Index(s, "://"); i >= 0 {
		rest := s[i+3:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			s = rest[j:]
		} else {
			s = ""
		}
	}
	if s == "" {
		return "/"
	}
	return s
}
