package rpmmacro

import "strings"

// splitArgs tokenizes an argument region on ASCII space and tab only, with
// no quoting.
func splitArgs(s string) []string {
	var out []string
	i := 0
	for i < len(s) {
		for i < len(s) && isBlank(s[i]) {
			i++
		}
		if i >= len(s) {
			break
		}
		start := i
		for i < len(s) && !isBlank(s[i]) {
			i++
		}
		out = append(out, s[start:i])
	}
	return out
}

// parsedOption is one short option matched against a macro's opts spec
// during argument binding (grabArgs).
type parsedOption struct {
	letter byte
	arg    string // "" if the option takes no argument
	hasArg bool
}

// parseShortOpts is a fresh, self-contained short-option parser modeled on
// getopt(3)'s semantics against an option string like "abc:d" (':' after a
// letter means that option takes an argument). Deliberately avoids
// process-global getopt state, since separate macro contexts may be
// expanded from different goroutines at the same time.
//
// It returns the parsed options, in encounter order, and the index into
// args of the first non-option argument (argv[optind] in the original).
// Parsing stops at the first argument that doesn't start with '-', or at
// "--", matching conventional short-option parsing. An unknown option
// letter or an option missing its required argument is reported via err.
func parseShortOpts(args []string, opts string) ([]parsedOption, int, error) {
	var parsed []parsedOption
	i := 0
	for i < len(args) {
		a := args[i]
		if a == "--" {
			i++
			break
		}
		if len(a) < 2 || a[0] != '-' {
			break
		}

		// One arg may bundle several no-argument options, e.g. "-ab".
		j := 1
		consumed := false
		for j < len(a) {
			c := a[j]
			idx := strings.IndexByte(opts, c)
			if idx < 0 {
				return parsed, i, newError("argv", -1, string(c),
					errUnknownOption(c))
			}
			takesArg := idx+1 < len(opts) && opts[idx+1] == ':'
			if !takesArg {
				parsed = append(parsed, parsedOption{letter: c})
				j++
				continue
			}
			// Option takes an argument: rest of this token (if any), else
			// the next token.
			if j+1 < len(a) {
				parsed = append(parsed, parsedOption{letter: c, arg: a[j+1:], hasArg: true})
			} else if i+1 < len(args) {
				parsed = append(parsed, parsedOption{letter: c, arg: args[i+1], hasArg: true})
				consumed = true
			} else {
				return parsed, i, newError("argv", -1, string(c),
					errMissingOptArg(c))
			}
			j = len(a)
		}
		i++
		if consumed {
			i++
		}
	}
	return parsed, i, nil
}

type optionError struct {
	kind   string
	letter byte
}

func (e *optionError) Error() string {
	switch e.kind {
	case "unknown":
		return "Unknown option " + string(e.letter)
	case "missing":
		return "option -" + string(e.letter) + " requires an argument"
	}
	return "option error"
}

func errUnknownOption(c byte) error  { return &optionError{kind: "unknown", letter: c} }
func errMissingOptArg(c byte) error  { return &optionError{kind: "missing", letter: c} }
