package rpmmacro

import "strconv"

// grabArgs binds the internal per-call macros ("0", "#", "*", "**", "1".."#",
// and each parsed "-X"/"-X*" option) at level Level(depth) before expanding
// a parameterized macro's body.
func (s *expansionSession) grabArgs(depth int, me *MacroEntry, argArea string) error {
	tokens := splitArgs(argArea)

	opts, optind, err := parseShortOpts(tokens, me.Opts)
	if err != nil {
		s.mc.Logger.Errorf("%s", err.Error())
		return err
	}

	rest := tokens[optind:]
	level := Level(depth)

	s.table.Add("0", "", me.name, level)
	s.table.Add("#", "", strconv.Itoa(len(rest)), level)
	s.table.Add("*", "", joinArgs(rest), level)
	s.table.Add("**", "", joinArgs(tokens), level)

	for i, a := range rest {
		s.table.Add(strconv.Itoa(i+1), "", a, level)
	}

	for _, o := range opts {
		name := "-" + string(o.letter)
		if o.hasArg {
			s.table.Add(name, "", name+" "+o.arg, level)
			s.table.Add(name+"*", "", o.arg, level)
		} else {
			s.table.Add(name, "", name, level)
		}
	}

	return nil
}

// freeArgs tears down every binding grabArgs installed for this call,
// popping everything at or above Level(depth).
func (s *expansionSession) freeArgs(depth int) {
	s.table.popAtOrAbove(Level(depth))
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out
}
