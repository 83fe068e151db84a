package rpmmacro

import (
	"bufio"
	"io"
	"os"
)

// loadMacroFile reads path line by line via readLogicalLine, skipping
// blank lines and any line whose first non-blank character isn't '%', and
// passes every remaining line to doDefine at level MACROFILES.
func loadMacroFile(ctx *MacroContext, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return wrap("load", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	s := &expansionSession{mc: ctx, table: ctx.Table}

	for {
		line, err := readLogicalLine(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return wrap("load", err)
		}

		t := line
		i := 0
		for i < len(t) && isBlank(t[i]) {
			i++
		}
		t = t[i:]
		if t == "" || t[0] != '%' {
			continue
		}

		if derr := s.doDefine(0, t[1:], LevelMacrofiles, false); derr != nil {
			return derr
		}
	}
	return nil
}
