package rpmmacro

import "strings"

// printMacro and printExpansion implement the %trace diagnostics, grounded
// on printMacro/printExpansion in original_source/rpmio/macro.c: a fixed
// chop length of 61-2*depth and an indent of 2*depth+1 spaces, growing
// narrower with depth.

func (s *expansionSession) printMacro(depth int, whole string) {
	chop := 61 - 2*depth
	text := strings.TrimPrefix(whole, "%")
	ellipsis := ""
	if chop > 0 && len(text) > chop {
		text = text[:chop]
		ellipsis = "..."
	}
	indent := strings.Repeat(" ", 2*depth+1)
	s.mc.Logger.Debugf("%3d>%s%%%s^%s", depth, indent, text, ellipsis)
}

func (s *expansionSession) printExpansion(depth int, text string) {
	for len(text) > 0 && isEOL(text[len(text)-1]) {
		text = text[:len(text)-1]
	}
	indent := strings.Repeat(" ", 2*depth+1)
	if text == "" {
		s.mc.Logger.Debugf("%3d<%s(empty)", depth, indent)
		return
	}
	if depth > 0 {
		if idx := strings.LastIndexByte(text, '\n'); idx >= 0 {
			text = text[idx+1:]
		}
		chop := 61 - 2*depth
		if chop > 0 && len(text) > chop {
			text = text[:chop] + "..."
		}
	}
	s.mc.Logger.Debugf("%3d<%s%s", depth, indent, text)
}
