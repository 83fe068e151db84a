package rpmmacro

import (
	"fmt"
	"io"
)

// markUsed increments the entry's use counter. For ordinary macros it is
// called only on successful substitution of this specific entry's body; a
// "-X" option reference marks its entry used as soon as it is looked up.
// Either way it counts this specific entry, not the ones it shadows or that
// shadow it.
func (e *MacroEntry) markUsed() {
	e.used++
}

// Dump emits every live entry in sorted order as
// "level{'=' if used>0 else ':'} name[(opts)]<tab>body", followed by a
// trailing count line, matching RPM's own rpmDumpMacroTable.
func (t *MacroTable) Dump(w io.Writer) error {
	fmt.Fprintln(w, "========================")
	nactive := 0
	for _, name := range t.sortedNames() {
		me := t.byName[name]
		if me == nil {
			continue
		}
		used := ':'
		if me.used > 0 {
			used = '='
		}
		line := fmt.Sprintf("%3d%c %s", int(me.Level), used, me.name)
		if me.Opts != "" {
			line += fmt.Sprintf("(%s)", me.Opts)
		}
		if me.Body != "" {
			line += "\t" + me.Body
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		nactive++
	}
	_, err := fmt.Fprintf(w, "======================== active %d\n", nactive)
	return err
}
