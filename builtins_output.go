package rpmmacro

// doOutput expands msg and emits it: echo/warn go to the logger's warning
// channel, error goes to the error channel (the default DiscardLogger drops
// both).
// Expansion continues regardless, matching the RPMLOG_NOTICE/RPMLOG_ERR
// split RPM itself uses for %echo/%warn versus %error.
func (s *expansionSession) doOutput(depth int, isError bool, msg string) error {
	text, err := s.expandToString(depth, msg)
	if err != nil {
		return err
	}
	if isError {
		s.mc.Logger.Errorf("%s", text)
	} else {
		s.mc.Logger.Warningf("%s", text)
	}
	return nil
}

// doLua hands the braced body of %{lua: ...} to the configured scripting
// host and appends its captured output. A nil host (nilScriptHost) yields
// a runtime error rather than panicking.
func (s *expansionSession) doLua(buf *expansionBuffer, depth int, body string, hasCond bool) error {
	if !hasCond {
		return nil
	}
	host := s.mc.Script
	if host == nil {
		host = nilScriptHost{}
	}
	out, err := host.Eval(body)
	if err != nil {
		return wrap("lua", err)
	}
	buf.appendString(out)
	return nil
}
