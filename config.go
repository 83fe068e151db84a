package rpmmacro

import "os"

// EnvProvider supplies environment variables and a configuration directory
// path, backing %getenv/%getconfdir.
type EnvProvider interface {
	Getenv(name string) string
	ConfigDir() string
}

// OSEnvProvider backs EnvProvider with the real process environment.
type OSEnvProvider struct {
	// Dir is returned by ConfigDir. Defaults to DefaultConfigDir if empty.
	Dir string
}

// DefaultConfigDir is the fallback configuration directory, following the
// conventional RPM macro-file install location.
const DefaultConfigDir = "/usr/lib/rpm"

func (p OSEnvProvider) Getenv(name string) string {
	return os.Getenv(name)
}

func (p OSEnvProvider) ConfigDir() string {
	if p.Dir != "" {
		return p.Dir
	}
	return DefaultConfigDir
}
