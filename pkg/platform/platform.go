// Package platform defines the validated platform name type and the
// resolver that turns the mapping store into the (real path, repo path)
// pairs relevant to the current machine.
package platform

import (
	"os"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"github.com/Duckilicious/sggit/pkg/errors"
)

// Platform names a machine class, e.g. "linux" or "work-laptop".
type Platform string

// Canonical platform names
const (
	Linux   Platform = "linux"
	MacOS   Platform = "macos"
	Windows Platform = "windows"
	FreeBSD Platform = "freebsd"
	OpenBSD Platform = "openbsd"
	NetBSD  Platform = "netbsd"
	Android Platform = "android"
	WSL     Platform = "wsl"
)

var canonical = map[Platform]bool{
	Linux: true, MacOS: true, Windows: true, FreeBSD: true,
	OpenBSD: true, NetBSD: true, Android: true, WSL: true,
}

var builtinAliases = map[string]Platform{
	"darwin": MacOS,
	"osx":    MacOS,
	"mac":    MacOS,
	"win":    Windows,
	"win32":  Windows,
	"win64":  Windows,
}

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// String returns the platform name
func (p Platform) String() string {
	return string(p)
}

// IsCanonical reports whether p is one of the recognized platform names.
func (p Platform) IsCanonical() bool {
	return canonical[p]
}

// Canonical returns the recognized platform names, sorted.
func Canonical() []Platform {
	names := make([]Platform, 0, len(canonical))
	for p := range canonical {
		names = append(names, p)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Parser normalizes user supplied platform names.
type Parser struct {
	aliases map[string]Platform
	strict  bool
}

// NewParser returns a parser with extra aliases on top of the built-in ones.
// In strict mode names outside the canonical set are rejected.
func NewParser(aliases map[string]string, strict bool) *Parser {
	merged := make(map[string]Platform, len(builtinAliases)+len(aliases))
	for k, v := range builtinAliases {
		merged[k] = v
	}
	for k, v := range aliases {
		merged[normalize(k)] = Platform(normalize(v))
	}
	return &Parser{aliases: merged, strict: strict}
}

var defaultParser = NewParser(nil, false)

// Parse normalizes s with the built-in aliases and no strict checking.
func Parse(s string) (Platform, error) {
	return defaultParser.Parse(s)
}

// MustParse is like Parse but panics on error. Intended for tests and
// constants.
func MustParse(s string) Platform {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse trims and lowercases s, resolves aliases and validates the result.
func (ps *Parser) Parse(s string) (Platform, error) {
	name := normalize(s)
	if name == "" {
		return "", errors.New(errors.ErrInvalidInput, "platform name cannot be empty")
	}
	if alias, ok := ps.aliases[name]; ok {
		name = string(alias)
	}
	if !namePattern.MatchString(name) {
		return "", errors.Newf(errors.ErrInvalidInput,
			"invalid platform name %q: use lowercase letters, digits, '.', '_' or '-'", s).
			WithDetail("platform", s)
	}
	p := Platform(name)
	if ps.strict && !p.IsCanonical() {
		return "", errors.Newf(errors.ErrInvalidInput,
			"unknown platform %q (platform.strict is enabled)", s).
			WithDetail("platform", s)
	}
	return p, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Current returns the platform of the running machine. Linux under WSL
// reports "wsl".
func Current() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		if os.Getenv("WSL_DISTRO_NAME") != "" {
			return WSL
		}
		return Linux
	default:
		return Platform(runtime.GOOS)
	}
}
