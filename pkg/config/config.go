package config

import (
	"strings"
	"text/template"

	"github.com/Duckilicious/sggit/pkg/errors"
)

// DefaultSyncPolicy is the only registered sync policy.
const DefaultSyncPolicy = "external-newer-wins"

// Commit holds commit message and identity settings
type Commit struct {
	Subject     string `koanf:"subject" toml:"subject"`
	Template    string `koanf:"template" toml:"template"`
	AuthorName  string `koanf:"author_name" toml:"author_name"`
	AuthorEmail string `koanf:"author_email" toml:"author_email"`
}

// Sync holds sync settings
type Sync struct {
	Policy string `koanf:"policy" toml:"policy"`
}

// Platform holds platform name handling
type Platform struct {
	// Strict rejects names outside the canonical set
	Strict bool `koanf:"strict" toml:"strict"`
	// Aliases maps extra names onto platform names
	Aliases map[string]string `koanf:"aliases" toml:"aliases"`
}

// VCS holds version control settings
type VCS struct {
	GitBinary string `koanf:"git_binary" toml:"git_binary"`
}

// Output holds presentation settings
type Output struct {
	Format string `koanf:"format" toml:"format"`
}

// Config is the main configuration structure
type Config struct {
	Commit   Commit   `koanf:"commit" toml:"commit"`
	Sync     Sync     `koanf:"sync" toml:"sync"`
	Platform Platform `koanf:"platform" toml:"platform"`
	VCS      VCS      `koanf:"vcs" toml:"vcs"`
	Output   Output   `koanf:"output" toml:"output"`
}

var validFormats = map[string]bool{"auto": true, "term": true, "text": true, "json": true}

// Default returns the configuration built from the embedded defaults only.
func Default() *Config {
	cfg, err := load(nil)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(err)
	}
	return cfg
}

// Validate checks values that cannot be expressed in the TOML types.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sync.Policy) == "" {
		return errors.New(errors.ErrConfigInvalid, "sync.policy cannot be empty")
	}
	if strings.TrimSpace(c.VCS.GitBinary) == "" {
		return errors.New(errors.ErrConfigInvalid, "vcs.git_binary cannot be empty")
	}
	if !validFormats[c.Output.Format] {
		return errors.Newf(errors.ErrConfigInvalid, "output.format %q is not one of auto, term, text, json", c.Output.Format)
	}
	if _, err := template.New("commit").Parse(c.Commit.Template); err != nil {
		return errors.Wrap(err, errors.ErrConfigInvalid, "commit.template does not parse")
	}
	return nil
}
