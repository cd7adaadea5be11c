package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/Duckilicious/sggit/pkg/errors"
	"github.com/Duckilicious/sggit/pkg/logging"
	"github.com/Duckilicious/sggit/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of configuration environment variables
const EnvPrefix = "SGGIT_"

// envKeys lists the keys that may be set from the environment. Other SGGIT_
// variables (SGGIT_SETTINGS, SGGIT_PLATFORM, ...) belong to other packages.
var envKeys = map[string]bool{
	"commit.subject":      true,
	"commit.template":     true,
	"commit.author_name":  true,
	"commit.author_email": true,
	"sync.policy":         true,
	"platform.strict":     true,
	"platform.aliases":    true,
	"vcs.git_binary":      true,
	"output.format":       true,
}

// Load builds the configuration for a repository. repoRoot may be empty when
// no repository is known yet (init, genconfig).
func Load(repoRoot string) (*Config, error) {
	files := []string{paths.ConfigFile()}
	if repoRoot != "" {
		files = append(files, paths.RepoConfigFile(repoRoot))
	}
	return load(files)
}

func load(files []string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config, then repository overlay, when present
	for _, path := range files {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	// 3. Environment
	if files != nil {
		envK := koanf.New(".")
		// Unknown keys are dropped before unflattening: SGGIT_PLATFORM is a
		// settings override and would otherwise replace the platform table.
		err := envK.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			key := envKeyTransform(s)
			if !envKeys[key] {
				return ""
			}
			return key
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load env vars")
		}
		overrides := envK.All()
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to apply env overrides")
		}
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				stringToStringMapHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to unmarshal configuration")
	}

	if cfg.Platform.Aliases == nil {
		cfg.Platform.Aliases = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKeyTransform maps SGGIT_COMMIT_AUTHOR_NAME to commit.author_name: the
// first underscore separates the section, the rest belong to the key.
func envKeyTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

// stringToStringMapHookFunc decodes "a=b,c=d" (as set from the environment)
// into a map[string]string.
func stringToStringMapHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Map || t.Elem().Kind() != reflect.String {
			return data, nil
		}
		result := make(map[string]string)
		raw := strings.TrimSpace(data.(string))
		if raw == "" {
			return result, nil
		}
		for _, pair := range strings.Split(raw, ",") {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, errors.Newf(errors.ErrConfigInvalid, "malformed map entry %q, want key=value", pair)
			}
			result[strings.TrimSpace(key)] = strings.TrimSpace(value)
		}
		return result, nil
	}
}
