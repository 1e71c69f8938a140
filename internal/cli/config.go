package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// envPrefix prefixes environment overrides, e.g. UNITTO_SEPARATOR.
	envPrefix = "UNITTO"
)

// Configuration keys.
const (
	cfgKeySeparator = "separator"
	cfgKeyPrecision = "precision"
	cfgKeyDataDir   = "data_dir"
	cfgKeyLogLevel  = "log_level"
)

// configKeys lists the keys accepted by "config get" and "config set".
var configKeys = map[string]bool{
	cfgKeySeparator: true,
	cfgKeyPrecision: true,
	cfgKeyDataDir:   true,
	cfgKeyLogLevel:  true,
}

// configFile is the structure written to config.yaml by init.
type configFile struct {
	Separator string `yaml:"separator"`
	Precision int    `yaml:"precision"`
	LogLevel  string `yaml:"log_level"`
	DataDir   string `yaml:"data_dir,omitempty"`
}

// loadConfig reads config.yaml from configDir with Viper. A missing file
// is not an error; defaults and UNITTO_* environment variables apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeySeparator, types.DefaultSeparator)
	v.SetDefault(cfgKeyPrecision, types.DefaultPrecision)
	v.SetDefault(cfgKeyLogLevel, types.DefaultLogLevel)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// preferencesFrom extracts the user preferences from a loaded config.
func preferencesFrom(v *viper.Viper) types.Preferences {
	return types.Preferences{
		Separator: v.GetString(cfgKeySeparator),
		Precision: v.GetInt(cfgKeyPrecision),
		LogLevel:  v.GetString(cfgKeyLogLevel),
	}
}

// writeDefaultConfig creates config.yaml with default values unless it
// exists. It reports whether the file was written.
func writeDefaultConfig(configDir, dataDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&configFile{
		Separator: types.DefaultSeparator,
		Precision: types.DefaultPrecision,
		LogLevel:  types.DefaultLogLevel,
		DataDir:   dataDir,
	})
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}

// setConfigValue validates value for key and persists it to config.yaml.
// Only the values present in the file are rewritten; defaults and
// environment overrides are not copied into it.
func setConfigValue(configDir, key, value string) error {
	if !configKeys[key] {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, validConfigKeys())
	}

	var typed any = value
	prefs := types.Preferences{Precision: types.DefaultPrecision}
	switch key {
	case cfgKeySeparator:
		sep, err := types.ParseSeparator(value)
		if err != nil {
			return err
		}
		prefs.Separator = sep.String()
		typed = sep.String()
	case cfgKeyLogLevel:
		prefs.LogLevel = value
	case cfgKeyPrecision:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", types.ErrPrecisionRange, value)
		}
		prefs.Precision = n
		typed = n
	}
	if err := prefs.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(configDir, configFileExt)
	fv := viper.New()
	fv.SetConfigFile(path)
	if _, err := os.Stat(path); err == nil {
		if err := fv.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	fv.Set(key, typed)
	if err := fv.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func validConfigKeys() string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
