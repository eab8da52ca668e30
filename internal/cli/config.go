package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Config is everything navigator reads from navigator.yaml, NAVIGATOR_*
// environment variables and persistent flags.
type Config struct {
	Log   LogConfig   `mapstructure:"log"`
	Store StoreConfig `mapstructure:"store"`
	Style StyleConfig `mapstructure:"style"`
	UI    UIConfig    `mapstructure:"ui"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type StyleConfig struct {
	BarLength int `mapstructure:"bar_length"`
}

type UIConfig struct {
	Screen   bool   `mapstructure:"screen"`
	Encoding string `mapstructure:"encoding"`
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "navigator.db"
	}
	return filepath.Join(home, ".config", "navigator", "scripts.db")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("store.path", defaultStorePath())
	v.SetDefault("style.bar_length", 32)
	v.SetDefault("ui.screen", false)
	v.SetDefault("ui.encoding", "")

	v.SetEnvPrefix("NAVIGATOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads the config file (an explicit path, or navigator.yaml from
// the working directory or ~/.config/navigator) into v and decodes it.
func loadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("navigator")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "navigator"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return &cfg, nil
}

// inputEncoding maps the ui.encoding setting to a decoder; "" means UTF-8.
func inputEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "cp437", "ibm437":
		return charmap.CodePage437, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, errors.Newf("unsupported input encoding %q", name)
	}
}
