// Package config resolves the store location, store key and local paths.
//
// Each value is taken from the first source that provides it: command-line
// flags, the process environment, a .env file, the OS keyring (store key
// only) and finally ~/.ganttplan/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	EnvStore    = "GANTTPLAN_STORE"
	EnvStoreKey = "GANTTPLAN_STORE_KEY"
	EnvDebug    = "GANTTPLAN_DEBUG"
	EnvHome     = "GANTTPLAN_HOME"

	configFileName = "config.yaml"
	stateFileName  = "state.yaml"
)

var (
	ErrMissingStore    = errors.New("store location is not configured (--store, " + EnvStore + ")")
	ErrMissingStoreKey = errors.New("store key is not configured (--store-key, " + EnvStoreKey + ", 'ganttplan key set')")
)

// Config is the resolved configuration.
type Config struct {
	Store     string `yaml:"store"`
	StoreKey  string `yaml:"store_key"`
	LogDir    string `yaml:"log_dir"`
	Debug     bool   `yaml:"debug"`
	StatePath string `yaml:"state_path"`

	// Dir is the per-user directory holding config, state and logs.
	Dir string `yaml:"-"`
}

// Validate reports every missing required value.
func (c *Config) Validate() error {
	var errs []error
	if c.Store == "" {
		errs = append(errs, ErrMissingStore)
	}
	if c.StoreKey == "" {
		errs = append(errs, ErrMissingStoreKey)
	}
	return errors.Join(errs...)
}

// Flags are the persistent command-line flags that feed the configuration.
type Flags struct {
	fs       *pflag.FlagSet
	Store    string
	StoreKey string
	Debug    bool
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.Store, "store", "", "store location: a SQLite file path or a postgres:// URL")
	fs.StringVar(&f.StoreKey, "store-key", "", "key that authorizes access to the store")
	fs.BoolVar(&f.Debug, "debug", false, "verbose logging, mirrored to stderr")
	return f
}

// Args returns the positional arguments left after ParseFlags.
func (f *Flags) Args() []string {
	if f == nil || f.fs == nil {
		return nil
	}
	return f.fs.Args()
}

func (f *Flags) changed(name string) bool {
	return f != nil && f.fs != nil && f.fs.Changed(name)
}

// ParseFlags extracts the configuration flags from args, ignoring every
// other flag and argument so it can run before the command tree.
func ParseFlags(args []string) *Flags {
	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(discard{})
	f := BindFlags(fs)
	_ = fs.Parse(args)
	return f
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// Loader resolves a Config. The zero value reads the real environment,
// ./.env, the OS keyring and the default directory.
type Loader struct {
	Getenv  func(string) string
	EnvFile string
	Keyring func() (string, error)
	Dir     string
}

// Load resolves the configuration with the default Loader.
func Load(flags *Flags) (*Config, error) {
	return Loader{}.Load(flags)
}

func (l Loader) Load(flags *Flags) (*Config, error) {
	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	envFile := l.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", envFile, err)
	}
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	dir := l.Dir
	if dir == "" {
		dir = lookup(EnvHome)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		dir = filepath.Join(home, ".ganttplan")
	}

	cfg, err := readFile(filepath.Join(dir, configFileName))
	if err != nil {
		return nil, err
	}
	cfg.Dir = dir

	if v := lookup(EnvStore); v != "" {
		cfg.Store = v
	}
	if v := lookup(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", EnvDebug, err)
		}
		cfg.Debug = debug
	}
	if v := lookup(EnvStoreKey); v != "" {
		cfg.StoreKey = v
	} else {
		keyring := l.Keyring
		if keyring == nil {
			keyring = GetStoreKey
		}
		// A missing or unavailable keyring leaves the file value in place.
		if v, err := keyring(); err == nil && v != "" {
			cfg.StoreKey = v
		}
	}

	if flags.changed("store") {
		cfg.Store = flags.Store
	}
	if flags.changed("store-key") {
		cfg.StoreKey = flags.StoreKey
	}
	if flags.changed("debug") {
		cfg.Debug = flags.Debug
	}

	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(dir, "logs")
	}
	if cfg.StatePath == "" {
		cfg.StatePath = filepath.Join(dir, stateFileName)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return &cfg, nil
}
