package server

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iov-one/tescrow/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// ConfigFile is the name of the node configuration inside the home directory.
const ConfigFile = "config.toml"

// Config holds the node settings. It is read from the home directory and
// every field can be overridden with a command line flag.
type Config struct {
	// Bind is the address the ABCI socket server listens on.
	Bind string `toml:"bind"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `toml:"log_level"`
	// Debug returns full error information in ABCI responses.
	Debug bool `toml:"debug"`
	// MetricsAddr is the HTTP address prometheus metrics are served on.
	// Metrics are not served when empty.
	MetricsAddr string `toml:"metrics_addr"`
	// DBBackend is the tendermint database backend used by the state store.
	DBBackend string `toml:"db_backend"`
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		Bind:        "tcp://localhost:26658",
		LogLevel:    "info",
		MetricsAddr: "localhost:26660",
		DBBackend:   "goleveldb",
	}
}

// LoadConfig reads the configuration file from the home directory. Missing
// values are taken from DefaultConfig. A missing file is not an error.
func LoadConfig(home string) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(home, ConfigFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(errors.ErrInput, "cannot decode %s: %s", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return cfg, errors.Wrapf(errors.ErrInput, "unknown configuration key %q", undecoded[0].String())
	}
	return cfg, nil
}

// WriteConfig stores the configuration in the home directory, creating the
// directory if needed.
func WriteConfig(home string, cfg Config) error {
	if err := os.MkdirAll(home, 0755); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	f, err := os.OpenFile(filepath.Join(home, ConfigFile), os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// Logger returns a logger writing to the given output, filtered by the
// configured level.
func (c Config) Logger(out io.Writer) (log.Logger, error) {
	opt, err := levelOption(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := log.NewTMLogger(log.NewSyncWriter(out))
	return log.NewFilter(logger, opt), nil
}

func levelOption(level string) (log.Option, error) {
	switch level {
	case "debug":
		return log.AllowDebug(), nil
	case "info", "":
		return log.AllowInfo(), nil
	case "error":
		return log.AllowError(), nil
	case "none":
		return log.AllowNone(), nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown log level %q", level)
	}
}
