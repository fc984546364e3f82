package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/yaoapp/kun/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Conf the loaded configuration
var Conf Config

// LogOutput the rotating log file, nil when logging to stderr
var LogOutput io.WriteCloser

// Init loads envfile (when it exists) and the environment, then sets up
// logging for the mode.
func Init(envfile string) error {
	cfg, err := LoadFrom(envfile)
	if err != nil {
		return err
	}
	Conf = cfg

	if Conf.Mode == "development" {
		Development()
	} else {
		Production()
	}
	return nil
}

// LoadFrom overloads the environment with envfile and loads the config.
// A missing file is not an error.
func LoadFrom(envfile string) (Config, error) {
	if envfile != "" {
		file, err := filepath.Abs(envfile)
		if err == nil {
			if _, err := os.Stat(file); err == nil {
				if err := godotenv.Overload(file); err != nil {
					return Config{}, fmt.Errorf("can't read %s: %w", file, err)
				}
			} else if errors.Is(err, os.ErrNotExist) {
				log.Warn("[config] %s not found, using the environment", file)
			}
		}
	}
	return Load()
}

// Load the config from the environment
func Load() (Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("can't read config: %w", err)
	}
	cfg.LogMode = strings.ToUpper(cfg.LogMode)
	cfg.LLM.Provider = strings.ToLower(cfg.LLM.Provider)
	return cfg, nil
}

// Validate reports every invalid setting.
func (cfg Config) Validate() error {
	var errs *multierror.Error
	if cfg.Mode != "production" && cfg.Mode != "development" {
		errs = multierror.Append(errs, fmt.Errorf("unknown mode %q", cfg.Mode))
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = multierror.Append(errs, fmt.Errorf("invalid port %d", cfg.Port))
	}
	if cfg.LogMode != "TEXT" && cfg.LogMode != "JSON" {
		errs = multierror.Append(errs, fmt.Errorf("unknown log mode %q", cfg.LogMode))
	}
	if cfg.DataDir != "" {
		if info, err := os.Stat(cfg.DataDir); err != nil || !info.IsDir() {
			errs = multierror.Append(errs, fmt.Errorf("SCATTER_DATA_DIR %s is not a directory", cfg.DataDir))
		}
	}
	switch cfg.LLM.Provider {
	case "huggingface", "openai":
		if cfg.LLM.APIKey == "" && cfg.DB.Enabled() {
			errs = multierror.Append(errs, fmt.Errorf("API_KEY is required by the %s provider", cfg.LLM.Provider))
		}
	case "ollama":
	default:
		errs = multierror.Append(errs, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider))
	}
	if cfg.DB.Enabled() && cfg.DB.MaxConns <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("invalid POSTGRES_MAX_CONNS %d", cfg.DB.MaxConns))
	}
	return errs.ErrorOrNil()
}

// Addr the listen address
func (cfg Config) Addr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// Enabled is true when a database host is configured.
func (db Database) Enabled() bool {
	return db.Host != ""
}

// DSN the key/value connection string
func (db Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode)
}

// Production sets the production mode
func Production() {
	Conf.Mode = "production"
	log.SetLevel(log.InfoLevel)
	setFormatter()
	ReloadLog()
}

// Development sets the development mode
func Development() {
	Conf.Mode = "development"
	log.SetLevel(log.TraceLevel)
	setFormatter()
	ReloadLog()
}

func setFormatter() {
	log.SetFormatter(log.TEXT)
	if Conf.LogMode == "JSON" {
		log.SetFormatter(log.JSON)
	}
}

// ReloadLog reopen the log
func ReloadLog() {
	CloseLog()
	OpenLog()
}

// OpenLog open the log file, or stderr when none is set
func OpenLog() {
	if Conf.Log == "" {
		log.SetOutput(os.Stderr)
		return
	}

	logfile, err := filepath.Abs(Conf.Log)
	if err != nil {
		log.SetOutput(os.Stderr)
		return
	}

	LogOutput = &lumberjack.Logger{
		Filename:   logfile,
		MaxSize:    Conf.LogMaxSize, // megabytes
		MaxBackups: Conf.LogMaxBackups,
		MaxAge:     Conf.LogMaxAge, // days
	}
	log.SetOutput(LogOutput)
}

// CloseLog close the log file
func CloseLog() {
	if LogOutput != nil {
		if err := LogOutput.Close(); err != nil {
			log.Error("[config] close log: %v", err)
		}
		LogOutput = nil
	}
}
