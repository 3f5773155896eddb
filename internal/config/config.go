package config

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config captures the runtime knobs for a training run.
type Config struct {
	TrainDir   string `yaml:"train_dir"`
	ValDir     string `yaml:"val_dir"`
	Epochs     int    `yaml:"epochs"`
	NumWorkers int    `yaml:"num_workers"`
	Seed       int64  `yaml:"seed"`
	LogEvery   int    `yaml:"log_every"`
}

// Overrides captures CLI supplied values.
type Overrides struct {
	TrainDir   string
	ValDir     string
	Epochs     int
	NumWorkers int
	Seed       int64
	LogEvery   int
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Epochs:     100,
		NumWorkers: runtime.NumCPU(),
		LogEvery:   10,
	}
}

// Load reads a Config from YAML.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := parseYAML(f)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return cfg, nil
}

// ApplyOverrides updates cfg using any non-zero override.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.TrainDir != "" {
		c.TrainDir = o.TrainDir
	}
	if o.ValDir != "" {
		c.ValDir = o.ValDir
	}
	if o.Epochs > 0 {
		c.Epochs = o.Epochs
	}
	if o.NumWorkers > 0 {
		c.NumWorkers = o.NumWorkers
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.LogEvery > 0 {
		c.LogEvery = o.LogEvery
	}
}

// Validate verifies the config is runnable, defaulting optional knobs.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.TrainDir == "" {
		return errors.New("train_dir must be set")
	}
	if c.ValDir == "" {
		return errors.New("val_dir must be set")
	}
	if c.Epochs <= 0 {
		return errors.Errorf("epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.NumWorkers <= 0 {
		c.NumWorkers = runtime.NumCPU()
	}
	if c.LogEvery <= 0 {
		c.LogEvery = 10
	}
	return nil
}

func parseYAML(r io.Reader) (*Config, error) {
	cfg := Default()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, errors.Errorf("line %d: missing ':'", lineNo)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, "\"'")
		switch key {
		case "train_dir":
			cfg.TrainDir = value
		case "val_dir":
			cfg.ValDir = value
		case "epochs":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: epochs", lineNo)
			}
			cfg.Epochs = v
		case "num_workers":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: num_workers", lineNo)
			}
			cfg.NumWorkers = v
		case "seed":
			v, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: seed", lineNo)
			}
			cfg.Seed = v
		case "log_every":
			v, err := strconv.Atoi(value)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: log_every", lineNo)
			}
			cfg.LogEvery = v
		default:
			return nil, errors.Errorf("line %d: unknown key %s", lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cfg, nil
}
