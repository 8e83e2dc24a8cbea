package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"

	"github.com/andornaut/filectrl/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envConfig        = "FILECTRL_CONFIG"
	envMinBuffer     = "FILECTRL_MIN_BUFFER"
	envMaxBuffer     = "FILECTRL_MAX_BUFFER"
	envFrameInterval = "FILECTRL_FRAME_INTERVAL"
	envWatchInterval = "FILECTRL_WATCH_INTERVAL"
	envOpener        = "FILECTRL_OPENER"
	envLogFile       = "FILECTRL_LOG_FILE"
	envTrace         = "FILECTRL_TRACE"
	envShowHidden    = "FILECTRL_SHOW_HIDDEN"
)

// fileConfig mirrors the optional YAML configuration file. Every value is a
// string so it can seed the matching flag default unchanged.
type fileConfig struct {
	MinBuffer     string `yaml:"min_buffer_bytes"`
	MaxBuffer     string `yaml:"max_buffer_bytes"`
	FrameInterval string `yaml:"frame_interval"`
	WatchInterval string `yaml:"watch_interval"`
	Opener        string `yaml:"opener"`
	LogFile       string `yaml:"log_file"`
	Trace         *bool  `yaml:"trace"`
	ShowHidden    *bool  `yaml:"show_hidden"`
}

func builtinDefaults() fileConfig {
	off := false
	return fileConfig{
		MinBuffer:     "16KiB",
		MaxBuffer:     "1MiB",
		FrameInterval: "16ms",
		WatchInterval: "250ms",
		Opener:        "xdg-open",
		Trace:         &off,
		ShowHidden:    &off,
	}
}

// overlay copies every value set in other onto f.
func (f *fileConfig) overlay(other fileConfig) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&f.MinBuffer, other.MinBuffer)
	set(&f.MaxBuffer, other.MaxBuffer)
	set(&f.FrameInterval, other.FrameInterval)
	set(&f.WatchInterval, other.WatchInterval)
	set(&f.Opener, other.Opener)
	set(&f.LogFile, other.LogFile)
	if other.Trace != nil {
		f.Trace = other.Trace
	}
	if other.ShowHidden != nil {
		f.ShowHidden = other.ShowHidden
	}
}

// Load parses configuration from the config file, environment and CLI arguments.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:])
}

// LoadArgs allows tests to supply specific args. Environment variables are
// read from the process environment.
func LoadArgs(args []string) (Config, error) {
	path, explicit := configPath(args)
	defaults := builtinDefaults()
	if path != "" {
		fromFile, err := readFile(path)
		switch {
		case err == nil:
			defaults.overlay(fromFile)
		case errors.Is(err, os.ErrNotExist) && !explicit:
			path = ""
		default:
			return Config{}, err
		}
	}

	kp := kingpin.New("filectrl", "Terminal file manager with background copy, move and delete.")

	var (
		cfg       Config
		ignored   string
		directory string
	)
	kp.Flag("config", "Path to a YAML configuration file.").Envar(envConfig).StringVar(&ignored)
	minBuffer := kp.Flag("min-buffer", "Smallest copy buffer (e.g. 64KiB).").Envar(envMinBuffer).Default(defaults.MinBuffer).Bytes()
	maxBuffer := kp.Flag("max-buffer", "Largest copy buffer (e.g. 4MiB).").Envar(envMaxBuffer).Default(defaults.MaxBuffer).Bytes()
	kp.Flag("frame-interval", "Interval between dispatcher frames.").Envar(envFrameInterval).Default(defaults.FrameInterval).DurationVar(&cfg.App.FrameInterval)
	kp.Flag("watch-interval", "Minimum interval between directory change refreshes.").Envar(envWatchInterval).Default(defaults.WatchInterval).DurationVar(&cfg.App.WatchInterval)
	kp.Flag("opener", "Program used to open files.").Envar(envOpener).Default(defaults.Opener).StringVar(&cfg.App.Opener)
	kp.Flag("log-file", "Path to the log file.").Envar(envLogFile).Default(defaults.LogFile).StringVar(&cfg.Logging.FilePath)
	kp.Flag("trace", "Enable verbose JSON trace logging.").Envar(envTrace).Default(strconv.FormatBool(*defaults.Trace)).BoolVar(&cfg.Logging.Trace)
	kp.Flag("show-hidden", "Show dotfiles on startup.").Envar(envShowHidden).Default(strconv.FormatBool(*defaults.ShowHidden)).BoolVar(&cfg.App.ShowHidden)
	kp.Arg("directory", "Directory to open.").Default(".").StringVar(&directory)

	if _, err := kp.Parse(args); err != nil {
		return Config{}, err
	}

	abs, err := filepath.Abs(directory)
	if err != nil {
		return Config{}, fmt.Errorf("resolve directory %q: %w", directory, err)
	}
	cfg.App.StartDir = abs
	cfg.App.MinBuffer = uint64(*minBuffer)
	cfg.App.MaxBuffer = uint64(*maxBuffer)
	cfg.File = path
	cfg.Flags = map[string]string{
		"config":        path,
		"directory":     abs,
		"minBuffer":     strconv.FormatUint(cfg.App.MinBuffer, 10),
		"maxBuffer":     strconv.FormatUint(cfg.App.MaxBuffer, 10),
		"frameInterval": cfg.App.FrameInterval.String(),
		"watchInterval": cfg.App.WatchInterval.String(),
		"opener":        cfg.App.Opener,
		"logFile":       cfg.Logging.FilePath,
		"trace":         strconv.FormatBool(cfg.Logging.Trace),
		"showHidden":    strconv.FormatBool(cfg.App.ShowHidden),
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// configPath finds the YAML file before flags are parsed so its values can
// act as flag defaults. explicit reports whether the user named the file.
func configPath(args []string) (string, bool) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if v, ok := strings.CutPrefix(arg, "--config="); ok {
			return v, true
		}
		if arg == "--config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v := os.Getenv(envConfig); v != "" {
		return v, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "filectrl", "config.yaml"), false
}

func readFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures the loaded configuration can start the application.
func Validate(cfg Config) error {
	if cfg.App.MinBuffer == 0 {
		return errors.New("min-buffer must be > 0")
	}
	if cfg.App.MaxBuffer < cfg.App.MinBuffer {
		return fmt.Errorf("max-buffer (%d) must be >= min-buffer (%d)", cfg.App.MaxBuffer, cfg.App.MinBuffer)
	}
	if cfg.App.FrameInterval <= 0 {
		return fmt.Errorf("frame-interval must be > 0 (got %s)", cfg.App.FrameInterval)
	}
	if cfg.App.WatchInterval < 0 {
		return fmt.Errorf("watch-interval must be >= 0 (got %s)", cfg.App.WatchInterval)
	}
	if strings.TrimSpace(cfg.App.Opener) == "" {
		return errors.New("opener must not be empty")
	}
	info, err := os.Stat(cfg.App.StartDir)
	if err != nil {
		return fmt.Errorf("directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", cfg.App.StartDir)
	}
	return nil
}
