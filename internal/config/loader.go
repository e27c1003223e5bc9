package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValidASRNames lists the recognition backends that ship with recital.
// Used by [Validate] to warn about unrecognised names.
var ValidASRNames = []string{"whisper", "whisper-native"}

// Load reads the YAML configuration file at path and returns a validated
// [Config] with defaults applied. It is a convenience wrapper around
// [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults, and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills zero-valued optional fields.
func applyDefaults(cfg *Config) {
	if cfg.CheckpointPath == "" {
		cfg.CheckpointPath = "recording_progress.txt"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "recordings"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 44100
	}
	if cfg.Hold.Mode == "" {
		cfg.Hold.Mode = HoldHotkey
	}
	if cfg.Hold.Key == "" {
		cfg.Hold.Key = "space"
	}
	if cfg.PlaybackCommand == "" {
		cfg.PlaybackCommand = "aplay -q"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = LogInfo
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.CorpusPath == "" {
		errs = append(errs, errors.New("corpus_path is required"))
	}
	if cfg.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample_rate %d must be positive", cfg.SampleRate))
	}
	if !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if !cfg.Hold.Mode.IsValid() {
		errs = append(errs, fmt.Errorf("hold.mode %q is invalid; valid values: hotkey, stdin", cfg.Hold.Mode))
	}
	if cfg.Hold.Mode == HoldHotkey && cfg.Hold.Key == "" {
		errs = append(errs, errors.New("hold.key is required when hold.mode is hotkey"))
	}

	switch name := cfg.ASR.Name; {
	case name == "":
		errs = append(errs, errors.New("asr.name is required"))
	case !slices.Contains(ValidASRNames, name):
		slog.Warn("unknown asr backend name — may be a typo",
			"name", name,
			"known", ValidASRNames,
		)
	case name == "whisper" && cfg.ASR.BaseURL == "":
		errs = append(errs, errors.New("asr.base_url is required when asr.name is whisper"))
	case name == "whisper-native" && cfg.ASR.Model == "":
		errs = append(errs, errors.New("asr.model (ggml model path) is required when asr.name is whisper-native"))
	}

	return errors.Join(errs...)
}
