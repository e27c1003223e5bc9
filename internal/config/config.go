// Package config provides the configuration schema, loader, and ASR provider
// registry for the recital corpus-recording tool.
package config

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// HoldMode selects the implementation of the hold-to-record control.
type HoldMode string

const (
	// HoldHotkey engages the control while a global hotkey is held down.
	HoldHotkey HoldMode = "hotkey"

	// HoldStdin toggles the control with Enter; for terminals where global
	// hotkeys cannot be registered.
	HoldStdin HoldMode = "stdin"
)

// IsValid reports whether m is a recognised hold mode.
func (m HoldMode) IsValid() bool {
	return m == HoldHotkey || m == HoldStdin
}

// Config is the root configuration structure for recital.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	// CorpusPath is the CSV sentence list; the first field of each line is
	// the sentence text. Required.
	CorpusPath string `yaml:"corpus_path"`

	// CheckpointPath is the progress file holding the index of the next
	// sentence to record. Defaults to "recording_progress.txt".
	CheckpointPath string `yaml:"checkpoint_path"`

	// OutputDir is where take WAV files are written; created if missing.
	// Defaults to "recordings".
	OutputDir string `yaml:"output_dir"`

	// TakeLogPath is the SQLite take journal. Empty disables the journal.
	TakeLogPath string `yaml:"take_log_path"`

	// SampleRate is the capture sample rate in Hz. Defaults to 44100.
	SampleRate int `yaml:"sample_rate"`

	// Language is the recognition language hint (e.g. "ko"). Empty lets the
	// recognizer auto-detect where supported.
	Language string `yaml:"language"`

	// Hold configures the hold-to-record control.
	Hold HoldConfig `yaml:"hold"`

	// ASR selects and configures the recognition backend.
	ASR ProviderEntry `yaml:"asr"`

	// PlaybackCommand is the external player invoked for replay, e.g.
	// "aplay -q". The take path is appended as the final argument.
	// Defaults to "aplay -q".
	PlaybackCommand string `yaml:"playback_command"`

	// LogLevel controls verbosity. Defaults to "info".
	LogLevel LogLevel `yaml:"log_level"`
}

// HoldConfig configures the hold-to-record control.
type HoldConfig struct {
	// Mode selects the control implementation. Defaults to "hotkey".
	Mode HoldMode `yaml:"mode"`

	// Key is the hotkey name for "hotkey" mode (e.g. "space").
	// Ignored in "stdin" mode. Defaults to "space".
	Key string `yaml:"key"`
}

// ProviderEntry is the configuration block for the ASR backend. The Name
// field is used to look up the constructor in the [Registry].
type ProviderEntry struct {
	// Name selects the registered backend (e.g. "whisper", "whisper-native").
	Name string `yaml:"name"`

	// BaseURL is the server endpoint for HTTP-backed providers.
	BaseURL string `yaml:"base_url"`

	// Model selects a model within the provider: a name for server-backed
	// providers, a ggml model file path for the native provider.
	Model string `yaml:"model"`

	// Options holds provider-specific configuration values not covered by
	// the standard fields above.
	Options map[string]any `yaml:"options"`
}
