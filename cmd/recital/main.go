// Command recital walks a narrator through a sentence corpus, recording one
// hold-to-record take per sentence and scoring it against the script.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hyangsook-lab/recital/internal/config"
	"github.com/hyangsook-lab/recital/internal/corpus"
	"github.com/hyangsook-lab/recital/internal/progress"
	"github.com/hyangsook-lab/recital/internal/session"
	"github.com/hyangsook-lab/recital/internal/takelog"
	paudio "github.com/hyangsook-lab/recital/pkg/capture/portaudio"
	"github.com/hyangsook-lab/recital/pkg/hold"
	"github.com/hyangsook-lab/recital/pkg/playback/cmdplayer"
	"github.com/hyangsook-lab/recital/pkg/provider/asr"
	"github.com/hyangsook-lab/recital/pkg/provider/asr/whisper"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "recital: config file %q not found — copy configs/example.yaml to get started\n", *configPath)
		} else {
			fmt.Fprintf(os.Stderr, "recital: %v\n", err)
		}
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	slog.Info("recital starting",
		"config", *configPath,
		"corpus", cfg.CorpusPath,
		"asr", cfg.ASR.Name,
		"log_level", cfg.LogLevel,
	)

	// ── Corpus and checkpoint ─────────────────────────────────────────────────
	sentences, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		slog.Error("failed to load corpus", "path", cfg.CorpusPath, "err", err)
		return 1
	}
	if len(sentences) == 0 {
		slog.Error("corpus contains no sentences", "path", cfg.CorpusPath)
		return 1
	}
	checkpoint := progress.NewStore(cfg.CheckpointPath)

	// ── ASR provider ──────────────────────────────────────────────────────────
	reg := config.NewRegistry()
	registerBuiltinProviders(reg)

	transcriber, err := reg.CreateASR(cfg.ASR)
	if err != nil {
		slog.Error("failed to create asr provider", "name", cfg.ASR.Name, "err", err)
		return 1
	}
	slog.Info("provider created", "kind", "asr", "name", cfg.ASR.Name)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One buffered reader over stdin, shared between the decision prompt and
	// the stdin hold control so neither loses the other's buffered input.
	stdin := bufio.NewReader(os.Stdin)

	// ── Hold control and recorder ─────────────────────────────────────────────
	var ctrl hold.Control
	if cfg.Hold.Mode == config.HoldStdin {
		ctrl = hold.NewStdin(stdin)
	} else {
		ctrl, err = hold.NewHotkey(cfg.Hold.Key)
		if err != nil {
			slog.Error("failed to register hotkey", "key", cfg.Hold.Key, "err", err)
			return 1
		}
	}
	defer ctrl.Close()

	recorder, err := paudio.New(ctrl, paudio.WithSampleRate(cfg.SampleRate))
	if err != nil {
		slog.Error("failed to initialise audio capture", "err", err)
		return 1
	}
	defer recorder.Close()

	player, err := cmdplayer.New(cfg.PlaybackCommand)
	if err != nil {
		slog.Error("invalid playback command", "command", cfg.PlaybackCommand, "err", err)
		return 1
	}

	// ── Take journal (optional) ───────────────────────────────────────────────
	var journal *takelog.Store
	if cfg.TakeLogPath != "" {
		journal, err = takelog.Open(ctx, cfg.TakeLogPath)
		if err != nil {
			slog.Error("failed to open take journal", "path", cfg.TakeLogPath, "err", err)
			return 1
		}
		defer journal.Close()
	}

	printStartupSummary(cfg, len(sentences), checkpoint.Load())

	// ── Session ───────────────────────────────────────────────────────────────
	sessCfg := session.Config{
		OutputDir: cfg.OutputDir,
		Language:  cfg.Language,
		HoldLabel: ctrl.Label(),
	}
	co := session.Collaborators{
		Recorder:    recorder,
		Transcriber: transcriber,
		Player:      player,
		Checkpoint:  checkpoint,
	}
	if journal != nil {
		co.Journal = journal
	}

	controller, err := session.New(sessCfg, sentences, co, session.WithInput(stdin))
	if err != nil {
		slog.Error("failed to initialise session", "err", err)
		return 1
	}

	if err := controller.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("\nInterrupted. Progress saved.")
			return 0
		}
		slog.Error("session error", "err", err)
		return 1
	}

	// ── Session summary ───────────────────────────────────────────────────────
	if journal != nil {
		summary, err := journal.Summarize(context.Background())
		if err != nil {
			slog.Warn("could not summarize take journal", "err", err)
		} else if summary.Takes > 0 {
			fmt.Printf("Session total: %d accepted takes, mean accuracy %.2f%%\n",
				summary.Takes, summary.MeanAccuracy)
		}
	}
	return 0
}

// ── Provider wiring ───────────────────────────────────────────────────────────

// registerBuiltinProviders wires the recognition backends that ship with
// recital into reg. Each factory receives a config.ProviderEntry and
// constructs the provider from the real implementation packages.
func registerBuiltinProviders(reg *config.Registry) {
	reg.RegisterASR("whisper", func(entry config.ProviderEntry) (asr.Transcriber, error) {
		var opts []whisper.Option
		if entry.Model != "" {
			opts = append(opts, whisper.WithModel(entry.Model))
		}
		if lang := optString(entry.Options, "language"); lang != "" {
			opts = append(opts, whisper.WithLanguage(lang))
		}
		return whisper.New(entry.BaseURL, opts...)
	})

	reg.RegisterASR("whisper-native", func(entry config.ProviderEntry) (asr.Transcriber, error) {
		modelPath := entry.Model
		if modelPath == "" {
			modelPath = optString(entry.Options, "model_path")
		}
		var opts []whisper.NativeOption
		if lang := optString(entry.Options, "language"); lang != "" {
			opts = append(opts, whisper.WithNativeLanguage(lang))
		}
		return whisper.NewNative(modelPath, opts...)
	})

	for _, name := range config.ValidASRNames {
		slog.Debug("registered provider", "kind", "asr", "name", name)
	}
}

// ── Startup summary ───────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config, total, resumeAt int) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║          recital — session            ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printField("Corpus", fmt.Sprintf("%d sentences", total))
	printField("Resuming at", fmt.Sprintf("sentence %d", resumeAt+1))
	printField("ASR", cfg.ASR.Name)
	printField("Hold", string(cfg.Hold.Mode))
	printField("Output dir", cfg.OutputDir)
	if cfg.TakeLogPath != "" {
		printField("Take journal", cfg.TakeLogPath)
	} else {
		printField("Take journal", "(disabled)")
	}
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printField(name, value string) {
	if len([]rune(value)) > 19 {
		value = string([]rune(value)[:16]) + "…"
	}
	fmt.Printf("║  %-14s : %-19s ║\n", name, value)
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// optString extracts a string value from a provider Options map[string]any.
// Returns "" if the map is nil, the key is absent, or the value is not a string.
func optString(opts map[string]any, key string) string {
	if opts == nil {
		return ""
	}
	v, ok := opts[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
