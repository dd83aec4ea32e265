// Command articlegen generates a Russian-language HTML article from
// five topic words using a local LLM backend.
//
//	articlegen --prompt "волна корабль плыть приключение сокровища" -o article.html
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/MishaKoshkin/articlegen/pipeline"
	"github.com/MishaKoshkin/articlegen/prompt"
	"github.com/MishaKoshkin/articlegen/provider"
	_ "github.com/MishaKoshkin/articlegen/providers"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	flags, fs, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}

	setupLogging(flags.verbose)

	cfg, err := buildConfig(flags, fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	client, err := provider.New(cfg.Provider, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, provider.ErrUnknownProvider) {
			fmt.Fprintf(os.Stderr, "доступные бэкенды: %v\n", provider.Available())
		}
		return exitError
	}
	defer client.Close()

	runner := pipeline.NewRunnerFromConfig(client, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flags.watch != "" {
		err := runner.Watch(ctx, flags.watch, flags.output)
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			return exitError
		}
		return exitOK
	}

	keywords, err := prompt.SplitKeywords(flags.prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: нужно ровно %d слов.\nПример: --prompt \"волна корабль плыть приключение сокровища\"\n", prompt.KeywordCount)
		return exitUsage
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	if _, err := runner.Run(ctx, keywords, flags.output); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}

	fmt.Printf("HTML сохранён: %s\n", flags.output)
	return exitOK
}

// buildConfig layers configuration sources: defaults, then the config
// file, then environment variables, then explicitly set flags.
func buildConfig(flags *cliFlags, fs *flag.FlagSet) (provider.Config, error) {
	cfg := provider.DefaultConfig()

	if flags.config != "" {
		if err := cfg.LoadFile(flags.config); err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
	}

	cfg.LoadFromEnv()

	if fs.Changed("provider") || cfg.Provider == "" {
		cfg.Provider = flags.provider
	}
	if fs.Changed("model") {
		cfg.Model = flags.model
	}
	if fs.Changed("max-new-tokens") {
		cfg.MaxNewTokens = flags.maxNewTokens
	}
	if fs.Changed("temperature") {
		cfg.Temperature = flags.temperature
	}
	if fs.Changed("top-p") {
		cfg.TopP = flags.topP
	}
	if fs.Changed("greedy") {
		cfg.Sample = !flags.greedy
	}
	if fs.Changed("timeout") {
		cfg.Timeout = flags.timeout
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
