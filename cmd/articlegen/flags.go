package main

import (
	"errors"
	"time"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all command line flags.
type cliFlags struct {
	prompt       string
	output       string
	provider     string
	model        string
	config       string
	maxNewTokens int
	temperature  float64
	topP         float64
	greedy       bool
	timeout      time.Duration
	watch        string
	verbose      bool
}

// parseFlags parses args (including the program name at args[0]).
// The FlagSet is returned so callers can ask which flags were set
// explicitly.
func parseFlags(args []string) (*cliFlags, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("articlegen", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVar(&f.prompt, "prompt", "",
		"5 слов через пробел, например: волна корабль плыть приключение сокровища")
	fs.StringVarP(&f.output, "output", "o", "article.html",
		"путь к выходному HTML-файлу")
	fs.StringVar(&f.provider, "provider", "transformers",
		"генеративный бэкенд (transformers, ollama)")
	fs.StringVar(&f.model, "model", "", "имя модели (по умолчанию у бэкенда)")
	fs.StringVar(&f.config, "config", "", "файл конфигурации (.yaml или .toml)")
	fs.IntVar(&f.maxNewTokens, "max-new-tokens", 800, "лимит новых токенов")
	fs.Float64Var(&f.temperature, "temperature", 0.8, "температура сэмплирования")
	fs.Float64Var(&f.topP, "top-p", 0.9, "top-p сэмплирования")
	fs.BoolVar(&f.greedy, "greedy", false, "жадная генерация без сэмплирования")
	fs.DurationVar(&f.timeout, "timeout", 5*time.Minute, "таймаут генерации")
	fs.StringVar(&f.watch, "watch", "",
		"следить за файлом со словами и перегенерировать при изменении")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "подробные логи")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	if f.prompt == "" && f.watch == "" {
		return nil, nil, errors.New("нужен --prompt с пятью словами или --watch с файлом слов")
	}
	if f.prompt != "" && f.watch != "" {
		return nil, nil, errors.New("--prompt и --watch взаимоисключающие")
	}

	return f, fs, nil
}
