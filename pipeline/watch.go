package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/MishaKoshkin/articlegen/prompt"
)

// Watch regenerates the article whenever the keywords file changes.
// The file must contain exactly five whitespace-separated words. An
// initial pass runs immediately if the file already exists. Watch
// blocks until ctx is cancelled or the watcher fails.
//
// Generation errors for one change do not stop the watch; they are
// logged and the next change triggers a fresh attempt.
func (r *Runner) Watch(ctx context.Context, keywordsPath, outPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save,
	// which would drop a direct file watch.
	dir := filepath.Dir(keywordsPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	if _, err := os.Stat(keywordsPath); err == nil {
		r.runFromFile(ctx, keywordsPath, outPath)
	}

	target := filepath.Clean(keywordsPath)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("keywords file changed", slog.String("path", keywordsPath))
			r.runFromFile(ctx, keywordsPath, outPath)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch: %w", err)
		}
	}
}

// runFromFile reads keywords from path and runs one generation pass,
// logging failures instead of propagating them.
func (r *Runner) runFromFile(ctx context.Context, path, outPath string) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Error("read keywords file", slog.String("path", path), slog.Any("error", err))
		return
	}

	keywords, err := prompt.SplitKeywords(strings.TrimSpace(string(data)))
	if err != nil {
		slog.Error("invalid keywords file", slog.String("path", path), slog.Any("error", err))
		return
	}

	if _, err := r.Run(ctx, keywords, outPath); err != nil {
		slog.Error("generation failed", slog.Any("error", err))
	}
}
