package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_InitialPassAndChange(t *testing.T) {
	dir := t.TempDir()
	keywordsPath := filepath.Join(dir, "keywords.txt")
	outPath := filepath.Join(dir, "article.html")

	require.NoError(t, os.WriteFile(keywordsPath, []byte("волна корабль плыть приключение сокровища\n"), 0o644))

	mock := &mockClient{content: "# Первая версия\n# Раздел\nТело."}
	runner := NewRunner(mock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- runner.Watch(ctx, keywordsPath, outPath)
	}()

	// The initial pass fires because the file already exists.
	require.Eventually(t, func() bool {
		data, err := os.ReadFile(outPath)
		return err == nil && len(data) > 0
	}, 5*time.Second, 10*time.Millisecond)

	mock.setContent("# Вторая версия\n# Раздел\nТело.")
	require.NoError(t, os.WriteFile(keywordsPath, []byte("море ветер парус карта остров\n"), 0o644))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(outPath)
		return err == nil && containsTitle(data, "Вторая версия")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_BadKeywordsFileKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	keywordsPath := filepath.Join(dir, "keywords.txt")
	outPath := filepath.Join(dir, "article.html")

	require.NoError(t, os.WriteFile(keywordsPath, []byte("только два\n"), 0o644))

	mock := &mockClient{content: "# Статья\n# Раздел\nТело."}
	runner := NewRunner(mock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- runner.Watch(ctx, keywordsPath, outPath)
	}()

	// The invalid file is logged and skipped, not fatal. A later valid
	// write still generates.
	time.Sleep(100 * time.Millisecond)
	_, err := os.Stat(outPath)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, os.WriteFile(keywordsPath, []byte("волна корабль плыть приключение сокровища\n"), 0o644))

	require.Eventually(t, func() bool {
		_, err := os.Stat(outPath)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	<-done
}

func containsTitle(page []byte, title string) bool {
	return strings.Contains(string(page), "<h1>"+title+"</h1>")
}
