package prompt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	keywords := []string{"волна", "корабль", "плыть", "приключение", "сокровища"}

	got, err := Build(keywords)
	require.NoError(t, err)

	assert.Contains(t, got, "волна корабль плыть приключение сокровища")
	assert.Contains(t, got, "#заголовком, #абзацами и #выводом")
	assert.Contains(t, got, "Пиши только текст статьи.")
}

func TestBuild_WrongCount(t *testing.T) {
	_, err := Build([]string{"один", "два"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrKeywordCount))
}

func TestSplitKeywords(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{
			name: "exactly five",
			raw:  "волна корабль плыть приключение сокровища",
			want: []string{"волна", "корабль", "плыть", "приключение", "сокровища"},
		},
		{
			name: "extra whitespace collapsed",
			raw:  "  волна\tкорабль  плыть приключение сокровища\n",
			want: []string{"волна", "корабль", "плыть", "приключение", "сокровища"},
		},
		{name: "too few", raw: "волна корабль", wantErr: true},
		{name: "too many", raw: "а б в г д е", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitKeywords(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrKeywordCount))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
