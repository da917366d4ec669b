package app

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/hanzi-reader/internal/adapter/source/file"
	"github.com/heartmarshall/hanzi-reader/internal/adapter/source/httpsrc"
	"github.com/heartmarshall/hanzi-reader/internal/config"
)

func TestNewDictionarySource(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("path", func(t *testing.T) {
		src := NewDictionarySource(config.DictionaryConfig{Path: "./cedict_ts.u8"}, logger)
		assert.IsType(t, &file.Source{}, src)
	})

	t.Run("url wins", func(t *testing.T) {
		src := NewDictionarySource(config.DictionaryConfig{
			Path:         "./cedict_ts.u8",
			URL:          "https://example.com/cedict.u8.gz",
			FetchTimeout: time.Second,
		}, logger)
		assert.IsType(t, &httpsrc.Source{}, src)
	})
}

func TestBuildVersion(t *testing.T) {
	assert.Equal(t, "dev (commit: unknown, built: unknown)", BuildVersion())
}
