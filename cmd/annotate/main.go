// Command annotate prints pinyin and English glosses for Chinese text.
// It loads CC-CEDICT once, annotates the text given as arguments (or read
// from stdin) and writes one tab-separated line per character, or the full
// annotation result as JSON with -json.
//
// Usage:
//
//	annotate -dict cedict_ts.u8 你好
//	echo 你好 | annotate -url https://example.com/cedict_1_0_ts_utf-8_mdbg.txt.gz -json
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/heartmarshall/hanzi-reader/internal/app"
	"github.com/heartmarshall/hanzi-reader/internal/config"
	"github.com/heartmarshall/hanzi-reader/internal/domain"
	"github.com/heartmarshall/hanzi-reader/internal/service/annotation"
	"github.com/heartmarshall/hanzi-reader/internal/service/dictionary"
)

// options holds the parsed command-line flags.
type options struct {
	dictPath string
	dictURL  string
	timeout  time.Duration
	asJSON   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.dictPath, "dict", "./cedict_ts.u8", "path to the CC-CEDICT file (.gz accepted)")
	flag.StringVar(&opts.dictURL, "url", "", "download CC-CEDICT from this URL instead of -dict")
	flag.DurationVar(&opts.timeout, "timeout", 60*time.Second, "download timeout for -url")
	flag.BoolVar(&opts.asJSON, "json", false, "print the annotation result as JSON")
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	flag.Parse()

	logger := app.NewLogger(config.LogConfig{Level: *logLevel, Format: "text"})

	if err := run(opts, flag.Args(), os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("annotate failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(opts options, args []string, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	text, err := readInput(args, stdin)
	if err != nil {
		return err
	}

	src := app.NewDictionarySource(config.DictionaryConfig{
		Path:         opts.dictPath,
		URL:          opts.dictURL,
		FetchTimeout: opts.timeout,
	}, logger)

	store := dictionary.NewStore(logger, src)
	if _, err := store.Load(ctx); err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}

	chars := annotation.Convert(text, store.Table())

	out := bufio.NewWriter(stdout)
	if opts.asJSON {
		err = writeJSON(out, chars)
	} else {
		err = writeTable(out, chars)
	}
	if err == nil {
		err = out.Flush()
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// readInput joins the arguments with spaces, or reads all of stdin when no
// arguments are given. A single trailing newline from stdin is dropped.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	text := string(b)
	if t, ok := strings.CutSuffix(text, "\r\n"); ok {
		return t, nil
	}
	return strings.TrimSuffix(text, "\n"), nil
}

func writeJSON(w io.Writer, chars []domain.AnnotatedChar) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(annotation.Result{
		Chars:   chars,
		Summary: annotation.Summarize(chars),
		Text:    annotation.PlainText(chars),
	})
}

// writeTable prints "char<TAB>pinyin<TAB>meaning" for Chinese characters and
// the bare character otherwise. Line breaks become empty lines.
func writeTable(w io.Writer, chars []domain.AnnotatedChar) error {
	for _, c := range chars {
		var err error
		switch {
		case c.IsLineBreak:
			_, err = fmt.Fprintln(w)
		case c.IsChinese:
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\n", c.Char, c.Pinyin, c.Meaning)
		default:
			_, err = fmt.Fprintln(w, c.Char)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
