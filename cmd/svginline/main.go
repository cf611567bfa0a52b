// Command svginline inlines SVG placeholders in an HTML document.
//
// It reads a document from a file or stdin, discovers placeholder
// elements by selector, fetches and sanitizes each referenced SVG,
// and writes the transformed document to a file or stdout. Every
// placeholder is treated as visible: this is the eager, server-side
// rendering mode of the library.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/svgkit/inline"
	"github.com/svgkit/inline/fetch"
	"github.com/svgkit/inline/internal/config"
	"github.com/svgkit/inline/internal/logging"
)

func main() {
	in := flag.String("in", "-", "input HTML file, - for stdin")
	out := flag.String("out", "-", "output HTML file, - for stdout")
	selector := flag.String("selector", "", "placeholder selector (overrides SVGINLINE_SELECTOR)")
	baseURL := flag.String("base", "", "base URL for relative SVG sources (overrides SVGINLINE_BASE_URL)")
	flag.Parse()

	cfg := config.LoadOrDefault()
	if *selector != "" {
		cfg.Inline.Selector = *selector
	}
	if *baseURL != "" {
		cfg.Fetch.BaseURL = *baseURL
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *in, *out); err != nil {
		logger.Fatal("inlining failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger, in, out string) error {
	doc, err := readDocument(in)
	if err != nil {
		return err
	}

	client := fetch.New(
		fetch.WithBaseURL(cfg.Fetch.BaseURL),
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second),
		fetch.WithRateLimit(cfg.Fetch.RequestsPerSecond),
	)

	w := inline.NewAll(doc, cfg.Inline.Selector, &inline.Options{
		LoadingClass: cfg.Inline.LoadingClass,
		Client:       client,
		Logger:       logger,
		Strict:       cfg.Inline.Strict,
	})
	logger.Info("discovered placeholders",
		zap.Int("count", w.Len()),
		zap.String("selector", cfg.Inline.Selector))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		w.Start()
		w.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Warn("interrupted, cancelling in-flight fetches")
		w.Close()
	}

	return writeDocument(doc, out)
}

func readDocument(path string) (*goquery.Document, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}
	return doc, nil
}

func writeDocument(doc *goquery.Document, path string) error {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := html.Render(w, doc.Get(0)); err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	return nil
}
