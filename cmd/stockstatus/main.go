// Command stockstatus parses an extracted stock status report from a text
// file and writes the structured result as JSON to stdout. It is a
// developer harness around the parse service; the production boundary
// (upload handling, rendering) lives elsewhere.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/warebridge/stockstatus/internal/domain/report/parser"
	"github.com/warebridge/stockstatus/internal/domain/report/service"
	"github.com/warebridge/stockstatus/pkg/config"
)

var (
	inputPath  = flag.String("input", "-", "extracted report text file, or - for stdin")
	reportDate = flag.String("report-date", "", "override report date (MM/DD/YY); default is the RUN DATE stamp")
	legacyTail = flag.Bool("legacy-tail", false, "use the strict two-state tail recoverer")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.Log)

	text, err := readInput(*inputPath)
	if err != nil {
		logger.Error("read input", slog.String("path", *inputPath), slog.Any("error", err))
		os.Exit(1)
	}

	opts := parser.Options{LegacyTail: cfg.Parser.LegacyTail || *legacyTail}
	svc := service.NewParseService(logger, opts, prometheus.DefaultRegisterer)

	ctx := context.Background()
	var result *service.ReportResult
	if *reportDate != "" {
		date, err := parser.ParseReportDate(*reportDate)
		if err != nil {
			logger.Error("bad -report-date", slog.Any("error", err))
			os.Exit(1)
		}
		result, err = svc.ParseReportAt(ctx, text, date)
		if err != nil {
			logger.Error("parse failed", slog.Any("error", err))
			os.Exit(1)
		}
	} else {
		result, err = svc.ParseReport(ctx, text)
		if err != nil {
			logger.Error("parse failed", slog.Any("error", err))
			os.Exit(1)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("encode result", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
