// Package service orchestrates one report parse end to end: document sanity
// check, run-date detection, the line-by-line parse, and observability
// around it.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/warebridge/stockstatus/internal/domain/report/parser"
	"github.com/warebridge/stockstatus/internal/domain/report/sniffer"
)

// ReportResult wraps one parse run with its identity and timing.
type ReportResult struct {
	JobID      uuid.UUID      `json:"jobId"`
	ReportDate time.Time      `json:"reportDate"`
	Result     *parser.Result `json:"result"`
	Duration   time.Duration  `json:"durationNs"`
}

// ParseService runs parses over uploaded report text. It is stateless
// between calls and safe for concurrent use: the only mutable parse state
// lives inside each call.
type ParseService struct {
	parser  *parser.Parser
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// NewParseService wires a parse service. logger must be non-nil; reg may be
// nil to skip metric registration.
func NewParseService(logger *slog.Logger, opts parser.Options, reg prometheus.Registerer) *ParseService {
	return &ParseService{
		parser:  parser.New(opts),
		logger:  logger,
		metrics: NewMetrics(reg),
		now:     time.Now,
	}
}

// WithClock overrides the fallback clock used when the text carries no RUN
// DATE stamp. Intended for tests.
func (s *ParseService) WithClock(now func() time.Time) *ParseService {
	s.now = now
	return s
}

// ParseReport validates the extracted text, detects the report date from
// its RUN DATE stamp, and parses it.
func (s *ParseService) ParseReport(ctx context.Context, text string) (*ReportResult, error) {
	reportDate := sniffer.DetectRunDate(text, s.now)
	return s.ParseReportAt(ctx, text, reportDate)
}

// ParseReportAt parses with an explicit report date, bypassing RUN DATE
// detection. The date drives every PO urgency computation.
func (s *ParseService) ParseReportAt(ctx context.Context, text string, reportDate time.Time) (*ReportResult, error) {
	start := s.now()
	jobID := uuid.New()
	s.metrics.parsesTotal.Inc()

	if err := sniffer.Validate(text); err != nil {
		s.metrics.rejectedTotal.Inc()
		s.logger.WarnContext(ctx, "document rejected",
			slog.String("job_id", jobID.String()),
			slog.String("reason", err.Error()))
		return nil, fmt.Errorf("reject document: %w", err)
	}

	res := s.parser.ParseText(text, reportDate)
	elapsed := s.now().Sub(start)

	s.metrics.lineErrors.Add(float64(len(res.Errors)))
	s.metrics.itemsParsed.Add(float64(len(res.Items)))
	s.metrics.parseDuration.Observe(elapsed.Seconds())

	s.logger.InfoContext(ctx, "report parsed",
		slog.String("job_id", jobID.String()),
		slog.Time("report_date", reportDate),
		slog.Int("items", len(res.Items)),
		slog.Int("purchase_orders", len(res.PurchaseOrders)),
		slog.Int("special_orders", len(res.SpecialOrders)),
		slog.Int("line_errors", len(res.Errors)),
		slog.Duration("elapsed", elapsed))

	return &ReportResult{
		JobID:      jobID,
		ReportDate: reportDate,
		Result:     res,
		Duration:   elapsed,
	}, nil
}
