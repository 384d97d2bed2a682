package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warebridge/stockstatus/internal/domain/report/parser"
	"github.com/warebridge/stockstatus/internal/domain/report/reportgen"
	"github.com/warebridge/stockstatus/internal/domain/report/sniffer"
)

func newTestService(t *testing.T) *ParseService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewParseService(logger, parser.Options{}, prometheus.NewRegistry())
	return svc.WithClock(func() time.Time {
		return time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)
	})
}

func TestParseService_ParseReport(t *testing.T) {
	svc := newTestService(t)
	text := reportgen.New(11).Report("12/29/25", 2, 3)

	res, err := svc.ParseReport(context.Background(), text)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, res.JobID)
	assert.Equal(t, time.Date(2025, time.December, 29, 0, 0, 0, 0, time.UTC), res.ReportDate,
		"report date comes from the RUN DATE stamp")
	require.NotNil(t, res.Result)
	assert.Len(t, res.Result.Items, 6)
	assert.NotEmpty(t, res.Result.PurchaseOrders)
}

func TestParseService_RejectsWrongDocument(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ParseReport(context.Background(), "way too short")
	assert.ErrorIs(t, err, sniffer.ErrTextTooShort)

	longButWrong := "this document talks about something else entirely, at considerable length, none of it tabular"
	_, err = svc.ParseReport(context.Background(), longButWrong)
	assert.ErrorIs(t, err, sniffer.ErrNotAReport)
}

func TestParseService_ExplicitReportDate(t *testing.T) {
	svc := newTestService(t)
	text := reportgen.New(11).Report("12/29/25", 1, 2)
	override := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)

	res, err := svc.ParseReportAt(context.Background(), text, override)
	require.NoError(t, err)
	assert.Equal(t, override, res.ReportDate)
}
