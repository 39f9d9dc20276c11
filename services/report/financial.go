package report

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"venuedesk/bookingapi"
	"venuedesk/models"
	"venuedesk/services/events"
	"venuedesk/services/status"
	"venuedesk/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyReport is returned when no event falls in the requested window.
var ErrEmptyReport = errors.New("no events in the requested range")

const (
	DefaultConcurrency = 5

	noSegmentKey   = "sin-segmento"
	noSegmentLabel = "Sin segmento"
)

// ReportService builds the financial and occupancy reports.
type ReportService interface {
	Financial(ctx context.Context, window events.DateRange, includeCancelled bool) (*models.FinancialReport, error)
	Occupancy(ctx context.Context, window events.DateRange) (*models.OccupancyReport, error)
}

type DefaultReportService struct {
	Upstream    events.Upstream
	Events      events.EventService
	Concurrency int
	Logger      *zap.Logger
}

func NewReportService(upstream events.Upstream, eventSvc events.EventService, concurrency int, logger *zap.Logger) *DefaultReportService {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultReportService{Upstream: upstream, Events: eventSvc, Concurrency: concurrency, Logger: logger}
}

// Financial reconciles the grand total of every event in the window against
// its quote. Quotes are fetched at most Concurrency at a time; a failed fetch
// degrades that row to the line-item total.
func (s *DefaultReportService) Financial(ctx context.Context, window events.DateRange, includeCancelled bool) (*models.FinancialReport, error) {
	evs, err := s.Events.Fetch(ctx, events.Filter{From: window.Start, To: window.End})
	if err != nil {
		return nil, err
	}
	if !includeCancelled {
		kept := evs[:0:0]
		for _, ev := range evs {
			if status.ClassifyEventStatus(ev) != status.Cancelado {
				kept = append(kept, ev)
			}
		}
		evs = kept
	}
	if len(evs) == 0 {
		return nil, ErrEmptyReport
	}

	rows := make([]models.FinancialRow, len(evs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Concurrency)
	for i, ev := range evs {
		g.Go(func() error {
			id := bookingapi.EventID(ev)
			var quoteErr error
			var q map[string]any
			if id != "" {
				q, quoteErr = s.Upstream.GetEventQuote(gctx, id)
			}
			if quoteErr != nil {
				s.Logger.Warn("quote fetch failed, using line items", zap.String("event", id), zap.Error(quoteErr))
				q = nil
			}
			rows[i] = financialRow(ev, q, quoteErr)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("financial report: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].StartDate != rows[j].StartDate {
			return rows[i].StartDate < rows[j].StartDate
		}
		return rows[i].EventID < rows[j].EventID
	})
	return summarizeRows(rows, window), nil
}

func financialRow(ev, q map[string]any, quoteErr error) models.FinancialRow {
	sum := events.SummarizeWithQuote(ev, q)
	row := models.FinancialRow{
		EventID:       sum.ID,
		EventNumber:   sum.EventNumber,
		Title:         sum.Title,
		StartDate:     sum.StartDate,
		EndDate:       sum.EndDate,
		Status:        sum.Status,
		StatusText:    sum.StatusText,
		MarketSegment: sum.MarketSegment,
		SegmentKey:    sum.SegmentKey,
		Net:           utils.RoundMoney(sum.Totals.TotalNet),
		Discount:      utils.RoundMoney(sum.Totals.TotalDiscount),
		Tax:           utils.RoundMoney(sum.Totals.TotalTax),
		GrandTotal:    utils.RoundMoney(sum.GrandTotal),
		TotalSource:   sum.TotalSource,
	}
	if quoteErr != nil {
		row.QuoteError = quoteErr.Error()
	}
	return row
}

type bucket struct {
	key, label string
	events     int
	total      decimal.Decimal
}

func addTo(buckets map[string]*bucket, key, label string, amount float64) {
	b, ok := buckets[key]
	if !ok {
		b = &bucket{key: key, label: label}
		buckets[key] = b
	}
	b.events++
	b.total = b.total.Add(decimal.NewFromFloat(amount))
}

func sortedBuckets(buckets map[string]*bucket) []models.ReportBucket {
	out := make([]models.ReportBucket, 0, len(buckets))
	for _, b := range buckets {
		total, _ := b.total.Round(2).Float64()
		out = append(out, models.ReportBucket{Key: b.key, Label: b.label, Events: b.events, GrandTotal: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func summarizeRows(rows []models.FinancialRow, window events.DateRange) *models.FinancialReport {
	byStatus := map[string]*bucket{}
	bySegment := map[string]*bucket{}
	var net, discount, tax, grand []float64
	for _, r := range rows {
		addTo(byStatus, string(r.Status), r.Status.Label(), r.GrandTotal)
		if r.SegmentKey == "" {
			addTo(bySegment, noSegmentKey, noSegmentLabel, r.GrandTotal)
		} else {
			addTo(bySegment, r.SegmentKey, r.MarketSegment, r.GrandTotal)
		}
		net = append(net, r.Net)
		discount = append(discount, r.Discount)
		tax = append(tax, r.Tax)
		grand = append(grand, r.GrandTotal)
	}
	return &models.FinancialReport{
		From:       formatBound(window.Start),
		To:         formatBound(window.End),
		Rows:       rows,
		ByStatus:   sortedBuckets(byStatus),
		BySegment:  sortedBuckets(bySegment),
		Net:        utils.SumMoney(net...),
		Discount:   utils.SumMoney(discount...),
		Tax:        utils.SumMoney(tax...),
		GrandTotal: utils.SumMoney(grand...),
	}
}
