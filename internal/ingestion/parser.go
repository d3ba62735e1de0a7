package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/guttosm/salesdata/internal/domain/models"
	"github.com/guttosm/salesdata/internal/storage"
	"github.com/shopspring/decimal"
)

// expectedHeaders enforces strict column ordering for order export files.
// If the header doesn't match EXACTLY (order + count), ingestion must fail.
var expectedHeaders = []string{
	"OrderID",
	"DateCreated",
	"Total",
	"Currency",
}

// orderBatchWriter is the part of the repository the parser needs.
type orderBatchWriter interface {
	InsertOrdersBatch(orders []models.Order) error
}

var _ orderBatchWriter = (storage.DayLoad)(nil)

// parseAndPersistFile opens, validates, parses, and persists one file in batches.
// It fails on:
//   - header not matching expected order/length
//   - a row with a wrong column count or an unparsable value
//   - an order created outside [from, to)
//   - unrecoverable I/O errors
//
// It tolerates:
//   - an empty Total or Currency (stored as NULL)
//
// Returns the number of orders persisted.
func parseAndPersistFile(ctx context.Context, path string, repo orderBatchWriter, batch int, from, to time.Time) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // checked explicitly for better messages

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return 0, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) != expectedHeaders[i] {
			return 0, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	buf := make([]models.Order, 0, batch)
	lineNumber := 1 // header already read

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertOrdersBatch(buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total := 0

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedHeaders) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}

		o, err := recordToOrder(rec)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if o.DateCreated.Before(from) || !o.DateCreated.Before(to) {
			return 0, fmt.Errorf("line %d: DateCreated %s outside file day [%s, %s)",
				lineNumber, o.DateCreated.Format(time.RFC3339), from.Format(time.RFC3339), to.Format(time.RFC3339))
		}

		buf = append(buf, o)
		total++
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
		}
	}

	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}

	return total, nil
}

// recordToOrder converts a single CSV record (already validated length==4)
// into a models.Order.
//
// Column order:
//
//	0 OrderID      → ID (required)
//	1 DateCreated  → DateCreated (RFC 3339, required)
//	2 Total        → Totals.Total (decimal, ',' or '.' separator, empty→NULL)
//	3 Currency     → Currency (ISO code, upper cased, empty→NULL)
func recordToOrder(rec []string) (models.Order, error) {
	var o models.Order

	o.ID = strings.TrimSpace(rec[0])
	if o.ID == "" {
		return o, errors.New("missing OrderID")
	}

	created, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(rec[1]))
	if err != nil {
		return o, fmt.Errorf("invalid DateCreated: %v", err)
	}
	o.DateCreated = created

	if s := strings.TrimSpace(rec[2]); s != "" {
		v, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
		if err != nil {
			return o, fmt.Errorf("invalid Total: %v", err)
		}
		if v.IsNegative() {
			return o, fmt.Errorf("invalid Total: %s is negative", s)
		}
		o.Totals.Total = decimal.NewNullDecimal(v)
	}

	o.Currency = strings.ToUpper(strings.TrimSpace(rec[3]))

	return o, nil
}
