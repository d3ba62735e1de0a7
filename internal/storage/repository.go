package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/salesdata/internal/domain/models"
	pq "github.com/lib/pq"
)

// DateRangeOrderStore is the read side needed by the sales endpoint.
type DateRangeOrderStore interface {
	QueryOrders(ctx context.Context, interval models.Interval) (*models.OrderPage, error)
}

// OrdersRepository defines contract for DB operations on store orders.
type OrdersRepository interface {
	DateRangeOrderStore
	HasIngestionForDate(date time.Time) (bool, error)
	BeginDayLoad(ctx context.Context, from, to time.Time) (DayLoad, error)
}

// DayLoad replaces the orders of one export day inside a single transaction.
// Nothing it writes is visible to readers until Finish commits, so a file
// that fails halfway leaves the table and ingestion_log untouched.
type DayLoad interface {
	InsertOrdersBatch(orders []models.Order) error
	Finish(fileDate time.Time, filename string, rowCount int) error
	Rollback() error
}

type ordersRepository struct {
	db *sql.DB
	// backendRole is assumed with SET LOCAL ROLE for aggregate reads so they
	// are not filtered by per-user row level security. Empty keeps the
	// connection's own role.
	backendRole string
}

func NewOrdersRepository(db *sql.DB, backendRole string) OrdersRepository {
	return &ordersRepository{db: db, backendRole: backendRole}
}

// QueryOrders returns the number of orders created inside interval (bounds
// included) together with the id, creation time and total of each of them.
//
// Both statements run in one read-only transaction so the count and the
// items come from the same snapshot.
func (r *ordersRepository) QueryOrders(ctx context.Context, interval models.Interval) (*models.OrderPage, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin read: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if r.backendRole != "" {
		if _, err := tx.ExecContext(ctx, "SET LOCAL ROLE "+pq.QuoteIdentifier(r.backendRole)); err != nil {
			return nil, fmt.Errorf("assume backend role: %w", err)
		}
	}

	page := &models.OrderPage{}
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM store_orders WHERE date_created >= $1 AND date_created <= $2`,
		interval.Start, interval.End,
	).Scan(&page.TotalCount)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	// Only the revenue projection is transferred, never full records.
	rows, err := tx.QueryContext(ctx, `
		SELECT id, date_created, total
		FROM store_orders
		WHERE date_created >= $1 AND date_created <= $2
		ORDER BY date_created, id
	`, interval.Start, interval.End)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.DateCreated, &o.Totals.Total); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		page.Items = append(page.Items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit read: %w", err)
	}
	return page, nil
}

// HasIngestionForDate checks if an export file was already loaded for a given day.
func (r *ordersRepository) HasIngestionForDate(date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE file_date = $1)`, date).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// BeginDayLoad opens the transaction of one export file and removes the
// orders already stored for [from, to).
func (r *ordersRepository) BeginDayLoad(ctx context.Context, from, to time.Time) (DayLoad, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin load: %w", err)
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM store_orders WHERE date_created >= $1 AND date_created < $2`, from, to,
	); err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("delete existing: %w", err)
	}

	return &dayLoad{ctx: ctx, tx: tx}, nil
}

type dayLoad struct {
	ctx context.Context
	tx  *sql.Tx
}

// InsertOrdersBatch streams orders into the load transaction with COPY.
func (l *dayLoad) InsertOrdersBatch(orders []models.Order) error {
	stmt, err := l.tx.PrepareContext(l.ctx, pq.CopyIn(
		"store_orders",
		"id",
		"date_created",
		"total",
		"currency",
	))
	if err != nil {
		return err
	}

	toNullString := func(s string) interface{} {
		if s == "" {
			return nil
		}
		return s
	}

	for _, o := range orders {
		if _, err := stmt.ExecContext(l.ctx,
			o.ID,
			o.DateCreated,
			o.Totals.Total,
			toNullString(o.Currency),
		); err != nil {
			_ = stmt.Close()
			return err
		}
	}

	if _, err := stmt.ExecContext(l.ctx); err != nil {
		_ = stmt.Close()
		return err
	}
	return stmt.Close()
}

// Finish records the file in ingestion_log (or updates its entry) and
// commits the load.
func (l *dayLoad) Finish(fileDate time.Time, filename string, rowCount int) error {
	if _, err := l.tx.ExecContext(l.ctx, `
		INSERT INTO ingestion_log (file_date, filename, row_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (file_date)
		DO UPDATE SET filename = EXCLUDED.filename,
					  row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, fileDate, filename, rowCount); err != nil {
		return fmt.Errorf("upsert ingestion log: %w", err)
	}
	if err := l.tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}

// Rollback discards the load. It is a no-op after Finish.
func (l *dayLoad) Rollback() error {
	if err := l.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
