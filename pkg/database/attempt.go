package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/smashscrap/marketplace/pkg/model"
)

type AttemptRepository interface {
	Add(context.Context, ...model.BidAttempt) error
}

type AttemptDatabase struct {
	DB *sql.DB
}

func (ad *AttemptDatabase) Add(ctx context.Context, attempts ...model.BidAttempt) error {
	if len(attempts) == 0 {
		return nil
	}

	q := buildBatchQuery(len(attempts))

	args := make([]any, 0, len(attempts)*6)
	for _, a := range attempts {
		bidID := sql.NullInt64{Int64: int64(a.BidID), Valid: a.BidID != 0}
		errMsg := sql.NullString{String: a.Error, Valid: a.Error != ""}

		args = append(args, a.UserID, a.ItemID, a.Amount, bidID, errMsg, a.CreatedAt)
	}

	res, err := ad.DB.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("can't insert bid attempts: %w", err)
	}

	if affected, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("can't get affected rows: %w", err)
	} else if int(affected) != len(attempts) {
		return fmt.Errorf("expected %d records to be inserted, got %d", len(attempts), affected)
	}

	return nil
}

func buildBatchQuery(rows int) string {
	sb := strings.Builder{}
	sb.WriteString("insert into bid_attempts (user_id, item_id, amount, bid_id, error, created_at) values ")

	phs := make([]string, 0, rows)

	for i := 0; i < rows; i++ {
		phs = append(phs, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6))
	}

	sb.WriteString(strings.Join(phs, ","))
	return sb.String()
}

// AttemptBatchingDatabase buffers attempt records and flushes them in bulk.
// The audit trail is off the bid placement critical path: a lost batch on
// crash costs history, not money.
type AttemptBatchingDatabase struct {
	buffer    []model.BidAttempt
	ticker    *time.Ticker
	batchSize int
	mu        sync.Mutex

	*AttemptDatabase
}

func NewAttemptBatchingDatabase(db *sql.DB, batchSize int, flushInterval time.Duration) *AttemptBatchingDatabase {
	ad := &AttemptBatchingDatabase{
		buffer:    make([]model.BidAttempt, 0, batchSize),
		ticker:    time.NewTicker(flushInterval),
		batchSize: batchSize,

		AttemptDatabase: &AttemptDatabase{db},
	}

	go func() {
		for range ad.ticker.C {
			if err := ad.flush(); err != nil {
				slog.Error("can't flush bid attempts buffer", slog.Any("error", err))
			}
		}
	}()

	return ad
}

func (ad *AttemptBatchingDatabase) Add(ctx context.Context, attempts ...model.BidAttempt) error {
	if len(attempts) == 0 {
		return nil
	}

	ad.mu.Lock()
	ad.buffer = append(ad.buffer, attempts...)
	shouldFlush := len(ad.buffer) >= ad.batchSize
	ad.mu.Unlock()

	if shouldFlush {
		go func() {
			if err := ad.flush(); err != nil {
				slog.Error("can't flush bid attempts buffer", slog.Any("error", err))
			}
		}()
	}

	return nil
}

func (ad *AttemptBatchingDatabase) flush() error {
	ad.mu.Lock()
	if len(ad.buffer) == 0 {
		ad.mu.Unlock()
		return nil
	}

	batch := make([]model.BidAttempt, len(ad.buffer))
	copy(batch, ad.buffer)
	ad.buffer = ad.buffer[:0]
	ad.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.TODO(), time.Second*10)
	defer cancel()

	if err := ad.AttemptDatabase.Add(ctx, batch...); err != nil {
		return fmt.Errorf("can't insert batch: %w", err)
	}

	return nil
}
