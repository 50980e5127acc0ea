package bidding

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const RollupChannel = "rollup.events"

// RollupEvent is published after a bid placement commits. It is the explicit
// recomputation trigger for downstream projections (dashboards, watchers):
// the cached aggregates are already consistent when the event goes out, so
// consumers may read them directly or recompute from item prices.
type RollupEvent struct {
	EventID       string              `json:"event_id"`
	BidID         int                 `json:"bid_id"`
	ItemID        int                 `json:"item_id"`
	PackageID     int                 `json:"package_id,omitempty"`
	SaleIDs       []int               `json:"sale_ids,omitempty"`
	Amount        decimal.Decimal     `json:"amount"`
	PreviousPrice decimal.NullDecimal `json:"previous_price"`
	OccurredAt    time.Time           `json:"occurred_at"`
}

func NewRollupEvent(bidID, itemID, packageID int, saleIDs []int, amount decimal.Decimal, prev decimal.NullDecimal) RollupEvent {
	return RollupEvent{
		EventID:       uuid.NewString(),
		BidID:         bidID,
		ItemID:        itemID,
		PackageID:     packageID,
		SaleIDs:       saleIDs,
		Amount:        amount,
		PreviousPrice: prev,
		OccurredAt:    time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev RollupEvent) error
}

// RedisPublisher fans rollup events out over redis pub/sub.
type RedisPublisher struct {
	Redis   *redis.Client
	Channel string
}

func (p *RedisPublisher) Publish(ctx context.Context, ev RollupEvent) error {
	ch := p.Channel
	if ch == "" {
		ch = RollupChannel
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("can't marshal rollup event: %w", err)
	}

	if err := p.Redis.Publish(ctx, ch, payload).Err(); err != nil {
		return fmt.Errorf("can't publish rollup event: %w", err)
	}

	return nil
}
