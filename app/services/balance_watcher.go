package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/lodge/pkg/logger"
)

// BalanceReading is one poll result.
type BalanceReading struct {
	Balance decimal.Decimal `json:"balance"`
	At      time.Time       `json:"at"`
}

type balanceSource interface {
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
}

// BalanceWatcher polls a user's balance on an interval.
type BalanceWatcher struct {
	source   balanceSource
	interval time.Duration
}

func NewBalanceWatcher(source *WalletService, interval time.Duration) *BalanceWatcher {
	return newBalanceWatcher(source, interval)
}

func newBalanceWatcher(source balanceSource, interval time.Duration) *BalanceWatcher {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &BalanceWatcher{source: source, interval: interval}
}

// Watch publishes a reading immediately and then every interval until ctx
// is done, when the channel is closed. A failed poll is logged and
// skipped. A slow consumer misses readings rather than stalling the poll.
func (w *BalanceWatcher) Watch(ctx context.Context, userID string) <-chan BalanceReading {
	out := make(chan BalanceReading, 1)

	go func() {
		defer close(out)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			w.poll(ctx, userID, out)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
	return out
}

func (w *BalanceWatcher) poll(ctx context.Context, userID string, out chan BalanceReading) {
	bal, err := w.source.GetBalance(ctx, userID)
	if err != nil {
		if ctx.Err() == nil {
			logger.WithCtx(ctx).Warn("wallet: balance poll failed", "user_id", userID, "error", err)
		}
		return
	}

	reading := BalanceReading{Balance: bal, At: time.Now().UTC()}
	select {
	case out <- reading:
	default:
		// Replace the unread reading with the newer one.
		select {
		case <-out:
		default:
		}
		select {
		case out <- reading:
		default:
		}
	}
}
