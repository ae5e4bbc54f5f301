package jobs

import (
	"context"
	"time"

	"goldlink-backend/internal/cache"
	"goldlink-backend/internal/domain"
	"goldlink-backend/internal/logger"
	"goldlink-backend/internal/repository"
)

// pageSize must stay within the limit the repositories honor; anything larger
// gets clamped server side and the scan would silently skip rows.
const pageSize = 100

// Runner holds the periodic maintenance jobs. Each job is safe to run
// concurrently with live traffic and tolerates partial failure: one bad row
// is logged and skipped, not fatal.
type Runner struct {
	bookings repository.BookingRepository
	jewelry  repository.JewelryRepository
	views    *cache.ViewCounter

	pendingExpiry time.Duration
	overdueGrace  time.Duration
}

func NewRunner(
	bookings repository.BookingRepository,
	jewelry repository.JewelryRepository,
	views *cache.ViewCounter,
	pendingExpiryDays, overdueGraceDays int,
) *Runner {
	return &Runner{
		bookings:      bookings,
		jewelry:       jewelry,
		views:         views,
		pendingExpiry: time.Duration(pendingExpiryDays) * 24 * time.Hour,
		overdueGrace:  time.Duration(overdueGraceDays) * 24 * time.Hour,
	}
}

// RunWithRecovery wraps a job so a panic inside it cannot take down the
// scheduler goroutine.
func RunWithRecovery(name string, job func(context.Context) error) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("job panicked", "job", name, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			logger.Error("job failed", "job", name, "error", err)
			return
		}
		logger.Info("job finished", "job", name, "duration", time.Since(start))
	}
}

// ExpireStalePendingBookings cancels PENDING bookings the owner never acted
// on within the expiry window and puts the items back on the market.
func (r *Runner) ExpireStalePendingBookings(ctx context.Context) error {
	cutoff := time.Now().Add(-r.pendingExpiry)
	expired := 0

	// Cancelling a booking removes it from the PENDING result set, shifting
	// later rows toward lower offsets. The offset therefore only advances
	// past the rows that stayed in the set.
	for skip := int32(0); ; {
		page, _, err := r.bookings.ListAll(ctx, string(domain.BookingStatusPending), pageSize, skip)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			break
		}

		kept := int32(0)
		for i := range page {
			b := &page[i]
			if !b.CreatedOn.Before(cutoff) {
				kept++
				continue
			}
			if err := r.bookings.UpdateStatus(ctx, b.ID, domain.BookingStatusCancelled); err != nil {
				logger.Warn("failed to expire pending booking", "booking_id", b.ID, "error", err)
				kept++
				continue
			}
			if err := r.jewelry.SetAvailability(ctx, b.JewelryID, true, false); err != nil {
				logger.Warn("failed to restore availability for expired booking",
					"booking_id", b.ID, "jewelry_id", b.JewelryID, "error", err)
			}
			expired++
		}

		if len(page) < pageSize {
			break
		}
		skip += kept
	}

	if expired > 0 {
		logger.Info("expired stale pending bookings", "count", expired)
	}
	return nil
}

// MarkOverdueActiveBookings flags ACTIVE bookings past their end date plus
// grace period as DISPUTE for manual follow-up.
func (r *Runner) MarkOverdueActiveBookings(ctx context.Context) error {
	cutoff := time.Now().Add(-r.overdueGrace)
	flagged := 0

	// Same shifting-result-set walk as the pending expiry above.
	for skip := int32(0); ; {
		page, _, err := r.bookings.ListAll(ctx, string(domain.BookingStatusActive), pageSize, skip)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			break
		}

		kept := int32(0)
		for i := range page {
			b := &page[i]
			if !b.EndDate.Before(cutoff) {
				kept++
				continue
			}
			if err := r.bookings.UpdateStatus(ctx, b.ID, domain.BookingStatusDispute); err != nil {
				logger.Warn("failed to flag overdue booking", "booking_id", b.ID, "error", err)
				kept++
				continue
			}
			flagged++
		}

		if len(page) < pageSize {
			break
		}
		skip += kept
	}

	if flagged > 0 {
		logger.Warn("flagged overdue bookings as disputes", "count", flagged)
	}
	return nil
}

// FlushJewelryViews drains the Redis view counters into the jewelry table.
func (r *Runner) FlushJewelryViews(ctx context.Context) error {
	if r.views == nil {
		return nil
	}
	counts, err := r.views.Drain(ctx)
	if err != nil {
		return err
	}

	for id, delta := range counts {
		if err := r.jewelry.AddViews(ctx, id, delta); err != nil {
			logger.Warn("failed to flush view counter", "jewelry_id", id, "delta", delta, "error", err)
		}
	}

	if len(counts) > 0 {
		logger.Debug("flushed jewelry view counters", "listings", len(counts))
	}
	return nil
}
