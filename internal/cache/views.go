package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

const viewKeyPrefix = "goldlink:views:"

// ViewCounter accumulates jewelry view counts in Redis so that listing detail
// reads do not hit Postgres with an UPDATE each time. A periodic job drains
// the counters into the jewelry table.
type ViewCounter struct {
	client *redis.Client
}

func NewViewCounter(client *redis.Client) *ViewCounter {
	return &ViewCounter{client: client}
}

// Increment records one view for the given jewelry listing.
func (v *ViewCounter) Increment(ctx context.Context, jewelryID int32) error {
	key := viewKeyPrefix + strconv.FormatInt(int64(jewelryID), 10)
	if err := v.client.Incr(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to increment view counter: %w", err)
	}
	return nil
}

// Drain atomically reads and resets all pending view counters. Returns a map
// of jewelry ID to the number of views accumulated since the last drain.
func (v *ViewCounter) Drain(ctx context.Context) (map[int32]int32, error) {
	counts := make(map[int32]int32)

	var cursor uint64
	for {
		keys, next, err := v.client.Scan(ctx, cursor, viewKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan view counters: %w", err)
		}

		for _, key := range keys {
			raw, err := v.client.GetDel(ctx, key).Result()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to drain view counter %s: %w", key, err)
			}

			id, err := strconv.ParseInt(strings.TrimPrefix(key, viewKeyPrefix), 10, 32)
			if err != nil {
				continue
			}
			n, err := strconv.ParseInt(raw, 10, 32)
			if err != nil || n <= 0 {
				continue
			}
			counts[int32(id)] += int32(n)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return counts, nil
}
