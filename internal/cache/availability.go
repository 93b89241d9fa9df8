package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const availabilityTTL = 60 * time.Second

// AvailabilityCache keeps computed slot lists for the public availability
// endpoint. Entries are short-lived and invalidated on every booking
// mutation for the barber+day, so a stale read costs the client at most a
// conflict at commit time, never a double booking.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{rdb: rdb, ttl: availabilityTTL}
}

func key(barberID, serviceID uint, day string) string {
	return fmt.Sprintf("availability:%d:%s:%d", barberID, day, serviceID)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	barberID, serviceID uint,
	day string,
) ([]time.Time, bool) {

	val, err := c.rdb.Get(ctx, key(barberID, serviceID, day)).Result()
	if err != nil {
		return nil, false
	}

	var slots []time.Time
	if err := json.Unmarshal([]byte(val), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	barberID, serviceID uint,
	day string,
	slots []time.Time,
) {
	b, err := json.Marshal(slots)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key(barberID, serviceID, day), b, c.ttl)
}

// InvalidateDay drops every cached service grid for the barber+day.
func (c *AvailabilityCache) InvalidateDay(
	ctx context.Context,
	barberID uint,
	day string,
) {
	pattern := fmt.Sprintf("availability:%d:%s:*", barberID, day)
	keys, err := c.rdb.Keys(ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}
