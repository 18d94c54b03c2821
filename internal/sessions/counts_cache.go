package sessions

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/liftly/internal/calendar"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const countsCacheExpireSeconds = 5 * 60

// CountsCache keeps the per-day session counts of a trainer's month, as
// shown by the calendar. Entries are dropped whenever a session of that
// month is added or cancelled.
type CountsCache struct {
	cache *freecache.Cache
}

func NewCountsCache(sizeMB int) *CountsCache {
	megabyte := 1024 * 1024
	return &CountsCache{
		cache: freecache.NewCache(sizeMB * megabyte),
	}
}

func countsKey(trainerID, year int, month time.Month) []byte {
	return []byte(fmt.Sprintf("counts::%d::%04d-%02d", trainerID, year, month))
}

func (c *CountsCache) Get(trainerID, year int, month time.Month) (calendar.SessionsMap, bool) {
	data, err := c.cache.Get(countsKey(trainerID, year, month))
	if err != nil {
		return nil, false
	}
	var counts calendar.SessionsMap
	if err := json.Unmarshal(data, &counts); err != nil {
		log.Errorf("unmarshal cached session counts for trainer %d: %s", trainerID, err)
		return nil, false
	}
	return counts, true
}

func (c *CountsCache) Set(trainerID, year int, month time.Month, counts calendar.SessionsMap) {
	data, err := json.Marshal(counts)
	if err != nil {
		log.Errorf("marshal session counts for trainer %d: %s", trainerID, err)
		return
	}
	if err := c.cache.Set(countsKey(trainerID, year, month), data, countsCacheExpireSeconds); err != nil {
		log.Errorf("cache session counts for trainer %d: %s", trainerID, err)
	}
}

// Invalidate drops the cached month that dateKey falls in.
func (c *CountsCache) Invalidate(trainerID int, dateKey string) {
	date, err := calendar.ParseDateKey(dateKey)
	if err != nil {
		return
	}
	c.cache.Del(countsKey(trainerID, date.Year(), date.Month()))
}

func (c *CountsCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
