package solat

import (
	"context"
	"sync"
	"time"

	"github.com/alitto/pond"
)

// FetchMany fetches date's schedule for every city in cityIDs, at most
// workers at a time. Each city gets its own copy of base, so every result
// follows the same fallback rules as FetchSchedule.
func FetchMany(ctx context.Context, base Client, cityIDs []int, date time.Time, workers int) map[int]Schedule {
	results := make(map[int]Schedule, len(cityIDs))
	if len(cityIDs) == 0 {
		return results
	}
	if workers <= 0 {
		workers = 1
	}

	pool := pond.New(workers, len(cityIDs))
	var mu sync.Mutex

	for _, id := range cityIDs {
		c := base
		c.CityID = id
		pool.Submit(func() {
			schedule := c.FetchSchedule(ctx, date)

			mu.Lock()
			results[c.CityID] = schedule
			mu.Unlock()
		})
	}

	pool.StopAndWait()
	return results
}
