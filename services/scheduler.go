// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartNewsScheduler keeps the news cache healthy: warm today's payload
// shortly after each day starts and hourly thereafter, prune stale rows once
// an hour. Jobs share the service's context so shutdown stops them.
func (s *NewsService) StartNewsScheduler(ctx context.Context) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			now := time.Now()
			s.WarmCache(ctx, now)
			s.Prune(now)
		}),
	)

	// Daily warm-up right after the cache key rolls over.
	_, _ = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(6, 0, 0))),
		gocron.NewTask(func() {
			s.WarmCache(ctx, time.Now())
		}),
	)

	go func() {
		<-ctx.Done()
		if err := sched.Shutdown(); err != nil {
			log.Printf("[Scheduler] shutdown error: %v", err)
		}
	}()
}
