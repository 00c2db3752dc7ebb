package cron

import (
	"context"
	"log"
	"time"

	"arborbook/config"
	bookingRepo "arborbook/database/repository/booking"

	"github.com/hibiken/asynq"
)

const TypeArchiveSweep = "archive:sweep"

// InitArchiveWorker runs the async archive sweeper in background. It moves
// completed/cancelled bookings past the retention window into the archive,
// through the same repository the rest of the app uses.
func InitArchiveWorker(repo bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeArchiveSweep, handleArchiveSweep(repo))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("@every 24h", asynq.NewTask(TypeArchiveSweep, nil)); err != nil {
		log.Printf("[ArchiveWorker] failed to register sweep schedule: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[ArchiveWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[ArchiveWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ArchiveWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ArchiveWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleArchiveSweep(repo bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		cutoff := time.Now().
			AddDate(0, 0, -config.AppConfig.ArchiveAfterDays).
			Format("2006-01-02")

		archived, err := repo.ArchiveTerminalBefore(ctx, cutoff)
		if err != nil {
			log.Printf("[ArchiveSweep] sweep failed: %v", err)
			return err
		}
		if archived > 0 {
			log.Printf("[ArchiveSweep] archived %d terminal bookings older than %s", archived, cutoff)
		}
		return nil
	}
}
