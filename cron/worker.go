package cron

import (
	"context"
	"log"
	"time"

	"lagocruise/config"
	"lagocruise/services/booking"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const (
	TypeSweepAbandoned = "booking:sweep_abandoned"
	TypeSweepCompleted = "booking:sweep_completed"

	// Abandon checks run more often than completion checks.
	scheduleAbandoned = "*/15 * * * *"
	scheduleCompleted = "0 * * * *"
)

// InitSweepWorker starts the periodic booking sweeps in the background: an
// asynq scheduler enqueues the sweep tasks on their cron schedules and a
// worker executes them. A failing run is logged and never prevents the next
// scheduled one.
func InitSweepWorker(bookingSvc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
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
	mux.HandleFunc(TypeSweepAbandoned, handleSweepAbandoned(bookingSvc))
	mux.HandleFunc(TypeSweepCompleted, handleSweepCompleted(bookingSvc))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register(scheduleAbandoned, asynq.NewTask(TypeSweepAbandoned, nil)); err != nil {
		log.Fatalf("[SweepWorker] failed to register abandoned sweep: %v", err)
	}
	if _, err := scheduler.Register(scheduleCompleted, asynq.NewTask(TypeSweepCompleted, nil)); err != nil {
		log.Fatalf("[SweepWorker] failed to register completed sweep: %v", err)
	}

	// Catch up immediately on boot before the first scheduled tick.
	go runInitialSweeps(bookingSvc)

	// Start Redis health monitor
	go monitorRedisConnection()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[SweepWorker] scheduler stopped: %v", err)
		}
	}()

	// Start async worker with retry logic
	go func() {
		log.Println("[SweepWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleSweepAbandoned(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := bookingSvc.SweepAbandoned(ctx)
		if err != nil {
			log.Printf("[SweepWorker] abandon sweep failed: %v", err)
			return err
		}
		if n > 0 {
			log.Printf("[SweepWorker] abandoned %d stale booking(s)", n)
		}
		return nil
	}
}

func handleSweepCompleted(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := bookingSvc.SweepCompleted(ctx)
		if err != nil {
			log.Printf("[SweepWorker] completion sweep failed: %v", err)
			return err
		}
		if n > 0 {
			log.Printf("[SweepWorker] completed %d booking(s)", n)
		}
		return nil
	}
}

func runInitialSweeps(bookingSvc booking.BookingService) {
	ctx := context.Background()
	if _, err := bookingSvc.SweepAbandoned(ctx); err != nil {
		log.Printf("[SweepWorker] initial abandon sweep failed: %v", err)
	}
	if _, err := bookingSvc.SweepCompleted(ctx); err != nil {
		log.Printf("[SweepWorker] initial completion sweep failed: %v", err)
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[SweepWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
