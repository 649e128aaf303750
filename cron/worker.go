package cron

import (
	"context"
	"log"
	"time"

	"appointify/config"
	appointmentRepo "appointify/database/repository/appointment"
	"appointify/services/scheduling"

	"github.com/hibiken/asynq"
)

const TypeLifecycleSweep = "lifecycle:sweep"

// sweepInterval is how often the lifecycle sweep is enqueued.
const sweepInterval = 5 * time.Minute

// InitLifecycleWorker runs the async worker in background. Each sweep
// completes confirmed appointments whose end time has passed and expires
// pending appointments that outlived their payment hold.
func InitLifecycleWorker(repo appointmentRepo.AppointmentRepository, clock scheduling.Clock) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisWorkerDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeLifecycleSweep, handleSweepTask(repo, clock))

	go enqueueSweeps(redisOpts)

	// Start async worker with retry logic
	go func() {
		log.Println("[LifecycleWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[LifecycleWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[LifecycleWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// enqueueSweeps puts a sweep task on the queue once immediately and then on
// every tick.
func enqueueSweeps(redisOpts asynq.RedisClientOpt) {
	client := asynq.NewClient(redisOpts)
	defer client.Close()

	enqueue := func() {
		task := asynq.NewTask(TypeLifecycleSweep, nil)
		if _, err := client.Enqueue(task, asynq.Unique(sweepInterval)); err != nil {
			log.Printf("[LifecycleWorker] failed to enqueue sweep: %v", err)
		}
	}

	enqueue()
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		enqueue()
	}
}

func handleSweepTask(repo appointmentRepo.AppointmentRepository, clock scheduling.Clock) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		now := clock.Now()

		completed, err := repo.CompleteFinished(now)
		if err != nil {
			log.Printf("[LifecycleSweep] failed to complete finished appointments: %v", err)
			return err
		}

		hold := config.AppConfig.PendingHoldMinutes
		if hold <= 0 {
			hold = 30
		}
		cutoff := now.Add(-time.Duration(hold) * time.Minute)
		expired, err := repo.ExpirePending(now, cutoff)
		if err != nil {
			log.Printf("[LifecycleSweep] failed to expire pending appointments: %v", err)
			return err
		}

		if completed > 0 || expired > 0 {
			log.Printf("[LifecycleSweep] completed=%d expired=%d", completed, expired)
		}
		return nil
	}
}
