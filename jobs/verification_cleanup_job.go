package jobs

import (
	"time"

	"go.uber.org/zap"

	"gymbuddy-api/services"
)

// VerificationCleanupJob periodically drops expired and consumed email
// verification codes so the in-memory map cannot grow without bound.
type VerificationCleanupJob struct {
	emailService *services.EmailService
	logger       *zap.Logger
	ticker       *time.Ticker
	done         chan bool
}

// NewVerificationCleanupJob creates a new cleanup job
func NewVerificationCleanupJob(emailService *services.EmailService, interval time.Duration, logger *zap.Logger) *VerificationCleanupJob {
	return &VerificationCleanupJob{
		emailService: emailService,
		logger:       logger,
		ticker:       time.NewTicker(interval),
		done:         make(chan bool),
	}
}

// Start begins the cleanup job
func (j *VerificationCleanupJob) Start() {
	j.logger.Info("verification code cleanup job started")

	go func() {
		// Run immediately on start
		j.cleanup()

		for {
			select {
			case <-j.ticker.C:
				j.cleanup()
			case <-j.done:
				j.logger.Info("verification code cleanup job stopped")
				return
			}
		}
	}()
}

// Stop stops the cleanup job
func (j *VerificationCleanupJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *VerificationCleanupJob) cleanup() {
	removed := j.emailService.CleanupExpiredCodes()
	if removed > 0 {
		j.logger.Info("removed stale verification codes", zap.Int("count", removed))
	}
}
