package services

import (
	"context"
	"time"

	"imc-donations/internal/adapters/persistence/repositories"
	"imc-donations/internal/config"
	"imc-donations/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweepResult counts what one sweep did
type SweepResult struct {
	Checked      int
	Applied      int
	StillPending int
	NotFound     int
	Failed       int
}

// CronService periodically re-checks pending payments with the provider.
// It covers notifications that never arrived or were dropped after a
// provider error.
type CronService struct {
	paymentRepo repositories.PaymentRepository
	gateway     PaymentGateway
	webhook     *WebhookService
	cfg         config.ReconcileConfig
	cron        *cron.Cron
	now         func() time.Time
}

// NewCronService creates a new cron service
func NewCronService(
	paymentRepo repositories.PaymentRepository,
	gateway PaymentGateway,
	webhook *WebhookService,
	cfg config.ReconcileConfig,
) *CronService {
	return &CronService{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		webhook:     webhook,
		cfg:         cfg,
		cron:        cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Start schedules the sweep. An empty schedule leaves the job off.
func (s *CronService) Start() error {
	if s.cfg.Schedule == "" {
		logger.Log.Info("⏸️ Pending payment sweeper disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		if _, err := s.SweepPending(context.Background()); err != nil {
			logger.Log.Error("pending payment sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	logger.Log.Info("🚀 Pending payment sweeper started", zap.String("schedule", s.cfg.Schedule))
	return nil
}

// Stop waits for a running sweep to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	logger.Log.Info("🛑 Pending payment sweeper stopped")
}

// SweepPending looks up every open payment (pending, in process or
// authorized) between MinAge and MaxAge old and reconciles the ones the
// provider knows about
func (s *CronService) SweepPending(ctx context.Context) (*SweepResult, error) {
	now := s.now()
	batch := s.cfg.BatchSize
	if batch < 1 {
		batch = 50
	}

	payments, err := s.paymentRepo.ListOpenCreatedBetween(ctx, now.Add(-s.cfg.MaxAge), now.Add(-s.cfg.MinAge), batch)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{}
	for _, p := range payments {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		result.Checked++

		pp, err := s.gateway.FindPaymentByExternalReference(ctx, p.ExternalReference)
		if err != nil {
			result.Failed++
			logger.Log.Warn("provider search failed",
				zap.String("external_reference", p.ExternalReference),
				zap.Error(err),
			)
			continue
		}
		if pp == nil {
			result.NotFound++
			continue
		}

		outcome, err := s.webhook.Reconcile(ctx, pp)
		switch {
		case err != nil:
			result.Failed++
		case outcome == OutcomeApplied:
			result.Applied++
		case outcome == OutcomeUnchanged:
			result.StillPending++
		}
	}

	logger.Log.Info("pending payment sweep finished",
		zap.Int("checked", result.Checked),
		zap.Int("applied", result.Applied),
		zap.Int("still_pending", result.StillPending),
		zap.Int("not_found", result.NotFound),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}
