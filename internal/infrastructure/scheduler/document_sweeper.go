package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// UploadSweeper is the interface the sweeper drives. Implemented by the
// document application service.
type UploadSweeper interface {
	SweepExpiredUploads(ctx context.Context, limit int) (int, error)
}

// DocumentSweeperConfig holds configuration for the expired-upload sweeper
type DocumentSweeperConfig struct {
	// Enabled indicates if the sweeper is enabled
	Enabled bool
	// Interval is how often the sweep runs
	Interval time.Duration
	// BatchSize is the maximum number of documents tombstoned per sweep
	BatchSize int
	// SweepTimeout is the maximum time a single sweep can run
	SweepTimeout time.Duration
}

// DefaultDocumentSweeperConfig returns default sweeper configuration
func DefaultDocumentSweeperConfig() DocumentSweeperConfig {
	return DocumentSweeperConfig{
		Enabled:      true,
		Interval:     15 * time.Minute,
		BatchSize:    100,
		SweepTimeout: 5 * time.Minute,
	}
}

// DocumentSweeper periodically tombstones pending documents whose
// presigned upload window has expired without a confirmation.
type DocumentSweeper struct {
	config  DocumentSweeperConfig
	sweeper UploadSweeper
	logger  *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewDocumentSweeper creates a new expired-upload sweeper
func NewDocumentSweeper(config DocumentSweeperConfig, sweeper UploadSweeper, logger *zap.Logger) *DocumentSweeper {
	if config.Interval <= 0 {
		config.Interval = DefaultDocumentSweeperConfig().Interval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultDocumentSweeperConfig().BatchSize
	}
	if config.SweepTimeout <= 0 {
		config.SweepTimeout = DefaultDocumentSweeperConfig().SweepTimeout
	}
	return &DocumentSweeper{
		config:  config,
		sweeper: sweeper,
		logger:  logger,
	}
}

// Start starts the background sweep loop
func (s *DocumentSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Document sweeper started",
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
	)

	return nil
}

// Stop gracefully stops the sweeper
func (s *DocumentSweeper) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Document sweeper stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Document sweeper stop timed out")
		return ctx.Err()
	}
}

// runLoop runs the sweep on a fixed interval until the context is cancelled
func (s *DocumentSweeper) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

// runSweep executes a single bounded sweep
func (s *DocumentSweeper) runSweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.config.SweepTimeout)
	defer cancel()

	start := time.Now()
	swept, err := s.sweeper.SweepExpiredUploads(sweepCtx, s.config.BatchSize)
	if err != nil {
		s.logger.Error("Expired-upload sweep failed", zap.Error(err))
		return
	}

	if swept > 0 {
		s.logger.Info("Expired-upload sweep completed",
			zap.Int("swept", swept),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
