// Package reminder runs the periodic due-date reminder sweep.
package reminder

import (
	"context"
	"log/slog"
	"time"

	usecase "github.com/amaanah/backend/internal/application/usecase/reminder"
)

// Worker runs the due-date scan on an interval.
type Worker struct {
	scanUseCase  *usecase.ScanDueDatesUseCase
	scanInterval time.Duration
}

// WorkerConfig holds configuration for the reminder worker.
type WorkerConfig struct {
	ScanInterval time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		ScanInterval: 1 * time.Hour,
	}
}

// NewWorker creates a new reminder worker.
func NewWorker(scanUseCase *usecase.ScanDueDatesUseCase, config WorkerConfig) *Worker {
	return &Worker{
		scanUseCase:  scanUseCase,
		scanInterval: config.ScanInterval,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Reminder worker started", "scan_interval", w.scanInterval)

	ticker := time.NewTicker(w.scanInterval)
	defer ticker.Stop()

	// Scan immediately on start, then on ticker
	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Reminder worker shutting down")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *Worker) scan(ctx context.Context) {
	output, err := w.scanUseCase.Execute(ctx)
	if err != nil {
		slog.Error("Reminder scan failed", "error", err)
		return
	}
	if output.RemindersSent > 0 {
		slog.Info("Reminder scan finished",
			"entries_scanned", output.EntriesScanned,
			"reminders_sent", output.RemindersSent,
		)
	}
}

// ScanNow runs a single sweep immediately (useful for testing).
func (w *Worker) ScanNow(ctx context.Context) {
	w.scan(ctx)
}
