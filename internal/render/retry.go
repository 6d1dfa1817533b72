package render

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"os/exec"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// TransientError marks a fill failure that is safe to retry: pdftk killed by
// a signal, a per-call timeout or a busy executable.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err, or any error in its chain, is a
// TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// transientExit reports whether a failed command run is worth retrying.
func transientExit(err error) bool {
	if errors.Is(err, syscall.ETXTBSY) {
		return true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return true
		}
	}
	return false
}

// RetryConfig controls retries of transient fill failures.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts, the first included.
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// JitterFraction spreads each delay by ±fraction.
	JitterFraction float64
}

type retryingFiller struct {
	next Filler
	cfg  RetryConfig
}

// WithRetry wraps next so transient failures are retried with exponential
// backoff. MaxAttempts below 2 returns next unchanged.
func WithRetry(next Filler, cfg RetryConfig) Filler {
	if cfg.MaxAttempts < 2 {
		return next
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 250 * time.Millisecond
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = 5 * time.Second
	}
	if cfg.JitterFraction < 0 {
		cfg.JitterFraction = 0
	}
	return &retryingFiller{next: next, cfg: cfg}
}

func (r *retryingFiller) Fill(ctx context.Context, templatePath string, fields map[string]string, outPath string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		written, err := r.next.Fill(ctx, templatePath, fields, outPath)
		if err == nil {
			return written, nil
		}
		lastErr = err

		if ctx.Err() != nil || !IsTransient(err) || attempt == r.cfg.MaxAttempts-1 {
			break
		}

		zap.L().Warn("render: retrying fill",
			zap.String("template", templatePath),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		timer := time.NewTimer(backoff(attempt, r.cfg))
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", lastErr
		case <-timer.C:
		}
	}
	return "", lastErr
}

func backoff(attempt int, cfg RetryConfig) time.Duration {
	delay := float64(cfg.InitialBackoff) * math.Pow(2, float64(attempt))
	if delay > float64(cfg.MaxBackoff) {
		delay = float64(cfg.MaxBackoff)
	}
	if cfg.JitterFraction > 0 {
		span := delay * cfg.JitterFraction
		delay += (rand.Float64()*2 - 1) * span
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}
