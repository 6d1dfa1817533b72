package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedFiller returns errs in order, then succeeds.
type scriptedFiller struct {
	errs  []error
	calls int
}

func (s *scriptedFiller) Fill(_ context.Context, _ string, _ map[string]string, outPath string) (string, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return "", s.errs[s.calls-1]
	}
	return outPath, nil
}

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialBackoff: time.Millisecond, MaxBackoff: 2 * time.Millisecond}
}

func TestWithRetry_SingleAttemptUnwrapped(t *testing.T) {
	inner := &scriptedFiller{}
	assert.Same(t, inner, WithRetry(inner, RetryConfig{MaxAttempts: 1}))
	assert.Same(t, inner, WithRetry(inner, RetryConfig{}))
}

func TestWithRetry_RecoversFromTransient(t *testing.T) {
	inner := &scriptedFiller{errs: []error{
		&TransientError{Err: errors.New("signal: killed")},
		&TransientError{Err: errors.New("signal: killed")},
	}}

	written, err := WithRetry(inner, fastRetry(3)).Fill(context.Background(), "tpl.pdf", nil, "out.pdf")
	require.NoError(t, err)
	assert.Equal(t, "out.pdf", written)
	assert.Equal(t, 3, inner.calls)
}

func TestWithRetry_GivesUp(t *testing.T) {
	transient := &TransientError{Err: errors.New("signal: killed")}
	inner := &scriptedFiller{errs: []error{transient, transient, transient}}

	_, err := WithRetry(inner, fastRetry(2)).Fill(context.Background(), "tpl.pdf", nil, "out.pdf")
	require.Error(t, err)
	assert.True(t, IsTransient(err))
	assert.Equal(t, 2, inner.calls)
}

func TestWithRetry_PermanentNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"missing template", ErrTemplateNotFound},
		{"pdftk error", errors.New("render: pdftk failed for x.pdf: Error: bad form")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &scriptedFiller{errs: []error{tt.err}}
			_, err := WithRetry(inner, fastRetry(5)).Fill(context.Background(), "tpl.pdf", nil, "out.pdf")
			require.Error(t, err)
			assert.Equal(t, 1, inner.calls)
		})
	}
}

func TestWithRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inner := &scriptedFiller{errs: []error{&TransientError{Err: errors.New("signal: killed")}}}

	_, err := WithRetry(inner, fastRetry(5)).Fill(ctx, "tpl.pdf", nil, "out.pdf")
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestBackoff(t *testing.T) {
	cfg := RetryConfig{InitialBackoff: 100 * time.Millisecond, MaxBackoff: 300 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, backoff(0, cfg))
	assert.Equal(t, 200*time.Millisecond, backoff(1, cfg))
	assert.Equal(t, 300*time.Millisecond, backoff(2, cfg))

	cfg.JitterFraction = 0.5
	for n := 0; n < 20; n++ {
		d := backoff(0, cfg)
		assert.GreaterOrEqual(t, d, 50*time.Millisecond)
		assert.LessOrEqual(t, d, 150*time.Millisecond)
	}
}

func TestIsTransient_Wrapped(t *testing.T) {
	err := &TransientError{Err: errors.New("timeout")}
	assert.True(t, IsTransient(errors.Join(errors.New("outer"), err)))
	assert.False(t, IsTransient(errors.New("plain")))
	assert.False(t, IsTransient(nil))
}
