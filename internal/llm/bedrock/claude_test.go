package bedrock

import (
	"errors"
	"testing"
	"time"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"throttling", errors.New("ThrottlingException: Rate exceeded"), true},
		{"too many requests", errors.New("TooManyRequestsException"), true},
		{"internal server", errors.New("InternalServerException"), true},
		{"service unavailable", errors.New("ServiceUnavailableException"), true},
		{"http 503", errors.New("received 503 from upstream"), true},
		{"connection reset", errors.New("read tcp: connection reset by peer"), true},
		{"unexpected eof", errors.New("unexpected EOF"), true},
		{"validation", errors.New("ValidationException: malformed body"), false},
		{"access denied", errors.New("AccessDeniedException"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.retryable {
				t.Errorf("isRetryableError(%v) = %v, expected %v", tt.err, got, tt.retryable)
			}
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	initial := 100 * time.Millisecond
	max := 12 * time.Second

	for attempt := 0; attempt < 8; attempt++ {
		delay := calculateBackoff(attempt, initial, max)

		base := float64(initial) * float64(int(1)<<attempt)
		if base > float64(max) {
			base = float64(max)
		}
		lower := time.Duration(base * 0.8)
		upper := time.Duration(base * 1.2)

		if delay < lower || delay > upper {
			t.Errorf("attempt %d: delay %v outside jitter window [%v, %v]", attempt, delay, lower, upper)
		}
	}
}

func TestCalculateBackoff_CapsAtMax(t *testing.T) {
	delay := calculateBackoff(20, 100*time.Millisecond, 12*time.Second)
	if delay > time.Duration(float64(12*time.Second)*1.2) {
		t.Errorf("delay %v exceeds max plus jitter", delay)
	}
}
