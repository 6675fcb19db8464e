package gateway

import (
	"context"
	"errors"
	"math/rand"
	"sync"

	"billing-engine/internal/core/domain"
	"billing-engine/internal/core/ports"
)

var errGatewayUnreachable = errors.New("gateway unreachable")

// MockCharger simulates a payment gateway. Each call captures with
// probability successRate; of the failures, transientRate are reported as
// transient network errors and the rest as plain declines. Useful for local
// runs and load exercises against the billing pass.
type MockCharger struct {
	mu            sync.Mutex
	rng           *rand.Rand
	successRate   float64
	transientRate float64
}

// NewMockCharger builds a charger with the given outcome rates. Rates are
// clamped to [0, 1].
func NewMockCharger(successRate, transientRate float64, seed int64) *MockCharger {
	return &MockCharger{
		rng:           rand.New(rand.NewSource(seed)),
		successRate:   clamp01(successRate),
		transientRate: clamp01(transientRate),
	}
}

// Charge rolls the configured odds. The invoice itself never influences the
// outcome.
func (c *MockCharger) Charge(_ context.Context, _ domain.Invoice) (bool, error) {
	c.mu.Lock()
	roll := c.rng.Float64()
	failRoll := c.rng.Float64()
	c.mu.Unlock()

	if roll < c.successRate {
		return true, nil
	}
	if failRoll < c.transientRate {
		return false, ports.Transient(errGatewayUnreachable)
	}
	return false, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
