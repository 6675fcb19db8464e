package gateway

import (
	"context"
	"testing"

	"billing-engine/internal/core/domain"
	"billing-engine/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCharger_AlwaysSucceeds(t *testing.T) {
	charger := NewMockCharger(1.0, 0.0, 1)

	for i := 0; i < 20; i++ {
		captured, err := charger.Charge(context.Background(), domain.Invoice{ID: i})
		require.NoError(t, err)
		assert.True(t, captured)
	}
}

func TestMockCharger_AlwaysDeclines(t *testing.T) {
	charger := NewMockCharger(0.0, 0.0, 1)

	for i := 0; i < 20; i++ {
		captured, err := charger.Charge(context.Background(), domain.Invoice{ID: i})
		require.NoError(t, err)
		assert.False(t, captured)
	}
}

func TestMockCharger_AlwaysTransient(t *testing.T) {
	charger := NewMockCharger(0.0, 1.0, 1)

	for i := 0; i < 20; i++ {
		captured, err := charger.Charge(context.Background(), domain.Invoice{ID: i})
		require.Error(t, err)
		assert.False(t, captured)
		assert.True(t, ports.IsTransient(err))
	}
}

func TestMockCharger_RatesClamped(t *testing.T) {
	charger := NewMockCharger(7.0, -3.0, 1)

	captured, err := charger.Charge(context.Background(), domain.Invoice{ID: 1})
	require.NoError(t, err)
	assert.True(t, captured)
}

func TestMockCharger_MixedOutcomes(t *testing.T) {
	charger := NewMockCharger(0.5, 0.5, 42)

	var captured, declined, transient int
	for i := 0; i < 200; i++ {
		ok, err := charger.Charge(context.Background(), domain.Invoice{ID: i})
		switch {
		case ok:
			captured++
		case err == nil:
			declined++
		default:
			require.True(t, ports.IsTransient(err))
			transient++
		}
	}

	assert.Positive(t, captured)
	assert.Positive(t, declined)
	assert.Positive(t, transient)
}
