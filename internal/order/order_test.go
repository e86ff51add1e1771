package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Parallel()

	format := regexp.MustCompile(`^C2M-[A-Z0-9]{9}$`)

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.Regexp(t, format, id)

		_, dup := seen[id]
		require.False(t, dup, "duplicate order id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNewFulfillment(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f := NewFulfillment(now)

	assert.Equal(t, StatusProducing, f.Status, "orders skip PENDING and start in production")
	assert.Equal(t, 1, f.Step)
	require.Len(t, f.Updates, 1)
	assert.Equal(t, now, f.Updates[0].Time)
	assert.Contains(t, f.Updates[0].Msg, "Factory has received design data")
}

func TestAdvance(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	f := NewFulfillment(now)

	wantOrder := []Status{StatusQualityCheck, StatusShipping, StatusTransit, StatusDelivered}
	for i, want := range wantOrder {
		step := now.Add(time.Duration(i+1) * time.Hour)
		require.NoError(t, f.Advance(step))
		assert.Equal(t, want, f.Status)
		assert.Equal(t, i+2, f.Step)
	}

	require.Len(t, f.Updates, 5, "one log line per stage plus the initial entry")
	for i := 1; i < len(f.Updates); i++ {
		assert.True(t, !f.Updates[i].Time.Before(f.Updates[i-1].Time), "log must stay chronological")
	}

	err := f.Advance(now.Add(10 * time.Hour))
	assert.ErrorIs(t, err, ErrFinalStatus)
	assert.Equal(t, StatusDelivered, f.Status)
	assert.Len(t, f.Updates, 5, "a rejected advance appends nothing")
}

func TestAdvanceFromPending(t *testing.T) {
	t.Parallel()

	f := FulfillmentState{Status: StatusPending}
	require.NoError(t, f.Advance(time.Now()))
	assert.Equal(t, StatusProducing, f.Status)
}
