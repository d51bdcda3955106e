//go:build unit

package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"created to confirmed", StatusCreated, StatusConfirmed, true},
		{"created to cancelled", StatusCreated, StatusCancelled, true},
		{"created to checked-in", StatusCreated, StatusCheckedIn, false},
		{"created to checked-out", StatusCreated, StatusCheckedOut, false},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to checked-in", StatusConfirmed, StatusCheckedIn, true},
		{"confirmed to checked-out", StatusConfirmed, StatusCheckedOut, false},
		{"checked-in to checked-out", StatusCheckedIn, StatusCheckedOut, true},
		{"checked-in to cancelled", StatusCheckedIn, StatusCancelled, false},
		{"checked-out is terminal", StatusCheckedOut, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"cancelled cannot re-cancel", StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestModifiable(t *testing.T) {
	assert.True(t, StatusCreated.Modifiable())
	assert.True(t, StatusConfirmed.Modifiable())
	assert.False(t, StatusCancelled.Modifiable())
	assert.False(t, StatusCheckedIn.Modifiable())
	assert.False(t, StatusCheckedOut.Modifiable())
}

func TestCancellable(t *testing.T) {
	assert.True(t, StatusCreated.Cancellable())
	assert.True(t, StatusConfirmed.Cancellable())
	assert.False(t, StatusCheckedIn.Cancellable())
	assert.False(t, StatusCheckedOut.Cancellable())
	assert.False(t, StatusCancelled.Cancellable())
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "120.00", NewMoney(12000).String())
	assert.Equal(t, "0.05", NewMoney(5).String())
	assert.Equal(t, "-3.50", NewMoney(-350).String())
}

func TestMoneyArithmetic(t *testing.T) {
	m := NewMoney(10000)
	assert.Equal(t, int64(30000), m.MulNights(3).Cents())
	assert.Equal(t, int64(1000), m.Percent(10).Cents())
	assert.Equal(t, int64(10500), m.Add(NewMoney(500)).Cents())
	assert.True(t, NewMoney(1000001).GreaterThan(NewMoney(1000000)))

	_, err := NewMoneyFromCents(-1)
	assert.Error(t, err)
}
