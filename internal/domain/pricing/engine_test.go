//go:build unit

package pricing

import (
	"testing"
	"time"

	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/domain/stay"
	"hotel-reservations/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stayRange(t *testing.T, y int, m time.Month, d, nights int) stay.Range {
	t.Helper()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	r, err := stay.NewRange(start, start.AddDate(0, 0, nights))
	require.NoError(t, err)
	return r
}

func TestComputeQuoteLowSeasonStandard(t *testing.T) {
	// 2 nights standard in March: 100.00/night, no multiplier, 18% tax.
	q, err := ComputeQuote(RoomStandard, stayRange(t, 2024, 3, 10, 2), nil, "")
	require.NoError(t, err)

	assert.Equal(t, int64(10000), q.Nightly.Cents())
	assert.Equal(t, 2, q.Nights)
	assert.Equal(t, int64(20000), q.Subtotal.Cents())
	assert.Equal(t, int64(0), q.Discounts.Cents())
	assert.Equal(t, int64(3600), q.Taxes.Cents())
	assert.Equal(t, int64(23600), q.Total.Cents())
	assert.Equal(t, "USD", q.Currency)
}

func TestComputeQuoteSeasonMultiplier(t *testing.T) {
	tests := []struct {
		name        string
		month       time.Month
		wantNightly int64
	}{
		{"high season january", time.January, 13000},
		{"high season august", time.August, 13000},
		{"mid season june", time.June, 11500},
		{"low season april", time.April, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ComputeQuote(RoomStandard, stayRange(t, 2024, tt.month, 10, 1), nil, "")
			require.NoError(t, err)
			assert.Equal(t, tt.wantNightly, q.Nightly.Cents())
		})
	}
}

func TestComputeQuoteAddOns(t *testing.T) {
	// 3 nights deluxe in March with breakfast (20/night), parking (10/night)
	// and spa (flat 50): room 540.00, add-ons 140.00.
	q, err := ComputeQuote(RoomDeluxe, stayRange(t, 2024, 3, 10, 3), []string{AddOnBreakfast, AddOnParking, AddOnSpa}, "")
	require.NoError(t, err)

	assert.Equal(t, int64(54000+14000), q.Subtotal.Cents())

	want := []LineItem{
		{Concept: "room", Amount: reservation.NewMoney(54000)},
		{Concept: "add_ons", Amount: reservation.NewMoney(14000)},
		{Concept: "long_stay_discount", Amount: reservation.NewMoney(0)},
		{Concept: "coupon_discount", Amount: reservation.NewMoney(0)},
		{Concept: "taxes", Amount: reservation.NewMoney(12240)},
	}
	if diff := cmp.Diff(want, q.Breakdown, cmp.AllowUnexported(reservation.Money{})); diff != "" {
		t.Errorf("breakdown mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeQuoteUnknownAddOn(t *testing.T) {
	_, err := ComputeQuote(RoomStandard, stayRange(t, 2024, 3, 10, 1), []string{"jacuzzi"}, "")
	assert.ErrorIs(t, err, errs.ErrInvalid)
}

func TestComputeQuoteLongStayDiscount(t *testing.T) {
	q7, err := ComputeQuote(RoomStandard, stayRange(t, 2024, 3, 1, 7), nil, "")
	require.NoError(t, err)
	assert.Equal(t, q7.Subtotal.Percent(5).Cents(), q7.Discounts.Cents())

	q14, err := ComputeQuote(RoomStandard, stayRange(t, 2024, 3, 1, 14), nil, "")
	require.NoError(t, err)
	assert.Equal(t, q14.Subtotal.Percent(10).Cents(), q14.Discounts.Cents())
}

func TestComputeQuoteCoupon(t *testing.T) {
	q, err := ComputeQuote(RoomStandard, stayRange(t, 2024, 3, 10, 2), nil, CouponPromo10)
	require.NoError(t, err)
	assert.Equal(t, q.Subtotal.Percent(10).Cents(), q.Discounts.Cents())

	// Unknown coupon codes simply do not discount.
	qNone, err := ComputeQuote(RoomStandard, stayRange(t, 2024, 3, 10, 2), nil, "NOPE")
	require.NoError(t, err)
	assert.Equal(t, int64(0), qNone.Discounts.Cents())
}

func TestComputeQuoteIsDeterministic(t *testing.T) {
	r := stayRange(t, 2024, 7, 1, 10)
	a, err := ComputeQuote(RoomSuite, r, []string{AddOnSpa}, CouponPromo10)
	require.NoError(t, err)
	b, err := ComputeQuote(RoomSuite, r, []string{AddOnSpa}, CouponPromo10)
	require.NoError(t, err)
	assert.Equal(t, a.Total.Cents(), b.Total.Cents())
}
