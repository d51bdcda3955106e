package pricing

import (
	"time"

	"hotel-reservations/internal/domain/reservation"
	"hotel-reservations/internal/domain/stay"
	"hotel-reservations/internal/pkg/errs"
)

// Pure quote calculation: deterministic, no I/O, safe to retry.

type RoomType string

const (
	RoomStandard RoomType = "standard"
	RoomDeluxe   RoomType = "deluxe"
	RoomSuite    RoomType = "suite"
)

var baseNightlyCents = map[RoomType]int64{
	RoomStandard: 10000,
	RoomDeluxe:   18000,
	RoomSuite:    30000,
}

const (
	AddOnBreakfast = "breakfast"
	AddOnParking   = "parking"
	AddOnSpa       = "spa"

	CouponPromo10 = "PROMO10"

	taxRatePercent = 18
)

type LineItem struct {
	Concept string
	Amount  reservation.Money
}

type Quote struct {
	Nightly   reservation.Money
	Nights    int
	Subtotal  reservation.Money
	Discounts reservation.Money
	Taxes     reservation.Money
	Total     reservation.Money
	Currency  string
	Breakdown []LineItem
}

// seasonMultiplierPercent returns the high/mid/low season factor for the
// check-in month, in percent (130 = +30%).
func seasonMultiplierPercent(checkIn time.Time) int64 {
	switch checkIn.Month() {
	case time.December, time.January, time.July, time.August:
		return 130
	case time.November, time.February, time.June:
		return 115
	default:
		return 100
	}
}

func addOnCost(nights int, addOns []string) (reservation.Money, error) {
	total := reservation.NewMoney(0)
	for _, s := range addOns {
		switch s {
		case AddOnBreakfast:
			total = total.Add(reservation.NewMoney(2000).MulNights(nights))
		case AddOnParking:
			total = total.Add(reservation.NewMoney(1000).MulNights(nights))
		case AddOnSpa:
			total = total.Add(reservation.NewMoney(5000))
		default:
			return reservation.Money{}, errs.Mark(errs.Newf("unknown add-on %q", s), errs.ErrInvalid)
		}
	}
	return total, nil
}

func longStayDiscount(nights int, subtotal reservation.Money) reservation.Money {
	switch {
	case nights >= 14:
		return subtotal.Percent(10)
	case nights >= 7:
		return subtotal.Percent(5)
	default:
		return reservation.NewMoney(0)
	}
}

// ComputeQuote prices a stay for a hotel room type. Unknown room types fall
// back to the standard rate, matching the directory's catalog defaults.
func ComputeQuote(roomType RoomType, r stay.Range, addOns []string, coupon string) (Quote, error) {
	nights := r.Nights()

	base, ok := baseNightlyCents[roomType]
	if !ok {
		base = baseNightlyCents[RoomStandard]
	}

	nightly := reservation.NewMoney(base).Percent(seasonMultiplierPercent(r.CheckIn()))
	roomCost := nightly.MulNights(nights)

	services, err := addOnCost(nights, addOns)
	if err != nil {
		return Quote{}, err
	}

	subtotal := roomCost.Add(services)
	stayDiscount := longStayDiscount(nights, subtotal)

	couponDiscount := reservation.NewMoney(0)
	if coupon == CouponPromo10 {
		couponDiscount = subtotal.Percent(10)
	}

	discounts := stayDiscount.Add(couponDiscount)
	taxable := subtotal.Sub(discounts)
	taxes := taxable.Percent(taxRatePercent)

	return Quote{
		Nightly:   nightly,
		Nights:    nights,
		Subtotal:  subtotal,
		Discounts: discounts,
		Taxes:     taxes,
		Total:     taxable.Add(taxes),
		Currency:  "USD",
		Breakdown: []LineItem{
			{Concept: "room", Amount: roomCost},
			{Concept: "add_ons", Amount: services},
			{Concept: "long_stay_discount", Amount: stayDiscount},
			{Concept: "coupon_discount", Amount: couponDiscount},
			{Concept: "taxes", Amount: taxes},
		},
	}, nil
}
