package stay

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRange = errors.New("check-in date must be before check-out date")

// Range is a half-open date interval [CheckIn, CheckOut). The check-out day
// itself is not occupied, so back-to-back stays on the same room do not
// overlap.
type Range struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewRange(checkIn, checkOut time.Time) (Range, error) {
	checkIn = Day(checkIn)
	checkOut = Day(checkOut)
	if !checkIn.Before(checkOut) {
		return Range{}, ErrInvalidRange
	}
	return Range{checkIn: checkIn, checkOut: checkOut}, nil
}

// Day normalizes t to midnight UTC. All range arithmetic works on whole days.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r Range) CheckIn() time.Time {
	return r.checkIn
}

func (r Range) CheckOut() time.Time {
	return r.checkOut
}

func (r Range) Nights() int {
	return int(r.checkOut.Sub(r.checkIn).Hours() / 24)
}

// Overlaps reports whether two half-open ranges intersect:
// a.start < b.end && b.start < a.end.
func (r Range) Overlaps(other Range) bool {
	return r.checkIn.Before(other.checkOut) && other.checkIn.Before(r.checkOut)
}

func (r Range) IsZero() bool {
	return r.checkIn.IsZero() && r.checkOut.IsZero()
}

func (r Range) String() string {
	return fmt.Sprintf("[%s,%s)", r.checkIn.Format("2006-01-02"), r.checkOut.Format("2006-01-02"))
}
