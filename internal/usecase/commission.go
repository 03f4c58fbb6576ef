package usecase

import (
	"errors"
	"math"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
)

var (
	ErrInvalidCommissionRate   = errors.New("commission rate out of range")
	ErrInvalidCommissionAmount = errors.New("commission amount negative")
)

// Platform default commission rates (percent) applied when neither the owning
// row nor the platform settings carry an explicit rate.
const (
	DefaultCourseCommissionRate  = 15.0
	DefaultSessionCommissionRate = 20.0
	DefaultEventCommissionRate   = 10.0
	DefaultProductCommissionRate = 10.0
)

// SplitCommission divides a gross minor-unit amount between platform
// commission and payee payout. The rate is a percentage in [0,100]; it is
// converted to basis points so fractional rates stay exact, and the
// commission is rounded half-up. Payout is the subtraction remainder, which
// keeps commission + payout == amount exactly.
func SplitCommission(amount entities.Paise, ratePct float64) (commission, payout entities.Paise, err error) {
	if amount < 0 {
		return 0, 0, ErrInvalidCommissionAmount
	}
	if ratePct < 0 || ratePct > 100 || math.IsNaN(ratePct) {
		return 0, 0, ErrInvalidCommissionRate
	}

	bps := int64(math.Round(ratePct * 100))
	commission = entities.Paise((int64(amount)*bps + 5000) / 10000)
	payout = amount - commission
	return commission, payout, nil
}

// defaultRate returns the hardcoded per-type rate.
func defaultRate(pt entities.PaymentType) float64 {
	switch pt {
	case entities.PaymentTypeCourse:
		return DefaultCourseCommissionRate
	case entities.PaymentTypeSession:
		return DefaultSessionCommissionRate
	case entities.PaymentTypeEvent:
		return DefaultEventCommissionRate
	case entities.PaymentTypeEventProduct:
		return DefaultProductCommissionRate
	}
	return 0
}
