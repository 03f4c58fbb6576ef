package usecase

import (
	"errors"
	"testing"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"
)

func TestSplitCommission(t *testing.T) {
	t.Run("fifteen percent of 1000 rupees", func(t *testing.T) {
		commission, payout, err := SplitCommission(100000, 15)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if commission != 15000 {
			t.Fatalf("expected commission 15000, got %d", commission)
		}
		if payout != 85000 {
			t.Fatalf("expected payout 85000, got %d", payout)
		}
	})

	t.Run("fractional rate rounds half up", func(t *testing.T) {
		// 12.5% of 999 paise = 124.875 -> 125.
		commission, payout, err := SplitCommission(999, 12.5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if commission != 125 {
			t.Fatalf("expected commission 125, got %d", commission)
		}
		if payout != 874 {
			t.Fatalf("expected payout 874, got %d", payout)
		}
	})

	t.Run("zero rate keeps full payout", func(t *testing.T) {
		commission, payout, err := SplitCommission(5000, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if commission != 0 || payout != 5000 {
			t.Fatalf("expected 0/5000, got %d/%d", commission, payout)
		}
	})

	t.Run("hundred percent rate", func(t *testing.T) {
		commission, payout, err := SplitCommission(5000, 100)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if commission != 5000 || payout != 0 {
			t.Fatalf("expected 5000/0, got %d/%d", commission, payout)
		}
	})

	t.Run("rate out of range", func(t *testing.T) {
		if _, _, err := SplitCommission(5000, -1); !errors.Is(err, ErrInvalidCommissionRate) {
			t.Fatalf("expected ErrInvalidCommissionRate, got %v", err)
		}
		if _, _, err := SplitCommission(5000, 100.5); !errors.Is(err, ErrInvalidCommissionRate) {
			t.Fatalf("expected ErrInvalidCommissionRate, got %v", err)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		if _, _, err := SplitCommission(-1, 10); !errors.Is(err, ErrInvalidCommissionAmount) {
			t.Fatalf("expected ErrInvalidCommissionAmount, got %v", err)
		}
	})

	t.Run("commission plus payout equals amount", func(t *testing.T) {
		amounts := []entities.Paise{1, 99, 100, 101, 9999, 100000, 123456789}
		rates := []float64{0, 0.01, 7.5, 10, 15, 20, 33.33, 99.99, 100}
		for _, amount := range amounts {
			for _, rate := range rates {
				commission, payout, err := SplitCommission(amount, rate)
				if err != nil {
					t.Fatalf("amount=%d rate=%v: %v", amount, rate, err)
				}
				if commission+payout != amount {
					t.Fatalf("amount=%d rate=%v: %d+%d != %d", amount, rate, commission, payout, amount)
				}
				if commission < 0 || payout < 0 {
					t.Fatalf("amount=%d rate=%v: negative side %d/%d", amount, rate, commission, payout)
				}
			}
		}
	})
}
