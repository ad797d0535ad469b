package utils

import (
	"time"

	"github.com/Kariqs/storefront-api/models"
)

// ActiveDiscount returns the last discount in the given order whose
// [StartDate, EndDate] interval contains now, or nil when none does.
// Overlapping discounts are resolved by position, not by date.
func ActiveDiscount(discounts []models.Discount, now time.Time) *models.Discount {
	for i := len(discounts) - 1; i >= 0; i-- {
		d := discounts[i]
		if !d.StartDate.After(now) && !d.EndDate.Before(now) {
			return &discounts[i]
		}
	}
	return nil
}
