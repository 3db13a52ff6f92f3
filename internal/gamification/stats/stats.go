// Package stats accumulates saving statistics from product events and
// derives money/CO2 estimates from the saved-product history.
package stats

import (
	"time"

	"expiryguard/internal/model"
)

// ChangeKind is the statistics-relevant classification of a product event.
type ChangeKind string

// Statistics event kinds.
const (
	EventAdded ChangeKind = "added"
	EventSaved ChangeKind = "saved"
)

// Average product value by category, in currency units.
var productValues = map[model.ProductCategory]float64{
	model.CategoryFood:        50,
	model.CategoryMedicine:    100,
	model.CategoryHousehold:   75,
	model.CategoryCosmetic:    150,
	model.CategoryGroceries:   40,
	model.CategoryBeverages:   30,
	model.CategoryIngredients: 60,
	model.CategoryOther:       50,
}

// Average product weight by category, in kg.
var productWeights = map[model.ProductCategory]float64{
	model.CategoryFood:        0.5,
	model.CategoryGroceries:   0.5,
	model.CategoryIngredients: 0.3,
	model.CategoryBeverages:   0.5,
	model.CategoryMedicine:    0.2,
	model.CategoryHousehold:   0.3,
	model.CategoryCosmetic:    0.2,
	model.CategoryOther:       0.2,
}

// Average CO2 emission per kg of wasted product.
const co2PerKg = 2.5

// Fallbacks for a category missing from the tables. The category enum is
// closed so these only matter for data written by older versions.
const (
	defaultValue  = 50
	defaultWeight = 0.3
)

// Apply returns a new Statistics value with the counters advanced for one
// product event. Added increments the total-added counter only; Saved
// increments the saved counter plus the Food/Medicine category counter.
// Money and CO2 totals are not touched here; they are derived on demand
// from the saved-product history, which serves the batch dashboard while
// the counters serve live feedback.
func Apply(s model.Statistics, product model.Product, kind ChangeKind) model.Statistics {
	switch kind {
	case EventSaved:
		s.ProductsSaved++
		switch product.Category {
		case model.CategoryFood:
			s.FoodItemsSaved++
		case model.CategoryMedicine:
			s.MedicineItemsSaved++
		}
	case EventAdded:
		s.TotalProductsAdded++
	}
	return s
}

// MoneySaved estimates the currency value of the saved products from the
// per-category average value table.
func MoneySaved(saved []model.Product) float64 {
	var total float64
	for _, p := range saved {
		value, ok := productValues[p.Category]
		if !ok {
			value = defaultValue
		}
		total += value * float64(quantity(p))
	}
	return total
}

// CO2Saved estimates the avoided CO2 emissions, in kg, from the
// per-category average weight table and the fixed emission factor.
func CO2Saved(saved []model.Product) float64 {
	var total float64
	for _, p := range saved {
		weight, ok := productWeights[p.Category]
		if !ok {
			weight = defaultWeight
		}
		total += weight * float64(quantity(p)) * co2PerKg
	}
	return total
}

// Recalculate rebuilds the full Statistics from scratch out of the product
// history. Integrity-repair path; perfect weeks are tracked separately and
// cannot be recovered from the product lists alone.
func Recalculate(all, saved []model.Product) model.Statistics {
	var food, medicine int
	for _, p := range saved {
		switch p.Category {
		case model.CategoryFood:
			food++
		case model.CategoryMedicine:
			medicine++
		}
	}

	return model.Statistics{
		ProductsSaved:      len(saved),
		MoneySaved:         MoneySaved(saved),
		CO2Saved:           CO2Saved(saved),
		FoodItemsSaved:     food,
		MedicineItemsSaved: medicine,
		TotalProductsAdded: len(all),
	}
}

// PerfectWeek reports whether no tracked product expired during the seven
// days starting at weekStart, judged as of now.
func PerfectWeek(products []model.Product, weekStart, now time.Time) bool {
	weekEnd := weekStart.AddDate(0, 0, 7)
	for _, p := range products {
		expiredInWeek := !p.ExpiryDate.Before(weekStart) &&
			p.ExpiryDate.Before(weekEnd) &&
			p.ExpiryDate.Before(now)
		if expiredInWeek {
			return false
		}
	}
	return true
}

// New returns zeroed statistics for a fresh snapshot.
func New() model.Statistics {
	return model.Statistics{}
}

func quantity(p model.Product) int {
	if p.Quantity <= 0 {
		return 1
	}
	return p.Quantity
}
