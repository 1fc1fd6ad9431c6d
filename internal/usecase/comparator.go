package usecase

import (
	"math"

	"github.com/valuecompare/backend/internal/domain"
)

// Conversion factors from each unit to the reference unit (ounces).
// Count has no mass or volume and passes through as its own base.
const (
	millilitersPerOunce = 29.5735
	gramsPerOunce       = 28.3495
	ouncesPerPound      = 16
	ouncesPerKilogram   = 35.274
)

// ConvertToBase expresses size in the reference unit for its dimension
func ConvertToBase(size float64, unit domain.Unit) (float64, error) {
	switch unit {
	case domain.UnitOunce:
		return size, nil
	case domain.UnitMilliliter:
		return size / millilitersPerOunce, nil
	case domain.UnitGram:
		return size / gramsPerOunce, nil
	case domain.UnitPound:
		return size * ouncesPerPound, nil
	case domain.UnitKilogram:
		return size * ouncesPerKilogram, nil
	case domain.UnitCount:
		return size, nil
	default:
		return 0, domain.ErrUnknownUnit
	}
}

// CompareItems ranks items by price per base unit.
//
// The output preserves input order one to one and never aliases the input.
// Best-value detection uses exact float equality with the minimum, so items
// whose unit prices differ only by rounding are not treated as ties. Items with
// zero total size (or an unknown unit) get a +Inf unit price and can only be
// flagged best when nothing else is rateable, in which case nothing is.
func CompareItems(items []domain.Item) domain.ComparisonResult {
	if len(items) == 0 {
		return domain.ComparisonResult{Items: []domain.ComparedItem{}}
	}

	compared := make([]domain.ComparedItem, len(items))
	lowest := math.Inf(1)
	hasCount, hasMeasure := false, false

	for i, item := range items {
		compared[i] = price(item)
		if compared[i].PricePerUnit < lowest {
			lowest = compared[i].PricePerUnit
		}
		if item.Unit.IsCount() {
			hasCount = true
		} else {
			hasMeasure = true
		}
	}

	result := domain.ComparisonResult{
		Items:      compared,
		MixedUnits: hasCount && hasMeasure,
	}

	// Nothing rateable: no winner and no savings to report
	if math.IsInf(lowest, 1) {
		return result
	}

	for i := range compared {
		item := &compared[i]
		if item.PricePerUnit == lowest {
			item.IsBetterValue = true
			if result.BetterValueItemID == nil {
				id := item.ID
				result.BetterValueItemID = &id
			}
			continue
		}
		savings := savingsPercent(item.PricePerUnit, lowest)
		item.SavingsPercent = &savings
	}

	return result
}

// price computes the normalized size and unit price of one item
func price(item domain.Item) domain.ComparedItem {
	out := domain.ComparedItem{
		Item:         item,
		PricePerUnit: math.Inf(1),
	}

	base, err := ConvertToBase(item.Size, item.Unit)
	if err != nil {
		return out
	}

	out.TotalSize = base * float64(item.Quantity)
	if out.TotalSize > 0 {
		out.PricePerUnit = item.Price / out.TotalSize
	}
	return out
}

// savingsPercent is the share of pricePerUnit that exceeds the lowest price.
// An unrateable item converges to 100%.
func savingsPercent(pricePerUnit, lowest float64) float64 {
	if math.IsInf(pricePerUnit, 1) {
		return 100
	}
	return (pricePerUnit - lowest) / pricePerUnit * 100
}

// CommonUnitLabel returns the unit used by most items, preferring the one seen
// first on ties, and ounces for an empty list
func CommonUnitLabel(items []domain.Item) domain.Unit {
	if len(items) == 0 {
		return domain.UnitOunce
	}

	counts := make(map[domain.Unit]int)
	var order []domain.Unit
	for _, item := range items {
		if counts[item.Unit] == 0 {
			order = append(order, item.Unit)
		}
		counts[item.Unit]++
	}

	common, highest := domain.UnitOunce, 0
	for _, unit := range order {
		if counts[unit] > highest {
			common, highest = unit, counts[unit]
		}
	}
	return common
}
