package domain

import (
	"encoding/json"
	"math"
)

// Item is a single product entered for comparison
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"` // number of packages bought at Price
	Size     float64 `json:"size"`     // size of one package, in Unit
	Unit     Unit    `json:"unit"`
}

// ComparedItem is an Item enriched with its normalized unit economics
type ComparedItem struct {
	Item
	TotalSize      float64  `json:"totalSize"`
	PricePerUnit   float64  `json:"pricePerUnit"` // +Inf when TotalSize is zero
	IsBetterValue  bool     `json:"isBetterValue"`
	SavingsPercent *float64 `json:"savingsPercent"` // nil for best-value items
}

// Rateable reports whether the item has a finite price per unit
func (c ComparedItem) Rateable() bool {
	return !math.IsInf(c.PricePerUnit, 0) && !math.IsNaN(c.PricePerUnit)
}

// MarshalJSON encodes any non-finite number as null since JSON has no infinity
func (c ComparedItem) MarshalJSON() ([]byte, error) {
	var savings *float64
	if c.SavingsPercent != nil {
		savings = finite(*c.SavingsPercent)
	}

	return json.Marshal(struct {
		Item
		TotalSize      *float64 `json:"totalSize"`
		PricePerUnit   *float64 `json:"pricePerUnit"`
		Rateable       bool     `json:"rateable"`
		IsBetterValue  bool     `json:"isBetterValue"`
		SavingsPercent *float64 `json:"savingsPercent"`
	}{
		Item:           c.Item,
		TotalSize:      finite(c.TotalSize),
		PricePerUnit:   finite(c.PricePerUnit),
		Rateable:       c.Rateable(),
		IsBetterValue:  c.IsBetterValue,
		SavingsPercent: savings,
	})
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// ComparisonResult ranks a set of items by price per base unit
type ComparisonResult struct {
	BetterValueItemID *string        `json:"betterValueItemId"`
	Items             []ComparedItem `json:"items"`
	// MixedUnits is set when count items are compared with mass or volume items
	MixedUnits bool `json:"mixedUnits"`
}

// BestItem returns the winning item, if any
func (r *ComparisonResult) BestItem() (ComparedItem, bool) {
	if r == nil || r.BetterValueItemID == nil {
		return ComparedItem{}, false
	}
	for _, item := range r.Items {
		if item.ID == *r.BetterValueItemID {
			return item, true
		}
	}
	return ComparedItem{}, false
}

// Clone returns a deep copy of the result
func (r *ComparisonResult) Clone() *ComparisonResult {
	if r == nil {
		return nil
	}
	out := &ComparisonResult{
		Items:      make([]ComparedItem, len(r.Items)),
		MixedUnits: r.MixedUnits,
	}
	if r.BetterValueItemID != nil {
		id := *r.BetterValueItemID
		out.BetterValueItemID = &id
	}
	for i, item := range r.Items {
		out.Items[i] = item
		if item.SavingsPercent != nil {
			v := *item.SavingsPercent
			out.Items[i].SavingsPercent = &v
		}
	}
	return out
}
