package usecase

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/valuecompare/backend/internal/domain"
)

// LabelSuggestion is the package layout guessed from a product label
type LabelSuggestion struct {
	Quantity int         `json:"quantity"`
	Size     float64     `json:"size,omitempty"`
	Unit     domain.Unit `json:"unit,omitempty"`
	Found    bool        `json:"found"` // false when no size could be recognised
}

// LabelParser extracts pack counts and package sizes from free-text product labels
type LabelParser struct {
	enableDebugLogging bool
}

// Compiled regex patterns for label parsing
var (
	// Matches sizes like "12oz", "12 fl oz", "1.5 kg", "500 grams", "12 ct"
	labelSizePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(fl\.?\s*oz|ounces?|oz|millilit(?:er|re)s?|ml|kilograms?|kg|grams?|g|pounds?|lbs?|count|ct)\b`)

	// Matches pack counts like "6-pack", "12 pack", "4pk"
	labelPackPattern = regexp.MustCompile(`(?i)\b(\d+)\s*-?\s*(?:pack|pk)\b`)

	// Matches "pack of 6"
	labelPackOfPattern = regexp.MustCompile(`(?i)\bpack\s+of\s+(\d+)\b`)

	// Matches multipliers like "4 x 16oz", "4x16oz"
	labelMultiplierPattern = regexp.MustCompile(`(?i)\b(\d+)\s*x\s*\d`)
)

// NewLabelParser creates a new label parser
func NewLabelParser(enableDebugLogging bool) *LabelParser {
	return &LabelParser{
		enableDebugLogging: enableDebugLogging,
	}
}

// ParseLabel guesses quantity, size and unit from a label such as "6-pack of 12oz beers"
func (p *LabelParser) ParseLabel(label string) LabelSuggestion {
	suggestion := LabelSuggestion{Quantity: 1}
	if strings.TrimSpace(label) == "" {
		return suggestion
	}

	if qty, ok := parsePackCount(label); ok {
		suggestion.Quantity = qty
	}

	if m := labelSizePattern.FindStringSubmatch(label); m != nil {
		size, err := strconv.ParseFloat(m[1], 64)
		unit := unitFromLabelToken(m[2])
		if err == nil && size > 0 && unit.Valid() {
			suggestion.Size = size
			suggestion.Unit = unit
			suggestion.Found = true
		}
	}

	if p.enableDebugLogging {
		log.Printf("[LABEL] Input: %q -> quantity=%d size=%g unit=%q found=%v",
			label, suggestion.Quantity, suggestion.Size, suggestion.Unit, suggestion.Found)
	}

	return suggestion
}

// parsePackCount returns the first positive pack count in the label
func parsePackCount(label string) (int, bool) {
	for _, pattern := range []*regexp.Regexp{labelPackPattern, labelPackOfPattern, labelMultiplierPattern} {
		m := pattern.FindStringSubmatch(label)
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[1])
		if err == nil && qty > 0 {
			return qty, true
		}
	}
	return 0, false
}

// unitFromLabelToken maps a matched unit spelling to a Unit
func unitFromLabelToken(token string) domain.Unit {
	t := strings.ToLower(token)
	t = strings.ReplaceAll(t, " ", "")
	t = strings.ReplaceAll(t, ".", "")

	switch {
	case t == "oz" || strings.HasPrefix(t, "floz") || strings.HasPrefix(t, "ounce"):
		return domain.UnitOunce
	case t == "ml" || strings.HasPrefix(t, "millilit"):
		return domain.UnitMilliliter
	case t == "kg" || strings.HasPrefix(t, "kilogram"):
		return domain.UnitKilogram
	case t == "g" || strings.HasPrefix(t, "gram"):
		return domain.UnitGram
	case t == "lb" || t == "lbs" || strings.HasPrefix(t, "pound"):
		return domain.UnitPound
	case t == "ct" || t == "count":
		return domain.UnitCount
	}
	return ""
}
