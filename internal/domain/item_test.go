package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparedItemMarshalJSON(t *testing.T) {
	t.Run("finite price per unit", func(t *testing.T) {
		savings := 4.82
		item := ComparedItem{
			Item:           Item{ID: "a", Name: "A", Price: 12.99, Quantity: 6, Size: 12, Unit: UnitOunce},
			TotalSize:      72,
			PricePerUnit:   0.25,
			SavingsPercent: &savings,
		}

		data, err := json.Marshal(item)
		require.NoError(t, err)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "a", got["id"])
		assert.Equal(t, "oz", got["unit"])
		assert.Equal(t, 0.25, got["pricePerUnit"])
		assert.Equal(t, true, got["rateable"])
		assert.Equal(t, 4.82, got["savingsPercent"])
		assert.Equal(t, false, got["isBetterValue"])
	})

	t.Run("infinite price per unit encodes as null", func(t *testing.T) {
		item := ComparedItem{
			Item:          Item{ID: "d", Size: 0, Unit: UnitOunce},
			PricePerUnit:  math.Inf(1),
			IsBetterValue: false,
		}

		data, err := json.Marshal(item)
		require.NoError(t, err)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Nil(t, got["pricePerUnit"])
		assert.Equal(t, false, got["rateable"])
		assert.Nil(t, got["savingsPercent"])
	})

	t.Run("infinite total size encodes as null", func(t *testing.T) {
		savings := math.NaN()
		item := ComparedItem{
			Item:           Item{ID: "big", Price: 1, Quantity: 1, Size: 1e308, Unit: UnitKilogram},
			TotalSize:      math.Inf(1),
			PricePerUnit:   0,
			SavingsPercent: &savings,
		}

		data, err := json.Marshal(item)
		require.NoError(t, err)

		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Contains(t, got, "totalSize")
		assert.Nil(t, got["totalSize"])
		assert.Equal(t, 0.0, got["pricePerUnit"])
		assert.Nil(t, got["savingsPercent"])
	})
}

func TestComparisonResultBestItem(t *testing.T) {
	id := "b"
	result := &ComparisonResult{
		BetterValueItemID: &id,
		Items: []ComparedItem{
			{Item: Item{ID: "a"}},
			{Item: Item{ID: "b"}, IsBetterValue: true},
		},
	}

	best, ok := result.BestItem()
	require.True(t, ok)
	assert.Equal(t, "b", best.ID)

	_, ok = (&ComparisonResult{}).BestItem()
	assert.False(t, ok)

	var nilResult *ComparisonResult
	_, ok = nilResult.BestItem()
	assert.False(t, ok)
}

func TestSessionClone(t *testing.T) {
	id := "a"
	savings := 10.0
	original := &Session{
		ID:    "s1",
		Items: []Item{{ID: "a", Name: "A"}},
		Result: &ComparisonResult{
			BetterValueItemID: &id,
			Items:             []ComparedItem{{Item: Item{ID: "a"}, SavingsPercent: &savings}},
		},
	}

	clone := original.Clone()
	clone.Items[0].Name = "changed"
	*clone.Result.BetterValueItemID = "z"
	*clone.Result.Items[0].SavingsPercent = 99

	assert.Equal(t, "A", original.Items[0].Name)
	assert.Equal(t, "a", *original.Result.BetterValueItemID)
	assert.Equal(t, 10.0, *original.Result.Items[0].SavingsPercent)

	var nilSession *Session
	assert.Nil(t, nilSession.Clone())
}
