package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeModelEntries(t *testing.T) {
	t.Run("plain string entries", func(t *testing.T) {
		entries := NormalizeModelEntries([]interface{}{"Pixel 9", "iPhone 15"})
		require.Len(t, entries, 2)
		assert.Equal(t, AccessoryModel{Name: "Pixel 9"}, entries[0])
	})

	t.Run("map entries keep attribution", func(t *testing.T) {
		entries := NormalizeModelEntries([]interface{}{
			map[string]interface{}{
				"name":            "Pixel 9",
				"contributorUid":  "u1",
				"contributorName": "Dana",
			},
		})
		require.Len(t, entries, 1)
		assert.Equal(t, AccessoryModel{Name: "Pixel 9", ContributorUID: "u1", ContributorName: "Dana"}, entries[0])
	})

	t.Run("mixed encodings in one document", func(t *testing.T) {
		entries := NormalizeModelEntries([]interface{}{
			"Pixel 8",
			map[string]interface{}{"name": "Pixel 9", "contributorUid": "u1"},
		})
		require.Len(t, entries, 2)
		assert.Equal(t, "Pixel 8", entries[0].Name)
		assert.Equal(t, "u1", entries[1].ContributorUID)
	})

	t.Run("unknown shapes and empty names are skipped", func(t *testing.T) {
		entries := NormalizeModelEntries([]interface{}{
			"",
			42,
			nil,
			map[string]interface{}{"contributorUid": "u1"},
			map[string]interface{}{"name": 7},
			"Pixel 9",
		})
		require.Len(t, entries, 1)
		assert.Equal(t, "Pixel 9", entries[0].Name)
	})
}

func TestModelNames(t *testing.T) {
	accessory := &Accessory{Models: []AccessoryModel{{Name: "Pixel 8"}, {Name: "Pixel 9"}}}
	assert.Equal(t, []string{"Pixel 8", "Pixel 9"}, accessory.ModelNames())
	assert.Empty(t, (&Accessory{}).ModelNames())
}
