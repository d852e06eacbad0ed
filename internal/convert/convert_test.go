package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/store"
)

func TestInventoryRecordRoundTrip(t *testing.T) {
	inv := &collector.Inventory{
		ID:          "6f1c3a8e-1d2b-4f7a-9c55-0a1b2c3d4e5f",
		CollectedAt: time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC),
		Hostname:    "ws-01",
		Platform:    "Microsoft Windows 11 Pro 10.0.22631",
		Records: map[collector.Category][]collector.Record{
			collector.RAM: {{
				Category: collector.RAM,
				Index:    1,
				Attributes: []collector.Attribute{
					{Name: "Capacity", Value: "17179869184"},
					{Name: "FormFactor", Value: "DIMM"},
				},
			}},
		},
	}

	rec, err := InventoryToRecord(inv)
	require.NoError(t, err)
	assert.Equal(t, inv.ID, rec.SnapshotID)
	assert.Equal(t, 1, rec.RecordCount)
	assert.Contains(t, rec.InventoryJSON, `"FormFactor"`)

	back, err := RecordToInventory(rec)
	require.NoError(t, err)
	assert.Equal(t, inv, back)
}

func TestInventoryToRecordDefaultsCollectedAt(t *testing.T) {
	rec, err := InventoryToRecord(&collector.Inventory{Hostname: "ws-01"})
	require.NoError(t, err)
	assert.False(t, rec.CollectedAt.IsZero())
}

func TestRecordToInventoryRejectsBadJSON(t *testing.T) {
	_, err := RecordToInventory(&store.SnapshotRecord{InventoryJSON: "{"})
	assert.Error(t, err)
}
