package convert

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/store"
)

// Summary is the listing view of a stored snapshot.
type Summary struct {
	ID          int64     `json:"id"`
	SnapshotID  string    `json:"snapshot_id"`
	Hostname    string    `json:"hostname"`
	Platform    string    `json:"platform"`
	RecordCount int       `json:"record_count"`
	CollectedAt time.Time `json:"collected_at"`
	StoredAt    time.Time `json:"stored_at"`
}

// InventoryToRecord converts a collected Inventory to a store record.
func InventoryToRecord(inv *collector.Inventory) (*store.SnapshotRecord, error) {
	jsonBytes, err := json.Marshal(inv)
	if err != nil {
		return nil, fmt.Errorf("marshal inventory to JSON: %w", err)
	}

	collectedAt := inv.CollectedAt
	if collectedAt.IsZero() {
		collectedAt = time.Now().UTC()
	}

	return &store.SnapshotRecord{
		SnapshotID:    inv.ID,
		Hostname:      inv.Hostname,
		Platform:      inv.Platform,
		RecordCount:   inv.RecordCount(),
		CollectedAt:   collectedAt,
		InventoryJSON: string(jsonBytes),
	}, nil
}

// RecordToInventory converts a store record back to an Inventory.
func RecordToInventory(rec *store.SnapshotRecord) (*collector.Inventory, error) {
	var inv collector.Inventory
	if err := json.Unmarshal([]byte(rec.InventoryJSON), &inv); err != nil {
		return nil, fmt.Errorf("unmarshal inventory JSON: %w", err)
	}
	return &inv, nil
}

// RecordToSummary converts a store record to a Summary.
func RecordToSummary(rec *store.SnapshotRecord) Summary {
	return Summary{
		ID:          rec.ID,
		SnapshotID:  rec.SnapshotID,
		Hostname:    rec.Hostname,
		Platform:    rec.Platform,
		RecordCount: rec.RecordCount,
		CollectedAt: rec.CollectedAt,
		StoredAt:    rec.StoredAt,
	}
}
