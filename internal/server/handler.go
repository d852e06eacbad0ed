package server

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/convert"
	"github.com/go-tangra/go-tangra-sysinfo/internal/store"
)

// SubmitInventoryResponse acknowledges a stored snapshot.
type SubmitInventoryResponse struct {
	ID       int64     `json:"id"`
	StoredAt time.Time `json:"stored_at"`
}

// InventoryResponse carries one stored snapshot.
type InventoryResponse struct {
	ID        int64                `json:"id"`
	Inventory *collector.Inventory `json:"inventory"`
	StoredAt  time.Time            `json:"stored_at"`
}

// ListInventoriesRequest filters and pages the snapshot listing.
type ListInventoriesRequest struct {
	Hostname        string
	CollectedAfter  *time.Time
	CollectedBefore *time.Time
	PageSize        int
	Page            int
}

// ListInventoriesResponse is one page of snapshot summaries.
type ListInventoriesResponse struct {
	Inventories []convert.Summary `json:"inventories"`
	TotalCount  int               `json:"total_count"`
}

// Handler implements the inventory API on top of the snapshot store.
type Handler struct {
	store  *store.Store
	logger *zap.Logger
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(s *store.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: s, logger: logger}
}

func (h *Handler) SubmitInventory(ctx context.Context, inv *collector.Inventory) (*SubmitInventoryResponse, error) {
	if inv == nil {
		return nil, status.Error(codes.InvalidArgument, "inventory is required")
	}
	if inv.Hostname == "" {
		return nil, status.Error(codes.InvalidArgument, "hostname is required")
	}
	if inv.ID == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	rec, err := convert.InventoryToRecord(inv)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "convert inventory: %v", err)
	}

	id, storedAt, err := h.store.Insert(ctx, rec)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "store inventory: %v", err)
	}

	h.logger.Info("inventory stored",
		zap.Int64("id", id),
		zap.String("hostname", inv.Hostname),
		zap.Int("records", rec.RecordCount))

	return &SubmitInventoryResponse{ID: id, StoredAt: storedAt}, nil
}

func (h *Handler) GetInventory(ctx context.Context, id int64) (*InventoryResponse, error) {
	rec, err := h.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.Errorf(codes.NotFound, "inventory %d not found", id)
		}
		return nil, status.Errorf(codes.Internal, "get inventory: %v", err)
	}
	return inventoryResponse(rec)
}

func (h *Handler) ListInventories(ctx context.Context, req *ListInventoriesRequest) (*ListInventoriesResponse, error) {
	records, total, err := h.store.List(ctx, store.ListFilter{
		Hostname:        req.Hostname,
		CollectedAfter:  req.CollectedAfter,
		CollectedBefore: req.CollectedBefore,
		PageSize:        req.PageSize,
		Page:            req.Page,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "list inventories: %v", err)
	}

	summaries := make([]convert.Summary, len(records))
	for i := range records {
		summaries[i] = convert.RecordToSummary(&records[i])
	}

	return &ListInventoriesResponse{Inventories: summaries, TotalCount: total}, nil
}

func (h *Handler) DeleteInventory(ctx context.Context, id int64) error {
	if err := h.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return status.Errorf(codes.NotFound, "inventory %d not found", id)
		}
		return status.Errorf(codes.Internal, "delete inventory: %v", err)
	}
	return nil
}

func (h *Handler) GetLatestByHostname(ctx context.Context, hostname string) (*InventoryResponse, error) {
	if hostname == "" {
		return nil, status.Error(codes.InvalidArgument, "hostname is required")
	}

	rec, err := h.store.GetLatestByHostname(ctx, hostname)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, status.Errorf(codes.NotFound, "no inventory found for hostname %q", hostname)
		}
		return nil, status.Errorf(codes.Internal, "get latest inventory: %v", err)
	}
	return inventoryResponse(rec)
}

func inventoryResponse(rec *store.SnapshotRecord) (*InventoryResponse, error) {
	inv, err := convert.RecordToInventory(rec)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "decode inventory: %v", err)
	}
	return &InventoryResponse{ID: rec.ID, Inventory: inv, StoredAt: rec.StoredAt}, nil
}
