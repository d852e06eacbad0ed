package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
)

const (
	OperationSubmitInventory     = "/sysinfo.v1.InventoryService/SubmitInventory"
	OperationGetInventory        = "/sysinfo.v1.InventoryService/GetInventory"
	OperationListInventories     = "/sysinfo.v1.InventoryService/ListInventories"
	OperationDeleteInventory     = "/sysinfo.v1.InventoryService/DeleteInventory"
	OperationGetLatestByHostname = "/sysinfo.v1.InventoryService/GetLatestByHostname"
)

// RegisterHTTPRoutes binds the inventory API under /v1.
func RegisterHTTPRoutes(s *kratoshttp.Server, h *Handler) {
	r := s.Route("/")
	r.POST("/v1/inventories", submitInventoryHTTP(h))
	r.GET("/v1/inventories", listInventoriesHTTP(h))
	r.GET("/v1/inventories/{id}", getInventoryHTTP(h))
	r.DELETE("/v1/inventories/{id}", deleteInventoryHTTP(h))
	r.GET("/v1/hosts/{hostname}/latest", getLatestByHostnameHTTP(h))
}

// invoke runs fn behind the server middleware chain under the given operation.
func invoke(ctx kratoshttp.Context, operation string, req any, fn func(context.Context, any) (any, error)) error {
	kratoshttp.SetOperation(ctx, operation)
	out, err := ctx.Middleware(fn)(ctx, req)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

func submitInventoryHTTP(h *Handler) kratoshttp.HandlerFunc {
	return func(ctx kratoshttp.Context) error {
		var in collector.Inventory
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		return invoke(ctx, OperationSubmitInventory, &in, func(ctx context.Context, req any) (any, error) {
			return h.SubmitInventory(ctx, req.(*collector.Inventory))
		})
	}
}

func getInventoryHTTP(h *Handler) kratoshttp.HandlerFunc {
	return func(ctx kratoshttp.Context) error {
		id, err := pathID(ctx)
		if err != nil {
			return err
		}
		return invoke(ctx, OperationGetInventory, id, func(ctx context.Context, req any) (any, error) {
			return h.GetInventory(ctx, req.(int64))
		})
	}
}

func deleteInventoryHTTP(h *Handler) kratoshttp.HandlerFunc {
	return func(ctx kratoshttp.Context) error {
		id, err := pathID(ctx)
		if err != nil {
			return err
		}
		return invoke(ctx, OperationDeleteInventory, id, func(ctx context.Context, req any) (any, error) {
			if err := h.DeleteInventory(ctx, req.(int64)); err != nil {
				return nil, err
			}
			return struct{}{}, nil
		})
	}
}

func getLatestByHostnameHTTP(h *Handler) kratoshttp.HandlerFunc {
	return func(ctx kratoshttp.Context) error {
		hostname := ctx.Vars().Get("hostname")
		return invoke(ctx, OperationGetLatestByHostname, hostname, func(ctx context.Context, req any) (any, error) {
			return h.GetLatestByHostname(ctx, req.(string))
		})
	}
}

func listInventoriesHTTP(h *Handler) kratoshttp.HandlerFunc {
	return func(ctx kratoshttp.Context) error {
		q := ctx.Query()
		req := &ListInventoriesRequest{Hostname: q.Get("hostname")}

		var err error
		if req.PageSize, err = queryInt(q.Get("page_size")); err != nil {
			return status.Errorf(codes.InvalidArgument, "page_size: %v", err)
		}
		if req.Page, err = queryInt(q.Get("page")); err != nil {
			return status.Errorf(codes.InvalidArgument, "page: %v", err)
		}
		if req.CollectedAfter, err = queryTime(q.Get("collected_after")); err != nil {
			return status.Errorf(codes.InvalidArgument, "collected_after: %v", err)
		}
		if req.CollectedBefore, err = queryTime(q.Get("collected_before")); err != nil {
			return status.Errorf(codes.InvalidArgument, "collected_before: %v", err)
		}

		return invoke(ctx, OperationListInventories, req, func(ctx context.Context, req any) (any, error) {
			return h.ListInventories(ctx, req.(*ListInventoriesRequest))
		})
	}
}

func pathID(ctx kratoshttp.Context) (int64, error) {
	raw := ctx.Vars().Get("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, status.Errorf(codes.InvalidArgument, "invalid inventory id %q", raw)
	}
	return id, nil
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func queryTime(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
