package sender

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
)

const submitPath = "/v1/inventories"

type submitReply struct {
	ID int64 `json:"id"`
}

// Send submits the inventory to the collector at endpoint and returns the
// assigned record ID. A non-empty secret is sent as the X-API-Key header.
func Send(ctx context.Context, endpoint, secret string, inv *collector.Inventory) (int64, error) {
	client, err := kratoshttp.NewClient(ctx,
		kratoshttp.WithEndpoint(endpoint),
		kratoshttp.WithTimeout(30*time.Second),
		kratoshttp.WithMiddleware(apiKey(secret)),
	)
	if err != nil {
		return 0, fmt.Errorf("connect to collector: %w", err)
	}
	defer client.Close()

	var reply submitReply
	if err := client.Invoke(ctx, http.MethodPost, submitPath, inv, &reply); err != nil {
		return 0, fmt.Errorf("submit inventory: %w", err)
	}

	return reply.ID, nil
}

func apiKey(secret string) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req any) (any, error) {
			if secret != "" {
				if tr, ok := transport.FromClientContext(ctx); ok {
					tr.RequestHeader().Set("X-API-Key", secret)
				}
			}
			return handler(ctx, req)
		}
	}
}
