package server

import (
	"context"
	"crypto/subtle"

	"github.com/go-kratos/kratos/v2/middleware"
	"github.com/go-kratos/kratos/v2/transport"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// APIKeyHeader carries the shared secret on every API request.
const APIKeyHeader = "X-API-Key"

// ApiSecretMiddleware rejects requests whose X-API-Key header does not match
// secret. An empty secret disables the check.
func ApiSecretMiddleware(secret string) middleware.Middleware {
	return func(handler middleware.Handler) middleware.Handler {
		return func(ctx context.Context, req any) (any, error) {
			if secret == "" {
				return handler(ctx, req)
			}

			tr, ok := transport.FromServerContext(ctx)
			if !ok {
				return nil, status.Error(codes.Internal, "no transport in context")
			}

			key := tr.RequestHeader().Get(APIKeyHeader)
			if key == "" {
				return nil, status.Error(codes.Unauthenticated, "missing X-API-Key header")
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
				return nil, status.Error(codes.Unauthenticated, "invalid X-API-Key")
			}

			return handler(ctx, req)
		}
	}
}
