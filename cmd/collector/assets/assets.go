// Package assets embeds static files served by the collector daemon.
package assets

import _ "embed"

// OpenApiData is the OpenAPI document rendered by the Swagger UI.
//
//go:embed openapi.yaml
var OpenApiData []byte
