package swagger

import _ "embed"

// OpenAPI holds the embedded OpenAPI specification served at /openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
