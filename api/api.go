// Package api содержит встроенный OpenAPI-документ, который роутер отдаёт
// по /swagger/openapi.json.
package api

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
