package servers

import (
	"kiosk/internal/generated/docs"

	"github.com/getkin/kin-openapi/openapi3"
)

// GetSwagger returns the OpenAPI document the routes above implement.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	return loader.LoadFromData([]byte(docs.SwaggerInfo.ReadDoc()))
}
