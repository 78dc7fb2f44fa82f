package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/fortuna/household-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

// OpenAPI3Spec represents an OpenAPI 3.0 spec structure
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// schemaFields are the Swagger 2.0 parameter keys that move under "schema" in OpenAPI 3.0
var schemaFields = []string{"type", "format", "enum", "default", "minimum", "maximum", "items"}

// convertRefs rewrites #/definitions/ references to #/components/schemas/ throughout v
func convertRefs(v interface{}) interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(node))
		for key, value := range node {
			if ref, ok := value.(string); ok && key == "$ref" {
				out[key] = strings.Replace(ref, "#/definitions/", "#/components/schemas/", 1)
				continue
			}
			out[key] = convertRefs(value)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(node))
		for i, item := range node {
			out[i] = convertRefs(item)
		}
		return out
	default:
		return v
	}
}

// convertOperation moves parameter type fields under "schema" and turns a body
// parameter into a JSON requestBody
func convertOperation(op map[string]interface{}) map[string]interface{} {
	params, _ := op["parameters"].([]interface{})
	if len(params) == 0 {
		return op
	}

	kept := make([]interface{}, 0, len(params))
	for _, raw := range params {
		param, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if param["in"] == "body" {
			op["requestBody"] = map[string]interface{}{
				"required": param["required"],
				"content": map[string]interface{}{
					echo.MIMEApplicationJSON: map[string]interface{}{"schema": param["schema"]},
				},
			}
			continue
		}

		converted := make(map[string]interface{})
		schema := make(map[string]interface{})
		for key, value := range param {
			if containsString(schemaFields, key) {
				schema[key] = value
			} else {
				converted[key] = value
			}
		}
		if len(schema) > 0 {
			converted["schema"] = schema
		}
		kept = append(kept, converted)
	}

	if len(kept) == 0 {
		delete(op, "parameters")
	} else {
		op["parameters"] = kept
	}
	return op
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// toOpenAPI3 converts a Swagger 2.0 document produced by swag into OpenAPI 3.0
func toOpenAPI3(swagger2 map[string]interface{}, servers []Server) OpenAPI3Spec {
	info, _ := swagger2["info"].(map[string]interface{})

	paths := make(map[string]interface{})
	if rawPaths, ok := convertRefs(swagger2["paths"]).(map[string]interface{}); ok {
		for path, rawItem := range rawPaths {
			item, ok := rawItem.(map[string]interface{})
			if !ok {
				continue
			}
			for method, rawOp := range item {
				if op, ok := rawOp.(map[string]interface{}); ok {
					item[method] = convertOperation(op)
				}
			}
			paths[path] = item
		}
	}

	components := make(map[string]interface{})
	if secDefs, ok := swagger2["securityDefinitions"].(map[string]interface{}); ok {
		components["securitySchemes"] = secDefs
	}
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = convertRefs(definitions)
	}

	return OpenAPI3Spec{
		OpenAPI:    "3.0.3",
		Info:       info,
		Servers:    servers,
		Paths:      paths,
		Components: components,
	}
}

// ServeOpenAPI3Spec serves the registered swagger doc converted to OpenAPI 3.0
func ServeOpenAPI3Spec(servers ...Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return NewInternalError(c, "Failed to read swagger doc")
		}

		var swagger2 map[string]interface{}
		if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
			return NewInternalError(c, "Failed to parse swagger doc")
		}

		return c.JSON(http.StatusOK, toOpenAPI3(swagger2, servers))
	}
}
