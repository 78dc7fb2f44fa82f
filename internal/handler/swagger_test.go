package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToOpenAPI3(t *testing.T) {
	swagger2 := map[string]interface{}{
		"info": map[string]interface{}{"title": "Household Finance API"},
		"paths": map[string]interface{}{
			"/credit-cards/{id}": map[string]interface{}{
				"put": map[string]interface{}{
					"parameters": []interface{}{
						map[string]interface{}{"name": "id", "in": "path", "required": true, "type": "integer"},
						map[string]interface{}{"name": "request", "in": "body", "required": true,
							"schema": map[string]interface{}{"$ref": "#/definitions/handler.CreditCardRequest"}},
					},
				},
			},
		},
		"definitions": map[string]interface{}{
			"handler.CreditCardRequest": map[string]interface{}{"type": "object"},
		},
		"securityDefinitions": map[string]interface{}{
			"BearerAuth": map[string]interface{}{"type": "apiKey"},
		},
	}

	spec := toOpenAPI3(swagger2, []Server{{URL: "http://localhost:8080/api/v1", Description: "Local"}})

	assert.Equal(t, "3.0.3", spec.OpenAPI)
	assert.Equal(t, "Household Finance API", spec.Info["title"])
	require.Len(t, spec.Servers, 1)
	assert.Contains(t, spec.Components, "schemas")
	assert.Contains(t, spec.Components, "securitySchemes")

	op := spec.Paths["/credit-cards/{id}"].(map[string]interface{})["put"].(map[string]interface{})
	params := op["parameters"].([]interface{})
	require.Len(t, params, 1)
	idParam := params[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"type": "integer"}, idParam["schema"])
	assert.NotContains(t, idParam, "type")

	body := op["requestBody"].(map[string]interface{})
	schema := body["content"].(map[string]interface{})["application/json"].(map[string]interface{})["schema"]
	assert.Equal(t, map[string]interface{}{"$ref": "#/components/schemas/handler.CreditCardRequest"}, schema)
}

func TestConvertOperation_NoParameters(t *testing.T) {
	op := map[string]interface{}{"summary": "List"}
	assert.Equal(t, op, convertOperation(op))
}
