//go:build swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"

	httpSwagger "github.com/swaggo/http-swagger"
)

// swaggerInfo is registered with swag so that /swagger/doc.json serves it.
var swaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "co2d API",
	Description:      "Vehicle CO2 emissions prediction.",
	InfoInstanceName: swag.Name,
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{%",
	RightDelim:       "%}",
}

func init() {
	swag.Register(swaggerInfo.InstanceName(), swaggerInfo)
}

// MountSwagger serves the Swagger UI under /swagger/.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "{% .Title %}",
    "description": "{% escape .Description %}",
    "version": "{% .Version %}"
  },
  "host": "{% .Host %}",
  "basePath": "{% .BasePath %}",
  "schemes": {% marshal .Schemes %},
  "paths": {
    "/": {
      "get": {
        "summary": "API banner",
        "produces": ["application/json"],
        "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.RootResponse"}}}
      }
    },
    "/predict": {
      "post": {
        "summary": "Predict CO2 emissions (g/km)",
        "consumes": ["application/json"],
        "produces": ["application/json"],
        "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/types.PredictRequest"}}],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictResponse"}},
          "400": {"description": "Bad JSON or missing field", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
          "415": {"description": "Content-Type must be application/json", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
          "422": {"description": "Unknown category or invalid number", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
          "503": {"description": "Artifacts not loaded", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
        }
      }
    },
    "/labels": {
      "get": {
        "summary": "Valid labels of every categorical field",
        "produces": ["application/json"],
        "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.LabelsResponse"}}}
      }
    },
    "/labels/{field}": {
      "get": {
        "summary": "Valid labels of one categorical field",
        "produces": ["application/json"],
        "parameters": [{"in": "path", "name": "field", "required": true, "type": "string"}],
        "responses": {
          "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.FieldLabelsResponse"}},
          "404": {"description": "Unknown field", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
        }
      }
    },
    "/schema": {
      "get": {
        "summary": "Feature vector layout",
        "produces": ["application/json"],
        "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SchemaResponse"}}}
      }
    },
    "/status": {
      "get": {
        "summary": "Serving status",
        "produces": ["application/json"],
        "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/types.StatusResponse"}}}
      }
    },
    "/healthz": {"get": {"summary": "Liveness", "responses": {"200": {"description": "ok"}}}},
    "/readyz": {"get": {"summary": "Readiness", "responses": {"200": {"description": "ready"}, "503": {"description": "loading"}}}}
  },
  "definitions": {
    "types.RootResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
    "types.PredictRequest": {
      "type": "object",
      "required": ["Make", "Model", "Vehicle_Class", "Engine_Size_L", "Transmission", "Fuel_Type", "Fuel_Consumption_Hwy_L_100km"],
      "properties": {
        "Make": {"type": "string", "example": "FORD"},
        "Model": {"type": "string", "example": "F-150"},
        "Vehicle_Class": {"type": "string", "example": "PICKUP TRUCK - STANDARD"},
        "Engine_Size_L": {"type": "number", "example": 3.5},
        "Transmission": {"type": "string", "example": "AS6"},
        "Fuel_Type": {"type": "string", "example": "X"},
        "Fuel_Consumption_Hwy_L_100km": {"type": "number", "example": 10.8}
      }
    },
    "types.PredictResponse": {"type": "object", "properties": {"prediction": {"type": "number"}, "version": {"type": "string"}}},
    "types.LabelsResponse": {
      "type": "object",
      "properties": {
        "labels": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
        "version": {"type": "string"}
      }
    },
    "types.FieldLabelsResponse": {
      "type": "object",
      "properties": {"field": {"type": "string"}, "labels": {"type": "array", "items": {"type": "string"}}, "version": {"type": "string"}}
    },
    "types.ColumnInfo": {
      "type": "object",
      "properties": {"index": {"type": "integer"}, "name": {"type": "string"}, "wire": {"type": "string"}, "kind": {"type": "string"}}
    },
    "types.SchemaResponse": {"type": "object", "properties": {"columns": {"type": "array", "items": {"$ref": "#/definitions/types.ColumnInfo"}}}},
    "types.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}, "code": {"type": "integer"}, "field": {"type": "string"}}},
    "types.StatusResponse": {
      "type": "object",
      "properties": {
        "state": {"type": "string"},
        "version": {"type": "string"},
        "fitted_at_unix": {"type": "integer"},
        "rows": {"type": "integer"},
        "r2": {"type": "number"},
        "store": {"type": "string"},
        "loads_total": {"type": "integer"},
        "reload_failures": {"type": "integer"},
        "predictions_total": {"type": "integer"},
        "prediction_errors": {"type": "integer"},
        "cache_entries": {"type": "integer"},
        "last_error": {"type": "string"},
        "uptime_seconds": {"type": "integer"},
        "server_time_unix": {"type": "integer"}
      }
    }
  }
}`
