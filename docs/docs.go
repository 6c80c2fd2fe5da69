// Package docs holds the generated swagger specification.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/import-url": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["import"],
                "summary": "Import a vehicle listing by URL",
                "parameters": [
                    {
                        "description": "Listing URL",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "object"}
                    }
                ],
                "responses": {
                    "200": {"description": "Normalized vehicle record"},
                    "400": {"description": "Invalid URL"},
                    "422": {"description": "Unsupported site"},
                    "502": {"description": "Scrape failed"}
                }
            }
        },
        "/api/import-urls": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["import"],
                "summary": "Import several vehicle listings by URL",
                "parameters": [
                    {
                        "description": "Listing URLs",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "object"}
                    }
                ],
                "responses": {
                    "200": {"description": "Per-URL results with partial success"},
                    "400": {"description": "Invalid request"}
                }
            }
        },
        "/api/vin": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vin"],
                "summary": "Run a full VIN analysis",
                "parameters": [
                    {
                        "description": "VIN to analyze",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"type": "object"}
                    }
                ],
                "responses": {
                    "200": {"description": "VIN analysis"},
                    "400": {"description": "Invalid VIN"},
                    "504": {"description": "Analysis timed out"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "vinscout API",
	Description:      "Vehicle-listing acquisition and VIN-verification pipeline",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
