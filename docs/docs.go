// Package docs registers the OpenAPI description served under /swagger/.
// The document is maintained by hand and mirrors the annotations on the
// handlers in pkg/httpapi; update both together.
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
        "/calls": {
            "post": {
                "produces": ["text/plain"],
                "summary": "Create call",
                "responses": {"201": {"description": "call id", "schema": {"type": "string"}}}
            }
        },
        "/calls/{id}": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get call",
                "parameters": [{"type": "string", "description": "Call ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/call.Call"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        },
        "/calls/{id}/order": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get order",
                "parameters": [{"type": "string", "description": "Call ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "summary": "Clear order",
                "parameters": [{"type": "string", "description": "Call ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        },
        "/calls/{id}/order/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Add items to order",
                "parameters": [
                    {"type": "string", "description": "Call ID", "name": "id", "in": "path", "required": true},
                    {"description": "Item and quantity (default 1)", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpapi.itemsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "description": "Removing more units than present is not an error",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Remove items from order",
                "parameters": [
                    {"type": "string", "description": "Call ID", "name": "id", "in": "path", "required": true},
                    {"description": "Item and quantity (default 1)", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpapi.itemsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/order.Order"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}},
                    "404": {"description": "Not Found", "schema": {"type": "string"}}
                }
            }
        },
        "/menu": {
            "get": {
                "produces": ["application/json"],
                "summary": "Get menu",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/menu.Menu"}}}
            }
        },
        "/menu/items": {
            "post": {
                "description": "Inserts the item or replaces the one with the same name",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "summary": "Add menu item",
                "parameters": [{"description": "Item", "name": "item", "in": "body", "required": true, "schema": {"$ref": "#/definitions/order.Item"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/order.Item"}},
                    "400": {"description": "Bad Request", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "summary": "Clear menu",
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "call.Call": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "order": {"$ref": "#/definitions/order.Order"}
            }
        },
        "httpapi.itemsRequest": {
            "type": "object",
            "properties": {
                "item": {"type": "string"},
                "quantity": {"type": "integer", "minimum": 1, "maximum": 1000}
            }
        },
        "menu.Menu": {
            "type": "object",
            "properties": {
                "items": {"type": "object", "additionalProperties": {"$ref": "#/definitions/order.Item"}}
            }
        },
        "order.Item": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "description": {"type": "string"},
                "name": {"type": "string"},
                "price": {"type": "number"}
            }
        },
        "order.Order": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/order.Item"}},
                "total_cost": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Call Order API",
	Description:      "Tracks calls and the order built during each one.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
