// Package docs registers the OpenAPI document served at /v1/swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/functions/send-contract-signed-email": {
            "post": {
                "description": "Emails the signing client (when an address is given) and the tenant owner.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["functions"],
                "summary": "Notify contract signature",
                "parameters": [
                    {
                        "description": "Signed contract",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.ContractSignedRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/admin/contracts/{id}/pdf": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Renders a stored contract of the caller's tenant.",
                "produces": ["application/pdf"],
                "tags": ["contracts"],
                "summary": "Download contract PDF",
                "parameters": [
                    {"type": "string", "description": "Contract ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/admin/contracts/pdf": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Renders a contract from the posted data without storing it.",
                "consumes": ["application/json"],
                "produces": ["application/pdf"],
                "tags": ["contracts"],
                "summary": "Render contract PDF",
                "parameters": [
                    {
                        "description": "Contract data",
                        "name": "contract",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/domain.ContractData"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/admin/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["dashboard"],
                "summary": "Dashboard statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/admin/appointments/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["dashboard"],
                "summary": "Export appointments",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ContractSignedRequest": {
            "type": "object",
            "properties": {
                "contractId": {"type": "string"},
                "clientName": {"type": "string"},
                "clientEmail": {"type": "string"},
                "tenantId": {"type": "string"},
                "signedAt": {"type": "string"}
            }
        },
        "domain.QuoteItem": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "number"},
                "total_price": {"type": "number"}
            }
        },
        "domain.ContractData": {
            "type": "object",
            "properties": {
                "clientName": {"type": "string"},
                "clientEmail": {"type": "string"},
                "clientPhone": {"type": "string"},
                "contractType": {"type": "string"},
                "quoteItems": {"type": "array", "items": {"$ref": "#/definitions/domain.QuoteItem"}},
                "totalValue": {"type": "number"},
                "notes": {"type": "string"},
                "signatureImage": {"type": "string"},
                "signedAt": {"type": "string"},
                "createdAt": {"type": "string"},
                "tenantName": {"type": "string"},
                "tenantLogo": {"type": "string"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {},
                "request_id": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Celebrai Backend API",
	Description:      "Contract PDFs, signature notifications and dashboard data for party-service tenants.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
