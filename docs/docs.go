// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "contato@institutomariaclaro.org.br"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register new donor",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Current user",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/pagamento/criar-preferencia": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Pagamento"],
                "summary": "Create donation checkout",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "object", "properties": {"valor": {"type": "string", "example": "150.00"}}}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "properties": {"initPoint": {"type": "string"}}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/pagamento/webhook": {
            "post": {
                "tags": ["Pagamento"],
                "summary": "Payment notification",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/handlers.WebhookRequest"}},
                    {"in": "query", "name": "topic", "type": "string"},
                    {"in": "query", "name": "id", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "502": {"description": "Bad Gateway"}
                }
            }
        },
        "/pagamento/relatorio-arrecadacao": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Pagamento"],
                "summary": "Fundraising report",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "ano", "type": "integer", "required": true},
                    {"in": "query", "name": "tipo", "type": "string", "enum": ["mensal", "trimestral", "semestral"], "required": true},
                    {"in": "query", "name": "periodo", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/pagamento/lista-doacoes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Pagamento"],
                "summary": "Approved donations",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "query", "name": "pageNumber", "type": "integer", "default": 1},
                    {"in": "query", "name": "pageSize", "type": "integer", "default": 10}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/pagamento/anos-disponiveis": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Pagamento"],
                "summary": "Years with donations",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"type": "integer"}}}}
            }
        }
    },
    "definitions": {
        "handlers.RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "personType": {"type": "string", "enum": ["Individual", "Organization"]},
                "document": {"type": "string"}
            }
        },
        "handlers.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handlers.WebhookRequest": {
            "type": "object",
            "properties": {
                "resource": {"type": "string"},
                "topic": {"type": "string"}
            }
        },
        "response.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"https", "http"},
	Title:            "IMC Donations API",
	Description:      "Doações do Instituto Maria Claro: checkout Mercado Pago, conciliação por webhook, cadastro de doadores e relatórios.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
