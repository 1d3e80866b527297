// Package docs registers the OpenAPI description served under /swagger.
// Keep it in sync with the handler annotations; `swag init -g api/main.go`
// regenerates it.
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
        "/api/analytics/chart": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["image/png"],
                "tags": ["analytics"],
                "summary": "Dashboard chart image",
                "parameters": [
                    {"type": "string", "description": "expense_by_category (default) or income_vs_expense_monthly", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "204": {"description": "Nothing to draw"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}}
                }
            }
        },
        "/api/analytics/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Aggregates over all of the caller's transactions; listing filters do not apply.",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Dashboard chart data",
                "parameters": [
                    {"type": "string", "description": "expense_by_category (default), income_vs_expense_monthly or top_expenses", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.AnalyticsResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}}
                }
            }
        },
        "/api/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["categories"],
                "summary": "List categories",
                "parameters": [
                    {"type": "string", "description": "income or expense", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.CategoriesResult"}}
                }
            }
        },
        "/api/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Revoke the current token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResult"}}
                }
            }
        },
        "/api/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Filter, sort and paginate transactions",
                "parameters": [
                    {"type": "string", "description": "income or expense", "name": "type", "in": "query"},
                    {"type": "integer", "description": "Category ID", "name": "category_id", "in": "query"},
                    {"type": "string", "description": "Substring of the description", "name": "search", "in": "query"},
                    {"type": "string", "description": "Inclusive lower bound (YYYY-MM-DD)", "name": "date_from", "in": "query"},
                    {"type": "string", "description": "Inclusive upper bound (YYYY-MM-DD)", "name": "date_to", "in": "query"},
                    {"type": "string", "description": "today, week, month or year when no explicit dates are given", "name": "range", "in": "query"},
                    {"type": "string", "description": "date, amount, type, category_name or description", "name": "sort_by", "in": "query"},
                    {"type": "string", "description": "ASC or DESC", "name": "sort_order", "in": "query"},
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (1-100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TransactionsSearchResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Create a transaction",
                "parameters": [
                    {"description": "Transaction to create", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.MessageResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}}
                }
            }
        },
        "/api/transactions/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "tags": ["transactions"],
                "summary": "Export filtered transactions as CSV",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}}
                }
            }
        },
        "/api/transactions/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Update a transaction",
                "parameters": [
                    {"type": "integer", "description": "Transaction ID", "name": "id", "in": "path", "required": true},
                    {"description": "New values", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.TransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Delete a transaction",
                "parameters": [
                    {"type": "integer", "description": "Transaction ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.MessageResult"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}}
                }
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Authenticate user and return JWT token",
                "parameters": [
                    {"description": "username and password", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.UserLogin"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.LoginResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}}
                }
            }
        },
        "/register": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register new user and return JWT token",
                "parameters": [
                    {"description": "username, password and confirmation", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handlers.LoginResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handlers.ErrorResult"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.AnalyticsResult": {"type": "object", "properties": {"data": {}, "success": {"type": "boolean"}}},
        "handlers.CategoriesResult": {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/models.Category"}}, "success": {"type": "boolean"}}},
        "handlers.ErrorResult": {"type": "object", "properties": {"message": {"type": "string"}, "success": {"type": "boolean"}}},
        "handlers.LoginResult": {"type": "object", "properties": {"expires_at": {"type": "string"}, "success": {"type": "boolean"}, "token": {"type": "string"}, "username": {"type": "string"}}},
        "handlers.MessageResult": {"type": "object", "properties": {"id": {"type": "integer"}, "message": {"type": "string"}, "success": {"type": "boolean"}}},
        "handlers.RegisterRequest": {"type": "object", "properties": {"password": {"type": "string"}, "password_confirm": {"type": "string"}, "username": {"type": "string"}}},
        "handlers.SummaryResponse": {"type": "object", "properties": {"balance": {"type": "number"}, "count": {"type": "integer"}, "total_count": {"type": "integer"}, "total_expense": {"type": "number"}, "total_income": {"type": "number"}}},
        "handlers.TransactionRequest": {"type": "object", "properties": {"amount": {"type": "string"}, "category_id": {"type": "string"}, "date": {"type": "string"}, "description": {"type": "string"}, "id": {"type": "integer"}, "type": {"type": "string"}}},
        "handlers.TransactionResponse": {"type": "object", "properties": {"amount": {"type": "number"}, "category_id": {"type": "integer"}, "category_name": {"type": "string"}, "created_at": {"type": "string"}, "description": {"type": "string"}, "id": {"type": "integer"}, "transaction_date": {"type": "string"}, "type": {"type": "string"}}},
        "handlers.TransactionsSearchResult": {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/handlers.TransactionResponse"}}, "pagination": {"$ref": "#/definitions/filter.Pagination"}, "success": {"type": "boolean"}, "summary": {"$ref": "#/definitions/handlers.SummaryResponse"}}},
        "handlers.UserLogin": {"type": "object", "properties": {"password": {"type": "string"}, "username": {"type": "string"}}},
        "filter.Pagination": {"type": "object", "properties": {"current_page": {"type": "integer"}, "has_next": {"type": "boolean"}, "has_prev": {"type": "boolean"}, "per_page": {"type": "integer"}, "total_pages": {"type": "integer"}, "total_rows": {"type": "integer"}}},
        "models.Category": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "type": {"type": "string"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Finance Tracker API",
	Description:      "REST API for recording income and expenses, filtering and exporting them, and charting spending.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
