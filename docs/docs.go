// Package docs holds the OpenAPI description served under /swagger.
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
        "/login": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login page model",
                "parameters": [
                    {"type": "string", "description": "Path to return to after login", "name": "redirect", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginPageResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Optional subject and roles", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}},
                    {"type": "string", "description": "Path to return to after login", "name": "redirect", "in": "query"}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"303": {"description": "See Other"}}
            }
        },
        "/{domain}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["domains"],
                "summary": "List records",
                "parameters": [
                    {"type": "string", "description": "Domain route, e.g. profiles", "name": "domain", "in": "path", "required": true},
                    {"type": "string", "description": "Name filter", "name": "name", "in": "query"},
                    {"type": "string", "description": "Cursor", "name": "after_id", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Sort field", "name": "sort_by", "in": "query"},
                    {"type": "string", "description": "asc or desc", "name": "order", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.listPageResponse"}},
                    "302": {"description": "Found"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["domains"],
                "summary": "Create record",
                "parameters": [
                    {"type": "string", "description": "Domain route, e.g. profiles", "name": "domain", "in": "path", "required": true},
                    {"description": "Record", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.RecordInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.CreatedRef"}},
                    "405": {"description": "Method Not Allowed", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/{domain}/new": {
            "get": {
                "produces": ["application/json"],
                "tags": ["domains"],
                "summary": "New record form",
                "parameters": [
                    {"type": "string", "description": "Domain route, e.g. profiles", "name": "domain", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.newFormResponse"}}
                }
            }
        },
        "/{domain}/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["domains"],
                "summary": "Record detail",
                "parameters": [
                    {"type": "string", "description": "Domain route, e.g. profiles", "name": "domain", "in": "path", "required": true},
                    {"type": "string", "description": "Record _id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.detailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["domains"],
                "summary": "Update record",
                "parameters": [
                    {"type": "string", "description": "Domain route, e.g. profiles", "name": "domain", "in": "path", "required": true},
                    {"type": "string", "description": "Record _id", "name": "id", "in": "path", "required": true},
                    {"description": "Changed fields", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.RecordUpdate"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ControlRecord"}},
                    "405": {"description": "Method Not Allowed", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/admin": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin view",
                "parameters": [
                    {"type": "array", "items": {"type": "string"}, "collectionFormat": "multi", "description": "Roles to check", "name": "role", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.adminResponse"}},
                    "302": {"description": "Found"}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "domain.Breadcrumb": {
            "type": "object",
            "properties": {
                "from_ip": {"type": "string"},
                "by_user": {"type": "string"},
                "at_time": {"type": "string"},
                "correlation_id": {"type": "string"}
            }
        },
        "domain.ControlRecord": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string"},
                "created": {"$ref": "#/definitions/domain.Breadcrumb"},
                "saved": {"$ref": "#/definitions/domain.Breadcrumb"}
            }
        },
        "domain.CreatedRef": {
            "type": "object",
            "properties": {"_id": {"type": "string"}}
        },
        "domain.DropdownItem": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "value": {"type": "string"}}
        },
        "domain.RecordInput": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "domain.RecordUpdate": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.adminResponse": {
            "type": "object",
            "properties": {
                "roles": {"type": "array", "items": {"type": "string"}},
                "stored_roles": {"type": "array", "items": {"type": "string"}},
                "capabilities": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "role_check": {"type": "object"},
                "claims": {"type": "object"},
                "claims_error": {"type": "string"},
                "config": {"type": "object"},
                "config_loading": {"type": "boolean"},
                "config_error": {"type": "string"}
            }
        },
        "handler.detailResponse": {
            "type": "object",
            "properties": {
                "domain": {"$ref": "#/definitions/handler.domainModel"},
                "editable": {"type": "boolean"},
                "record": {"type": "object"},
                "status_options": {"type": "array", "items": {"$ref": "#/definitions/domain.DropdownItem"}}
            }
        },
        "handler.domainModel": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "title": {"type": "string"},
                "kind": {"type": "string"},
                "capabilities": {"type": "string"},
                "list_path": {"type": "string"},
                "new_path": {"type": "string"}
            }
        },
        "handler.listPageResponse": {
            "type": "object",
            "properties": {
                "domain": {"$ref": "#/definitions/handler.domainModel"},
                "query": {"type": "object"},
                "page": {
                    "type": "object",
                    "properties": {
                        "items": {"type": "array", "items": {"type": "object"}},
                        "limit": {"type": "integer"},
                        "has_more": {"type": "boolean"},
                        "next_cursor": {"type": "string"}
                    }
                }
            }
        },
        "handler.loginPageResponse": {
            "type": "object",
            "properties": {"authenticated": {"type": "boolean"}, "redirect": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "subject": {"type": "string"},
                "roles": {"type": "array", "items": {"type": "string"}},
                "redirect": {"type": "string"}
            }
        },
        "handler.newFormResponse": {
            "type": "object",
            "properties": {
                "domain": {"$ref": "#/definitions/handler.domainModel"},
                "fields": {"type": "array", "items": {"type": "object"}},
                "status_options": {"type": "array", "items": {"$ref": "#/definitions/domain.DropdownItem"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Domain Console",
	Description:      "Session-aware console over the domain REST API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
