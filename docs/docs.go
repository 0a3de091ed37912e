// Package docs is generated by swag init; regenerate it after changing
// handler annotations.
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
        "/auth/callback": {
            "get": {
                "tags": ["auth"],
                "summary": "LinkedIn callback",
                "parameters": [
                    {"type": "string", "name": "code", "in": "query", "required": true},
                    {"type": "string", "name": "state", "in": "query", "required": true}
                ],
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/auth/error": {
            "get": {
                "tags": ["auth"],
                "summary": "Sign-in error view",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/guest": {
            "post": {
                "tags": ["auth"],
                "summary": "Continue as guest",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/linkedin": {
            "get": {
                "tags": ["auth"],
                "summary": "Start LinkedIn sign-in",
                "responses": {"302": {"description": "Found"}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign out",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/auth/session": {
            "get": {
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/jobs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "List jobs",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "portal", "in": "query"},
                    {"type": "string", "name": "window", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "Create a job",
                "parameters": [
                    {"name": "job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.JobRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/jobs/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "Export jobs",
                "parameters": [
                    {"type": "string", "name": "format", "in": "query"},
                    {"type": "string", "name": "ids", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/jobs/export/archive": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "Archive an export",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/jobs/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "Job statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            }
        },
        "/jobs/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "Get a job",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "Update a job",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "job", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.JobRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "Delete a job",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "boolean", "name": "confirm", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.Response"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Get profile",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Edit guest profile",
                "parameters": [
                    {"name": "profile", "in": "body", "required": true, "schema": {"$ref": "#/definitions/v1.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        },
        "/profile/avatar": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Guest picture",
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "tags": ["profile"],
                "summary": "Upload guest picture",
                "parameters": [{"type": "file", "name": "image", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/response.Response"}}
                }
            }
        }
    },
    "definitions": {
        "response.Response": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "v1.JobRequest": {
            "type": "object",
            "required": ["company", "title"],
            "properties": {
                "applied_on": {"type": "string"},
                "company": {"type": "string"},
                "deadline": {"type": "string"},
                "portal": {"type": "string"},
                "status": {"type": "string"},
                "status_link": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "v1.UpdateProfileRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"}
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
	Title:            "Job Tracker API",
	Description:      "Personal job application tracker for LinkedIn accounts and guests.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
