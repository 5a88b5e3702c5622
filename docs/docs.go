// Package docs registers the swagger document served at /swagger/index.html.
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
        "/": {
            "get": {
                "produces": ["text/html"],
                "tags": ["blog"],
                "summary": "Index of posts, newest first",
                "parameters": [
                    {"type": "integer", "description": "posts to skip", "name": "skip", "in": "query"},
                    {"type": "integer", "description": "max posts (capped at 100)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/login": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Login form",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"type": "string", "description": "username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "redirect to /, or back to /auth/login with a flash"},
                    "422": {"description": "missing field"}
                }
            }
        },
        "/auth/logout": {
            "get": {
                "tags": ["auth"],
                "summary": "Log out",
                "responses": {"302": {"description": "redirect to /"}}
            }
        },
        "/auth/register": {
            "get": {
                "produces": ["text/html"],
                "tags": ["auth"],
                "summary": "Registration form",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [
                    {"type": "string", "description": "username", "name": "username", "in": "formData", "required": true},
                    {"type": "string", "description": "password", "name": "password", "in": "formData", "required": true}
                ],
                "responses": {
                    "302": {"description": "redirect to /auth/login, or back to /auth/register with a flash"},
                    "422": {"description": "missing field"}
                }
            }
        },
        "/create": {
            "get": {
                "produces": ["text/html"],
                "tags": ["blog"],
                "summary": "New post form",
                "responses": {
                    "200": {"description": "OK"},
                    "302": {"description": "redirect to /auth/login when anonymous"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["blog"],
                "summary": "Create a post",
                "parameters": [
                    {"type": "string", "description": "title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "body", "name": "body", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "redirect to /"},
                    "422": {"description": "blank title"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": {"type": "string"}}
                    }
                }
            }
        },
        "/hello": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["system"],
                "summary": "Greeting",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/ws": {
            "get": {
                "description": "Upgrades to a websocket and pushes {\"type\":\"posts\",\"data\":[...]} every interval.",
                "tags": ["blog"],
                "summary": "Live index feed",
                "parameters": [
                    {"type": "string", "description": "tick as a Go duration, e.g. 2s", "name": "interval", "in": "query"},
                    {"type": "integer", "description": "tick in milliseconds", "name": "interval_ms", "in": "query"}
                ],
                "responses": {}
            }
        },
        "/{id}": {
            "get": {
                "produces": ["text/html"],
                "tags": ["blog"],
                "summary": "Single post",
                "parameters": [{"type": "integer", "description": "post id", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/{id}/delete": {
            "post": {
                "tags": ["blog"],
                "summary": "Delete a post",
                "parameters": [{"type": "integer", "description": "post id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "302": {"description": "redirect to /"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/{id}/update": {
            "get": {
                "produces": ["text/html"],
                "tags": ["blog"],
                "summary": "Edit post form",
                "parameters": [{"type": "integer", "description": "post id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            },
            "post": {
                "consumes": ["application/x-www-form-urlencoded"],
                "tags": ["blog"],
                "summary": "Update a post",
                "parameters": [
                    {"type": "integer", "description": "post id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "body", "name": "body", "in": "formData"}
                ],
                "responses": {
                    "302": {"description": "redirect to /"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"},
                    "422": {"description": "blank title"}
                }
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
	Title:            "Blog",
	Description:      "Multi-user blog: session login and author-only post editing.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
