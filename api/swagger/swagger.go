package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Portal API",
        "description": "Password-gated course portal backend: notes, resources, display ordering, AI study tools",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Password login and session status"},
        {"name": "Notes", "description": "Course notes and exports"},
        {"name": "Resources", "description": "Course PDFs and links"},
        {"name": "Order", "description": "Display order of course collections"},
        {"name": "AI", "description": "Summaries, flashcards and podcast synthesis"},
        {"name": "Feed", "description": "Server-side RSS parsing"},
        {"name": "Analytics", "description": "Access usage reporting"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Student login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "500": {"description": "Auth not configured", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/auth/prof-login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Professor login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/auth/status": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Session status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AuthStatusResponse"}}
                }
            }
        },
        "/notes": {
            "get": {
                "tags": ["Notes"],
                "summary": "List notes in display order",
                "parameters": [
                    {"name": "courseId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "post": {
                "tags": ["Notes"],
                "summary": "Create note (professor)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateNoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Professor role required", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "413": {"description": "Input too large", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/notes/{id}": {
            "put": {
                "tags": ["Notes"],
                "summary": "Update note (professor)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateNoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Notes"],
                "summary": "Delete note (professor)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/notes/export": {
            "get": {
                "tags": ["Notes"],
                "summary": "Export notes as CSV or PDF (professor)",
                "parameters": [
                    {"name": "courseId", "in": "query", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "required": true}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "404": {"description": "No notes to export", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/resources": {
            "get": {
                "tags": ["Resources"],
                "summary": "List resources in display order",
                "parameters": [
                    {"name": "courseId", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Resources"],
                "summary": "Create resource (professor)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateResourceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/resources/{id}": {
            "put": {
                "tags": ["Resources"],
                "summary": "Update resource (professor)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateResourceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Resources"],
                "summary": "Delete resource (professor)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/order": {
            "put": {
                "tags": ["Order"],
                "summary": "Replace display order (professor)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Professor role required", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/ai/summarize": {
            "post": {
                "tags": ["AI"],
                "summary": "Summarize content",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "429": {"description": "Upstream rate limit", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "502": {"description": "Upstream failure", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/ai/flashcards": {
            "post": {
                "tags": ["AI"],
                "summary": "Generate flashcards",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ContentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ai/podcast": {
            "post": {
                "tags": ["AI"],
                "summary": "Synthesize podcast audio",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PodcastRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/feed": {
            "get": {
                "tags": ["Feed"],
                "summary": "Fetch and parse an RSS/Atom feed",
                "parameters": [
                    {"name": "url", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "Feed unreachable", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/analytics/access": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Access report (professor)",
                "parameters": [
                    {"name": "courseId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "role": {"type": "string", "enum": ["student", "professor"]},
                "ttlMs": {"type": "integer"}
            }
        },
        "AuthStatusResponse": {
            "type": "object",
            "properties": {
                "authEnabled": {"type": "boolean"},
                "authenticated": {"type": "boolean"},
                "role": {"type": "string"}
            }
        },
        "CreateNoteRequest": {
            "type": "object",
            "properties": {
                "courseId": {"type": "string"},
                "title": {"type": "string"},
                "content": {"type": "string"},
                "link": {"type": "string"}
            }
        },
        "UpdateNoteRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "link": {"type": "string"}
            }
        },
        "CreateResourceRequest": {
            "type": "object",
            "properties": {
                "courseId": {"type": "string"},
                "title": {"type": "string"},
                "type": {"type": "string", "enum": ["PDF", "LIEN"]},
                "url": {"type": "string"}
            }
        },
        "UpdateResourceRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "type": {"type": "string", "enum": ["PDF", "LIEN"]},
                "url": {"type": "string"}
            }
        },
        "SetOrderRequest": {
            "type": "object",
            "properties": {
                "entityType": {"type": "string", "enum": ["notes", "resources"]},
                "courseId": {"type": "string"},
                "orderedIds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ContentRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"}
            }
        },
        "PodcastRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object"},
                "requestId": {"type": "string"}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/ErrorBody"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
