// Package docs registers the OpenAPI description served at /swagger/*.
//
// This file mirrors the output of swag and is not edited by hand for new
// endpoints: after changing any handler annotation, regenerate it with
// `swag init -g cmd/api/main.go -o docs` so it does not drift.
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
        "/functions/analyze-transcripts": {
            "post": {"tags": ["Functions"], "summary": "Analyze transcripts", "security": [{"BearerAuth": []}, {}], "responses": {"200": {"description": "OK"}, "401": {"description": "Anonymous caller on an owned project"}, "403": {"description": "Project belongs to another user"}, "404": {"description": "Project not found"}, "500": {"description": "Internal Server Error"}}}
        },
        "/functions/chat-with-transcripts": {
            "post": {"tags": ["Functions"], "summary": "Ask a question about a project's transcripts", "security": [{"BearerAuth": []}, {}], "responses": {"200": {"description": "OK"}, "400": {"description": "Missing question or projectId"}, "401": {"description": "Anonymous caller on an owned project"}, "403": {"description": "Project belongs to another user"}, "404": {"description": "Project not found"}, "500": {"description": "Internal Server Error"}}}
        },
        "/functions/cleanup-quote": {
            "post": {"tags": ["Functions"], "summary": "Clean up a transcript quote", "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}}
        },
        "/functions/send-auth-email": {
            "post": {"tags": ["Functions"], "summary": "Send an auth email", "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid signature"}, "500": {"description": "Internal Server Error"}}}
        },
        "/projects": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "List projects", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "Create a new project", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/projects/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "Get project details", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "Update a project", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Projects"], "summary": "Delete a project", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/projects/{id}/transcripts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Transcripts"], "summary": "List transcripts", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Transcripts"], "summary": "Add a transcript", "responses": {"201": {"description": "Created"}}}
        },
        "/projects/{id}/transcripts/audio": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["Transcripts"], "summary": "Import an audio interview", "responses": {"201": {"description": "Created"}, "503": {"description": "Transcription not configured"}}}
        },
        "/projects/{id}/transcripts/{transcriptId}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Transcripts"], "summary": "Delete a transcript", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/projects/{id}/context": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Context"], "summary": "Get project context", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Context"], "summary": "Append to project context", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["Context"], "summary": "Replace project context", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Context"], "summary": "Clear project context", "responses": {"200": {"description": "OK"}}}
        },
        "/projects/{id}/analysis": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Analysis"], "summary": "Get the latest analysis", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["Analysis"], "summary": "Analyze a project's transcripts", "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}}
        },
        "/projects/{id}/conversations": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["Conversations"], "summary": "List chat history", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["Conversations"], "summary": "Delete chat history", "responses": {"200": {"description": "OK"}}}
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
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "TranscriptIQ API",
	Description:      "Theme and disagreement analysis, chat and quote cleanup over interview transcripts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
