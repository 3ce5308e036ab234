// Package docs registers the Swagger document served under /swagger.
// Keep it in step with the godoc annotations on the REST handlers.
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
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/patients": {
            "get": {
                "description": "Paged list filtered by name (first or last, case-insensitive) and document number",
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "List patients",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "pageSize", "in": "query"},
                    {"type": "string", "description": "Name contains", "name": "name", "in": "query"},
                    {"type": "string", "description": "Document number contains", "name": "documentNumber", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/dto.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/patient.ListResult"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Create a patient",
                "parameters": [
                    {"description": "Patient", "name": "data", "in": "body", "required": true, "schema": {"$ref": "#/definitions/patient.Request"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"allOf": [{"$ref": "#/definitions/dto.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/patient.Patient"}}}]}, "headers": {"Location": {"type": "string", "description": "/api/v1/patients/{id}"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/patients/createdAfter": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "List patients created after a date",
                "parameters": [
                    {"type": "string", "description": "RFC3339, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/dto.Envelope"}, {"type": "object", "properties": {"data": {"type": "array", "items": {"$ref": "#/definitions/patient.Patient"}}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/patients/{patient_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Get a patient",
                "parameters": [
                    {"type": "integer", "description": "Patient ID", "name": "patient_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/dto.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/patient.Patient"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Replaces every mutable field. id and createdAt never change.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Replace a patient",
                "parameters": [
                    {"type": "integer", "description": "Patient ID", "name": "patient_id", "in": "path", "required": true},
                    {"description": "Patient", "name": "data", "in": "body", "required": true, "schema": {"$ref": "#/definitions/patient.Request"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/dto.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/patient.Patient"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict", "schema": {"type": "string"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Delete a patient",
                "parameters": [
                    {"type": "integer", "description": "Patient ID", "name": "patient_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "patch": {
                "description": "Applies a JSON Patch document. Only add, replace and remove on patient fields are accepted.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Partially update a patient",
                "parameters": [
                    {"type": "integer", "description": "Patient ID", "name": "patient_id", "in": "path", "required": true},
                    {"description": "JSON Patch", "name": "data", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/patient.PatchOperation"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"allOf": [{"$ref": "#/definitions/dto.Envelope"}, {"type": "object", "properties": {"data": {"$ref": "#/definitions/patient.Patient"}}}]}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict", "schema": {"type": "string"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dto.ProblemDetails"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.Envelope": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "details": {},
                "error": {"type": "string"}
            }
        },
        "dto.ProblemDetails": {
            "type": "object",
            "properties": {
                "errors": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
                "status": {"type": "integer"},
                "title": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "patient.ListResult": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/patient.Patient"}},
                "page": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalItems": {"type": "integer"}
            }
        },
        "patient.PatchOperation": {
            "type": "object",
            "properties": {
                "from": {"type": "string"},
                "op": {"type": "string", "enum": ["add", "replace", "remove"], "example": "replace"},
                "path": {"type": "string", "example": "/firstName"},
                "value": {"type": "string", "example": "Maria"}
            }
        },
        "patient.Patient": {
            "type": "object",
            "properties": {
                "birthDate": {"type": "string"},
                "createdAt": {"type": "string"},
                "documentNumber": {"type": "string"},
                "documentType": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "id": {"type": "integer"},
                "lastName": {"type": "string"},
                "phoneNumber": {"type": "string"}
            }
        },
        "patient.Request": {
            "type": "object",
            "properties": {
                "birthDate": {"type": "string"},
                "documentNumber": {"type": "string"},
                "documentType": {"type": "string"},
                "email": {"type": "string"},
                "firstName": {"type": "string"},
                "lastName": {"type": "string"},
                "phoneNumber": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo is exported so the host and base path can be set at startup.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Patient Records API",
	Description:      "CRUD service for patient records.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
