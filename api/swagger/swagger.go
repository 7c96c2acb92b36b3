package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Doctor Directory API",
        "description": "Doctor directory with AI-assisted natural language search",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Doctors", "description": "Doctor directory management"},
        {"name": "Search", "description": "AI-assisted free-text doctor search"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/doctors": {
            "get": {
                "tags": ["Doctors"],
                "summary": "List doctors",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "district", "in": "query", "type": "string"},
                    {"name": "specialty", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"},
                    {"name": "sortBy", "in": "query", "type": "string"},
                    {"name": "sortOrder", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Doctors"],
                "summary": "Create doctor",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDoctorRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/doctors/export": {
            "get": {
                "tags": ["Doctors"],
                "summary": "Export the doctor directory as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/doctors/{id}": {
            "get": {
                "tags": ["Doctors"],
                "summary": "Get doctor with specializations",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Doctors"],
                "summary": "Update doctor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateDoctorRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Doctors"],
                "summary": "Soft delete doctor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found or already deleted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/doctors/{id}/restore": {
            "post": {
                "tags": ["Doctors"],
                "summary": "Restore a soft deleted doctor",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found or not deleted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/search/ai": {
            "post": {
                "tags": ["Search"],
                "summary": "Search doctors from a free-text prompt",
                "description": "Interprets a natural language prompt (Bangla or English) and returns matching doctors plus the derived search criteria.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AISearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SearchEnvelope"}},
                    "400": {"description": "Missing prompt", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "AI extraction unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateDoctorRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "specialty": {"type": "string"},
                "specialtyList": {"type": "array", "items": {"type": "string"}},
                "specialtyCategories": {"type": "array", "items": {"type": "string"}},
                "district": {"type": "string"},
                "degree": {"type": "string"},
                "designation": {"type": "string"},
                "workplace": {"type": "string"},
                "source_hospital": {"type": "string"},
                "chambers": {"type": "array", "items": {"type": "object"}},
                "specializations": {"type": "array", "items": {"$ref": "#/definitions/SpecializationPayload"}}
            }
        },
        "UpdateDoctorRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "specialty": {"type": "string"},
                "specialtyList": {"type": "array", "items": {"type": "string"}},
                "specialtyCategories": {"type": "array", "items": {"type": "string"}},
                "district": {"type": "string"},
                "degree": {"type": "string"},
                "designation": {"type": "string"},
                "workplace": {"type": "string"},
                "source_hospital": {"type": "string"},
                "chambers": {"type": "array", "items": {"type": "object"}}
            }
        },
        "SpecializationPayload": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "is_primary": {"type": "boolean"}
            }
        },
        "AISearchRequest": {
            "type": "object",
            "required": ["prompt"],
            "properties": {
                "prompt": {"type": "string"},
                "fallbackLocation": {"type": "string"}
            }
        },
        "SearchCriteria": {
            "type": "object",
            "properties": {
                "condition": {"type": "string"},
                "specialty": {"type": "string"},
                "relatedConditions": {"type": "array", "items": {"type": "string"}},
                "district": {"type": "string"},
                "timePreferences": {"type": "array", "items": {"type": "string"}},
                "hospitalPreference": {"type": "string"},
                "dateRequirement": {"type": "string", "enum": ["none", "today", "tomorrow", "specific_date"]},
                "specificDate": {"type": "string"},
                "urgency": {"type": "boolean"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        },
        "SearchEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"type": "object"}},
                "meta": {"type": "object"},
                "searchCriteria": {"$ref": "#/definitions/SearchCriteria"}
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
