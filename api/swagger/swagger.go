package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SEES Portal API",
        "description": "Calendar, listing and dashboard views over the SEES event backend",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Calendar", "description": "Month grids"},
        {"name": "Events", "description": "Filtered event list and exports"},
        {"name": "Dashboard", "description": "Role dashboards"}
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
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unavailable"}
                }
            }
        },
        "/api/v1/calendar": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Month calendar grid",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "month", "in": "query", "type": "integer", "minimum": 0, "maximum": 11, "description": "0-based month"},
                    {"name": "scope", "in": "query", "type": "string", "enum": ["all", "organized", "registered", "sponsored"]},
                    {"name": "weekStart", "in": "query", "type": "string", "enum": ["monday", "sunday"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/CalendarEnvelope"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "SEES API unavailable and no mirror", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/calendar/navigate": {
            "get": {
                "tags": ["Calendar"],
                "summary": "Step the calendar one month",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "month", "in": "query", "type": "integer", "required": true, "minimum": 0, "maximum": 11},
                    {"name": "direction", "in": "query", "type": "string", "required": true, "enum": ["prev", "next"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/events": {
            "get": {
                "tags": ["Events"],
                "summary": "Filtered, paginated events",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "q", "in": "query", "type": "string", "description": "Matches title, organizer, category or sponsor"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "format": "date"},
                    {"name": "time", "in": "query", "type": "string", "description": "HH:MM"},
                    {"name": "page", "in": "query", "type": "integer", "minimum": 1},
                    {"name": "scope", "in": "query", "type": "string", "enum": ["all", "organized", "registered", "sponsored"]},
                    {"name": "refresh", "in": "query", "type": "boolean", "description": "Drop the caller's cached lists before loading"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/EventListEnvelope"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/events/categories": {
            "get": {
                "tags": ["Events"],
                "summary": "Category color palette",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/events/export": {
            "get": {
                "tags": ["Events"],
                "summary": "Export the filtered event list",
                "security": [{"Bearer": []}],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "required": true, "enum": ["csv", "pdf"]},
                    {"name": "q", "in": "query", "type": "string"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "date", "in": "query", "type": "string", "format": "date"},
                    {"name": "time", "in": "query", "type": "string"},
                    {"name": "scope", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "403": {"description": "Role not allowed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/dashboard/{role}": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Role dashboard",
                "security": [{"Bearer": []}],
                "parameters": [
                    {"name": "role", "in": "path", "type": "string", "required": true, "enum": ["admin", "organizer", "attendee", "stakeholder"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Sign in required", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role not allowed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "EventView": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "category": {"type": "string"},
                "categoryColor": {"type": "string"},
                "location": {"type": "string"},
                "description": {"type": "string"},
                "start": {"type": "string", "format": "date-time"},
                "end": {"type": "string", "format": "date-time"},
                "date": {"type": "string", "description": "YYYY-MM-DD or N/A"},
                "time": {"type": "string", "description": "HH:MM or N/A"},
                "organizerName": {"type": "string"},
                "organizationName": {"type": "string"},
                "sponsorName": {"type": "string"},
                "capacity": {"type": "integer"},
                "registrations": {"type": "integer"},
                "seatsLeft": {"type": "integer"},
                "feeLabel": {"type": "string"}
            }
        },
        "CalendarCell": {
            "type": "object",
            "properties": {
                "dayNumber": {"type": "integer"},
                "inCurrentMonth": {"type": "boolean"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/EventView"}}
            }
        },
        "MonthPosition": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "month": {"type": "integer"}
            }
        },
        "CalendarResponse": {
            "type": "object",
            "properties": {
                "year": {"type": "integer"},
                "month": {"type": "integer"},
                "weekStart": {"type": "string"},
                "weekdays": {"type": "array", "items": {"type": "string"}},
                "weeks": {
                    "type": "array",
                    "items": {"type": "array", "items": {"$ref": "#/definitions/CalendarCell"}}
                },
                "prev": {"$ref": "#/definitions/MonthPosition"},
                "next": {"$ref": "#/definitions/MonthPosition"},
                "stale": {"type": "boolean"}
            }
        },
        "EventListResponse": {
            "type": "object",
            "properties": {
                "scope": {"type": "string"},
                "filter": {"type": "object"},
                "events": {"type": "array", "items": {"$ref": "#/definitions/EventView"}},
                "totalPages": {"type": "integer"},
                "totalCount": {"type": "integer"},
                "state": {"type": "string"},
                "stale": {"type": "boolean"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
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
        "CalendarEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/CalendarResponse"},
                "meta": {"type": "object"}
            }
        },
        "EventListEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/EventListResponse"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
