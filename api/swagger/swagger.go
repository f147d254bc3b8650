package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "TIMP Schedule API",
        "description": "Weekly class schedules aggregated from the TIMP booking platform",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Schedule", "description": "Weekly session schedule"},
        {"name": "Centers", "description": "Center discovery and connection check"},
        {"name": "Operations", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness check, pings the cache when enabled",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Cache unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Operations"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/metrics/summary": {
            "get": {
                "tags": ["Operations"],
                "summary": "Aggregated service counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/events": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Sessions of a week",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/EventsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Missing configuration", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "502": {"description": "Provider error or rejected credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "504": {"description": "Provider timed out", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/week": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Rendered weekly schedule",
                "parameters": [
                    {"name": "week_offset", "in": "query", "type": "integer"},
                    {"name": "center_uuid", "in": "query", "type": "string"},
                    {"name": "selected_date", "in": "query", "type": "string", "format": "date"},
                    {"name": "expanded", "in": "query", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/schedule/week/export": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Download a weekly schedule",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "week_offset", "in": "query", "type": "integer"},
                    {"name": "center_uuid", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}}
                }
            }
        },
        "/api/v1/centers": {
            "get": {
                "tags": ["Centers"],
                "summary": "Centers available to the API key",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/connection/check": {
            "get": {
                "tags": ["Centers"],
                "summary": "Verify credentials by counting this week's sessions",
                "parameters": [
                    {"name": "center_uuid", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "EventsRequest": {
            "type": "object",
            "properties": {
                "center_uuid": {"type": "string"},
                "week_offset": {"type": "integer"}
            }
        },
        "Session": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "activity_uuid": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "starts_at": {"type": "string", "format": "date-time"},
                "ends_at": {"type": "string", "format": "date-time"},
                "professional": {"type": "object", "properties": {"name": {"type": "string"}}},
                "activity": {"type": "object", "properties": {"name": {"type": "string"}, "description": {"type": "string"}}},
                "room": {"type": "object", "properties": {"name": {"type": "string"}}},
                "capacity": {"type": "integer"},
                "bookings_count": {"type": "integer"},
                "status": {"type": "string", "enum": ["active", "cancelled"]}
            }
        },
        "WeekWindow": {
            "type": "object",
            "properties": {
                "start_date": {"type": "string", "format": "date"},
                "end_date": {"type": "string", "format": "date"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
