package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Timetable API",
        "description": "Computed timetable views, occupancy answers and the reschedule-request workflow for generated schedules.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Timetable", "description": "Computed weekly grids, blocks and diagnostics"},
        {"name": "Occupancy", "description": "Point-in-time room occupancy and faculty presence"},
        {"name": "Exports", "description": "Rendered timetable artifacts"},
        {"name": "Requests", "description": "Reschedule-request workflow"}
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
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/schedules/{id}/timetable": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Weekly grid for one room, faculty member or section",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "view", "in": "query", "type": "string", "required": true, "enum": ["room", "faculty", "section"]},
                    {"name": "value", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Placed grid", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid view or value"},
                    "503": {"description": "Allocations unavailable"}
                }
            }
        },
        "/schedules/{id}/timetable/diagnostics": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Allocation rows excluded from computation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "Diagnostics", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Admin only"}
                }
            }
        },
        "/schedules/{id}/blocks": {
            "get": {
                "tags": ["Timetable"],
                "summary": "Merged export-ready blocks for one view",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "view", "in": "query", "type": "string", "required": true},
                    {"name": "value", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Merged blocks", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{id}/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Render a timetable view as csv, pdf or ics",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "view", "in": "query", "type": "string", "required": true},
                    {"name": "value", "in": "query", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string", "required": true, "enum": ["csv", "pdf", "ics"]}
                ],
                "responses": {
                    "200": {"description": "Signed download URL", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{token}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a rendered artifact via signed token",
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "produces": ["application/octet-stream"],
                "responses": {
                    "200": {"description": "Artifact bytes"},
                    "403": {"description": "Invalid or expired token"},
                    "404": {"description": "Artifact cleaned up"}
                }
            }
        },
        "/schedules/{id}/rooms/{room}/occupancy": {
            "get": {
                "tags": ["Occupancy"],
                "summary": "Whether a room is in use right now",
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "room", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OCCUPIED, AVAILABLE or UNKNOWN", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/faculty/{name}/presence": {
            "get": {
                "tags": ["Occupancy"],
                "summary": "Presence badge for a faculty member",
                "parameters": [
                    {"name": "name", "in": "path", "type": "string", "required": true},
                    {"name": "lastSeen", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "ONLINE, AWAY or OFFLINE", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests": {
            "get": {
                "tags": ["Requests"],
                "summary": "List reschedule requests",
                "parameters": [
                    {"name": "scheduleId", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["PENDING", "APPROVED", "REJECTED"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Requests visible to the caller", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Requests"],
                "summary": "Submit a reschedule request",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateRescheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Stored request plus advisory conflicts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/requests/{id}": {
            "get": {
                "tags": ["Requests"],
                "summary": "Fetch one reschedule request",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown request"}
                }
            }
        },
        "/requests/{id}/approve": {
            "post": {
                "tags": ["Requests"],
                "summary": "Approve a pending request and move the allocation",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/DecideRequest"}}
                ],
                "responses": {
                    "200": {"description": "Approved request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflicts found or already decided"}
                }
            }
        },
        "/requests/{id}/reject": {
            "post": {
                "tags": ["Requests"],
                "summary": "Reject a pending request",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/DecideRequest"}}
                ],
                "responses": {
                    "200": {"description": "Rejected request", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Already decided"}
                }
            }
        }
    },
    "definitions": {
        "CreateRescheduleRequest": {
            "type": "object",
            "required": ["allocation_id", "proposed_day", "proposed_time", "proposed_room", "reason"],
            "properties": {
                "allocation_id": {"type": "integer"},
                "proposed_day": {"type": "string"},
                "proposed_time": {"type": "string"},
                "proposed_room": {"type": "string"},
                "proposed_building": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "DecideRequest": {
            "type": "object",
            "properties": {
                "note": {"type": "string"}
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
                "status": {"type": "integer"},
                "details": {"type": "object"}
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
