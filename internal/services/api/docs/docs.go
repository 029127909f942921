// Package docs holds the swagger spec served at /api/docs
package docs

import "github.com/swaggo/swag/v2"

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
        "/accounts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Every account with its calls and best-ever scores",
                "responses": {
                    "200": {"description": "ok", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Account"}}}
                }
            }
        },
        "/accounts/domains": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "Tracked account domains",
                "responses": {
                    "200": {"description": "ok", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/accounts/{domain}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Accounts"],
                "summary": "One account by external email domain",
                "parameters": [
                    {"type": "string", "example": "client.com", "description": "Account domain", "name": "domain", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.Account"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/errors.Wire"}}
                }
            }
        },
        "/reps": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reps"],
                "summary": "Sales reps with segment and tenure",
                "responses": {
                    "200": {"description": "ok", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Rep"}}}
                }
            }
        },
        "/reps/segments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reps"],
                "summary": "Rep count per segment",
                "responses": {
                    "200": {"description": "ok", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.SegmentCount"}}}
                }
            }
        },
        "/reps/{email}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reps"],
                "summary": "One rep by email",
                "parameters": [
                    {"type": "string", "description": "Rep email", "name": "email", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.Rep"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/errors.Wire"}}
                }
            }
        },
        "/evaluations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Evaluations"],
                "summary": "Most recent ledger entries",
                "parameters": [
                    {"type": "boolean", "description": "Only discovery (true) or only rejected (false) calls", "name": "discovery", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Page size, 1 to 500", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "ok", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Entry"}}}
                }
            }
        },
        "/evaluations/{callID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Evaluations"],
                "summary": "One ledger entry by call id",
                "parameters": [
                    {"type": "string", "description": "Call id", "name": "callID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "ok", "schema": {"$ref": "#/definitions/domain.Entry"}},
                    "404": {"description": "not found", "schema": {"$ref": "#/definitions/errors.Wire"}}
                }
            }
        },
        "/meta/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Health check",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/http.HealthResponse"}}}
            }
        },
        "/meta/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Readiness probe with dependency checks",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/http.ReadyResponse"}}}
            }
        },
        "/meta/version": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Build and version info",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/version.BuildInfo"}}}
            }
        },
        "/meta/summary": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Meta"],
                "summary": "Account and roster headline numbers",
                "responses": {"200": {"description": "ok", "schema": {"$ref": "#/definitions/http.SummaryResponse"}}}
            }
        }
    },
    "definitions": {
        "meddpicc.Scores": {
            "type": "object",
            "properties": {
                "metrics": {"type": "integer", "example": 3},
                "economic_buyer": {"type": "integer", "example": 2},
                "decision_criteria": {"type": "integer", "example": 4},
                "decision_process": {"type": "integer", "example": 3},
                "paper_process": {"type": "integer", "example": 2},
                "identify_pain": {"type": "integer", "example": 5},
                "champion": {"type": "integer", "example": 3},
                "competition": {"type": "integer", "example": 2},
                "overall_score": {"type": "number", "example": 3.0}
            }
        },
        "meddpicc.Notes": {
            "type": "object",
            "additionalProperties": {"type": "string"}
        },
        "domain.Call": {
            "type": "object",
            "properties": {
                "call_id": {"type": "string"},
                "call_date": {"type": "string", "format": "date-time"},
                "sales_rep": {"type": "string"},
                "external_participants": {"type": "array", "items": {"type": "string"}},
                "meddpicc_scores": {"$ref": "#/definitions/meddpicc.Scores"},
                "meddpicc_summary": {"type": "string"},
                "analysis_notes": {"$ref": "#/definitions/meddpicc.Notes"}
            }
        },
        "domain.Account": {
            "type": "object",
            "properties": {
                "domain": {"type": "string", "example": "client.com"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"},
                "calls": {"type": "array", "items": {"$ref": "#/definitions/domain.Call"}},
                "overall_meddpicc": {"$ref": "#/definitions/meddpicc.Scores"}
            }
        },
        "domain.Rep": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "alice@co.com"},
                "segment": {"type": "string", "example": "Enterprise"},
                "joining_date": {"type": "string", "format": "date-time"},
                "tenure_days": {"type": "integer", "example": 412},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "domain.SegmentCount": {
            "type": "object",
            "properties": {
                "segment": {"type": "string", "example": "Enterprise"},
                "reps": {"type": "integer", "example": 4}
            }
        },
        "domain.Entry": {
            "type": "object",
            "properties": {
                "call_id": {"type": "string"},
                "evaluated_at": {"type": "string", "format": "date-time"},
                "is_discovery": {"type": "boolean"},
                "reason": {"type": "string"}
            }
        },
        "errors.Wire": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "field": {"type": "string"}
            }
        },
        "http.HealthResponse": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "service": {"type": "string"},
                "started": {"type": "string"},
                "now": {"type": "string"},
                "uptime": {"type": "integer"}
            }
        },
        "http.ReadyResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "now": {"type": "string"},
                "checks": {"type": "array", "items": {"type": "object", "properties": {
                    "name": {"type": "string"}, "status": {"type": "string"}, "error": {"type": "string"}
                }}}
            }
        },
        "http.SummaryResponse": {
            "type": "object",
            "properties": {
                "accounts": {"type": "integer"},
                "discovery_calls": {"type": "integer"},
                "avg_best_overall": {"type": "number"},
                "reps": {"type": "integer"},
                "segments": {"type": "array", "items": {"$ref": "#/definitions/domain.SegmentCount"}}
            }
        },
        "version.BuildInfo": {
            "type": "object",
            "properties": {
                "service": {"type": "string"},
                "version": {"type": "string"},
                "commit": {"type": "string"},
                "date": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "introspect API",
	Description:      "Read API over discovery call evaluations, accounts and the sales rep roster.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
