// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package docs registers the OpenAPI document served at /swagger/doc.json.
//
// The document mirrors the swag annotations on cmd/reelmatch and
// internal/api. Regenerate with:
//
//	swag init -g cmd/reelmatch/main.go -o docs --outputTypes go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "AGPL-3.0-or-later",
            "url": "https://www.gnu.org/licenses/agpl-3.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Reports the loaded model and poster lookup mode",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "Service is healthy",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/models.APIResponse"},
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {"$ref": "#/definitions/models.HealthStatus"}
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/health/live": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {
                    "200": {
                        "description": "Process is alive",
                        "schema": {"$ref": "#/definitions/models.APIResponse"}
                    }
                }
            }
        },
        "/movies": {
            "get": {
                "description": "Returns every title in the loaded model in catalog order",
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "List catalog titles",
                "responses": {
                    "200": {
                        "description": "Catalog titles",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/models.APIResponse"},
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {"type": "array", "items": {"type": "string"}}
                                    }
                                }
                            ]
                        }
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {"$ref": "#/definitions/models.APIResponse"}
                    }
                }
            }
        },
        "/recommend": {
            "get": {
                "description": "Returns the five most similar titles with poster URLs",
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Recommend movies",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Exact catalog title",
                        "name": "movie",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Recommendations",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/models.APIResponse"},
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {"type": "array", "items": {"$ref": "#/definitions/recommend.Recommendation"}}
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Missing movie parameter",
                        "schema": {"$ref": "#/definitions/models.APIResponse"}
                    },
                    "404": {
                        "description": "Title not in catalog",
                        "schema": {"$ref": "#/definitions/models.APIResponse"}
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {"$ref": "#/definitions/models.APIResponse"}
                    }
                }
            }
        },
        "/similar": {
            "get": {
                "description": "Returns up to k neighbours with their cosine similarity scores",
                "produces": ["application/json"],
                "tags": ["recommendations"],
                "summary": "Nearest neighbours",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Exact catalog title",
                        "name": "movie",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "default": 10,
                        "description": "Neighbour count (1-50)",
                        "name": "k",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Neighbours",
                        "schema": {
                            "allOf": [
                                {"$ref": "#/definitions/models.APIResponse"},
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {"type": "array", "items": {"$ref": "#/definitions/recommend.SimilarMovie"}}
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Invalid query parameters",
                        "schema": {"$ref": "#/definitions/models.APIResponse"}
                    },
                    "404": {
                        "description": "Title not in catalog",
                        "schema": {"$ref": "#/definitions/models.APIResponse"}
                    },
                    "429": {
                        "description": "Rate limit exceeded",
                        "schema": {"$ref": "#/definitions/models.APIResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "models.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"}
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/models.APIError"},
                "metadata": {"$ref": "#/definitions/models.Metadata"},
                "status": {"type": "string"}
            }
        },
        "models.HealthStatus": {
            "type": "object",
            "properties": {
                "artifact_built_at": {"type": "string"},
                "artifact_version": {"type": "integer"},
                "movies": {"type": "integer"},
                "poster_lookups": {"type": "string"},
                "status": {"type": "string"},
                "uptime_seconds": {"type": "number"},
                "version": {"type": "string"},
                "vocabulary_size": {"type": "integer"}
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "query_time_ms": {"type": "integer"},
                "request_id": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "recommend.Recommendation": {
            "type": "object",
            "properties": {
                "poster_url": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "recommend.SimilarMovie": {
            "type": "object",
            "properties": {
                "movie_id": {"type": "integer"},
                "score": {"type": "number"},
                "title": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds the document metadata. Host and Schemes stay empty so
// the UI targets whichever address served it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Reelmatch API",
	Description:      "Content-based movie recommendations over the TMDB 5000 catalog.\nTitles are matched exactly and case-sensitively.\nPoster URLs come from OMDb when an API key is configured.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
