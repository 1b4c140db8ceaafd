// Package docs Readlytics API
//
// Readlytics is a read-only readership analytics service that loads
// reader, article and author datasets, joins and filters them, and
// serves summary aggregates for dashboard rendering.
//
//	Schemes: http, https
//	Host: localhost:8080
//	BasePath: /api/v1
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs

import "github.com/swaggo/swag"

// @title Readlytics API
// @version 1.0
// @description A read-only readership analytics dashboard backend

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func init() {
	swag.Register(swag.Name, &swag.Spec{
		InfoInstanceName: "swagger",
		SwaggerTemplate:  docTemplate,
	})
}

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Readlytics API",
        "description": "A read-only readership analytics dashboard backend",
        "version": "1.0.0",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        }
    },
    "host": "localhost:8080",
    "basePath": "/api/v1",
    "paths": {
        "/summary": {
            "get": {
                "summary": "Dashboard KPIs",
                "description": "Distinct reader count and null-safe total reads over the filtered reader set",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "country", "in": "query", "type": "string", "description": "Exact country filter, 'All' for no filter"},
                    {"name": "industry", "in": "query", "type": "string", "description": "Exact industry filter, 'All' for no filter"},
                    {"name": "window", "in": "query", "type": "string", "enum": ["all", "7d", "30d", "90d"], "description": "Time window over last access dates"}
                ],
                "responses": {
                    "200": {"description": "KPI summary"},
                    "400": {"description": "Invalid filter parameters"},
                    "500": {"description": "Dataset load failure"}
                }
            }
        },
        "/filters": {
            "get": {
                "summary": "Filter options",
                "description": "Distinct countries and industries present in the reader table, plus valid window names",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Available filter values"}
                }
            }
        },
        "/dataset/info": {
            "get": {
                "summary": "Dataset snapshot info",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Backend name, row counts and load time"}
                }
            }
        },
        "/refresh": {
            "post": {
                "summary": "Reload the dataset from its source",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Reload completed"},
                    "500": {"description": "Reload failed"}
                }
            }
        },
        "/readers/positions": {
            "get": {
                "summary": "Top reader job positions by row count",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "country", "in": "query", "type": "string"},
                    {"name": "industry", "in": "query", "type": "string"},
                    {"name": "window", "in": "query", "type": "string", "enum": ["all", "7d", "30d", "90d"]}
                ],
                "responses": {"200": {"description": "Ranked positions"}}
            }
        },
        "/readers/activity": {
            "get": {
                "summary": "Reader counts per access source",
                "description": "Empty when the source has no activity column",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Activity breakdown"}}
            }
        },
        "/readers/countries": {
            "get": {
                "summary": "Reader counts per country",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Country counts"}}
            }
        },
        "/articles": {
            "get": {
                "summary": "Raw joined article listing with OData-style querying",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "$filter", "in": "query", "type": "string", "description": "e.g. article_reads gt 100 and contains(title, 'tax')"},
                    {"name": "$orderby", "in": "query", "type": "string", "description": "field [asc|desc]"},
                    {"name": "$search", "in": "query", "type": "string", "description": "Comma-separated terms, OR logic"},
                    {"name": "$select", "in": "query", "type": "string"},
                    {"name": "$top", "in": "query", "type": "integer"},
                    {"name": "$skip", "in": "query", "type": "integer"},
                    {"name": "window", "in": "query", "type": "string", "enum": ["all", "7d", "30d", "90d"]}
                ],
                "responses": {
                    "200": {"description": "Matching joined articles"},
                    "400": {"description": "Invalid query expression"}
                }
            }
        },
        "/articles/topics": {
            "get": {
                "summary": "Top topics by summed article reads",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Topic totals"}}
            }
        },
        "/articles/keywords": {
            "get": {
                "summary": "Most frequent title terms, stopword-filtered",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Term frequencies"}}
            }
        },
        "/articles/languages": {
            "get": {
                "summary": "Detected title languages",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Language counts"}}
            }
        },
        "/articles/top": {
            "get": {
                "summary": "Top individual articles by reads",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Ranked articles"}}
            }
        },
        "/authors/top": {
            "get": {
                "summary": "Top authors by summed article reads",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Author totals"}}
            }
        },
        "/refresher/status": {
            "get": {
                "summary": "Background reloader status",
                "produces": ["application/json"],
                "responses": {"200": {"description": "Running flag and last reload time"}}
            }
        },
        "/refresher/reload": {
            "post": {
                "summary": "Force an immediate dataset reload",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "Reload completed"},
                    "500": {"description": "Reload failed"}
                }
            }
        }
    }
}`
