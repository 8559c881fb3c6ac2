// Package docs registers the OpenAPI document for the swagger UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "responses": {"200": {"description": "Token and user"}}
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "Current user",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Claims"}}
            }
        },
        "/sync/invoice": {
            "post": {
                "tags": ["sync"],
                "summary": "Sync one invoice from Daftra",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Sync outcome"}}
            }
        },
        "/sync/batch": {
            "post": {
                "tags": ["sync"],
                "summary": "Sync all new invoices from Daftra",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Batch tally"}}
            }
        },
        "/storage/status": {
            "get": {
                "tags": ["storage"],
                "summary": "Storage health",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Storage report"}}
            }
        },
        "/invoices": {
            "get": {
                "tags": ["invoices"],
                "summary": "List invoices",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Invoices"}}
            },
            "post": {
                "tags": ["invoices"],
                "summary": "Create an invoice manually",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created invoice"}}
            }
        },
        "/invoices/{id}": {
            "get": {
                "tags": ["invoices"],
                "summary": "Get invoice by ID",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Invoice detail"}}
            },
            "put": {
                "tags": ["invoices"],
                "summary": "Update an invoice",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Updated invoice"}}
            },
            "delete": {
                "tags": ["invoices"],
                "summary": "Delete an invoice",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Deleted"}}
            }
        },
        "/invoices/{id}/files": {
            "get": {
                "tags": ["invoices"],
                "summary": "List stored files for an invoice",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Files"}}
            }
        },
        "/invoices/{id}/files/{kind}": {
            "get": {
                "tags": ["invoices"],
                "summary": "Download a stored PDF",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "PDF content"}}
            }
        },
        "/invoices/{id}/audit": {
            "get": {
                "tags": ["invoices"],
                "summary": "Audit trail for an invoice",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Audit entries"}}
            }
        },
        "/reviews": {
            "post": {
                "tags": ["reviews"],
                "summary": "Submit a verdict",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Recorded verdict"}}
            }
        },
        "/reviews/document/{documentId}": {
            "get": {
                "tags": ["reviews"],
                "summary": "List verdicts for a document",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Verdicts"}}
            }
        },
        "/reviews/status/{documentId}": {
            "get": {
                "tags": ["reviews"],
                "summary": "Department status for a document",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Per-department status"}}
            }
        },
        "/projects": {
            "get": {
                "tags": ["projects"],
                "summary": "List projects",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Projects"}}
            },
            "post": {
                "tags": ["projects"],
                "summary": "Create a project",
                "security": [{"BearerAuth": []}],
                "responses": {"201": {"description": "Created project"}}
            }
        },
        "/projects/{id}": {
            "get": {
                "tags": ["projects"],
                "summary": "Get project by ID",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Project"}}
            }
        },
        "/projects/{id}/gallery/sync": {
            "post": {
                "tags": ["projects"],
                "summary": "Sync the project gallery",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "Synced images"}}
            }
        },
        "/reports/invoices.xlsx": {
            "get": {
                "tags": ["reports"],
                "summary": "Export the invoice register",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "XLSX workbook"}}
            }
        }
    }
}`

// SwaggerInfo holds exported swagger info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Alazab Construction Invoice API",
	Description:      "Invoice synchronization and department review service for Alazab Construction.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
