// Package docs registers the OpenAPI document served under /swagger/.
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
        "/v1/competitions": {
            "get": {
                "tags": [
                    "competitions"
                ],
                "summary": "List competitions",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "name": "offset",
                        "in": "query"
                    }
                ]
            },
            "post": {
                "tags": [
                    "competitions"
                ],
                "summary": "Create a competition (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/v1/competitions/{competition_id}": {
            "get": {
                "tags": [
                    "competitions"
                ],
                "summary": "Get a competition with its categories",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "patch": {
                "tags": [
                    "competitions"
                ],
                "summary": "Update a competition (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "competitions"
                ],
                "summary": "Delete a competition and everything under it (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/competitions/{competition_id}/status": {
            "post": {
                "tags": [
                    "competitions"
                ],
                "summary": "Move a competition to its next status (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/competitions/{competition_id}/categories": {
            "post": {
                "tags": [
                    "competitions"
                ],
                "summary": "Create a category (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/categories/{category_id}": {
            "patch": {
                "tags": [
                    "competitions"
                ],
                "summary": "Update a category (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "category_id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "competitions"
                ],
                "summary": "Delete a category and its photos (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "category_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/photos": {
            "post": {
                "tags": [
                    "submissions"
                ],
                "summary": "Upload a photo (multipart/form-data)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/v1/photos/{photo_id}": {
            "get": {
                "tags": [
                    "submissions"
                ],
                "summary": "Get a photo",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "photo_id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "patch": {
                "tags": [
                    "submissions"
                ],
                "summary": "Edit a pending photo (owner)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "photo_id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "submissions"
                ],
                "summary": "Delete a pending photo (owner)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "photo_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/me/photos": {
            "get": {
                "tags": [
                    "submissions"
                ],
                "summary": "List the caller's photos",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "name": "offset",
                        "in": "query"
                    }
                ]
            }
        },
        "/v1/competitions/{competition_id}/submission-counts": {
            "get": {
                "tags": [
                    "submissions"
                ],
                "summary": "Per-category submission counts and remaining quota for the caller",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/photos/{photo_id}/votes": {
            "post": {
                "tags": [
                    "voting"
                ],
                "summary": "Vote for an approved photo",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "photo_id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "get": {
                "tags": [
                    "voting"
                ],
                "summary": "Vote count and caller vote status",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "photo_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/competitions/{competition_id}/photos": {
            "get": {
                "tags": [
                    "voting"
                ],
                "summary": "List approved photos with vote counts",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "name": "category_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "name": "sort",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "name": "order",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "name": "offset",
                        "in": "query"
                    }
                ]
            }
        },
        "/v1/competitions/{competition_id}/voting-stats": {
            "get": {
                "tags": [
                    "voting"
                ],
                "summary": "Vote and photo totals per category",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/competitions/{competition_id}/live": {
            "get": {
                "tags": [
                    "voting"
                ],
                "summary": "Websocket feed of votes and moderation outcomes",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/photos/{photo_id}/reports": {
            "post": {
                "tags": [
                    "moderation"
                ],
                "summary": "Report a photo",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "photo_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/photos/pending": {
            "get": {
                "tags": [
                    "moderation"
                ],
                "summary": "List photos awaiting moderation (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "name": "category_id",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "name": "offset",
                        "in": "query"
                    }
                ]
            }
        },
        "/v1/admin/photos/bulk": {
            "post": {
                "tags": [
                    "moderation"
                ],
                "summary": "Approve, reject or delete up to 100 photos (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/v1/admin/photos/{photo_id}/approve": {
            "post": {
                "tags": [
                    "moderation"
                ],
                "summary": "Approve a pending photo (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "photo_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/photos/{photo_id}/reject": {
            "post": {
                "tags": [
                    "moderation"
                ],
                "summary": "Reject a pending photo (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "photo_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/photos/{photo_id}": {
            "delete": {
                "tags": [
                    "moderation"
                ],
                "summary": "Delete a photo (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "photo_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/reports": {
            "get": {
                "tags": [
                    "moderation"
                ],
                "summary": "List reports (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "name": "competition_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "name": "photo_id",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "name": "limit",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "name": "offset",
                        "in": "query"
                    }
                ]
            }
        },
        "/v1/admin/reports/{report_id}/resolve": {
            "post": {
                "tags": [
                    "moderation"
                ],
                "summary": "Resolve or dismiss a report (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "name": "report_id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/admin/stats": {
            "get": {
                "tags": [
                    "moderation"
                ],
                "summary": "Moderation counts by status (admin)",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": [
                    "platform"
                ],
                "summary": "Liveness check",
                "produces": [
                    "application/json"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Photo Contest API",
	Description:      "Competitions, photo submissions, voting and moderation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
