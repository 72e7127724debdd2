// Package docs holds the swagger document served at /swagger/*any.
// Regenerate with `swag init` after changing controller annotations.
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
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/assessments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["assessments"],
                "summary": "List assessments",
                "parameters": [
                    {"type": "integer", "description": "page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "difficulty tier", "name": "difficulty", "in": "query"},
                    {"type": "string", "description": "name contains", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.PageResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assessments"],
                "summary": "Create an assessment with its questions",
                "parameters": [
                    {"description": "assessment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.AssessmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "409": {"description": "name taken", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/assessments/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["assessments"],
                "summary": "Get an assessment with its questions",
                "parameters": [
                    {"type": "string", "description": "assessment id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assessments"],
                "summary": "Update an assessment; questions are matched by id",
                "parameters": [
                    {"type": "string", "description": "assessment id", "name": "id", "in": "path", "required": true},
                    {"description": "assessment", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.AssessmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["assessments"],
                "summary": "Delete an assessment with its questions",
                "parameters": [
                    {"type": "string", "description": "assessment id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/assessments/{id}/questions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["assessments"],
                "summary": "Append one question",
                "parameters": [
                    {"type": "string", "description": "assessment id", "name": "id", "in": "path", "required": true},
                    {"description": "question", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.QuestionInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/assessments/{id}/questions/{questionId}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["assessments"],
                "summary": "Delete one question",
                "parameters": [
                    {"type": "string", "description": "assessment id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "question id", "name": "questionId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/assessments/{id}/import": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Columns: Question, A, B, C, D, Answer and optional E. The whole sheet is rejected on the first bad row.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["assessments"],
                "summary": "Import questions from a CSV sheet",
                "parameters": [
                    {"type": "string", "description": "assessment id", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "question sheet", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "category for every question", "name": "category", "in": "formData"},
                    {"type": "string", "description": "EASY, MEDIUM or HARD", "name": "difficulty", "in": "formData"},
                    {"type": "string", "description": "comma separated tags", "name": "tags", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/util.Response"}},
                    "400": {"description": "row and column of the first bad cell", "schema": {"$ref": "#/definitions/util.Response"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/assessments/{id}/submit": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Submit answers for grading",
                "parameters": [
                    {"type": "string", "description": "assessment id", "name": "id", "in": "path", "required": true},
                    {"description": "chosen answers", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.SubmissionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.UserResult"}},
                    "400": {"description": "empty or foreign answers", "schema": {"$ref": "#/definitions/util.Response"}},
                    "429": {"description": "cooldown active", "schema": {"$ref": "#/definitions/util.Response"}}
                }
            }
        },
        "/api/assessments/{id}/results": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Results of one assessment",
                "parameters": [
                    {"type": "string", "description": "assessment id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.PageResponse"}}
                }
            }
        },
        "/api/users/{userId}/results": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Results of one user",
                "parameters": [
                    {"type": "string", "description": "user id", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/util.PageResponse"}}
                }
            }
        },
        "/api/users/{userId}/results/{assessmentId}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["results"],
                "summary": "Latest result of a user for an assessment",
                "parameters": [
                    {"type": "string", "description": "user id", "name": "userId", "in": "path", "required": true},
                    {"type": "string", "description": "assessment id", "name": "assessmentId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.UserResult"}}
                }
            }
        }
    },
    "definitions": {
        "util.Response": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "util.PageResponse": {
            "type": "object",
            "properties": {
                "list": {},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "service.AnswerInput": {
            "type": "object",
            "required": ["answerText"],
            "properties": {
                "answerText": {"type": "string"},
                "isCorrect": {"type": "boolean"},
                "feedback": {"type": "string"}
            }
        },
        "service.QuestionInput": {
            "type": "object",
            "required": ["title", "questionType", "answers"],
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "questionType": {"type": "string", "enum": ["SINGLE_CHOICE", "MULTIPLE_CHOICE", "TRUE_FALSE"]},
                "difficulty": {"type": "string", "enum": ["EASY", "MEDIUM", "HARD"]},
                "category": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "answers": {"type": "array", "minItems": 2, "maxItems": 4, "items": {"$ref": "#/definitions/service.AnswerInput"}}
            }
        },
        "service.AssessmentRequest": {
            "type": "object",
            "required": ["name", "description", "instructions", "difficulty"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "instructions": {"type": "string"},
                "difficulty": {"type": "string", "enum": ["GRADUATE", "ENTRY", "JUNIOR", "INTERMEDIATE", "SENIOR", "C_LEVEL"]},
                "duration": {"type": "integer"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "skills": {"type": "array", "items": {"type": "string"}},
                "questions": {"type": "array", "items": {"$ref": "#/definitions/service.QuestionInput"}}
            }
        },
        "service.SubmittedAnswer": {
            "type": "object",
            "required": ["questionId", "answerId"],
            "properties": {
                "questionId": {"type": "string"},
                "answerId": {"type": "string"}
            }
        },
        "service.SubmissionRequest": {
            "type": "object",
            "required": ["answers"],
            "properties": {
                "answers": {"type": "array", "items": {"$ref": "#/definitions/service.SubmittedAnswer"}}
            }
        },
        "model.GradedAnswer": {
            "type": "object",
            "properties": {
                "questionId": {"type": "string"},
                "answerId": {"type": "string"},
                "correct": {"type": "boolean"}
            }
        },
        "model.UserResult": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "assessmentId": {"type": "string"},
                "totalQuestions": {"type": "integer"},
                "score": {"type": "integer"},
                "percentage": {"type": "integer"},
                "status": {"type": "string", "enum": ["PASS", "FAIL"]},
                "results": {"type": "array", "items": {"$ref": "#/definitions/model.GradedAnswer"}},
                "cooldown": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Job Board Assessments API",
	Description:      "Assessment authoring, CSV question import and grading for the job board.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
