// Package swagger carries the hand-maintained OpenAPI document served at
// /docs in development.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Sistema Escolar API",
        "description": "Enrollment, reference tables, ledger and audit trail for a small school",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Authentication", "description": "Login and password recovery"},
        {"name": "References", "description": "Turmas, cursos, materiais, valores, estoque"},
        {"name": "Enrollments", "description": "Student registration (cadastro)"},
        {"name": "Payments", "description": "Ledger (financeiro)"},
        {"name": "Users", "description": "Operator accounts"},
        {"name": "Audit", "description": "Append-only mutation trail"},
        {"name": "CEP", "description": "Postal code lookup"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {"200": {"description": "Ready"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate operator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/recover": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Recover a password via the master code",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecoverRequest"}}
                ],
                "responses": {
                    "204": {"description": "Password replaced"},
                    "400": {"description": "Invalid recovery code"},
                    "404": {"description": "User not found"}
                }
            }
        },
        "/referencias/{kind}": {
            "get": {
                "tags": ["References"],
                "summary": "List selection options",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string", "enum": ["turmas", "cursos", "materiais", "valores", "estoque"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["References"],
                "summary": "Add a record (master only)",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Requires master role"}
                }
            }
        },
        "/referencias/{kind}/itens": {
            "get": {
                "tags": ["References"],
                "summary": "List full records",
                "parameters": [
                    {"name": "kind", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/matriculas": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List enrollment summaries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Register a student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEnrollmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/matriculas/export": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Export the roster as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Document"}
                }
            }
        },
        "/matriculas/{matricula}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Fetch one enrollment",
                "parameters": [
                    {"name": "matricula", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Enrollments"],
                "summary": "Edit an enrollment (master only)",
                "parameters": [
                    {"name": "matricula", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "204": {"description": "Updated"},
                    "403": {"description": "Requires master role"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/financeiro": {
            "get": {
                "tags": ["Payments"],
                "summary": "List the ledger",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Payments"],
                "summary": "Append a ledger entry",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            }
        },
        "/financeiro/anexos": {
            "post": {
                "tags": ["Payments"],
                "summary": "Upload a payment attachment",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "arquivo", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "201": {"description": "Stored"}
                }
            }
        },
        "/financeiro/anexos/{anexo}": {
            "get": {
                "tags": ["Payments"],
                "summary": "Download a payment attachment",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "anexo", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Attachment"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/financeiro/{id}/recibo": {
            "get": {
                "tags": ["Payments"],
                "summary": "Download a PDF receipt",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Document"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/usuarios": {
            "get": {
                "tags": ["Users"],
                "summary": "List operators",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Register an operator (master only)",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Requires master role"},
                    "409": {"description": "Username already exists"}
                }
            }
        },
        "/logs": {
            "get": {
                "tags": ["Audit"],
                "summary": "List audit entries",
                "parameters": [
                    {"name": "usuario", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/cep/{codigo}": {
            "get": {
                "tags": ["CEP"],
                "summary": "Resolve a postal code",
                "parameters": [
                    {"name": "codigo", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Unknown code"},
                    "502": {"description": "Lookup service unavailable"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RecoverRequest": {
            "type": "object",
            "required": ["username", "code", "new_password"],
            "properties": {
                "username": {"type": "string"},
                "code": {"type": "string"},
                "new_password": {"type": "string"}
            }
        },
        "CreateEnrollmentRequest": {
            "type": "object",
            "required": ["nome"],
            "properties": {
                "nome": {"type": "string"},
                "data_nascimento": {"type": "string", "example": "15/06/2010"},
                "responsavel": {"type": "string"},
                "cpf": {"type": "string"},
                "rg": {"type": "string"},
                "tel_principal": {"type": "string"},
                "tel_recado": {"type": "string"},
                "cep": {"type": "string"},
                "logradouro": {"type": "string"},
                "numero": {"type": "string"},
                "complemento": {"type": "string"},
                "bairro": {"type": "string"},
                "cidade": {"type": "string"},
                "email": {"type": "string"},
                "instagram": {"type": "string"},
                "turma": {"type": "string", "example": "2 - Ballet"},
                "curso": {"type": "string"},
                "material": {"type": "string"},
                "vencimento": {"type": "string"},
                "valor": {"type": "string"}
            }
        },
        "CreatePaymentRequest": {
            "type": "object",
            "required": ["matricula", "valor"],
            "properties": {
                "matricula": {"type": "integer"},
                "valor": {"type": "string"},
                "vencimento": {"type": "string"},
                "forma_pagamento": {"type": "string"},
                "anexo": {"type": "string"}
            }
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
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
