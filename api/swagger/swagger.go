package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "DK Academy Registration API",
        "description": "Enrollment form backend: registrations, file uploads, admin roster",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Registrations", "description": "Enrollment form submissions"},
        {"name": "Uploads", "description": "Photo and identity proof blobs"},
        {"name": "Authentication", "description": "Admin dashboard session"}
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
        "/api/register": {
            "post": {
                "tags": ["Registrations"],
                "summary": "Submit a registration",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegistrationDraft"}}
                ],
                "responses": {
                    "200": {"description": "Stored record", "schema": {"$ref": "#/definitions/Registration"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Persistence failure", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/registrations": {
            "get": {
                "tags": ["Registrations"],
                "summary": "List registrations, newest first",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Registration"}}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/registrations/export": {
            "get": {
                "tags": ["Registrations"],
                "summary": "Download roster as CSV or PDF",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "format", "in": "query", "required": true, "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/upload": {
            "post": {
                "tags": ["Uploads"],
                "summary": "Upload a raw file body",
                "parameters": [
                    {"name": "filename", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Blob descriptor", "schema": {"$ref": "#/definitions/BlobDescriptor"}},
                    "400": {"description": "Missing filename", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/blobs/{path}": {
            "get": {
                "tags": ["Uploads"],
                "summary": "Fetch a stored blob",
                "parameters": [
                    {"name": "path", "in": "path", "required": true, "type": "string"},
                    {"name": "token", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File contents"},
                    "401": {"description": "Invalid or expired token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Unknown blob", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate admin",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Access token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/admin/session": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Inspect the current admin session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Session claims", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "RegistrationDraft": {
            "type": "object",
            "required": ["type", "studentName"],
            "properties": {
                "type": {"type": "string", "enum": ["student", "member"]},
                "studentName": {"type": "string"},
                "dob": {"type": "string"},
                "age": {"type": "string"},
                "sex": {"type": "string"},
                "nationality": {"type": "string"},
                "schoolName": {"type": "string"},
                "siblingsName": {"type": "string"},
                "regNo": {"type": "string"},
                "occupation": {"type": "string"},
                "area": {"type": "string"},
                "fatherName": {"type": "string"},
                "fatherContact": {"type": "string"},
                "fatherEmail": {"type": "string"},
                "motherName": {"type": "string"},
                "motherContact": {"type": "string"},
                "motherEmail": {"type": "string"},
                "tshirtSize": {"type": "string", "enum": ["XS", "S", "M", "L", "XL", "XXL"]},
                "sessionsPerMonth": {"type": "string"},
                "enrollmentDate": {"type": "string"},
                "feesPerMonth": {"type": "string"},
                "squadLevel": {"type": "string", "enum": ["Beginner", "Intermediate", "Advanced", "Elite"]},
                "studentSignature": {"type": "string"},
                "declarationDate": {"type": "string"},
                "proofType": {"type": "string"},
                "photoUrl": {"type": "string"},
                "proofUrl": {"type": "string"}
            }
        },
        "Registration": {
            "allOf": [
                {"$ref": "#/definitions/RegistrationDraft"},
                {
                    "type": "object",
                    "properties": {
                        "id": {"type": "integer"},
                        "createdAt": {"type": "string", "format": "date-time"}
                    }
                }
            ]
        },
        "BlobDescriptor": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "pathname": {"type": "string"},
                "contentType": {"type": "string"},
                "size": {"type": "integer"}
            }
        },
        "AdminLoginRequest": {
            "type": "object",
            "required": ["phone", "password"],
            "properties": {
                "phone": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "details": {"type": "string"}
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
