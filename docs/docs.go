// Package docs registra la definición OpenAPI que sirve /swagger.
// Regenerar con: swag init -g cmd/api/main.go -o docs
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
        "/api/pacient": {
            "get": {
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Listar pacientes",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/patients.listPatientsResponse"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Crear paciente",
                "parameters": [{"description": "Datos del paciente", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/patients.CreateInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/patients.createPatientResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/validation.Error"}}
                }
            }
        },
        "/api/pacient/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["patients"],
                "summary": "Actualizar paciente",
                "parameters": [
                    {"type": "string", "description": "ID del paciente", "name": "id", "in": "path", "required": true},
                    {"description": "Nuevos datos", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/patients.updatePatientRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/patients.messageResponse"}}}
            },
            "delete": {
                "tags": ["patients"],
                "summary": "Borrar paciente y sus agendamientos",
                "parameters": [{"type": "string", "description": "ID del paciente", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/schedule": {
            "get": {
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Listar agendamientos agrupados",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/schedules.listSchedulesResponse"}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Crear agendamiento",
                "parameters": [{"description": "Datos del agendamiento", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schedules.CreateInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/schedules.createScheduleResponse"}},
                    "400": {"description": "patient not found / date full / slot full", "schema": {"$ref": "#/definitions/schedules.errorResponse"}}
                }
            }
        },
        "/api/schedule/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["schedules"],
                "summary": "Actualizar agendamiento",
                "parameters": [
                    {"type": "string", "description": "ID del agendamiento", "name": "id", "in": "path", "required": true},
                    {"description": "Nuevos datos", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/schedules.updateScheduleRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/schedules.messageResponse"}}}
            },
            "delete": {
                "tags": ["schedules"],
                "summary": "Borrar agendamiento",
                "parameters": [{"type": "string", "description": "ID del agendamiento", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "patients.CreateInput": {"type": "object", "properties": {"fullName": {"type": "string"}, "birthDate": {"type": "string"}}},
        "patients.updatePatientRequest": {"type": "object", "properties": {"fullName": {"type": "string"}, "birthDate": {"type": "string"}}},
        "patients.patientResponse": {"type": "object", "properties": {"id": {"type": "string"}, "fullName": {"type": "string"}, "birthDate": {"type": "string"}}},
        "patients.createPatientResponse": {"type": "object", "properties": {"message": {"type": "string"}, "data": {"$ref": "#/definitions/patients.patientResponse"}}},
        "patients.listPatientsResponse": {"type": "object", "properties": {"page": {"type": "integer"}, "pageSize": {"type": "integer"}, "totalCount": {"type": "integer"}, "items": {"type": "array", "items": {"$ref": "#/definitions/patients.patientResponse"}}}},
        "patients.messageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "schedules.CreateInput": {"type": "object", "properties": {"pacientId": {"type": "string"}, "scheduleDate": {"type": "string"}, "scheduleTime": {"type": "string"}, "scheduleStatus": {"type": "string"}, "conclusion": {"type": "string"}}},
        "schedules.updateScheduleRequest": {"type": "object", "properties": {"scheduleDate": {"type": "string"}, "scheduleTime": {"type": "string"}, "scheduleStatus": {"type": "string"}, "conclusion": {"type": "string"}}},
        "schedules.scheduleResponse": {"type": "object", "properties": {"id": {"type": "string"}, "pacientId": {"type": "string"}, "scheduleDate": {"type": "string"}, "scheduleTime": {"type": "string"}, "scheduleStatus": {"type": "string"}, "conclusion": {"type": "string"}}},
        "schedules.createScheduleResponse": {"type": "object", "properties": {"message": {"type": "string"}, "data": {"$ref": "#/definitions/schedules.scheduleResponse"}}},
        "schedules.listSchedulesResponse": {"type": "object", "properties": {"page": {"type": "integer"}, "pageSize": {"type": "integer"}, "totalCount": {"type": "integer"}, "items": {"type": "object"}}},
        "schedules.messageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "schedules.errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "validation.Error": {"type": "object", "properties": {"issues": {"type": "array", "items": {"$ref": "#/definitions/validation.Issue"}}}},
        "validation.Issue": {"type": "object", "properties": {"path": {"type": "string"}, "message": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Clinic Scheduling API",
	Description:      "Pacientes y agendamientos con control de cupos por día y por horario.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
