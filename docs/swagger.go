// Package docs - OpenAPI описание JSON API NuclrAlert для swag / fiber-swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}}
                }
            }
        },
        "/api/v1/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness: бэкенд NuclrAlert и хранилища доступны",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}}
                }
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "description": "Возвращает состояние без запуска загрузки (для поллинга)",
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Текущее состояние дашборда посетителя",
                "parameters": [
                    {"type": "string", "default": "alerts", "description": "Вкладка (alerts, map, data)", "name": "tab", "in": "query"},
                    {"type": "string", "description": "Поиск по имени станции", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DashboardView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/dashboard/reload": {
            "post": {
                "description": "Запускает загрузку снапшота; ошибки бэкенда отражаются в поле error состояния",
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Перезагрузить дашборд",
                "parameters": [
                    {"type": "string", "default": "alerts", "description": "Вкладка (alerts, map, data)", "name": "tab", "in": "query"},
                    {"type": "string", "description": "Поиск по имени станции", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.DashboardView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/v1/start": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Dashboard"],
                "summary": "Загрузить датасет на бэкенде",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/utils.SuccessResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.DashboardView": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["idle", "loading", "loaded", "error"]},
                "seq": {"type": "integer"},
                "error": {"type": "string"},
                "tab": {"type": "string"},
                "query": {"type": "string"},
                "totals": {
                    "type": "object",
                    "properties": {
                        "total": {"type": "integer"},
                        "safe": {"type": "integer"},
                        "moderate": {"type": "integer"},
                        "dangerous": {"type": "integer"}
                    }
                },
                "alert": {
                    "type": "object",
                    "properties": {
                        "level": {"type": "string", "enum": ["on_site", "dangerous", "moderate", "safe", "clear"]},
                        "title": {"type": "string"},
                        "message": {"type": "string"},
                        "hint": {"type": "string"},
                        "plants": {"type": "array", "items": {"type": "string"}}
                    }
                },
                "nearby": {"type": "array", "items": {"type": "object"}},
                "plants": {"type": "array", "items": {"type": "object"}},
                "matched_plants": {"type": "integer"},
                "unknown_safety": {"type": "integer"},
                "map_url": {"type": "string"},
                "download_url": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        },
        "utils.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {
                    "type": "object",
                    "properties": {
                        "total": {"type": "integer"},
                        "time_ms": {"type": "number"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "NuclrAlert Web API",
	Description:      "Серверный дашборд NuclrAlert: близость к атомным станциям, тревоги и справочные страницы.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
