// Package docs registra no swag o documento Swagger da API.
//
// O documento é mantido à mão: ao alterar rotas ou os blocos godoc dos
// handlers, atualize os paths e definitions abaixo.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "LicitaSis"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/clientes/uasg/{uasg}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["clientes"],
                "summary": "Busca o cliente de uma UASG",
                "parameters": [
                    {"type": "string", "description": "UASG do cliente", "name": "uasg", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ClientRecord"}},
                    "400": {"description": "UASG inválida", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Cliente não encontrado", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Erro ao consultar o banco", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/empenhos/duplicado": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Parâmetros em branco retornam exists=false sem consultar o banco.",
                "produces": ["application/json"],
                "tags": ["empenhos"],
                "summary": "Verifica se o número de empenho já existe para a UASG",
                "parameters": [
                    {"type": "string", "description": "Número do empenho", "name": "numero", "in": "query"},
                    {"type": "string", "description": "UASG do cliente", "name": "uasg", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DuplicateCheck"}},
                    "400": {"description": "Parâmetros inválidos", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Erro ao consultar o banco", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/empenhos/uasg/{uasg}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Retorna os 20 empenhos mais recentes com dias desde o empenho e estatísticas (em_atraso conta Pendente/Faturado com mais de 30 dias).",
                "produces": ["application/json"],
                "tags": ["empenhos"],
                "summary": "Lista os últimos empenhos de uma UASG",
                "parameters": [
                    {"type": "string", "description": "UASG do cliente", "name": "uasg", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.EmpenhosPorUASG"}},
                    "400": {"description": "UASG inválida", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Erro ao consultar o banco", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/empenhos/validar": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Avalia um empenho candidato contra os cadastros (empenhos, clientes, produtos) e retorna erros, alertas e informações com um score de qualidade.\nTodos os campos são opcionais: cada regra só é aplicada quando o campo correspondente é enviado.\nOs campos dos achados de produtos seguem o padrão produto_{índice}_{campo}.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["empenhos"],
                "summary": "Valida os dados de um empenho",
                "parameters": [
                    {"description": "Empenho a validar", "name": "empenho", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.EmpenhoSubmission"}}
                ],
                "responses": {
                    "200": {"description": "Relatório de validação", "schema": {"$ref": "#/definitions/models.ReportResponse"}},
                    "400": {"description": "JSON inválido (erro no campo request)", "schema": {"$ref": "#/definitions/models.ReportResponse"}},
                    "403": {"description": "Sem permissão de visualização em empenhos", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "405": {"description": "Método diferente de POST", "schema": {"$ref": "#/definitions/models.ReportResponse"}},
                    "500": {"description": "Falha no banco (campo database) ou erro interno (campo system)", "schema": {"$ref": "#/definitions/models.ReportResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Verifica a saúde completa da aplicação (para monitoramento externo de uptime)",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Comprehensive health check endpoint",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/liveness": {
            "get": {
                "description": "Verifica se a aplicação está viva (sem checagem de dependências externas)",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe endpoint",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        },
        "/readiness": {
            "get": {
                "description": "Verifica se a aplicação está pronta para receber tráfego (valida o MySQL)",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe endpoint",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handlers.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"type": "object", "additionalProperties": {"type": "string"}},
                "error": {"type": "string"},
                "status": {"type": "string"},
                "timestamp": {"type": "integer"}
            }
        },
        "models.ClientRecord": {
            "type": "object",
            "properties": {
                "cnpj": {"type": "string"},
                "email": {"type": "string"},
                "endereco": {"type": "string"},
                "id": {"type": "integer"},
                "nome_orgaos": {"type": "string"},
                "telefone": {"type": "string"},
                "uasg": {"type": "string"}
            }
        },
        "models.DuplicateCheck": {
            "type": "object",
            "properties": {
                "cliente_nome": {"type": "string"},
                "created_at": {"type": "string"},
                "exists": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "models.EmpenhoResumo": {
            "type": "object",
            "properties": {
                "classificacao": {"type": "string"},
                "created_at": {"type": "string"},
                "data": {"type": "string"},
                "dias_desde_empenho": {"type": "integer"},
                "id": {"type": "integer"},
                "numero": {"type": "string"},
                "pregao": {"type": "string"},
                "valor_total_empenho": {"type": "number"}
            }
        },
        "models.EmpenhosPorUASG": {
            "type": "object",
            "properties": {
                "empenhos": {"type": "array", "items": {"$ref": "#/definitions/models.EmpenhoResumo"}},
                "estatisticas": {"$ref": "#/definitions/models.EstatisticasUASG"},
                "message": {"type": "string"},
                "uasg": {"type": "string"}
            }
        },
        "models.EstatisticasUASG": {
            "type": "object",
            "properties": {
                "em_atraso": {"type": "integer"},
                "total_empenhos": {"type": "integer"},
                "valor_medio": {"type": "number"},
                "valor_total": {"type": "number"}
            }
        },
        "models.EmpenhoSubmission": {
            "type": "object",
            "properties": {
                "classificacao": {"type": "string", "example": "Pendente"},
                "data_empenho": {"type": "string", "example": "2026-10-19"},
                "numero": {"type": "string", "example": "2026NE000123"},
                "observacao": {"type": "string"},
                "pregao": {"type": "string", "example": "90012/2026"},
                "prioridade": {"type": "string", "example": "Normal"},
                "produtos": {"type": "array", "items": {"$ref": "#/definitions/models.LineItem"}},
                "uasg": {"type": "string", "example": "123456"}
            }
        },
        "models.Finding": {
            "type": "object",
            "properties": {
                "details": {"type": "object"},
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.LineItem": {
            "type": "object",
            "properties": {
                "nome": {"type": "string", "example": "Caneta Azul"},
                "produto_id": {"type": "string", "example": "42"},
                "quantidade": {"type": "number", "example": 10},
                "valor_unitario": {"type": "number", "example": 2.5}
            }
        },
        "models.ReportResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"$ref": "#/definitions/models.Finding"}},
                "info": {"type": "array", "items": {"$ref": "#/definitions/models.Finding"}},
                "summary": {"type": "object"},
                "valid": {"type": "boolean"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Finding"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Token JWT no formato: Bearer {token}",
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
	Title:            "LicitaSis - Validação de Empenhos API",
	Description:      "API de validação de empenhos do LicitaSis contra os cadastros de clientes, produtos e empenhos",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
