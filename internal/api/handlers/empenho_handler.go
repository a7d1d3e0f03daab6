package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	middlewares "github.com/jonasbrito1/LicitaSis-sub003/internal/middleware"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/models"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/observability"
	"github.com/jonasbrito1/LicitaSis-sub003/internal/services"
)

// EmpenhoLookup são as consultas auxiliares do cadastro de empenhos
type EmpenhoLookup interface {
	CheckDuplicate(ctx context.Context, numero, uasg string) (*models.DuplicateCheck, error)
	ListByUASG(ctx context.Context, uasg string) (*models.EmpenhosPorUASG, error)
	FindClient(ctx context.Context, uasg string) (*models.ClientRecord, error)
}

// DuplicadoQuery são os parâmetros da verificação de duplicidade
type DuplicadoQuery struct {
	Numero string `form:"numero" binding:"max=50"`
	UASG   string `form:"uasg" binding:"max=20"`
}

// UASGParam é a UASG informada na rota
type UASGParam struct {
	UASG string `uri:"uasg" binding:"required,numeric,max=20"`
}

// EmpenhoHandler gerencia as consultas de empenhos e clientes por UASG
type EmpenhoHandler struct {
	lookup EmpenhoLookup
}

// NewEmpenhoHandler cria um novo handler de empenhos
func NewEmpenhoHandler(lookup EmpenhoLookup) *EmpenhoHandler {
	return &EmpenhoHandler{lookup: lookup}
}

// VerificarDuplicado godoc
// @Summary Verifica se o número de empenho já existe para a UASG
// @Description Parâmetros em branco retornam exists=false sem consultar o banco.
// @Tags empenhos
// @Produce json
// @Param numero query string false "Número do empenho"
// @Param uasg query string false "UASG do cliente"
// @Success 200 {object} models.DuplicateCheck
// @Failure 400 {object} map[string]string "Parâmetros inválidos"
// @Failure 500 {object} map[string]string "Erro ao consultar o banco"
// @Security BearerAuth
// @Router /api/v1/empenhos/duplicado [get]
func (h *EmpenhoHandler) VerificarDuplicado(c *gin.Context) {
	var query DuplicadoQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parâmetros inválidos", "details": err.Error()})
		return
	}

	result, err := h.lookup.CheckDuplicate(c.Request.Context(), query.Numero, query.UASG)
	if err != nil {
		h.internalError(c, "Erro ao verificar empenho", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListarPorUASG godoc
// @Summary Lista os últimos empenhos de uma UASG
// @Description Retorna os 20 empenhos mais recentes com dias desde o empenho e estatísticas (em_atraso conta Pendente/Faturado com mais de 30 dias).
// @Tags empenhos
// @Produce json
// @Param uasg path string true "UASG do cliente"
// @Success 200 {object} models.EmpenhosPorUASG
// @Failure 400 {object} map[string]string "UASG inválida"
// @Failure 500 {object} map[string]string "Erro ao consultar o banco"
// @Security BearerAuth
// @Router /api/v1/empenhos/uasg/{uasg} [get]
func (h *EmpenhoHandler) ListarPorUASG(c *gin.Context) {
	var param UASGParam
	if err := c.ShouldBindUri(&param); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UASG inválida", "details": err.Error()})
		return
	}

	result, err := h.lookup.ListByUASG(c.Request.Context(), param.UASG)
	if err != nil {
		h.internalError(c, "Erro ao buscar empenhos", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// BuscarClientePorUASG godoc
// @Summary Busca o cliente de uma UASG
// @Tags clientes
// @Produce json
// @Param uasg path string true "UASG do cliente"
// @Success 200 {object} models.ClientRecord
// @Failure 400 {object} map[string]string "UASG inválida"
// @Failure 404 {object} map[string]string "Cliente não encontrado"
// @Failure 500 {object} map[string]string "Erro ao consultar o banco"
// @Security BearerAuth
// @Router /api/v1/clientes/uasg/{uasg} [get]
func (h *EmpenhoHandler) BuscarClientePorUASG(c *gin.Context) {
	var param UASGParam
	if err := c.ShouldBindUri(&param); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "UASG inválida", "details": err.Error()})
		return
	}

	client, err := h.lookup.FindClient(c.Request.Context(), param.UASG)
	if errors.Is(err, services.ErrClienteNaoEncontrado) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.internalError(c, "Erro ao buscar cliente", err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func (h *EmpenhoHandler) internalError(c *gin.Context, message string, err error) {
	observability.WithContext(c.Request.Context()).Error(message, "error", err)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":      message,
		"request_id": middlewares.GetRequestID(c),
	})
}
