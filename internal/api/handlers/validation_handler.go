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
	"github.com/jonasbrito1/LicitaSis-sub003/internal/validation"
)

// EmpenhoValidator valida uma submissão de empenho
type EmpenhoValidator interface {
	Validate(ctx context.Context, sub *models.EmpenhoSubmission) (*models.Report, error)
}

// ValidationHandler expõe a validação de empenhos
type ValidationHandler struct {
	validator EmpenhoValidator
	auditor   services.Auditor
}

// NewValidationHandler cria um novo handler de validação
func NewValidationHandler(validator EmpenhoValidator, auditor services.Auditor) *ValidationHandler {
	return &ValidationHandler{validator: validator, auditor: auditor}
}

// ValidarEmpenho godoc
// @Summary Valida os dados de um empenho
// @Description Avalia um empenho candidato contra os cadastros (empenhos, clientes, produtos) e retorna erros, alertas e informações com um score de qualidade.
// @Description Todos os campos são opcionais: cada regra só é aplicada quando o campo correspondente é enviado.
// @Description Os campos dos achados de produtos seguem o padrão produto_{índice}_{campo}.
// @Tags empenhos
// @Accept json
// @Produce json
// @Param empenho body models.EmpenhoSubmission true "Empenho a validar"
// @Success 200 {object} models.ReportResponse "Relatório de validação"
// @Failure 400 {object} models.ReportResponse "JSON inválido (erro no campo request)"
// @Failure 403 {object} map[string]string "Sem permissão de visualização em empenhos"
// @Failure 405 {object} models.ReportResponse "Método diferente de POST"
// @Failure 500 {object} models.ReportResponse "Falha no banco (campo database) ou erro interno (campo system)"
// @Security BearerAuth
// @Router /api/v1/empenhos/validar [post]
func (h *ValidationHandler) ValidarEmpenho(c *gin.Context) {
	var sub models.EmpenhoSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, validation.AbortResponse(
			models.NewError("request", "Dados inválidos: o corpo da requisição deve ser um objeto JSON"),
		))
		return
	}

	report, err := h.validator.Validate(c.Request.Context(), &sub)
	if err != nil {
		var abort *services.AbortError
		if !errors.As(err, &abort) {
			abort = &services.AbortError{
				Finding: models.NewError("system", "Erro interno do sistema",
					models.SystemErrorDetails{Message: err.Error()}),
				Err: err,
			}
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, validation.AbortResponse(abort.Finding))
		return
	}

	h.audit(c, &sub, report)

	observability.WithContext(c.Request.Context()).Debug("empenho validado",
		"valid", report.Valid,
		"quality_score", report.Summary.QualityScore,
	)

	c.JSON(http.StatusOK, validation.ToResponse(report))
}

// MetodoNaoPermitido responde 405 no formato do relatório
func (h *ValidationHandler) MetodoNaoPermitido(c *gin.Context) {
	c.Header("Allow", http.MethodPost)
	c.JSON(http.StatusMethodNotAllowed, validation.AbortResponse(
		models.NewError("method", "Método não permitido. Use POST."),
	))
}

func (h *ValidationHandler) audit(c *gin.Context, sub *models.EmpenhoSubmission, report *models.Report) {
	if h.auditor == nil {
		return
	}

	numero, _ := models.Trimmed(sub.Numero)
	uasg, _ := models.Trimmed(sub.UASG)

	h.auditor.Record(c.Request.Context(), models.AuditEntry{
		Action:   services.AuditRead,
		UserID:   middlewares.GetUserID(c),
		UserName: middlewares.GetUserName(c),
		Table:    services.ResourceEmpenhos,
		Details: map[string]any{
			"operacao":      "validacao",
			"numero":        numero,
			"uasg":          uasg,
			"valid":         report.Valid,
			"quality_score": report.Summary.QualityScore,
		},
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
}
