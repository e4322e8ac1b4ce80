package controller

import (
	"encoding/xml"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jcamposv/edcora-finance-sub000/internal/adapter/api/dto"
	"github.com/jcamposv/edcora-finance-sub000/internal/domain/user"
	"github.com/jcamposv/edcora-finance-sub000/pkg/auth"
	"github.com/jcamposv/edcora-finance-sub000/pkg/conversation"
	"github.com/jcamposv/edcora-finance-sub000/pkg/logger"
)

// WebhookController recebe as mensagens de WhatsApp e as encaminha para
// a camada conversacional
type WebhookController struct {
	manager *conversation.Manager
	users   user.Repository
	logger  logger.Logger
}

// NewWebhookController cria uma nova instância de WebhookController
func NewWebhookController(manager *conversation.Manager, users user.Repository, log logger.Logger) *WebhookController {
	return &WebhookController{
		manager: manager,
		users:   users,
		logger:  log,
	}
}

// twimlResponse é o envelope XML esperado pelo provedor
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// HandleWhatsApp godoc
// @Summary Processa uma mensagem de WhatsApp
// @Description Recebe o webhook do provedor (formulário no formato do Twilio) e devolve a resposta em TwiML
// @Tags webhook
// @Accept x-www-form-urlencoded
// @Produce xml
// @Param From formData string true "Telefone do remetente"
// @Param Body formData string true "Texto da mensagem"
// @Success 200 {string} string "TwiML com a resposta"
// @Failure 400 {object} dto.ErrorResponse
// @Router /webhook/whatsapp [post]
func (c *WebhookController) HandleWhatsApp(ctx *gin.Context) {
	var req dto.WebhookRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	phone := normalizePhone(req.From)
	u, err := c.findOrCreateUser(ctx, phone)
	if err != nil {
		c.logger.Error("erro ao resolver usuário do webhook", "phone", phone, "error", err)
		ctx.XML(http.StatusOK, twimlResponse{Message: "😔 Tuve un problema procesando tu mensaje. Intenta de nuevo en un momento."})
		return
	}

	result, err := c.manager.ProcessMessage(ctx.Request.Context(), u.ID, req.Body)
	if err != nil {
		c.logger.Error("erro ao processar mensagem", "user_id", u.ID, "error", err)
		ctx.XML(http.StatusOK, twimlResponse{Message: "😔 Tuve un problema procesando tu mensaje. Intenta de nuevo en un momento."})
		return
	}

	ctx.XML(http.StatusOK, twimlResponse{Message: result.Message})
}

// Chat godoc
// @Summary Processa uma mensagem pelo endpoint JSON
// @Description Processa uma mensagem do usuário autenticado como se tivesse chegado pelo WhatsApp
// @Tags webhook
// @Accept json
// @Produce json
// @Security Bearer
// @Param message body dto.ChatRequest true "Mensagem"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/chat [post]
func (c *WebhookController) Chat(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	userID, ok := auth.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	result, err := c.manager.ProcessMessage(ctx.Request.Context(), userID, req.Message)
	if err != nil {
		c.logger.Error("erro ao processar mensagem", "user_id", userID, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao processar mensagem", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ChatResponse{
		Success:     result.Success,
		Message:     result.Message,
		Action:      result.Action,
		Data:        result.Data,
		OperationID: result.OperationID,
	})
}

// findOrCreateUser resolve o usuário pelo telefone, criando a conta na
// primeira mensagem
func (c *WebhookController) findOrCreateUser(ctx *gin.Context, phone string) (*user.User, error) {
	u, err := c.users.FindByPhone(ctx.Request.Context(), phone)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	u, err = user.NewUser(phone, "")
	if err != nil {
		return nil, err
	}
	if err := c.users.Create(ctx.Request.Context(), u); err != nil {
		return nil, err
	}
	c.logger.Info("usuário criado a partir do webhook", "user_id", u.ID, "phone", phone)
	return u, nil
}

// normalizePhone remove o prefixo de canal ("whatsapp:+506...") e espaços
func normalizePhone(from string) string {
	phone := strings.TrimSpace(from)
	if idx := strings.Index(phone, ":"); idx >= 0 {
		phone = phone[idx+1:]
	}
	return strings.ReplaceAll(phone, " ", "")
}
