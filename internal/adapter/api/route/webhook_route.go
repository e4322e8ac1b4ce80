package route

import (
	"github.com/gin-gonic/gin"

	"github.com/jcamposv/edcora-finance-sub000/internal/adapter/api/controller"
	"github.com/jcamposv/edcora-finance-sub000/pkg/auth"
)

// SetupWebhookRoutes configura as rotas do webhook de WhatsApp. O
// webhook não usa JWT; o provedor é autenticado fora do serviço.
func SetupWebhookRoutes(router *gin.RouterGroup, webhookController *controller.WebhookController) {
	webhookRouter := router.Group("/webhook")
	{
		webhookRouter.POST("/whatsapp", webhookController.HandleWhatsApp)
	}
}

// SetupChatRoutes configura o endpoint JSON de chat autenticado
func SetupChatRoutes(router *gin.RouterGroup, webhookController *controller.WebhookController) {
	chatRouter := router.Group("/chat")
	chatRouter.Use(auth.JWTAuthMiddleware())
	{
		chatRouter.POST("", webhookController.Chat)
	}
}
