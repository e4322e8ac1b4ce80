package route

import (
	"github.com/gin-gonic/gin"

	"github.com/jcamposv/edcora-finance-sub000/internal/adapter/api/controller"
	"github.com/jcamposv/edcora-finance-sub000/pkg/auth"
)

// SetupTransactionRoutes configura as rotas REST de transações
func SetupTransactionRoutes(router *gin.RouterGroup, transactionController *controller.TransactionController) {
	transactionRouter := router.Group("/transactions")
	transactionRouter.Use(auth.JWTAuthMiddleware())
	{
		transactionRouter.GET("", transactionController.List)
		transactionRouter.GET("/summary", transactionController.Summary)
	}
}
