package route

import (
	"github.com/gin-gonic/gin"

	"github.com/jcamposv/edcora-finance-sub000/internal/adapter/api/controller"
	"github.com/jcamposv/edcora-finance-sub000/pkg/auth"
)

// SetupBudgetRoutes configura as rotas REST de orçamentos
func SetupBudgetRoutes(router *gin.RouterGroup, budgetController *controller.BudgetController) {
	budgetRouter := router.Group("/budgets")
	budgetRouter.Use(auth.JWTAuthMiddleware())
	{
		budgetRouter.POST("", budgetController.Create)
		budgetRouter.GET("", budgetController.List)
		budgetRouter.GET("/:id", budgetController.Get)
		budgetRouter.DELETE("/:id", budgetController.Delete)
		budgetRouter.GET("/:id/alerts", budgetController.ListAlerts)
	}
}
