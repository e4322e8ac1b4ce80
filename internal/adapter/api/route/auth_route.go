package route

import (
	"github.com/gin-gonic/gin"

	"github.com/jcamposv/edcora-finance-sub000/internal/adapter/api/controller"
	"github.com/jcamposv/edcora-finance-sub000/pkg/auth"
)

// SetupAuthRoutes configura as rotas de autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		authRouter.POST("/register", authController.Register)
		authRouter.POST("/login", authController.Login)
		authRouter.POST("/refresh", authController.RefreshToken)
	}
}

// SetupProtectedAuthRoutes configura as rotas de autenticação que exigem token
func SetupProtectedAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	authRouter.Use(auth.JWTAuthMiddleware())
	{
		authRouter.GET("/me", authController.Me)
	}
}
