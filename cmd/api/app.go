package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/jcamposv/edcora-finance-sub000/internal/adapter/api/controller"
	"github.com/jcamposv/edcora-finance-sub000/internal/adapter/api/route"
	convadapter "github.com/jcamposv/edcora-finance-sub000/internal/adapter/conversation"
	"github.com/jcamposv/edcora-finance-sub000/internal/adapter/repository"
	_ "github.com/jcamposv/edcora-finance-sub000/internal/docs"
	"github.com/jcamposv/edcora-finance-sub000/internal/infrastructure/database"
	"github.com/jcamposv/edcora-finance-sub000/pkg/conversation"
	"github.com/jcamposv/edcora-finance-sub000/pkg/intent"
	"github.com/jcamposv/edcora-finance-sub000/pkg/logger"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	logger logger.Logger

	webhookController     *controller.WebhookController
	authController        *controller.AuthController
	budgetController      *controller.BudgetController
	transactionController *controller.TransactionController
}

// NewApp cria uma nova instância do aplicativo
func NewApp() (*App, error) {
	appLogger := logger.NewLogger()

	db, err := database.NewPostgresDB()
	if err != nil {
		return nil, err
	}

	// Repositórios de domínio
	userRepo := repository.NewUserRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	organizationRepo := repository.NewOrganizationRepository(db)

	// Portas da camada conversacional
	txPort := convadapter.NewTransactionAdapter(transactionRepo)
	budgetPort := convadapter.NewBudgetAdapter(budgetRepo, transactionRepo)
	orgPort := convadapter.NewOrganizationAdapter(organizationRepo, userRepo)
	notifier := convadapter.NewLoggingNotifier(appLogger)

	// Classificador de intenções e sessões
	extractor := intent.NewExtractor(getEnv("DEFAULT_COUNTRY_CODE", intent.DefaultCountryCode))
	classifier, err := intent.NewClassifier(intent.DefaultTable(), extractor, appLogger)
	if err != nil {
		return nil, fmt.Errorf("erro ao montar classificador: %w", err)
	}

	sessionTimeout := conversation.DefaultSessionTimeout
	if minutes, err := strconv.Atoi(getEnv("SESSION_TIMEOUT_MINUTES", "")); err == nil && minutes > 0 {
		sessionTimeout = time.Duration(minutes) * time.Minute
	}
	sessions := conversation.NewMemoryStore(sessionTimeout)

	manager := conversation.NewManager(
		classifier,
		extractor,
		sessions,
		txPort,
		budgetPort,
		orgPort,
		notifier,
		appLogger,
	)

	// Controllers
	webhookController := controller.NewWebhookController(manager, userRepo, appLogger)
	authController := controller.NewAuthController(userRepo)
	budgetController := controller.NewBudgetController(budgetRepo)
	transactionController := controller.NewTransactionController(transactionRepo)

	// Router
	if getEnv("GIN_MODE", "") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	return &App{
		router:                router,
		db:                    db,
		logger:                appLogger,
		webhookController:     webhookController,
		authController:        authController,
		budgetController:      budgetController,
		transactionController: transactionController,
	}, nil
}

// SetupRoutes configura as rotas da aplicação
func (a *App) SetupRoutes() {
	// Health check
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	// Documentação
	a.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Webhook e autenticação ficam fora do prefixo versionado
	root := a.router.Group("")
	route.SetupWebhookRoutes(root, a.webhookController)
	route.SetupAuthRoutes(root, a.authController)

	api := a.router.Group("/api/v1")
	route.SetupChatRoutes(api, a.webhookController)
	route.SetupProtectedAuthRoutes(api, a.authController)
	route.SetupBudgetRoutes(api, a.budgetController)
	route.SetupTransactionRoutes(api, a.transactionController)
}

// Start inicia o servidor HTTP
func (a *App) Start() {
	a.SetupRoutes()

	port := getEnv("PORT", "8080")
	a.logger.Info("servidor iniciado", "port", port)
	if err := a.router.Run(":" + port); err != nil {
		log.Fatalf("erro ao iniciar servidor: %v", err)
	}
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
