package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jcamposv/edcora-finance-sub000/internal/adapter/api/dto"
	"github.com/jcamposv/edcora-finance-sub000/internal/domain/transaction"
	"github.com/jcamposv/edcora-finance-sub000/pkg/auth"
)

// TransactionController gerencia as requisições REST de transações
type TransactionController struct {
	transactionRepository transaction.Repository
}

// NewTransactionController cria uma nova instância de TransactionController
func NewTransactionController(transactionRepository transaction.Repository) *TransactionController {
	return &TransactionController{
		transactionRepository: transactionRepository,
	}
}

// List lista as transações do usuário
// @Summary Lista transações
// @Description Lista as transações do usuário autenticado com paginação
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.TransactionListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/transactions [get]
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := auth.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	transactions, err := c.transactionRepository.List(ctx, userID, pagination.PageSize, pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar transações", err.Error()))
		return
	}

	response := dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(transactions)),
		Page:         pagination.Page,
		PageSize:     pagination.PageSize,
	}
	for _, t := range transactions {
		response.Transactions = append(response.Transactions, dto.ToTransactionResponse(t))
	}

	ctx.JSON(http.StatusOK, response)
}

// Summary devolve o agregado de gastos por categoria no mês corrente
// @Summary Resumo do mês
// @Description Agrega os gastos do usuário por categoria no mês corrente
// @Tags transactions
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.CategorySummaryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/transactions/summary [get]
func (c *TransactionController) Summary(ctx *gin.Context) {
	userID, ok := auth.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	totals, err := c.transactionRepository.SumByCategory(ctx, userID, monthStart, now)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao gerar resumo", err.Error()))
		return
	}

	response := make([]dto.CategorySummaryResponse, 0, len(totals))
	for _, t := range totals {
		response = append(response, dto.CategorySummaryResponse{
			Category: t.Category,
			Total:    t.Total,
			Count:    t.Count,
		})
	}

	ctx.JSON(http.StatusOK, response)
}
