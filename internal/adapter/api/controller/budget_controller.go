package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jcamposv/edcora-finance-sub000/internal/adapter/api/dto"
	"github.com/jcamposv/edcora-finance-sub000/internal/domain/budget"
	"github.com/jcamposv/edcora-finance-sub000/pkg/auth"
)

// BudgetController gerencia as requisições REST de orçamentos
type BudgetController struct {
	budgetRepository budget.Repository
}

// NewBudgetController cria uma nova instância de BudgetController
func NewBudgetController(budgetRepository budget.Repository) *BudgetController {
	return &BudgetController{
		budgetRepository: budgetRepository,
	}
}

// Create cria um orçamento
// @Summary Cria um orçamento
// @Description Cria um orçamento para o usuário autenticado
// @Tags budgets
// @Accept json
// @Produce json
// @Security Bearer
// @Param budget body dto.BudgetRequest true "Dados do orçamento"
// @Success 201 {object} dto.BudgetResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/budgets [post]
func (c *BudgetController) Create(ctx *gin.Context) {
	userID, ok := auth.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	var request dto.BudgetRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	period := budget.Period(request.Period)
	if request.Period == "" {
		period = budget.PeriodMonthly
	}
	alertPct := request.AlertPercentage
	if alertPct == 0 {
		alertPct = 80
	}
	name := request.Name
	if name == "" {
		name = "Presupuesto " + request.Category
	}

	b, err := budget.NewBudget(userID, name, request.Category, request.Amount, period, alertPct)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Dados inválidos", err.Error()))
		return
	}

	if err := c.budgetRepository.Create(ctx, b); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar orçamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(b))
}

// List lista os orçamentos do usuário
// @Summary Lista orçamentos
// @Description Lista os orçamentos do usuário autenticado com paginação
// @Tags budgets
// @Produce json
// @Security Bearer
// @Param page query int false "Página"
// @Param page_size query int false "Tamanho da página"
// @Success 200 {object} dto.BudgetListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/v1/budgets [get]
func (c *BudgetController) List(ctx *gin.Context) {
	userID, ok := auth.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	budgets, err := c.budgetRepository.List(ctx, userID, pagination.PageSize, pagination.Offset())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar orçamentos", err.Error()))
		return
	}

	response := dto.BudgetListResponse{
		Budgets:  make([]dto.BudgetResponse, 0, len(budgets)),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}
	for _, b := range budgets {
		response.Budgets = append(response.Budgets, dto.ToBudgetResponse(b))
	}

	ctx.JSON(http.StatusOK, response)
}

// Get busca um orçamento pelo ID
// @Summary Busca um orçamento
// @Description Busca um orçamento do usuário autenticado pelo ID
// @Tags budgets
// @Produce json
// @Security Bearer
// @Param id path string true "ID do orçamento"
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/budgets/{id} [get]
func (c *BudgetController) Get(ctx *gin.Context) {
	userID, ok := auth.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	b, err := c.budgetRepository.FindByID(ctx, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Orçamento não encontrado", ""))
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar orçamento", err.Error()))
		return
	}
	if b.UserID != userID {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Orçamento não encontrado", ""))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(b))
}

// Delete remove um orçamento
// @Summary Remove um orçamento
// @Description Remove um orçamento do usuário autenticado
// @Tags budgets
// @Produce json
// @Security Bearer
// @Param id path string true "ID do orçamento"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/budgets/{id} [delete]
func (c *BudgetController) Delete(ctx *gin.Context) {
	userID, ok := auth.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	b, err := c.budgetRepository.FindByID(ctx, ctx.Param("id"))
	if err != nil || b.UserID != userID {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Orçamento não encontrado", ""))
		return
	}

	if err := c.budgetRepository.Delete(ctx, b.ID); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao remover orçamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Orçamento removido", nil))
}

// ListAlerts lista os alertas de um orçamento
// @Summary Lista alertas de um orçamento
// @Description Lista os alertas emitidos para um orçamento do usuário
// @Tags budgets
// @Produce json
// @Security Bearer
// @Param id path string true "ID do orçamento"
// @Success 200 {array} dto.AlertResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/budgets/{id}/alerts [get]
func (c *BudgetController) ListAlerts(ctx *gin.Context) {
	userID, ok := auth.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	b, err := c.budgetRepository.FindByID(ctx, ctx.Param("id"))
	if err != nil || b.UserID != userID {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Orçamento não encontrado", ""))
		return
	}

	alerts, err := c.budgetRepository.ListAlerts(ctx, b.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao listar alertas", err.Error()))
		return
	}

	response := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		response = append(response, dto.ToAlertResponse(a))
	}

	ctx.JSON(http.StatusOK, response)
}
