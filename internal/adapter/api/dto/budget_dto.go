package dto

import (
	"time"

	"github.com/jcamposv/edcora-finance-sub000/internal/domain/budget"
)

// BudgetRequest representa os dados para criação de um orçamento
type BudgetRequest struct {
	Name            string  `json:"name"`
	Category        string  `json:"category" binding:"required"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	Period          string  `json:"period" binding:"omitempty,oneof=weekly monthly yearly"`
	AlertPercentage float64 `json:"alert_percentage" binding:"omitempty,gt=0,lte=100"`
}

// BudgetResponse representa um orçamento na resposta da API
type BudgetResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Amount          float64   `json:"amount"`
	Period          string    `json:"period"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	AlertPercentage float64   `json:"alert_percentage"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// BudgetListResponse representa uma lista paginada de orçamentos
type BudgetListResponse struct {
	Budgets  []BudgetResponse `json:"budgets"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// AlertResponse representa um alerta de orçamento na resposta da API
type AlertResponse struct {
	ID              string    `json:"id"`
	BudgetID        string    `json:"budget_id"`
	PeriodStart     time.Time `json:"period_start"`
	PercentageSpent float64   `json:"percentage_spent"`
	AmountSpent     float64   `json:"amount_spent"`
	CreatedAt       time.Time `json:"created_at"`
}

// ToBudgetResponse converte a entidade para o DTO de resposta
func ToBudgetResponse(b *budget.Budget) BudgetResponse {
	return BudgetResponse{
		ID:              b.ID,
		Name:            b.Name,
		Category:        b.Category,
		Amount:          b.Amount,
		Period:          string(b.Period),
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		AlertPercentage: b.AlertPercentage,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
	}
}

// ToAlertResponse converte a entidade para o DTO de resposta
func ToAlertResponse(a *budget.Alert) AlertResponse {
	return AlertResponse{
		ID:              a.ID,
		BudgetID:        a.BudgetID,
		PeriodStart:     a.PeriodStart,
		PercentageSpent: a.PercentageSpent,
		AmountSpent:     a.AmountSpent,
		CreatedAt:       a.CreatedAt,
	}
}
