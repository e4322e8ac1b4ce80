package dto

import (
	"time"

	"github.com/jcamposv/edcora-finance-sub000/internal/domain/transaction"
)

// TransactionResponse representa uma transação na resposta da API
type TransactionResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id,omitempty"`
	Type           string    `json:"type"`
	Amount         float64   `json:"amount"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	Date           time.Time `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionListResponse representa uma lista paginada de transações
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
}

// CategorySummaryResponse representa o agregado de gastos por categoria
type CategorySummaryResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// ToTransactionResponse converte a entidade para o DTO de resposta
func ToTransactionResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:             t.ID,
		OrganizationID: t.OrganizationID,
		Type:           string(t.Type),
		Amount:         t.Amount,
		Category:       t.Category,
		Description:    t.Description,
		Date:           t.Date,
		CreatedAt:      t.CreatedAt,
	}
}
