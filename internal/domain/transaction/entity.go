package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount    = errors.New("valor deve ser maior que zero")
	ErrEmptyDescription = errors.New("descrição não pode ser vazia")
	ErrInvalidType      = errors.New("tipo de transação inválido")
	ErrNotFound         = errors.New("transação não encontrada")
)

// Type define o tipo de transação
type Type string

const (
	TypeExpense Type = "expense"
	TypeIncome  Type = "income"
)

// Transaction representa um gasto ou ingresso registrado pelo usuário,
// na conta pessoal ou em uma organização
type Transaction struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	OrganizationID string    `json:"organization_id,omitempty"`
	Type           Type      `json:"type"`
	Amount         float64   `json:"amount"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	Date           time.Time `json:"date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewTransaction cria uma nova transação
func NewTransaction(userID string, txType Type, amount float64, category, description string) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		return nil, ErrEmptyDescription
	}
	switch txType {
	case TypeExpense, TypeIncome:
	default:
		return nil, ErrInvalidType
	}

	now := time.Now()
	return &Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsExpense verifica se a transação é um gasto
func (t *Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// AssignOrganization registra a transação em uma organização
func (t *Transaction) AssignOrganization(organizationID string) {
	t.OrganizationID = organizationID
	t.UpdatedAt = time.Now()
}
