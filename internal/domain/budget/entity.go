package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount          = errors.New("valor deve ser maior que zero")
	ErrEmptyCategory          = errors.New("categoria não pode ser vazia")
	ErrInvalidPeriod          = errors.New("período inválido")
	ErrInvalidAlertPercentage = errors.New("percentual de alerta deve estar entre 1 e 100")
	ErrNotFound               = errors.New("orçamento não encontrado")

	// ErrDuplicateAlert sinaliza que a restrição única
	// (budget_id, period_start) já estava satisfeita; quem chama deve
	// tratar como alerta já emitido, não como falha
	ErrDuplicateAlert = errors.New("alerta duplicado para o período")
)

// Period define a periodicidade de um orçamento
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// Status representa o estado de um orçamento
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Budget representa um limite de gasto por categoria em uma janela de
// tempo, com umbral de alerta
type Budget struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	OrganizationID  string    `json:"organization_id,omitempty"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Amount          float64   `json:"amount"`
	Period          Period    `json:"period"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	AlertPercentage float64   `json:"alert_percentage"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Alert é o registro append-only de um umbral de orçamento cruzado.
// A unicidade por (budget_id, period_start) garante no máximo um alerta
// por orçamento por período, mesmo com gastos concorrentes.
type Alert struct {
	ID              string    `json:"id"`
	BudgetID        string    `json:"budget_id"`
	PeriodStart     time.Time `json:"period_start"`
	PercentageSpent float64   `json:"percentage_spent"`
	AmountSpent     float64   `json:"amount_spent"`
	MessageSent     bool      `json:"message_sent"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewBudget cria um novo orçamento. A janela começa agora e termina
// conforme o período.
func NewBudget(userID, name, category string, amount float64, period Period, alertPercentage float64) (*Budget, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if category == "" {
		return nil, ErrEmptyCategory
	}
	if alertPercentage <= 0 || alertPercentage > 100 {
		return nil, ErrInvalidAlertPercentage
	}

	now := time.Now()
	var end time.Time
	switch period {
	case PeriodWeekly:
		end = now.AddDate(0, 0, 7)
	case PeriodMonthly:
		end = now.AddDate(0, 1, 0)
	case PeriodYearly:
		end = now.AddDate(1, 0, 0)
	default:
		return nil, ErrInvalidPeriod
	}

	return &Budget{
		ID:              uuid.New().String(),
		UserID:          userID,
		Name:            name,
		Category:        category,
		Amount:          amount,
		Period:          period,
		StartDate:       now,
		EndDate:         end,
		AlertPercentage: alertPercentage,
		Status:          StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// IsActive verifica se o orçamento está ativo e cobre o instante
func (b *Budget) IsActive(at time.Time) bool {
	return b.Status == StatusActive && !at.Before(b.StartDate) && at.Before(b.EndDate)
}

// Complete encerra o orçamento
func (b *Budget) Complete() {
	b.Status = StatusCompleted
	b.UpdatedAt = time.Now()
}

// Cancel cancela o orçamento
func (b *Budget) Cancel() {
	b.Status = StatusCancelled
	b.UpdatedAt = time.Now()
}

// PercentageFor calcula o percentual consumido para o valor gasto
func (b *Budget) PercentageFor(spent float64) float64 {
	if b.Amount <= 0 {
		return 0
	}
	return spent / b.Amount * 100
}
