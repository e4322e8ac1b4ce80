package domain

import (
	"time"
)

// BudgetPeriod define a periodicidade de um orçamento
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// BudgetStatus representa o estado de um orçamento
type BudgetStatus string

const (
	BudgetActive    BudgetStatus = "active"
	BudgetCompleted BudgetStatus = "completed"
	BudgetCancelled BudgetStatus = "cancelled"
)

// Budget representa um orçamento simplificado usado pela camada conversacional
type Budget struct {
	ID              string       `json:"id"`
	UserID          string       `json:"user_id"`
	OrganizationID  string       `json:"organization_id,omitempty"`
	Name            string       `json:"name"`
	Category        string       `json:"category"`
	Amount          float64      `json:"amount"`
	Period          BudgetPeriod `json:"period"`
	StartDate       time.Time    `json:"start_date"`
	EndDate         time.Time    `json:"end_date"`
	AlertPercentage float64      `json:"alert_percentage"`
	Status          BudgetStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
}

// BudgetAlert é o registro append-only de um umbral cruzado.
// A existência de uma linha com PercentageSpent >= alert_percentage do
// orçamento é a própria guarda de deduplicação.
type BudgetAlert struct {
	ID              string    `json:"id"`
	BudgetID        string    `json:"budget_id"`
	PeriodStart     time.Time `json:"period_start"`
	PercentageSpent float64   `json:"percentage_spent"`
	AmountSpent     float64   `json:"amount_spent"`
	MessageSent     bool      `json:"message_sent"`
	CreatedAt       time.Time `json:"created_at"`
}

// AlertEvent é o evento emitido pelo avaliador quando um umbral é
// cruzado pela primeira vez. Quem chama persiste o BudgetAlert e envia
// a notificação.
type AlertEvent struct {
	BudgetID        string  `json:"budget_id"`
	BudgetName      string  `json:"budget_name"`
	Category        string  `json:"category"`
	PercentageSpent float64 `json:"percentage_spent"`
	AmountSpent     float64 `json:"amount_spent"`
	BudgetAmount    float64 `json:"budget_amount"`
	OverBudget      bool    `json:"over_budget"`
}

// TransactionType define o tipo de uma transação
type TransactionType string

const (
	TypeExpense TransactionType = "expense"
	TypeIncome  TransactionType = "income"
)

// Transaction representa uma transação financeira
type Transaction struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	OrganizationID string          `json:"organization_id,omitempty"`
	Amount         float64         `json:"amount"`
	Type           TransactionType `json:"type"`
	Category       string          `json:"category"`
	Description    string          `json:"description"`
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"created_at"`
}

// OrganizationType define o tipo de organização
type OrganizationType string

const (
	OrgFamily  OrganizationType = "family"
	OrgCompany OrganizationType = "company"
	OrgTeam    OrganizationType = "team"
)

// Organization representa um grupo (família, empresa, equipe) ao qual o
// usuário pertence e onde pode registrar gastos compartilhados
type Organization struct {
	ID   string           `json:"id"`
	Name string           `json:"name"`
	Type OrganizationType `json:"type"`
	Role string           `json:"role,omitempty"`
}

// CategorySummary agrega gastos de uma categoria em um período
type CategorySummary struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}
