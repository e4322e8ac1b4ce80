// Package conversation adapta os repositórios de domínio às portas
// consumidas pela camada conversacional. A camada conversacional enxerga
// tipos simplificados; aqui acontece a tradução e a composição de
// operações (ex: aceitar convite = buscar convite + associar membro).
package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	budgetdomain "github.com/jcamposv/edcora-finance-sub000/internal/domain/budget"
	orgdomain "github.com/jcamposv/edcora-finance-sub000/internal/domain/organization"
	txdomain "github.com/jcamposv/edcora-finance-sub000/internal/domain/transaction"
	userdomain "github.com/jcamposv/edcora-finance-sub000/internal/domain/user"
	"github.com/jcamposv/edcora-finance-sub000/pkg/domain"
	"github.com/jcamposv/edcora-finance-sub000/pkg/logger"
	"github.com/jcamposv/edcora-finance-sub000/pkg/repository"
)

// TransactionAdapter implementa repository.TransactionRepository
type TransactionAdapter struct {
	transactions txdomain.Repository
}

// NewTransactionAdapter cria o adaptador de transações
func NewTransactionAdapter(transactions txdomain.Repository) *TransactionAdapter {
	return &TransactionAdapter{transactions: transactions}
}

// Create implementa repository.TransactionRepository.Create
func (a *TransactionAdapter) Create(ctx context.Context, tx *domain.Transaction) (string, error) {
	entity, err := txdomain.NewTransaction(tx.UserID, txdomain.Type(tx.Type), tx.Amount, tx.Category, tx.Description)
	if err != nil {
		return "", fmt.Errorf("transação inválida: %w", err)
	}
	if tx.OrganizationID != "" {
		entity.AssignOrganization(tx.OrganizationID)
	}
	if !tx.Date.IsZero() {
		entity.Date = tx.Date
	}
	if err := a.transactions.Create(ctx, entity); err != nil {
		return "", err
	}
	return entity.ID, nil
}

// FindRecent implementa repository.TransactionRepository.FindRecent
func (a *TransactionAdapter) FindRecent(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	entities, err := a.transactions.FindRecentByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Transaction, 0, len(entities))
	for _, e := range entities {
		result = append(result, toDomainTransaction(e))
	}
	return result, nil
}

// DeleteLast implementa repository.TransactionRepository.DeleteLast
func (a *TransactionAdapter) DeleteLast(ctx context.Context, userID string) (*domain.Transaction, error) {
	last, err := a.transactions.FindLastByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, txdomain.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := a.transactions.Delete(ctx, last.ID); err != nil {
		if errors.Is(err, txdomain.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	tx := toDomainTransaction(last)
	return &tx, nil
}

// SumByCategory implementa repository.TransactionRepository.SumByCategory
func (a *TransactionAdapter) SumByCategory(ctx context.Context, userID string, start, end time.Time) ([]domain.CategorySummary, error) {
	totals, err := a.transactions.SumByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	result := make([]domain.CategorySummary, 0, len(totals))
	for _, t := range totals {
		result = append(result, domain.CategorySummary{
			Category: t.Category,
			Total:    t.Total,
			Count:    t.Count,
		})
	}
	return result, nil
}

func toDomainTransaction(e *txdomain.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:             e.ID,
		UserID:         e.UserID,
		OrganizationID: e.OrganizationID,
		Amount:         e.Amount,
		Type:           domain.TransactionType(e.Type),
		Category:       e.Category,
		Description:    e.Description,
		Date:           e.Date,
		CreatedAt:      e.CreatedAt,
	}
}

// BudgetAdapter implementa repository.BudgetRepository. A soma de gastos
// sai do repositório de transações; o restante do repositório de
// orçamentos.
type BudgetAdapter struct {
	budgets      budgetdomain.Repository
	transactions txdomain.Repository
	nowFn        func() time.Time
}

// NewBudgetAdapter cria o adaptador de orçamentos
func NewBudgetAdapter(budgets budgetdomain.Repository, transactions txdomain.Repository) *BudgetAdapter {
	return &BudgetAdapter{
		budgets:      budgets,
		transactions: transactions,
		nowFn:        time.Now,
	}
}

// Create implementa repository.BudgetRepository.Create
func (a *BudgetAdapter) Create(ctx context.Context, b *domain.Budget) (string, error) {
	entity, err := budgetdomain.NewBudget(b.UserID, b.Name, b.Category, b.Amount,
		budgetdomain.Period(b.Period), b.AlertPercentage)
	if err != nil {
		return "", fmt.Errorf("orçamento inválido: %w", err)
	}
	if b.OrganizationID != "" {
		entity.OrganizationID = b.OrganizationID
	}
	if !b.StartDate.IsZero() {
		entity.StartDate = b.StartDate
	}
	if !b.EndDate.IsZero() {
		entity.EndDate = b.EndDate
	}
	if err := a.budgets.Create(ctx, entity); err != nil {
		return "", err
	}
	return entity.ID, nil
}

// FindActive implementa repository.BudgetRepository.FindActive
func (a *BudgetAdapter) FindActive(ctx context.Context, userID, category string) ([]domain.Budget, error) {
	entities, err := a.budgets.FindActiveByCategory(ctx, userID, category, a.nowFn())
	if err != nil {
		return nil, err
	}
	result := make([]domain.Budget, 0, len(entities))
	for _, e := range entities {
		result = append(result, domain.Budget{
			ID:              e.ID,
			UserID:          e.UserID,
			OrganizationID:  e.OrganizationID,
			Name:            e.Name,
			Category:        e.Category,
			Amount:          e.Amount,
			Period:          domain.BudgetPeriod(e.Period),
			StartDate:       e.StartDate,
			EndDate:         e.EndDate,
			AlertPercentage: e.AlertPercentage,
			Status:          domain.BudgetStatus(e.Status),
			CreatedAt:       e.CreatedAt,
		})
	}
	return result, nil
}

// SumExpenses implementa repository.BudgetRepository.SumExpenses
func (a *BudgetAdapter) SumExpenses(ctx context.Context, userID, category string, start, end time.Time) (float64, error) {
	return a.transactions.SumExpenses(ctx, userID, category, start, end)
}

// HasAlertAtThreshold implementa repository.BudgetRepository.HasAlertAtThreshold
func (a *BudgetAdapter) HasAlertAtThreshold(ctx context.Context, budgetID string, threshold float64) (bool, error) {
	return a.budgets.HasAlertAtThreshold(ctx, budgetID, threshold)
}

// InsertAlert implementa repository.BudgetRepository.InsertAlert
func (a *BudgetAdapter) InsertAlert(ctx context.Context, alert *domain.BudgetAlert) (string, error) {
	entity := &budgetdomain.Alert{
		ID:              alert.ID,
		BudgetID:        alert.BudgetID,
		PeriodStart:     alert.PeriodStart,
		PercentageSpent: alert.PercentageSpent,
		AmountSpent:     alert.AmountSpent,
		MessageSent:     alert.MessageSent,
		CreatedAt:       alert.CreatedAt,
	}
	if entity.ID == "" {
		entity.ID = uuid.New().String()
	}
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = a.nowFn()
	}
	if err := a.budgets.CreateAlert(ctx, entity); err != nil {
		if errors.Is(err, budgetdomain.ErrDuplicateAlert) {
			return "", repository.ErrDuplicateAlert
		}
		return "", err
	}
	return entity.ID, nil
}

// OrganizationAdapter implementa repository.OrganizationRepository
type OrganizationAdapter struct {
	organizations orgdomain.Repository
	users         userdomain.Repository
}

// NewOrganizationAdapter cria o adaptador de organizações
func NewOrganizationAdapter(organizations orgdomain.Repository, users userdomain.Repository) *OrganizationAdapter {
	return &OrganizationAdapter{organizations: organizations, users: users}
}

// ListForUser implementa repository.OrganizationRepository.ListForUser
func (a *OrganizationAdapter) ListForUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	entities, roles, err := a.organizations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Organization, 0, len(entities))
	for _, e := range entities {
		result = append(result, domain.Organization{
			ID:   e.ID,
			Name: e.Name,
			Type: domain.OrganizationType(e.Type),
			Role: string(roles[e.ID]),
		})
	}
	return result, nil
}

// Create implementa repository.OrganizationRepository.Create
func (a *OrganizationAdapter) Create(ctx context.Context, userID, name string, orgType domain.OrganizationType) (string, error) {
	entity, err := orgdomain.NewOrganization(userID, name, orgdomain.Type(orgType))
	if err != nil {
		return "", fmt.Errorf("organização inválida: %w", err)
	}
	if err := a.organizations.Create(ctx, entity); err != nil {
		return "", err
	}
	return entity.ID, nil
}

// Invite implementa repository.OrganizationRepository.Invite. O convite
// fica pendente por telefone; o convidado pode ainda não ter conta.
func (a *OrganizationAdapter) Invite(ctx context.Context, orgID, phone string) error {
	org, err := a.organizations.FindByID(ctx, orgID)
	if err != nil {
		return err
	}
	inv := orgdomain.NewInvitation(org.ID, org.OwnerID, phone)
	return a.organizations.CreateInvitation(ctx, inv)
}

// AcceptPending implementa repository.OrganizationRepository.AcceptPending
func (a *OrganizationAdapter) AcceptPending(ctx context.Context, userID string) (string, error) {
	u, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userdomain.ErrNotFound) {
			return "", repository.ErrNotFound
		}
		return "", err
	}

	inv, err := a.organizations.FindPendingInvitationByPhone(ctx, u.PhoneNumber)
	if err != nil {
		if errors.Is(err, orgdomain.ErrNoInvitation) {
			return "", repository.ErrNotFound
		}
		return "", err
	}

	member := &orgdomain.Member{
		OrganizationID: inv.OrganizationID,
		UserID:         userID,
		Role:           orgdomain.RoleMember,
		JoinedAt:       time.Now(),
	}
	if err := a.organizations.AddMember(ctx, member); err != nil && !errors.Is(err, orgdomain.ErrAlreadyMember) {
		return "", err
	}

	inv.Accept()
	if err := a.organizations.UpdateInvitation(ctx, inv); err != nil {
		return "", err
	}

	org, err := a.organizations.FindByID(ctx, inv.OrganizationID)
	if err != nil {
		return "", err
	}
	return org.Name, nil
}

// LoggingNotifier implementa repository.AlertNotifier registrando o
// evento em log. A entrega por WhatsApp acontece fora deste serviço, na
// resposta do webhook.
type LoggingNotifier struct {
	logger logger.Logger
}

// NewLoggingNotifier cria o notificador padrão
func NewLoggingNotifier(log logger.Logger) *LoggingNotifier {
	return &LoggingNotifier{logger: log}
}

// NotifyBudgetAlert implementa repository.AlertNotifier.NotifyBudgetAlert
func (n *LoggingNotifier) NotifyBudgetAlert(_ context.Context, userID string, event *domain.AlertEvent) error {
	n.logger.Info("alerta de orçamento emitido",
		"user_id", userID,
		"budget_id", event.BudgetID,
		"percentage_spent", event.PercentageSpent,
		"over_budget", event.OverBudget)
	return nil
}
