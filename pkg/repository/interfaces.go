package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jcamposv/edcora-finance-sub000/pkg/domain"
)

// ErrDuplicateAlert é devolvido por InsertAlert quando já existe um
// alerta para o mesmo orçamento e início de período. Sinaliza que a
// invariante de deduplicação já estava garantida; quem chama deve
// engolir este erro.
var ErrDuplicateAlert = errors.New("alerta de orçamento duplicado")

// ErrNotFound é devolvido quando a entidade não existe
var ErrNotFound = errors.New("registro não encontrado")

// TransactionRepository define os métodos de transações consumidos pela
// camada conversacional
type TransactionRepository interface {
	// Create registra uma nova transação e devolve o ID gerado
	Create(ctx context.Context, tx *domain.Transaction) (string, error)

	// FindRecent devolve as transações mais recentes do usuário
	FindRecent(ctx context.Context, userID string, limit int) ([]domain.Transaction, error)

	// DeleteLast remove a transação mais recente do usuário e a devolve
	DeleteLast(ctx context.Context, userID string) (*domain.Transaction, error)

	// SumByCategory agrega os gastos do usuário por categoria no período
	SumByCategory(ctx context.Context, userID string, start, end time.Time) ([]domain.CategorySummary, error)
}

// BudgetRepository define os métodos de orçamentos consumidos pela
// camada conversacional e pelo avaliador de alertas
type BudgetRepository interface {
	// Create registra um novo orçamento e devolve o ID gerado
	Create(ctx context.Context, b *domain.Budget) (string, error)

	// FindActive devolve os orçamentos ativos do usuário cujo período
	// cobre o momento atual e cuja categoria casa com a informada.
	// O casamento é case-insensitive por substring; orçamentos com
	// categoria "general"/"todos"/"all" casam com qualquer gasto.
	FindActive(ctx context.Context, userID, category string) ([]domain.Budget, error)

	// SumExpenses soma os gastos do usuário dentro da janela informada,
	// com a mesma regra de casamento de categoria de FindActive
	SumExpenses(ctx context.Context, userID, category string, start, end time.Time) (float64, error)

	// HasAlertAtThreshold verifica se já existe alerta deste orçamento
	// com percentage_spent >= threshold
	HasAlertAtThreshold(ctx context.Context, budgetID string, threshold float64) (bool, error)

	// InsertAlert persiste um alerta. Devolve ErrDuplicateAlert quando a
	// restrição única (budget_id, period_start) é violada.
	InsertAlert(ctx context.Context, alert *domain.BudgetAlert) (string, error)
}

// OrganizationRepository define os métodos de organizações consumidos
// pela camada conversacional
type OrganizationRepository interface {
	// ListForUser devolve as organizações das quais o usuário é membro
	ListForUser(ctx context.Context, userID string) ([]domain.Organization, error)

	// Create cria uma organização com o usuário como dono e devolve o ID
	Create(ctx context.Context, userID, name string, orgType domain.OrganizationType) (string, error)

	// Invite registra um convite pendente para o telefone informado
	Invite(ctx context.Context, orgID, phone string) error

	// AcceptPending aceita o convite pendente mais recente do usuário e
	// devolve o nome da organização. ErrNotFound quando não há convite.
	AcceptPending(ctx context.Context, userID string) (string, error)
}

// AlertNotifier entrega notificações de alerta de orçamento. A entrega
// real (WhatsApp) fica fora do núcleo; a implementação padrão apenas
// registra em log.
type AlertNotifier interface {
	NotifyBudgetAlert(ctx context.Context, userID string, event *domain.AlertEvent) error
}
