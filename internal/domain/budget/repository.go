package budget

import (
	"context"
	"time"
)

// Repository define a interface para operações de repositório de
// orçamentos e alertas
type Repository interface {
	// Create cria um novo orçamento
	Create(ctx context.Context, b *Budget) error

	// FindByID busca um orçamento pelo ID
	FindByID(ctx context.Context, id string) (*Budget, error)

	// FindActiveByUser devolve os orçamentos ativos do usuário cuja
	// janela cobre o instante
	FindActiveByUser(ctx context.Context, userID string, at time.Time) ([]*Budget, error)

	// FindActiveByCategory filtra FindActiveByUser pela categoria.
	// O casamento é case-insensitive por substring; orçamentos com
	// categoria "general"/"todos"/"all" casam com qualquer gasto.
	FindActiveByCategory(ctx context.Context, userID, category string, at time.Time) ([]*Budget, error)

	// List lista os orçamentos do usuário com paginação
	List(ctx context.Context, userID string, limit, offset int) ([]*Budget, error)

	// Update atualiza os dados de um orçamento
	Update(ctx context.Context, b *Budget) error

	// UpdateStatus atualiza o estado de um orçamento
	UpdateStatus(ctx context.Context, id string, status Status) error

	// Delete remove um orçamento e seus alertas
	Delete(ctx context.Context, id string) error

	// HasAlertAtThreshold verifica se já existe alerta do orçamento com
	// percentage_spent >= threshold
	HasAlertAtThreshold(ctx context.Context, budgetID string, threshold float64) (bool, error)

	// CreateAlert persiste um alerta. Devolve ErrDuplicateAlert quando a
	// restrição única (budget_id, period_start) é violada.
	CreateAlert(ctx context.Context, a *Alert) error

	// ListAlerts devolve os alertas de um orçamento, do mais recente
	// para o mais antigo
	ListAlerts(ctx context.Context, budgetID string) ([]*Alert, error)
}
