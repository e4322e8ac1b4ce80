package transaction

import (
	"context"
	"time"
)

// CategoryTotal agrega os gastos de uma categoria em um período
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// Repository define a interface para operações de repositório de transações
type Repository interface {
	// Create cria uma nova transação
	Create(ctx context.Context, t *Transaction) error

	// FindByID busca uma transação pelo ID
	FindByID(ctx context.Context, id string) (*Transaction, error)

	// FindRecentByUser devolve as transações mais recentes do usuário,
	// da mais nova para a mais antiga
	FindRecentByUser(ctx context.Context, userID string, limit int) ([]*Transaction, error)

	// FindLastByUser devolve a transação mais recente do usuário
	FindLastByUser(ctx context.Context, userID string) (*Transaction, error)

	// List lista as transações do usuário com paginação
	List(ctx context.Context, userID string, limit, offset int) ([]*Transaction, error)

	// Delete remove uma transação
	Delete(ctx context.Context, id string) error

	// SumByCategory agrega os gastos do usuário por categoria na janela,
	// ordenado do maior total para o menor
	SumByCategory(ctx context.Context, userID string, start, end time.Time) ([]CategoryTotal, error)

	// SumExpenses soma os gastos do usuário na janela cuja categoria
	// casa com a informada. Categoria vazia, "general", "todos" ou
	// "all" soma tudo; caso contrário o casamento é case-insensitive
	// por substring.
	SumExpenses(ctx context.Context, userID, category string, start, end time.Time) (float64, error)
}
