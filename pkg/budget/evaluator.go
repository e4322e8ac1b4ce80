package budget

import (
	"context"
	"fmt"

	"github.com/jcamposv/edcora-finance-sub000/pkg/domain"
	"github.com/jcamposv/edcora-finance-sub000/pkg/logger"
	"github.com/jcamposv/edcora-finance-sub000/pkg/repository"
)

// Evaluator decide se um novo gasto cruza o umbral de alerta de um
// orçamento. Garante no máximo um alerta por cruzamento de umbral: o
// primeiro gasto que leva o acumulado ao percentual configurado emite o
// evento, os seguintes não. O Evaluator só lê; persistir o BudgetAlert
// e entregar a notificação é responsabilidade de quem chama.
type Evaluator struct {
	budgets repository.BudgetRepository
	logger  logger.Logger
}

// NewEvaluator cria um Evaluator sobre o repositório de orçamentos
func NewEvaluator(budgets repository.BudgetRepository, log logger.Logger) *Evaluator {
	return &Evaluator{
		budgets: budgets,
		logger:  log,
	}
}

// Evaluate projeta o gasto acumulado do orçamento com o novo valor e
// devolve um AlertEvent quando o umbral é cruzado pela primeira vez;
// nil quando não há alerta a emitir. Deve ser chamado ANTES de
// persistir o novo gasto, para que a soma não o conte duas vezes.
func (e *Evaluator) Evaluate(ctx context.Context, b *domain.Budget, newExpenseAmount float64) (*domain.AlertEvent, error) {
	// Orçamento sem valor não dispara nada; percentual definido como 0
	// para não dividir por zero
	if b.Amount <= 0 {
		return nil, nil
	}

	spentSoFar, err := e.budgets.SumExpenses(ctx, b.UserID, b.Category, b.StartDate, b.EndDate)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar gastos do orçamento %s: %w", b.ID, err)
	}

	projectedSpent := spentSoFar + newExpenseAmount
	projectedPercentage := projectedSpent / b.Amount * 100

	if projectedPercentage < b.AlertPercentage {
		return nil, nil
	}

	// O umbral cruza uma vez por período do orçamento, não uma vez por
	// transação
	alreadyAlerted, err := e.budgets.HasAlertAtThreshold(ctx, b.ID, b.AlertPercentage)
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar alertas do orçamento %s: %w", b.ID, err)
	}
	if alreadyAlerted {
		e.logger.Debug("Alerta já emitido para este umbral",
			"budget_id", b.ID,
			"threshold", b.AlertPercentage)
		return nil, nil
	}

	e.logger.Info("Umbral de orçamento cruzado",
		"budget_id", b.ID,
		"category", b.Category,
		"percentage", projectedPercentage)

	return &domain.AlertEvent{
		BudgetID:        b.ID,
		BudgetName:      b.Name,
		Category:        b.Category,
		PercentageSpent: projectedPercentage,
		AmountSpent:     projectedSpent,
		BudgetAmount:    b.Amount,
		OverBudget:      projectedPercentage >= 100,
	}, nil
}
