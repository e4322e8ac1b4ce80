package budget

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamposv/edcora-finance-sub000/pkg/domain"
	"github.com/jcamposv/edcora-finance-sub000/pkg/logger"
	"github.com/jcamposv/edcora-finance-sub000/pkg/repository"
)

// fakeBudgetRepo implementa repository.BudgetRepository sobre valores
// fixos, o suficiente para exercitar o avaliador
type fakeBudgetRepo struct {
	spent      float64
	alerted    bool
	sumErr     error
	hasErr     error
	sumCalls   int
	checkCalls int
}

func (f *fakeBudgetRepo) Create(ctx context.Context, b *domain.Budget) (string, error) {
	return "", errors.New("não implementado")
}

func (f *fakeBudgetRepo) FindActive(ctx context.Context, userID, category string) ([]domain.Budget, error) {
	return nil, nil
}

func (f *fakeBudgetRepo) SumExpenses(ctx context.Context, userID, category string, start, end time.Time) (float64, error) {
	f.sumCalls++
	return f.spent, f.sumErr
}

func (f *fakeBudgetRepo) HasAlertAtThreshold(ctx context.Context, budgetID string, threshold float64) (bool, error) {
	f.checkCalls++
	return f.alerted, f.hasErr
}

func (f *fakeBudgetRepo) InsertAlert(ctx context.Context, alert *domain.BudgetAlert) (string, error) {
	return "alert-1", nil
}

func testBudget() *domain.Budget {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Budget{
		ID:              "budget-1",
		UserID:          "user-1",
		Name:            "Presupuesto Comida",
		Category:        "Comida",
		Amount:          100000,
		Period:          domain.PeriodMonthly,
		StartDate:       now,
		EndDate:         now.AddDate(0, 1, 0),
		AlertPercentage: 80,
		Status:          domain.BudgetActive,
	}
}

func TestEvaluateBelowThreshold(t *testing.T) {
	repo := &fakeBudgetRepo{spent: 50000}
	ev := NewEvaluator(repo, logger.Nop{})

	event, err := ev.Evaluate(context.Background(), testBudget(), 10000)
	require.NoError(t, err)
	assert.Nil(t, event)

	// Abaixo do umbral nem consulta os alertas existentes
	assert.Equal(t, 0, repo.checkCalls)
}

func TestEvaluateCrossingEmitsEvent(t *testing.T) {
	repo := &fakeBudgetRepo{spent: 60000}
	ev := NewEvaluator(repo, logger.Nop{})

	event, err := ev.Evaluate(context.Background(), testBudget(), 25000)
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.Equal(t, "budget-1", event.BudgetID)
	assert.Equal(t, "Comida", event.Category)
	assert.InDelta(t, 85.0, event.PercentageSpent, 0.001)
	assert.InDelta(t, 85000.0, event.AmountSpent, 0.001)
	assert.False(t, event.OverBudget)
}

func TestEvaluateAlreadyAlertedIsSilent(t *testing.T) {
	repo := &fakeBudgetRepo{spent: 85000, alerted: true}
	ev := NewEvaluator(repo, logger.Nop{})

	event, err := ev.Evaluate(context.Background(), testBudget(), 10000)
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.Equal(t, 1, repo.checkCalls)
}

func TestEvaluateSequenceEmitsExactlyOneEvent(t *testing.T) {
	// Três gastos levando o acumulado a 60%, 85% e 95%: só o segundo,
	// que cruza o umbral de 80%, emite evento
	repo := &fakeBudgetRepo{}
	ev := NewEvaluator(repo, logger.Nop{})
	b := testBudget()

	var events int

	repo.spent = 0
	event, err := ev.Evaluate(context.Background(), b, 60000)
	require.NoError(t, err)
	if event != nil {
		events++
	}

	repo.spent = 60000
	event, err = ev.Evaluate(context.Background(), b, 25000)
	require.NoError(t, err)
	if event != nil {
		events++
		repo.alerted = true
	}

	repo.spent = 85000
	event, err = ev.Evaluate(context.Background(), b, 10000)
	require.NoError(t, err)
	if event != nil {
		events++
	}

	assert.Equal(t, 1, events)
}

func TestEvaluateOverBudget(t *testing.T) {
	repo := &fakeBudgetRepo{spent: 95000}
	ev := NewEvaluator(repo, logger.Nop{})

	event, err := ev.Evaluate(context.Background(), testBudget(), 10000)
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.True(t, event.OverBudget)
	assert.InDelta(t, 105.0, event.PercentageSpent, 0.001)
}

func TestEvaluateZeroAmountBudget(t *testing.T) {
	repo := &fakeBudgetRepo{}
	ev := NewEvaluator(repo, logger.Nop{})

	b := testBudget()
	b.Amount = 0
	event, err := ev.Evaluate(context.Background(), b, 5000)
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.Equal(t, 0, repo.sumCalls)
}

// racingBudgetRepo simula a restrição UNIQUE (budget_id, period_start)
// do banco: a primeira inserção vence, as demais recebem
// ErrDuplicateAlert. Seguro para escritores concorrentes.
type racingBudgetRepo struct {
	mu     sync.Mutex
	spent  float64
	alerts []*domain.BudgetAlert
}

func (f *racingBudgetRepo) Create(ctx context.Context, b *domain.Budget) (string, error) {
	return "", errors.New("não implementado")
}

func (f *racingBudgetRepo) FindActive(ctx context.Context, userID, category string) ([]domain.Budget, error) {
	return nil, nil
}

func (f *racingBudgetRepo) SumExpenses(ctx context.Context, userID, category string, start, end time.Time) (float64, error) {
	return f.spent, nil
}

func (f *racingBudgetRepo) HasAlertAtThreshold(ctx context.Context, budgetID string, threshold float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.alerts) > 0, nil
}

func (f *racingBudgetRepo) InsertAlert(ctx context.Context, alert *domain.BudgetAlert) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.alerts {
		if a.BudgetID == alert.BudgetID && a.PeriodStart.Equal(alert.PeriodStart) {
			return "", repository.ErrDuplicateAlert
		}
	}
	f.alerts = append(f.alerts, alert)
	return "alert-1", nil
}

func TestEvaluateConcurrentWritersPersistOneAlert(t *testing.T) {
	// Escritores concorrentes avaliando e inserindo contra o mesmo
	// orçamento: a leitura check-then-act pode deixar vários passarem,
	// mas a restrição de unicidade garante exatamente um alerta
	repo := &racingBudgetRepo{spent: 75000}
	ev := NewEvaluator(repo, logger.Nop{})
	b := testBudget()

	const writers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	var persisted, duplicates int

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			event, err := ev.Evaluate(context.Background(), b, 10000)
			if !assert.NoError(t, err) || event == nil {
				return
			}
			alert := &domain.BudgetAlert{
				BudgetID:        b.ID,
				PeriodStart:     b.StartDate,
				PercentageSpent: event.PercentageSpent,
				AmountSpent:     event.AmountSpent,
			}
			_, err = repo.InsertAlert(context.Background(), alert)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				persisted++
			case errors.Is(err, repository.ErrDuplicateAlert):
				duplicates++
			default:
				t.Errorf("erro inesperado ao inserir alerta: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, persisted)
	require.Len(t, repo.alerts, 1)
}

func TestEvaluateRepositoryErrors(t *testing.T) {
	boom := errors.New("conexión perdida")

	repo := &fakeBudgetRepo{sumErr: boom}
	ev := NewEvaluator(repo, logger.Nop{})
	_, err := ev.Evaluate(context.Background(), testBudget(), 5000)
	assert.ErrorIs(t, err, boom)

	repo = &fakeBudgetRepo{spent: 90000, hasErr: boom}
	ev = NewEvaluator(repo, logger.Nop{})
	_, err = ev.Evaluate(context.Background(), testBudget(), 5000)
	assert.ErrorIs(t, err, boom)
}
