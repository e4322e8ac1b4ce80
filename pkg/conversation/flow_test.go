package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamposv/edcora-finance-sub000/pkg/domain"
	"github.com/jcamposv/edcora-finance-sub000/pkg/intent"
	"github.com/jcamposv/edcora-finance-sub000/pkg/logger"
	"github.com/jcamposv/edcora-finance-sub000/pkg/repository"
)

// --- Fakes das portas de repositório ---

type fakeTransactions struct {
	mu        sync.Mutex
	created   []*domain.Transaction
	createErr error
	recent    []domain.Transaction
	deleted   *domain.Transaction
	summaries []domain.CategorySummary
}

func (f *fakeTransactions) Create(ctx context.Context, tx *domain.Transaction) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, tx)
	return fmt.Sprintf("tx-%d", len(f.created)), nil
}

func (f *fakeTransactions) FindRecent(ctx context.Context, userID string, limit int) ([]domain.Transaction, error) {
	return f.recent, nil
}

func (f *fakeTransactions) DeleteLast(ctx context.Context, userID string) (*domain.Transaction, error) {
	if f.deleted == nil {
		return nil, repository.ErrNotFound
	}
	return f.deleted, nil
}

func (f *fakeTransactions) SumByCategory(ctx context.Context, userID string, start, end time.Time) ([]domain.CategorySummary, error) {
	return f.summaries, nil
}

type fakeBudgets struct {
	mu        sync.Mutex
	created   []*domain.Budget
	createErr error
	active    []domain.Budget
	spent     float64
	alerted   bool
	alerts    []*domain.BudgetAlert
	insertErr error
}

func (f *fakeBudgets) Create(ctx context.Context, b *domain.Budget) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, b)
	return fmt.Sprintf("budget-%d", len(f.created)), nil
}

func (f *fakeBudgets) FindActive(ctx context.Context, userID, category string) ([]domain.Budget, error) {
	return f.active, nil
}

func (f *fakeBudgets) SumExpenses(ctx context.Context, userID, category string, start, end time.Time) (float64, error) {
	return f.spent, nil
}

func (f *fakeBudgets) HasAlertAtThreshold(ctx context.Context, budgetID string, threshold float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.alerted {
		return true, nil
	}
	for _, a := range f.alerts {
		if a.BudgetID == budgetID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBudgets) InsertAlert(ctx context.Context, alert *domain.BudgetAlert) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.alerts = append(f.alerts, alert)
	return fmt.Sprintf("alert-%d", len(f.alerts)), nil
}

type fakeOrganizations struct {
	orgs         []domain.Organization
	createdName  string
	createdType  domain.OrganizationType
	invitedTo    string
	invitedPhone string
	acceptName   string
}

func (f *fakeOrganizations) ListForUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	return f.orgs, nil
}

func (f *fakeOrganizations) Create(ctx context.Context, userID, name string, orgType domain.OrganizationType) (string, error) {
	f.createdName = name
	f.createdType = orgType
	return "org-new", nil
}

func (f *fakeOrganizations) Invite(ctx context.Context, orgID, phone string) error {
	f.invitedTo = orgID
	f.invitedPhone = phone
	return nil
}

func (f *fakeOrganizations) AcceptPending(ctx context.Context, userID string) (string, error) {
	if f.acceptName == "" {
		return "", repository.ErrNotFound
	}
	return f.acceptName, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []*domain.AlertEvent
}

func (f *fakeNotifier) NotifyBudgetAlert(ctx context.Context, userID string, event *domain.AlertEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type managerFixture struct {
	manager      *Manager
	sessions     *MemoryStore
	transactions *fakeTransactions
	budgets      *fakeBudgets
	orgs         *fakeOrganizations
	notifier     *fakeNotifier
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()

	extractor := intent.NewExtractor("")
	classifier, err := intent.NewClassifier(intent.DefaultTable(), extractor, logger.Nop{})
	require.NoError(t, err)

	f := &managerFixture{
		sessions:     NewMemoryStore(0),
		transactions: &fakeTransactions{},
		budgets:      &fakeBudgets{},
		orgs:         &fakeOrganizations{},
		notifier:     &fakeNotifier{},
	}
	f.manager = NewManager(classifier, extractor, f.sessions,
		f.transactions, f.budgets, f.orgs, f.notifier, logger.Nop{})
	return f
}

func (f *managerFixture) process(t *testing.T, message string) *intent.ActionResult {
	t.Helper()
	result, err := f.manager.ProcessMessage(context.Background(), "user-1", message)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

// --- Orçamentos ---

func TestBudgetFlowSlotAccumulation(t *testing.T) {
	f := newManagerFixture(t)

	// Enquanto faltam slots o resultado reporta success=false
	result := f.process(t, "crear presupuesto")
	assert.Equal(t, "budget_need_both", result.Action)
	assert.False(t, result.Success)

	session := f.sessions.Get("user-1")
	require.NotNil(t, session)
	assert.Equal(t, FlowCreatingBudget, session.CurrentFlow)

	result = f.process(t, "para comida")
	assert.Equal(t, "budget_need_amount", result.Action)
	assert.False(t, result.Success)

	result = f.process(t, "100000")
	assert.Equal(t, "budget_created", result.Action)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.OperationID)

	require.Len(t, f.budgets.created, 1)
	b := f.budgets.created[0]
	assert.Equal(t, "Comida", b.Category)
	assert.Equal(t, 100000.0, b.Amount)
	assert.Equal(t, domain.PeriodMonthly, b.Period)
	assert.Equal(t, DefaultAlertPercentage, b.AlertPercentage)
	assert.Equal(t, domain.BudgetActive, b.Status)

	// Ação terminal destrói a sessão
	assert.Nil(t, f.sessions.Get("user-1"))
}

func TestBudgetDirectCreation(t *testing.T) {
	f := newManagerFixture(t)

	result := f.process(t, "crear presupuesto semanal de 50000 para gasolina con alerta al 90%")
	assert.Equal(t, "budget_created", result.Action)

	require.Len(t, f.budgets.created, 1)
	b := f.budgets.created[0]
	assert.Equal(t, "Gasolina", b.Category)
	assert.Equal(t, 50000.0, b.Amount)
	assert.Equal(t, domain.PeriodWeekly, b.Period)
	assert.Equal(t, 90.0, b.AlertPercentage)

	assert.Nil(t, f.sessions.Get("user-1"))
}

func TestBudgetFlowRetriesOnBadAmount(t *testing.T) {
	f := newManagerFixture(t)

	result := f.process(t, "presupuesto para comida")
	assert.Equal(t, "budget_need_amount", result.Action)
	assert.False(t, result.Success)

	result = f.process(t, "no sé")
	assert.Equal(t, "budget_need_amount", result.Action)
	assert.False(t, result.Success)
	require.NotNil(t, f.sessions.Get("user-1"))

	result = f.process(t, "50000")
	assert.Equal(t, "budget_created", result.Action)
	require.Len(t, f.budgets.created, 1)
	assert.Equal(t, 50000.0, f.budgets.created[0].Amount)
}

func TestBudgetGuidedFlowKeepsPeriod(t *testing.T) {
	// O período extraído na primeira mensagem sobrevive ao fluxo guiado
	f := newManagerFixture(t)

	result := f.process(t, "crear presupuesto semanal")
	assert.Equal(t, "budget_need_both", result.Action)

	f.process(t, "para comida")
	result = f.process(t, "100000")
	assert.Equal(t, "budget_created", result.Action)

	require.Len(t, f.budgets.created, 1)
	assert.Equal(t, domain.PeriodWeekly, f.budgets.created[0].Period)
	assert.Equal(t, DefaultAlertPercentage, f.budgets.created[0].AlertPercentage)
}

func TestBudgetCreateErrorDropsSession(t *testing.T) {
	f := newManagerFixture(t)
	f.budgets.createErr = errors.New("conexión perdida")

	_, err := f.manager.ProcessMessage(context.Background(), "user-1", "presupuesto de 100000 para comida")
	require.Error(t, err)
	assert.Nil(t, f.sessions.Get("user-1"))
}

// --- Gastos ---

func TestExpenseEndToEndPersonal(t *testing.T) {
	f := newManagerFixture(t)

	result := f.process(t, "gasté 5000 en almuerzo")
	assert.Equal(t, "expense_created", result.Action)
	assert.NotEmpty(t, result.OperationID)

	require.Len(t, f.transactions.created, 1)
	tx := f.transactions.created[0]
	assert.Equal(t, 5000.0, tx.Amount)
	assert.Equal(t, domain.TypeExpense, tx.Type)
	assert.Equal(t, "Comida", tx.Category)
	assert.Equal(t, "almuerzo", tx.Description)
	assert.Empty(t, tx.OrganizationID)

	assert.Nil(t, f.sessions.Get("user-1"))
}

func TestExpenseFlowAsksForDescription(t *testing.T) {
	f := newManagerFixture(t)

	result := f.process(t, "gasté 5000")
	assert.Equal(t, "expense_need_description", result.Action)
	assert.False(t, result.Success)

	session := f.sessions.Get("user-1")
	require.NotNil(t, session)
	assert.Equal(t, FlowAddingExpense, session.CurrentFlow)

	result = f.process(t, "almuerzo con amigos")
	assert.Equal(t, "expense_created", result.Action)

	require.Len(t, f.transactions.created, 1)
	assert.Equal(t, "almuerzo con amigos", f.transactions.created[0].Description)
	assert.Equal(t, "Comida", f.transactions.created[0].Category)
}

func TestExpenseOrganizationSelectionByNumber(t *testing.T) {
	f := newManagerFixture(t)
	f.orgs.orgs = []domain.Organization{
		{ID: "org-1", Name: "Familia García", Type: domain.OrgFamily, Role: "owner"},
		{ID: "org-2", Name: "Oficina", Type: domain.OrgCompany, Role: "member"},
	}

	result := f.process(t, "gasté 5000 en almuerzo")
	assert.Equal(t, "expense_need_organization", result.Action)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Familia García")
	assert.Contains(t, result.Message, "3. 👤 Personal")

	result = f.process(t, "2")
	assert.Equal(t, "expense_created", result.Action)

	require.Len(t, f.transactions.created, 1)
	assert.Equal(t, "org-2", f.transactions.created[0].OrganizationID)
	assert.Nil(t, f.sessions.Get("user-1"))
}

func TestExpenseOrganizationSelectionPersonal(t *testing.T) {
	f := newManagerFixture(t)
	f.orgs.orgs = []domain.Organization{
		{ID: "org-1", Name: "Familia García", Type: domain.OrgFamily},
	}

	f.process(t, "gasté 5000 en almuerzo")
	result := f.process(t, "personal")
	assert.Equal(t, "expense_created", result.Action)

	require.Len(t, f.transactions.created, 1)
	assert.Empty(t, f.transactions.created[0].OrganizationID)
}

func TestExpenseOrganizationSelectionByName(t *testing.T) {
	f := newManagerFixture(t)
	f.orgs.orgs = []domain.Organization{
		{ID: "org-1", Name: "Familia García", Type: domain.OrgFamily},
		{ID: "org-2", Name: "Oficina", Type: domain.OrgCompany},
	}

	f.process(t, "gasté 5000 en almuerzo")
	result := f.process(t, "oficina")
	assert.Equal(t, "expense_created", result.Action)
	assert.Equal(t, "org-2", f.transactions.created[0].OrganizationID)
}

func TestExpenseOrganizationSelectionRetry(t *testing.T) {
	f := newManagerFixture(t)
	f.orgs.orgs = []domain.Organization{
		{ID: "org-1", Name: "Familia García", Type: domain.OrgFamily},
	}

	f.process(t, "gasté 5000 en almuerzo")

	result := f.process(t, "9")
	assert.Equal(t, "expense_need_organization", result.Action)
	require.NotNil(t, f.sessions.Get("user-1"))

	result = f.process(t, "1")
	assert.Equal(t, "expense_created", result.Action)
	assert.Equal(t, "org-1", f.transactions.created[0].OrganizationID)
}

func TestExpenseExplicitOrganizationContext(t *testing.T) {
	f := newManagerFixture(t)
	f.orgs.orgs = []domain.Organization{
		{ID: "org-1", Name: "Familia García", Type: domain.OrgFamily},
		{ID: "org-2", Name: "Oficina", Type: domain.OrgCompany},
	}

	// Contexto explícito na mensagem dispensa a pergunta de seleção
	result := f.process(t, "gasté 40000 de gasolina en familia")
	assert.Equal(t, "expense_created", result.Action)

	require.Len(t, f.transactions.created, 1)
	assert.Equal(t, "org-1", f.transactions.created[0].OrganizationID)
	assert.Equal(t, "Gasolina", f.transactions.created[0].Category)
}

func TestExpenseExplicitPersonalContext(t *testing.T) {
	// "personal" na própria mensagem vai direto para a conta pessoal,
	// mesmo com organizações disponíveis
	f := newManagerFixture(t)
	f.orgs.orgs = []domain.Organization{
		{ID: "org-1", Name: "Familia García", Type: domain.OrgFamily},
	}

	result := f.process(t, "gasté 5000 en personal")
	assert.Equal(t, "expense_created", result.Action)

	require.Len(t, f.transactions.created, 1)
	assert.Empty(t, f.transactions.created[0].OrganizationID)
	assert.Nil(t, f.sessions.Get("user-1"))
}

func TestIncomeCreation(t *testing.T) {
	f := newManagerFixture(t)

	result := f.process(t, "recibí 20000 de salario")
	assert.Equal(t, "income_created", result.Action)

	require.Len(t, f.transactions.created, 1)
	tx := f.transactions.created[0]
	assert.Equal(t, domain.TypeIncome, tx.Type)
	assert.Equal(t, 20000.0, tx.Amount)
	assert.Equal(t, "salario", tx.Description)
}

// --- Alertas de orçamento ---

func alertFixtureBudget() domain.Budget {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return domain.Budget{
		ID:              "budget-1",
		UserID:          "user-1",
		Name:            "Presupuesto Comida",
		Category:        "Comida",
		Amount:          10000,
		Period:          domain.PeriodMonthly,
		StartDate:       start,
		EndDate:         start.AddDate(0, 1, 0),
		AlertPercentage: 80,
		Status:          domain.BudgetActive,
	}
}

func TestExpenseCrossingThresholdEmitsAlert(t *testing.T) {
	f := newManagerFixture(t)
	f.budgets.active = []domain.Budget{alertFixtureBudget()}
	f.budgets.spent = 7000

	result := f.process(t, "gasté 2000 en almuerzo")
	assert.Equal(t, "expense_created", result.Action)
	assert.Contains(t, result.Message, "Alerta de presupuesto")

	require.Len(t, f.budgets.alerts, 1)
	alert := f.budgets.alerts[0]
	assert.Equal(t, "budget-1", alert.BudgetID)
	assert.Equal(t, alertFixtureBudget().StartDate, alert.PeriodStart)
	assert.InDelta(t, 90.0, alert.PercentageSpent, 0.001)
	assert.True(t, alert.MessageSent)

	require.Len(t, f.notifier.events, 1)
	assert.False(t, f.notifier.events[0].OverBudget)
}

func TestExpenseBelowThresholdNoAlert(t *testing.T) {
	f := newManagerFixture(t)
	f.budgets.active = []domain.Budget{alertFixtureBudget()}
	f.budgets.spent = 2000

	result := f.process(t, "gasté 2000 en almuerzo")
	assert.Equal(t, "expense_created", result.Action)
	assert.NotContains(t, result.Message, "Alerta")
	assert.Empty(t, f.budgets.alerts)
	assert.Empty(t, f.notifier.events)
}

func TestExpenseAlreadyAlertedStaysSilent(t *testing.T) {
	f := newManagerFixture(t)
	f.budgets.active = []domain.Budget{alertFixtureBudget()}
	f.budgets.spent = 8500
	f.budgets.alerted = true

	result := f.process(t, "gasté 1000 en almuerzo")
	assert.Equal(t, "expense_created", result.Action)
	assert.NotContains(t, result.Message, "Alerta")
	assert.Empty(t, f.budgets.alerts)
}

func TestExpenseDuplicateAlertInsertIsSwallowed(t *testing.T) {
	// Outro gasto concorrente registrou o alerta primeiro: o gasto ainda
	// é criado, mas sem texto de alerta nem notificação
	f := newManagerFixture(t)
	f.budgets.active = []domain.Budget{alertFixtureBudget()}
	f.budgets.spent = 7000
	f.budgets.insertErr = repository.ErrDuplicateAlert

	result := f.process(t, "gasté 2000 en almuerzo")
	assert.Equal(t, "expense_created", result.Action)
	assert.NotContains(t, result.Message, "Alerta")
	assert.Empty(t, f.notifier.events)
	require.Len(t, f.transactions.created, 1)
}

func TestExpenseOverBudgetAlert(t *testing.T) {
	f := newManagerFixture(t)
	f.budgets.active = []domain.Budget{alertFixtureBudget()}
	f.budgets.spent = 9500

	result := f.process(t, "gasté 1000 en almuerzo")
	assert.Contains(t, result.Message, "excedido")

	require.Len(t, f.notifier.events, 1)
	assert.True(t, f.notifier.events[0].OverBudget)
}

func TestExpenseConcurrentWritersPersistOneAlert(t *testing.T) {
	// Várias entregas concorrentes do mesmo gasto (reintentos de webhook)
	// cruzando o umbral: todas registram a transação, mas só um alerta é
	// persistido e notificado
	f := newManagerFixture(t)
	f.budgets.active = []domain.Budget{alertFixtureBudget()}
	f.budgets.spent = 7000

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.manager.ProcessMessage(context.Background(), "user-1", "gasté 2000 en almuerzo")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, f.transactions.created, writers)
	require.Len(t, f.budgets.alerts, 1)
	assert.Len(t, f.notifier.events, 1)
}

// --- Preempção e recuperação de fluxo ---

func TestHighConfidenceIntentPreemptsFlow(t *testing.T) {
	f := newManagerFixture(t)
	f.orgs.acceptName = "Familia García"

	f.process(t, "crear presupuesto")
	require.Equal(t, FlowCreatingBudget, f.sessions.Get("user-1").CurrentFlow)

	result := f.process(t, "acepto, sí quiero unirme, aceptar")
	assert.Equal(t, "invitation_accepted", result.Action)
	assert.Equal(t, FlowNone, f.sessions.Get("user-1").CurrentFlow)
}

func TestLowConfidenceDoesNotPreemptFlow(t *testing.T) {
	f := newManagerFixture(t)

	f.process(t, "crear presupuesto")

	// "resumen" classifica como relatório com confiança baixa; o fluxo
	// em andamento trata a mensagem como continuação
	result := f.process(t, "resumen")
	assert.NotEqual(t, "report_generated", result.Action)
	require.NotNil(t, f.sessions.Get("user-1"))
}

func TestCorruptedFlowStateResets(t *testing.T) {
	f := newManagerFixture(t)

	session := f.sessions.GetOrCreate("user-1")
	session.CurrentFlow = FlowKind("legacy_flow")

	result := f.process(t, "hola")
	assert.Equal(t, "session_reset", result.Action)
	assert.Nil(t, f.sessions.Get("user-1"))
}

// --- Gestão de transações e relatórios ---

func TestDeleteLastTransaction(t *testing.T) {
	f := newManagerFixture(t)
	f.transactions.deleted = &domain.Transaction{Amount: 5000, Description: "almuerzo"}

	result := f.process(t, "eliminar último gasto")
	assert.Equal(t, "transaction_deleted", result.Action)
	assert.Contains(t, result.Message, "almuerzo")
}

func TestDeleteLastTransactionEmpty(t *testing.T) {
	f := newManagerFixture(t)

	result := f.process(t, "eliminar último gasto")
	assert.Equal(t, "no_transactions", result.Action)
}

func TestListRecentTransactions(t *testing.T) {
	f := newManagerFixture(t)
	f.transactions.recent = []domain.Transaction{
		{Amount: 5000, Description: "almuerzo"},
		{Amount: 12000, Description: "gasolina", OrganizationID: "org-1"},
	}

	result := f.process(t, "mis últimos gastos")
	assert.Equal(t, "transactions_listed", result.Action)
	assert.Contains(t, result.Message, "almuerzo")
	assert.Contains(t, result.Message, "gasolina")
}

func TestMonthlyReport(t *testing.T) {
	f := newManagerFixture(t)
	f.transactions.summaries = []domain.CategorySummary{
		{Category: "Comida", Total: 25000, Count: 3},
		{Category: "Transporte", Total: 8000, Count: 2},
	}

	result := f.process(t, "resumen")
	assert.Equal(t, "report_generated", result.Action)
	assert.Contains(t, result.Message, "Comida")
	assert.Contains(t, result.Message, "33,000")
}

// --- Organizações ---

func TestCreateOrganization(t *testing.T) {
	f := newManagerFixture(t)

	result := f.process(t, "crear familia Mi Hogar")
	assert.Equal(t, "organization_created", result.Action)
	assert.Equal(t, "Mi Hogar", f.orgs.createdName)
	assert.Equal(t, domain.OrgFamily, f.orgs.createdType)
}

func TestInviteMember(t *testing.T) {
	f := newManagerFixture(t)
	f.orgs.orgs = []domain.Organization{
		{ID: "org-1", Name: "Oficina", Type: domain.OrgCompany, Role: "member"},
		{ID: "org-2", Name: "Familia García", Type: domain.OrgFamily, Role: "owner"},
	}

	result := f.process(t, "invitar a 8888 9999")
	assert.Equal(t, "invitation_sent", result.Action)

	// Sem contexto explícito o convite vai para a organização onde o
	// usuário é dono
	assert.Equal(t, "org-2", f.orgs.invitedTo)
	assert.Equal(t, "+50688889999", f.orgs.invitedPhone)
}

func TestInviteMemberWithoutOrganizations(t *testing.T) {
	f := newManagerFixture(t)

	result := f.process(t, "invitar a 8888 9999")
	assert.Equal(t, "no_organizations", result.Action)
}

func TestAcceptInvitationWithoutPending(t *testing.T) {
	f := newManagerFixture(t)

	result := f.process(t, "acepto")
	assert.Equal(t, "no_pending_invitation", result.Action)
}

func TestListOrganizations(t *testing.T) {
	f := newManagerFixture(t)
	f.orgs.orgs = []domain.Organization{
		{ID: "org-1", Name: "Familia García", Type: domain.OrgFamily, Role: "owner"},
	}

	result := f.process(t, "mis organizaciones")
	assert.Equal(t, "organizations_listed", result.Action)
	assert.Contains(t, result.Message, "Familia García")
}

// --- Intenções simples ---

func TestUnknownIntent(t *testing.T) {
	f := newManagerFixture(t)

	result := f.process(t, "zkxqwv blarg")
	assert.Equal(t, "unknown_intent", result.Action)
	assert.Equal(t, msgUnknown, result.Message)
}

func TestHelpAndPrivacy(t *testing.T) {
	f := newManagerFixture(t)

	result := f.process(t, "ayuda")
	assert.Equal(t, "help", result.Action)

	result = f.process(t, "privacidad")
	assert.Equal(t, "privacy", result.Action)
}
