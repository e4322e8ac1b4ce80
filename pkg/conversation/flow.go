package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/jcamposv/edcora-finance-sub000/pkg/budget"
	"github.com/jcamposv/edcora-finance-sub000/pkg/domain"
	"github.com/jcamposv/edcora-finance-sub000/pkg/intent"
	"github.com/jcamposv/edcora-finance-sub000/pkg/logger"
	"github.com/jcamposv/edcora-finance-sub000/pkg/repository"
)

const (
	// PreemptConfidence é a confiança mínima para uma nova intenção
	// interromper um fluxo em andamento
	PreemptConfidence = 0.9

	// DefaultAlertPercentage é o umbral de alerta usado quando o usuário
	// não informa um
	DefaultAlertPercentage = 80.0

	recentTransactionsLimit = 5
)

// Manager orquestra o processamento de mensagens: classifica a
// intenção, mantém os fluxos multi-turno por usuário e despacha para os
// repositórios. É o único componente que escreve na sessão.
type Manager struct {
	classifier    *intent.Classifier
	extractor     *intent.Extractor
	sessions      Store
	transactions  repository.TransactionRepository
	budgets       repository.BudgetRepository
	organizations repository.OrganizationRepository
	evaluator     *budget.Evaluator
	notifier      repository.AlertNotifier
	logger        logger.Logger

	nowFn func() time.Time
}

// NewManager cria o Manager com todas as dependências
func NewManager(
	classifier *intent.Classifier,
	extractor *intent.Extractor,
	sessions Store,
	transactions repository.TransactionRepository,
	budgets repository.BudgetRepository,
	organizations repository.OrganizationRepository,
	notifier repository.AlertNotifier,
	log logger.Logger,
) *Manager {
	return &Manager{
		classifier:    classifier,
		extractor:     extractor,
		sessions:      sessions,
		transactions:  transactions,
		budgets:       budgets,
		organizations: organizations,
		evaluator:     budget.NewEvaluator(budgets, log),
		notifier:      notifier,
		logger:        log,
		nowFn:         time.Now,
	}
}

// ProcessMessage processa uma mensagem do usuário e devolve a resposta.
// Todo o read-modify-write da sessão acontece sob o lock do usuário;
// mensagens concorrentes do mesmo usuário são serializadas.
func (m *Manager) ProcessMessage(ctx context.Context, userID, message string) (*intent.ActionResult, error) {
	m.sessions.Lock(userID)
	defer m.sessions.Unlock(userID)

	session := m.sessions.GetOrCreate(userID)
	match := m.classifier.Classify(message)

	if session.CurrentFlow != FlowNone {
		if m.shouldPreempt(session, match) {
			m.logger.Info("fluxo interrompido por nova intenção",
				"user_id", userID,
				"flow", string(session.CurrentFlow),
				"action", string(match.Action))
			session.CurrentFlow = FlowNone
			session.FlowData = make(map[string]interface{})
		} else {
			return m.continueFlow(ctx, userID, session, message)
		}
	}

	if match == nil {
		return &intent.ActionResult{
			Success: true,
			Action:  "unknown_intent",
			Message: msgUnknown,
		}, nil
	}

	m.logger.Debug("intenção detectada",
		"user_id", userID,
		"action", string(match.Action),
		"confidence", match.Confidence)

	return m.dispatch(ctx, userID, session, match, message)
}

// shouldPreempt decide se a intenção detectada interrompe o fluxo atual.
// Exige padrão iniciador de fluxo, confiança alta e fluxo-alvo diferente
// do atual; respostas curtas de continuação nunca passam nesses filtros.
func (m *Manager) shouldPreempt(session *Context, match *intent.Match) bool {
	if match == nil || !match.CanStartFlow {
		return false
	}
	if match.Confidence < PreemptConfidence {
		return false
	}
	return flowForAction(match.Action) != session.CurrentFlow
}

func flowForAction(action intent.ActionKind) FlowKind {
	switch action {
	case intent.ActionManageBudgets:
		return FlowCreatingBudget
	case intent.ActionCreateTransaction:
		return FlowAddingExpense
	default:
		return FlowNone
	}
}

func (m *Manager) continueFlow(ctx context.Context, userID string, session *Context, message string) (*intent.ActionResult, error) {
	switch session.CurrentFlow {
	case FlowCreatingBudget:
		return m.continueBudgetCreation(ctx, userID, session, message)
	case FlowAddingExpense:
		return m.continueExpenseAddition(ctx, userID, session, message)
	default:
		// Estado desconhecido (versão antiga, corrupção). Nunca derruba o
		// processamento: registra, descarta a sessão e recomeça do zero.
		m.logger.Warn("fluxo desconhecido na sessão, descartando",
			"user_id", userID,
			"flow", string(session.CurrentFlow))
		m.sessions.Delete(userID)
		return &intent.ActionResult{
			Success: true,
			Action:  "session_reset",
			Message: msgUnknown,
		}, nil
	}
}

func (m *Manager) dispatch(ctx context.Context, userID string, session *Context, match *intent.Match, message string) (*intent.ActionResult, error) {
	switch match.Action {
	case intent.ActionManageBudgets:
		return m.handleBudget(ctx, userID, session, match, message)
	case intent.ActionCreateTransaction:
		return m.handleTransaction(ctx, userID, session, match, message)
	case intent.ActionManageTransactions:
		return m.handleManageTransactions(ctx, userID, message)
	case intent.ActionGenerateReport:
		return m.handleReport(ctx, userID)
	case intent.ActionCreateOrganization:
		return m.handleCreateOrganization(ctx, userID, match, message)
	case intent.ActionInviteMember:
		return m.handleInviteMember(ctx, userID, match, message)
	case intent.ActionAcceptInvitation:
		return m.handleAcceptInvitation(ctx, userID)
	case intent.ActionListOrganizations, intent.ActionListMembers:
		return m.handleListOrganizations(ctx, userID)
	case intent.ActionLeaveOrganization:
		return &intent.ActionResult{
			Success: true,
			Action:  "leave_organization_info",
			Message: msgLeaveOrganization,
		}, nil
	case intent.ActionHelpRequest:
		return &intent.ActionResult{Success: true, Action: "help", Message: msgHelp}, nil
	case intent.ActionPrivacyRequest:
		return &intent.ActionResult{Success: true, Action: "privacy", Message: msgPrivacy}, nil
	default:
		return &intent.ActionResult{Success: true, Action: "unknown_intent", Message: msgUnknown}, nil
	}
}

// --- Orçamentos ---

func (m *Manager) handleBudget(ctx context.Context, userID string, session *Context, match *intent.Match, message string) (*intent.ActionResult, error) {
	amount, hasAmount := paramFloat(match.Parameters, intent.ParamAmount)
	category, hasCategory := paramString(match.Parameters, intent.ParamCategory)

	period := domain.BudgetPeriod(m.extractor.Period(message))
	if p, ok := paramString(match.Parameters, intent.ParamPeriod); ok {
		period = domain.BudgetPeriod(p)
	}
	alertPct := DefaultAlertPercentage
	if pct, ok := paramFloat(match.Parameters, intent.ParamAlertPercentage); ok {
		alertPct = pct
	}

	if hasAmount && hasCategory {
		return m.createBudget(ctx, userID, category, amount, period, alertPct)
	}

	// O período e o umbral já extraídos sobrevivem ao fluxo guiado
	session.CurrentFlow = FlowCreatingBudget
	session.FlowData = map[string]interface{}{
		intent.ParamPeriod:          string(period),
		intent.ParamAlertPercentage: alertPct,
	}

	switch {
	case hasAmount:
		session.FlowData[intent.ParamAmount] = amount
		return &intent.ActionResult{
			Success: false,
			Action:  "budget_need_category",
			Message: msgBudgetNeedCategory(amount),
		}, nil
	case hasCategory:
		session.FlowData[intent.ParamCategory] = category
		return &intent.ActionResult{
			Success: false,
			Action:  "budget_need_amount",
			Message: msgBudgetNeedAmount(category),
		}, nil
	default:
		return &intent.ActionResult{
			Success: false,
			Action:  "budget_need_both",
			Message: msgBudgetNeedBoth,
		}, nil
	}
}

func (m *Manager) continueBudgetCreation(ctx context.Context, userID string, session *Context, message string) (*intent.ActionResult, error) {
	amount, hasAmount := paramFloat(session.FlowData, intent.ParamAmount)
	category, hasCategory := paramString(session.FlowData, intent.ParamCategory)

	if !hasCategory {
		extracted, ok := m.categoryFromReply(message)
		if !ok {
			return &intent.ActionResult{
				Success: false,
				Action:  "budget_need_category",
				Message: msgBudgetRetryCategory,
			}, nil
		}
		category = extracted
		session.FlowData[intent.ParamCategory] = category
		if !hasAmount {
			return &intent.ActionResult{
				Success: false,
				Action:  "budget_need_amount",
				Message: msgBudgetNeedAmount(category),
			}, nil
		}
	}

	if !hasAmount {
		extracted, ok := m.extractor.Amount(message)
		if !ok {
			return &intent.ActionResult{
				Success: false,
				Action:  "budget_need_amount",
				Message: msgBudgetRetryAmount,
			}, nil
		}
		amount = extracted
	}

	period := domain.PeriodMonthly
	if p, ok := paramString(session.FlowData, intent.ParamPeriod); ok {
		period = domain.BudgetPeriod(p)
	}
	alertPct := DefaultAlertPercentage
	if pct, ok := paramFloat(session.FlowData, intent.ParamAlertPercentage); ok {
		alertPct = pct
	}
	return m.createBudget(ctx, userID, category, amount, period, alertPct)
}

// categoryFromReply extrai a categoria de uma resposta de continuação.
// Diferente da mensagem inicial, aqui a resposta costuma ser a própria
// categoria ("comida"), então texto curto sem números vale como está.
func (m *Manager) categoryFromReply(message string) (string, bool) {
	if category, ok := m.extractor.Category(message); ok {
		return category, true
	}
	trimmed := strings.TrimSpace(message)
	if len(trimmed) < 2 || len(trimmed) > 30 {
		return "", false
	}
	if strings.ContainsAny(trimmed, "0123456789") {
		return "", false
	}
	return titleFirst(trimmed), true
}

func (m *Manager) createBudget(ctx context.Context, userID, category string, amount float64, period domain.BudgetPeriod, alertPct float64) (*intent.ActionResult, error) {
	now := m.nowFn()
	b := &domain.Budget{
		UserID:          userID,
		Name:            "Presupuesto " + category,
		Category:        category,
		Amount:          amount,
		Period:          period,
		StartDate:       now,
		EndDate:         periodEnd(now, period),
		AlertPercentage: alertPct,
		Status:          domain.BudgetActive,
	}

	id, err := m.budgets.Create(ctx, b)
	if err != nil {
		m.sessions.Delete(userID)
		return nil, fmt.Errorf("erro ao criar orçamento: %w", err)
	}

	m.sessions.Delete(userID)
	return &intent.ActionResult{
		Success:     true,
		Action:      "budget_created",
		Message:     msgBudgetCreated(category, amount, alertPct),
		OperationID: uuid.New().String(),
		Data: map[string]interface{}{
			"budget_id": id,
			"category":  category,
			"amount":    amount,
		},
	}, nil
}

func periodEnd(start time.Time, period domain.BudgetPeriod) time.Time {
	switch period {
	case domain.PeriodWeekly:
		return start.AddDate(0, 0, 7)
	case domain.PeriodYearly:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// --- Transações ---

func (m *Manager) handleTransaction(ctx context.Context, userID string, session *Context, match *intent.Match, message string) (*intent.ActionResult, error) {
	amount, hasAmount := paramFloat(match.Parameters, intent.ParamAmount)
	description, hasDescription := paramString(match.Parameters, intent.ParamDescription)

	if txType, _ := paramString(match.Parameters, intent.ParamTransactionType); txType == string(domain.TypeIncome) {
		if !hasAmount {
			return &intent.ActionResult{
				Success: false,
				Action:  "income_need_amount",
				Message: msgExpenseNeedAmount,
			}, nil
		}
		if !hasDescription {
			description = "Ingreso"
		}
		return m.createIncome(ctx, userID, amount, description)
	}

	if !hasAmount {
		session.CurrentFlow = FlowAddingExpense
		session.FlowData = make(map[string]interface{})
		return &intent.ActionResult{
			Success: false,
			Action:  "expense_need_amount",
			Message: msgExpenseNeedAmount,
		}, nil
	}

	if !hasDescription {
		session.CurrentFlow = FlowAddingExpense
		session.FlowData = map[string]interface{}{intent.ParamAmount: amount}
		return &intent.ActionResult{
			Success: false,
			Action:  "expense_need_description",
			Message: msgExpenseNeedDescription(amount),
		}, nil
	}

	return m.resolveExpenseTarget(ctx, userID, session, match, amount, description)
}

// resolveExpenseTarget decide onde registrar o gasto: contexto explícito
// na mensagem, pergunta de desambiguação quando o usuário pertence a
// organizações, ou direto na conta pessoal.
func (m *Manager) resolveExpenseTarget(ctx context.Context, userID string, session *Context, match *intent.Match, amount float64, description string) (*intent.ActionResult, error) {
	orgs, err := m.organizations.ListForUser(ctx, userID)
	if err != nil {
		m.sessions.Delete(userID)
		return nil, fmt.Errorf("erro ao listar organizações: %w", err)
	}

	if orgContext, ok := paramString(match.Parameters, intent.ParamOrgContext); ok {
		if isPersonalContext(orgContext) {
			return m.createExpense(ctx, userID, amount, description, "", "")
		}
		if org := matchOrganization(orgs, orgContext); org != nil {
			return m.createExpense(ctx, userID, amount, description, org.ID, org.Name)
		}
	}

	if len(orgs) == 0 {
		return m.createExpense(ctx, userID, amount, description, "", "")
	}

	session.CurrentFlow = FlowAddingExpense
	session.FlowData = map[string]interface{}{
		intent.ParamAmount:      amount,
		intent.ParamDescription: description,
		"organizations":         orgs,
	}
	return &intent.ActionResult{
		Success: false,
		Action:  "expense_need_organization",
		Message: msgAskOrganization(amount, description, orgs),
	}, nil
}

// isPersonalContext reconhece as variantes que mapeiam o gasto direto
// para a conta pessoal, sem desambiguação
func isPersonalContext(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "personal", "mío", "mio", "propio", "mía", "mia":
		return true
	}
	return false
}

func (m *Manager) continueExpenseAddition(ctx context.Context, userID string, session *Context, message string) (*intent.ActionResult, error) {
	if orgs, ok := session.FlowData["organizations"].([]domain.Organization); ok {
		return m.continueOrganizationSelection(ctx, userID, session, message, orgs)
	}

	amount, hasAmount := paramFloat(session.FlowData, intent.ParamAmount)
	if !hasAmount {
		extracted, ok := m.extractor.Amount(message)
		if !ok {
			return &intent.ActionResult{
				Success: false,
				Action:  "expense_need_amount",
				Message: msgExpenseRetryAmount,
			}, nil
		}
		session.FlowData[intent.ParamAmount] = extracted
		return &intent.ActionResult{
			Success: false,
			Action:  "expense_need_description",
			Message: msgExpenseNeedDescription(extracted),
		}, nil
	}

	description, ok := m.extractor.Description(message)
	if !ok {
		trimmed := strings.TrimSpace(message)
		if len(trimmed) < 2 || len(trimmed) > 99 {
			return &intent.ActionResult{
				Success: false,
				Action:  "expense_need_description",
				Message: msgExpenseNeedDescription(amount),
			}, nil
		}
		description = trimmed
	}

	return m.resolveExpenseTarget(ctx, userID, session, &intent.Match{}, amount, description)
}

func (m *Manager) continueOrganizationSelection(ctx context.Context, userID string, session *Context, message string, orgs []domain.Organization) (*intent.ActionResult, error) {
	amount, _ := paramFloat(session.FlowData, intent.ParamAmount)
	description, _ := paramString(session.FlowData, intent.ParamDescription)

	choice := strings.ToLower(strings.TrimSpace(message))

	if n, err := strconv.Atoi(choice); err == nil {
		switch {
		case n >= 1 && n <= len(orgs):
			org := orgs[n-1]
			return m.createExpense(ctx, userID, amount, description, org.ID, org.Name)
		case n == len(orgs)+1:
			return m.createExpense(ctx, userID, amount, description, "", "")
		}
	}

	if isPersonalContext(choice) {
		return m.createExpense(ctx, userID, amount, description, "", "")
	}

	if org := matchOrganization(orgs, choice); org != nil {
		return m.createExpense(ctx, userID, amount, description, org.ID, org.Name)
	}

	return &intent.ActionResult{
		Success: false,
		Action:  "expense_need_organization",
		Message: msgOrgSelectionRetry(orgs),
	}, nil
}

// matchOrganization encontra a organização cujo nome casa com o texto,
// em qualquer direção, ignorando caixa
func matchOrganization(orgs []domain.Organization, text string) *domain.Organization {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil
	}
	for i := range orgs {
		name := strings.ToLower(orgs[i].Name)
		if strings.Contains(name, needle) || strings.Contains(needle, name) {
			return &orgs[i]
		}
	}
	return nil
}

// createExpense é a ação terminal do fluxo de gasto. Os alertas de
// orçamento são avaliados ANTES de persistir a transação, projetando o
// novo gasto sobre o acumulado; assim o valor não é contado em dobro e
// o registro do alerta serve de guarda contra duplicatas concorrentes.
func (m *Manager) createExpense(ctx context.Context, userID string, amount float64, description, orgID, orgName string) (*intent.ActionResult, error) {
	category := m.extractor.SmartCategory(description)

	type crossing struct {
		budget *domain.Budget
		event  *domain.AlertEvent
	}
	var crossings []crossing

	activeBudgets, err := m.budgets.FindActive(ctx, userID, category)
	if err != nil {
		m.sessions.Delete(userID)
		return nil, fmt.Errorf("erro ao buscar orçamentos: %w", err)
	}
	for i := range activeBudgets {
		b := &activeBudgets[i]
		event, err := m.evaluator.Evaluate(ctx, b, amount)
		if err != nil {
			m.logger.Error("erro ao avaliar alerta de orçamento", "budget_id", b.ID, "error", err)
			continue
		}
		if event != nil {
			crossings = append(crossings, crossing{budget: b, event: event})
		}
	}

	now := m.nowFn()
	tx := &domain.Transaction{
		UserID:         userID,
		OrganizationID: orgID,
		Amount:         amount,
		Type:           domain.TypeExpense,
		Category:       category,
		Description:    description,
		Date:           now,
	}
	txID, err := m.transactions.Create(ctx, tx)
	if err != nil {
		m.sessions.Delete(userID)
		return nil, fmt.Errorf("erro ao registrar gasto: %w", err)
	}

	var alertTexts []string
	for _, c := range crossings {
		alert := &domain.BudgetAlert{
			BudgetID:        c.budget.ID,
			PeriodStart:     c.budget.StartDate,
			PercentageSpent: c.event.PercentageSpent,
			AmountSpent:     c.event.AmountSpent,
			MessageSent:     true,
		}
		if _, err := m.budgets.InsertAlert(ctx, alert); err != nil {
			if errors.Is(err, repository.ErrDuplicateAlert) {
				// Outro gasto concorrente registrou o alerta primeiro
				continue
			}
			m.logger.Error("erro ao persistir alerta", "budget_id", c.budget.ID, "error", err)
			continue
		}
		alertTexts = append(alertTexts, msgBudgetAlert(c.event))
		if m.notifier != nil {
			if err := m.notifier.NotifyBudgetAlert(ctx, userID, c.event); err != nil {
				m.logger.Error("erro ao notificar alerta", "budget_id", c.budget.ID, "error", err)
			}
		}
	}

	m.sessions.Delete(userID)

	message := msgExpenseCreated(amount, description, category, orgName)
	if len(alertTexts) > 0 {
		message += "\n\n" + strings.Join(alertTexts, "\n\n")
	}
	return &intent.ActionResult{
		Success:     true,
		Action:      "expense_created",
		Message:     message,
		OperationID: uuid.New().String(),
		Data: map[string]interface{}{
			"transaction_id": txID,
			"amount":         amount,
			"category":       category,
		},
	}, nil
}

func (m *Manager) createIncome(ctx context.Context, userID string, amount float64, description string) (*intent.ActionResult, error) {
	tx := &domain.Transaction{
		UserID:      userID,
		Amount:      amount,
		Type:        domain.TypeIncome,
		Category:    "Ingreso",
		Description: description,
		Date:        m.nowFn(),
	}
	txID, err := m.transactions.Create(ctx, tx)
	if err != nil {
		m.sessions.Delete(userID)
		return nil, fmt.Errorf("erro ao registrar ingresso: %w", err)
	}
	m.sessions.Delete(userID)
	return &intent.ActionResult{
		Success:     true,
		Action:      "income_created",
		Message:     msgIncomeCreated(amount, description),
		OperationID: uuid.New().String(),
		Data:        map[string]interface{}{"transaction_id": txID},
	}, nil
}

func (m *Manager) handleManageTransactions(ctx context.Context, userID, message string) (*intent.ActionResult, error) {
	normalized := strings.ToLower(message)
	if strings.Contains(normalized, "eliminar") || strings.Contains(normalized, "borrar") || strings.Contains(normalized, "borra") {
		tx, err := m.transactions.DeleteLast(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return &intent.ActionResult{
					Success: true,
					Action:  "no_transactions",
					Message: msgNoTransactions,
				}, nil
			}
			return nil, fmt.Errorf("erro ao eliminar transação: %w", err)
		}
		return &intent.ActionResult{
			Success:     true,
			Action:      "transaction_deleted",
			Message:     msgTransactionDeleted(tx),
			OperationID: uuid.New().String(),
		}, nil
	}

	recent, err := m.transactions.FindRecent(ctx, userID, recentTransactionsLimit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar transações: %w", err)
	}
	if len(recent) == 0 {
		return &intent.ActionResult{Success: true, Action: "no_transactions", Message: msgNoTransactions}, nil
	}
	return &intent.ActionResult{
		Success: true,
		Action:  "transactions_listed",
		Message: msgTransactionList(recent),
	}, nil
}

func (m *Manager) handleReport(ctx context.Context, userID string) (*intent.ActionResult, error) {
	now := m.nowFn()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	summaries, err := m.transactions.SumByCategory(ctx, userID, monthStart, now)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar resumo: %w", err)
	}
	return &intent.ActionResult{
		Success: true,
		Action:  "report_generated",
		Message: msgReport(summaries),
	}, nil
}

// --- Organizações ---

func (m *Manager) handleCreateOrganization(ctx context.Context, userID string, match *intent.Match, message string) (*intent.ActionResult, error) {
	name, hasName := paramString(match.Parameters, intent.ParamOrgName)
	orgTypeText, _ := paramString(match.Parameters, intent.ParamOrgType)
	if !hasName {
		extractedName, extractedType, ok := m.extractor.OrganizationName(message)
		if !ok {
			return &intent.ActionResult{
				Success: false,
				Action:  "organization_need_name",
				Message: msgOrganizationNeedName,
			}, nil
		}
		name, orgTypeText = extractedName, extractedType
	}
	orgType := domain.OrganizationType(orgTypeText)
	if orgType == "" {
		orgType = domain.OrgFamily
	}

	id, err := m.organizations.Create(ctx, userID, name, orgType)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar organização: %w", err)
	}
	return &intent.ActionResult{
		Success:     true,
		Action:      "organization_created",
		Message:     msgOrganizationCreated(name, orgType),
		OperationID: uuid.New().String(),
		Data:        map[string]interface{}{"organization_id": id},
	}, nil
}

func (m *Manager) handleInviteMember(ctx context.Context, userID string, match *intent.Match, message string) (*intent.ActionResult, error) {
	phone, ok := paramString(match.Parameters, intent.ParamPhoneNumber)
	if !ok {
		return &intent.ActionResult{
			Success: false,
			Action:  "invite_need_phone",
			Message: msgInviteNeedPhone,
		}, nil
	}

	orgs, err := m.organizations.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar organizações: %w", err)
	}
	if len(orgs) == 0 {
		return &intent.ActionResult{
			Success: true,
			Action:  "no_organizations",
			Message: msgNoOrganizations,
		}, nil
	}

	target := &orgs[0]
	if orgContext, ok := paramString(match.Parameters, intent.ParamOrgContext); ok {
		if org := matchOrganization(orgs, orgContext); org != nil {
			target = org
		}
	} else {
		for i := range orgs {
			if orgs[i].Role == "owner" {
				target = &orgs[i]
				break
			}
		}
	}

	if err := m.organizations.Invite(ctx, target.ID, phone); err != nil {
		return nil, fmt.Errorf("erro ao convidar membro: %w", err)
	}
	return &intent.ActionResult{
		Success:     true,
		Action:      "invitation_sent",
		Message:     msgInvitationSent(phone, target.Name),
		OperationID: uuid.New().String(),
	}, nil
}

func (m *Manager) handleAcceptInvitation(ctx context.Context, userID string) (*intent.ActionResult, error) {
	orgName, err := m.organizations.AcceptPending(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &intent.ActionResult{
				Success: true,
				Action:  "no_pending_invitation",
				Message: msgNoPendingInvitation,
			}, nil
		}
		return nil, fmt.Errorf("erro ao aceitar convite: %w", err)
	}
	return &intent.ActionResult{
		Success:     true,
		Action:      "invitation_accepted",
		Message:     msgInvitationAccepted(orgName),
		OperationID: uuid.New().String(),
	}, nil
}

func (m *Manager) handleListOrganizations(ctx context.Context, userID string) (*intent.ActionResult, error) {
	orgs, err := m.organizations.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar organizações: %w", err)
	}
	if len(orgs) == 0 {
		return &intent.ActionResult{Success: true, Action: "no_organizations", Message: msgNoOrganizations}, nil
	}
	return &intent.ActionResult{
		Success: true,
		Action:  "organizations_listed",
		Message: msgOrganizationList(orgs),
	}, nil
}

// --- Helpers ---

func paramFloat(params map[string]interface{}, key string) (float64, bool) {
	if params == nil {
		return 0, false
	}
	v, ok := params[key].(float64)
	return v, ok
}

func paramString(params map[string]interface{}, key string) (string, bool) {
	if params == nil {
		return "", false
	}
	v, ok := params[key].(string)
	return v, ok && v != ""
}

func titleFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
