package intent

// ActionKind identifica a ação que uma mensagem do usuário mapeia
type ActionKind string

const (
	ActionManageBudgets      ActionKind = "manage_budgets"
	ActionAcceptInvitation   ActionKind = "accept_invitation"
	ActionCreateOrganization ActionKind = "create_organization"
	ActionInviteMember       ActionKind = "invite_member"
	ActionListMembers        ActionKind = "list_members"
	ActionLeaveOrganization  ActionKind = "leave_organization"
	ActionCreateTransaction  ActionKind = "create_transaction"
	ActionManageTransactions ActionKind = "manage_transactions"
	ActionGenerateReport     ActionKind = "generate_report"
	ActionListOrganizations  ActionKind = "list_organizations"
	ActionHelpRequest        ActionKind = "help_request"
	ActionPrivacyRequest     ActionKind = "privacy_request"
)

// Chaves de parâmetros extraídos das mensagens
const (
	ParamAmount          = "amount"
	ParamPhoneNumber     = "phone_number"
	ParamDescription     = "description"
	ParamCategory        = "budget_category"
	ParamPeriod          = "budget_period"
	ParamAlertPercentage = "alert_percentage"
	ParamTransactionType = "transaction_type"
	ParamOrgName         = "organization_name"
	ParamOrgType         = "organization_type"
	ParamOrgContext      = "organization_context"
	ParamPersonToInvite  = "person_to_invite"
)

// Match é o resultado da classificação de uma mensagem: a ação
// detectada, a confiança (0-1) e os parâmetros extraídos. Efêmero,
// produzido por mensagem, nunca persistido.
type Match struct {
	Action          ActionKind             `json:"action"`
	Confidence      float64                `json:"confidence"`
	Priority        int                    `json:"priority"`
	MatchedKeywords []string               `json:"matched_keywords"`
	Parameters      map[string]interface{} `json:"parameters"`
	CanStartFlow    bool                   `json:"can_start_flow"`
}

// ActionResult representa o resultado de uma ação executada pelo sistema
type ActionResult struct {
	// Sucesso ou falha da operação
	Success bool `json:"success"`

	// Mensagem para o usuário
	Message string `json:"message"`

	// Ação resolvida (ex: "expense_created", "budget_need_amount")
	Action string `json:"action,omitempty"`

	// Dados adicionais (depende da ação)
	Data map[string]interface{} `json:"data,omitempty"`

	// ID da operação (para auditoria)
	OperationID string `json:"operation_id,omitempty"`
}
