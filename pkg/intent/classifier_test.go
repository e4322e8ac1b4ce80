package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcamposv/edcora-finance-sub000/pkg/logger"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := NewClassifier(DefaultTable(), NewExtractor(""), logger.Nop{})
	require.NoError(t, err)
	return c
}

func TestClassifyExpenseWithAmountAndDescription(t *testing.T) {
	c := newTestClassifier(t)

	match := c.Classify("gasté 5000 en almuerzo")
	require.NotNil(t, match)

	assert.Equal(t, ActionCreateTransaction, match.Action)
	assert.Equal(t, 5000.0, match.Parameters[ParamAmount])
	assert.Equal(t, "almuerzo", match.Parameters[ParamDescription])
	assert.Equal(t, "expense", match.Parameters[ParamTransactionType])
	assert.True(t, match.CanStartFlow)
}

func TestClassifyIncome(t *testing.T) {
	c := newTestClassifier(t)

	match := c.Classify("recibí 20000 de salario")
	require.NotNil(t, match)

	assert.Equal(t, ActionCreateTransaction, match.Action)
	assert.Equal(t, "income", match.Parameters[ParamTransactionType])
	assert.Equal(t, 20000.0, match.Parameters[ParamAmount])
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := newTestClassifier(t)

	messages := []string{
		"gasté 5000 en almuerzo",
		"crear presupuesto de 100000 para comida",
		"ayuda",
		"resumen del mes",
	}
	for _, msg := range messages {
		first := c.Classify(msg)
		second := c.Classify(msg)
		assert.Equal(t, first, second, "mensagem: %s", msg)
	}
}

func TestClassifyPriorityOrdering(t *testing.T) {
	c := newTestClassifier(t)

	// "acepto" e "quiero unirme" casam com aceitar convite, que tem a
	// prioridade máxima (200) e vence qualquer outro padrão
	match := c.Classify("acepto, quiero unirme a la empresa")
	require.NotNil(t, match)
	assert.Equal(t, ActionAcceptInvitation, match.Action)
}

func TestClassifyExpenseWithBareOrgNoun(t *testing.T) {
	c := newTestClassifier(t)

	// "familia" solta numa frase de gasto é contexto de organização, não
	// pedido de criação; só os bigramas verbo+substantivo criam
	match := c.Classify("gasté 40000 de gasolina en familia")
	require.NotNil(t, match)
	assert.Equal(t, ActionCreateTransaction, match.Action)
	assert.Equal(t, 40000.0, match.Parameters[ParamAmount])
	assert.Equal(t, "Familia", match.Parameters[ParamOrgContext])
}

func TestClassifyExcludeKeywords(t *testing.T) {
	c := newTestClassifier(t)

	// "familia" exclui o padrão de orçamento; "presupuesto" exclui o de
	// organização. Nenhum padrão sobra.
	assert.Nil(t, c.Classify("presupuesto para la familia"))

	// Sem a palavra de exclusão o orçamento classifica normal
	match := c.Classify("crear presupuesto para comida")
	require.NotNil(t, match)
	assert.Equal(t, ActionManageBudgets, match.Action)
	assert.Equal(t, "Comida", match.Parameters[ParamCategory])

	// E a organização também
	match = c.Classify("crear familia García")
	require.NotNil(t, match)
	assert.Equal(t, ActionCreateOrganization, match.Action)
}

func TestClassifyRequiredAmountDiscardsPattern(t *testing.T) {
	c := newTestClassifier(t)

	// "gasté" sem valor numérico não pode disparar criação de transação
	match := c.Classify("gasté muchísimo en el súper")
	if match != nil {
		assert.NotEqual(t, ActionCreateTransaction, match.Action)
	}
}

func TestClassifyRequiredPhoneDiscardsPattern(t *testing.T) {
	c := newTestClassifier(t)

	match := c.Classify("invitar a")
	if match != nil {
		assert.NotEqual(t, ActionInviteMember, match.Action)
	}

	match = c.Classify("invitar a 8888 9999")
	require.NotNil(t, match)
	assert.Equal(t, ActionInviteMember, match.Action)
	assert.Equal(t, "+50688889999", match.Parameters[ParamPhoneNumber])
}

func TestClassifyEmptyMessage(t *testing.T) {
	c := newTestClassifier(t)

	assert.Nil(t, c.Classify(""))
	assert.Nil(t, c.Classify("   "))
	assert.Nil(t, c.Classify("zkxqwv"))
}

func TestClassifyHelpAndPrivacy(t *testing.T) {
	c := newTestClassifier(t)

	match := c.Classify("ayuda")
	require.NotNil(t, match)
	assert.Equal(t, ActionHelpRequest, match.Action)

	match = c.Classify("privacidad")
	require.NotNil(t, match)
	assert.Equal(t, ActionPrivacyRequest, match.Action)
}

func TestClassifyBudgetParameters(t *testing.T) {
	c := newTestClassifier(t)

	match := c.Classify("crear presupuesto semanal de 50000 para gasolina con alerta al 90%")
	require.NotNil(t, match)

	assert.Equal(t, ActionManageBudgets, match.Action)
	assert.Equal(t, "Gasolina", match.Parameters[ParamCategory])
	assert.Equal(t, "weekly", match.Parameters[ParamPeriod])
	assert.Equal(t, 90.0, match.Parameters[ParamAlertPercentage])
}

func TestConfidenceBoundedByOne(t *testing.T) {
	c := newTestClassifier(t)

	match := c.Classify("acepto, aceptar, sí quiero unirme")
	require.NotNil(t, match)
	assert.LessOrEqual(t, match.Confidence, 1.0)
	assert.Greater(t, match.Confidence, 0.9)
}

func TestNewClassifierRejectsInvalidTable(t *testing.T) {
	_, err := NewClassifier(Table{}, NewExtractor(""), logger.Nop{})
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = NewClassifier(Table{{Action: ActionHelpRequest}}, NewExtractor(""), logger.Nop{})
	assert.ErrorIs(t, err, ErrEmptyKeywords)

	_, err = NewClassifier(Table{{Keywords: []string{"hola"}}}, NewExtractor(""), logger.Nop{})
	assert.ErrorIs(t, err, ErrEmptyAction)
}

func TestSupportedActions(t *testing.T) {
	c := newTestClassifier(t)

	actions := c.SupportedActions()
	assert.Contains(t, actions, ActionManageBudgets)
	assert.Contains(t, actions, ActionCreateTransaction)
	assert.Contains(t, actions, ActionGenerateReport)

	seen := make(map[ActionKind]bool)
	for _, a := range actions {
		assert.False(t, seen[a], "ação repetida: %s", a)
		seen[a] = true
	}
}
