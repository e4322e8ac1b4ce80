package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAmount(t *testing.T) {
	e := NewExtractor("")

	tests := []struct {
		message string
		want    float64
		ok      bool
	}{
		{"gasté 5000 en almuerzo", 5000, true},
		{"pagué ₡1,500.50 de parqueo", 1500.50, true},
		{"compré algo por $250.75", 250.75, true},
		{"presupuesto de 10 000 colones", 10000, true},
		{"gasté mucho hoy", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := e.Amount(tt.message)
		assert.Equal(t, tt.ok, ok, "mensagem: %s", tt.message)
		if tt.ok {
			assert.Equal(t, tt.want, got, "mensagem: %s", tt.message)
		}
	}
}

func TestExtractAmountPrefersLargest(t *testing.T) {
	e := NewExtractor("")

	// Política herdada: com vários números na mensagem, vale o maior
	got, ok := e.Amount("pagué 2 cafés a 1500")
	require.True(t, ok)
	assert.Equal(t, 1500.0, got)
}

func TestExtractPhone(t *testing.T) {
	e := NewExtractor("")

	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{"invitar a +506 8888 9999", "+50688889999", true},
		{"invitar a +50688889999", "+50688889999", true},
		{"invitar a 8888-9999", "+50688889999", true},
		{"invitar a 8888 9999", "+50688889999", true},
		{"invitar a 50688889999", "+50688889999", true},
		{"invitar a maría", "", false},
	}
	for _, tt := range tests {
		got, ok := e.Phone(tt.message)
		assert.Equal(t, tt.ok, ok, "mensagem: %s", tt.message)
		assert.Equal(t, tt.want, got, "mensagem: %s", tt.message)
	}
}

func TestExtractPhoneCustomCountryCode(t *testing.T) {
	e := NewExtractor("52")

	got, ok := e.Phone("invitar a 8888 9999")
	require.True(t, ok)
	assert.Equal(t, "+5288889999", got)
}

func TestExtractCategory(t *testing.T) {
	e := NewExtractor("")

	tests := []struct {
		message string
		want    string
		ok      bool
	}{
		{"presupuesto para comida", "Comida", true},
		{"presupuesto de gasolina", "Gasolina", true},
		{"algo de almuerzo", "Comida", true},
		{"presupuesto para viajes", "Viajes", true},
		{"hola", "", false},
	}
	for _, tt := range tests {
		got, ok := e.Category(tt.message)
		assert.Equal(t, tt.ok, ok, "mensagem: %s", tt.message)
		assert.Equal(t, tt.want, got, "mensagem: %s", tt.message)
	}
}

func TestExtractCategoryDeterministicWithTwoKeywords(t *testing.T) {
	e := NewExtractor("")

	// "comida" e "casa" são palavras conhecidas; a primeira na lista
	// vence sempre, em toda chamada
	for i := 0; i < 50; i++ {
		got, ok := e.Category("presupuesto para comida en la casa")
		require.True(t, ok)
		assert.Equal(t, "Comida", got)
	}
}

func TestExtractDescription(t *testing.T) {
	e := NewExtractor("")

	got, ok := e.Description("gasté 5000 en almuerzo con amigos")
	require.True(t, ok)
	assert.Equal(t, "almuerzo con amigos", got)

	got, ok = e.Description("pagué ₡2500 de taxi")
	require.True(t, ok)
	assert.Equal(t, "taxi", got)

	_, ok = e.Description("gasté 5000")
	assert.False(t, ok)
}

func TestExtractPeriod(t *testing.T) {
	e := NewExtractor("")

	assert.Equal(t, "weekly", e.Period("presupuesto semanal de comida"))
	assert.Equal(t, "yearly", e.Period("presupuesto anual"))
	assert.Equal(t, "monthly", e.Period("presupuesto mensual"))
	assert.Equal(t, "monthly", e.Period("crear presupuesto"))
}

func TestExtractAlertPercentage(t *testing.T) {
	e := NewExtractor("")

	pct, ok := e.AlertPercentage("presupuesto con alerta al 90%")
	require.True(t, ok)
	assert.Equal(t, 90.0, pct)

	_, ok = e.AlertPercentage("crear presupuesto de comida")
	assert.False(t, ok)
}

func TestExtractOrganizationName(t *testing.T) {
	e := NewExtractor("")

	name, orgType, ok := e.OrganizationName("crear familia Mi Hogar")
	require.True(t, ok)
	assert.Equal(t, "Mi Hogar", name)
	assert.Equal(t, "family", orgType)

	name, orgType, ok = e.OrganizationName("nueva empresa Edcora S.A.")
	require.True(t, ok)
	assert.Equal(t, "Edcora S.A.", name)
	assert.Equal(t, "company", orgType)

	_, _, ok = e.OrganizationName("crear familia")
	assert.False(t, ok)
}

func TestExtractPersonToInvite(t *testing.T) {
	e := NewExtractor("")

	person, ok := e.PersonToInvite("invitar a María")
	require.True(t, ok)
	assert.Equal(t, "maría", person)
}

func TestSmartCategory(t *testing.T) {
	e := NewExtractor("")

	tests := []struct {
		description string
		want        string
	}{
		{"almuerzo con amigos", "Comida"},
		{"gasolina del carro", "Gasolina"},
		{"uber al aeropuerto", "Transporte"},
		{"entradas de cine", "Entretenimiento"},
		{"supermercado", "Casa"},
		{"farmacia", "Salud"},
		{"materiales de oficina", "Trabajo"},
		{"zapatos nuevos", "Ropa"},
		{"misceláneo", "General"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.SmartCategory(tt.description), "descrição: %s", tt.description)
	}
}

func TestIsIncome(t *testing.T) {
	e := NewExtractor("")

	assert.True(t, e.IsIncome("recibí mi salario"))
	assert.True(t, e.IsIncome("ingreso de 20000"))
	assert.True(t, e.IsIncome("gané una rifa"))
	assert.False(t, e.IsIncome("gasté 5000 en almuerzo"))
}
