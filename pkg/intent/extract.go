package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Extractor reúne as sub-rotinas de extração de slots usadas tanto pelo
// classificador quanto pelo motor de fluxos. Todas são funções puras
// sobre o texto da mensagem.
type Extractor struct {
	countryCode   string
	phonePatterns []*regexp.Regexp
}

// DefaultCountryCode é o prefixo aplicado a números sem código de país
const DefaultCountryCode = "506"

var (
	amountPattern = regexp.MustCompile(`\d{1,3}(?:[,\s]\d{3})+(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?`)

	alertPctPattern = regexp.MustCompile(`alert[a-z]*\s+al?\s+(\d+)\s*%`)

	orgNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)crear\s+(familia|empresa|equipo|organizacion|organización)\s*`),
		regexp.MustCompile(`(?i)nueva?\s+(familia|empresa|equipo|organizacion|organización)\s*`),
		regexp.MustCompile(`(?i)agregar\s+(familia|empresa|equipo|organizacion|organización)\s*`),
	}

	invitePatterns = []*regexp.Regexp{
		regexp.MustCompile(`invitar?\s+(a\s+)?`),
		regexp.MustCompile(`agregar\s+(a\s+)?`),
		regexp.MustCompile(`invita\s+(a\s+)?`),
	}

	orgContextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`en\s+([a-záéíóúñA-ZÁÉÍÓÚÑ]+)`),
		regexp.MustCompile(`a\s+([a-záéíóúñA-ZÁÉÍÓÚÑ]+)`),
		regexp.MustCompile(`para\s+([a-záéíóúñA-ZÁÉÍÓÚÑ]+)`),
	}

	expenseActionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)gasté\s+`), regexp.MustCompile(`(?i)gaste\s+`),
		regexp.MustCompile(`(?i)pagué\s+`), regexp.MustCompile(`(?i)pague\s+`),
		regexp.MustCompile(`(?i)compré\s+`), regexp.MustCompile(`(?i)compre\s+`),
		regexp.MustCompile(`(?i)agregar\s+gasto\s+`), regexp.MustCompile(`(?i)gasto\s+`),
		regexp.MustCompile(`(?i)pago\s+`), regexp.MustCompile(`(?i)compra\s+`),
		regexp.MustCompile(`(?i)costó\s+`), regexp.MustCompile(`(?i)costo\s+`),
		regexp.MustCompile(`(?i)invertí\s+`), regexp.MustCompile(`(?i)invirtí\s+`),
		regexp.MustCompile(`(?i)recibí\s+`), regexp.MustCompile(`(?i)ingreso\s+`),
		regexp.MustCompile(`(?i)gané\s+`),
	}

	numericToken        = regexp.MustCompile(`^\d+([.,]\d+)?$`)
	currencyToken       = regexp.MustCompile(`^[₡$]\d`)
	leadingPrepositions = regexp.MustCompile(`(?i)^\s*(en|de|para|del|de\s+la|de\s+los|de\s+las)\s+`)
)

// contextStopWords são palavras genéricas que nunca valem como contexto
// de organização
var contextStopWords = map[string]bool{
	"el": true, "la": true, "los": true, "las": true,
	"un": true, "una": true, "casa": true, "trabajo": true,
}

// categoryKeywords mapeia palavras das mensagens para categorias
// canônicas. A ordem é o critério de desempate quando a mensagem contém
// mais de uma palavra conhecida, por isso é uma lista e não um mapa.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"comida", "Comida"}, {"comidas", "Comida"}, {"almuerzo", "Comida"}, {"cena", "Comida"},
	{"gasolina", "Gasolina"}, {"combustible", "Gasolina"}, {"diesel", "Gasolina"},
	{"entretenimiento", "Entretenimiento"}, {"diversión", "Entretenimiento"}, {"cine", "Entretenimiento"},
	{"casa", "Casa"}, {"hogar", "Casa"}, {"vivienda", "Casa"},
	{"salud", "Salud"}, {"medicina", "Salud"}, {"doctor", "Salud"},
	{"trabajo", "Trabajo"}, {"oficina", "Trabajo"},
	{"transporte", "Transporte"}, {"uber", "Transporte"}, {"taxi", "Transporte"},
	{"ropa", "Ropa"}, {"vestimenta", "Ropa"},
}

// smartCategories categoriza descrições de gastos por palavras-chave
var smartCategories = []struct {
	category string
	keywords []string
}{
	{"Comida", []string{"almuerzo", "cena", "desayuno", "comida", "restaurante", "café", "pizza"}},
	{"Gasolina", []string{"gasolina", "combustible", "diesel", "gas"}},
	{"Transporte", []string{"uber", "taxi", "bus", "transporte", "viaje"}},
	{"Entretenimiento", []string{"cine", "película", "juego", "diversión", "entretenimiento"}},
	{"Casa", []string{"casa", "hogar", "supermercado", "mercado", "tienda"}},
	{"Salud", []string{"medicina", "doctor", "farmacia", "salud", "hospital"}},
	{"Trabajo", []string{"oficina", "trabajo", "materiales"}},
	{"Ropa", []string{"ropa", "zapatos", "vestido", "camisa"}},
}

// NewExtractor cria um Extractor com o código de país informado. Vazio
// usa DefaultCountryCode.
func NewExtractor(countryCode string) *Extractor {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	cc := regexp.QuoteMeta(countryCode)
	return &Extractor{
		countryCode: countryCode,
		phonePatterns: []*regexp.Regexp{
			regexp.MustCompile(fmt.Sprintf(`\+%s\s?\d{4}\s?\d{4}`, cc)),
			regexp.MustCompile(fmt.Sprintf(`\+%s\d{8}`, cc)),
			regexp.MustCompile(fmt.Sprintf(`%s\s?\d{4}\s?\d{4}`, cc)),
			regexp.MustCompile(fmt.Sprintf(`%s\d{8}`, cc)),
			regexp.MustCompile(`\d{4}[-\s]?\d{4}`),
			regexp.MustCompile(`\+\d{1,3}\d{8,}`),
		},
	}
}

// Amount extrai um valor monetário da mensagem. Aceita símbolos de
// moeda, separadores de milhar (vírgula ou espaço) e até 2 decimais.
// Quando a mensagem menciona vários números devolve o MAIOR - política
// herdada da implementação original e frágil para mensagens do tipo
// "pagué 2 cafés a 1500 cada uno"; mantida por compatibilidade.
func (e *Extractor) Amount(message string) (float64, bool) {
	clean := strings.NewReplacer("₡", "", "$", "").Replace(message)

	var best float64
	var found bool
	for _, token := range amountPattern.FindAllString(clean, -1) {
		normalized := strings.NewReplacer(",", "", " ", "").Replace(token)
		value, err := strconv.ParseFloat(normalized, 64)
		if err != nil || value <= 0 {
			continue
		}
		if !found || value > best {
			best = value
			found = true
		}
	}
	return best, found
}

// Phone extrai e normaliza um número de telefone. Números sem prefixo
// de país recebem o código configurado.
func (e *Extractor) Phone(message string) (string, bool) {
	for _, pattern := range e.phonePatterns {
		match := pattern.FindString(message)
		if match == "" {
			continue
		}
		number := strings.NewReplacer(" ", "", "-", "").Replace(match)
		if strings.HasPrefix(number, "+") {
			return number, true
		}
		if strings.HasPrefix(number, e.countryCode) {
			return "+" + number, true
		}
		return "+" + e.countryCode + number, true
	}
	return "", false
}

// Category extrai uma categoria de orçamento da mensagem: primeiro pela
// lista de palavras conhecidas, depois pelo texto após "para".
func (e *Extractor) Category(message string) (string, bool) {
	lower := strings.ToLower(message)

	for _, entry := range categoryKeywords {
		if strings.Contains(lower, entry.keyword) {
			return entry.category, true
		}
	}

	if idx := strings.Index(lower, " para "); idx >= 0 {
		rest := strings.TrimSpace(lower[idx+len(" para "):])
		if rest != "" {
			return titleCase(rest), true
		}
	}
	return "", false
}

// Description extrai a descrição de um gasto: remove os verbos de ação,
// descarta tokens numéricos e de moeda e limpa preposições iniciais.
func (e *Extractor) Description(message string) (string, bool) {
	clean := message
	for _, pattern := range expenseActionPatterns {
		clean = replaceFirst(pattern, clean)
	}

	var words []string
	for _, word := range strings.Fields(clean) {
		if numericToken.MatchString(word) || currencyToken.MatchString(word) {
			continue
		}
		switch strings.ToLower(word) {
		case "₡", "$", "colones", "colón", "dollars", "dólares":
			continue
		}
		words = append(words, word)
	}

	description := strings.Join(words, " ")
	description = leadingPrepositions.ReplaceAllString(description, "")
	description = strings.Trim(strings.TrimSpace(description), ",")
	description = strings.TrimSpace(description)

	if len(description) > 1 && len(description) < 100 {
		return description, true
	}
	return "", false
}

// OrganizationName extrai nome e tipo de organização de uma mensagem de
// criação ("crear familia Mi Hogar" -> "Mi Hogar", family)
func (e *Extractor) OrganizationName(message string) (name, orgType string, ok bool) {
	clean := message
	for _, pattern := range orgNamePatterns {
		if match := pattern.FindStringSubmatch(clean); match != nil {
			orgType = normalizeOrgType(strings.ToLower(match[1]))
			clean = pattern.ReplaceAllString(clean, "")
			break
		}
	}
	name = strings.TrimSpace(clean)
	if name == "" {
		return "", orgType, false
	}
	return name, orgType, true
}

// OrganizationContext procura um contexto de organização em mensagens de
// transação ("gasté 5000 en almuerzo para familia" -> "Familia"),
// ignorando palavras genéricas.
func (e *Extractor) OrganizationContext(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, pattern := range orgContextPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		context := match[1]
		if contextStopWords[context] {
			continue
		}
		return titleCase(context), true
	}
	return "", false
}

// PersonToInvite extrai a descrição da pessoa a convidar quando não há
// número de telefone na mensagem
func (e *Extractor) PersonToInvite(message string) (string, bool) {
	clean := strings.ToLower(message)
	for _, pattern := range invitePatterns {
		clean = pattern.ReplaceAllString(clean, "")
	}
	person := strings.TrimSpace(clean)
	if len(person) > 2 {
		return person, true
	}
	return "", false
}

// Period extrai a periodicidade de um orçamento; mensal por omissão
func (e *Extractor) Period(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "semanal") || strings.Contains(lower, "weekly"):
		return "weekly"
	case strings.Contains(lower, "anual") || strings.Contains(lower, "yearly"):
		return "yearly"
	default:
		return "monthly"
	}
}

// AlertPercentage extrai o percentual de alerta quando mencionado
// ("alerta al 90%")
func (e *Extractor) AlertPercentage(message string) (float64, bool) {
	match := alertPctPattern.FindStringSubmatch(strings.ToLower(message))
	if match == nil {
		return 0, false
	}
	pct, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}
	return pct, true
}

// SmartCategory categoriza a descrição de um gasto; "General" quando
// nenhuma palavra conhecida aparece
func (e *Extractor) SmartCategory(description string) string {
	lower := strings.ToLower(description)
	for _, entry := range smartCategories {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}
	return "General"
}

// IsIncome detecta se a mensagem descreve uma entrada de dinheiro
func (e *Extractor) IsIncome(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range []string{"ingreso", "recibí", "gané", "cobré", "entrada"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func normalizeOrgType(raw string) string {
	switch raw {
	case "familia":
		return "family"
	case "empresa":
		return "company"
	case "equipo":
		return "team"
	default:
		return "family"
	}
}

// replaceFirst remove a primeira ocorrência do padrão
func replaceFirst(pattern *regexp.Regexp, s string) string {
	loc := pattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

// titleCase capitaliza a primeira letra de cada palavra
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 {
			words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
		}
	}
	return strings.Join(words, " ")
}
