package intent

import (
	"strings"

	"github.com/jcamposv/edcora-finance-sub000/pkg/logger"
)

// Classifier mapeia texto livre para uma ação com parâmetros extraídos,
// usando a tabela de padrões declarativa. Determinístico: a mesma
// entrada com a mesma tabela produz sempre o mesmo resultado.
type Classifier struct {
	table     Table
	extractor *Extractor
	logger    logger.Logger
}

// NewClassifier cria um classificador sobre a tabela informada. Uma
// tabela inválida é erro de configuração e falha na hora.
func NewClassifier(table Table, extractor *Extractor, log logger.Logger) (*Classifier, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{
		table:     table,
		extractor: extractor,
		logger:    log,
	}, nil
}

// Classify devolve o melhor Match para a mensagem ou nil quando nenhum
// padrão casa (intenção desconhecida - estado terminal válido, não um
// erro). A seleção é pelo maior par (prioridade, confiança); empates
// são resolvidos pela ordem de declaração na tabela, com o primeiro
// padrão vencendo.
func (c *Classifier) Classify(message string) *Match {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return nil
	}

	var best *Match
	for i := range c.table {
		match := c.matchPattern(&c.table[i], normalized, message)
		if match == nil {
			continue
		}
		if best == nil || match.Priority > best.Priority ||
			(match.Priority == best.Priority && match.Confidence > best.Confidence) {
			best = match
		}
	}

	if best != nil {
		c.logger.Debug("Intenção classificada",
			"action", best.Action,
			"confidence", best.Confidence,
			"keywords", best.MatchedKeywords)
	}
	return best
}

// matchPattern verifica se a mensagem casa com um padrão específico
func (c *Classifier) matchPattern(p *Pattern, normalized, original string) *Match {
	// Exclude keywords rejeitam o padrão de imediato
	for _, exclude := range p.ExcludeKeywords {
		if strings.Contains(normalized, exclude) {
			return nil
		}
	}

	var matched []string
	for _, keyword := range p.Keywords {
		if strings.Contains(normalized, keyword) {
			matched = append(matched, keyword)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	params := make(map[string]interface{})

	// Slots obrigatórios: sem eles o padrão inteiro é descartado - uma
	// regra "requires amount" não pode disparar só por palavra-chave
	if p.RequiresAmount {
		amount, ok := c.extractor.Amount(original)
		if !ok {
			return nil
		}
		params[ParamAmount] = amount
	}
	if p.RequiresPhone {
		phone, ok := c.extractor.Phone(original)
		if !ok {
			return nil
		}
		params[ParamPhoneNumber] = phone
	}

	c.extractActionParameters(p.Action, original, normalized, params)

	return &Match{
		Action:          p.Action,
		Confidence:      c.confidence(matched, p, params),
		Priority:        p.Priority,
		MatchedKeywords: matched,
		Parameters:      params,
		CanStartFlow:    p.CanStartFlow,
	}
}

// extractActionParameters complementa o match com parâmetros
// específicos de cada ação
func (c *Classifier) extractActionParameters(action ActionKind, original, normalized string, params map[string]interface{}) {
	switch action {
	case ActionManageBudgets:
		if amount, ok := c.extractor.Amount(original); ok {
			params[ParamAmount] = amount
		}
		if category, ok := c.extractor.Category(original); ok {
			params[ParamCategory] = category
		}
		params[ParamPeriod] = c.extractor.Period(original)
		if pct, ok := c.extractor.AlertPercentage(original); ok {
			params[ParamAlertPercentage] = pct
		}

	case ActionCreateTransaction:
		if c.extractor.IsIncome(original) {
			params[ParamTransactionType] = "income"
		} else {
			params[ParamTransactionType] = "expense"
		}
		if description, ok := c.extractor.Description(original); ok {
			params[ParamDescription] = description
		}
		if context, ok := c.extractor.OrganizationContext(original); ok {
			params[ParamOrgContext] = context
		}

	case ActionCreateOrganization:
		if name, orgType, ok := c.extractor.OrganizationName(original); ok {
			params[ParamOrgName] = name
			if orgType != "" {
				params[ParamOrgType] = orgType
			}
		}

	case ActionInviteMember:
		if person, ok := c.extractor.PersonToInvite(original); ok {
			params[ParamPersonToInvite] = person
		}
	}
}

// confidence calcula a pontuação do match: proporção de palavras-chave
// casadas, +0.2 por slot obrigatório satisfeito, +0.1 por palavra-chave
// casada com mais de 10 caracteres, limitada a 1.0
func (c *Classifier) confidence(matched []string, p *Pattern, params map[string]interface{}) float64 {
	score := float64(len(matched)) / float64(len(p.Keywords))

	if p.RequiresAmount {
		if _, ok := params[ParamAmount]; ok {
			score += 0.2
		}
	}
	if p.RequiresPhone {
		if _, ok := params[ParamPhoneNumber]; ok {
			score += 0.2
		}
	}

	for _, keyword := range matched {
		if len(keyword) > 10 {
			score += 0.1
		}
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// SupportedActions devolve as ações distintas da tabela, na ordem de
// declaração
func (c *Classifier) SupportedActions() []ActionKind {
	seen := make(map[ActionKind]bool)
	var actions []ActionKind
	for _, p := range c.table {
		if !seen[p.Action] {
			seen[p.Action] = true
			actions = append(actions, p.Action)
		}
	}
	return actions
}
