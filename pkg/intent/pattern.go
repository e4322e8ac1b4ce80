package intent

import (
	"errors"
	"fmt"
)

// Pattern é uma regra declarativa de detecção de intenção: conjunto de
// palavras-chave, prioridade e slots obrigatórios. Imutável, carregado
// uma vez na inicialização.
type Pattern struct {
	Action          ActionKind
	Keywords        []string
	ExcludeKeywords []string
	Priority        int
	RequiresAmount  bool
	RequiresPhone   bool

	// CanStartFlow marca padrões capazes de iniciar ou interromper um
	// fluxo multi-turno. Só estes podem preemptar uma conversa aberta.
	CanStartFlow bool
}

// Table é o conjunto ordenado de padrões. A ordem de declaração é o
// critério final de desempate na classificação, portanto importa.
type Table []Pattern

var (
	ErrEmptyTable    = errors.New("tabela de padrões vazia")
	ErrEmptyKeywords = errors.New("padrão sem palavras-chave")
	ErrEmptyAction   = errors.New("padrão sem ação")
)

// Validate verifica a consistência da tabela. Uma tabela inválida é um
// erro de programação e deve derrubar a aplicação na inicialização.
func (t Table) Validate() error {
	if len(t) == 0 {
		return ErrEmptyTable
	}
	for i, p := range t {
		if p.Action == "" {
			return fmt.Errorf("padrão %d: %w", i, ErrEmptyAction)
		}
		if len(p.Keywords) == 0 {
			return fmt.Errorf("padrão %d (%s): %w", i, p.Action, ErrEmptyKeywords)
		}
	}
	return nil
}

// DefaultTable devolve a tabela de padrões do assistente financeiro.
// Prioridade maior vence; os exclude keywords resolvem as colisões
// entre presupuesto e organização.
func DefaultTable() Table {
	return Table{
		// Orçamentos - prioridade alta para não colidir com organizações
		{
			Action: ActionManageBudgets,
			Keywords: []string{
				"crear presupuesto", "presupuesto para", "presupuesto mensual",
				"presupuesto semanal", "presupuesto anual", "límite de gasto",
				"budget", "alertas de gasto", "presupuesto", "presupuestos",
			},
			ExcludeKeywords: []string{"familia", "empresa", "equipo", "organización"},
			Priority:        100,
			CanStartFlow:    true,
		},

		// Aceitar convite - prioridade máxima para matches exatos
		{
			Action:       ActionAcceptInvitation,
			Keywords:     []string{"acepto", "aceptar", "quiero unirme", "sí quiero"},
			Priority:     200,
			CanStartFlow: true,
		},

		// Organizações - só bigramas verbo+substantivo; "familia" ou
		// "empresa" soltos numa frase de gasto não criam organização
		{
			Action: ActionCreateOrganization,
			Keywords: []string{
				"crear familia", "crear empresa", "crear equipo",
				"nueva familia", "nueva empresa", "nuevo equipo",
				"agregar familia", "agregar empresa",
				"crear organizacion", "crear organización",
			},
			ExcludeKeywords: []string{"presupuesto", "budget", "límite"},
			Priority:        80,
			CanStartFlow:    true,
		},

		{
			Action:        ActionInviteMember,
			Keywords:      []string{"invitar", "invita", "agregar"},
			Priority:      90,
			RequiresPhone: true,
		},

		{
			Action:   ActionListMembers,
			Keywords: []string{"miembros", "quiénes están", "mostrar miembros", "ver miembros"},
			Priority: 70,
		},

		{
			Action:   ActionLeaveOrganization,
			Keywords: []string{"salir", "abandonar", "dejar familia", "dejar empresa"},
			Priority: 70,
		},

		// Transações
		{
			Action: ActionCreateTransaction,
			Keywords: []string{
				"gasté", "gaste", "pagué", "pague", "compré", "compre",
				"ingreso", "recibí", "gané",
			},
			Priority:       60,
			RequiresAmount: true,
			CanStartFlow:   true,
		},

		{
			Action: ActionManageTransactions,
			Keywords: []string{
				"eliminar gasto", "borrar gasto", "editar gasto",
				"cambiar gasto", "últimos gastos", "transacciones recientes",
				"eliminar último", "borrar último", "modificar gasto",
			},
			Priority:     85,
			CanStartFlow: true,
		},

		// Relatórios
		{
			Action: ActionGenerateReport,
			Keywords: []string{
				"resumen", "reporte", "balance", "cuánto", "cuanto",
				"mis gastos", "total gastos", "gastos del mes",
				"como voy", "cómo voy",
			},
			Priority:     75,
			CanStartFlow: true,
		},

		{
			Action: ActionListOrganizations,
			Keywords: []string{
				"qué familias", "que familias", "mis organizaciones",
				"mis familias", "dónde estoy", "donde estoy",
				"organizaciones tengo", "familias tengo",
			},
			Priority:     78,
			CanStartFlow: true,
		},

		// Ajuda - prioridade baixa para evitar conflitos
		{
			Action: ActionHelpRequest,
			Keywords: []string{
				"ayuda", "help", "cómo", "como", "comandos",
				"funciones", "qué puedo hacer", "no entiendo",
			},
			Priority: 50,
		},

		// Privacidade
		{
			Action: ActionPrivacyRequest,
			Keywords: []string{
				"privacidad", "datos", "derechos", "seguridad",
				"eliminar cuenta", "privacy", "rights",
			},
			Priority: 60,
		},
	}
}
