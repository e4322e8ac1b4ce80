package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jcamposv/edcora-finance-sub000/pkg/domain"
)

// Textos em espanhol apresentados ao usuário. A composição de respostas
// fica concentrada aqui para os handlers do Manager ficarem legíveis.

const msgUnknown = "🤔 No estoy seguro qué quieres hacer\n\n💡 **Puedes probar:**\n\n📊 'Crear presupuesto'\n💸 'Gasté ₡5000'\n🏷️ 'En qué familias estoy'\n📈 'Resumen'\n❓ 'Ayuda'\n\n¿Qué te gustaría hacer?"

const msgHelp = `💡 **¿Qué puedes hacer?**

📊 **PRESUPUESTOS:**
• "Crear presupuesto" - Te guío paso a paso
• "Presupuesto de ₡100000 para comida" - Directo

💸 **GASTOS:**
• "Gasté ₡5000" - Te pregunto en qué
• "Gasté ₡5000 en almuerzo" - Directo
• "Gasto familia gasolina 40000" - Con contexto

🔧 **GESTIONAR GASTOS:**
• "Gestionar gastos" - Ver y editar gastos
• "Eliminar último gasto" - Borrar el más reciente
• "Mis últimos gastos" - Ver lista

🏷️ **ORGANIZACIONES:**
• "En qué familias estoy" - Ver tus organizaciones
• "Crear familia Mi Hogar" - Nueva familia

📈 **REPORTES:**
• "Resumen" - Ver tus gastos
• "Balance" - ¿Cómo vas?

❓ **AYUDA:**
• "Ayuda" - Ver comandos
• Solo escríbeme en lenguaje natural 😊`

const msgPrivacy = "🔒 **Tu privacidad importa**\n\n• Tus datos solo se usan para registrar tus finanzas\n• Puedes pedir 'eliminar cuenta' cuando quieras\n• No compartimos tu información con terceros\n\n❓ Escríbeme si tienes dudas sobre tus datos"

const msgExpenseNeedAmount = "💸 ¡Entendido! Quieres anotar un gasto\n\n💰 ¿Cuánto gastaste?\n📝 Ejemplos: ₡5000, 5000, cinco mil\n\n💡 O puedes decir: 'Gasté ₡5000 en almuerzo'"

const msgExpenseRetryAmount = "🤔 No entendí el monto\n\n💰 ¿Cuánto gastaste?\n📝 Ejemplos: ₡5000, 5000, cinco mil"

const msgBudgetNeedBoth = "💰 ¡Perfecto! Vamos a crear tu presupuesto\n\n🏷️ ¿Para qué categoría?\n📝 Ejemplos: Comida, Gasolina, Entretenimiento\n\n💡 O puedes decir: 'Presupuesto de ₡100000 para comida'"

const msgBudgetRetryAmount = "🤔 No entendí el monto\n\n💰 ¿Cuánto quieres gastar máximo?\n📝 Ejemplos: ₡100000, 100000, cien mil"

const msgBudgetRetryCategory = "🤔 No entendí la categoría\n\n🏷️ ¿Para qué vas a usar este presupuesto?\n📝 Ejemplos: Comida, Gasolina, Entretenimiento"

// formatAmount formata um valor com separador de milhar, sem decimais
// ("₡{:,.0f}" do produto original)
func formatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if negative {
		out = "-" + out
	}
	return out
}

func msgBudgetNeedCategory(amount float64) string {
	return fmt.Sprintf("💰 Perfecto! Presupuesto de ₡%s\n\n🏷️ ¿Para qué lo vas a usar?\n\n📝 Ejemplos:\n• Comida\n• Gasolina\n• Entretenimiento\n• Casa\n\nEscribe la categoría:", formatAmount(amount))
}

func msgBudgetNeedAmount(category string) string {
	return fmt.Sprintf("🏷️ Perfecto! Presupuesto para %s\n\n💰 ¿Cuánto quieres gastar máximo?\n\n📝 Ejemplos:\n• ₡100000\n• 100000\n\nEscribe el monto:", category)
}

func msgBudgetCreated(category string, amount, alertPct float64) string {
	return fmt.Sprintf("✅ **Presupuesto creado exitosamente**\n\n🏷️ **%s**\n💰 Límite: ₡%s este período\n🚨 Te avisaré cuando gastes el %.0f%%\n\n💡 Ahora puedes agregar gastos con:\n'Gasté ₡5000 en almuerzo'", category, formatAmount(amount), alertPct)
}

func msgExpenseNeedDescription(amount float64) string {
	return fmt.Sprintf("💸 Perfecto! Gasto de ₡%s\n\n📝 ¿En qué lo gastaste?\n\nEjemplos:\n• Almuerzo\n• Gasolina\n• Supermercado\n\nDescribe el gasto:", formatAmount(amount))
}

func msgExpenseCreated(amount float64, description, category, orgName string) string {
	contextText := ""
	if orgName != "" && orgName != "Personal" {
		contextText = fmt.Sprintf(" (%s)", orgName)
	}
	return fmt.Sprintf("✅ **Gasto anotado%s**\n\n💸 ₡%s en %s\n📊 Categoría: %s\n\n💡 Puedes ver tu resumen con: 'resumen'", contextText, formatAmount(amount), description, category)
}

func msgIncomeCreated(amount float64, description string) string {
	return fmt.Sprintf("✅ **Ingreso anotado**\n\n💵 ₡%s - %s\n\n💡 Puedes ver tu balance con: 'resumen'", formatAmount(amount), description)
}

func orgEmoji(orgType domain.OrganizationType) string {
	switch orgType {
	case domain.OrgFamily:
		return "👨‍👩‍👧‍👦"
	case domain.OrgCompany:
		return "🏢"
	case domain.OrgTeam:
		return "👥"
	default:
		return "🏷️"
	}
}

// msgAskOrganization monta a pergunta de seleção de organização com a
// lista numerada mais a opção Personal
func msgAskOrganization(amount float64, description string, orgs []domain.Organization) string {
	amountText := "tu gasto"
	if amount > 0 {
		amountText = "₡" + formatAmount(amount)
	}
	descriptionText := ""
	if description != "" {
		descriptionText = " en " + description
	}

	var options []string
	for i, org := range orgs {
		options = append(options, fmt.Sprintf("%d. %s %s", i+1, orgEmoji(org.Type), org.Name))
	}
	options = append(options, fmt.Sprintf("%d. 👤 Personal", len(orgs)+1))

	return fmt.Sprintf("💸 **Gasto de %s%s**\n\n🏷️ **¿Dónde quieres registrarlo?**\n\n%s\n\n📝 Responde con el número o nombre:\n• \"1\" o \"%s\"\n• \"Personal\"",
		amountText, descriptionText, strings.Join(options, "\n"), orgs[0].Name)
}

func msgOrgSelectionRetry(orgs []domain.Organization) string {
	var options []string
	for i, org := range orgs {
		options = append(options, fmt.Sprintf("%d. %s %s", i+1, orgEmoji(org.Type), org.Name))
	}
	options = append(options, fmt.Sprintf("%d. 👤 Personal", len(orgs)+1))
	return fmt.Sprintf("🤔 No entendí tu selección\n\n🏷️ **¿Dónde registrar el gasto?**\n\n%s\n\n📝 Responde con el número:", strings.Join(options, "\n"))
}

func msgOrganizationCreated(name string, orgType domain.OrganizationType) string {
	return fmt.Sprintf("✅ **Organización creada**\n\n%s **%s**\n\n💡 Invita miembros con:\n'Invitar +506 8888 8888'", orgEmoji(orgType), name)
}

const msgNoOrganizations = "👤 **Solo tienes tu cuenta personal**\n\n💡 ¿Quieres crear una organización?\n• 'Crear familia Mi Hogar'\n• 'Crear empresa Mi Negocio'"

func msgOrganizationList(orgs []domain.Organization) string {
	lines := []string{"🏷️ **Tus organizaciones:**\n"}
	for i, org := range orgs {
		roleEmoji := "👤"
		if org.Role == "owner" {
			roleEmoji = "👑"
		}
		lines = append(lines, fmt.Sprintf("%d. %s **%s** %s", i+1, orgEmoji(org.Type), org.Name, roleEmoji))
	}
	lines = append(lines, "\n👤 **Personal** (siempre disponible)")
	lines = append(lines, fmt.Sprintf("\n💡 **Tip:** Menciona el nombre para gastos específicos:\n• 'Gasto %s gasolina 40000'", strings.ToLower(orgs[0].Name)))
	return strings.Join(lines, "\n")
}

func msgInvitationSent(phone, orgName string) string {
	return fmt.Sprintf("✉️ **Invitación enviada**\n\n📱 %s fue invitado a **%s**\n\n💡 Cuando responda 'acepto' quedará dentro", phone, orgName)
}

func msgInvitationAccepted(orgName string) string {
	return fmt.Sprintf("🎉 **¡Bienvenido a %s!**\n\n💡 Ya puedes registrar gastos compartidos:\n'Gasto %s almuerzo 5000'", orgName, strings.ToLower(orgName))
}

const msgNoPendingInvitation = "🤔 No encontré ninguna invitación pendiente para ti\n\n💡 Pide que te inviten con:\n'Invitar +506 8888 8888'"

const msgNoTransactions = "📝 **No tienes gastos registrados**\n\n💡 Agrega tu primer gasto:\n• 'Gasté ₡5000 en almuerzo'"

const msgOrganizationNeedName = "🏷️ ¿Cómo se llamará tu organización?\n\n📝 Ejemplos:\n• 'Crear familia Mi Hogar'\n• 'Crear empresa Mi Negocio'"

const msgInviteNeedPhone = "📱 ¿A quién quieres invitar?\n\n📝 Ejemplo: 'Invitar +506 8888 8888'"

const msgLeaveOrganization = "🚪 Para salir de una organización escríbele al dueño del grupo\n\n💡 Mientras tanto puedes registrar gastos personales con:\n'Gasté ₡5000 en almuerzo'"

func msgTransactionList(transactions []domain.Transaction) string {
	lines := []string{"📝 **Tus últimos gastos:**\n"}
	for i, tx := range transactions {
		orgText := " (Personal)"
		if tx.OrganizationID != "" {
			orgText = ""
		}
		lines = append(lines, fmt.Sprintf("%d. ₡%s - %s%s", i+1, formatAmount(tx.Amount), tx.Description, orgText))
	}
	lines = append(lines,
		"\n💡 **Para gestionar:**",
		"• 'Eliminar último gasto' - Borrar el más reciente",
		"• 'Resumen' - Ver el total del mes")
	return strings.Join(lines, "\n")
}

func msgTransactionDeleted(tx *domain.Transaction) string {
	return fmt.Sprintf("🗑️ **Gasto eliminado**\n\n₡%s - %s\n\n💡 Puedes ver los restantes con 'mis últimos gastos'", formatAmount(tx.Amount), tx.Description)
}

func msgBudgetAlert(ev *domain.AlertEvent) string {
	if ev.OverBudget {
		return fmt.Sprintf("🚨 **¡Presupuesto excedido!**\n\n**%s**: ₡%s de ₡%s (%.0f%%)", ev.BudgetName, formatAmount(ev.AmountSpent), formatAmount(ev.BudgetAmount), ev.PercentageSpent)
	}
	return fmt.Sprintf("⚠️ **Alerta de presupuesto**\n\n**%s**: llevas ₡%s de ₡%s (%.0f%%)", ev.BudgetName, formatAmount(ev.AmountSpent), formatAmount(ev.BudgetAmount), ev.PercentageSpent)
}

func msgReport(summaries []domain.CategorySummary) string {
	if len(summaries) == 0 {
		return "📊 **Resumen del mes**\n\nTodavía no tienes gastos este mes\n\n💡 Agrega uno con: 'Gasté ₡5000 en almuerzo'"
	}
	var total float64
	lines := []string{"📊 **Resumen del mes:**\n"}
	for _, s := range summaries {
		total += s.Total
		lines = append(lines, fmt.Sprintf("• %s: ₡%s (%d)", s.Category, formatAmount(s.Total), s.Count))
	}
	lines = append(lines, fmt.Sprintf("\n💰 **Total: ₡%s**", formatAmount(total)))
	return strings.Join(lines, "\n")
}
