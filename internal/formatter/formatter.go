package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/loscheesy/ordering/internal/category"
	"github.com/loscheesy/ordering/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	emailMissing = "No proporcionado"
	brandName    = "Los Cheesy"
)

var separator = strings.Repeat("=", 50)

// Summary is a formatted order: human text plus the flat field map sent to intake.
type Summary struct {
	Text   string
	Fields map[string]string
}

// Format builds the restaurant-facing order summary.
func Format(rec domain.OrderRecord) Summary {
	var b strings.Builder

	fmt.Fprintf(&b, "PEDIDO: %s\n\n", rec.OrderNumber)
	b.WriteString("CLIENTE:\n")
	fmt.Fprintf(&b, "  • Nombre: %s\n", rec.Customer.Name)
	fmt.Fprintf(&b, "  • Teléfono: %s\n", rec.Customer.Phone)
	fmt.Fprintf(&b, "  • Email: %s\n", emailOrPlaceholder(rec.Customer))
	fmt.Fprintf(&b, "  • Local: %s\n\n", rec.LocationName)

	b.WriteString("ITEMS:\n")
	b.WriteString(separator + "\n")

	for _, group := range groupByCategory(rec.Lines) {
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(group.name))

		subtotal := decimal.Zero
		for _, line := range group.lines {
			subtotal = subtotal.Add(line.LineTotal())
			writeLine(&b, line)
		}
		fmt.Fprintf(&b, "  %s Total: %s\n", group.name, money(subtotal))
	}

	fmt.Fprintf(&b, "\n%s\n", separator)
	fmt.Fprintf(&b, "TOTAL DEL PEDIDO: %s\n", money(rec.Total))

	if rec.Notes != "" {
		b.WriteString("\nNOTAS:\n")
		fmt.Fprintf(&b, "  • %s\n", rec.Notes)
	}

	text := b.String()
	return Summary{
		Text: text,
		Fields: map[string]string{
			"_subject":       fmt.Sprintf("Nuevo Pedido %s - %s", rec.OrderNumber, rec.LocationName),
			"order_details":  text,
			"order_number":   rec.OrderNumber,
			"customer_name":  rec.Customer.Name,
			"customer_phone": rec.Customer.Phone,
			"customer_email": rec.Customer.Email,
			"location":       rec.LocationName,
			"total":          money(rec.Total),
		},
	}
}

// FormatConfirmation builds the customer-facing confirmation of the same order.
func FormatConfirmation(rec domain.OrderRecord) Summary {
	var b strings.Builder

	fmt.Fprintf(&b, "¡Gracias por tu pedido, %s!\n\n", rec.Customer.Name)
	b.WriteString("Tu pedido ha sido recibido y está siendo procesado.\n\n")
	b.WriteString("DETALLES DEL PEDIDO:\n")
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Número de Pedido: %s\n", rec.OrderNumber)
	fmt.Fprintf(&b, "Local: %s\n\n", rec.LocationName)

	b.WriteString("TU ORDEN:\n")
	for _, group := range groupByCategory(rec.Lines) {
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(group.name))
		for _, line := range group.lines {
			writeLine(&b, line)
		}
	}

	fmt.Fprintf(&b, "\n%s\n", separator)
	fmt.Fprintf(&b, "TOTAL: %s\n", money(rec.Total))

	if rec.Notes != "" {
		fmt.Fprintf(&b, "\nNotas Especiales: %s\n", rec.Notes)
	}

	fmt.Fprintf(&b, "\n%s\n", separator)
	b.WriteString("Recibirás una llamada de confirmación pronto.\n")
	fmt.Fprintf(&b, "\n¡Gracias por elegir %s!\n", brandName)

	text := b.String()
	return Summary{
		Text: text,
		Fields: map[string]string{
			"_replyto":           rec.Customer.Email,
			"_subject":           fmt.Sprintf("Confirmación de Pedido %s - %s", rec.OrderNumber, brandName),
			"to":                 rec.Customer.Email,
			"customer_name":      rec.Customer.Name,
			"order_number":       rec.OrderNumber,
			"location":           rec.LocationName,
			"order_confirmation": text,
		},
	}
}

type categoryGroup struct {
	name  string
	lines []domain.CartLine
}

// groupByCategory keeps cart order inside a group and sorts groups by name.
func groupByCategory(lines []domain.CartLine) []categoryGroup {
	byName := make(map[string][]domain.CartLine)
	for _, l := range lines {
		name := category.Classify(l.ItemID)
		byName[name] = append(byName[name], l)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]categoryGroup, len(names))
	for i, name := range names {
		groups[i] = categoryGroup{name: name, lines: byName[name]}
	}
	return groups
}

func writeLine(b *strings.Builder, line domain.CartLine) {
	fmt.Fprintf(b, "  • %s", line.Name)
	if line.Variant != "" {
		fmt.Fprintf(b, " (%s)", strings.ToUpper(line.Variant))
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "    %s x %d = %s\n", money(line.UnitPrice), line.Quantity, money(line.LineTotal()))
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func emailOrPlaceholder(c domain.CustomerInfo) string {
	if !c.HasEmail() {
		return emailMissing
	}
	return c.Email
}
