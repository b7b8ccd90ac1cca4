package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/pricing"
	"github.com/sangkips/pizzeria-pos/pkg/printer"
)

const (
	ticketDateLayout = "2/1/2006"
	ticketTimeLayout = "15:04"
)

// ModifierLabel shortens a modifier group title for narrow paper.
func ModifierLabel(groupTitle string) string {
	switch {
	case strings.Contains(groupTitle, "IZQUIERDA"):
		return "MITAD IZQ"
	case strings.Contains(groupTitle, "DERECHA"):
		return "MITAD DER"
	case strings.Contains(groupTitle, "TODA LA PIZZA"):
		return "TODA"
	case strings.Contains(groupTitle, "INGREDIENTES BASE"):
		return "BASE"
	case strings.Contains(groupTitle, "ADICIONAL"), strings.Contains(groupTitle, "EXTRA"):
		return "ADIC"
	case strings.Contains(groupTitle, "Tamanio"), strings.Contains(groupTitle, "Tamaño"):
		return "TAM"
	}
	r := []rune(groupTitle)
	if len(r) > 10 {
		return string(r[:10])
	}
	return groupTitle
}

func writeModifiers(doc *printer.Document, item entity.CartItem) {
	for _, m := range item.SelectedModifiers {
		doc.Wrapped(fmt.Sprintf("  %s: %s", ModifierLabel(m.GroupTitle), m.Option.Name))
	}
}

// FormatReceipt renders a customer receipt. The grand total is the previous
// balance plus the items' total.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.Align(printer.AlignCenter).
		Mode(printer.ModeDouble).
		Line(r.BusinessName).
		Mode(printer.ModeNormal).
		Line(r.Title).
		Align(printer.AlignLeft)

	doc.Columns("REF: "+r.Reference, r.PrintedAt.Format(ticketTimeLayout)).
		Raw("FECHA: " + r.PrintedAt.Format(ticketDateLayout) + "\n").
		Labeled("ATENDIDO POR: ", r.Waiter).
		Divider()

	doc.Columns("PRODUCTO", "TOTAL").
		Divider()

	if r.PreviousBalance.IsPositive() {
		doc.Mode(printer.ModeBold).
			Line("(- SALDO PENDIENTE -)").
			Columns("  MONTO PREVIO", pricing.FormatUSD(r.PreviousBalance)).
			Mode(printer.ModeNormal).
			Rule(doc.Width() / 2)
	}

	// Items
	for _, item := range r.Items {
		doc.Mode(printer.ModeBold).
			Columns(fmt.Sprintf("%dX %s", item.Quantity, item.Name), pricing.FormatUSD(pricing.LineTotal(item))).
			Mode(printer.ModeNormal)
		writeModifiers(doc, item)
	}

	doc.Divider()

	// Totals
	total := pricing.CartTotal(r.Items).Add(r.PreviousBalance)
	doc.Align(printer.AlignRight).
		Mode(printer.ModeDouble).
		Raw("TOTAL: " + pricing.FormatUSD(total) + "\n").
		Mode(printer.ModeNormal).
		Align(printer.AlignLeft).
		Columns("METODO:", r.PaymentMethod)

	if r.Instructions != "" {
		doc.Divider().
			Raw("NOTAS:\n").
			Line(r.Instructions)
	}

	// Footer
	doc.Feed(1).
		Align(printer.AlignCenter).
		Raw("GRACIAS POR SU COMPRA!\n").
		Mode(printer.ModeSmall).
		Labeled("ATENDIDO POR: ", r.Waiter).
		Mode(printer.ModeNormal)

	doc.Feed(5).
		PartialCut()

	return doc.Bytes()
}

// FormatKitchenTicket renders an unpriced kitchen ticket. Observations are
// printed for new orders and additions only.
func FormatKitchenTicket(t *entity.KitchenTicket, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).
		Mode(printer.ModeDouble).
		Line(string(t.Action)).
		Mode(printer.ModeNormal).
		Line(t.BusinessName).
		Align(printer.AlignLeft)

	identifier := "MESA: " + t.Reference
	if t.Takeaway {
		identifier = "PEDIDO #" + t.Reference
	}
	doc.Columns(identifier, t.PrintedAt.Format(ticketTimeLayout)).
		Labeled("MESONERO: ", t.Waiter).
		Divider()

	for _, item := range t.Items {
		doc.Mode(printer.ModeBold).
			Labeled(fmt.Sprintf("%dX ", item.Quantity), item.Name).
			Mode(printer.ModeNormal)
		writeModifiers(doc, item)
	}

	if obs := strings.TrimSpace(t.Observations); obs != "" && t.Action.CarriesObservations() {
		doc.Divider().
			Raw("OBS:\n").
			Line(obs)
	}

	doc.Feed(5).
		PartialCut()

	return doc.Bytes()
}

// FormatTestPage renders the printer self-test page.
func FormatTestPage(businessName string, width int, now time.Time) []byte {
	doc := printer.NewDocument(width)

	doc.CodeTable(printer.CodePagePC850).
		Align(printer.AlignCenter).
		Mode(printer.ModeDouble).
		Line(businessName).
		Mode(printer.ModeNormal).
		Divider().
		Raw("PRUEBA DE IMPRESION OK\n").
		Divider().
		Align(printer.AlignLeft).
		Raw(fmt.Sprintf("ANCHO: %d CARACTERES\n", doc.Width())).
		Raw("ESTA ES UNA PRUEBA DE TEXTO\n").
		Raw("LIMPIO DE ACENTOS Y ENES.\n\n").
		Align(printer.AlignCenter).
		Raw("FECHA: " + now.Format(ticketDateLayout) + "\n").
		Raw("HORA: " + now.Format("15:04:05") + "\n")

	doc.Feed(6).
		FeedAndCut(3)

	return doc.Bytes()
}
