package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var printedAt = time.Date(2024, 5, 10, 19, 5, 42, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func modifier(group, name, price string) entity.SelectedModifier {
	return entity.SelectedModifier{GroupTitle: group, Option: entity.ModifierOption{Name: name, Price: dec(price)}}
}

func pizzaLine() entity.CartItem {
	return entity.CartItem{
		ID:       "p1",
		Name:     "Pizza Mediana",
		Price:    dec("10.75"),
		Quantity: 2,
		SelectedModifiers: []entity.SelectedModifier{
			modifier("Tamaño", "Mediana", "0"),
			modifier("🍕 TODA LA PIZZA", "Pepperoni", "0"),
		},
	}
}

func TestModifierLabel(t *testing.T) {
	tests := map[string]string{
		"◐ MITAD IZQUIERDA":    "MITAD IZQ",
		"◑ MITAD DERECHA":      "MITAD DER",
		"🍕 TODA LA PIZZA":      "TODA",
		"✓ INGREDIENTES BASE":  "BASE",
		"BORDE ADICIONAL":      "ADIC",
		"EXTRA QUESO":          "ADIC",
		"Tamaño":               "TAM",
		"Salsas":               "Salsas",
		"Acompañantes del día": "Acompañant",
	}
	for in, want := range tests {
		if got := ModifierLabel(in); got != want {
			t.Errorf("ModifierLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatReceipt(t *testing.T) {
	r := &entity.Receipt{
		BusinessName:  "Margarita Pizzería",
		Title:         entity.ReceiptTitleOrder,
		Reference:     "5",
		Waiter:        "Mesero 1",
		Items:         []entity.CartItem{pizzaLine()},
		PaymentMethod: "Efectivo",
		PrintedAt:     printedAt,
	}

	dashes := strings.Repeat("-", 30) + "\n"
	want := "\x1b@" +
		"\x1ba1" + "\x1b!\x30" + "MARGARITA PIZZERIA\n" + "\x1b!\x00" + "RECIBO DE PEDIDO\n" + "\x1ba0" +
		"REF: 5" + strings.Repeat(" ", 19) + "19:05\n" +
		"FECHA: 10/5/2024\n" +
		"ATENDIDO POR: MESERO 1\n" +
		dashes +
		"PRODUCTO" + strings.Repeat(" ", 17) + "TOTAL\n" +
		dashes +
		"\x1b!\x08" + "2X PIZZA MEDIANA" + strings.Repeat(" ", 8) + "$21.50\n" + "\x1b!\x00" +
		"TAM: MEDIANA\n" +
		"TODA: PEPPERONI\n" +
		dashes +
		"\x1ba2" + "\x1b!\x30" + "TOTAL: $21.50\n" + "\x1b!\x00" +
		"\x1ba0" + "METODO:" + strings.Repeat(" ", 15) + "EFECTIVO\n" +
		"\n" + "\x1ba1" + "GRACIAS POR SU COMPRA!\n" +
		"\x1b!\x01" + "ATENDIDO POR: MESERO 1\n" + "\x1b!\x00" +
		"\n\n\n\n\n" + "\x1dV\x01"

	got := FormatReceipt(r, 30)
	if string(got) != want {
		t.Errorf("receipt mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestFormatReceiptPreviousBalance(t *testing.T) {
	r := &entity.Receipt{
		BusinessName:    "Margarita",
		Title:           entity.ReceiptTitleAddition,
		Reference:       "7",
		Waiter:          "Ana",
		Items:           []entity.CartItem{{Name: "Refresco", Price: dec("2.50"), Quantity: 2}},
		PreviousBalance: dec("15"),
		PaymentMethod:   enum.SaleNotePending,
		Instructions:    "Sin cebolla, por favor",
		PrintedAt:       printedAt,
	}
	got := string(FormatReceipt(r, 42))

	balance := "\x1b!\x08" + "(- SALDO PENDIENTE -)\n" +
		"MONTO PREVIO" + strings.Repeat(" ", 24) + "$15.00\n" +
		"\x1b!\x00" + strings.Repeat("-", 21) + "\n"
	for _, part := range []string{
		"ADICIONAL - POR PAGAR\n",
		balance,
		"TOTAL: $20.00\n",
		"NOTAS:\nSIN CEBOLLA, POR FAVOR\n",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("receipt missing %q\n%q", part, got)
		}
	}
	if strings.Index(got, balance) > strings.Index(got, "2X REFRESCO") {
		t.Error("previous balance must precede the items")
	}
}

func TestFormatReceiptWrapsModifiers(t *testing.T) {
	item := pizzaLine()
	item.SelectedModifiers = []entity.SelectedModifier{
		modifier("◐ MITAD IZQUIERDA", "Pepperoni, Champiñones, Jamón", "0"),
	}
	r := &entity.Receipt{BusinessName: "M", Title: "T", Items: []entity.CartItem{item}, PaymentMethod: "Zelle", PrintedAt: printedAt}
	got := string(FormatReceipt(r, 30))

	// "  MITAD IZQ: Pepperoni, Champiñones, Jamón" is 42 runes: one full chunk, then the rest.
	want := "MITAD IZQ: PEPPERONI, CHAMPI\nNONES, JAMON\n"
	if !strings.Contains(got, want) {
		t.Errorf("wrapped modifier not found\n%q", got)
	}
}

func TestFormatReceiptLineWidth(t *testing.T) {
	r := &entity.Receipt{
		BusinessName:  "M",
		Title:         "T",
		Reference:     "Una referencia muy, muy larga para la mesa",
		Waiter:        "Ana",
		Items:         []entity.CartItem{{Name: "Producto con un nombre larguísimo de verdad", Price: dec("1234.5"), Quantity: 10}},
		PaymentMethod: "Pago Móvil",
		PrintedAt:     printedAt,
	}
	for _, width := range []int{30, 42} {
		out := string(FormatReceipt(r, width))
		for _, prefix := range []string{"REF: ", "PRODUCTO", "10X PRODUCTO", "METODO:"} {
			i := strings.Index(out, prefix)
			if i < 0 {
				t.Fatalf("width %d: %q not found", width, prefix)
			}
			line := out[i : i+strings.IndexByte(out[i:], '\n')]
			if len(line) != width {
				t.Errorf("width %d: line %q has %d columns", width, line, len(line))
			}
		}
	}
}

func TestFormatKitchenTicket(t *testing.T) {
	ticket := &entity.KitchenTicket{
		Action:       enum.KitchenActionAddition,
		BusinessName: "Margarita Pizzería",
		Reference:    "12",
		Waiter:       "Mesero 1",
		Items:        []entity.CartItem{pizzaLine()},
		Observations: "  bien cocida ",
		PrintedAt:    printedAt,
	}

	dashes := strings.Repeat("-", 30) + "\n"
	want := "\x1b@" +
		"\x1ba1" + "\x1b!\x30" + "ADICIONAL\n" + "\x1b!\x00" + "MARGARITA PIZZERIA\n" + "\x1ba0" +
		"MESA: 12" + strings.Repeat(" ", 17) + "19:05\n" +
		"MESONERO: MESERO 1\n" +
		dashes +
		"\x1b!\x08" + "2X PIZZA MEDIANA\n" + "\x1b!\x00" +
		"TAM: MEDIANA\n" +
		"TODA: PEPPERONI\n" +
		dashes + "OBS:\n" + "BIEN COCIDA\n" +
		"\n\n\n\n\n" + "\x1dV\x01"

	got := FormatKitchenTicket(ticket, 30)
	if string(got) != want {
		t.Errorf("kitchen ticket mismatch\n got: %q\nwant: %q", got, want)
	}
	if bytes.Contains(got, []byte("$")) {
		t.Error("kitchen ticket must not carry prices")
	}
}

func TestFormatKitchenTicketVariants(t *testing.T) {
	ticket := &entity.KitchenTicket{
		Action:       enum.KitchenActionCancellation,
		BusinessName: "M",
		Reference:    "3",
		Takeaway:     true,
		Waiter:       "Ana",
		Items:        []entity.CartItem{{Name: "Refresco", Quantity: 1}},
		Observations: "rápido",
		PrintedAt:    printedAt,
	}
	got := string(FormatKitchenTicket(ticket, 30))
	if !strings.Contains(got, "CANCELACION\n") || !strings.Contains(got, "PEDIDO #3") {
		t.Errorf("header = %q", got)
	}
	if strings.Contains(got, "OBS:") {
		t.Error("cancellation printed observations")
	}
}

func TestFormatTestPage(t *testing.T) {
	got := string(FormatTestPage("Piña Pizza", 42, printedAt))
	want := "\x1b@" + "\x1bt\x02" + "\x1ba1" + "\x1b!\x30" + "PINA PIZZA\n" + "\x1b!\x00" +
		strings.Repeat("-", 42) + "\n" + "PRUEBA DE IMPRESION OK\n" + strings.Repeat("-", 42) + "\n" +
		"\x1ba0" + "ANCHO: 42 CARACTERES\n" + "ESTA ES UNA PRUEBA DE TEXTO\n" + "LIMPIO DE ACENTOS Y ENES.\n\n" +
		"\x1ba1" + "FECHA: 10/5/2024\n" + "HORA: 19:05:42\n" +
		"\n\n\n\n\n\n" + "\x1dVA\x03"
	if got != want {
		t.Errorf("test page mismatch\n got: %q\nwant: %q", got, want)
	}
}
