package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/domain/enum"
	"github.com/sangkips/pizzeria-pos/internal/domain/pricing"
)

// Message headers, picked by how the order was finalized.
const (
	headerAddition      = "*📝 PEDIDO ADICIONAL / EXTRA*"
	headerPendingUpdate = "*♻️ ACTUALIZACIÓN DE PENDIENTE*"
	headerPaidEdit      = "*✅ CUENTA COBRADA / CERRADA*"
	headerUnpaidNew     = "*⚠️ NUEVO PEDIDO (POR COBRAR)*"
	headerNew           = "*🔔 NUEVO PEDIDO*"
)

// OrderMessage is everything the outbound order text is built from.
type OrderMessage struct {
	Waiter        string
	Reference     string
	Instructions  string
	Items         []entity.CartItem
	Editing       bool
	Unpaid        bool
	PaymentMethod string
}

// ComposedMessage is the order text and the deep link that opens it.
type ComposedMessage struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// MessageService builds the order text handed to the messaging app
type MessageService struct {
	baseURL string
}

// NewMessageService creates a new message service. baseURL is the deep-link
// prefix the target number is appended to.
func NewMessageService(baseURL string) *MessageService {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &MessageService{baseURL: baseURL}
}

// Compose renders the message. Editing an unpaid order with new lines sends
// only those lines together with the previous debt.
func (s *MessageService) Compose(targetNumber string, m *OrderMessage) *ComposedMessage {
	total := pricing.CartTotal(m.Items)

	var fresh []entity.CartItem
	for _, it := range m.Items {
		if !it.IsServed {
			fresh = append(fresh, it)
		}
	}
	partial := m.Editing && m.Unpaid && len(fresh) > 0
	items := m.Items
	if partial {
		items = fresh
	}

	var b strings.Builder
	switch {
	case partial:
		b.WriteString(headerAddition)
	case m.Editing && m.Unpaid:
		b.WriteString(headerPendingUpdate)
	case m.Editing:
		b.WriteString(headerPaidEdit)
	case m.Unpaid:
		b.WriteString(headerUnpaidNew)
	default:
		b.WriteString(headerNew)
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "*🤵 Mesero:* %s\n", m.Waiter)
	fmt.Fprintf(&b, "*📍 Referencia:* %s\n", m.Reference)
	if m.Instructions != "" {
		fmt.Fprintf(&b, "*📝 Nota:* %s\n", m.Instructions)
	}
	b.WriteString("\n*🛒 DETALLE:* \n")

	for _, it := range items {
		served := ""
		if !partial && it.IsServed {
			served = "_(Ya servido)_"
		}
		fmt.Fprintf(&b, "▪️ *%dx %s* %s\n", it.Quantity, it.Name, served)
		writeGroupedModifiers(&b, it.SelectedModifiers)
		if it.Pizza != nil && it.Pizza.IsSpecial && it.Notes != "" {
			fmt.Fprintf(&b, "   _Base:_ %s\n", it.Notes)
		}
	}

	if partial {
		addition := pricing.CartTotal(fresh)
		fmt.Fprintf(&b, "\n*💰 DEUDA PREVIA: $%s*\n", pricing.Format(total.Sub(addition)))
		fmt.Fprintf(&b, "*➕ ADICIONAL: $%s*\n", pricing.Format(addition))
		fmt.Fprintf(&b, "*💲 TOTAL FINAL: $%s*\n", pricing.Format(total))
	} else {
		fmt.Fprintf(&b, "\n*💰 TOTAL: $%s*\n", pricing.Format(total))
	}

	status := m.PaymentMethod
	if m.Unpaid {
		status = enum.SaleNotePending
	}
	fmt.Fprintf(&b, "*💳 Estado:* %s\n", status)

	text := b.String()
	return &ComposedMessage{Text: text, Link: s.link(targetNumber, text)}
}

func (s *MessageService) link(targetNumber, text string) string {
	// url.QueryEscape encodes spaces as '+'; the messaging app expects %20.
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return s.baseURL + url.PathEscape(targetNumber) + "?text=" + escaped
}

// writeGroupedModifiers prints one line per modifier group, options joined
// in the order they were picked.
func writeGroupedModifiers(b *strings.Builder, modifiers []entity.SelectedModifier) {
	var order []string
	groups := make(map[string][]string)
	for _, m := range modifiers {
		if _, ok := groups[m.GroupTitle]; !ok {
			order = append(order, m.GroupTitle)
		}
		groups[m.GroupTitle] = append(groups[m.GroupTitle], m.Option.Name)
	}
	for _, title := range order {
		fmt.Fprintf(b, "   _%s:_ %s\n", title, strings.Join(groups[title], ", "))
	}
}
