package enum

// KitchenAction is the header printed on a kitchen ticket.
type KitchenAction string

const (
	KitchenActionNew          KitchenAction = "Pedido Nuevo"
	KitchenActionAddition     KitchenAction = "Adicional"
	KitchenActionCancellation KitchenAction = "Cancelación"
)

// CarriesObservations reports whether free-text observations belong on the ticket.
func (a KitchenAction) CarriesObservations() bool {
	return a == KitchenActionNew || a == KitchenActionAddition
}
