package repository

import "context"

// Session snapshot keys. Each is read and written as a whole value.
const (
	SessionKeyCart      = "active_cart"
	SessionKeyCustomer  = "customer_details"
	SessionKeyEditingID = "editing_report_id"
)

// SessionStore persists the till's in-progress state so a restart resumes
// the open order.
type SessionStore interface {
	// Load decodes the value under key into dst and reports whether it existed
	Load(ctx context.Context, key string, dst any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}
