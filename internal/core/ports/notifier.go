package ports

import "context"

// Notifier delivers push notifications to marketplace users.
type Notifier interface {
	// LookupFidByAddress maps a custody address to a user id, or
	// domain.ErrNotFound when the address is unknown.
	LookupFidByAddress(ctx context.Context, address string) (int64, error)

	// SendNotification pushes a notification to a user.
	SendNotification(ctx context.Context, fid int64, title, body, targetURL string) error
}
