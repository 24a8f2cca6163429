package ports

import "context"

// NotificationGateway tells the customer that an order can be picked up.
// The lifecycle controller calls NotifyReady once per successful MarkReady,
// after the Ready state is committed.
type NotificationGateway interface {
	NotifyReady(ctx context.Context, token string) error
}
