package interfaces

import "context"

//go:generate mockgen -source=notification_gateway_interface.go -destination=mocks/notification_gateway_mock.go -package=mocks

// INotificationGateway abstracts the outbound messaging channel (WhatsApp).
//
// Destination is a bare numeric string. Delivery failures are logged by the
// caller and must never fail a booking or cancellation.
type INotificationGateway interface {
	Send(ctx context.Context, destination, text string) error
}
