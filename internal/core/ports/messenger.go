package ports

import (
	"context"

	"mealbot/internal/core/domain/model/kernel"
)

// Messenger sends outbound WhatsApp messages to buyers and riders.
// Implementations talk to the WhatsApp Business provider; tests use a mock.
type Messenger interface {
	// SendText delivers a plain text message to the phone number.
	SendText(ctx context.Context, to kernel.Phone, body string) error
}
