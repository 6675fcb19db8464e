package notify

import (
	"context"
	"fmt"
	"time"

	"billing-engine/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// Notification kinds published to the stream.
const (
	KindPaymentSucceeded    = "payment_succeeded"
	KindPaymentStillPending = "payment_still_pending"
)

// StreamNotifier publishes notifications to a Redis Stream. A downstream
// mailer consumes the stream and handles delivery, so the billing pass never
// blocks on an email provider. The stream is capped with approximate
// trimming (XADD MAXLEN ~) to bound memory.
type StreamNotifier struct {
	client *goredis.Client
	stream string
	maxLen int64
}

func NewStreamNotifier(client *goredis.Client, stream string, maxLen int64) *StreamNotifier {
	return &StreamNotifier{client: client, stream: stream, maxLen: maxLen}
}

func (n *StreamNotifier) NotifyPaymentSucceeded(ctx context.Context, customerID int) error {
	return n.publish(ctx, map[string]interface{}{
		"kind":        KindPaymentSucceeded,
		"customer_id": customerID,
	})
}

func (n *StreamNotifier) NotifyPaymentStillPending(ctx context.Context, invoice domain.Invoice) error {
	return n.publish(ctx, map[string]interface{}{
		"kind":        KindPaymentStillPending,
		"customer_id": invoice.CustomerID,
		"invoice_id":  invoice.ID,
		"amount":      invoice.Amount.Amount.String(),
		"currency":    string(invoice.Amount.Currency),
	})
}

func (n *StreamNotifier) publish(ctx context.Context, values map[string]interface{}) error {
	values["emitted_at"] = time.Now().UTC().Format(time.RFC3339)

	err := n.client.XAdd(ctx, &goredis.XAddArgs{
		Stream: n.stream,
		MaxLen: n.maxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("publish to stream %s: %w", n.stream, err)
	}
	return nil
}
