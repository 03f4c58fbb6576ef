package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Sharrmavishal/startsolomay26-sub001/internal/domain/entities"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DeliveryAcker is the dispatcher's view of the notification store: the
// pending rows still awaiting delivery and the sent acknowledgement.
type DeliveryAcker interface {
	ListPending(ctx context.Context) ([]entities.Notification, error)
	MarkDelivered(ctx context.Context, id string) (entities.Notification, error)
}

// StartNotificationDispatcher connects to RabbitMQ, declares the durable
// notifications.enqueued queue, and consumes deliveries. Each message is
// handed to the channel transport (email/WhatsApp providers behind a log line
// here) and the backing row is marked sent. On every (re)connect the pending
// rows are swept first, which catches notifications whose broker publish was
// lost or whose message was nacked. The function runs a reconnect loop with
// exponential backoff and does not return under normal operation; processing
// errors nack the offending message and keep consuming.
func StartNotificationDispatcher(url string, acker DeliveryAcker) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("[notify][dispatcher] failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		sweepPending(acker)

		if err := consumeLoop(conn, acker); err != nil {
			log.Printf("[notify][dispatcher] consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
		}
	}
}

// sweepPending delivers every notification row still marked pending. Rows the
// consume loop is about to deliver may be swept here first; the second
// MarkDelivered is a no-op status overwrite.
func sweepPending(acker DeliveryAcker) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pending, err := acker.ListPending(ctx)
	if err != nil {
		log.Printf("[notify][dispatcher] pending sweep failed: %v", err)
		return
	}
	if len(pending) == 0 {
		return
	}
	log.Printf("[notify][dispatcher] sweeping %d pending notification(s)", len(pending))

	for _, n := range pending {
		log.Printf("[notify][dispatcher] delivering notification_id=%s user_id=%s channel=%s type=%s title=%q",
			n.ID, n.UserID, n.Channel, n.Type, n.Title)
		if _, err := acker.MarkDelivered(ctx, n.ID); err != nil {
			log.Printf("[notify][dispatcher] sweep mark delivered %s failed: %v", n.ID, err)
		}
	}
}

func consumeLoop(conn *amqp.Connection, acker DeliveryAcker) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("[notify][dispatcher] set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(notificationQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(notificationQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body, acker); err != nil {
			log.Printf("[notify][dispatcher] handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

func handleMessage(body []byte, acker DeliveryAcker) error {
	var evt entities.NotificationEnqueuedEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if evt.NotificationID == "" {
		return fmt.Errorf("event missing notification_id")
	}

	// Channel providers (email/WhatsApp) hang off this point; the dispatch
	// log line is the delivery record.
	log.Printf("[notify][dispatcher] delivering notification_id=%s user_id=%s channel=%s type=%s title=%q",
		evt.NotificationID, evt.UserID, evt.Channel, evt.Type, evt.Title)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := acker.MarkDelivered(ctx, evt.NotificationID); err != nil {
		return fmt.Errorf("mark delivered %s: %w", evt.NotificationID, err)
	}
	return nil
}
