// Package queue_publisher provides functions to publish domain events to the
// message broker.  Errors are logged and returned so callers can ignore
// failures without interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/sportfitx/class-booking/internal/queue"
)

// PublishSettlementRecorded publishes a SettlementRecordedEvent to the
// "settlement.recorded" queue.  The function never panics; any error is
// logged and returned so the caller can choose to ignore it.  Messages are
// marked persistent so they survive broker restarts.  An empty URL means
// event publishing is disabled and the call is a no-op.
func PublishSettlementRecorded(ctx context.Context, url string, event q.SettlementRecordedEvent) error {
	if url == "" {
		return nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent); durable so messages survive
	// broker restarts.
	if _, err := ch.QueueDeclare("settlement.recorded", true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	err = ch.PublishWithContext(ctx, "", "settlement.recorded", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
	}
	return err
}
