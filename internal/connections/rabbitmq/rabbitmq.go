package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"pos-system/internal/config"
)

// EventsExchange is the single broadcast topic: every order event is
// published here and every subscriber gets every message.
const EventsExchange = "pos.events"

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	acks <-chan amqp.Confirmation
	mu   sync.Mutex // serializes Publish while waiting for confirms
}

func Dial(cfg config.RabbitMQConfig) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%d/%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.VHost)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	acks := ch.NotifyPublish(make(chan amqp.Confirmation, 1))

	return &Client{conn: conn, ch: ch, acks: acks}, nil
}

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Client) Ping() error {
	if c == nil || c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// DeclareEvents declares the broadcast fanout exchange. Idempotent.
func (c *Client) DeclareEvents() error {
	return c.ch.ExchangeDeclare(EventsExchange, "fanout", true, false, false, false, nil)
}

// Publish sends one event to the fanout exchange and waits for the broker's
// publisher confirm.
func (c *Client) Publish(ctx context.Context, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.ch.PublishWithContext(ctx, EventsExchange, "", false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return err
	}

	select {
	case conf := <-c.acks:
		if conf.Ack {
			return nil
		}
		return errors.New("publish NACK from broker")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe binds an exclusive auto-delete queue to the fanout exchange and
// starts consuming. The queue disappears with the connection, so each
// subscriber sees only events published while it is up; missed history is
// covered by the initial bulk fetch on the display side.
func (c *Client) Subscribe(consumer string) (<-chan amqp.Delivery, error) {
	q, err := c.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, err
	}
	if err := c.ch.QueueBind(q.Name, "", EventsExchange, false, nil); err != nil {
		return nil, err
	}
	return c.ch.Consume(q.Name, consumer, false, true, false, false, nil)
}
