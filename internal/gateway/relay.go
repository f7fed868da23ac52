package gateway

import (
	"context"
	"errors"

	"pos-system/internal/connections/rabbitmq"
	"pos-system/internal/logger"
)

// Relay consumes the events fanout exchange and forwards every message to
// the WebSocket hub. Running the broadcast through the broker instead of
// calling the hub directly keeps multiple order-service instances in sync:
// each instance's gateway sees events published by all of them.
type Relay struct {
	mq  *rabbitmq.Client
	hub *Hub
	lg  *logger.Logger
}

func NewRelay(mq *rabbitmq.Client, hub *Hub, lg *logger.Logger) *Relay {
	return &Relay{mq: mq, hub: hub, lg: lg}
}

func (rl *Relay) Run(ctx context.Context) error {
	deliveries, err := rl.mq.Subscribe("ws-gateway")
	if err != nil {
		return err
	}
	rl.lg.Info("relay_started", nil)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("event stream closed")
			}
			rl.hub.Broadcast(d.Body)
			_ = d.Ack(false)
		}
	}
}
