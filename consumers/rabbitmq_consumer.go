package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
)

const (
	defaultQueueName = "rental.web.events"
	handleTimeout    = 30 * time.Second
)

// RabbitMQConsumer consume los eventos del backend para mantener el estado del BFF al día
type RabbitMQConsumer struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	handler    EventHandler
	done       chan struct{}
}

// NewRabbitMQConsumer conecta, declara los exchanges y bindea la cola
func NewRabbitMQConsumer(rabbitURL, queueName string, handler EventHandler) (*RabbitMQConsumer, error) {
	log.Info().Msg("Connecting to RabbitMQ")

	// Conectar con RabbitMQ
	conn, err := amqp.Dial(rabbitURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	// Crear channel
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if queueName == "" {
		queueName = defaultQueueName
	}

	if err := declareTopology(ch, queueName); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info().Str("queue", queueName).Msg("RabbitMQ queue declared and bound")

	return &RabbitMQConsumer{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
		handler:    handler,
	}, nil
}

// declareTopology declara la cola durable, los exchanges topic y los bindings
func declareTopology(ch *amqp.Channel, queueName string) error {
	_, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	for exchange, keys := range Bindings {
		if err := ch.ExchangeDeclare(
			exchange, // name
			"topic",  // kind
			true,     // durable
			false,    // auto-deleted
			false,    // internal
			false,    // no-wait
			nil,      // arguments
		); err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
		}

		for _, key := range keys {
			if err := ch.QueueBind(queueName, key, exchange, false, nil); err != nil {
				return fmt.Errorf("failed to bind %s to %s: %w", key, exchange, err)
			}
		}
	}
	return nil
}

// Start inicia el consumo de mensajes
func (c *RabbitMQConsumer) Start() error {
	// Procesar un mensaje a la vez
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (manejamos manualmente)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Info().Str("queue", c.queueName).Msg("Consumer registered, waiting for messages")

	c.done = make(chan struct{})
	go func() {
		defer close(c.done)
		for msg := range msgs {
			c.processMessage(msg)
		}
	}()
	return nil
}

// processMessage decodifica según la routing key y hace ack/nack.
// Mensajes mal formados se descartan; errores del handler vuelven a la cola.
func (c *RabbitMQConsumer) processMessage(msg amqp.Delivery) {
	logger := log.With().Str("routing_key", msg.RoutingKey).Logger()

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	err := c.dispatch(ctx, msg.RoutingKey, msg.Body)
	switch {
	case err == nil:
		if ackErr := msg.Ack(false); ackErr != nil {
			logger.Error().Err(ackErr).Msg("Error acknowledging message")
		}
	case isMalformed(err):
		logger.Warn().Err(err).Str("body", string(msg.Body)).Msg("Discarding malformed event")
		msg.Nack(false, false)
	default:
		logger.Error().Err(err).Msg("Error processing event, requeueing")
		msg.Nack(false, true)
	}
}

func (c *RabbitMQConsumer) dispatch(ctx context.Context, routingKey string, body []byte) error {
	switch routingKey {
	case KeyPropertyCreated, KeyPropertyStatusChanged, KeyPropertyValidated, KeyPropertyDeleted:
		var event PropertyEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		if event.PropertyID == "" {
			return fmt.Errorf("%w: propertyId is empty", errMalformed)
		}
		return c.handler.HandlePropertyEvent(ctx, routingKey, event)

	case KeyUserTypeUpgraded:
		var event UserTypeEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("%w: %v", errMalformed, err)
		}
		if event.UserID == "" {
			return fmt.Errorf("%w: userId is empty", errMalformed)
		}
		return c.handler.HandleUserTypeUpgraded(ctx, event)
	}
	return fmt.Errorf("%w: unknown routing key %q", errMalformed, routingKey)
}

func isMalformed(err error) bool {
	return errors.Is(err, errMalformed)
}

// Close cierra channel y conexión; espera a que termine el loop de consumo
func (c *RabbitMQConsumer) Close() error {
	var errs []error

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing channel: %w", err))
		}
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing connection: %w", err))
		}
	}

	if c.done != nil {
		select {
		case <-c.done:
		case <-time.After(5 * time.Second):
			log.Warn().Msg("Timed out waiting for consumer loop to stop")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing RabbitMQ consumer: %v", errs)
	}
	log.Info().Msg("RabbitMQ consumer closed")
	return nil
}
