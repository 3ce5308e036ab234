package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"patient-records-api/config"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

var actions = map[string]string{
	http.MethodPost:   "PatientCreated",
	http.MethodPut:    "PatientUpdated",
	http.MethodPatch:  "PatientPatched",
	http.MethodDelete: "PatientDeleted",
}

type (
	Consumer struct {
		cfg        config.MQ
		log        *zap.Logger
		conn       *amqp091.Connection
		chConsume  *amqp091.Channel
		chDelivery <-chan amqp091.Delivery
	}

	// eventHeader is the part of a patient event the audit log needs.
	eventHeader struct {
		ID        string `json:"event_id"`
		Action    string `json:"event_action"`
		PatientID int64  `json:"patient_id"`
	}
)

// New builds a consumer. A non-nil conn is shared with the publisher and
// only a new channel is opened on it.
func New(cfg config.MQ, logger *zap.Logger, conn *amqp091.Connection) *Consumer {
	return &Consumer{
		cfg:  cfg,
		log:  logger,
		conn: conn,
	}
}

func (c *Consumer) Connect(dsn string) error {
	conn := c.conn
	if conn == nil || conn.IsClosed() {
		var err error
		conn, err = amqp091.Dial(dsn)
		if err != nil {
			return fmt.Errorf("amqp dial: %w", err)
		}
	}

	ch, err := conn.Channel()
	if err != nil {
		if conn != c.conn {
			_ = conn.Close()
		}
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.conn, c.chConsume = conn, ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range []string{
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	} {
		if err := c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	var err error
	c.chDelivery, err = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				c.log.Warn("delivery channel closed")
				return
			}
			if err := c.delivery(msg); err != nil {
				c.log.Error("mq read message error", zap.Error(err))
			}
		case <-ctx.Done():
			if c.chConsume != nil {
				_ = c.chConsume.Close()
			}
			return
		}
	}
}

// delivery writes one audit line per patient event. Messages are auto-acked.
func (c *Consumer) delivery(msg amqp091.Delivery) error {
	var h eventHeader
	if err := json.Unmarshal(msg.Body, &h); err != nil {
		return fmt.Errorf("decode event (routing key %q): %w", msg.RoutingKey, err)
	}

	c.log.Info("patient event",
		zap.String("action", actions[msg.RoutingKey]),
		zap.String("event_id", h.ID),
		zap.Int64("patient_id", h.PatientID),
		zap.ByteString("event_body", msg.Body),
	)

	return nil
}
