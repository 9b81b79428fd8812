package mq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"
)

const InteractionEventQueue = "interaction_event_queue"

type Producer struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

func NewProducer(rabbitmqURL, exchange string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "failed to open a channel")
	}

	producer := &Producer{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
	}

	if err := producer.setupTopology(); err != nil {
		producer.Close()
		return nil, errors.Wrap(err, "failed to setup topology")
	}

	hlog.Infof("Connect RabbitMQ Success, exchange: %s", exchange)
	return producer, nil
}

func (p *Producer) setupTopology() error {
	// topic交换机 路由键即事件类型
	err := p.channel.ExchangeDeclare(
		p.exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return errors.Wrap(err, "failed to declare interaction exchange")
	}

	_, err = p.channel.QueueDeclare(
		InteractionEventQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return errors.Wrap(err, "failed to declare interaction queue")
	}

	err = p.channel.QueueBind(
		InteractionEventQueue,
		"#",
		p.exchange,
		false,
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "failed to bind interaction queue")
	}
	return nil
}

func (p *Producer) Publish(ctx context.Context, event *InteractionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed to marshal interaction event")
	}

	// amqp channel 不是并发安全的
	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		event.Type,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    event.EventID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return errors.Wrapf(err, "failed to publish %s event", event.Type)
	}

	hlog.CtxDebugf(ctx, "Published interaction event: %+v", event)
	return nil
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
