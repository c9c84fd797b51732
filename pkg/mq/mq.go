// Package mq 提供基于RabbitMQ的领域事件发布
//
// Exchange使用topic类型，路由键约定：
// - order.placed          订单创建
// - order.status_changed  订单状态变更
// - book.stock_low        库存低水位告警
//
// 事件发布失败不影响主流程：核心一致性由数据库事务保证，
// 事件仅用于下游异步消费（通知、报表、补货）。
package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// 事件路由键
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
	EventBookStockLow       = "book.stock_low"
)

// Event 领域事件信封
type Event struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	Timestamp string                 `json:"timestamp"`
	Payload   map[string]interface{} `json:"payload"`
}

// NewEvent 创建事件信封
func NewEvent(eventType string, payload map[string]interface{}) Event {
	return Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   payload,
	}
}

// EventPublisher 事件发布接口
// MQ未启用时注入NopPublisher，调用方无需判空
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload map[string]interface{}) error
	Close() error
}

// Publisher RabbitMQ事件发布者
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

// NewPublisher 创建发布者并声明topic交换机
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("连接RabbitMQ失败: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("创建Channel失败: %w", err)
	}

	// durable交换机，Broker重启后保留
	if err := channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("声明Exchange失败: %w", err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Publish 发布事件（路由键=事件类型）
func (p *Publisher) Publish(ctx context.Context, eventType string, payload map[string]interface{}) error {
	event := NewEvent(eventType, payload)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}

	return p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		eventType,  // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// Close 关闭连接
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher 空实现（MQ未启用或测试场景）
type NopPublisher struct{}

// NewNopPublisher 创建空发布器
func NewNopPublisher() EventPublisher {
	return NopPublisher{}
}

func (NopPublisher) Publish(ctx context.Context, eventType string, payload map[string]interface{}) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
