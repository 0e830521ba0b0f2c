package services

import (
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ToggleEvent 关系开关事件，由 ToggleService 发出、EngagementService 消费。
// 投递语义为 at-least-once，经验发放端不做去重（与账本只追加的约定一致）。
type ToggleEvent struct {
	ActorID    uint      `json:"actor_id"`
	OwnerID    uint      `json:"owner_id"`
	TargetKind string    `json:"target_kind"`
	TargetID   uint      `json:"target_id"`
	Kind       string    `json:"kind"`
	Activated  bool      `json:"activated"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher 事件出口；rabbit 未配置时退化为进程内直调
type EventPublisher interface {
	PublishToggle(evt ToggleEvent) error
}

// RabbitPublisher 把事件发到持久化队列
type RabbitPublisher struct {
	ch    *amqp.Channel
	queue string
}

func NewRabbitPublisher(ch *amqp.Channel, queue string) *RabbitPublisher {
	return &RabbitPublisher{ch: ch, queue: queue}
}

func (p *RabbitPublisher) PublishToggle(evt ToggleEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.ch.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// InProcessPublisher 同步直调处理函数，用于未接入 RabbitMQ 的部署和测试
type InProcessPublisher struct {
	Handler func(ToggleEvent) error
}

func (p *InProcessPublisher) PublishToggle(evt ToggleEvent) error {
	if p.Handler == nil {
		return nil
	}
	return p.Handler(evt)
}

// StartEngagementConsumer 消费开关事件并记账。
// 处理失败只打日志（带 user/kind/target，便于人工重放），照常 Ack，
// 不能因为记账失败把消息堵在队列里。
func StartEngagementConsumer(ch *amqp.Channel, queue string, svc *EngagementService) error {
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for d := range msgs {
			var evt ToggleEvent
			if err := json.Unmarshal(d.Body, &evt); err != nil {
				log.Printf("engagement consumer: bad event body: %v", err)
				_ = d.Ack(false)
				continue
			}
			if err := svc.HandleToggleEvent(evt); err != nil {
				log.Printf("engagement consumer: grant failed: user=%d kind=%s target=%s/%d err=%v",
					evt.OwnerID, evt.Kind, evt.TargetKind, evt.TargetID, err)
			}
			_ = d.Ack(false)
		}
	}()

	return nil
}
