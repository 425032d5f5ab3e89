package service

import (
	"encoding/json"

	"Vidtube/pkg/logger"
	"Vidtube/pkg/rabbitmq"

	"github.com/streadway/amqp"
)

// MediaCleanupMessage 需要从媒体存储删除的地址，由cmd/consumer消费
type MediaCleanupMessage struct {
	URLs   []string `json:"urls"`
	Reason string   `json:"reason"`
}

// MediaJanitor 把不再被引用的媒体地址交给后台删除；投递失败只记日志，不影响请求结果
type MediaJanitor interface {
	Discard(reason string, urls ...string)
}

type amqpMediaJanitor struct {
	rabbitMQConn *amqp.Connection
}

// NewMediaJanitor 创建清理队列的生产者，队列不存在就声明（幂等）
func NewMediaJanitor(conn *amqp.Connection) (MediaJanitor, error) {
	if err := rabbitmq.DeclareQueue(conn, rabbitmq.QueueMediaCleanup); err != nil {
		return nil, err
	}
	return &amqpMediaJanitor{rabbitMQConn: conn}, nil
}

func (j *amqpMediaJanitor) Discard(reason string, urls ...string) {
	msg := MediaCleanupMessage{Reason: reason}
	for _, u := range urls {
		if u != "" {
			msg.URLs = append(msg.URLs, u)
		}
	}
	if len(msg.URLs) == 0 {
		return
	}
	if err := j.publishCleanupMessage(msg); err != nil {
		// 对象会残留在存储里，但数据库已经不再引用，需要人工清理
		logger.Log.WithError(err).
			WithField("urls", msg.URLs).
			WithField("reason", reason).
			Error("媒体清理消息投递失败")
	}
}

// 私有方法，发送消息到RabbitMQ：1、每条消息单独开channel 2、序列化 3、持久化投递
func (j *amqpMediaJanitor) publishCleanupMessage(msg MediaCleanupMessage) error {
	ch, err := j.rabbitMQConn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return ch.Publish(
		"",                         // exchange默认交换机
		rabbitmq.QueueMediaCleanup, // routing key
		false,                      // mandatory
		false,                      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // 确保消息持久化
		})
}
