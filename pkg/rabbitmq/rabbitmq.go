package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// 遵循：项目名.业务领域.实体/功能
const QueueMediaCleanup = "vidtube.media_cleanup.queue"

// InitRabbitMQ 初始化RabbitMQ连接
func InitRabbitMQ(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	return conn, nil
}

// DeclareQueue 声明持久化队列，有就不用创建（幂等），用完临时channel就关掉
func DeclareQueue(conn *amqp.Connection, name string) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		name,  // name
		true,  // durable: RabbitMQ重启后队列还在
		false, // autoDelete：最后一个消费者断开连接，队列不会被自动删除
		false, // exclusive：多个连接都可以访问
		false, // noWait：等服务器确认队列建好
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	return nil
}
