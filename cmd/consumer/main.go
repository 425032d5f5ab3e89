package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"Vidtube/internal/config"
	"Vidtube/internal/media"
	"Vidtube/pkg/logger"
	"Vidtube/pkg/rabbitmq"

	"github.com/streadway/amqp"
)

// 消费者进程：连接RabbitMQ和媒体存储，把不再被引用的媒体文件删掉
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	logger.InitLogger(cfg.LogLevel, cfg.LogFile)

	uploader, err := media.NewS3Uploader(cfg, nil)
	if err != nil {
		logger.Log.Fatalf("消费者无法初始化媒体存储: %v", err)
	}
	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()
	if err := rabbitmq.DeclareQueue(rabbitMQConn, rabbitmq.QueueMediaCleanup); err != nil {
		logger.Log.Fatalf("无法声明媒体清理队列: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	consumeMediaCleanup(ctx, rabbitMQConn, uploader)
}

// 媒体清理消费者：1、通过mq的TCP连接创建channel 2、通过ch注册消费者 3、逐条处理并根据结果Ack/Nack 4、收到退出信号后停止
func consumeMediaCleanup(ctx context.Context, conn *amqp.Connection, deleter MediaDeleter) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	// 一次只取一条，删除对象是慢操作，不让消息堆在一个消费者手里
	if err := ch.Qos(1, 0, false); err != nil {
		logger.Log.Fatalf("设置Qos失败: %v", err)
	}
	msgs, err := ch.Consume(
		rabbitmq.QueueMediaCleanup, // queue
		"",                         // consumer
		false,                      // auto-ack: 处理完再手动确认
		false,                      // exclusive
		false,                      // no-local
		false,                      // no-wait
		nil,                        // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册媒体清理消费者: %v", err)
	}
	logger.Log.Info(" [*] 等待媒体清理消息中. 按 CTRL+C 退出")

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("收到退出信号，消费者停止")
			return
		case d, ok := <-msgs:
			// msgs不是切片，而是通道channel，连接断开时会被关闭
			if !ok {
				logger.Log.Warn("消息通道已关闭")
				return
			}
			ack(d, handleCleanup(ctx, deleter, d.Body), d.Redelivered)
		}
	}
}

// ack 根据处理结果决定如何确认：成功Ack；坏消息直接丢弃；临时失败重试一次，重投之后还失败就丢弃并记日志
func ack(d amqp.Delivery, result error, redelivered bool) {
	logCtx := logger.Log.WithField("message_id", d.MessageId).WithField("redelivered", redelivered)
	switch decideAck(result, redelivered) {
	case ackDone:
		_ = d.Ack(false)
	case ackDrop:
		logCtx.WithError(result).Error("媒体清理消息处理失败，消息被丢弃")
		_ = d.Nack(false, false)
	case ackRetry:
		logCtx.WithError(result).Warn("媒体清理消息处理失败，将进行重试")
		_ = d.Nack(false, true)
	}
}
