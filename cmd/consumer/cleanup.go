package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"Vidtube/internal/service"
	"Vidtube/pkg/logger"
)

// MediaDeleter 按公开地址删除媒体对象，media.Uploader满足这个接口
type MediaDeleter interface {
	Delete(ctx context.Context, url string) error
}

// errBadMessage 无法解析的消息，重试也没用
var errBadMessage = errors.New("bad cleanup message")

type ackDecision int

const (
	ackDone ackDecision = iota
	ackRetry
	ackDrop
)

// handleCleanup 处理一条清理消息：1、反序列化 2、逐个删除，单个失败不影响其他地址 3、有失败就返回错误让上层决定是否重试
func handleCleanup(ctx context.Context, deleter MediaDeleter, body []byte) error {
	var msg service.MediaCleanupMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%w: %v", errBadMessage, err)
	}
	logCtx := logger.Log.WithField("reason", msg.Reason).WithField("count", len(msg.URLs))

	var failed []error
	for _, url := range msg.URLs {
		if err := deleter.Delete(ctx, url); err != nil {
			logCtx.WithError(err).WithField("url", url).Warn("删除媒体对象失败")
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return errors.Join(failed...)
	}
	logCtx.Info("媒体对象清理完成")
	return nil
}

func decideAck(result error, redelivered bool) ackDecision {
	switch {
	case result == nil:
		return ackDone
	case errors.Is(result, errBadMessage), redelivered:
		return ackDrop
	default:
		return ackRetry
	}
}
