package logger

import (
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"
)

// Log 是一个全局的、配置好的 logrus 实例
// 在InitLogger之前就给一个默认实例，测试和工具命令里直接用也不会空指针
var Log = logrus.New()

// InitLogger 初始化全局的Logger实例：1、JSON格式 2、输出到控制台，配置了文件就同时写文件 3、设置日志级别
func InitLogger(level, file string) {
	Log = logrus.New()

	// 结构化日志，方便ELK、Loki等工具分析
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var out io.Writer = os.Stdout
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("无法打开日志文件: %v", err)
		}
		// 日志同时打印在控制台和文件里
		out = io.MultiWriter(os.Stdout, f)
	}
	Log.SetOutput(out)

	// 解析失败就退回Info，开发时可以配成debug
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}
