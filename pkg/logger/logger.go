package logger

import (
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"
)

// Log 是一个全局的、配置好的 logrus 实例
var Log *logrus.Logger

// InitLogger 初始化全局的Logger实例
// JSON格式便于ELK、Loki等平台做结构化检索
func InitLogger(logFile string) {
	Log = logrus.New()

	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// 同时输出到控制台和文件
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("无法打开日志文件: %v", err)
	}
	mw := io.MultiWriter(os.Stdout, file)
	Log.SetOutput(mw)

	// 开发时可以调成Debug
	Log.SetLevel(logrus.InfoLevel)
}
