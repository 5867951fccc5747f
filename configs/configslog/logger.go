package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log é o logger estruturado (tipado) da aplicação.
// SLog é a versão "sugared" para mensagens simples.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger inicializa os loggers globais. Em produção usa JSON,
// em desenvolvimento usa o console encoder legível.
func InitLogger() {
	env := os.Getenv("APP_ENV")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Sem logger não há como continuar de forma observável.
		panic("não foi possível inicializar o logger: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger descarrega buffers pendentes. Deve ser chamado via defer no main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
