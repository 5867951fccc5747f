package main

import (
	"os"
	"os/signal"
	"syscall"

	"juliana.clinic/configs"
	"juliana.clinic/configs/configslog"
	"juliana.clinic/database"
	"juliana.clinic/pkg/auditoria"
	"juliana.clinic/pkg/seguranca"
	"juliana.clinic/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.LoadConfig()

	configs.InitDB()
	defer configs.CloseDB()

	// O esquema é idempotente: inicializar a cada subida é seguro.
	if err := database.Initialize(configs.GetDB(), true, false); err != nil {
		configslog.Log.Fatal("Falha na inicialização do esquema", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		configslog.Log.Fatal("Falha ao criar diretório de uploads", zap.Error(err))
	}

	trilha, err := auditoria.NovaTrilha(cfg.AuditLogPath())
	if err != nil {
		configslog.Log.Fatal("Falha ao abrir a trilha de auditoria", zap.Error(err))
	}
	defer trilha.Fechar()

	engine := html.New("./views", ".html")
	engine.AddFunc("dataBR", seguranca.FormatarDataBR)
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 12 * 1024 * 1024, // acima do limite de PDF para a validação responder
		AppName:   "JULIANA - Gestão Clínica",
	})

	routes.SetupRoutes(app, trilha)

	// Desligamento controlado: fecha o listener e deixa os defers
	// encerrarem banco e trilha.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint
		configslog.SLog.Info("Sinal de desligamento recebido, encerrando...")
		_ = app.Shutdown()
	}()

	configslog.SLog.Infof("Servidor iniciado em http://%s", cfg.Addr())
	if err := app.Listen(cfg.Addr()); err != nil {
		configslog.Log.Fatal("Servidor encerrou com erro", zap.Error(err))
	}
}
