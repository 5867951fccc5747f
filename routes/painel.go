package routes

import (
	"juliana.clinic/handlers"
	"juliana.clinic/pkg/auditoria"

	"github.com/gofiber/fiber/v2"
)

// registerPainelRoutes define as páginas do painel de gestão clínica.
func registerPainelRoutes(app *fiber.App, trilha *auditoria.Trilha) {
	homeHandler := handlers.NewHomeHandler(trilha)
	atendimentoHandler := handlers.NewAtendimentoHandler(trilha)
	relatorioHandler := handlers.NewRelatorioHandler(trilha)
	documentoHandler := handlers.NewDocumentoHandler(trilha)
	configuracaoHandler := handlers.NewConfiguracaoHandler(trilha)

	// --- Dashboard ---
	app.Get("/", homeHandler.HomePage)

	// --- Atendimentos ---
	app.Get("/atendimentos", atendimentoHandler.ListAtendimentos)
	app.Get("/atendimentos/create", atendimentoHandler.ShowCreateAtendimento)
	app.Post("/atendimentos/create", atendimentoHandler.CreateAtendimento)
	app.Get("/atendimentos/update/:id", atendimentoHandler.ShowUpdateAtendimento)
	app.Post("/atendimentos/update/:id", atendimentoHandler.UpdateAtendimento)
	app.Post("/atendimentos/delete/:id", atendimentoHandler.DeleteAtendimento)   // formulário
	app.Delete("/atendimentos/delete/:id", atendimentoHandler.DeleteAtendimento) // JS/API

	// --- Relatórios ---
	app.Get("/relatorios", relatorioHandler.RelatoriosPage)

	// --- Documentos (laudos e avaliações) ---
	app.Get("/documentos", documentoHandler.DocumentosPage)
	app.Post("/documentos/upload", documentoHandler.UploadDocumento)
	app.Get("/documentos/download/:nome", documentoHandler.DownloadDocumento)

	// --- Configurações ---
	app.Get("/configuracoes", configuracaoHandler.ConfiguracoesPage)
	app.Post("/configuracoes/limpar-logs", configuracaoHandler.LimparLogs)
	app.Post("/configuracoes/verificar-banco", configuracaoHandler.VerificarBanco)
	app.Post("/configuracoes/popular-demo", configuracaoHandler.PopularDemo)
}
