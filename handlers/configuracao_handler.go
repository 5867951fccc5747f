package handlers

import (
	"net/http"

	"juliana.clinic/configs/configslog"
	"juliana.clinic/pkg/auditoria"
	"juliana.clinic/pkg/flashmessages"
	"juliana.clinic/pkg/renderer"
	"juliana.clinic/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// linhasLogExibidas limita a leitura da trilha na página de Configurações.
const linhasLogExibidas = 50

// ConfiguracaoHandler cuida da página de Configurações: logs de
// auditoria, verificação do banco e dados de exemplo.
type ConfiguracaoHandler struct {
	service services.IAtendimentoService
	trilha  *auditoria.Trilha
}

// NewConfiguracaoHandler cria o handler de configurações.
func NewConfiguracaoHandler(trilha *auditoria.Trilha) *ConfiguracaoHandler {
	return &ConfiguracaoHandler{
		service: services.NewAtendimentoService(trilha),
		trilha:  trilha,
	}
}

// ConfiguracoesPage mostra as últimas entradas da trilha de auditoria
// e as ações de manutenção.
func (h *ConfiguracaoHandler) ConfiguracoesPage(c *fiber.Ctx) error {
	renderData := fiber.Map{"Title": "Configurações"}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	linhas, err := h.trilha.LerUltimas(linhasLogExibidas)
	if err != nil {
		configslog.Log.Error("ConfiguracoesPage - ler trilha", zap.Error(err))
		renderData[renderer.FlashErrorKeyView] = "Não foi possível ler os logs de auditoria."
	}
	renderData["Logs"] = linhas

	return renderer.Render(c, "configuracoes/index", "layouts/main_layout", renderData, http.StatusOK)
}

// LimparLogs trunca a trilha de auditoria.
func (h *ConfiguracaoHandler) LimparLogs(c *fiber.Ctx) error {
	if err := h.trilha.Limpar(); err != nil {
		configslog.Log.Error("LimparLogs", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Erro ao limpar os logs.")
		return c.Redirect("/configuracoes", fiber.StatusSeeOther)
	}
	h.trilha.Registrar(auditoria.AcaoLimparLogs, "Logs de auditoria limpos")
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Logs limpos.")
	return c.Redirect("/configuracoes", fiber.StatusSeeOther)
}

// VerificarBanco testa a conexão com o banco e informa o resultado.
func (h *ConfiguracaoHandler) VerificarBanco(c *fiber.Ctx) error {
	if h.service.VerificarConexao(c.UserContext()) {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Conexão OK.")
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Falha na conexão com o banco.")
	}
	return c.Redirect("/configuracoes", fiber.StatusSeeOther)
}

// PopularDemo insere os registros de exemplo.
func (h *ConfiguracaoHandler) PopularDemo(c *fiber.Ctx) error {
	if err := h.service.PopularDadosDemo(c.UserContext()); err != nil {
		configslog.Log.Error("PopularDemo", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Falha ao inserir dados de exemplo.")
		return c.Redirect("/configuracoes", fiber.StatusSeeOther)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Dados de exemplo inseridos.")
	return c.Redirect("/configuracoes", fiber.StatusSeeOther)
}
