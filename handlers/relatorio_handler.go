package handlers

import (
	"net/http"
	"time"

	"juliana.clinic/configs/configslog"
	"juliana.clinic/models"
	"juliana.clinic/pkg/auditoria"
	"juliana.clinic/pkg/flashmessages"
	"juliana.clinic/pkg/queryparams"
	"juliana.clinic/pkg/renderer"
	"juliana.clinic/pkg/seguranca"
	"juliana.clinic/repositories"
	"juliana.clinic/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RelatorioHandler renderiza a página de relatórios e analytics.
type RelatorioHandler struct {
	service services.IAtendimentoService
}

// NewRelatorioHandler cria o handler de relatórios.
func NewRelatorioHandler(trilha *auditoria.Trilha) *RelatorioHandler {
	return &RelatorioHandler{service: services.NewAtendimentoService(trilha)}
}

// RelatoriosPage mostra os KPIs e o gráfico de modalidades do período.
// O período padrão são os últimos 30 dias.
func (h *RelatorioHandler) RelatoriosPage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	hoje := time.Now()
	inicio := hoje.AddDate(0, 0, -30).Format("2006-01-02")
	fim := hoje.Format("2006-01-02")

	if v := c.Query("data_inicio"); v != "" {
		if iso, err := seguranca.ValidarData(v); err == nil {
			inicio = iso
		}
	}
	if v := c.Query("data_fim"); v != "" {
		if iso, err := seguranca.ValidarData(v); err == nil {
			fim = iso
		}
	}

	renderData := fiber.Map{
		"Title":    "Relatórios",
		"InicioBR": seguranca.FormatarDataBR(inicio),
		"FimBR":    seguranca.FormatarDataBR(fim),
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if inicio > fim {
		renderData[renderer.FlashErrorKeyView] = "Data inicial deve ser anterior à final."
		renderData["Stats"] = &models.Estatisticas{}
		return renderer.Render(c, "relatorios/index", "layouts/main_layout", renderData, http.StatusOK)
	}

	stats, err := h.service.Estatisticas(ctx)
	if err != nil {
		configslog.Log.Error("RelatoriosPage - Estatisticas", zap.Error(err))
		renderData[renderer.FlashErrorKeyView] = "Não foi possível calcular os indicadores."
		stats = &models.Estatisticas{}
	}

	// Lista do período para a tabela analítica.
	params := queryparams.DefaultListParams("data")
	params.PerPage = queryparams.MaxPerPage
	periodo, err := h.service.Listar(ctx, repositories.FiltroAtendimento{
		DataInicio: inicio,
		DataFim:    fim,
	}, params)
	if err != nil {
		configslog.Log.Error("RelatoriosPage - Listar período", zap.Error(err))
		periodo = queryparams.NewPaginatedResult([]models.Atendimento{}, params, 0)
	}

	renderData["Stats"] = stats
	renderData["Periodo"] = periodo
	renderData["GraficoModalidades"] = graficoJSON(stats.PorModalidade)
	return renderer.Render(c, "relatorios/index", "layouts/main_layout", renderData, http.StatusOK)
}
