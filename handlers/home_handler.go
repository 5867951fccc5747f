package handlers

import (
	"encoding/json"
	"html/template"
	"net/http"

	"juliana.clinic/configs/configslog"
	"juliana.clinic/models"
	"juliana.clinic/pkg/auditoria"
	"juliana.clinic/pkg/flashmessages"
	"juliana.clinic/pkg/queryparams"
	"juliana.clinic/pkg/renderer"
	"juliana.clinic/repositories"
	"juliana.clinic/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HomeHandler renderiza o dashboard executivo.
type HomeHandler struct {
	service services.IAtendimentoService
}

// NewHomeHandler cria o handler do dashboard.
func NewHomeHandler(trilha *auditoria.Trilha) *HomeHandler {
	return &HomeHandler{service: services.NewAtendimentoService(trilha)}
}

// graficoJSON serializa dados de gráfico para consumo no template.
func graficoJSON(dados map[string]int64) template.JS {
	b, err := json.Marshal(dados)
	if err != nil {
		return template.JS("{}")
	}
	return template.JS(b)
}

// HomePage mostra os indicadores, gráficos e os atendimentos mais recentes.
func (h *HomeHandler) HomePage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	renderData := fiber.Map{"Title": "Dashboard"}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	stats, err := h.service.Estatisticas(ctx)
	if err != nil {
		configslog.Log.Error("Dashboard - Estatisticas", zap.Error(err))
		renderData[renderer.FlashErrorKeyView] = "Não foi possível carregar os indicadores."
		stats = &models.Estatisticas{}
	}

	params := queryparams.DefaultListParams("data")
	params.PerPage = 5
	recentes, err := h.service.Listar(ctx, repositories.FiltroAtendimento{}, params)
	if err != nil {
		configslog.Log.Error("Dashboard - Listar recentes", zap.Error(err))
		recentes = queryparams.NewPaginatedResult([]models.Atendimento{}, params, 0)
	}

	renderData["Stats"] = stats
	renderData["Recentes"] = recentes
	renderData["GraficoModalidades"] = graficoJSON(stats.PorModalidade)
	renderData["GraficoStatus"] = graficoJSON(stats.PorStatus)
	renderData["GraficoPorData"] = graficoJSON(stats.PorData)

	return renderer.Render(c, "home/index", "layouts/main_layout", renderData, http.StatusOK)
}
