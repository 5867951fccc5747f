package handlers

import (
	"errors"
	"fmt"
	"net/http"

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

// AtendimentoHandler cuida das páginas de CRUD de atendimentos.
type AtendimentoHandler struct {
	service services.IAtendimentoService
}

// NewAtendimentoHandler cria o handler de atendimentos.
func NewAtendimentoHandler(trilha *auditoria.Trilha) *AtendimentoHandler {
	return &AtendimentoHandler{service: services.NewAtendimentoService(trilha)}
}

// filtroDaQuery monta o filtro de listagem a partir da query string.
// Datas inválidas no filtro são ignoradas em vez de bloquear a página.
func filtroDaQuery(c *fiber.Ctx) repositories.FiltroAtendimento {
	filtro := repositories.FiltroAtendimento{
		Empresa:    seguranca.SanitizeInput(c.Query("empresa"), 200),
		Nome:       seguranca.SanitizeInput(c.Query("nome"), 200),
		Modalidade: c.Query("modalidade"),
	}
	if !models.ModalidadeValida(filtro.Modalidade) {
		filtro.Modalidade = ""
	}
	if v := c.Query("data_inicio"); v != "" {
		if iso, err := seguranca.ValidarData(v); err == nil {
			filtro.DataInicio = iso
		}
	}
	if v := c.Query("data_fim"); v != "" {
		if iso, err := seguranca.ValidarData(v); err == nil {
			filtro.DataFim = iso
		}
	}
	return filtro
}

// ListAtendimentos lista os atendimentos com filtros e paginação.
func (h *AtendimentoHandler) ListAtendimentos(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("data")
	}
	if params.SortBy == "" {
		params.SortBy = "data"
	}
	params.Validate()

	filtro := filtroDaQuery(c)
	resultado, err := h.service.Listar(c.UserContext(), filtro, params)

	renderData := fiber.Map{
		"Title":       "Atendimentos",
		"Result":      resultado,
		"Params":      params,
		"Filtro":      filtro,
		"Modalidades": models.Modalidades,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Ocorreu um erro ao listar os atendimentos."
		renderData["Result"] = queryparams.NewPaginatedResult([]models.Atendimento{}, params, 0)
		configslog.Log.Error("ListAtendimentos", zap.Error(err))
	}
	return renderer.Render(c, "atendimentos/list", "layouts/main_layout", renderData, http.StatusOK)
}

// ShowCreateAtendimento mostra o formulário de cadastro.
func (h *AtendimentoHandler) ShowCreateAtendimento(c *fiber.Ctx) error {
	renderData := fiber.Map{
		"Title":       "Cadastrar Atendimento",
		"Modalidades": models.Modalidades,
		"Status":      models.StatusDisponiveis,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "atendimentos/create", "layouts/main_layout", renderData)
}

// CreateAtendimento cadastra um novo atendimento a partir do formulário.
func (h *AtendimentoHandler) CreateAtendimento(c *fiber.Ctx) error {
	var dados models.Atendimento
	if err := c.BodyParser(&dados); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Dados do formulário inválidos.")
		return c.Redirect("/atendimentos/create", fiber.StatusSeeOther)
	}

	if _, err := h.service.Criar(c.UserContext(), dados); err != nil {
		if !errors.Is(err, services.ErrEntradaInvalida) &&
			!errors.Is(err, services.ErrModalidadeInvalida) &&
			!errors.Is(err, services.ErrStatusInvalido) {
			configslog.Log.Error("CreateAtendimento", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/atendimentos/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Atendimento cadastrado com sucesso.")
	return c.Redirect("/atendimentos", fiber.StatusFound)
}

// ShowUpdateAtendimento mostra o formulário de edição.
func (h *AtendimentoHandler) ShowUpdateAtendimento(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "ID inválido.")
		return c.Redirect("/atendimentos")
	}

	atendimento, err := h.service.BuscarPorID(c.UserContext(), uint(id))
	if err != nil {
		errMsg := "Atendimento não encontrado."
		if !errors.Is(err, services.ErrAtendimentoNaoEncontrado) {
			errMsg = "Erro ao carregar o atendimento."
			configslog.Log.Error("ShowUpdateAtendimento", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/atendimentos")
	}

	renderData := fiber.Map{
		"Title":       "Editar Atendimento",
		"Atendimento": atendimento,
		"DataBR":      seguranca.FormatarDataBR(atendimento.Data),
		"Modalidades": models.Modalidades,
		"Status":      models.StatusDisponiveis,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "atendimentos/update", "layouts/main_layout", renderData)
}

// UpdateAtendimento grava as alterações do formulário de edição.
func (h *AtendimentoHandler) UpdateAtendimento(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "ID inválido.")
		return c.Redirect("/atendimentos")
	}
	redirectOnError := fmt.Sprintf("/atendimentos/update/%d", id)

	var dados models.Atendimento
	if err := c.BodyParser(&dados); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Dados do formulário inválidos.")
		return c.Redirect(redirectOnError, fiber.StatusSeeOther)
	}

	if err := h.service.Atualizar(c.UserContext(), uint(id), dados); err != nil {
		if errors.Is(err, services.ErrAtendimentoNaoEncontrado) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
			return c.Redirect("/atendimentos")
		}
		if errors.Is(err, services.ErrAtendimentoAtualizacao) {
			configslog.Log.Error("UpdateAtendimento", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Erro ao atualizar: "+err.Error())
		return c.Redirect(redirectOnError, fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Atendimento atualizado com sucesso.")
	return c.Redirect("/atendimentos", fiber.StatusFound)
}

// DeleteAtendimento exclui o atendimento. A exclusão repetida informa
// "não encontrado" em vez de falhar.
func (h *AtendimentoHandler) DeleteAtendimento(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "ID inválido.")
		return c.Redirect("/atendimentos", fiber.StatusSeeOther)
	}

	if err := h.service.Excluir(c.UserContext(), uint(id)); err != nil {
		if !errors.Is(err, services.ErrAtendimentoNaoEncontrado) {
			configslog.Log.Error("DeleteAtendimento", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Erro ao excluir: "+err.Error())
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Atendimento excluído com sucesso.")
	}
	return c.Redirect("/atendimentos", fiber.StatusSeeOther)
}
