package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"juliana.clinic/configs/configslog"
	"juliana.clinic/pkg/auditoria"
	"juliana.clinic/pkg/flashmessages"
	"juliana.clinic/pkg/renderer"
	"juliana.clinic/pkg/seguranca"
	"juliana.clinic/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DocumentoHandler cuida do upload e download de laudos e avaliações.
type DocumentoHandler struct {
	service services.IDocumentoService
}

// NewDocumentoHandler cria o handler de documentos.
func NewDocumentoHandler(trilha *auditoria.Trilha) *DocumentoHandler {
	return &DocumentoHandler{service: services.NewDocumentoService(trilha)}
}

// DocumentosPage lista os PDFs disponíveis e o formulário de upload.
func (h *DocumentoHandler) DocumentosPage(c *fiber.Ctx) error {
	renderData := fiber.Map{"Title": "Gestão de Documentos"}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	docs, err := h.service.Listar()
	if err != nil {
		configslog.Log.Error("DocumentosPage - Listar", zap.Error(err))
		renderData[renderer.FlashErrorKeyView] = "Não foi possível listar os documentos."
	}

	var totalKB int64
	for _, d := range docs {
		totalKB += d.TamanhoKB
	}
	renderData["Documentos"] = docs
	renderData["TotalKB"] = totalKB
	return renderer.Render(c, "documentos/index", "layouts/main_layout", renderData, http.StatusOK)
}

// UploadDocumento recebe um PDF, valida e grava em uploads/.
// Se o formulário indicar um atendimento e o tipo do documento, o caminho
// gravado é vinculado ao registro.
func (h *DocumentoHandler) UploadDocumento(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Selecione um arquivo PDF.")
		return c.Redirect("/documentos", fiber.StatusSeeOther)
	}
	if fileHeader.Size > seguranca.TamanhoMaximoPDF {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Arquivo excede o limite de 10MB.")
		return c.Redirect("/documentos", fiber.StatusSeeOther)
	}

	file, err := fileHeader.Open()
	if err != nil {
		configslog.Log.Error("UploadDocumento - abrir multipart", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Erro ao ler o arquivo enviado.")
		return c.Redirect("/documentos", fiber.StatusSeeOther)
	}
	defer file.Close()

	conteudo, err := io.ReadAll(file)
	if err != nil {
		configslog.Log.Error("UploadDocumento - ler multipart", zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Erro ao ler o arquivo enviado.")
		return c.Redirect("/documentos", fiber.StatusSeeOther)
	}

	nomeGravado, err := h.service.Salvar(fileHeader.Filename, conteudo)
	if err != nil {
		if !errors.Is(err, services.ErrDocumentoInvalido) {
			configslog.Log.Error("UploadDocumento - salvar", zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, err.Error())
		return c.Redirect("/documentos", fiber.StatusSeeOther)
	}

	// Vínculo opcional com um atendimento.
	if idStr := c.FormValue("atendimento_id"); idStr != "" {
		id, convErr := strconv.Atoi(idStr)
		tipo := c.FormValue("tipo")
		if convErr != nil || id <= 0 {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "PDF gravado, mas o ID do atendimento é inválido.")
			return c.Redirect("/documentos", fiber.StatusSeeOther)
		}
		if err := h.service.AssociarAoAtendimento(c.UserContext(), uint(id), tipo, nomeGravado); err != nil {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "PDF gravado, mas não vinculado: "+err.Error())
			return c.Redirect("/documentos", fiber.StatusSeeOther)
		}
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "PDF salvo com segurança.")
	return c.Redirect("/documentos", fiber.StatusFound)
}

// DownloadDocumento envia o PDF pedido para o navegador.
func (h *DocumentoHandler) DownloadDocumento(c *fiber.Ctx) error {
	nome := c.Params("nome")

	conteudo, err := h.service.Ler(nome)
	if err != nil {
		if errors.Is(err, services.ErrDocumentoNaoEncontrado) {
			_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Documento não encontrado.")
			return c.Redirect("/documentos", fiber.StatusSeeOther)
		}
		configslog.Log.Error("DownloadDocumento", zap.String("nome", nome), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Erro ao acessar o documento.")
		return c.Redirect("/documentos", fiber.StatusSeeOther)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nome+`"`)
	return c.Send(conteudo)
}
