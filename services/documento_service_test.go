package services

import (
	"bytes"
	"context"
	"testing"

	"juliana.clinic/configs/configslog"
	"juliana.clinic/models"
	"juliana.clinic/pkg/seguranca"
	"juliana.clinic/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func pdfValido() []byte {
	return []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF")
}

func setupDocumentos(t *testing.T) (IDocumentoService, repositories.IAtendimentoRepository) {
	t.Helper()
	configslog.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Atendimento{}))

	repo := repositories.NewAtendimentoRepositoryComDB(db)
	return NewDocumentoServiceComDeps(t.TempDir(), repo, nil), repo
}

func TestSalvarListarLer(t *testing.T) {
	svc, _ := setupDocumentos(t)
	conteudo := pdfValido()

	nome, err := svc.Salvar("laudo maria.pdf", conteudo)
	require.NoError(t, err)
	assert.True(t, len(nome) > len("laudo_maria.pdf"), "nome gravado carrega prefixo")

	docs, err := svc.Listar()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, nome, docs[0].Nome)

	lido, err := svc.Ler(nome)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(conteudo, lido))
}

func TestSalvarRejeitaNaoPDF(t *testing.T) {
	svc, _ := setupDocumentos(t)

	_, err := svc.Salvar("nota.pdf", []byte("isto nao e um pdf"))
	require.ErrorIs(t, err, ErrDocumentoInvalido)

	docs, err := svc.Listar()
	require.NoError(t, err)
	assert.Empty(t, docs, "arquivo rejeitado não é gravado")
}

func TestSalvarRejeitaPDFComScript(t *testing.T) {
	svc, _ := setupDocumentos(t)

	conteudo := []byte("%PDF-1.4\n<< /OpenAction << /JS (app.alert(1)) >> >>")
	_, err := svc.Salvar("malicioso.pdf", conteudo)
	assert.ErrorIs(t, err, ErrDocumentoInvalido)
}

func TestSalvarRejeitaAcimaDoLimite(t *testing.T) {
	svc, _ := setupDocumentos(t)

	grande := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("a"), seguranca.TamanhoMaximoPDF)...)
	_, err := svc.Salvar("grande.pdf", grande)
	assert.ErrorIs(t, err, ErrDocumentoInvalido)
}

func TestLerImpedeTraversal(t *testing.T) {
	svc, _ := setupDocumentos(t)

	_, err := svc.Ler("../../etc/passwd")
	assert.ErrorIs(t, err, ErrDocumentoNaoEncontrado)

	_, err = svc.Ler("inexistente.pdf")
	assert.ErrorIs(t, err, ErrDocumentoNaoEncontrado)
}

func TestAssociarAoAtendimento(t *testing.T) {
	svc, repo := setupDocumentos(t)
	ctx := context.Background()

	atendimento := models.Atendimento{
		Empresa:    "Alpha Ltda",
		Nome:       "Maria Silva",
		Modalidade: models.ModalidadeAdmissional,
		Data:       "2025-09-04",
		Hora:       "09:00",
		Status:     models.StatusPendente,
	}
	require.NoError(t, repo.Create(ctx, &atendimento))

	nome, err := svc.Salvar("laudo.pdf", pdfValido())
	require.NoError(t, err)

	require.NoError(t, svc.AssociarAoAtendimento(ctx, atendimento.ID, TipoLaudo, nome))

	lido, err := repo.FindByID(ctx, atendimento.ID)
	require.NoError(t, err)
	require.NotNil(t, lido.LaudoPDF)
	assert.Contains(t, *lido.LaudoPDF, nome, "o caminho gravado aponta para o arquivo salvo")
	assert.Nil(t, lido.AvaliacaoPDF)
}

func TestAssociarTipoDesconhecido(t *testing.T) {
	svc, _ := setupDocumentos(t)

	err := svc.AssociarAoAtendimento(context.Background(), 1, "exame", "x.pdf")
	assert.ErrorIs(t, err, ErrTipoDocumentoInvalido)
}

func TestAssociarAtendimentoInexistente(t *testing.T) {
	svc, _ := setupDocumentos(t)

	err := svc.AssociarAoAtendimento(context.Background(), 999, TipoLaudo, "x.pdf")
	assert.ErrorIs(t, err, ErrAtendimentoNaoEncontrado)
}
