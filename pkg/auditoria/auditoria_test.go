package auditoria

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func novaTrilhaTeste(t *testing.T) *Trilha {
	t.Helper()
	caminho := filepath.Join(t.TempDir(), "logs", "auditoria.log")
	trilha, err := NovaTrilha(caminho)
	require.NoError(t, err, "a trilha deve abrir criando o diretório")
	t.Cleanup(func() { _ = trilha.Fechar() })
	return trilha
}

func TestRegistrarELerUltimas(t *testing.T) {
	trilha := novaTrilhaTeste(t)

	trilha.Registrar(AcaoAdicionarAtendimento, "Empresa: Alpha, Paciente: Maria")
	trilha.Registrar(AcaoExcluirAtendimento, "ID: 7")

	linhas, err := trilha.LerUltimas(50)
	require.NoError(t, err)
	require.Len(t, linhas, 2)
	assert.Contains(t, linhas[0], AcaoAdicionarAtendimento)
	assert.Contains(t, linhas[0], "Maria")
	assert.Contains(t, linhas[1], AcaoExcluirAtendimento)
}

func TestLerUltimasLimitaLinhas(t *testing.T) {
	trilha := novaTrilhaTeste(t)

	for i := 0; i < 10; i++ {
		trilha.Registrar(AcaoAtualizarAtendimento, "ID: 1")
	}

	linhas, err := trilha.LerUltimas(3)
	require.NoError(t, err)
	assert.Len(t, linhas, 3)
}

func TestLerUltimasSemArquivo(t *testing.T) {
	caminho := filepath.Join(t.TempDir(), "inexistente.log")
	trilha, err := NovaTrilha(caminho)
	require.NoError(t, err)
	t.Cleanup(func() { _ = trilha.Fechar() })

	linhas, err := trilha.LerUltimas(10)
	require.NoError(t, err)
	assert.Empty(t, linhas)
}

func TestLimpar(t *testing.T) {
	trilha := novaTrilhaTeste(t)

	trilha.Registrar(AcaoVerificarBanco, "Verificação DB: OK")
	require.NoError(t, trilha.Limpar())

	linhas, err := trilha.LerUltimas(10)
	require.NoError(t, err)
	assert.Empty(t, linhas)
}

func TestRegistrarComTrilhaNula(t *testing.T) {
	// Auditoria é best-effort: trilha nula não pode causar panic.
	var trilha *Trilha
	assert.NotPanics(t, func() {
		trilha.Registrar(AcaoDownloadPDF, "Arquivo: x.pdf")
	})
}
