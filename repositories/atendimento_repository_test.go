package repositories

import (
	"context"
	"testing"

	"juliana.clinic/configs/configslog"
	"juliana.clinic/models"
	"juliana.clinic/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRepo abre um SQLite em memória já migrado.
func setupTestRepo(t *testing.T) IAtendimentoRepository {
	t.Helper()
	configslog.InitLogger()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "falha ao abrir o banco de teste")
	require.NoError(t, db.AutoMigrate(&models.Atendimento{}), "falha ao migrar o banco de teste")

	return NewAtendimentoRepositoryComDB(db)
}

func novoAtendimento(empresa, nome, modalidade, data, hora string) *models.Atendimento {
	return &models.Atendimento{
		Empresa:    empresa,
		Nome:       nome,
		Modalidade: modalidade,
		Data:       data,
		Hora:       hora,
	}
}

func listarTudo(t *testing.T, repo IAtendimentoRepository, filtro FiltroAtendimento) []models.Atendimento {
	t.Helper()
	params := queryparams.DefaultListParams("data")
	params.Validate()
	atendimentos, _, err := repo.FindAll(context.Background(), filtro, params)
	require.NoError(t, err)
	return atendimentos
}

func TestCreateEFindByID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	atendimento := novoAtendimento("Alpha Ltda", "Maria Silva", models.ModalidadeAdmissional, "2025-09-04", "09:00")
	require.NoError(t, repo.Create(ctx, atendimento))
	require.NotZero(t, atendimento.ID, "o ID deve ser atribuído pelo banco")
	assert.Equal(t, models.StatusPendente, atendimento.Status, "status padrão deve ser Pendente")

	lido, err := repo.FindByID(ctx, atendimento.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", lido.Nome)
	assert.Equal(t, "2025-09-04", lido.Data)
	assert.False(t, lido.DataCriacao.IsZero(), "data de criação deve ser preenchida")
}

func TestCreateDepoisListarContemRegistro(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	antes := listarTudo(t, repo, FiltroAtendimento{})
	require.NoError(t, repo.Create(ctx, novoAtendimento("Beta Corp", "João Souza", models.ModalidadePeriodico, "2024-08-15", "10:30")))
	depois := listarTudo(t, repo, FiltroAtendimento{})

	require.Len(t, depois, len(antes)+1, "inserir deve acrescentar exatamente um registro")
	assert.Equal(t, "João Souza", depois[0].Nome)
}

func TestFindByIDInexistente(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindAllOrdenacaoTemporal(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	// Inseridos fora de ordem de propósito
	require.NoError(t, repo.Create(ctx, novoAtendimento("A", "Antigo", models.ModalidadeRetorno, "2022-12-10", "11:15")))
	require.NoError(t, repo.Create(ctx, novoAtendimento("B", "Recente", models.ModalidadeAdmissional, "2025-09-04", "09:00")))
	require.NoError(t, repo.Create(ctx, novoAtendimento("C", "MesmoDiaTarde", models.ModalidadePeriodico, "2025-09-04", "15:00")))

	lista := listarTudo(t, repo, FiltroAtendimento{})
	require.Len(t, lista, 3)
	assert.Equal(t, "MesmoDiaTarde", lista[0].Nome, "mesmo dia: hora mais tarde vem primeiro")
	assert.Equal(t, "Recente", lista[1].Nome)
	assert.Equal(t, "Antigo", lista[2].Nome)
}

func TestFindAllFiltros(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	fixtures := []*models.Atendimento{
		novoAtendimento("Alpha Ltda", "Maria Silva", models.ModalidadeAdmissional, "2025-09-04", "09:00"),
		novoAtendimento("Beta Corp", "João Souza", models.ModalidadePeriodico, "2024-08-15", "10:30"),
		novoAtendimento("Alpha Ltda", "Carla Dias", models.ModalidadeDemissional, "2023-03-21", "14:00"),
		novoAtendimento("Gamma SA", "Pedro Lima", models.ModalidadeRetorno, "2022-12-10", "11:15"),
	}
	for _, f := range fixtures {
		require.NoError(t, repo.Create(ctx, f))
	}

	t.Run("intervalo de datas", func(t *testing.T) {
		lista := listarTudo(t, repo, FiltroAtendimento{DataInicio: "2023-01-01", DataFim: "2024-12-31"})
		require.Len(t, lista, 2)
		assert.Equal(t, "João Souza", lista[0].Nome)
		assert.Equal(t, "Carla Dias", lista[1].Nome)
	})

	t.Run("empresa sem diferenciar maiúsculas", func(t *testing.T) {
		lista := listarTudo(t, repo, FiltroAtendimento{Empresa: "alpha"})
		assert.Len(t, lista, 2)
	})

	t.Run("modalidade exata", func(t *testing.T) {
		lista := listarTudo(t, repo, FiltroAtendimento{Modalidade: models.ModalidadeRetorno})
		require.Len(t, lista, 1)
		assert.Equal(t, "Pedro Lima", lista[0].Nome)
	})

	t.Run("nome do paciente", func(t *testing.T) {
		lista := listarTudo(t, repo, FiltroAtendimento{Nome: "carla"})
		require.Len(t, lista, 1)
		assert.Equal(t, "Carla Dias", lista[0].Nome)
	})

	t.Run("filtros combinados", func(t *testing.T) {
		lista := listarTudo(t, repo, FiltroAtendimento{
			Empresa:    "Alpha",
			DataInicio: "2025-01-01",
			DataFim:    "2025-12-31",
		})
		require.Len(t, lista, 1)
		assert.Equal(t, "Maria Silva", lista[0].Nome)
	})

	t.Run("combinação sem resultado", func(t *testing.T) {
		lista := listarTudo(t, repo, FiltroAtendimento{
			Empresa:    "Gamma",
			Modalidade: models.ModalidadeAdmissional,
		})
		assert.Empty(t, lista)
	})
}

func TestFindAllPaginacao(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, novoAtendimento("Empresa", "Paciente", models.ModalidadePeriodico, "2025-01-15", "08:00")))
	}

	params := queryparams.ListParams{Page: 2, PerPage: 2, SortBy: "data", OrderBy: "desc"}
	params.Validate()
	lista, total, err := repo.FindAll(ctx, FiltroAtendimento{}, params)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, lista, 2)
}

func TestUpdateCamposPreservaOsDemais(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	atendimento := novoAtendimento("Alpha Ltda", "Maria Silva", models.ModalidadeAdmissional, "2025-09-04", "09:00")
	require.NoError(t, repo.Create(ctx, atendimento))

	err := repo.UpdateCampos(ctx, atendimento.ID, map[string]interface{}{"status": models.StatusConcluido})
	require.NoError(t, err)

	lido, err := repo.FindByID(ctx, atendimento.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConcluido, lido.Status)
	assert.Equal(t, "Maria Silva", lido.Nome, "os demais campos devem permanecer")
	assert.Equal(t, "2025-09-04", lido.Data)
	assert.Equal(t, "09:00", lido.Hora)
}

func TestUpdateCamposDescartaColunasDesconhecidas(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	atendimento := novoAtendimento("Alpha", "Maria", models.ModalidadeAdmissional, "2025-09-04", "09:00")
	require.NoError(t, repo.Create(ctx, atendimento))

	// Só colunas desconhecidas: nada válido a atualizar
	err := repo.UpdateCampos(ctx, atendimento.ID, map[string]interface{}{"id": 42, "tabela": "x"})
	assert.Error(t, err)

	lido, err := repo.FindByID(ctx, atendimento.ID)
	require.NoError(t, err)
	assert.Equal(t, atendimento.ID, lido.ID, "o ID é imutável")
}

func TestDeleteIdempotente(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	atendimento := novoAtendimento("Alpha", "Maria", models.ModalidadeAdmissional, "2025-09-04", "09:00")
	require.NoError(t, repo.Create(ctx, atendimento))

	require.NoError(t, repo.Delete(ctx, atendimento.ID))

	_, err := repo.FindByID(ctx, atendimento.ID)
	assert.ErrorIs(t, err, ErrNotFound, "o registro não deve aparecer após a exclusão")

	// Segunda exclusão: não encontrado, não pânico
	err = repo.Delete(ctx, atendimento.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEstatisticas(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	laudo := "uploads/laudo.pdf"
	a1 := novoAtendimento("Alpha Ltda", "Maria", models.ModalidadeAdmissional, "2025-09-04", "09:00")
	a1.LaudoPDF = &laudo
	a2 := novoAtendimento("Alpha Ltda", "Carla", models.ModalidadeAdmissional, "2025-09-04", "10:00")
	a3 := novoAtendimento("Beta Corp", "João", models.ModalidadePeriodico, "2024-08-15", "10:30")

	for _, a := range []*models.Atendimento{a1, a2, a3} {
		require.NoError(t, repo.Create(ctx, a))
	}

	stats, err := repo.Estatisticas(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalAtendimentos)
	assert.Equal(t, int64(2), stats.TotalEmpresas)
	assert.Equal(t, int64(1), stats.LaudosEnviados)
	assert.Equal(t, int64(0), stats.AvaliacoesEnviadas)
	assert.Equal(t, int64(2), stats.PorModalidade[models.ModalidadeAdmissional])
	assert.Equal(t, int64(1), stats.PorModalidade[models.ModalidadePeriodico])
	assert.Equal(t, int64(3), stats.PorStatus[models.StatusPendente])
	assert.Equal(t, int64(2), stats.PorData["2025-09-04"])
}

func TestPing(t *testing.T) {
	repo := setupTestRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
