package repositories

import (
	"context"
	"errors"
	"strings"

	"juliana.clinic/configs"
	"juliana.clinic/configs/configslog"
	"juliana.clinic/models"
	"juliana.clinic/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotFound indica que o registro pedido não existe (ou já foi removido).
var ErrNotFound = errors.New("registro não encontrado")

// FiltroAtendimento reúne os predicados opcionais de listagem.
// Campos vazios não filtram; os preenchidos combinam entre si (AND).
type FiltroAtendimento struct {
	DataInicio string // ISO YYYY-MM-DD, inclusivo
	DataFim    string // ISO YYYY-MM-DD, inclusivo
	Empresa    string // busca parcial, sem diferenciar maiúsculas
	Modalidade string // valor exato
	Nome       string // nome do paciente, busca parcial
}

// colunasPermitidas limita o UPDATE parcial às colunas do esquema.
var colunasPermitidas = map[string]bool{
	"empresa":       true,
	"nome":          true,
	"modalidade":    true,
	"data":          true,
	"hora":          true,
	"laudo_pdf":     true,
	"avaliacao_pdf": true,
	"status":        true,
	"observacoes":   true,
}

// IAtendimentoRepository é a interface de acesso à tabela atendimentos.
type IAtendimentoRepository interface {
	Create(ctx context.Context, atendimento *models.Atendimento) error
	FindByID(ctx context.Context, id uint) (*models.Atendimento, error)
	FindAll(ctx context.Context, filtro FiltroAtendimento, params queryparams.ListParams) ([]models.Atendimento, int64, error)
	Update(ctx context.Context, atendimento *models.Atendimento) error
	UpdateCampos(ctx context.Context, id uint, campos map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	Estatisticas(ctx context.Context) (*models.Estatisticas, error)
	Ping(ctx context.Context) error
}

// AtendimentoRepository implementa IAtendimentoRepository sobre GORM.
type AtendimentoRepository struct {
	db *gorm.DB
}

// NewAtendimentoRepository cria o repositório usando o handle compartilhado.
func NewAtendimentoRepository() IAtendimentoRepository {
	return &AtendimentoRepository{db: configs.GetDB()}
}

// NewAtendimentoRepositoryComDB cria o repositório com um handle injetado
// (testes e transações).
func NewAtendimentoRepositoryComDB(db *gorm.DB) IAtendimentoRepository {
	return &AtendimentoRepository{db: db}
}

func (r *AtendimentoRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create insere um novo atendimento.
func (r *AtendimentoRepository) Create(ctx context.Context, atendimento *models.Atendimento) error {
	if atendimento == nil {
		return errors.New("atendimento nulo não pode ser criado")
	}
	if atendimento.Status == "" {
		atendimento.Status = models.StatusPendente
	}
	if err := r.getDB(ctx).Create(atendimento).Error; err != nil {
		configslog.Log.Error("AtendimentoRepository.Create: erro de banco", zap.Error(err))
		return err
	}
	return nil
}

// FindByID busca um atendimento pelo ID.
func (r *AtendimentoRepository) FindByID(ctx context.Context, id uint) (*models.Atendimento, error) {
	if id == 0 {
		return nil, errors.New("ID de atendimento inválido")
	}
	var atendimento models.Atendimento
	err := r.getDB(ctx).First(&atendimento, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("AtendimentoRepository.FindByID: erro de banco", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &atendimento, nil
}

// aplicaFiltro monta a cláusula WHERE a partir dos predicados preenchidos.
func aplicaFiltro(query *gorm.DB, filtro FiltroAtendimento) *gorm.DB {
	if filtro.DataInicio != "" {
		query = query.Where("data >= ?", filtro.DataInicio)
	}
	if filtro.DataFim != "" {
		query = query.Where("data <= ?", filtro.DataFim)
	}
	if filtro.Empresa != "" {
		query = query.Where("LOWER(empresa) LIKE ?", "%"+strings.ToLower(filtro.Empresa)+"%")
	}
	if filtro.Modalidade != "" {
		query = query.Where("modalidade = ?", filtro.Modalidade)
	}
	if filtro.Nome != "" {
		query = query.Where("LOWER(nome) LIKE ?", "%"+strings.ToLower(filtro.Nome)+"%")
	}
	return query
}

// FindAll lista atendimentos com filtros e paginação.
// A ordenação padrão é temporal: data e hora mais recentes primeiro.
func (r *AtendimentoRepository) FindAll(ctx context.Context, filtro FiltroAtendimento, params queryparams.ListParams) ([]models.Atendimento, int64, error) {
	var atendimentos []models.Atendimento
	var total int64

	query := aplicaFiltro(r.getDB(ctx).Model(&models.Atendimento{}), filtro)

	if err := query.Count(&total).Error; err != nil {
		configslog.Log.Error("AtendimentoRepository.FindAll: erro ao contar", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return atendimentos, 0, nil
	}

	allowedSortColumns := map[string]string{
		"id":         "id",
		"empresa":    "empresa",
		"nome":       "nome",
		"modalidade": "modalidade",
		"data":       "data",
		"status":     "status",
		"created_at": "data_criacao",
	}
	if col, ok := allowedSortColumns[params.SortBy]; ok && params.SortBy != "data" {
		query = query.Order(col + " " + params.OrderBy)
	} else {
		// Ordenação temporal composta: data, hora e ID como desempate estável.
		query = query.Order("data " + params.OrderBy).
			Order("hora " + params.OrderBy).
			Order("id " + params.OrderBy)
	}

	query = query.Limit(params.PerPage).Offset(params.CalculateOffset())
	if err := query.Find(&atendimentos).Error; err != nil {
		configslog.Log.Error("AtendimentoRepository.FindAll: erro ao listar", zap.Error(err))
		return nil, total, err
	}
	return atendimentos, total, nil
}

// Update salva o registro inteiro.
func (r *AtendimentoRepository) Update(ctx context.Context, atendimento *models.Atendimento) error {
	if atendimento == nil || atendimento.ID == 0 {
		return errors.New("atendimento inválido para atualização")
	}
	return r.getDB(ctx).Save(atendimento).Error
}

// UpdateCampos atualiza apenas as colunas permitidas do registro.
// Colunas fora do esquema são descartadas silenciosamente.
func (r *AtendimentoRepository) UpdateCampos(ctx context.Context, id uint, campos map[string]interface{}) error {
	if id == 0 {
		return errors.New("ID de atendimento inválido")
	}
	filtrados := make(map[string]interface{}, len(campos))
	for k, v := range campos {
		if colunasPermitidas[k] {
			filtrados[k] = v
		}
	}
	if len(filtrados) == 0 {
		return errors.New("nenhuma coluna válida para atualizar")
	}

	result := r.getDB(ctx).Model(&models.Atendimento{}).Where("id = ?", id).Updates(filtrados)
	if result.Error != nil {
		configslog.Log.Error("AtendimentoRepository.UpdateCampos: erro de banco", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete remove o registro de forma definitiva.
// Uma segunda exclusão do mesmo ID devolve ErrNotFound, sem falhar o processo.
func (r *AtendimentoRepository) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("ID de atendimento inválido")
	}
	result := r.getDB(ctx).Delete(&models.Atendimento{}, id)
	if result.Error != nil {
		configslog.Log.Error("AtendimentoRepository.Delete: erro de banco", zap.Uint("id", id), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count devolve o total de atendimentos cadastrados.
func (r *AtendimentoRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.getDB(ctx).Model(&models.Atendimento{}).Count(&total).Error
	return total, err
}

// Estatisticas calcula os agregados do dashboard em consultas simples.
func (r *AtendimentoRepository) Estatisticas(ctx context.Context) (*models.Estatisticas, error) {
	db := r.getDB(ctx)
	stats := &models.Estatisticas{
		PorModalidade: map[string]int64{},
		PorStatus:     map[string]int64{},
		PorData:       map[string]int64{},
	}

	modelo := func() *gorm.DB { return db.Model(&models.Atendimento{}) }

	if err := modelo().Count(&stats.TotalAtendimentos).Error; err != nil {
		return nil, err
	}
	if err := modelo().Distinct("empresa").Count(&stats.TotalEmpresas).Error; err != nil {
		return nil, err
	}
	if err := modelo().Where("laudo_pdf IS NOT NULL").Count(&stats.LaudosEnviados).Error; err != nil {
		return nil, err
	}
	if err := modelo().Where("avaliacao_pdf IS NOT NULL").Count(&stats.AvaliacoesEnviadas).Error; err != nil {
		return nil, err
	}

	type par struct {
		Chave string
		Total int64
	}

	var porModalidade []par
	if err := modelo().Select("modalidade AS chave, COUNT(*) AS total").
		Group("modalidade").Order("total DESC").Scan(&porModalidade).Error; err != nil {
		return nil, err
	}
	for _, p := range porModalidade {
		stats.PorModalidade[p.Chave] = p.Total
	}

	var porStatus []par
	if err := modelo().Select("status AS chave, COUNT(*) AS total").
		Group("status").Order("total DESC").Scan(&porStatus).Error; err != nil {
		return nil, err
	}
	for _, p := range porStatus {
		stats.PorStatus[p.Chave] = p.Total
	}

	var porData []par
	if err := modelo().Select("data AS chave, COUNT(*) AS total").
		Group("data").Order("data ASC").Scan(&porData).Error; err != nil {
		return nil, err
	}
	for _, p := range porData {
		stats.PorData[p.Chave] = p.Total
	}

	return stats, nil
}

// Ping confirma que a conexão com o banco responde.
func (r *AtendimentoRepository) Ping(ctx context.Context) error {
	return r.getDB(ctx).Exec("SELECT 1").Error
}
