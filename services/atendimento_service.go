package services

import (
	"context"
	"errors"
	"fmt"

	"juliana.clinic/configs/configslog"
	"juliana.clinic/models"
	"juliana.clinic/pkg/auditoria"
	"juliana.clinic/pkg/queryparams"
	"juliana.clinic/pkg/seguranca"
	"juliana.clinic/repositories"

	"go.uber.org/zap"
)

// AtendimentoServiceError são os erros tipados do serviço.
type AtendimentoServiceError string

func (e AtendimentoServiceError) Error() string { return string(e) }

const (
	ErrAtendimentoNaoEncontrado AtendimentoServiceError = "atendimento não encontrado"
	ErrAtendimentoCriacao       AtendimentoServiceError = "não foi possível cadastrar o atendimento"
	ErrAtendimentoAtualizacao   AtendimentoServiceError = "não foi possível atualizar o atendimento"
	ErrAtendimentoExclusao      AtendimentoServiceError = "não foi possível excluir o atendimento"
	ErrEntradaInvalida          AtendimentoServiceError = "dados de entrada inválidos"
	ErrModalidadeInvalida       AtendimentoServiceError = "modalidade desconhecida"
	ErrStatusInvalido           AtendimentoServiceError = "status desconhecido"
)

// Limites de sanitização dos campos de texto livre.
const (
	maxTextoCurto = 200
	maxTextoLongo = 500
)

// IAtendimentoService orquestra validação, persistência e auditoria.
type IAtendimentoService interface {
	Criar(ctx context.Context, dados models.Atendimento) (*models.Atendimento, error)
	BuscarPorID(ctx context.Context, id uint) (*models.Atendimento, error)
	Listar(ctx context.Context, filtro repositories.FiltroAtendimento, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	Atualizar(ctx context.Context, id uint, dados models.Atendimento) error
	AtualizarCampos(ctx context.Context, id uint, campos map[string]interface{}) error
	Excluir(ctx context.Context, id uint) error
	Estatisticas(ctx context.Context) (*models.Estatisticas, error)
	VerificarConexao(ctx context.Context) bool
	PopularDadosDemo(ctx context.Context) error
}

// AtendimentoService implementa IAtendimentoService.
type AtendimentoService struct {
	repo   repositories.IAtendimentoRepository
	trilha *auditoria.Trilha
}

// NewAtendimentoService cria o serviço com o repositório padrão e a
// trilha de auditoria configurada pela aplicação.
func NewAtendimentoService(trilha *auditoria.Trilha) IAtendimentoService {
	return &AtendimentoService{
		repo:   repositories.NewAtendimentoRepository(),
		trilha: trilha,
	}
}

// NewAtendimentoServiceComDeps cria o serviço com dependências injetadas (testes).
func NewAtendimentoServiceComDeps(repo repositories.IAtendimentoRepository, trilha *auditoria.Trilha) IAtendimentoService {
	return &AtendimentoService{repo: repo, trilha: trilha}
}

// ValidarAtendimento sanitiza e valida os campos de um atendimento,
// devolvendo a cópia normalizada (data em ISO) ou o erro do primeiro campo
// inválido. Nenhuma escrita acontece antes desta validação passar.
func ValidarAtendimento(dados models.Atendimento) (models.Atendimento, error) {
	dados.Empresa = seguranca.SanitizeInput(dados.Empresa, maxTextoCurto)
	dados.Nome = seguranca.SanitizeInput(dados.Nome, maxTextoCurto)
	dados.Observacoes = seguranca.SanitizeInput(dados.Observacoes, maxTextoLongo)

	if dados.Empresa == "" {
		return dados, fmt.Errorf("%w: empresa é obrigatória", ErrEntradaInvalida)
	}
	if dados.Nome == "" {
		return dados, fmt.Errorf("%w: nome do paciente é obrigatório", ErrEntradaInvalida)
	}
	if !models.ModalidadeValida(dados.Modalidade) {
		return dados, fmt.Errorf("%w: %q", ErrModalidadeInvalida, dados.Modalidade)
	}

	dataISO, err := seguranca.ValidarData(dados.Data)
	if err != nil {
		return dados, fmt.Errorf("%w: %v", ErrEntradaInvalida, err)
	}
	dados.Data = dataISO

	if err := seguranca.ValidarHora(dados.Hora); err != nil {
		return dados, fmt.Errorf("%w: %v", ErrEntradaInvalida, err)
	}

	if dados.Status == "" {
		dados.Status = models.StatusPendente
	} else {
		valido := false
		for _, s := range models.StatusDisponiveis {
			if s == dados.Status {
				valido = true
				break
			}
		}
		if !valido {
			return dados, fmt.Errorf("%w: %q", ErrStatusInvalido, dados.Status)
		}
	}

	return dados, nil
}

func (s *AtendimentoService) auditar(acao, detalhes string) {
	if s.trilha != nil {
		s.trilha.Registrar(acao, detalhes)
	}
}

// Criar valida e cadastra um novo atendimento.
func (s *AtendimentoService) Criar(ctx context.Context, dados models.Atendimento) (*models.Atendimento, error) {
	dados, err := ValidarAtendimento(dados)
	if err != nil {
		return nil, err
	}
	dados.ID = 0 // IDs são atribuídos pelo banco, nunca pelo chamador

	if err := s.repo.Create(ctx, &dados); err != nil {
		configslog.Log.Error("AtendimentoService.Criar falhou", zap.Error(err))
		return nil, ErrAtendimentoCriacao
	}

	s.auditar(auditoria.AcaoAdicionarAtendimento,
		fmt.Sprintf("Empresa: %s, Paciente: %s", dados.Empresa, dados.Nome))
	configslog.SLog.Infof("Atendimento cadastrado: ID %d, paciente %s", dados.ID, dados.Nome)
	return &dados, nil
}

// BuscarPorID devolve um atendimento pelo ID.
func (s *AtendimentoService) BuscarPorID(ctx context.Context, id uint) (*models.Atendimento, error) {
	atendimento, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrAtendimentoNaoEncontrado
		}
		return nil, err
	}
	return atendimento, nil
}

// Listar devolve a página filtrada de atendimentos.
func (s *AtendimentoService) Listar(ctx context.Context, filtro repositories.FiltroAtendimento, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	atendimentos, total, err := s.repo.FindAll(ctx, filtro, params)
	if err != nil {
		return nil, err
	}
	return queryparams.NewPaginatedResult(atendimentos, params, total), nil
}

// Atualizar valida e regrava todos os campos editáveis do registro.
// O ID é imutável: o registro alvo é o carregado do banco.
func (s *AtendimentoService) Atualizar(ctx context.Context, id uint, dados models.Atendimento) error {
	existente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAtendimentoNaoEncontrado
		}
		return err
	}

	dados, err = ValidarAtendimento(dados)
	if err != nil {
		return err
	}

	existente.Empresa = dados.Empresa
	existente.Nome = dados.Nome
	existente.Modalidade = dados.Modalidade
	existente.Data = dados.Data
	existente.Hora = dados.Hora
	existente.Status = dados.Status
	existente.Observacoes = dados.Observacoes

	if err := s.repo.Update(ctx, existente); err != nil {
		configslog.Log.Error("AtendimentoService.Atualizar falhou", zap.Uint("id", id), zap.Error(err))
		return ErrAtendimentoAtualizacao
	}

	s.auditar(auditoria.AcaoAtualizarAtendimento, fmt.Sprintf("ID: %d", id))
	return nil
}

// AtualizarCampos aplica uma atualização parcial com sanitização dos
// campos de texto livre, preservando os demais.
func (s *AtendimentoService) AtualizarCampos(ctx context.Context, id uint, campos map[string]interface{}) error {
	if v, ok := campos["empresa"].(string); ok {
		campos["empresa"] = seguranca.SanitizeInput(v, maxTextoCurto)
	}
	if v, ok := campos["nome"].(string); ok {
		campos["nome"] = seguranca.SanitizeInput(v, maxTextoCurto)
	}
	if v, ok := campos["observacoes"].(string); ok {
		campos["observacoes"] = seguranca.SanitizeInput(v, maxTextoLongo)
	}
	if v, ok := campos["modalidade"].(string); ok && !models.ModalidadeValida(v) {
		return fmt.Errorf("%w: %q", ErrModalidadeInvalida, v)
	}
	if v, ok := campos["data"].(string); ok {
		iso, err := seguranca.ValidarData(v)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrEntradaInvalida, err)
		}
		campos["data"] = iso
	}
	if v, ok := campos["hora"].(string); ok {
		if err := seguranca.ValidarHora(v); err != nil {
			return fmt.Errorf("%w: %v", ErrEntradaInvalida, err)
		}
	}

	if err := s.repo.UpdateCampos(ctx, id, campos); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAtendimentoNaoEncontrado
		}
		configslog.Log.Error("AtendimentoService.AtualizarCampos falhou", zap.Uint("id", id), zap.Error(err))
		return ErrAtendimentoAtualizacao
	}

	s.auditar(auditoria.AcaoAtualizarAtendimento, fmt.Sprintf("ID: %d", id))
	return nil
}

// Excluir remove o atendimento. Repetir a exclusão devolve
// ErrAtendimentoNaoEncontrado, sem efeito colateral.
func (s *AtendimentoService) Excluir(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAtendimentoNaoEncontrado
		}
		configslog.Log.Error("AtendimentoService.Excluir falhou", zap.Uint("id", id), zap.Error(err))
		return ErrAtendimentoExclusao
	}
	s.auditar(auditoria.AcaoExcluirAtendimento, fmt.Sprintf("ID: %d", id))
	return nil
}

// Estatisticas devolve os agregados para dashboard e relatórios.
func (s *AtendimentoService) Estatisticas(ctx context.Context) (*models.Estatisticas, error) {
	return s.repo.Estatisticas(ctx)
}

// VerificarConexao testa a saúde da conexão com o banco.
func (s *AtendimentoService) VerificarConexao(ctx context.Context) bool {
	err := s.repo.Ping(ctx)
	resultado := "OK"
	if err != nil {
		resultado = "FALHA"
		configslog.Log.Error("Verificação do banco falhou", zap.Error(err))
	}
	s.auditar(auditoria.AcaoVerificarBanco, "Verificação DB: "+resultado)
	return err == nil
}

// amostrasDemo são os registros de exemplo da página de Configurações.
var amostrasDemo = []models.Atendimento{
	{Empresa: "Alpha Ltda", Nome: "Maria Silva", Modalidade: models.ModalidadeAdmissional, Data: "04/09/2025", Hora: "09:00"},
	{Empresa: "Beta Corp", Nome: "João Souza", Modalidade: models.ModalidadePeriodico, Data: "15/08/2024", Hora: "10:30"},
	{Empresa: "Alpha Ltda", Nome: "Carla Dias", Modalidade: models.ModalidadeDemissional, Data: "21/03/2023", Hora: "14:00"},
	{Empresa: "Gamma SA", Nome: "Pedro Lima", Modalidade: models.ModalidadeRetorno, Data: "10/12/2022", Hora: "11:15"},
}

// PopularDadosDemo insere os registros de exemplo pelo caminho normal de
// validação, um a um.
func (s *AtendimentoService) PopularDadosDemo(ctx context.Context) error {
	for _, amostra := range amostrasDemo {
		dados, err := ValidarAtendimento(amostra)
		if err != nil {
			return err
		}
		if err := s.repo.Create(ctx, &dados); err != nil {
			configslog.Log.Error("Falha ao inserir registro demo",
				zap.String("empresa", dados.Empresa), zap.Error(err))
			return ErrAtendimentoCriacao
		}
	}
	s.auditar(auditoria.AcaoPopularDemo,
		fmt.Sprintf("Inseridos %d registros demo", len(amostrasDemo)))
	return nil
}
