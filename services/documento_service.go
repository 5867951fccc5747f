package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"juliana.clinic/configs"
	"juliana.clinic/configs/configslog"
	"juliana.clinic/pkg/auditoria"
	"juliana.clinic/pkg/seguranca"
	"juliana.clinic/repositories"

	"go.uber.org/zap"
)

// DocumentoServiceError são os erros tipados do serviço de documentos.
type DocumentoServiceError string

func (e DocumentoServiceError) Error() string { return string(e) }

const (
	ErrDocumentoInvalido      DocumentoServiceError = "documento inválido"
	ErrDocumentoNaoEncontrado DocumentoServiceError = "documento não encontrado"
	ErrDocumentoGravacao      DocumentoServiceError = "não foi possível gravar o documento"
	ErrTipoDocumentoInvalido  DocumentoServiceError = "tipo de documento desconhecido"
)

// Tipos de documento que podem ser vinculados a um atendimento.
const (
	TipoLaudo     = "laudo"
	TipoAvaliacao = "avaliacao"
)

// DocumentoInfo descreve um PDF presente no diretório de uploads.
type DocumentoInfo struct {
	Nome      string
	TamanhoKB int64
}

// IDocumentoService gerencia os PDFs de laudo e avaliação.
type IDocumentoService interface {
	Salvar(nomeOriginal string, conteudo []byte) (string, error)
	Listar() ([]DocumentoInfo, error)
	Ler(nome string) ([]byte, error)
	AssociarAoAtendimento(ctx context.Context, id uint, tipo, nomeArquivo string) error
}

// DocumentoService implementa IDocumentoService sobre o diretório de uploads.
type DocumentoService struct {
	dir    string
	repo   repositories.IAtendimentoRepository
	trilha *auditoria.Trilha
}

// NewDocumentoService cria o serviço usando o diretório configurado.
func NewDocumentoService(trilha *auditoria.Trilha) IDocumentoService {
	return &DocumentoService{
		dir:    configs.GetConfig().UploadsDir,
		repo:   repositories.NewAtendimentoRepository(),
		trilha: trilha,
	}
}

// NewDocumentoServiceComDeps cria o serviço com dependências injetadas (testes).
func NewDocumentoServiceComDeps(dir string, repo repositories.IAtendimentoRepository, trilha *auditoria.Trilha) IDocumentoService {
	return &DocumentoService{dir: dir, repo: repo, trilha: trilha}
}

func (s *DocumentoService) auditar(acao, detalhes string) {
	if s.trilha != nil {
		s.trilha.Registrar(acao, detalhes)
	}
}

// Salvar valida o conteúdo e grava o PDF com nome seguro.
// Devolve o nome do arquivo gravado.
func (s *DocumentoService) Salvar(nomeOriginal string, conteudo []byte) (string, error) {
	if err := seguranca.ValidarConteudoPDF(conteudo); err != nil {
		s.auditar(auditoria.AcaoUploadRejeitado, "Arquivo: "+nomeOriginal)
		return "", fmt.Errorf("%w: %v", ErrDocumentoInvalido, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		configslog.Log.Error("Falha ao criar diretório de uploads", zap.String("dir", s.dir), zap.Error(err))
		return "", ErrDocumentoGravacao
	}

	nomeSeguro := seguranca.NomeArquivoSeguro(nomeOriginal)
	destino := filepath.Join(s.dir, nomeSeguro)

	if err := os.WriteFile(destino, conteudo, 0o644); err != nil {
		configslog.Log.Error("Falha ao gravar PDF", zap.String("destino", destino), zap.Error(err))
		s.auditar(auditoria.AcaoUploadErro, "Erro: "+err.Error())
		return "", ErrDocumentoGravacao
	}

	s.auditar(auditoria.AcaoUploadSucesso, "Arquivo: "+nomeSeguro)
	configslog.SLog.Infof("PDF gravado: %s (%d bytes)", nomeSeguro, len(conteudo))
	return nomeSeguro, nil
}

// Listar devolve os PDFs do diretório de uploads, mais recentes primeiro.
// O prefixo de timestamp no nome torna a ordenação lexicográfica temporal.
func (s *DocumentoService) Listar() ([]DocumentoInfo, error) {
	entradas, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var docs []DocumentoInfo
	for _, entrada := range entradas {
		if entrada.IsDir() || !strings.HasSuffix(strings.ToLower(entrada.Name()), ".pdf") {
			continue
		}
		info, err := entrada.Info()
		if err != nil {
			continue
		}
		docs = append(docs, DocumentoInfo{
			Nome:      entrada.Name(),
			TamanhoKB: info.Size() / 1024,
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Nome > docs[j].Nome })
	return docs, nil
}

// Ler devolve o conteúdo de um PDF do diretório de uploads.
// O nome é reduzido à base para impedir traversal de caminho.
func (s *DocumentoService) Ler(nome string) ([]byte, error) {
	base := filepath.Base(nome)
	if base == "." || base == ".." || !strings.HasSuffix(strings.ToLower(base), ".pdf") {
		return nil, ErrDocumentoNaoEncontrado
	}

	conteudo, err := os.ReadFile(filepath.Join(s.dir, base))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDocumentoNaoEncontrado
		}
		configslog.Log.Error("Falha ao ler PDF", zap.String("nome", base), zap.Error(err))
		return nil, err
	}

	s.auditar(auditoria.AcaoDownloadPDF, "Arquivo: "+base)
	return conteudo, nil
}

// AssociarAoAtendimento vincula um PDF já gravado ao registro do atendimento.
func (s *DocumentoService) AssociarAoAtendimento(ctx context.Context, id uint, tipo, nomeArquivo string) error {
	caminho := filepath.Join(s.dir, filepath.Base(nomeArquivo))

	var coluna string
	switch tipo {
	case TipoLaudo:
		coluna = "laudo_pdf"
	case TipoAvaliacao:
		coluna = "avaliacao_pdf"
	default:
		return ErrTipoDocumentoInvalido
	}

	err := s.repo.UpdateCampos(ctx, id, map[string]interface{}{coluna: caminho})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrAtendimentoNaoEncontrado
		}
		return err
	}
	return nil
}
