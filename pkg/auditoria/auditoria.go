// Package auditoria mantém a trilha de auditoria em arquivo próprio,
// separada do log da aplicação. Escritas são best-effort: falha de
// disco nunca derruba a operação que está sendo auditada.
package auditoria

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Ações registradas na trilha de auditoria.
const (
	AcaoAdicionarAtendimento = "ADD_APPOINTMENT"
	AcaoAtualizarAtendimento = "UPDATE_APPOINTMENT"
	AcaoExcluirAtendimento   = "DELETE_APPOINTMENT"
	AcaoUploadSucesso        = "UPLOAD_SUCCESS"
	AcaoUploadRejeitado      = "UPLOAD_REJECTED"
	AcaoUploadErro           = "UPLOAD_ERROR"
	AcaoDownloadPDF          = "DOWNLOAD_PDF"
	AcaoLimparLogs           = "CLEAR_LOGS"
	AcaoVerificarBanco       = "CHECK_DB"
	AcaoPopularDemo          = "SEED_DEMO_DATA"
)

// Trilha grava entradas de auditoria em um arquivo com rotação por tamanho.
type Trilha struct {
	mu      sync.Mutex
	logger  *zap.Logger
	rotator *lumberjack.Logger
	caminho string
}

// NovaTrilha cria a trilha apontando para o arquivo informado.
// O diretório é criado se necessário.
func NovaTrilha(caminho string) (*Trilha, error) {
	if dir := filepath.Dir(caminho); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	rotator := &lumberjack.Logger{
		Filename:   caminho,
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     90, // dias
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(rotator),
		zapcore.InfoLevel,
	)

	return &Trilha{
		logger:  zap.New(core),
		rotator: rotator,
		caminho: caminho,
	}, nil
}

// Registrar anota uma ação na trilha. Nunca retorna erro ao chamador:
// auditoria indisponível não pode impedir a operação em si.
func (t *Trilha) Registrar(acao, detalhes string) {
	if t == nil || t.logger == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logger.Info("ACTION: " + acao + " | DETAILS: " + detalhes)
	_ = t.logger.Sync()
}

// LerUltimas devolve as últimas n linhas do arquivo de auditoria.
func (t *Trilha) LerUltimas(n int) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	conteudo, err := os.ReadFile(t.caminho)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	linhas := strings.Split(strings.TrimRight(string(conteudo), "\n"), "\n")
	if len(linhas) == 1 && linhas[0] == "" {
		return nil, nil
	}
	if n > 0 && len(linhas) > n {
		linhas = linhas[len(linhas)-n:]
	}
	return linhas, nil
}

// Limpar trunca o arquivo de auditoria atual.
func (t *Trilha) Limpar() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := os.Truncate(t.caminho, 0); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Fechar encerra o rotator subjacente.
func (t *Trilha) Fechar() error {
	if t == nil || t.rotator == nil {
		return nil
	}
	return t.rotator.Close()
}
