// Package seguranca valida e limpa entradas do usuário antes que
// cheguem ao banco ou ao disco.
package seguranca

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TamanhoMaximoPDF é o limite aceito para upload de documentos (10 MiB).
const TamanhoMaximoPDF = 10 * 1024 * 1024

// ErroValidacao indica qual campo falhou e por quê.
type ErroValidacao struct {
	Campo  string
	Motivo string
}

func (e *ErroValidacao) Error() string {
	return fmt.Sprintf("%s: %s", e.Campo, e.Motivo)
}

// NovoErroValidacao cria um erro de validação para o campo informado.
func NovoErroValidacao(campo, motivo string) *ErroValidacao {
	return &ErroValidacao{Campo: campo, Motivo: motivo}
}

var (
	caracteresPerigosos = regexp.MustCompile(`[<>"'&;]`)
	espacosSeguidos     = regexp.MustCompile(`\s+`)
	runasInseguras      = regexp.MustCompile(`[^\w\-.]`)
)

// SanitizeInput remove caracteres perigosos, colapsa espaços e limita o tamanho.
func SanitizeInput(s string, max int) string {
	if s == "" {
		return ""
	}
	limpo := caracteresPerigosos.ReplaceAllString(s, "")
	limpo = espacosSeguidos.ReplaceAllString(limpo, " ")
	limpo = strings.TrimSpace(limpo)
	if max > 0 && len(limpo) > max {
		limpo = limpo[:max]
	}
	return strings.TrimSpace(limpo)
}

// Formatos de data aceitos na entrada. O primeiro é o formato dos formulários;
// os demais toleram dados vindos de importações antigas.
var formatosData = []string{"02/01/2006", "2006-01-02", "2006/01/02"}

// ValidarData valida a data e a devolve normalizada em ISO (YYYY-MM-DD).
func ValidarData(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", NovoErroValidacao("data", "campo obrigatório")
	}
	for _, layout := range formatosData {
		if dt, err := time.Parse(layout, s); err == nil {
			return dt.Format("2006-01-02"), nil
		}
	}
	return "", NovoErroValidacao("data", "formato inválido, use dd/mm/aaaa")
}

// FormatarDataBR converte uma data ISO para dd/mm/aaaa na exibição.
// Valores fora do formato esperado voltam como estão.
func FormatarDataBR(iso string) string {
	dt, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return dt.Format("02/01/2006")
}

// ValidarHora valida o horário no formato HH:MM.
func ValidarHora(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return NovoErroValidacao("hora", "campo obrigatório")
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return NovoErroValidacao("hora", "formato inválido, use HH:MM")
	}
	return nil
}

// Padrões de conteúdo ativo que não aceitamos dentro de PDFs.
var padroesPerigososPDF = [][]byte{
	[]byte("/JavaScript"),
	[]byte("/JS"),
	[]byte("/OpenAction"),
	[]byte("/Launch"),
}

// ValidarConteudoPDF faz a verificação básica do arquivo enviado:
// cabeçalho %PDF-, tamanho máximo e ausência de conteúdo ativo.
func ValidarConteudoPDF(conteudo []byte) error {
	if !bytes.HasPrefix(conteudo, []byte("%PDF-")) {
		return NovoErroValidacao("arquivo", "não é um PDF válido")
	}
	if len(conteudo) > TamanhoMaximoPDF {
		return NovoErroValidacao("arquivo", "excede o limite de 10MB")
	}
	for _, padrao := range padroesPerigososPDF {
		if bytes.Contains(conteudo, padrao) {
			return NovoErroValidacao("arquivo", "contém conteúdo ativo não permitido")
		}
	}
	return nil
}

// NomeArquivoSeguro normaliza o nome do arquivo e o prefixa com timestamp
// e um sufixo aleatório curto para evitar colisões e sobrescritas.
func NomeArquivoSeguro(nome string) string {
	base := filepath.Base(nome)
	ext := filepath.Ext(base)
	semExt := strings.TrimSuffix(base, ext)

	seguro := runasInseguras.ReplaceAllString(semExt, "_")
	if len(seguro) > 100 {
		seguro = seguro[:100]
	}
	if seguro == "" || seguro == "." {
		seguro = "documento"
	}
	ext = runasInseguras.ReplaceAllString(ext, "")
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	carimbo := time.Now().Format("20060102_150405")
	sufixo := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s%s", carimbo, sufixo, seguro, ext)
}
