package models

// Modalidades de atendimento reconhecidas pelo sistema.
// A restrição é aplicada na camada de validação, não no esquema.
const (
	ModalidadeAdmissional = "Admissional"
	ModalidadePeriodico   = "Periódico"
	ModalidadeDemissional = "Demissional"
	ModalidadeRetorno     = "Retorno"
)

// Modalidades lista os valores válidos na ordem exibida nos formulários.
var Modalidades = []string{
	ModalidadeAdmissional,
	ModalidadePeriodico,
	ModalidadeDemissional,
	ModalidadeRetorno,
}

// ModalidadeValida informa se o valor pertence ao conjunto conhecido.
func ModalidadeValida(m string) bool {
	for _, v := range Modalidades {
		if v == m {
			return true
		}
	}
	return false
}

// Status do ciclo de vida de um atendimento.
const (
	StatusPendente  = "Pendente"
	StatusAgendado  = "Agendado"
	StatusConcluido = "Concluído"
	StatusCancelado = "Cancelado"
)

// StatusDisponiveis lista os status oferecidos no formulário de edição.
var StatusDisponiveis = []string{
	StatusPendente,
	StatusAgendado,
	StatusConcluido,
	StatusCancelado,
}

// Atendimento é o registro de uma visita clínica.
// Data é armazenada em formato ISO (YYYY-MM-DD) para ordenação correta;
// os formulários aceitam e exibem dd/mm/YYYY.
type Atendimento struct {
	BaseModel
	Empresa      string  `gorm:"type:text;not null;index:idx_at_empresa" form:"empresa"`
	Nome         string  `gorm:"type:text;not null" form:"nome"`
	Modalidade   string  `gorm:"type:text;not null" form:"modalidade"`
	Data         string  `gorm:"type:text;not null;index:idx_at_data" form:"data"`
	Hora         string  `gorm:"type:text;not null" form:"hora"`
	LaudoPDF     *string `gorm:"column:laudo_pdf;type:text" form:"-"`
	AvaliacaoPDF *string `gorm:"column:avaliacao_pdf;type:text" form:"-"`
	Status       string  `gorm:"type:text;default:'Pendente'" form:"status"`
	Observacoes  string  `gorm:"type:text" form:"observacoes"`
}

// TableName fixa o nome da tabela no plural em português.
func (Atendimento) TableName() string {
	return "atendimentos"
}
