package models

// Estatisticas agrega os indicadores exibidos no dashboard e nos relatórios.
type Estatisticas struct {
	TotalAtendimentos  int64            `json:"total_atendimentos"`
	TotalEmpresas      int64            `json:"total_empresas"`
	LaudosEnviados     int64            `json:"laudos_enviados"`
	AvaliacoesEnviadas int64            `json:"avaliacoes_enviadas"`
	PorModalidade      map[string]int64 `json:"por_modalidade"`
	PorStatus          map[string]int64 `json:"por_status"`
	PorData            map[string]int64 `json:"por_data"`
}
