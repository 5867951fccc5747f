package seeders

import (
	"juliana.clinic/configs/configslog"
	"juliana.clinic/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registrosDemo são os mesmos registros de exemplo da página de
// Configurações, com as datas já normalizadas para ISO.
var registrosDemo = []models.Atendimento{
	{Empresa: "Alpha Ltda", Nome: "Maria Silva", Modalidade: models.ModalidadeAdmissional, Data: "2025-09-04", Hora: "09:00", Status: models.StatusAgendado},
	{Empresa: "Beta Corp", Nome: "João Souza", Modalidade: models.ModalidadePeriodico, Data: "2024-08-15", Hora: "10:30", Status: models.StatusConcluido},
	{Empresa: "Alpha Ltda", Nome: "Carla Dias", Modalidade: models.ModalidadeDemissional, Data: "2023-03-21", Hora: "14:00", Status: models.StatusConcluido},
	{Empresa: "Gamma SA", Nome: "Pedro Lima", Modalidade: models.ModalidadeRetorno, Data: "2022-12-10", Hora: "11:15", Status: models.StatusCancelado},
}

// SeedAtendimentosDemo insere os dados de exemplo se a tabela estiver vazia.
func SeedAtendimentosDemo(db *gorm.DB) error {
	var total int64
	if err := db.Model(&models.Atendimento{}).Count(&total).Error; err != nil {
		configslog.Log.Error("Falha ao verificar tabela atendimentos para seed", zap.Error(err))
		return err
	}
	if total > 0 {
		configslog.SLog.Info("Tabela atendimentos já possui registros, seed ignorado.")
		return nil
	}

	for i := range registrosDemo {
		registro := registrosDemo[i]
		if err := db.Create(&registro).Error; err != nil {
			configslog.Log.Error("Falha ao inserir registro demo",
				zap.String("empresa", registro.Empresa), zap.Error(err))
			return err
		}
	}
	configslog.SLog.Infof("Seed concluído: %d atendimentos de exemplo inseridos.", len(registrosDemo))
	return nil
}
