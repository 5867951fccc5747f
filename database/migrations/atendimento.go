package migrations

import (
	"juliana.clinic/configs/configslog"
	"juliana.clinic/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrateAtendimentosTable cria/ajusta a tabela atendimentos.
// AutoMigrate é idempotente: rodar sobre um banco já inicializado é no-op.
func MigrateAtendimentosTable(db *gorm.DB) error {
	configslog.SLog.Info("Migrando tabela atendimentos...")
	if err := db.AutoMigrate(&models.Atendimento{}); err != nil {
		configslog.Log.Error("Falha ao migrar tabela atendimentos", zap.Error(err))
		return err
	}
	configslog.SLog.Info("Tabela atendimentos migrada com sucesso")
	return nil
}
