package database

import (
	"juliana.clinic/configs/configslog"
	"juliana.clinic/database/migrations"
	"juliana.clinic/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize executa migrações e/ou seed dentro de uma transação única.
func Initialize(db *gorm.DB, migrate bool, seed bool) error {
	if !migrate && !seed {
		configslog.SLog.Info("Nenhuma flag de migrate ou seed informada, nada a fazer.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		configslog.SLog.Info("Iniciando inicialização do banco de dados...")

		if migrate {
			configslog.SLog.Info("Executando migrações...")
			if err := RunMigrationsInOrder(tx); err != nil {
				configslog.Log.Error("Migração falhou", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Migrações concluídas.")
		}

		if seed {
			configslog.SLog.Info("Executando seeders...")
			if err := CheckAndRunSeeders(tx); err != nil {
				configslog.Log.Error("Seed falhou", zap.Error(err))
				return err
			}
			configslog.SLog.Info("Seeders concluídos.")
		}

		configslog.SLog.Info("Inicialização do banco concluída com sucesso")
		return nil
	})
}

// RunMigrationsInOrder executa as migrações na ordem de dependência.
// Hoje há uma única tabela; a ordenação existe para as próximas.
func RunMigrationsInOrder(db *gorm.DB) error {
	return migrations.MigrateAtendimentosTable(db)
}

// CheckAndRunSeeders roda os seeders idempotentes.
func CheckAndRunSeeders(db *gorm.DB) error {
	return seeders.SeedAtendimentosDemo(db)
}
