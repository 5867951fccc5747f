package configs

import (
	"juliana.clinic/configs/configslog"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB abre (ou cria) o banco SQLite e guarda o handle compartilhado.
// A falha aqui é fatal: sem banco a aplicação não tem o que servir.
func InitDB() {
	cfg := GetConfig()

	conn, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		configslog.Log.Fatal("Não foi possível abrir o banco de dados",
			zap.String("path", cfg.DBPath), zap.Error(err))
	}

	conn.Exec("PRAGMA journal_mode = WAL")
	conn.Exec("PRAGMA foreign_keys = ON")
	conn.Exec("PRAGMA busy_timeout = 30000")

	db = conn
	configslog.SLog.Infof("Banco de dados aberto: %s", cfg.DBPath)
}

// GetDB devolve o handle compartilhado do GORM.
func GetDB() *gorm.DB {
	if db == nil {
		configslog.Log.Fatal("GetDB chamado antes de InitDB")
	}
	return db
}

// SetDB injeta um handle externo (usado pelos testes com SQLite em memória).
func SetDB(conn *gorm.DB) {
	db = conn
}

// CloseDB fecha a conexão subjacente no desligamento do processo.
func CloseDB() {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		configslog.Log.Error("Falha ao obter conexão SQL para fechamento", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		configslog.Log.Error("Falha ao fechar o banco de dados", zap.Error(err))
		return
	}
	configslog.SLog.Info("Banco de dados fechado.")
}
