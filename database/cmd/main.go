package main

import (
	"flag"

	"juliana.clinic/configs"
	"juliana.clinic/configs/configslog"
	"juliana.clinic/database"

	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	migrateFlag := flag.Bool("migrate", false, "Executa as migrações do banco de dados")
	seedFlag := flag.Bool("seed", false, "Insere os dados de exemplo")
	flag.Parse()

	configs.LoadConfig()
	configs.InitDB()
	defer configs.CloseDB()

	db := configs.GetDB()

	configslog.SLog.Info("Executando inicialização do banco de dados...")
	if err := database.Initialize(db, *migrateFlag, *seedFlag); err != nil {
		configslog.Log.Fatal("Inicialização do banco falhou", zap.Error(err))
	}
	configslog.SLog.Info("Inicialização do banco finalizada.")
}
