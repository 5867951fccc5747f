package configs

import (
	"os"
	"path/filepath"
	"strconv"

	"juliana.clinic/configs/configslog"

	"github.com/joho/godotenv"
)

// Config concentra toda a configuração da aplicação vinda do ambiente.
type Config struct {
	Host       string
	Port       int
	DBPath     string
	UploadsDir string
	LogsDir    string
}

var appConfig *Config

// LoadConfig carrega o .env (se existir) e monta a configuração.
// Valores ausentes recebem os padrões do sistema.
func LoadConfig() *Config {
	if appConfig != nil {
		return appConfig
	}

	if err := godotenv.Load(); err != nil {
		// .env é opcional; variáveis podem vir direto do ambiente (container).
		if configslog.SLog != nil {
			configslog.SLog.Info("Arquivo .env não encontrado, usando variáveis de ambiente.")
		}
	}

	appConfig = &Config{
		Host:       getEnv("APP_HOST", "0.0.0.0"),
		Port:       getEnvInt("APP_PORT", 8501),
		DBPath:     getEnv("DB_PATH", "gestao_clinica.db"),
		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),
		LogsDir:    getEnv("LOGS_DIR", "logs"),
	}
	return appConfig
}

// GetConfig devolve a configuração já carregada (ou carrega na primeira chamada).
func GetConfig() *Config {
	if appConfig == nil {
		return LoadConfig()
	}
	return appConfig
}

// Addr devolve o endereço de escuta no formato host:porta.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// AuditLogPath devolve o caminho do arquivo de auditoria.
func (c *Config) AuditLogPath() string {
	return filepath.Join(c.LogsDir, "auditoria.log")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
