package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	Report     Report     `mapstructure:",squash"`
	TaxPolicy  TaxPolicy  `mapstructure:",squash"`
	ReportSync ReportSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// SeedUser é um usuário habilitado via ambiente. A senha chega já como
// hash bcrypt; a aplicação nunca vê a senha em claro.
type SeedUser struct {
	Name         string
	Email        string
	PasswordHash string
}

type Auth struct {
	SecretKey         string `mapstructure:"secret_key"`
	AdminName         string `mapstructure:"admin_name"`
	AdminEmail        string `mapstructure:"admin_email"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"`

	Users []SeedUser `mapstructure:"-"`
}

type Report struct {
	WorkbookPath   string `mapstructure:"report_workbook_path"`
	SheetName      string `mapstructure:"report_sheet_name"`
	HeaderScanRows int    `mapstructure:"report_header_scan_rows"`
}

// TaxPolicy define os meses em que a análise de impostos considera todos
// os pedidos, pagos ou não, no formato "MM-YYYY" separados por vírgula.
type TaxPolicy struct {
	AllOrdersMonths []string `mapstructure:"tax_all_orders_months"`
}

type ReportSync struct {
	CronSchedule string `mapstructure:"report_sync_cron"`
	Enabled      bool   `mapstructure:"report_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("ADMIN_NAME", "Administrador")
	viper.SetDefault("ADMIN_EMAIL", "admin@localhost")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")

	viper.SetDefault("REPORT_WORKBOOK_PATH", "MercadoTurbo-Financeiro.xlsx")
	viper.SetDefault("REPORT_SHEET_NAME", "")
	viper.SetDefault("REPORT_HEADER_SCAN_ROWS", 5)

	// Regime de abr-jun/2025: impostos sobre todos os pedidos do mês
	viper.SetDefault("TAX_ALL_ORDERS_MONTHS", "04-2025,05-2025,06-2025")

	// Defaults para a recarga da planilha
	viper.SetDefault("REPORT_SYNC_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
	viper.SetDefault("REPORT_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if config.Auth.AdminEmail != "" && config.Auth.AdminPasswordHash != "" {
		config.Auth.Users = append(config.Auth.Users, SeedUser{
			Name:         config.Auth.AdminName,
			Email:        config.Auth.AdminEmail,
			PasswordHash: config.Auth.AdminPasswordHash,
		})
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
