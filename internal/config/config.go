package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Dataset      Dataset      `mapstructure:",squash"`
	Pipeline     Pipeline     `mapstructure:",squash"`
	SessionSweep SessionSweep `mapstructure:",squash"`
	CORS         CORS         `mapstructure:",squash"`
	SecretKey    string       `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	Env      string `mapstructure:"app_env"`
}

type Server struct {
	Host        string `mapstructure:"host"`
	Port        string `mapstructure:"port"`
	MaxUploadMB int64  `mapstructure:"max_upload_mb"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Auth é o par de credenciais compartilhado do dashboard
type Auth struct {
	User     string        `mapstructure:"dashboard_user"`
	Password string        `mapstructure:"dashboard_password"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type Dataset struct {
	// DefaultPath relativo é resolvido a partir do diretório do executável
	DefaultPath string `mapstructure:"dataset_default_path"`
	// Table, quando preenchida, faz o dataset padrão ser lido do Postgres
	Table string `mapstructure:"dataset_table"`
}

type Pipeline struct {
	FilterMode     string `mapstructure:"filter_mode"`
	PivotAggregate string `mapstructure:"pivot_aggregate"`
}

type SessionSweep struct {
	CronSchedule string        `mapstructure:"session_sweep_cron"`
	Enabled      bool          `mapstructure:"session_sweep_enabled"`
	IdleTimeout  time.Duration `mapstructure:"session_idle_timeout"`
}

type CORS struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("MAX_UPLOAD_MB", 50)

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/superstore")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("DASHBOARD_USER", "admin")
	viper.SetDefault("DASHBOARD_PASSWORD", "admin") // ONLY LOCAL
	viper.SetDefault("TOKEN_TTL", "24h")

	viper.SetDefault("DATASET_DEFAULT_PATH", "Sample - Superstore.xls")
	viper.SetDefault("DATASET_TABLE", "")

	viper.SetDefault("FILTER_MODE", "parity")
	viper.SetDefault("PIVOT_AGGREGATE", "sum")

	viper.SetDefault("SESSION_SWEEP_CRON", "*/15 * * * *") // A cada 15 minutos
	viper.SetDefault("SESSION_SWEEP_ENABLED", false)
	viper.SetDefault("SESSION_IDLE_TIMEOUT", "2h")

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Dataset.DefaultPath = ResolveAppPath(config.Dataset.DefaultPath)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// UseDatabase indica que o dataset padrão vem de uma tabela do Postgres
func (c *Config) UseDatabase() bool {
	return c.Dataset.Table != ""
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// MaxUploadBytes é o limite do corpo de uma requisição de upload
func (c *Config) MaxUploadBytes() int64 {
	return c.Server.MaxUploadMB << 20
}

// ResolveAppPath resolve caminhos relativos a partir do diretório do executável,
// e não do diretório de trabalho, para que o arquivo empacotado seja encontrado
// independente de onde a aplicação é iniciada.
func ResolveAppPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	executable, err := os.Executable()
	if err != nil {
		logrus.Warn("Não foi possível obter o caminho do executável: ", err)
		return path
	}
	if resolved, err := filepath.EvalSymlinks(executable); err == nil {
		executable = resolved
	}

	return filepath.Join(filepath.Dir(executable), path)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando variáveis de ambiente")
}
