package config

import (
	"fmt"
	"os"
	"path/filepath"

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
	Stripe       Stripe       `mapstructure:",squash"`
	Shopify      Shopify      `mapstructure:",squash"`
	WebAnalytics WebAnalytics `mapstructure:",squash"`
	Sync         Sync         `mapstructure:",squash"`
	Insights     Insights     `mapstructure:",squash"`
	SyncJob      SyncJob      `mapstructure:",squash"`
	InsightJob   InsightJob   `mapstructure:",squash"`
	DigestJob    DigestJob    `mapstructure:",squash"`
	HealthJob    HealthJob    `mapstructure:",squash"`
	CleanupJob   CleanupJob   `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Stripe struct {
	BaseURL      string `mapstructure:"stripe_base_url"`
	TokenURL     string `mapstructure:"stripe_token_url"`
	ClientID     string `mapstructure:"stripe_client_id"`
	ClientSecret string `mapstructure:"stripe_client_secret"`
}

type Shopify struct {
	// BaseURLTemplate recebe o domínio da loja (metadados da integração)
	BaseURLTemplate string `mapstructure:"shopify_base_url_template"`
	APIVersion      string `mapstructure:"shopify_api_version"`
	ClientID        string `mapstructure:"shopify_client_id"`
	ClientSecret    string `mapstructure:"shopify_client_secret"`
}

type WebAnalytics struct {
	BaseURL      string `mapstructure:"webanalytics_base_url"`
	TokenURL     string `mapstructure:"webanalytics_token_url"`
	ClientID     string `mapstructure:"webanalytics_client_id"`
	ClientSecret string `mapstructure:"webanalytics_client_secret"`
}

// Sync controla o comportamento dos conectores e do orquestrador
type Sync struct {
	InitialLookbackDays     int `mapstructure:"sync_initial_lookback_days"`
	IncrementalOverlapDays  int `mapstructure:"sync_incremental_overlap_days"`
	CustomerSyncIntervalHrs int `mapstructure:"sync_customer_interval_hours"`
	PageSize                int `mapstructure:"sync_page_size"`
	PageDelayMillis         int `mapstructure:"sync_page_delay_ms"`
	MaxRecordsPerSync       int `mapstructure:"sync_max_records"`
	RequestTimeoutSeconds   int `mapstructure:"sync_request_timeout_seconds"`
	IntegrationTimeoutMins  int `mapstructure:"sync_integration_timeout_minutes"`
	RetryMaxAttempts        int `mapstructure:"sync_retry_max_attempts"`
	RetryInitialDelayMillis int `mapstructure:"sync_retry_initial_delay_ms"`
	WorkersPerPlatform      int `mapstructure:"sync_workers_per_platform"`
	StripeWorkerOverride    int `mapstructure:"sync_stripe_workers"`
	ShopifyWorkerOverride   int `mapstructure:"sync_shopify_workers"`
	AnalyticsWorkerOverride int `mapstructure:"sync_webanalytics_workers"`
	StalenessThresholdHours int `mapstructure:"sync_staleness_threshold_hours"`
	DataPointRetentionDays  int `mapstructure:"datapoint_retention_days"`
}

// WorkersFor retorna o tamanho do pool de workers para uma plataforma,
// respeitando o override por plataforma quando configurado
func (s Sync) WorkersFor(platform string) int {
	override := 0
	switch platform {
	case "stripe":
		override = s.StripeWorkerOverride
	case "shopify":
		override = s.ShopifyWorkerOverride
	case "webanalytics":
		override = s.AnalyticsWorkerOverride
	}

	if override > 0 {
		return override
	}
	if s.WorkersPerPlatform > 0 {
		return s.WorkersPerPlatform
	}
	return 1
}

// Insights controla o motor de insights
type Insights struct {
	TimeframeDays    int     `mapstructure:"insights_timeframe_days"`
	MaxPerRun        int     `mapstructure:"insights_max_per_run"`
	RetentionDays    int     `mapstructure:"insights_retention_days"`
	MaxAgeDays       int     `mapstructure:"insights_max_age_days"`
	AnomalyMinDays   int     `mapstructure:"insights_anomaly_min_days"`
	AnomalyThreshold float64 `mapstructure:"insights_anomaly_stddev_threshold"`
}

type SyncJob struct {
	CronSchedule string `mapstructure:"sync_job_cron"`
	Enabled      bool   `mapstructure:"sync_job_enabled"`
}

type InsightJob struct {
	CronSchedule string `mapstructure:"insight_job_cron"`
	Enabled      bool   `mapstructure:"insight_job_enabled"`
}

type DigestJob struct {
	CronSchedule string `mapstructure:"digest_job_cron"`
	Enabled      bool   `mapstructure:"digest_job_enabled"`
	TopInsights  int    `mapstructure:"digest_job_top_insights"`
}

type HealthJob struct {
	CronSchedule string `mapstructure:"health_job_cron"`
	Enabled      bool   `mapstructure:"health_job_enabled"`
}

type CleanupJob struct {
	CronSchedule string `mapstructure:"cleanup_job_cron"`
	Enabled      bool   `mapstructure:"cleanup_job_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/bizinsights")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("STRIPE_BASE_URL", "https://api.stripe.com/v1")
	viper.SetDefault("STRIPE_TOKEN_URL", "https://connect.stripe.com/oauth/token")
	viper.SetDefault("STRIPE_CLIENT_ID", "your_client_id")
	viper.SetDefault("STRIPE_CLIENT_SECRET", "your_client_secret")

	viper.SetDefault("SHOPIFY_BASE_URL_TEMPLATE", "https://%s/admin/api")
	viper.SetDefault("SHOPIFY_API_VERSION", "2024-01")
	viper.SetDefault("SHOPIFY_CLIENT_ID", "your_client_id")
	viper.SetDefault("SHOPIFY_CLIENT_SECRET", "your_client_secret")

	viper.SetDefault("WEBANALYTICS_BASE_URL", "https://analytics.example.com/api/v2")
	viper.SetDefault("WEBANALYTICS_TOKEN_URL", "https://analytics.example.com/oauth/token")
	viper.SetDefault("WEBANALYTICS_CLIENT_ID", "your_client_id")
	viper.SetDefault("WEBANALYTICS_CLIENT_SECRET", "your_client_secret")

	// Defaults da sincronização
	viper.SetDefault("SYNC_INITIAL_LOOKBACK_DAYS", 30) // Janela inicial limitada em vez de histórico completo
	viper.SetDefault("SYNC_INCREMENTAL_OVERLAP_DAYS", 1)
	viper.SetDefault("SYNC_CUSTOMER_INTERVAL_HOURS", 24) // Cadastro de clientes é recurso de baixa frequência
	viper.SetDefault("SYNC_PAGE_SIZE", 100)
	viper.SetDefault("SYNC_PAGE_DELAY_MS", 100)
	viper.SetDefault("SYNC_MAX_RECORDS", 5000) // Teto de registros acumulados por sincronização
	viper.SetDefault("SYNC_REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SYNC_INTEGRATION_TIMEOUT_MINUTES", 10)
	viper.SetDefault("SYNC_RETRY_MAX_ATTEMPTS", 5)
	viper.SetDefault("SYNC_RETRY_INITIAL_DELAY_MS", 500)
	viper.SetDefault("SYNC_WORKERS_PER_PLATFORM", 3)
	viper.SetDefault("SYNC_STRIPE_WORKERS", 0)
	viper.SetDefault("SYNC_SHOPIFY_WORKERS", 0)
	viper.SetDefault("SYNC_WEBANALYTICS_WORKERS", 0)
	viper.SetDefault("SYNC_STALENESS_THRESHOLD_HOURS", 24)
	viper.SetDefault("DATAPOINT_RETENTION_DAYS", 365)

	// Defaults do motor de insights
	viper.SetDefault("INSIGHTS_TIMEFRAME_DAYS", 30)
	viper.SetDefault("INSIGHTS_MAX_PER_RUN", 10)
	viper.SetDefault("INSIGHTS_RETENTION_DAYS", 7)
	viper.SetDefault("INSIGHTS_MAX_AGE_DAYS", 90)
	viper.SetDefault("INSIGHTS_ANOMALY_MIN_DAYS", 7)
	viper.SetDefault("INSIGHTS_ANOMALY_STDDEV_THRESHOLD", 2.0)

	// Defaults dos agendadores
	viper.SetDefault("SYNC_JOB_CRON", "0 */4 * * *") // A cada 4 horas
	viper.SetDefault("SYNC_JOB_ENABLED", false)

	viper.SetDefault("INSIGHT_JOB_CRON", "0 6 * * *") // Todos os dias às 6h da manhã
	viper.SetDefault("INSIGHT_JOB_ENABLED", false)

	viper.SetDefault("DIGEST_JOB_CRON", "0 8 * * 1") // Segunda-feira às 8h da manhã
	viper.SetDefault("DIGEST_JOB_ENABLED", false)
	viper.SetDefault("DIGEST_JOB_TOP_INSIGHTS", 5)

	viper.SetDefault("HEALTH_JOB_CRON", "30 * * * *") // A cada hora
	viper.SetDefault("HEALTH_JOB_ENABLED", false)

	viper.SetDefault("CLEANUP_JOB_CRON", "0 2 * * 0") // Domingo às 2h da manhã
	viper.SetDefault("CLEANUP_JOB_ENABLED", false)

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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
