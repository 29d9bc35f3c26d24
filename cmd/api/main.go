package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/prem5599/bizinsights-sub001/infrastructure/connector"
	"github.com/prem5599/bizinsights-sub001/infrastructure/connector/shopify"
	"github.com/prem5599/bizinsights-sub001/infrastructure/connector/stripe"
	"github.com/prem5599/bizinsights-sub001/infrastructure/connector/webanalytics"
	"github.com/prem5599/bizinsights-sub001/infrastructure/database/postgres"
	"github.com/prem5599/bizinsights-sub001/infrastructure/repository"
	"github.com/prem5599/bizinsights-sub001/internal/api"
	"github.com/prem5599/bizinsights-sub001/internal/config"
	"github.com/prem5599/bizinsights-sub001/internal/notify"
	"github.com/prem5599/bizinsights-sub001/internal/scheduler"
	"github.com/prem5599/bizinsights-sub001/internal/usecases/insighting"
	"github.com/prem5599/bizinsights-sub001/internal/usecases/syncing"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	integrationRepo := repository.NewIntegrationRepository(pgConn)
	dataPointRepo := repository.NewDataPointRepository(pgConn)
	insightRepo := repository.NewInsightRepository(pgConn)

	// Conectores de plataforma
	stripeService := stripe.NewService(cfg, stripe.NewClient(cfg), dataPointRepo)
	shopifyService := shopify.NewService(cfg, shopify.NewClient(cfg), dataPointRepo)
	analyticsService := webanalytics.NewService(cfg, webanalytics.NewClient(cfg), dataPointRepo)

	registry := connector.NewRegistry(stripeService, shopifyService, analyticsService)

	orchestrator := syncing.NewOrchestrator(cfg, registry, integrationRepo)
	insightService := insighting.NewService(cfg, integrationRepo, dataPointRepo, insightRepo)
	notifier := notify.NewLogNotifier()

	// Inicializa os agendadores do pipeline
	syncCycleService := scheduler.NewSyncCycleService(cfg, orchestrator)
	insightCycleService := scheduler.NewInsightCycleService(cfg, insightService)
	digestService := scheduler.NewDigestService(cfg, insightService, integrationRepo, notifier)
	healthCheckService := scheduler.NewHealthCheckService(cfg, orchestrator, integrationRepo, notifier)
	cleanupService := scheduler.NewCleanupService(cfg, dataPointRepo, insightRepo)

	// Inicia os agendadores em background
	if err := syncCycleService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do ciclo de sincronização")
	} else {
		logrus.Info("Agendador do ciclo de sincronização iniciado com sucesso")
	}

	if err := insightCycleService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do ciclo de insights")
	} else {
		logrus.Info("Agendador do ciclo de insights iniciado com sucesso")
	}

	if err := digestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do resumo de insights")
	} else {
		logrus.Info("Agendador do resumo de insights iniciado com sucesso")
	}

	if err := healthCheckService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador da verificação de saúde")
	} else {
		logrus.Info("Agendador da verificação de saúde iniciado com sucesso")
	}

	if err := cleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador da limpeza por retenção")
	} else {
		logrus.Info("Agendador da limpeza por retenção iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		insightService,
		orchestrator,
		syncCycleService,
		insightCycleService,
		digestService,
		healthCheckService,
		cleanupService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
