package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/superstore-dashboard/infrastructure/database/postgres"
	"github.com/vfg2006/superstore-dashboard/infrastructure/repository"
	"github.com/vfg2006/superstore-dashboard/internal/api"
	"github.com/vfg2006/superstore-dashboard/internal/config"
	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/internal/scheduler"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/aggregating"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/dashboard"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/filtering"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/loading"
	"github.com/vfg2006/superstore-dashboard/pkg/metrics"
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

	var defaultSource loading.DefaultSource
	if cfg.UseDatabase() {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		defaultSource = loading.NewTableSource(cfg.Dataset.Table, repository.NewDatasetTableRepository(pgConn))
	} else {
		fileSource := loading.NewFileSource(cfg.Dataset.DefaultPath)
		if err := fileSource.Check(); err != nil {
			// a API sobe mesmo assim: sessões sem upload mostram o diagnóstico DATA_002
			logrus.WithError(err).Warn("Dataset padrão indisponível; defina DATASET_DEFAULT_PATH ou DATASET_TABLE")
		}
		defaultSource = fileSource
	}
	logrus.WithField("source", defaultSource.Describe()).Info("Dataset padrão configurado")

	sessionRepo := repository.NewSessionRepository()

	authenticator, err := authenticating.NewService(sessionRepo, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao configurar autenticação")
	}

	filterMode := domain.FilterMode(cfg.Pipeline.FilterMode)
	if !filterMode.Valid() {
		logrus.Warnf("Modo de filtro inválido: %s, usando '%s'", cfg.Pipeline.FilterMode, domain.FilterModeParity)
		filterMode = domain.FilterModeParity
	}

	collectors := metrics.New()

	dashboardService := dashboard.NewService(
		sessionRepo,
		loading.NewService(defaultSource),
		filtering.NewEngine(filterMode),
		aggregating.NewService(aggregating.Aggregate(cfg.Pipeline.PivotAggregate)),
		collectors,
	)

	sessionSweepService := scheduler.NewSessionSweepService(sessionRepo, collectors, cfg)
	if err := sessionSweepService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de sessões")
	} else {
		logrus.Info("Agendador de limpeza de sessões iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		dashboardService,
		sessionSweepService,
		collectors,
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
