// cmd/funnel-server/main.go
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ai-readiness-funnel/internal/api"
	"ai-readiness-funnel/internal/assessment"
	"ai-readiness-funnel/internal/chatbot"
	awsclient "ai-readiness-funnel/internal/common/aws"
	"ai-readiness-funnel/internal/common/camunda"
	"ai-readiness-funnel/internal/common/config"
	"ai-readiness-funnel/internal/common/database"
	"ai-readiness-funnel/internal/common/logger"
	"ai-readiness-funnel/internal/common/observability"
	"ai-readiness-funnel/internal/common/zoho"
	"ai-readiness-funnel/internal/content"
	"ai-readiness-funnel/internal/leads"

	sa "ai-readiness-funnel/internal/workers/assessment/score-assessment"
	cls "ai-readiness-funnel/internal/workers/crm/crm-lead-sync"
	clr "ai-readiness-funnel/internal/workers/leads/create-lead-record"
	sln "ai-readiness-funnel/internal/workers/leads/send-lead-notification"
)

var version = "dev"

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format).With(zap.String("service", cfg.App.Name))
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting funnel server...", zap.String("version", version), zap.String("environment", cfg.App.Environment))

	obs, err := observability.New(cfg.App.Name, version)
	if err != nil {
		zapLog.Warn("otel metrics disabled", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Shutdown(ctx)
	}()

	ctx := context.Background()

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	repo := leads.NewRepository(pg.DB)
	if err := repo.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}

	// --- Redis ---
	rdb := database.NewRedis(cfg.Database.Redis)
	err = retryWithBackoff(func() error {
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	checks := map[string]func(context.Context) error{
		"postgres": pg.Ping,
		"redis":    rdb.Ping,
	}

	// --- Search ---
	var searcher content.Searcher = content.NewMemorySearcher(nil)
	if cfg.Search.Backend == config.SearchBackendElasticsearch {
		var es *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")

		elastic := content.NewElasticSearcher(es.Client, cfg.Database.Elasticsearch.Index, searcher, log)
		if cfg.Search.SeedOnStart {
			if err := elastic.IndexAll(ctx, content.Items()); err != nil {
				zapLog.Warn("content seeding failed", zap.Error(err))
			}
		}
		searcher = elastic
		checks["elasticsearch"] = es.Ping
	}

	wizard := assessment.NewWizard(nil)
	sessions := assessment.NewRedisSessionStore(rdb.Client, wizard, config.GetDuration(cfg.Assessment.SessionTTL))

	container := &api.Container{
		Wizard:   wizard,
		Sessions: sessions,
		Leads:    repo,
		Searcher: searcher,
		Chat:     chatbot.NewResponder(),
		Processes: api.Processes{
			AssessmentCompleted: cfg.Camunda.Processes.AssessmentCompleted,
			LeadIntake:          cfg.Camunda.Processes.LeadIntake,
		},
		Checks:         checks,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
	}

	// --- Workflow engine and workers ---
	var workers []*camunda.CamundaWorker
	if cfg.Camunda.Enabled {
		var zb *camunda.Client
		err = retryWithBackoff(func() error {
			var err error
			zb, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
				GatewayAddress:         cfg.Camunda.BrokerAddress,
				UsePlaintextConnection: true,
				RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
			})
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer zb.Close()
		zapLog.Info("Zeebe client connected successfully")

		if cfg.Camunda.ResourcesDir != "" {
			n, err := zb.DeployDir(ctx, cfg.Camunda.ResourcesDir)
			if err != nil {
				zapLog.Fatal("process deployment failed", zap.Error(err))
			}
			zapLog.Info("Process models deployed", zap.Int("count", n), zap.String("dir", cfg.Camunda.ResourcesDir))
		}

		container.Starter = zb
		checks["zeebe"] = zb.HealthCheck

		workers = startWorkers(ctx, cfg, zb, repo, log, obs, zapLog)
	}

	// --- HTTP server ---
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewRouter(container),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	zapLog.Info("Shutting down...", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}
	for _, w := range workers {
		w.Stop()
	}
	zapLog.Info("Shutdown complete")
}

func startWorkers(
	ctx context.Context,
	cfg *config.Config,
	zb *camunda.Client,
	repo *leads.Repository,
	log logger.Logger,
	obs *observability.Observability,
	zapLog *zap.Logger,
) []*camunda.CamundaWorker {
	var (
		mailer sln.Mailer
		sms    sln.SMSSender
	)
	if cfg.Integrations.AWS.SES.Enabled {
		ses, err := awsclient.NewSESClient(ctx, cfg.Integrations.AWS.Region, cfg.Integrations.AWS.SES.FromEmail)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		mailer = ses
	}
	if cfg.Integrations.AWS.SNS.Enabled {
		sns, err := awsclient.NewSNSClient(ctx, cfg.Integrations.AWS.Region, cfg.Integrations.AWS.SNS.DefaultSMSSenderID)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		sms = sns
	}
	crm := zoho.NewCRMClient(
		cfg.Integrations.Zoho.APIKey,
		cfg.Integrations.Zoho.AuthToken,
		cfg.Integrations.Zoho.BaseURL,
	)
	zapLog.Info("All external service clients initialized")

	client := zb.GetClient()
	var workers []*camunda.CamundaWorker
	add := func(w *camunda.CamundaWorker) {
		if w != nil {
			workers = append(workers, w)
		}
	}

	wcfg := config.GetWorkerConfig(cfg, "score-assessment")
	add(camunda.StartWorker(client, sa.TaskType, wcfg,
		sa.NewHandler(sa.LoadConfig(wcfg), nil, log), log, obs))

	wcfg = config.GetWorkerConfig(cfg, "create-lead-record")
	add(camunda.StartWorker(client, clr.TaskType, wcfg,
		clr.NewHandler(clr.LoadConfig(wcfg), repo, log), log, obs))

	wcfg = config.GetWorkerConfig(cfg, "send-lead-notification")
	add(camunda.StartWorker(client, sln.TaskType, wcfg,
		sln.NewHandler(sln.LoadConfig(cfg, wcfg), mailer, sms, log), log, obs))

	wcfg = config.GetWorkerConfig(cfg, "crm-lead-sync")
	add(camunda.StartWorker(client, cls.TaskType, wcfg,
		cls.NewHandler(cls.LoadConfig(wcfg), crm, log), log, obs))

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))
	return workers
}
