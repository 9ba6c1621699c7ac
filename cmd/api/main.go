package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xrack/sales-insights-api/infrastructure/repository"
	"github.com/xrack/sales-insights-api/infrastructure/spreadsheet"
	"github.com/xrack/sales-insights-api/internal/api"
	"github.com/xrack/sales-insights-api/internal/config"
	"github.com/xrack/sales-insights-api/internal/scheduler"
	"github.com/xrack/sales-insights-api/internal/usecases/authenticating"
	"github.com/xrack/sales-insights-api/internal/usecases/filtering"
	"github.com/xrack/sales-insights-api/internal/usecases/normalizing"
	"github.com/xrack/sales-insights-api/internal/usecases/reporting"
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

	snapshotRepo := repository.NewSnapshotRepository()

	loader := spreadsheet.NewXLSXLoader(cfg.Report.WorkbookPath, cfg.Report.SheetName)
	normalizer := normalizing.NewService(cfg.Report.HeaderScanRows)

	authenticator := authenticating.NewService(cfg)

	taxPolicy, err := filtering.NewTaxPolicy(cfg.TaxPolicy.AllOrdersMonths)
	if err != nil {
		logrus.WithError(err).Fatal("Política de impostos inválida na configuração")
	}

	reportService := reporting.NewService(snapshotRepo, taxPolicy)

	reloadService := scheduler.NewReportReloadService(loader, normalizer, snapshotRepo, cfg)

	// Carga inicial síncrona: a API sobe servindo dados. Em caso de erro o
	// servidor sobe mesmo assim e os relatórios respondem 503 até uma
	// recarga bem-sucedida.
	if err := reloadService.ReloadNow(); err != nil {
		logrus.WithError(err).Error("Erro na carga inicial da planilha; relatórios indisponíveis até a próxima recarga")
	}

	if err := reloadService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga da planilha")
	} else {
		logrus.Info("Agendador de recarga da planilha iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportService,
		authenticator,
		reloadService,
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
