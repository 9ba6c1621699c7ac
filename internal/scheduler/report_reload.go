package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/xrack/sales-insights-api/infrastructure/repository"
	"github.com/xrack/sales-insights-api/infrastructure/spreadsheet"
	"github.com/xrack/sales-insights-api/internal/config"
	"github.com/xrack/sales-insights-api/internal/usecases/normalizing"
	"github.com/xrack/sales-insights-api/pkg/utils"
)

// ReportReloadConfig representa a configuração do agendador de recarga da planilha
type ReportReloadConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// ReportReloadService gerencia o agendamento e a execução da recarga da
// planilha financeira: ler o arquivo, normalizar e trocar o snapshot.
type ReportReloadService struct {
	scheduler           *gocron.Scheduler
	config              ReportReloadConfig
	loader              spreadsheet.Loader
	normalizer          normalizing.Normalizer
	snapshots           repository.SnapshotRepository
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

// NewReportReloadService cria uma nova instância do serviço de recarga
func NewReportReloadService(
	loader spreadsheet.Loader,
	normalizer normalizing.Normalizer,
	snapshots repository.SnapshotRepository,
	appConfig *config.Config,
) *ReportReloadService {
	reloadConfig := ReportReloadConfig{
		CronSchedule: appConfig.ReportSync.CronSchedule,
		SyncEnabled:  appConfig.ReportSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": reloadConfig.CronSchedule,
		"sync_enabled":  reloadConfig.SyncEnabled,
	}).Info("Configuração do agendador de recarga da planilha carregada")

	return &ReportReloadService{
		scheduler:  scheduler,
		config:     reloadConfig,
		loader:     loader,
		normalizer: normalizer,
		snapshots:  snapshots,
	}
}

// Start inicia o agendador
func (s *ReportReloadService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recarga agendada da planilha desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recarga da planilha")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.reload()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga da planilha: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recarga da planilha")
		s.scheduler.Stop()
	}()

	return nil
}

// ReloadNow executa uma recarga síncrona. Usada na subida da aplicação
// para que a API já nasça com dados.
func (s *ReportReloadService) ReloadNow() error {
	return s.reload()
}

// reload lê a planilha, normaliza e troca o snapshot corrente. Em caso de
// erro o snapshot anterior permanece servindo os relatórios.
func (s *ReportReloadService) reload() error {
	started := time.Now()

	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga da planilha já em andamento, ignorando")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = started
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	runID, _ := utils.GenerateID()
	logrus.WithField("execucao", runID).Info("Iniciando recarga da planilha financeira")

	table, err := s.loader.Load()
	if err != nil {
		s.recordSyncError(err)
		logrus.WithError(err).Error("Erro ao ler a planilha financeira")
		return err
	}

	snapshot, err := s.normalizer.BuildSnapshot(table)
	if err != nil {
		s.recordSyncError(err)
		logrus.WithError(err).Error("Erro ao normalizar a planilha financeira")
		return err
	}

	s.snapshots.Replace(snapshot)

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncError = ""
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"snapshot_id":   snapshot.ID,
		"registros":     len(snapshot.Records),
		"descartadas":   snapshot.DroppedRows,
		"duracao_total": time.Since(started).String(),
	}).Info("Recarga da planilha concluída")

	return nil
}

func (s *ReportReloadService) recordSyncError(err error) {
	s.syncMutex.Lock()
	s.lastSyncError = err.Error()
	s.syncMutex.Unlock()
}

// TriggerManualSync inicia manualmente uma recarga da planilha
func (s *ReportReloadService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga da planilha já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recarga manual da planilha")
	go s.reload()
}

// GetStatus retorna o estado do agendador para o endpoint de status.
// Os campos de progresso são escritos pela goroutine de recarga, então a
// leitura também passa pelo mutex.
func (s *ReportReloadService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
