package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/staydesk/backoffice-api/internal/config"
	"github.com/staydesk/backoffice-api/internal/models"
)

const (
	JobMarkOverdue  = "mark-overdue"
	JobExportReport = "export-report"
)

// ErrExportDisabled is returned when no export service is configured
var ErrExportDisabled = errors.New("report export is not configured")

// JobRun is the outcome of the latest run of a job
type JobRun struct {
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"durationNs"`
	Affected  int           `json:"affected"`
	Error     string        `json:"error,omitempty"`
}

// JobInfo describes one scheduled job
type JobInfo struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	NextRun  time.Time `json:"nextRun"`
	PrevRun  time.Time `json:"prevRun"`
	LastRun  *JobRun   `json:"lastRun,omitempty"`
}

// JobStatus is the scheduler state reported by the admin endpoint
type JobStatus struct {
	Running bool      `json:"running"`
	Jobs    []JobInfo `json:"jobs"`
}

// CronService manages scheduled background jobs
type CronService struct {
	cron         *cron.Cron
	cfg          config.JobsConfig
	reservations *ReservationService
	exports      *ExportService
	logger       *logrus.Logger

	mu      sync.Mutex
	entries map[string]cron.EntryID
	specs   map[string]string
	lastRun map[string]JobRun
	running bool
}

// NewCronService creates a new CronService. exports may be nil, which
// leaves the nightly export unscheduled.
func NewCronService(cfg config.JobsConfig, reservations *ReservationService, exports *ExportService, logger *logrus.Logger) *CronService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CronService{
		cron:         cron.New(cron.WithSeconds()),
		cfg:          cfg,
		reservations: reservations,
		exports:      exports,
		logger:       logger,
		entries:      make(map[string]cron.EntryID),
		specs:        make(map[string]string),
		lastRun:      make(map[string]JobRun),
	}
}

// Start schedules all jobs and starts the scheduler
func (s *CronService) Start() error {
	s.logger.Info("Starting cron service...")

	// Cron format: second minute hour day month weekday
	if err := s.schedule(JobMarkOverdue, s.cfg.OverduePaymentsSpec, s.markOverdueJob); err != nil {
		return err
	}

	if s.cfg.NightlyExport && s.exports != nil {
		if err := s.schedule(JobExportReport, s.cfg.NightlyExportSpec, s.exportReportJob); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	s.logger.Info("Cron service started")
	return nil
}

func (s *CronService) schedule(name, spec string, job func()) error {
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return fmt.Errorf("failed to schedule %s job: %w", name, err)
	}
	s.mu.Lock()
	s.entries[name] = id
	s.specs[name] = spec
	s.mu.Unlock()
	s.logger.WithFields(logrus.Fields{"job": name, "schedule": spec}).Info("Scheduled job")
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	s.logger.Info("Stopping cron service...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	s.logger.Info("Cron service stopped")
}

func (s *CronService) markOverdueJob() {
	if _, err := s.RunMarkOverdueNow(context.Background()); err != nil {
		s.logger.WithError(err).WithField("job", JobMarkOverdue).Error("Scheduled job failed")
	}
}

func (s *CronService) exportReportJob() {
	if _, err := s.RunExportNow(context.Background()); err != nil {
		s.logger.WithError(err).WithField("job", JobExportReport).Error("Scheduled job failed")
	}
}

// RunMarkOverdueNow flags unpaid past stays as overdue immediately
func (s *CronService) RunMarkOverdueNow(ctx context.Context) (int, error) {
	start := time.Now()
	count, err := s.reservations.MarkOverduePayments(ctx)
	s.record(JobMarkOverdue, start, count, err)
	return count, err
}

// RunExportNow exports every section of today's report immediately
func (s *CronService) RunExportNow(ctx context.Context) ([]ExportResult, error) {
	if s.exports == nil {
		return nil, ErrExportDisabled
	}
	start := time.Now()
	results, err := s.exports.ExportAll(ctx, models.RangeToday)
	s.record(JobExportReport, start, len(results), err)
	return results, err
}

func (s *CronService) record(name string, start time.Time, affected int, err error) {
	run := JobRun{StartedAt: start, Duration: time.Since(start), Affected: affected}
	entry := s.logger.WithFields(logrus.Fields{
		"job":      name,
		"affected": affected,
		"duration": run.Duration.String(),
	})
	if err != nil {
		run.Error = err.Error()
		entry.WithError(err).Warn("Job finished with error")
	} else {
		entry.Info("Job finished")
	}

	s.mu.Lock()
	s.lastRun[name] = run
	s.mu.Unlock()
}

// GetJobStatus returns the status of scheduled jobs
func (s *CronService) GetJobStatus() JobStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := JobStatus{Running: s.running, Jobs: []JobInfo{}}
	for _, name := range []string{JobMarkOverdue, JobExportReport} {
		info := JobInfo{Name: name, Schedule: s.specs[name]}
		if id, ok := s.entries[name]; ok {
			entry := s.cron.Entry(id)
			info.NextRun = entry.Next
			info.PrevRun = entry.Prev
		}
		if run, ok := s.lastRun[name]; ok {
			run := run
			info.LastRun = &run
		}
		if info.Schedule == "" && info.LastRun == nil {
			continue
		}
		status.Jobs = append(status.Jobs, info)
	}
	return status
}
