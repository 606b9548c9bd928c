package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/internal/models"
	"github.com/eduboost/course-portal-api/pkg/config"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
	"github.com/eduboost/course-portal-api/pkg/jobs"
)

// AccessEventStore is the persistence surface for access analytics.
type AccessEventStore interface {
	Insert(ctx context.Context, event *models.AccessEvent) error
	SummarizeByCourse(ctx context.Context, courseID string) ([]models.AccessSummary, error)
}

// AnalyticsService records access events off the request path and
// serves the professor's usage report. Recording is best-effort: a
// full queue drops the event instead of slowing the request down.
type AnalyticsService struct {
	store   AccessEventStore
	queue   *jobs.Queue
	enabled bool
	logger  *zap.Logger
}

// NewAnalyticsService constructs the service and its backing queue.
// Call Start before recording.
func NewAnalyticsService(store AccessEventStore, cfg config.AnalyticsConfig, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &AnalyticsService{store: store, enabled: cfg.Enabled, logger: logger}
	s.queue = jobs.NewQueue("access-events", s.handleJob, jobs.QueueConfig{
		Workers:    1,
		BufferSize: cfg.QueueSize,
		MaxRetries: cfg.MaxRetries,
		Logger:     logger,
	})
	return s
}

// Enabled reports whether access recording is on.
func (s *AnalyticsService) Enabled() bool { return s.enabled }

// Start launches the queue workers.
func (s *AnalyticsService) Start(ctx context.Context) {
	if s.enabled {
		s.queue.Start(ctx)
	}
}

// Stop drains the workers.
func (s *AnalyticsService) Stop() {
	if s.enabled {
		s.queue.Stop()
	}
}

// Record queues one access event. Drops are logged at debug level so a
// saturated queue does not flood the log.
func (s *AnalyticsService) Record(event models.AccessEvent) {
	if !s.enabled {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	err := s.queue.TryEnqueue(jobs.Job{ID: event.ID, Type: "access-event", Payload: event})
	if err != nil {
		s.logger.Debug("access event dropped", zap.Error(err))
	}
}

// Report aggregates events per path, optionally scoped to one course.
func (s *AnalyticsService) Report(ctx context.Context, courseID string) (dto.AccessReportResponse, error) {
	summaries, err := s.store.SummarizeByCourse(ctx, courseID)
	if err != nil {
		return dto.AccessReportResponse{}, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to summarize access events")
	}
	if summaries == nil {
		summaries = []models.AccessSummary{}
	}

	var total int64
	for _, summary := range summaries {
		total += summary.Count
	}
	return dto.AccessReportResponse{CourseID: courseID, Total: total, ByPath: summaries}, nil
}

func (s *AnalyticsService) handleJob(ctx context.Context, job jobs.Job) error {
	event, ok := job.Payload.(models.AccessEvent)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}
	return s.store.Insert(ctx, &event)
}
