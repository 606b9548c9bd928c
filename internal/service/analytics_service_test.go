package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduboost/course-portal-api/internal/models"
	"github.com/eduboost/course-portal-api/pkg/config"
)

type mockAccessEventStore struct {
	mu      sync.Mutex
	events  []models.AccessEvent
	summary []models.AccessSummary
}

func (m *mockAccessEventStore) Insert(_ context.Context, event *models.AccessEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *event)
	return nil
}

func (m *mockAccessEventStore) SummarizeByCourse(context.Context, string) ([]models.AccessSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summary, nil
}

func (m *mockAccessEventStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

func TestAnalyticsRecordWritesThroughQueue(t *testing.T) {
	store := &mockAccessEventStore{}
	svc := NewAnalyticsService(store, config.AnalyticsConfig{Enabled: true, QueueSize: 16}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	svc.Record(models.AccessEvent{Path: "/api/notes", Method: "GET", Status: 200})

	require.Eventually(t, func() bool { return store.count() == 1 }, time.Second, 10*time.Millisecond)
	store.mu.Lock()
	event := store.events[0]
	store.mu.Unlock()
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.OccurredAt.IsZero())
}

func TestAnalyticsDisabledDropsEverything(t *testing.T) {
	store := &mockAccessEventStore{}
	svc := NewAnalyticsService(store, config.AnalyticsConfig{Enabled: false}, nil)
	svc.Start(context.Background())
	defer svc.Stop()

	svc.Record(models.AccessEvent{Path: "/api/notes"})
	assert.Equal(t, 0, store.count())
	assert.False(t, svc.Enabled())
}

func TestAnalyticsReportTotals(t *testing.T) {
	store := &mockAccessEventStore{summary: []models.AccessSummary{
		{Path: "/api/notes", Count: 7},
		{Path: "/api/resources", Count: 3},
	}}
	svc := NewAnalyticsService(store, config.AnalyticsConfig{Enabled: true}, nil)

	report, err := svc.Report(context.Background(), "math")
	require.NoError(t, err)
	assert.Equal(t, int64(10), report.Total)
	assert.Equal(t, "math", report.CourseID)
	assert.Len(t, report.ByPath, 2)
}
