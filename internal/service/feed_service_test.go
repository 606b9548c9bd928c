package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduboost/course-portal-api/pkg/config"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
)

type mockFeedParser struct {
	feed *gofeed.Feed
	err  error
}

func (m *mockFeedParser) ParseURLWithContext(string, context.Context) (*gofeed.Feed, error) {
	return m.feed, m.err
}

func TestFeedFetchNormalizesItems(t *testing.T) {
	published := time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC)
	parser := &mockFeedParser{feed: &gofeed.Feed{
		Title: "Actualités du cours",
		Items: []*gofeed.Item{
			{Title: "Examen", Link: "https://example.org/1", PublishedParsed: &published, Description: "Date fixée"},
			nil,
			{Title: "TD", Link: "https://example.org/2"},
		},
	}}
	svc := NewFeedService(parser, config.FeedConfig{MaxItems: 20}, nil)

	res, err := svc.Fetch(context.Background(), "https://example.org/rss.xml")
	require.NoError(t, err)
	assert.Equal(t, "Actualités du cours", res.Title)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Examen", res.Items[0].Title)
	assert.Equal(t, &published, res.Items[0].Published)
}

func TestFeedFetchTruncatesToMaxItems(t *testing.T) {
	feed := &gofeed.Feed{Title: "big"}
	for i := 0; i < 50; i++ {
		feed.Items = append(feed.Items, &gofeed.Item{Title: "item"})
	}
	svc := NewFeedService(&mockFeedParser{feed: feed}, config.FeedConfig{MaxItems: 5}, nil)

	res, err := svc.Fetch(context.Background(), "https://example.org/rss.xml")
	require.NoError(t, err)
	assert.Len(t, res.Items, 5)
}

func TestFeedFetchRejectsNonHTTPURL(t *testing.T) {
	svc := NewFeedService(&mockFeedParser{}, config.FeedConfig{}, nil)

	_, err := svc.Fetch(context.Background(), "file:///etc/passwd")
	require.Error(t, err)
	assert.Equal(t, "INVALID_INPUT", appErrors.FromError(err).Code)
}

func TestFeedFetchMapsUpstreamFailure(t *testing.T) {
	svc := NewFeedService(&mockFeedParser{err: errors.New("timeout")}, config.FeedConfig{}, nil)

	_, err := svc.Fetch(context.Background(), "https://example.org/rss.xml")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "UPSTREAM_ERROR", appErr.Code)
	assert.Equal(t, 502, appErr.Status)
}
