package service

import (
	"context"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/eduboost/course-portal-api/internal/dto"
	"github.com/eduboost/course-portal-api/pkg/config"
	appErrors "github.com/eduboost/course-portal-api/pkg/errors"
)

type feedParser interface {
	ParseURLWithContext(feedURL string, ctx context.Context) (*gofeed.Feed, error)
}

// FeedService fetches and normalizes an RSS/Atom feed for the course
// news panel. Parsing happens server side so the browser never deals
// with CORS or XML.
type FeedService struct {
	parser feedParser
	cfg    config.FeedConfig
	logger *zap.Logger
}

// NewFeedService constructs the service. A nil parser gets a default
// gofeed parser.
func NewFeedService(parser feedParser, cfg config.FeedConfig, logger *zap.Logger) *FeedService {
	if parser == nil {
		parser = gofeed.NewParser()
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedService{parser: parser, cfg: cfg, logger: logger}
}

// Fetch downloads, parses and truncates the feed at the given URL.
func (s *FeedService) Fetch(ctx context.Context, feedURL string) (dto.FeedResponse, error) {
	if !isValidHTTPURL(feedURL) {
		return dto.FeedResponse{}, appErrors.Clone(appErrors.ErrInvalidInput, `query parameter "url" must be an absolute http(s) URL`)
	}

	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		s.logger.Warn("feed fetch failed", zap.String("url", feedURL), zap.Error(err))
		return dto.FeedResponse{}, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to fetch or parse feed")
	}

	items := make([]dto.FeedItem, 0, s.cfg.MaxItems)
	for _, entry := range feed.Items {
		if len(items) == s.cfg.MaxItems {
			break
		}
		if entry == nil {
			continue
		}
		items = append(items, dto.FeedItem{
			Title:     entry.Title,
			Link:      entry.Link,
			Published: entry.PublishedParsed,
			Summary:   entry.Description,
		})
	}
	return dto.FeedResponse{Title: feed.Title, Items: items}, nil
}
