package analytics

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
)

// topBuckets caps the top-pages and country breakdowns in the overview.
const topBuckets = 10

type Service interface {
	TrackVisitor(ctx context.Context, v *Visitor) (*Visitor, error)
	ListVisitors(ctx context.Context) ([]Visitor, error)
	TrackPageView(ctx context.Context, pv *PageView) (*PageView, error)
	ListPageViews(ctx context.Context, visitorID *int64) ([]PageView, error)
	Overview(ctx context.Context) (*Overview, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// TrackVisitor stores a visitor row, generating a session id when the caller
// did not send one.
func (s *service) TrackVisitor(ctx context.Context, v *Visitor) (*Visitor, error) {
	if v.SessionID == "" {
		sessionID, err := uuid.NewV4()
		if err != nil {
			return nil, fmt.Errorf("service: failed to generate visitor session id: %w", err)
		}
		v.SessionID = "session_" + sessionID.String()
	}

	stored, err := s.repo.CreateVisitor(ctx, v)
	if err != nil {
		log.Error().Err(err).Str("session_id", v.SessionID).Msg("service: failed to create visitor")
		return nil, fmt.Errorf("service: failed to create visitor: %w", err)
	}

	return stored, nil
}

func (s *service) ListVisitors(ctx context.Context) ([]Visitor, error) {
	visitors, err := s.repo.ListVisitors(ctx)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list visitors")
		return nil, fmt.Errorf("service: failed to list visitors: %w", err)
	}

	return visitors, nil
}

func (s *service) TrackPageView(ctx context.Context, pv *PageView) (*PageView, error) {
	stored, err := s.repo.CreatePageView(ctx, pv)
	if err != nil {
		log.Error().Err(err).Str("page", pv.Page).Msg("service: failed to create page view")
		return nil, fmt.Errorf("service: failed to create page view: %w", err)
	}

	return stored, nil
}

func (s *service) ListPageViews(ctx context.Context, visitorID *int64) ([]PageView, error) {
	views, err := s.repo.ListPageViews(ctx, visitorID)
	if err != nil {
		log.Error().Err(err).Msg("service: failed to list page views")
		return nil, fmt.Errorf("service: failed to list page views: %w", err)
	}

	return views, nil
}

// Overview composes the aggregate counters. Each aggregate is its own query.
func (s *service) Overview(ctx context.Context) (*Overview, error) {
	totalVisitors, err := s.repo.CountVisitors(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build analytics overview: %w", err)
	}

	uniqueVisitors, err := s.repo.CountNewVisitors(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build analytics overview: %w", err)
	}

	pageViews, err := s.repo.CountPageViews(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build analytics overview: %w", err)
	}

	avgTimeOnSite, err := s.repo.AvgTimeOnSite(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build analytics overview: %w", err)
	}

	topPages, err := s.repo.TopPages(ctx, topBuckets)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build analytics overview: %w", err)
	}

	byCountry, err := s.repo.VisitorsByCountry(ctx, topBuckets)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build analytics overview: %w", err)
	}

	deviceStats, err := s.repo.DeviceStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build analytics overview: %w", err)
	}

	browserStats, err := s.repo.BrowserStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to build analytics overview: %w", err)
	}

	return &Overview{
		TotalVisitors:     totalVisitors,
		UniqueVisitors:    uniqueVisitors,
		PageViews:         pageViews,
		AvgTimeOnSite:     avgTimeOnSite,
		TopPages:          topPages,
		VisitorsByCountry: byCountry,
		DeviceStats:       deviceStats,
		BrowserStats:      browserStats,
	}, nil
}
