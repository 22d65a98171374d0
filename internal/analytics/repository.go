package analytics

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CreateVisitor(ctx context.Context, v *Visitor) (*Visitor, error)
	ListVisitors(ctx context.Context) ([]Visitor, error)
	CreatePageView(ctx context.Context, pv *PageView) (*PageView, error)
	ListPageViews(ctx context.Context, visitorID *int64) ([]PageView, error)

	CountVisitors(ctx context.Context) (int64, error)
	CountNewVisitors(ctx context.Context) (int64, error)
	CountPageViews(ctx context.Context) (int64, error)
	AvgTimeOnSite(ctx context.Context) (int64, error)
	TopPages(ctx context.Context, limit int) ([]PageCount, error)
	VisitorsByCountry(ctx context.Context, limit int) ([]CountryCount, error)
	DeviceStats(ctx context.Context) ([]DeviceCount, error)
	BrowserStats(ctx context.Context) ([]BrowserCount, error)
}

type postgresRepository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &postgresRepository{db: db}
}

const visitorColumns = `id, session_id, ip_address, user_agent, referrer, country, city, device, browser, os, visited_pages, time_on_site, is_returning, created_at, updated_at`

func scanVisitor(row pgx.Row, v *Visitor) error {
	return row.Scan(
		&v.ID,
		&v.SessionID,
		&v.IPAddress,
		&v.UserAgent,
		&v.Referrer,
		&v.Country,
		&v.City,
		&v.Device,
		&v.Browser,
		&v.OS,
		&v.VisitedPages,
		&v.TimeOnSite,
		&v.IsReturning,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
}

func (r *postgresRepository) CreateVisitor(ctx context.Context, v *Visitor) (*Visitor, error) {
	if v.VisitedPages == nil {
		v.VisitedPages = []string{}
	}

	query := `
		INSERT INTO visitors (session_id, ip_address, user_agent, referrer, country, city, device, browser, os, visited_pages, time_on_site, is_returning)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + visitorColumns

	var stored Visitor
	err := scanVisitor(r.db.QueryRow(ctx, query,
		v.SessionID,
		v.IPAddress,
		v.UserAgent,
		v.Referrer,
		v.Country,
		v.City,
		v.Device,
		v.Browser,
		v.OS,
		v.VisitedPages,
		v.TimeOnSite,
		v.IsReturning,
	), &stored)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert visitor: %w", err)
	}

	return &stored, nil
}

func (r *postgresRepository) ListVisitors(ctx context.Context) ([]Visitor, error) {
	query := `SELECT ` + visitorColumns + ` FROM visitors ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query visitors: %w", err)
	}
	defer rows.Close()

	visitors := make([]Visitor, 0)
	for rows.Next() {
		var v Visitor
		if err := scanVisitor(rows, &v); err != nil {
			return nil, fmt.Errorf("repository: failed to scan visitor: %w", err)
		}
		visitors = append(visitors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating visitors: %w", err)
	}

	return visitors, nil
}

const pageViewColumns = `id, visitor_id, page, title, time_spent, viewed_at`

func scanPageView(row pgx.Row, pv *PageView) error {
	return row.Scan(&pv.ID, &pv.VisitorID, &pv.Page, &pv.Title, &pv.TimeSpent, &pv.ViewedAt)
}

func (r *postgresRepository) CreatePageView(ctx context.Context, pv *PageView) (*PageView, error) {
	query := `
		INSERT INTO page_views (visitor_id, page, title, time_spent)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + pageViewColumns

	var stored PageView
	err := scanPageView(r.db.QueryRow(ctx, query, pv.VisitorID, pv.Page, pv.Title, pv.TimeSpent), &stored)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to insert page view: %w", err)
	}

	return &stored, nil
}

func (r *postgresRepository) ListPageViews(ctx context.Context, visitorID *int64) ([]PageView, error) {
	query := `SELECT ` + pageViewColumns + ` FROM page_views ORDER BY viewed_at DESC`
	args := []interface{}{}
	if visitorID != nil {
		query = `SELECT ` + pageViewColumns + ` FROM page_views WHERE visitor_id = $1 ORDER BY viewed_at DESC`
		args = append(args, *visitorID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query page views: %w", err)
	}
	defer rows.Close()

	views := make([]PageView, 0)
	for rows.Next() {
		var pv PageView
		if err := scanPageView(rows, &pv); err != nil {
			return nil, fmt.Errorf("repository: failed to scan page view: %w", err)
		}
		views = append(views, pv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating page views: %w", err)
	}

	return views, nil
}

func (r *postgresRepository) CountVisitors(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM visitors`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count visitors: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) CountNewVisitors(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM visitors WHERE is_returning = FALSE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count new visitors: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) CountPageViews(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM page_views`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to count page views: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) AvgTimeOnSite(ctx context.Context) (int64, error) {
	var avg *float64
	err := r.db.QueryRow(ctx, `SELECT avg(time_on_site) FROM visitors WHERE time_on_site IS NOT NULL`).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to average time on site: %w", err)
	}
	if avg == nil {
		return 0, nil
	}

	return int64(*avg + 0.5), nil
}

func (r *postgresRepository) TopPages(ctx context.Context, limit int) ([]PageCount, error) {
	query := `
		SELECT page, count(*)
		FROM page_views
		GROUP BY page
		ORDER BY count(*) DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query top pages: %w", err)
	}
	defer rows.Close()

	pages := make([]PageCount, 0)
	for rows.Next() {
		var pc PageCount
		if err := rows.Scan(&pc.Page, &pc.Views); err != nil {
			return nil, fmt.Errorf("repository: failed to scan top page: %w", err)
		}
		pages = append(pages, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating top pages: %w", err)
	}

	return pages, nil
}

func (r *postgresRepository) VisitorsByCountry(ctx context.Context, limit int) ([]CountryCount, error) {
	query := `
		SELECT country, count(*)
		FROM visitors
		WHERE country IS NOT NULL
		GROUP BY country
		ORDER BY count(*) DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query visitors by country: %w", err)
	}
	defer rows.Close()

	countries := make([]CountryCount, 0)
	for rows.Next() {
		var cc CountryCount
		if err := rows.Scan(&cc.Country, &cc.Count); err != nil {
			return nil, fmt.Errorf("repository: failed to scan country bucket: %w", err)
		}
		countries = append(countries, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating country buckets: %w", err)
	}

	return countries, nil
}

func (r *postgresRepository) DeviceStats(ctx context.Context) ([]DeviceCount, error) {
	query := `
		SELECT device, count(*)
		FROM visitors
		WHERE device IS NOT NULL
		GROUP BY device
		ORDER BY count(*) DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query device stats: %w", err)
	}
	defer rows.Close()

	devices := make([]DeviceCount, 0)
	for rows.Next() {
		var dc DeviceCount
		if err := rows.Scan(&dc.Device, &dc.Count); err != nil {
			return nil, fmt.Errorf("repository: failed to scan device bucket: %w", err)
		}
		devices = append(devices, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating device buckets: %w", err)
	}

	return devices, nil
}

func (r *postgresRepository) BrowserStats(ctx context.Context) ([]BrowserCount, error) {
	query := `
		SELECT browser, count(*)
		FROM visitors
		WHERE browser IS NOT NULL
		GROUP BY browser
		ORDER BY count(*) DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query browser stats: %w", err)
	}
	defer rows.Close()

	browsers := make([]BrowserCount, 0)
	for rows.Next() {
		var bc BrowserCount
		if err := rows.Scan(&bc.Browser, &bc.Count); err != nil {
			return nil, fmt.Errorf("repository: failed to scan browser bucket: %w", err)
		}
		browsers = append(browsers, bc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating browser buckets: %w", err)
	}

	return browsers, nil
}
