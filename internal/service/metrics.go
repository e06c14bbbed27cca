package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jjenkins/gazette/internal/model"
)

// MetricsService calculates and stores archive-wide metrics
type MetricsService struct {
	db *sql.DB
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(db *sql.DB) *MetricsService {
	return &MetricsService{db: db}
}

// SystemMetrics represents calculated archive-wide metrics
type SystemMetrics struct {
	TotalNotices    int
	TotalWords      int
	TotalImports    int
	AverageWords    float64
	ByCategory      map[model.Category]int
	TopCompany      string
	TopCompanyCount int
}

// CalculateAndStore calculates archive metrics and stores them
func (m *MetricsService) CalculateAndStore(ctx context.Context) (*SystemMetrics, error) {
	metrics := &SystemMetrics{ByCategory: make(map[model.Category]int)}

	noticeQuery := `
		SELECT
			COUNT(*) as total_notices,
			COALESCE(SUM(word_count), 0) as total_words
		FROM notices
	`
	err := m.db.QueryRowContext(ctx, noticeQuery).Scan(
		&metrics.TotalNotices,
		&metrics.TotalWords,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate notice metrics: %w", err)
	}

	if metrics.TotalNotices > 0 {
		metrics.AverageWords = float64(metrics.TotalWords) / float64(metrics.TotalNotices)
	}

	err = m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM imports`).Scan(&metrics.TotalImports)
	if err != nil {
		return nil, fmt.Errorf("failed to count imports: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM notices
		WHERE category IS NOT NULL
		GROUP BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		metrics.ByCategory[model.Category(category)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Most frequent company among notices that name one
	topCompanyQuery := `
		SELECT fields->>'empresa', COUNT(*)
		FROM notices
		WHERE COALESCE(TRIM(fields->>'empresa'), '') <> ''
		GROUP BY fields->>'empresa'
		ORDER BY COUNT(*) DESC
		LIMIT 1
	`
	err = m.db.QueryRowContext(ctx, topCompanyQuery).Scan(
		&metrics.TopCompany,
		&metrics.TopCompanyCount,
	)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to find top company: %w", err)
	}

	if err := m.storeMetric(ctx, "total_notices", fmt.Sprintf("%d", metrics.TotalNotices)); err != nil {
		return nil, err
	}
	if err := m.storeMetric(ctx, "total_words", fmt.Sprintf("%d", metrics.TotalWords)); err != nil {
		return nil, err
	}
	if err := m.storeMetric(ctx, "total_imports", fmt.Sprintf("%d", metrics.TotalImports)); err != nil {
		return nil, err
	}
	if err := m.storeMetric(ctx, "average_words", fmt.Sprintf("%.2f", metrics.AverageWords)); err != nil {
		return nil, err
	}
	if err := m.storeMetric(ctx, "top_company", metrics.TopCompany); err != nil {
		return nil, err
	}
	for _, c := range model.Categories {
		if err := m.storeMetric(ctx, "category_"+string(c), fmt.Sprintf("%d", metrics.ByCategory[c])); err != nil {
			return nil, err
		}
	}

	return metrics, nil
}

// storeMetric stores a single metric value
func (m *MetricsService) storeMetric(ctx context.Context, name, value string) error {
	query := `
		INSERT INTO metrics (metric_name, metric_value, calculated_at)
		VALUES ($1, $2, $3)
	`

	_, err := m.db.ExecContext(ctx, query, name, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store metric %s: %w", name, err)
	}

	return nil
}

// GetLatestMetrics retrieves the most recent archive metrics
func (m *MetricsService) GetLatestMetrics(ctx context.Context) (map[string]string, error) {
	query := `
		SELECT DISTINCT ON (metric_name) metric_name, metric_value
		FROM metrics
		ORDER BY metric_name, calculated_at DESC
	`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}
	defer rows.Close()

	metrics := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		metrics[name] = value
	}

	return metrics, rows.Err()
}
