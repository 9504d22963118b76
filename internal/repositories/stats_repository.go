package repositories

import (
	"context"
	"fmt"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"
)

// StatsRepository runs the dashboard counters.
type StatsRepository interface {
	GetSummary(ctx context.Context) (*models.StatsSummary, error)
}

type statsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a new instance of StatsRepository.
func NewStatsRepository(db *database.DB) StatsRepository {
	return &statsRepository{db: db}
}

// GetSummary runs one COUNT per counter. Any failing query fails the whole summary.
func (r *statsRepository) GetSummary(ctx context.Context) (*models.StatsSummary, error) {
	summary := &models.StatsSummary{}
	counters := []struct {
		name  string
		query string
		dest  *int
	}{
		{"categories", `SELECT COUNT(*) FROM categories`, &summary.Categories},
		{"menu_items", `SELECT COUNT(*) FROM menu_items`, &summary.MenuItems},
		{"gallery_images", `SELECT COUNT(*) FROM gallery_images`, &summary.GalleryImages},
		{"users", `SELECT COUNT(*) FROM users`, &summary.Users},
		{"bookings", `SELECT COUNT(*) FROM bookings`, &summary.Bookings},
		{"pending_bookings", `SELECT COUNT(*) FROM bookings WHERE status = 'pending'`, &summary.PendingBookings},
		{"published_posts", `SELECT COUNT(*) FROM blog_posts WHERE status = 'published'`, &summary.PublishedPosts},
	}
	for _, c := range counters {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, classify(err, fmt.Sprintf("counting %s", c.name))
		}
	}
	return summary, nil
}
