package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SitemapEntry is the minimum needed to list a published post in the sitemap.
type SitemapEntry struct {
	Slug      string
	UpdatedAt time.Time
}

// BlogRepository defines the interface for blog post and blog category database operations.
type BlogRepository interface {
	GetPosts(ctx context.Context, filters models.BlogPostFilters) ([]models.BlogPost, int, error)
	GetPostByID(ctx context.Context, id string) (*models.BlogPost, error)
	// ViewPublishedPost increments view_count and returns the updated post in one statement.
	ViewPublishedPost(ctx context.Context, slug string) (*models.BlogPost, error)
	CreatePost(ctx context.Context, executor SQLExecutor, post *models.BlogPost) error
	UpdatePost(ctx context.Context, executor SQLExecutor, post *models.BlogPost) error
	DeletePost(ctx context.Context, executor SQLExecutor, id string) error
	GetPublishedSlugs(ctx context.Context) ([]SitemapEntry, error)

	GetCategories(ctx context.Context) ([]models.BlogCategory, error)
	GetCategoryByID(ctx context.Context, id string) (*models.BlogCategory, error)
	CreateCategory(ctx context.Context, executor SQLExecutor, cat *models.BlogCategory) error
	UpdateCategory(ctx context.Context, executor SQLExecutor, cat *models.BlogCategory) error
	DeleteCategory(ctx context.Context, executor SQLExecutor, id string) error
}

type blogRepository struct {
	db *database.DB
}

// NewBlogRepository creates a new instance of BlogRepository.
func NewBlogRepository(db *database.DB) BlogRepository {
	return &blogRepository{db: db}
}

const postColumns = `p.id, p.title, p.slug, p.excerpt, p.content, p.featured_image, p.category_id, bc.name, bc.slug,
	p.author_id, NULLIF(TRIM(CONCAT(u.first_name, ' ', u.last_name)), ''), p.status, p.seo_title, p.seo_description,
	p.seo_keywords, p.view_count, p.reading_time, p.tags, p.published_at, p.created_at, p.updated_at`

const postJoins = `LEFT JOIN blog_categories bc ON bc.id = p.category_id
	LEFT JOIN users u ON u.id = p.author_id`

func scanPost(row scanner, extra ...interface{}) (*models.BlogPost, error) {
	var p models.BlogPost
	var tags pq.StringArray
	dest := []interface{}{
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.FeaturedImage, &p.CategoryID, &p.CategoryName, &p.CategorySlug,
		&p.AuthorID, &p.AuthorName, &p.Status, &p.SEOTitle, &p.SEODescription,
		&p.SEOKeywords, &p.ViewCount, &p.ReadingTime, &tags, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	p.Tags = []string(tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

// GetPosts returns one page of posts plus the total matching count.
// Public listings only see published posts, newest publication first.
func (r *blogRepository) GetPosts(ctx context.Context, filters models.BlogPostFilters) ([]models.BlogPost, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + postColumns + `, COUNT(*) OVER() AS total_count FROM blog_posts p ` + postJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.PublicOnly {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argCount))
		args = append(args, models.PostStatusPublished)
		argCount++
	} else if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.CategorySlug != nil && *filters.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("bc.slug = $%d", argCount))
		args = append(args, *filters.CategorySlug)
		argCount++
	}
	if filters.Search != nil && *filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(p.title ILIKE $%d OR p.excerpt ILIKE $%d OR p.content ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, "%"+*filters.Search+"%")
		argCount++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY p.published_at DESC NULLS LAST, p.created_at DESC")

	if filters.Limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.Limit)
		argCount++
		if filters.Page > 1 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.Limit)
		}
	}

	rows, err := r.db.Execute(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, classify(err, "listing blog posts")
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	total := 0
	for rows.Next() {
		p, err := scanPost(rows, &total)
		if err != nil {
			return nil, 0, classify(err, "scanning blog post")
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify(err, "iterating blog posts")
	}

	// A page past the end has no rows to carry the window count.
	if len(posts) == 0 && filters.Page > 1 && filters.Limit > 0 {
		countQuery := `SELECT COUNT(*) FROM blog_posts p ` + postJoins
		if len(conditions) > 0 {
			countQuery += " WHERE " + strings.Join(conditions, " AND ")
		}
		countArgs := args[:len(args)-2]
		if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			return nil, 0, classify(err, "counting blog posts")
		}
	}
	return posts, total, nil
}

// GetPostByID retrieves a post regardless of status.
func (r *blogRepository) GetPostByID(ctx context.Context, id string) (*models.BlogPost, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM blog_posts p `+postJoins+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("getting blog post %s", id))
	}
	return p, nil
}

func (r *blogRepository) ViewPublishedPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	query := `WITH p AS (
	              UPDATE blog_posts SET view_count = view_count + 1
	              WHERE slug = $1 AND status = $2
	              RETURNING *
	          )
	          SELECT ` + postColumns + ` FROM p ` + postJoins

	p, err := scanPost(r.db.QueryRowContext(ctx, query, slug, models.PostStatusPublished))
	if err != nil {
		return nil, classify(err, "viewing blog post")
	}
	return p, nil
}

// CreatePost inserts a post. Slug collisions surface as ErrDuplicateKey.
func (r *blogRepository) CreatePost(ctx context.Context, executor SQLExecutor, p *models.BlogPost) error {
	query := `INSERT INTO blog_posts (id, title, slug, excerpt, content, featured_image, category_id, author_id, status,
	              seo_title, seo_description, seo_keywords, reading_time, tags, published_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
	          RETURNING view_count, created_at, updated_at`

	p.ID = uuid.NewString()
	err := executor.QueryRowContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage, p.CategoryID, p.AuthorID, p.Status,
		p.SEOTitle, p.SEODescription, p.SEOKeywords, p.ReadingTime, pq.StringArray(p.Tags), p.PublishedAt, time.Now(),
	).Scan(&p.ViewCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return classify(err, "creating blog post")
	}
	return nil
}

// UpdatePost overwrites the editable columns. view_count is never written here.
func (r *blogRepository) UpdatePost(ctx context.Context, executor SQLExecutor, p *models.BlogPost) error {
	query := `UPDATE blog_posts SET title = $1, slug = $2, excerpt = $3, content = $4, featured_image = $5,
	              category_id = $6, status = $7, seo_title = $8, seo_description = $9, seo_keywords = $10,
	              reading_time = $11, tags = $12, published_at = $13, updated_at = $14
	          WHERE id = $15
	          RETURNING view_count, created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.Excerpt, p.Content, p.FeaturedImage,
		p.CategoryID, p.Status, p.SEOTitle, p.SEODescription, p.SEOKeywords,
		p.ReadingTime, pq.StringArray(p.Tags), p.PublishedAt, time.Now(), p.ID,
	).Scan(&p.ViewCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return classify(err, fmt.Sprintf("updating blog post %s", p.ID))
	}
	return nil
}

func (r *blogRepository) DeletePost(ctx context.Context, executor SQLExecutor, id string) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return classify(err, fmt.Sprintf("deleting blog post %s", id))
	}
	return requireAffected(res, "deleting blog post")
}

// GetPublishedSlugs lists published posts for the sitemap.
func (r *blogRepository) GetPublishedSlugs(ctx context.Context) ([]SitemapEntry, error) {
	rows, err := r.db.Execute(ctx,
		`SELECT slug, updated_at FROM blog_posts WHERE status = $1 ORDER BY published_at DESC NULLS LAST`,
		models.PostStatusPublished,
	)
	if err != nil {
		return nil, classify(err, "listing published slugs")
	}
	defer rows.Close()

	entries := []SitemapEntry{}
	for rows.Next() {
		var e SitemapEntry
		if err := rows.Scan(&e.Slug, &e.UpdatedAt); err != nil {
			return nil, classify(err, "scanning published slug")
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "iterating published slugs")
	}
	return entries, nil
}

// --- Blog categories ---

const blogCategoryColumns = `bc.id, bc.name, bc.slug, bc.description, bc.color, bc.display_order, bc.created_at, bc.updated_at`

func scanBlogCategory(row scanner, extra ...interface{}) (*models.BlogCategory, error) {
	var cat models.BlogCategory
	dest := []interface{}{
		&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Color, &cat.DisplayOrder, &cat.CreatedAt, &cat.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetCategories lists blog categories with the number of published posts in each.
func (r *blogRepository) GetCategories(ctx context.Context) ([]models.BlogCategory, error) {
	query := `SELECT ` + blogCategoryColumns + `, COUNT(p.id)
	          FROM blog_categories bc
	          LEFT JOIN blog_posts p ON p.category_id = bc.id AND p.status = $1
	          GROUP BY bc.id
	          ORDER BY bc.display_order, bc.name`

	rows, err := r.db.Execute(ctx, query, models.PostStatusPublished)
	if err != nil {
		return nil, classify(err, "listing blog categories")
	}
	defer rows.Close()

	categories := []models.BlogCategory{}
	for rows.Next() {
		var count int
		cat, err := scanBlogCategory(rows, &count)
		if err != nil {
			return nil, classify(err, "scanning blog category")
		}
		cat.PostCount = &count
		categories = append(categories, *cat)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "iterating blog categories")
	}
	return categories, nil
}

func (r *blogRepository) GetCategoryByID(ctx context.Context, id string) (*models.BlogCategory, error) {
	cat, err := scanBlogCategory(r.db.QueryRowContext(ctx, `SELECT `+blogCategoryColumns+` FROM blog_categories bc WHERE bc.id = $1`, id))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("getting blog category %s", id))
	}
	return cat, nil
}

func (r *blogRepository) CreateCategory(ctx context.Context, executor SQLExecutor, cat *models.BlogCategory) error {
	query := `INSERT INTO blog_categories (id, name, slug, description, color, display_order, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          RETURNING created_at, updated_at`

	cat.ID = uuid.NewString()
	err := executor.QueryRowContext(ctx, query,
		cat.ID, cat.Name, cat.Slug, cat.Description, cat.Color, cat.DisplayOrder, time.Now(),
	).Scan(&cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return classify(err, "creating blog category")
	}
	return nil
}

func (r *blogRepository) UpdateCategory(ctx context.Context, executor SQLExecutor, cat *models.BlogCategory) error {
	query := `UPDATE blog_categories SET name = $1, slug = $2, description = $3, color = $4, display_order = $5, updated_at = $6
	          WHERE id = $7
	          RETURNING created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		cat.Name, cat.Slug, cat.Description, cat.Color, cat.DisplayOrder, time.Now(), cat.ID,
	).Scan(&cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return classify(err, fmt.Sprintf("updating blog category %s", cat.ID))
	}
	return nil
}

// DeleteCategory removes a blog category. Its posts become uncategorised.
func (r *blogRepository) DeleteCategory(ctx context.Context, executor SQLExecutor, id string) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM blog_categories WHERE id = $1`, id)
	if err != nil {
		return classify(err, fmt.Sprintf("deleting blog category %s", id))
	}
	return requireAffected(res, "deleting blog category")
}
