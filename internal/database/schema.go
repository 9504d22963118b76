package database

import (
	"context"
	"errors"
	"fmt"

	"restaurant_backend/pkg/utils"

	"github.com/lib/pq"
)

// schemaStatements are applied in order at every startup.
// Each one is either guarded with IF NOT EXISTS or fails with an "already exists" class error on rerun.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'admin',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		last_login TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (LOWER(email))`,

	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL CHECK (name <> ''),
		description TEXT,
		color TEXT NOT NULL DEFAULT '#000000',
		icon TEXT,
		image_path TEXT,
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS menu_items (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		price NUMERIC(10,2) NOT NULL,
		category_id UUID,
		image_path TEXT,
		available BOOLEAN NOT NULL DEFAULT TRUE,
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE menu_items ADD CONSTRAINT menu_items_price_check CHECK (price >= 0)`,
	`ALTER TABLE menu_items ADD CONSTRAINT menu_items_category_id_fkey
		FOREIGN KEY (category_id) REFERENCES categories (id) ON DELETE RESTRICT`,
	`CREATE INDEX IF NOT EXISTS menu_items_category_id_idx ON menu_items (category_id)`,

	`CREATE TABLE IF NOT EXISTS gallery_images (
		id UUID PRIMARY KEY,
		title TEXT,
		description TEXT,
		image_path TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'food',
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		file_size BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id UUID PRIMARY KEY,
		customer_name TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		customer_phone TEXT NOT NULL,
		event_type TEXT,
		event_date TEXT NOT NULL,
		event_time TEXT,
		location TEXT,
		meal_type TEXT,
		occasion TEXT,
		dietary_restrictions TEXT,
		food_style TEXT,
		additional_info TEXT,
		guest_count INTEGER,
		selected_dishes JSONB NOT NULL DEFAULT '[]'::jsonb,
		total_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS bookings_status_idx ON bookings (status)`,

	`CREATE TABLE IF NOT EXISTS blog_categories (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL,
		description TEXT,
		color TEXT NOT NULL DEFAULT '#000000',
		display_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE blog_categories ADD CONSTRAINT blog_categories_name_key UNIQUE (name)`,
	`ALTER TABLE blog_categories ADD CONSTRAINT blog_categories_slug_key UNIQUE (slug)`,

	`CREATE TABLE IF NOT EXISTS blog_posts (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		excerpt TEXT,
		content TEXT NOT NULL,
		featured_image TEXT,
		category_id UUID REFERENCES blog_categories (id) ON DELETE SET NULL,
		author_id UUID REFERENCES users (id) ON DELETE SET NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		seo_title TEXT,
		seo_description TEXT,
		seo_keywords TEXT,
		view_count INTEGER NOT NULL DEFAULT 0,
		reading_time INTEGER NOT NULL DEFAULT 1,
		tags TEXT[] NOT NULL DEFAULT '{}',
		published_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`ALTER TABLE blog_posts ADD CONSTRAINT blog_posts_slug_key UNIQUE (slug)`,
	`CREATE INDEX IF NOT EXISTS blog_posts_status_published_idx ON blog_posts (status, published_at DESC)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		sid TEXT PRIMARY KEY,
		sess JSONB NOT NULL,
		expire TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sessions_expire_idx ON sessions (expire)`,

	`CREATE TABLE IF NOT EXISTS contacts (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT,
		message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// alreadyExistsCodes is the class of PostgreSQL errors raised when a schema object is re-created.
var alreadyExistsCodes = map[pq.ErrorCode]bool{
	"42P07": true, // duplicate_table (also duplicate index/relation)
	"42710": true, // duplicate_object (constraints)
	"42701": true, // duplicate_column
	"42P06": true, // duplicate_schema
	"42723": true, // duplicate_function
}

// IsAlreadyExists reports whether err is an "already exists" class schema error.
func IsAlreadyExists(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return alreadyExistsCodes[pqErr.Code]
	}
	return false
}

// InitSchema applies the schema idempotently. Any error outside the
// "already exists" class is returned and should abort boot.
func (db *DB) InitSchema(ctx context.Context) error {
	applied, skipped := 0, 0
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			if IsAlreadyExists(err) {
				skipped++
				continue
			}
			return fmt.Errorf("applying schema statement %d: %w", i+1, err)
		}
		applied++
	}
	utils.LogInfo("Database schema ready", map[string]interface{}{"applied": applied, "already_present": skipped})
	return nil
}
