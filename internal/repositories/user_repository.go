package repositories

import (
	"context"
	"fmt"
	"time"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user account database operations.
type UserRepository interface {
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// FindUserByEmail matches case-insensitively and includes the password hash.
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, executor SQLExecutor, user *models.User) error
	UpdateUser(ctx context.Context, executor SQLExecutor, user *models.User) error
	UpdateLastLogin(ctx context.Context, executor SQLExecutor, id string, at time.Time) error
	DeleteUser(ctx context.Context, executor SQLExecutor, id string) error
}

// userRepository implements the UserRepository interface.
type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, password_hash, role, is_active, last_login, created_at, updated_at`

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsActive, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUsers lists all users, newest first.
func (r *userRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Execute(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, classify(err, "listing users")
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, classify(err, "scanning user")
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "iterating users")
	}
	return users, nil
}

// GetUserByID retrieves a user by their ID.
func (r *userRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("getting user %s", id))
	}
	return u, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return nil, classify(err, "finding user by email")
	}
	return u, nil
}

// CreateUser inserts a user. The caller supplies the bcrypt hash in PasswordHash.
func (r *userRepository) CreateUser(ctx context.Context, executor SQLExecutor, u *models.User) error {
	query := `INSERT INTO users (id, first_name, last_name, email, password_hash, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	          RETURNING created_at, updated_at`

	u.ID = uuid.NewString()
	err := executor.QueryRowContext(ctx, query,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Role, u.IsActive, time.Now(),
	).Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return classify(err, "creating user")
	}
	return nil
}

// UpdateUser overwrites profile fields and the password hash.
func (r *userRepository) UpdateUser(ctx context.Context, executor SQLExecutor, u *models.User) error {
	query := `UPDATE users SET first_name = $1, last_name = $2, email = $3, password_hash = $4, role = $5,
	          is_active = $6, updated_at = $7
	          WHERE id = $8
	          RETURNING created_at, updated_at, last_login`

	err := executor.QueryRowContext(ctx, query,
		u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Role, u.IsActive, time.Now(), u.ID,
	).Scan(&u.CreatedAt, &u.UpdatedAt, &u.LastLogin)
	if err != nil {
		return classify(err, fmt.Sprintf("updating user %s", u.ID))
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, executor SQLExecutor, id string, at time.Time) error {
	res, err := executor.ExecContext(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	if err != nil {
		return classify(err, "updating last login")
	}
	return requireAffected(res, "updating last login")
}

// DeleteUser removes a user. Their blog posts keep existing with no author.
func (r *userRepository) DeleteUser(ctx context.Context, executor SQLExecutor, id string) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return classify(err, fmt.Sprintf("deleting user %s", id))
	}
	return requireAffected(res, "deleting user")
}
