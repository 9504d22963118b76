package repositories

import (
	"context"
	"time"

	"restaurant_backend/internal/models"

	"github.com/google/uuid"
)

// ContactRepository stores contact-form submissions.
type ContactRepository interface {
	CreateContact(ctx context.Context, executor SQLExecutor, contact *models.Contact) error
}

type contactRepository struct{}

// NewContactRepository creates a new instance of ContactRepository.
func NewContactRepository() ContactRepository {
	return &contactRepository{}
}

func (r *contactRepository) CreateContact(ctx context.Context, executor SQLExecutor, contact *models.Contact) error {
	query := `INSERT INTO contacts (id, name, email, subject, message, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at`

	contact.ID = uuid.NewString()
	err := executor.QueryRowContext(ctx, query,
		contact.ID, contact.Name, contact.Email, contact.Subject, contact.Message, time.Now(),
	).Scan(&contact.CreatedAt)
	if err != nil {
		return classify(err, "creating contact")
	}
	return nil
}
