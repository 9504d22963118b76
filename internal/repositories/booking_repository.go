package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"

	"github.com/google/uuid"
)

// BookingRepository defines the interface for booking-related database operations.
type BookingRepository interface {
	CreateBooking(ctx context.Context, executor SQLExecutor, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	GetBookings(ctx context.Context, filters models.BookingFilters) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, executor SQLExecutor, booking *models.Booking) error
	DeleteBooking(ctx context.Context, executor SQLExecutor, id string) error
}

type bookingRepository struct {
	db *database.DB
}

// NewBookingRepository creates a new instance of BookingRepository.
func NewBookingRepository(db *database.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, customer_name, customer_email, customer_phone, event_type, event_date, event_time,
	location, meal_type, occasion, dietary_restrictions, food_style, additional_info, guest_count,
	selected_dishes, total_amount, status, created_at, updated_at`

func scanBookingRow(row scanner) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.EventType, &b.EventDate, &b.EventTime,
		&b.Location, &b.MealType, &b.Occasion, &b.DietaryRestrictions, &b.FoodStyle, &b.AdditionalInfo, &b.GuestCount,
		&b.SelectedDishes, &b.TotalAmount, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBooking inserts a new booking. Status defaults to pending.
func (r *bookingRepository) CreateBooking(ctx context.Context, executor SQLExecutor, b *models.Booking) error {
	query := `INSERT INTO bookings (id, customer_name, customer_email, customer_phone, event_type, event_date, event_time,
	              location, meal_type, occasion, dietary_restrictions, food_style, additional_info, guest_count,
	              selected_dishes, total_amount, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $18)
	          RETURNING created_at, updated_at`

	b.ID = uuid.NewString()
	if b.Status == "" {
		b.Status = string(models.BookingStatusPending)
	}
	if b.SelectedDishes == nil {
		b.SelectedDishes = models.SelectedDishes{}
	}
	err := executor.QueryRowContext(ctx, query,
		b.ID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.EventType, b.EventDate, b.EventTime,
		b.Location, b.MealType, b.Occasion, b.DietaryRestrictions, b.FoodStyle, b.AdditionalInfo, b.GuestCount,
		b.SelectedDishes, b.TotalAmount, b.Status, time.Now(),
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return classify(err, "creating booking")
	}
	return nil
}

// GetBookingByID retrieves a booking by its ID.
func (r *bookingRepository) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	b, err := scanBookingRow(r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		return nil, classify(err, fmt.Sprintf("getting booking %s", id))
	}
	return b, nil
}

// GetBookings lists bookings, newest first.
func (r *bookingRepository) GetBookings(ctx context.Context, filters models.BookingFilters) ([]models.Booking, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + bookingColumns + ` FROM bookings`)

	var args []interface{}
	if filters.Status != nil && *filters.Status != "" {
		queryBuilder.WriteString(" WHERE status = $1")
		args = append(args, *filters.Status)
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.db.Execute(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, classify(err, "listing bookings")
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, classify(err, "scanning booking")
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err, "iterating bookings")
	}
	return bookings, nil
}

// UpdateBooking overwrites the mutable columns of a booking.
func (r *bookingRepository) UpdateBooking(ctx context.Context, executor SQLExecutor, b *models.Booking) error {
	query := `UPDATE bookings SET customer_name = $1, customer_email = $2, customer_phone = $3, event_type = $4,
	              event_date = $5, event_time = $6, location = $7, meal_type = $8, occasion = $9,
	              dietary_restrictions = $10, food_style = $11, additional_info = $12, guest_count = $13,
	              selected_dishes = $14, total_amount = $15, status = $16, updated_at = $17
	          WHERE id = $18
	          RETURNING created_at, updated_at`

	err := executor.QueryRowContext(ctx, query,
		b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.EventType,
		b.EventDate, b.EventTime, b.Location, b.MealType, b.Occasion,
		b.DietaryRestrictions, b.FoodStyle, b.AdditionalInfo, b.GuestCount,
		b.SelectedDishes, b.TotalAmount, b.Status, time.Now(), b.ID,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return classify(err, fmt.Sprintf("updating booking %s", b.ID))
	}
	return nil
}

// DeleteBooking deletes a booking by its ID.
func (r *bookingRepository) DeleteBooking(ctx context.Context, executor SQLExecutor, id string) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return classify(err, fmt.Sprintf("deleting booking %s", id))
	}
	return requireAffected(res, "deleting booking")
}
