package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

var (
	ErrBookingNotFound      = fmt.Errorf("%w: booking not found", ErrNotFound)
	ErrInvalidBookingStatus = fmt.Errorf("%w: status must be one of pending, confirmed, in_progress, completed, cancelled", ErrValidation)
)

// --- Booking DTOs ---

type CreateBookingRequest struct {
	CustomerName        string                `json:"customer_name"`
	CustomerEmail       string                `json:"customer_email"`
	CustomerPhone       string                `json:"customer_phone"`
	EventType           *string               `json:"event_type"`
	EventDate           string                `json:"event_date"`
	EventTime           *string               `json:"event_time"`
	Location            *string               `json:"location"`
	MealType            *string               `json:"meal_type"`
	Occasion            *string               `json:"occasion"`
	DietaryRestrictions *string               `json:"dietary_restrictions"`
	FoodStyle           *string               `json:"food_style"`
	AdditionalInfo      *string               `json:"additional_info"`
	GuestCount          *int                  `json:"guest_count"`
	SelectedDishes      models.SelectedDishes `json:"selected_dishes"`
	TotalAmount         *decimal.Decimal      `json:"total_amount"`
}

type UpdateBookingRequest struct {
	CustomerName        *string                `json:"customer_name"`
	CustomerEmail       *string                `json:"customer_email"`
	CustomerPhone       *string                `json:"customer_phone"`
	EventType           *string                `json:"event_type"`
	EventDate           *string                `json:"event_date"`
	EventTime           *string                `json:"event_time"`
	Location            *string                `json:"location"`
	MealType            *string                `json:"meal_type"`
	Occasion            *string                `json:"occasion"`
	DietaryRestrictions *string                `json:"dietary_restrictions"`
	FoodStyle           *string                `json:"food_style"`
	AdditionalInfo      *string                `json:"additional_info"`
	GuestCount          *int                   `json:"guest_count"`
	SelectedDishes      *models.SelectedDishes `json:"selected_dishes"`
	TotalAmount         *decimal.Decimal       `json:"total_amount"`
	Status              *string                `json:"status"`
}

// --- BookingService Interface ---
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	GetBookings(ctx context.Context, filters models.BookingFilters) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, id string, req UpdateBookingRequest) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

type bookingService struct {
	bookingRepo repositories.BookingRepository
	db          *database.DB
}

// NewBookingService creates a new instance of BookingService.
func NewBookingService(repo repositories.BookingRepository, db *database.DB) BookingService {
	return &bookingService{bookingRepo: repo, db: db}
}

// validateDishes rejects malformed order lines and returns the recomputed total.
func validateDishes(dishes models.SelectedDishes) (decimal.Decimal, error) {
	for i, d := range dishes {
		if strings.TrimSpace(d.Dish) == "" {
			return decimal.Zero, validationError("selected_dishes[%d]: dish is required", i)
		}
		if d.Quantity <= 0 {
			return decimal.Zero, validationError("selected_dishes[%d]: quantity must be positive", i)
		}
		if d.Price.IsNegative() {
			return decimal.Zero, validationError("selected_dishes[%d]: price cannot be negative", i)
		}
	}
	return dishes.Total(), nil
}

func validateCustomer(name, email, phone string) error {
	if utils.IsEmpty(name) || utils.IsEmpty(email) || utils.IsEmpty(phone) {
		return validationError("customer_name, customer_email and customer_phone are required")
	}
	if !utils.IsValidEmail(email) {
		return validationError("customer_email format is invalid")
	}
	return nil
}

func (s *bookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if err := validateCustomer(req.CustomerName, req.CustomerEmail, req.CustomerPhone); err != nil {
		return nil, err
	}
	if utils.IsEmpty(req.EventDate) {
		return nil, validationError("event_date is required")
	}
	if req.GuestCount != nil && *req.GuestCount <= 0 {
		return nil, validationError("guest_count must be positive")
	}

	b := &models.Booking{
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CustomerEmail:       strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:       strings.TrimSpace(req.CustomerPhone),
		EventType:           req.EventType,
		EventDate:           strings.TrimSpace(req.EventDate),
		EventTime:           req.EventTime,
		Location:            req.Location,
		MealType:            req.MealType,
		Occasion:            req.Occasion,
		DietaryRestrictions: req.DietaryRestrictions,
		FoodStyle:           req.FoodStyle,
		AdditionalInfo:      req.AdditionalInfo,
		GuestCount:          req.GuestCount,
		SelectedDishes:      req.SelectedDishes,
		Status:              string(models.BookingStatusPending),
	}

	if len(b.SelectedDishes) > 0 {
		total, err := validateDishes(b.SelectedDishes)
		if err != nil {
			return nil, err
		}
		b.TotalAmount = total
	} else if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, validationError("total_amount cannot be negative")
		}
		b.TotalAmount = models.RoundMoney(*req.TotalAmount)
	}

	if err := s.bookingRepo.CreateBooking(ctx, s.db, b); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return b, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.bookingRepo.GetBookingByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

func (s *bookingService) GetBookings(ctx context.Context, filters models.BookingFilters) ([]models.Booking, error) {
	if filters.Status != nil && *filters.Status != "" && !models.IsValidBookingStatus(*filters.Status) {
		return nil, ErrInvalidBookingStatus
	}
	bookings, err := s.bookingRepo.GetBookings(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id string, req UpdateBookingRequest) (*models.Booking, error) {
	b, err := s.GetBookingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !models.IsValidBookingStatus(*req.Status) {
			return nil, ErrInvalidBookingStatus
		}
		b.Status = *req.Status
	}
	if req.CustomerName != nil {
		b.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerEmail != nil {
		b.CustomerEmail = strings.TrimSpace(*req.CustomerEmail)
	}
	if req.CustomerPhone != nil {
		b.CustomerPhone = strings.TrimSpace(*req.CustomerPhone)
	}
	if err := validateCustomer(b.CustomerName, b.CustomerEmail, b.CustomerPhone); err != nil {
		return nil, err
	}
	if req.EventDate != nil {
		if utils.IsEmpty(*req.EventDate) {
			return nil, validationError("event_date cannot be empty")
		}
		b.EventDate = strings.TrimSpace(*req.EventDate)
	}

	optional := []struct {
		src *string
		dst **string
	}{
		{req.EventType, &b.EventType},
		{req.EventTime, &b.EventTime},
		{req.Location, &b.Location},
		{req.MealType, &b.MealType},
		{req.Occasion, &b.Occasion},
		{req.DietaryRestrictions, &b.DietaryRestrictions},
		{req.FoodStyle, &b.FoodStyle},
		{req.AdditionalInfo, &b.AdditionalInfo},
	}
	for _, f := range optional {
		if f.src != nil {
			*f.dst = utils.NewNullString(*f.src)
		}
	}
	if req.GuestCount != nil {
		if *req.GuestCount <= 0 {
			return nil, validationError("guest_count must be positive")
		}
		b.GuestCount = req.GuestCount
	}

	if req.SelectedDishes != nil {
		total, err := validateDishes(*req.SelectedDishes)
		if err != nil {
			return nil, err
		}
		b.SelectedDishes = *req.SelectedDishes
		b.TotalAmount = total
	} else if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, validationError("total_amount cannot be negative")
		}
		b.TotalAmount = models.RoundMoney(*req.TotalAmount)
	}

	if err := s.bookingRepo.UpdateBooking(ctx, s.db, b); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return b, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id string) error {
	if err := s.bookingRepo.DeleteBooking(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}
