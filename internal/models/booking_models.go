package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus defines the type for booking statuses
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// IsValidBookingStatus checks if the provided status string is a valid BookingStatus.
// The column itself is free text; this is the API-layer check.
func IsValidBookingStatus(status string) bool {
	switch BookingStatus(status) {
	case BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusInProgress,
		BookingStatusCompleted,
		BookingStatusCancelled:
		return true
	default:
		return false
	}
}

// Event types recorded for bookings created from the public intake forms.
const (
	EventTypeTableBooking = "table_booking"
	EventTypeCatering     = "catering"
	EventTypeCart         = "cart"
)

// SelectedDish is one line of a catering or cart order.
type SelectedDish struct {
	Dish       string          `json:"dish"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// SelectedDishes is stored as a JSONB array.
type SelectedDishes []SelectedDish

// Value implements driver.Valuer.
func (d SelectedDishes) Value() (driver.Value, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner.
func (d *SelectedDishes) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = SelectedDishes{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("selected_dishes: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*d = SelectedDishes{}
		return nil
	}
	if err := json.Unmarshal(raw, (*[]SelectedDish)(d)); err != nil {
		return errors.Join(errors.New("selected_dishes: invalid JSON"), err)
	}
	return nil
}

// Total rounds each unit price to cents, recomputes each line total and returns the order total.
func (d SelectedDishes) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range d {
		d[i].Price = RoundMoney(d[i].Price)
		d[i].TotalPrice = d[i].Price.Mul(decimal.NewFromInt(int64(d[i].Quantity)))
		total = total.Add(d[i].TotalPrice)
	}
	return total
}

// Booking is a catering, table or cart booking submitted by a customer.
type Booking struct {
	ID                  string          `json:"id" db:"id"`
	CustomerName        string          `json:"customer_name" db:"customer_name"`
	CustomerEmail       string          `json:"customer_email" db:"customer_email"`
	CustomerPhone       string          `json:"customer_phone" db:"customer_phone"`
	EventType           *string         `json:"event_type,omitempty" db:"event_type"`
	EventDate           string          `json:"event_date" db:"event_date"`
	EventTime           *string         `json:"event_time,omitempty" db:"event_time"`
	Location            *string         `json:"location,omitempty" db:"location"`
	MealType            *string         `json:"meal_type,omitempty" db:"meal_type"`
	Occasion            *string         `json:"occasion,omitempty" db:"occasion"`
	DietaryRestrictions *string         `json:"dietary_restrictions,omitempty" db:"dietary_restrictions"`
	FoodStyle           *string         `json:"food_style,omitempty" db:"food_style"`
	AdditionalInfo      *string         `json:"additional_info,omitempty" db:"additional_info"`
	GuestCount          *int            `json:"guest_count,omitempty" db:"guest_count"`
	SelectedDishes      SelectedDishes  `json:"selected_dishes" db:"selected_dishes"`
	TotalAmount         decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status              string          `json:"status" db:"status"`
	CreatedAt           time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" db:"updated_at"`
}

// BookingFilters defines the available filters for querying bookings.
type BookingFilters struct {
	Status *string `form:"status"`
}
