package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"restaurant_backend/internal/database"
	"restaurant_backend/internal/mailer"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/pkg/utils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// --- Notification DTOs ---

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type TableBookingRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	People          int    `json:"people"`
	Occasion        string `json:"occasion"`
	SpecialRequests string `json:"special_requests"`
}

type CateringInquiryRequest struct {
	CustomerName        string                `json:"customer_name"`
	CustomerEmail       string                `json:"customer_email"`
	CustomerPhone       string                `json:"customer_phone"`
	EventType           string                `json:"event_type"`
	EventDate           string                `json:"event_date"`
	EventTime           string                `json:"event_time"`
	Location            string                `json:"location"`
	GuestCount          *int                  `json:"guest_count"`
	MealType            string                `json:"meal_type"`
	Occasion            string                `json:"occasion"`
	DietaryRestrictions string                `json:"dietary_restrictions"`
	FoodStyle           string                `json:"food_style"`
	AdditionalInfo      string                `json:"additional_info"`
	SelectedDishes      models.SelectedDishes `json:"selected_dishes"`
}

type CartBookingRequest struct {
	CustomerName   string                `json:"customer_name"`
	CustomerEmail  string                `json:"customer_email"`
	CustomerPhone  string                `json:"customer_phone"`
	EventDate      string                `json:"event_date"`
	EventTime      string                `json:"event_time"`
	Location       string                `json:"location"`
	GuestCount     *int                  `json:"guest_count"`
	AdditionalInfo string                `json:"additional_info"`
	SelectedDishes models.SelectedDishes `json:"selected_dishes"`
}

// NotificationResult is returned to the public forms. Booking is nil when persistence failed.
type NotificationResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Booking *models.Booking `json:"booking,omitempty"`
}

// --- NotificationService Interface ---

// NotificationService emails a public form submission to the restaurant, then
// records it. The email is the success signal: a failed send fails the request
// before anything is stored, a failed store is only logged.
type NotificationService interface {
	SubmitContact(ctx context.Context, req ContactRequest) (*NotificationResult, error)
	SubmitTableBooking(ctx context.Context, req TableBookingRequest) (*NotificationResult, error)
	SubmitCateringInquiry(ctx context.Context, req CateringInquiryRequest) (*NotificationResult, error)
	SubmitCartBooking(ctx context.Context, req CartBookingRequest) (*NotificationResult, error)
}

type notificationService struct {
	mailer      mailer.Mailer
	contactRepo repositories.ContactRepository
	bookingRepo repositories.BookingRepository
	db          *database.DB
	inbox       string
}

// NewNotificationService creates a new instance of NotificationService. inbox receives every notification.
func NewNotificationService(m mailer.Mailer, contactRepo repositories.ContactRepository, bookingRepo repositories.BookingRepository, db *database.DB, inbox string) NotificationService {
	return &notificationService{
		mailer:      m,
		contactRepo: contactRepo,
		bookingRepo: bookingRepo,
		db:          db,
		inbox:       inbox,
	}
}

// dispatch renders and sends; any failure is an ErrDispatch.
func (s *notificationService) dispatch(ctx context.Context, template, subject, replyTo string, data mailer.Notification) error {
	body, err := mailer.Render(template, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	msg := mailer.Message{To: s.inbox, ReplyTo: replyTo, Subject: subject, Body: body}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}
	return nil
}

// persistBooking stores a booking best-effort and returns nil on failure.
func (s *notificationService) persistBooking(ctx context.Context, b *models.Booking) *models.Booking {
	if err := s.bookingRepo.CreateBooking(ctx, s.db, b); err != nil {
		utils.LogError(err, "Notification sent but booking could not be saved", map[string]interface{}{
			"customer_email": b.CustomerEmail,
			"event_type":     utils.StringValue(b.EventType),
		})
		return nil
	}
	return b
}

func (s *notificationService) SubmitContact(ctx context.Context, req ContactRequest) (*NotificationResult, error) {
	if utils.IsEmpty(req.Name) || utils.IsEmpty(req.Email) || utils.IsEmpty(req.Message) {
		return nil, validationError("name, email and message are required")
	}
	if !utils.IsValidEmail(req.Email) {
		return nil, validationError("email format is invalid")
	}

	subject := "New contact message"
	if !utils.IsEmpty(req.Subject) {
		subject += ": " + strings.TrimSpace(req.Subject)
	}
	data := mailer.Notification{
		Heading: "New contact message",
		Fields: []mailer.Field{
			{Label: "Name", Value: req.Name},
			{Label: "Email", Value: req.Email},
			{Label: "Subject", Value: req.Subject},
		},
		Message: req.Message,
	}
	if err := s.dispatch(ctx, mailer.TemplateContact, subject, req.Email, data); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: utils.NewNullString(req.Subject),
		Message: req.Message,
	}
	if err := s.contactRepo.CreateContact(ctx, s.db, contact); err != nil {
		utils.LogError(err, "Contact email sent but submission could not be saved", map[string]interface{}{"email": contact.Email})
	}
	return &NotificationResult{Success: true, Message: "Thank you for your message. We will get back to you soon."}, nil
}

func (s *notificationService) SubmitTableBooking(ctx context.Context, req TableBookingRequest) (*NotificationResult, error) {
	if err := validateCustomer(req.Name, req.Email, req.Phone); err != nil {
		return nil, err
	}
	if utils.IsEmpty(req.Date) || utils.IsEmpty(req.Time) {
		return nil, validationError("date and time are required")
	}
	if req.People <= 0 {
		return nil, validationError("people must be at least 1")
	}

	data := mailer.Notification{
		Heading: "New table reservation",
		Fields: []mailer.Field{
			{Label: "Name", Value: req.Name},
			{Label: "Email", Value: req.Email},
			{Label: "Phone", Value: req.Phone},
			{Label: "Date", Value: req.Date},
			{Label: "Time", Value: req.Time},
			{Label: "Guests", Value: strconv.Itoa(req.People)},
			{Label: "Occasion", Value: req.Occasion},
		},
		Message: req.SpecialRequests,
	}
	subject := fmt.Sprintf("Table reservation: %s, %s at %s (%d guests)", req.Name, req.Date, req.Time, req.People)
	if err := s.dispatch(ctx, mailer.TemplateBooking, subject, req.Email, data); err != nil {
		return nil, err
	}

	eventType := models.EventTypeTableBooking
	people := req.People
	booking := s.persistBooking(ctx, &models.Booking{
		CustomerName:   strings.TrimSpace(req.Name),
		CustomerEmail:  strings.TrimSpace(req.Email),
		CustomerPhone:  strings.TrimSpace(req.Phone),
		EventType:      &eventType,
		EventDate:      strings.TrimSpace(req.Date),
		EventTime:      utils.NewNullString(req.Time),
		Occasion:       utils.NewNullString(req.Occasion),
		AdditionalInfo: utils.NewNullString(req.SpecialRequests),
		GuestCount:     &people,
		Status:         string(models.BookingStatusPending),
	})
	return &NotificationResult{Success: true, Message: "Your table request has been received. We will confirm shortly.", Booking: booking}, nil
}

func dishLines(dishes models.SelectedDishes) []mailer.Dish {
	lines := make([]mailer.Dish, 0, len(dishes))
	for _, d := range dishes {
		lines = append(lines, mailer.Dish{Name: d.Dish, Quantity: d.Quantity, Price: d.Price, Total: d.TotalPrice})
	}
	return lines
}

func guestsLabel(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func (s *notificationService) SubmitCateringInquiry(ctx context.Context, req CateringInquiryRequest) (*NotificationResult, error) {
	if err := validateCustomer(req.CustomerName, req.CustomerEmail, req.CustomerPhone); err != nil {
		return nil, err
	}
	if utils.IsEmpty(req.EventDate) {
		return nil, validationError("event_date is required")
	}
	if req.GuestCount != nil && *req.GuestCount <= 0 {
		return nil, validationError("guest_count must be positive")
	}
	total, err := validateDishes(req.SelectedDishes)
	if err != nil {
		return nil, err
	}

	eventLabel := "Event"
	if !utils.IsEmpty(req.EventType) {
		eventLabel = cases.Title(language.English).String(strings.ReplaceAll(strings.TrimSpace(req.EventType), "_", " "))
	}
	data := mailer.Notification{
		Heading: "New catering inquiry",
		Fields: []mailer.Field{
			{Label: "Name", Value: req.CustomerName},
			{Label: "Email", Value: req.CustomerEmail},
			{Label: "Phone", Value: req.CustomerPhone},
			{Label: "Event type", Value: eventLabel},
			{Label: "Date", Value: req.EventDate},
			{Label: "Time", Value: req.EventTime},
			{Label: "Location", Value: req.Location},
			{Label: "Guests", Value: guestsLabel(req.GuestCount)},
			{Label: "Meal type", Value: req.MealType},
			{Label: "Occasion", Value: req.Occasion},
			{Label: "Dietary restrictions", Value: req.DietaryRestrictions},
			{Label: "Food style", Value: req.FoodStyle},
		},
		Message: req.AdditionalInfo,
		Dishes:  dishLines(req.SelectedDishes),
		Total:   total,
	}
	subject := fmt.Sprintf("Catering inquiry: %s on %s from %s", eventLabel, req.EventDate, req.CustomerName)
	if err := s.dispatch(ctx, mailer.TemplateDishOrder, subject, req.CustomerEmail, data); err != nil {
		return nil, err
	}

	eventType := models.EventTypeCatering
	booking := s.persistBooking(ctx, &models.Booking{
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CustomerEmail:       strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:       strings.TrimSpace(req.CustomerPhone),
		EventType:           &eventType,
		EventDate:           strings.TrimSpace(req.EventDate),
		EventTime:           utils.NewNullString(req.EventTime),
		Location:            utils.NewNullString(req.Location),
		MealType:            utils.NewNullString(req.MealType),
		Occasion:            utils.NewNullString(req.Occasion),
		DietaryRestrictions: utils.NewNullString(req.DietaryRestrictions),
		FoodStyle:           utils.NewNullString(req.FoodStyle),
		AdditionalInfo:      utils.NewNullString(req.AdditionalInfo),
		GuestCount:          req.GuestCount,
		SelectedDishes:      req.SelectedDishes,
		TotalAmount:         total,
		Status:              string(models.BookingStatusPending),
	})
	return &NotificationResult{Success: true, Message: "Your catering inquiry has been sent. We will be in touch soon.", Booking: booking}, nil
}

func (s *notificationService) SubmitCartBooking(ctx context.Context, req CartBookingRequest) (*NotificationResult, error) {
	if err := validateCustomer(req.CustomerName, req.CustomerEmail, req.CustomerPhone); err != nil {
		return nil, err
	}
	if utils.IsEmpty(req.EventDate) {
		return nil, validationError("event_date is required")
	}
	if len(req.SelectedDishes) == 0 {
		return nil, validationError("selected_dishes cannot be empty")
	}
	if req.GuestCount != nil && *req.GuestCount <= 0 {
		return nil, validationError("guest_count must be positive")
	}
	total, err := validateDishes(req.SelectedDishes)
	if err != nil {
		return nil, err
	}

	data := mailer.Notification{
		Heading: "New order booking",
		Fields: []mailer.Field{
			{Label: "Name", Value: req.CustomerName},
			{Label: "Email", Value: req.CustomerEmail},
			{Label: "Phone", Value: req.CustomerPhone},
			{Label: "Date", Value: req.EventDate},
			{Label: "Time", Value: req.EventTime},
			{Label: "Location", Value: req.Location},
			{Label: "Guests", Value: guestsLabel(req.GuestCount)},
		},
		Message: req.AdditionalInfo,
		Dishes:  dishLines(req.SelectedDishes),
		Total:   total,
	}
	subject := fmt.Sprintf("Order booking: %s on %s (%s)", req.CustomerName, req.EventDate, total.StringFixed(models.MoneyPlaces))
	if err := s.dispatch(ctx, mailer.TemplateDishOrder, subject, req.CustomerEmail, data); err != nil {
		return nil, err
	}

	eventType := models.EventTypeCart
	booking := s.persistBooking(ctx, &models.Booking{
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerEmail:  strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
		EventType:      &eventType,
		EventDate:      strings.TrimSpace(req.EventDate),
		EventTime:      utils.NewNullString(req.EventTime),
		Location:       utils.NewNullString(req.Location),
		AdditionalInfo: utils.NewNullString(req.AdditionalInfo),
		GuestCount:     req.GuestCount,
		SelectedDishes: req.SelectedDishes,
		TotalAmount:    total,
		Status:         string(models.BookingStatusPending),
	})
	return &NotificationResult{Success: true, Message: "Your order has been received. We will confirm shortly.", Booking: booking}, nil
}
