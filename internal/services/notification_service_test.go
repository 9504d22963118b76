package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"restaurant_backend/internal/mailer"
	"restaurant_backend/internal/mocks"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const inbox = "kitchen@restaurant.com"

type notificationDeps struct {
	mailer   *mocks.MockMailer
	contacts *mocks.MockContactRepository
	bookings *mocks.MockBookingRepository
}

func newNotificationService() (services.NotificationService, notificationDeps) {
	deps := notificationDeps{
		mailer:   new(mocks.MockMailer),
		contacts: new(mocks.MockContactRepository),
		bookings: new(mocks.MockBookingRepository),
	}
	return services.NewNotificationService(deps.mailer, deps.contacts, deps.bookings, nil, inbox), deps
}

func TestSubmitContact(t *testing.T) {
	t.Run("sends then stores", func(t *testing.T) {
		svc, deps := newNotificationService()
		deps.mailer.On("Send", mock.Anything, mock.MatchedBy(func(m mailer.Message) bool {
			return m.To == inbox && m.ReplyTo == "guest@example.com" && m.Subject == "New contact message: Allergies" &&
				strings.Contains(m.Body, "Do you have nut-free desserts?")
		})).Return(nil)
		deps.contacts.On("CreateContact", mock.Anything, mock.Anything, mock.AnythingOfType("*models.Contact")).Return(nil)

		res, err := svc.SubmitContact(context.Background(), services.ContactRequest{
			Name: "Guest", Email: "guest@example.com", Subject: "Allergies", Message: "Do you have nut-free desserts?",
		})
		require.NoError(t, err)
		assert.True(t, res.Success)
		deps.mailer.AssertExpectations(t)
		deps.contacts.AssertExpectations(t)
	})

	t.Run("send failure stores nothing", func(t *testing.T) {
		svc, deps := newNotificationService()
		deps.mailer.On("Send", mock.Anything, mock.Anything).Return(mailer.ErrSendFailed)

		_, err := svc.SubmitContact(context.Background(), services.ContactRequest{
			Name: "Guest", Email: "guest@example.com", Message: "Hello",
		})
		assert.ErrorIs(t, err, services.ErrDispatch)
		deps.contacts.AssertNotCalled(t, "CreateContact", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid email never sends", func(t *testing.T) {
		svc, deps := newNotificationService()
		_, err := svc.SubmitContact(context.Background(), services.ContactRequest{Name: "Guest", Email: "nope", Message: "Hi"})
		assert.ErrorIs(t, err, services.ErrValidation)
		deps.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("store failure still succeeds", func(t *testing.T) {
		svc, deps := newNotificationService()
		deps.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)
		deps.contacts.On("CreateContact", mock.Anything, mock.Anything, mock.Anything).Return(repositories.ErrDatabaseError)

		res, err := svc.SubmitContact(context.Background(), services.ContactRequest{
			Name: "Guest", Email: "guest@example.com", Message: "Hello",
		})
		require.NoError(t, err)
		assert.True(t, res.Success)
	})
}

func TestSubmitTableBooking(t *testing.T) {
	req := services.TableBookingRequest{
		Name: "Ada", Email: "ada@example.com", Phone: "555", Date: "2024-07-04", Time: "19:30", People: 4, Occasion: "Birthday",
	}

	t.Run("records pending table booking", func(t *testing.T) {
		svc, deps := newNotificationService()
		deps.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)
		deps.bookings.On("CreateBooking", mock.Anything, mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
			return *b.EventType == models.EventTypeTableBooking && *b.GuestCount == 4 && b.Status == "pending"
		})).Return(nil)

		res, err := svc.SubmitTableBooking(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, res.Booking)
		assert.Equal(t, "Ada", res.Booking.CustomerName)
	})

	t.Run("booking store failure still succeeds", func(t *testing.T) {
		svc, deps := newNotificationService()
		deps.mailer.On("Send", mock.Anything, mock.Anything).Return(nil)
		deps.bookings.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))

		res, err := svc.SubmitTableBooking(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Nil(t, res.Booking)
	})

	t.Run("no guests", func(t *testing.T) {
		svc, _ := newNotificationService()
		bad := req
		bad.People = 0
		_, err := svc.SubmitTableBooking(context.Background(), bad)
		assert.ErrorIs(t, err, services.ErrValidation)
	})
}

func TestSubmitCateringInquiry(t *testing.T) {
	svc, deps := newNotificationService()
	deps.mailer.On("Send", mock.Anything, mock.MatchedBy(func(m mailer.Message) bool {
		return strings.HasPrefix(m.Subject, "Catering inquiry: Corporate Lunch on 2024-09-01") &&
			strings.Contains(m.Body, "Lasagna") && strings.Contains(m.Body, "58.00")
	})).Return(nil)
	deps.bookings.On("CreateBooking", mock.Anything, mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return *b.EventType == models.EventTypeCatering && b.TotalAmount.Equal(money("58"))
	})).Return(nil)

	res, err := svc.SubmitCateringInquiry(context.Background(), services.CateringInquiryRequest{
		CustomerName: "Ada", CustomerEmail: "ada@example.com", CustomerPhone: "555",
		EventType: "corporate_lunch", EventDate: "2024-09-01",
		SelectedDishes: models.SelectedDishes{{Dish: "Lasagna", Quantity: 4, Price: money("14.5")}},
	})
	require.NoError(t, err)
	assert.True(t, money("58").Equal(res.Booking.TotalAmount))
	deps.mailer.AssertExpectations(t)
}

func TestSubmitCartBookingRequiresDishes(t *testing.T) {
	svc, deps := newNotificationService()
	_, err := svc.SubmitCartBooking(context.Background(), services.CartBookingRequest{
		CustomerName: "Ada", CustomerEmail: "ada@example.com", CustomerPhone: "555", EventDate: "2024-09-01",
	})
	assert.ErrorIs(t, err, services.ErrValidation)
	deps.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}
