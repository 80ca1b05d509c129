// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"vetcare-backend/models"
	"vetcare-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	if _, err := c.AddFunc("0 9 * * *", s.SendDailyReminders); err != nil {
		log.Printf("Failed to schedule daily reminders: %v", err)
		return
	}

	c.Start()
	log.Println("Reminder scheduler started")
}

// SendDailyReminders messages every client with a pending reservation
// scheduled for tomorrow.
func (s *ReminderService) SendDailyReminders() {
	log.Println("Starting daily reminder processing...")

	reservations, err := s.upcomingReservations(time.Now())
	if err != nil {
		log.Printf("Failed to fetch upcoming reservations: %v", err)
		return
	}

	for _, reservation := range reservations {
		s.sendReminder(reservation)
	}

	log.Printf("Daily reminder processing completed: %d reservations", len(reservations))
}

func (s *ReminderService) upcomingReservations(now time.Time) ([]models.Reservation, error) {
	tomorrow := now.AddDate(0, 0, 1)
	from := utils.BeginningOfDay(tomorrow)
	to := utils.EndOfDay(tomorrow)

	var reservations []models.Reservation
	err := s.db.
		Where("estado = ?", models.ReservaPendiente).
		Where("fecha_reserva BETWEEN ? AND ?", from, to).
		Preload("User").
		Find(&reservations).Error
	return reservations, err
}

func (s *ReminderService) sendReminder(reservation models.Reservation) {
	user := reservation.User
	if user.Phone == nil || *user.Phone == "" {
		log.Printf("Reservation %s: client %s has no phone on record", reservation.ID, user.ID)
		return
	}
	phone := *user.Phone

	message := fmt.Sprintf(
		"Hola %s, le recordamos su reserva en la veterinaria mañana a las %s. %s",
		user.FullName(),
		reservation.ScheduledAt.Format("15:04"),
		reservation.Details,
	)

	// WhatsApp for E.164 numbers, plain SMS otherwise
	channel := "sms"
	to := phone
	if strings.HasPrefix(phone, "+") {
		to = "whatsapp:" + phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", phone)
	}

	reminderLog := models.ReminderLog{
		ReservationID: reservation.ID,
		UserID:        user.ID,
		Message:       message,
		Status:        status,
		ErrorMessage:  errorMsg,
		Channel:       channel,
		SentAt:        time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for reservation %s: %v", reservation.ID, err)
	}
}
