// services/notifier.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"barberq-backend/events"
	"barberq-backend/models"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Notifier turns booking lifecycle events into outbound SMS/WhatsApp
// messages. Delivery is fire-and-forget: failures are logged and never
// reach the operation that triggered the event.
type Notifier struct {
	client *twilio.RestClient
}

func NewNotifier() *Notifier {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &Notifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// SubscribeAll registers the notifier on every booking subject
func (n *Notifier) SubscribeAll(bus events.Bus) {
	for _, subject := range []string{
		events.BookingCreated,
		events.BookingStatusChanged,
		events.BookingCancelled,
		events.BookingCancelledByBarber,
		events.BookingCompleted,
	} {
		bus.Subscribe(subject, n.handle)
	}
}

func (n *Notifier) handle(subject string, event events.BookingEvent) {
	message := composeMessage(subject, event)
	if message == "" {
		return
	}
	if !event.NotifySMS && !event.NotifyWhatsapp {
		return
	}

	// Hand off so delivery never blocks the state transition
	go n.send(event.ClientPhone, message, event.NotifyWhatsapp)
}

func composeMessage(subject string, event events.BookingEvent) string {
	switch subject {
	case events.BookingCreated:
		return fmt.Sprintf("Hi %s, your booking at %s with %s is confirmed for %s %s. Your access code is %s.",
			event.ClientName, event.ShopName, event.BarberName, event.BookingDate, event.SlotTime, event.AccessCode)
	case events.BookingCancelled:
		if event.Reason == "no-show" {
			return fmt.Sprintf("Hi %s, your booking for %s %s was closed as a no-show. Book again any time.",
				event.ClientName, event.BookingDate, event.SlotTime)
		}
		return fmt.Sprintf("Hi %s, your booking for %s %s has been cancelled.",
			event.ClientName, event.BookingDate, event.SlotTime)
	case events.BookingCancelledByBarber:
		return fmt.Sprintf("Hi %s, %s had to cancel your booking for %s %s. Sorry for the inconvenience - please pick a new slot.",
			event.ClientName, event.BarberName, event.BookingDate, event.SlotTime)
	case events.BookingCompleted:
		return fmt.Sprintf("Thanks for visiting %s, %s! How was your cut? Reply 1-5 to rate %s.",
			event.ShopName, event.ClientName, event.BarberName)
	default:
		// Self-reported status changes don't message the client back
		return ""
	}
}

// SendBookingReminder is used by the daily scheduler for same-day bookings
func (n *Notifier) SendBookingReminder(booking models.Booking) {
	if !booking.NotifySMS && !booking.NotifyWhatsapp {
		return
	}
	message := fmt.Sprintf("Hi %s, reminder: your appointment with %s at %s is today at %s. Access code %s.",
		booking.ClientName, booking.BarberName, booking.ShopName, booking.SlotTime, booking.AccessCode)
	go n.send(booking.ClientPhone, message, booking.NotifyWhatsapp)
}

func (n *Notifier) send(phone, message string, preferWhatsapp bool) {
	channel := "sms"
	to := phone

	// WhatsApp needs an E.164 number
	if preferWhatsapp && strings.HasPrefix(phone, "+") {
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

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send %s to %s: %v", channel, phone, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("Message sent to %s via %s, SID: %s", phone, channel, *resp.Sid)
	} else {
		log.Printf("Message sent to %s via %s, but no SID returned", phone, channel)
	}
}
