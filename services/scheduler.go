// services/scheduler.go
package services

import (
	"log"
	"time"

	"barberq-backend/repository"
	"barberq-backend/utils"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily opening chores: pre-generate today's slot grids
// for every available barber and remind clients with same-day bookings.
type Scheduler struct {
	slots    *SlotService
	barbers  repository.BarberRepository
	bookings repository.BookingRepository
	notifier *Notifier
	cron     *cron.Cron
}

func NewScheduler(
	slots *SlotService,
	barbers repository.BarberRepository,
	bookings repository.BookingRepository,
	notifier *Notifier,
) *Scheduler {
	return &Scheduler{
		slots:    slots,
		barbers:  barbers,
		bookings: bookings,
		notifier: notifier,
		cron:     cron.New(),
	}
}

func (s *Scheduler) Start() {
	// Run every day at 8 AM, before opening
	if _, err := s.cron.AddFunc("0 8 * * *", s.RunDaily); err != nil {
		log.Printf("Failed to register daily job: %v", err)
		return
	}
	s.cron.Start()
	log.Println("Daily scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) RunDaily() {
	log.Println("Starting daily opening tasks...")
	today := utils.DateKey(time.Now())

	barbers, err := s.barbers.ListAvailable()
	if err != nil {
		log.Printf("Failed to fetch barbers: %v", err)
	} else {
		for _, barber := range barbers {
			if _, err := s.slots.EnsureSlotsGenerated(barber.ID, today); err != nil {
				log.Printf("Barber %s: failed to generate grid for %s: %v", barber.ID, today, err)
			}
		}
	}

	bookings, err := s.bookings.ListPendingForDate(today)
	if err != nil {
		log.Printf("Failed to fetch today's bookings: %v", err)
		return
	}
	for _, booking := range bookings {
		s.notifier.SendBookingReminder(booking)
	}

	log.Println("Daily opening tasks completed")
}
