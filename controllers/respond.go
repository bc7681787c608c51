package controllers

import (
	"errors"
	"log"
	"net/http"

	"barberq-backend/models"
	"barberq-backend/repository"
	"barberq-backend/services"
	"barberq-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the core error taxonomy onto HTTP statuses.
// Slot contention surfaces as a "pick another slot" conflict, not a
// generic failure; transition violations are logged as UI-sync bugs.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrSlotTaken):
		utils.RespondWithError(c, http.StatusConflict, "That slot was just taken, please pick another one")
	case errors.Is(err, repository.ErrSlotNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "No slot exists at that time")
	case errors.Is(err, services.ErrInvalidTransition):
		log.Printf("Rejected status transition: %v", err)
		utils.RespondWithError(c, http.StatusConflict, "That status change is not allowed")
	case errors.Is(err, repository.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Something went wrong")
	}
}

// bookingJSON is the wire shape for a booking: raw fields plus both status
// projections so clients and barber UIs read the same record.
func bookingJSON(b *models.Booking) gin.H {
	return gin.H{
		"id":                b.ID,
		"barberId":          b.BarberID,
		"barberName":        b.BarberName,
		"shopName":          b.ShopName,
		"clientName":        b.ClientName,
		"clientPhone":       b.ClientPhone,
		"slotTime":          b.SlotTime,
		"bookingDate":       b.BookingDate,
		"accessCode":        b.AccessCode,
		"type":              b.Type,
		"userStatus":        b.ToClientView(),
		"queueStatus":       b.ToQueueView(),
		"haircutName":       b.HaircutName,
		"cancelledByBarber": b.CancelledByBarber,
		"cancelReason":      b.CancelReason,
		"notifySms":         b.NotifySMS,
		"notifyWhatsapp":    b.NotifyWhatsapp,
		"createdAt":         b.CreatedAt,
		"completedAt":       b.CompletedAt,
	}
}

func bookingListJSON(bookings []models.Booking) []gin.H {
	out := make([]gin.H, 0, len(bookings))
	for i := range bookings {
		out = append(out, bookingJSON(&bookings[i]))
	}
	return out
}
