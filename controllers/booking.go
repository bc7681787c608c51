package controllers

import (
	"net/http"

	"barberq-backend/models"
	"barberq-backend/repository"
	"barberq-backend/services"
	"barberq-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	BarberID       string `json:"barberId" binding:"required"`
	BarberName     string `json:"barberName"`
	ClientName     string `json:"clientName" binding:"required"`
	ClientPhone    string `json:"clientPhone" binding:"required"`
	SlotTime       string `json:"slotTime" binding:"required"`
	BookingDate    string `json:"bookingDate" binding:"required"`
	ShopName       string `json:"shopName"`
	HaircutName    string `json:"haircutName"`
	NotifySms      *bool  `json:"notifySms"`
	NotifyWhatsapp *bool  `json:"notifyWhatsapp"`
}

// UpdateBookingInput drives PATCH /bookings/:id. Clients send userStatus;
// barbers send an action (start|pause|resume|complete|no-show|cancel).
type UpdateBookingInput struct {
	UserStatus  string `json:"userStatus"`
	Action      string `json:"action"`
	HaircutName string `json:"haircutName"`
	ReopenSlot  *bool  `json:"reopenSlot"`
}

func (bc *BookingController) CreateBooking(c *gin.Context) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	barberID, err := uuid.Parse(input.BarberID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
		return
	}

	notifySms := true
	if input.NotifySms != nil {
		notifySms = *input.NotifySms
	}
	notifyWhatsapp := false
	if input.NotifyWhatsapp != nil {
		notifyWhatsapp = *input.NotifyWhatsapp
	}

	booking, err := bc.bookings.CreateBooking(services.CreateBookingInput{
		BarberID:       barberID,
		BarberName:     input.BarberName,
		ClientName:     input.ClientName,
		ClientPhone:    input.ClientPhone,
		SlotTime:       input.SlotTime,
		BookingDate:    input.BookingDate,
		ShopName:       input.ShopName,
		HaircutName:    input.HaircutName,
		NotifySMS:      notifySms,
		NotifyWhatsapp: notifyWhatsapp,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, bookingJSON(booking))
}

func (bc *BookingController) GetBookings(c *gin.Context) {
	filter := repository.BookingFilter{
		Phone: c.Query("phone"),
		Code:  c.Query("code"),
	}
	if raw := c.Query("barberId"); raw != "" {
		barberID, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
			return
		}
		filter.BarberID = &barberID
	}

	bookings, err := bc.bookings.ListBookings(filter)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	c.JSON(http.StatusOK, bookingListJSON(bookings))
}

func (bc *BookingController) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	booking, err := bc.bookings.GetBooking(bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingJSON(booking))
}

// GetBookingSub serves GET /bookings/code/:code through the generic
// /bookings/:id/:sub route; any first segment other than "code" is a 404.
// Registered this way because gin cannot mix the static "code" segment
// with the :id wildcard at the same position.
func (bc *BookingController) GetBookingSub(c *gin.Context) {
	if c.Param("id") != "code" {
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
		return
	}

	booking, err := bc.bookings.GetBookingByCode(c.Param("sub"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingJSON(booking))
}

func (bc *BookingController) UpdateBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var booking *models.Booking
	switch {
	case input.Action != "":
		booking, err = bc.applyAction(bookingID, input)
	case input.UserStatus != "":
		status, ok := models.ParseBookingStatus(input.UserStatus)
		if !ok {
			utils.RespondWithError(c, http.StatusBadRequest, "Unknown status: "+input.UserStatus)
			return
		}
		booking, err = bc.bookings.UpdateClientStatus(bookingID, status)
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Either userStatus or action is required")
		return
	}

	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingJSON(booking))
}

func (bc *BookingController) applyAction(id uuid.UUID, input UpdateBookingInput) (*models.Booking, error) {
	switch input.Action {
	case "start":
		return bc.bookings.StartCut(id, input.HaircutName)
	case "pause":
		return bc.bookings.PauseCut(id)
	case "resume":
		return bc.bookings.ResumeCut(id)
	case "complete":
		return bc.bookings.CompleteCut(id)
	case "no-show":
		return bc.bookings.MarkNoShow(id)
	case "cancel":
		reopen := false
		if input.ReopenSlot != nil {
			reopen = *input.ReopenSlot
		}
		return bc.bookings.CancelByBarber(id, reopen)
	default:
		return nil, services.ErrValidation
	}
}
