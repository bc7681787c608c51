package controllers

import (
	"net/http"

	"barberq-backend/models"
	"barberq-backend/services"
	"barberq-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotController struct {
	slots *services.SlotService
}

func NewSlotController(slots *services.SlotService) *SlotController {
	return &SlotController{slots: slots}
}

// GetBarberSlots lists the barber's grid for a date, generating it lazily
// on first access
func (sc *SlotController) GetBarberSlots(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
		return
	}

	date, err := utils.ResolveDate(c.DefaultQuery("date", "today"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	slots, err := sc.slots.ListSlots(barberID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

type UpdateSlotInput struct {
	Status       string  `json:"status" binding:"required"`
	OccupantName *string `json:"occupantName"`
}

// UpdateSlot applies a direct status change to one slot. Setting
// "available" releases it, clearing occupant and booking reference.
func (sc *SlotController) UpdateSlot(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid slot ID format")
		return
	}

	var input UpdateSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	status, ok := models.ParseSlotStatus(input.Status)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown slot status: "+input.Status)
		return
	}

	occupant := ""
	if input.OccupantName != nil {
		occupant = *input.OccupantName
	}

	if err := sc.slots.SetStatus(slotID, status, occupant); err != nil {
		respondServiceError(c, err)
		return
	}

	slot, err := sc.slots.GetSlot(slotID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}
