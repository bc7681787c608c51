package controllers

import (
	"net/http"

	"barberq-backend/models"
	"barberq-backend/services"
	"barberq-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QueueController struct {
	queue *services.QueueService
}

func NewQueueController(queue *services.QueueService) *QueueController {
	return &QueueController{queue: queue}
}

// GetQueue returns the barber's live queue for a date (today by default)
func (qc *QueueController) GetQueue(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
		return
	}

	items, err := qc.queue.BuildQueue(barberID, c.DefaultQuery("date", "today"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (qc *QueueController) GetQueueStats(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
		return
	}

	stats, err := qc.queue.Stats(barberID, c.DefaultQuery("date", "today"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type CreateWalkInInput struct {
	BarberID    string `json:"barberId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	Time        string `json:"time"`
	HaircutName string `json:"haircutName"`
}

func (qc *QueueController) CreateWalkIn(c *gin.Context) {
	var input CreateWalkInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	barberID, err := uuid.Parse(input.BarberID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
		return
	}

	walkIn, err := qc.queue.AddWalkIn(services.CreateWalkInInput{
		BarberID:    barberID,
		Name:        input.Name,
		Phone:       input.Phone,
		Time:        input.Time,
		HaircutName: input.HaircutName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, walkIn)
}

type UpdateWalkInInput struct {
	Action      string `json:"action" binding:"required"`
	HaircutName string `json:"haircutName"`
}

// UpdateWalkIn drives the walk-in through its queue lifecycle. Completion
// folds the walk-in into booking history and returns the persisted record.
func (qc *QueueController) UpdateWalkIn(c *gin.Context) {
	walkInID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid walk-in ID format")
		return
	}

	var input UpdateWalkInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Action == "complete" {
		booking, err := qc.queue.CompleteWalkIn(walkInID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, bookingJSON(booking))
		return
	}

	var walkIn *models.WalkIn
	switch input.Action {
	case "start":
		walkIn, err = qc.queue.StartWalkIn(walkInID, input.HaircutName)
	case "pause":
		walkIn, err = qc.queue.PauseWalkIn(walkInID)
	case "resume":
		walkIn, err = qc.queue.ResumeWalkIn(walkInID)
	case "no-show":
		walkIn, err = qc.queue.NoShowWalkIn(walkInID)
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown action: "+input.Action)
		return
	}

	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, walkIn)
}
