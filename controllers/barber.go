package controllers

import (
	"errors"
	"net/http"
	"strings"

	"barberq-backend/models"
	"barberq-backend/repository"
	"barberq-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BarberController struct {
	barbers repository.BarberRepository
	shops   repository.ShopRepository
}

func NewBarberController(barbers repository.BarberRepository, shops repository.ShopRepository) *BarberController {
	return &BarberController{barbers: barbers, shops: shops}
}

type RegisterBarberInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	ShopName string `json:"shopName" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (bc *BarberController) Register(c *gin.Context) {
	var input RegisterBarberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if _, err := bc.barbers.GetByEmail(input.Email); err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	// First barber of a shop creates it implicitly
	shop, err := bc.shops.GetByName(input.ShopName)
	if errors.Is(err, repository.ErrNotFound) {
		shop = &models.Shop{ID: uuid.New(), Name: input.ShopName, IsOpen: true}
		if err := bc.shops.Create(shop); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create shop")
			return
		}
	} else if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	barber := models.Barber{
		Name:        input.Name,
		Email:       input.Email,
		Password:    input.Password, // Hashed in BeforeCreate hook
		ShopID:      shop.ID,
		ShopName:    shop.Name,
		IsAvailable: true,
	}
	if err := bc.barbers.Create(&barber); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create barber")
		return
	}

	token, err := utils.GenerateToken(barber.ID.String(), barber.ShopName)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"token":   token,
		"barber": gin.H{
			"id":       barber.ID,
			"name":     barber.Name,
			"email":    barber.Email,
			"shopName": barber.ShopName,
		},
	})
}

func (bc *BarberController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	barber, err := bc.barbers.GetByEmail(strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, barber.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(barber.ID.String(), barber.ShopName)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"barber": gin.H{
			"id":          barber.ID,
			"name":        barber.Name,
			"email":       barber.Email,
			"shopName":    barber.ShopName,
			"isAvailable": barber.IsAvailable,
		},
	})
}

func (bc *BarberController) GetBarbers(c *gin.Context) {
	barbers, err := bc.barbers.List(c.Query("shop"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve barbers")
		return
	}
	c.JSON(http.StatusOK, barbers)
}

func (bc *BarberController) GetBarber(c *gin.Context) {
	barberID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
		return
	}

	barber, err := bc.barbers.GetByID(barberID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, barber)
}
