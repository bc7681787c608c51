package controllers

import (
	"net/http"

	"barberq-backend/models"
	"barberq-backend/repository"
	"barberq-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShopController struct {
	shops repository.ShopRepository
}

func NewShopController(shops repository.ShopRepository) *ShopController {
	return &ShopController{shops: shops}
}

// CreateShopInput defines the expected JSON structure for creating a shop
type CreateShopInput struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

func (sc *ShopController) CreateShop(c *gin.Context) {
	var input CreateShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if _, err := sc.shops.GetByName(input.Name); err == nil {
		utils.RespondWithError(c, http.StatusConflict, "A shop with this name already exists")
		return
	}

	shop := models.Shop{
		ID:       uuid.New(),
		Name:     input.Name,
		Location: input.Location,
		IsOpen:   true,
	}
	if err := sc.shops.Create(&shop); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create shop")
		return
	}

	c.JSON(http.StatusCreated, shop)
}

func (sc *ShopController) GetShops(c *gin.Context) {
	shops, err := sc.shops.List()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve shops")
		return
	}
	c.JSON(http.StatusOK, shops)
}

func (sc *ShopController) GetShop(c *gin.Context) {
	shopID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid shop ID format")
		return
	}

	shop, err := sc.shops.GetByID(shopID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, shop)
}
