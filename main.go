package main

import (
	"fmt"
	"log"
	"os"

	"barberq-backend/config"
	"barberq-backend/controllers"
	"barberq-backend/events"
	"barberq-backend/models"
	"barberq-backend/repository"
	"barberq-backend/routes"
	"barberq-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Shop{},
		&models.Barber{},
		&models.Slot{},
		&models.Booking{},
	)
}

func main() {
	settings := config.LoadSettings()

	shopRepo := repository.NewShopRepository(config.DB)
	barberRepo := repository.NewBarberRepository(config.DB)
	slotRepo := repository.NewSlotRepository(config.DB)
	bookingRepo := repository.NewBookingRepository(config.DB)

	bus := events.NewMemoryBus()
	notifier := services.NewNotifier()
	notifier.SubscribeAll(bus)

	slotService := services.NewSlotService(slotRepo, settings)
	bookingService := services.NewBookingService(bookingRepo, barberRepo, slotService, bus, settings.NoShowReopensSlot)
	queueService := services.NewQueueService(bookingRepo, barberRepo, services.NewWalkInStore(), settings)

	scheduler := services.NewScheduler(slotService, barberRepo, bookingRepo, notifier)
	scheduler.Start()

	r := routes.SetupRouter(routes.Controllers{
		Shops:    controllers.NewShopController(shopRepo),
		Barbers:  controllers.NewBarberController(barberRepo, shopRepo),
		Slots:    controllers.NewSlotController(slotService),
		Bookings: controllers.NewBookingController(bookingService),
		Queue:    controllers.NewQueueController(queueService),
	})
	printRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
