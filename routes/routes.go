package routes

import (
	"barberq-backend/config"
	"barberq-backend/controllers"
	"barberq-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Controllers bundles everything SetupRouter wires up
type Controllers struct {
	Shops    *controllers.ShopController
	Barbers  *controllers.BarberController
	Slots    *controllers.SlotController
	Bookings *controllers.BookingController
	Queue    *controllers.QueueController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	shops := r.Group("/shops")
	{
		shops.GET("", ctrl.Shops.GetShops)
		shops.GET("/:id", ctrl.Shops.GetShop)
		shops.POST("", ctrl.Shops.CreateShop)
	}

	barbers := r.Group("/barbers")
	{
		barbers.GET("", ctrl.Barbers.GetBarbers)
		barbers.GET("/:id", ctrl.Barbers.GetBarber)
		barbers.POST("/login", ctrl.Barbers.Login)
		barbers.POST("/register", ctrl.Barbers.Register)

		// Slot grid is generated lazily on first read
		barbers.GET("/:id/slots", ctrl.Slots.GetBarberSlots)

		// Barber-side live queue
		barbers.GET("/:id/queue", utils.AuthMiddleware(), ctrl.Queue.GetQueue)
		barbers.GET("/:id/queue/stats", utils.AuthMiddleware(), ctrl.Queue.GetQueueStats)
	}

	r.PATCH("/slots/:id", ctrl.Slots.UpdateSlot)

	bookings := r.Group("/bookings")
	{
		bookings.GET("", ctrl.Bookings.GetBookings)
		bookings.GET("/:id", ctrl.Bookings.GetBooking)
		// Serves GET /bookings/code/:code; gin cannot mix a static
		// "code" segment with the :id wildcard above
		bookings.GET("/:id/:sub", ctrl.Bookings.GetBookingSub)
		bookings.POST("", ctrl.Bookings.CreateBooking)
		bookings.PATCH("/:id", ctrl.Bookings.UpdateBooking)
	}

	walkins := r.Group("/walkins", utils.AuthMiddleware())
	{
		walkins.POST("", ctrl.Queue.CreateWalkIn)
		walkins.PATCH("/:id", ctrl.Queue.UpdateWalkIn)
	}

	return r
}
