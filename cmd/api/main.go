package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/lusakagrand/hoteldesk-backend/internal/feed"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/accounting"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/auth"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/booking"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/facility"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/housekeeping"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/inventory"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/kitchen"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/menu"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/orders"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/rooms"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/settings"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/supplier"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/tables"
	"github.com/lusakagrand/hoteldesk-backend/internal/modules/user"
)

// kitchenDispatcher bridges the order store to the kitchen service.
type kitchenDispatcher struct {
	service kitchen.Service
}

func (d kitchenDispatcher) DispatchTicket(ctx context.Context, orderID uuid.UUID, guestName string, lines []orders.TicketLine, estimatedMinutes, priority int) error {
	converted := make([]kitchen.TicketLine, 0, len(lines))
	for _, line := range lines {
		converted = append(converted, kitchen.TicketLine{
			OrderItemID:         line.OrderItemID,
			Name:                line.Name,
			Quantity:            line.Quantity,
			SpecialInstructions: line.SpecialInstructions,
		})
	}
	return d.service.DispatchTicket(ctx, orderID, guestName, converted, estimatedMinutes, priority)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	ctx := context.Background()

	// ── Change feed ─────────────────────────────────────────
	listener, err := feed.NewListener(dsn)
	if err != nil {
		log.Fatal(err)
	}
	listener.Start(ctx)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Phase 1: Identity ───────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)

	authService := auth.NewService(userRepo, []byte(jwtSecret))
	if os.Getenv("AUTH_DISABLED") != "true" {
		router.Use(auth.Middleware(authService))
	}
	user.NewHandler(userService).RegisterRoutes(router)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Phase 2: Settings, Inventory & Ledger ───────────────
	settingsRepo := settings.NewPostgresRepository(db)
	settingsService := settings.NewService(settingsRepo)
	settings.NewHandler(settingsService).RegisterRoutes(router)

	inventoryRepo := inventory.NewPostgresRepository(db)
	inventoryService := inventory.NewService(inventoryRepo)
	inventory.NewHandler(inventoryService).RegisterRoutes(router)

	accountingRepo := accounting.NewPostgresRepository(db)
	accountingService := accounting.NewService(accountingRepo)
	accounting.NewHandler(accountingService).RegisterRoutes(router)

	// ── Phase 3: Menu & Kitchen ─────────────────────────────
	menuRepo := menu.NewPostgresRepository(db)
	menuService := menu.NewService(menuRepo)
	menu.NewHandler(menuService).RegisterRoutes(router)

	var ticketPublisher kitchen.Publisher
	if amqpURL := os.Getenv("AMQP_URL"); amqpURL != "" {
		ticketPublisher, err = kitchen.NewAMQPPublisher(amqpURL)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("AMQP_URL not set, kitchen display publishing disabled")
	}
	kitchenRepo := kitchen.NewPostgresRepository(db)
	kitchenService := kitchen.NewService(kitchenRepo, ticketPublisher)
	kitchen.NewHandler(kitchenService).RegisterRoutes(router)

	// ── Phase 4: Rooms, Housekeeping & Bookings ─────────────
	roomsRepo := rooms.NewPostgresRepository(db)
	roomsService := rooms.NewService(roomsRepo)
	rooms.NewHandler(roomsService).RegisterRoutes(router)

	housekeepingRepo := housekeeping.NewPostgresRepository(db)
	housekeepingService := housekeeping.NewService(housekeepingRepo, userService, roomsService)
	housekeeping.NewHandler(housekeepingService).RegisterRoutes(router)

	bookingRepo := booking.NewPostgresRepository(db)
	bookingService := booking.NewService(bookingRepo, roomsService, housekeepingService, accountingService)
	booking.NewHandler(bookingService).RegisterRoutes(router)

	// ── Phase 5: Tables & POS ───────────────────────────────
	tablesRepo := tables.NewPostgresRepository(db)
	tablesService := tables.NewService(tablesRepo)
	tables.NewHandler(tablesService).RegisterRoutes(router)

	ordersRepo := orders.NewPostgresRepository(db)
	orderStore := orders.NewStore(ordersRepo, menuService, accountingService,
		kitchenDispatcher{service: kitchenService}, inventoryService, settingsService, listener)
	if err := orderStore.Start(ctx); err != nil {
		log.Fatal(err)
	}
	defer orderStore.Stop()
	orders.NewHandler(orderStore, tablesService).RegisterRoutes(router)

	// ── Phase 6: Suppliers & Facilities ─────────────────────
	supplierRepo := supplier.NewPostgresRepository(db)
	supplierService := supplier.NewService(supplierRepo, inventoryService, accountingService)
	supplier.NewHandler(supplierService).RegisterRoutes(router)

	facilityRepo := facility.NewPostgresRepository(db)
	facilityService := facility.NewService(facilityRepo, accountingService)
	facility.NewHandler(facilityService).RegisterRoutes(router)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("HotelDesk API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
