package api

import (
	"log"
	"net/http"
	"os"

	"github.com/fatahealth/clinic-server/cmd/models"
	"github.com/fatahealth/clinic-server/service/appointment"
	"github.com/fatahealth/clinic-server/service/availability"
	"github.com/fatahealth/clinic-server/service/dashboard"
	"github.com/fatahealth/clinic-server/service/events"
	"github.com/fatahealth/clinic-server/service/medicine"
	"github.com/fatahealth/clinic-server/service/patient"
	"github.com/fatahealth/clinic-server/service/prescription"
	"github.com/fatahealth/clinic-server/service/user"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api").Subrouter()

	hub := models.NewHub()
	go hub.Run()

	userHandler := user.NewHandler(s.db)
	userHandler.RegisterRoutes(subrouter)

	appointmentHandler := appointment.NewAppointmentHandler(s.db, hub)
	appointmentHandler.RegisterRoutes(subrouter)

	availabilityHandler := availability.NewAvailabilityHandler(s.db)
	availabilityHandler.RegisterRoutes(subrouter)

	dashboardHandler := dashboard.NewDashboardHandler(s.db)
	dashboardHandler.RegisterRoutes(subrouter)

	patientHandler := patient.NewPatientHandler(s.db)
	patientHandler.RegisterRoutes(subrouter)

	medicineHandler := medicine.NewMedicineHandler(s.db)
	medicineHandler.RegisterRoutes(subrouter)

	prescriptionHandler := prescription.NewPrescriptionHandler(s.db)
	prescriptionHandler.RegisterRoutes(subrouter)

	eventsHandler := events.NewEventsHandler(s.db, hub)
	eventsHandler.RegisterRoutes(subrouter)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, handlers.LoggingHandler(os.Stdout, cors(router)))
}
