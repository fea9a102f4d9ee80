package http

import (
	"net/http"

	"patient-booking/internal/delivery/http/handler"
	"patient-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	bookingHandler    *handler.BookingHandler
	clinicHandler     *handler.ClinicHandler
	doctorHandler     *handler.DoctorHandler
	patientHandler    *handler.PatientHandler
	auditLogHandler   *handler.AuditLogHandler
	loggingMiddleware *middleware.LoggingMiddleware
	corsMiddleware    *middleware.CORSMiddleware
}

func NewRouter(
	bookingHandler *handler.BookingHandler,
	clinicHandler *handler.ClinicHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	auditLogHandler *handler.AuditLogHandler,
	loggingMiddleware *middleware.LoggingMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		bookingHandler:    bookingHandler,
		clinicHandler:     clinicHandler,
		doctorHandler:     doctorHandler,
		patientHandler:    patientHandler,
		auditLogHandler:   auditLogHandler,
		loggingMiddleware: loggingMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Booking routes. Paths and casing are the wire contract consumed
	// by existing clients, so they stay unversioned.
	r.router.HandleFunc("/AddBooking", r.bookingHandler.AddBooking).Methods(http.MethodPost)
	r.router.HandleFunc("/CancelBooking", r.bookingHandler.CancelBooking).Methods(http.MethodPost)
	r.router.HandleFunc("/patient/{patientId}/next", r.bookingHandler.GetPatientNextAppointment).Methods(http.MethodGet)
	r.router.HandleFunc("/patient/{patientId}/bookings", r.bookingHandler.GetPatientBookings).Methods(http.MethodGet)

	// Admin management routes
	admin := r.router.PathPrefix("/api/v1/admin").Subrouter()

	admin.HandleFunc("/clinics", r.clinicHandler.CreateClinic).Methods(http.MethodPost)
	admin.HandleFunc("/clinics", r.clinicHandler.GetAllClinics).Methods(http.MethodGet)
	admin.HandleFunc("/clinics/{id}", r.clinicHandler.GetClinic).Methods(http.MethodGet)

	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	admin.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	admin.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)

	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)

	// Middleware
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
