package http

import (
	"net/http"

	"hospital-portal/internal/delivery/http/handler"
	"hospital-portal/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	doctorHandler       *handler.DoctorHandler
	appointmentHandler  *handler.AppointmentHandler
	medicineHandler     *handler.MedicineHandler
	consultationHandler *handler.ConsultationHandler
	dashboardHandler    *handler.DashboardHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	medicineHandler *handler.MedicineHandler,
	consultationHandler *handler.ConsultationHandler,
	dashboardHandler *handler.DashboardHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		doctorHandler:       doctorHandler,
		appointmentHandler:  appointmentHandler,
		medicineHandler:     medicineHandler,
		consultationHandler: consultationHandler,
		dashboardHandler:    dashboardHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	api.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.NewRoute().Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Shared routes (any authenticated role)
	shared := api.NewRoute().Subrouter()
	shared.Use(r.authMiddleware.Authenticate)
	shared.HandleFunc("/dashboard/stats", r.dashboardHandler.Stats).Methods(http.MethodGet)
	shared.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	shared.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)
	shared.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	shared.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	shared.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	shared.HandleFunc("/medicines", r.medicineHandler.List).Methods(http.MethodGet)
	shared.HandleFunc("/medicines/{id}", r.medicineHandler.Get).Methods(http.MethodGet)
	shared.HandleFunc("/patient/symptom-check", r.consultationHandler.CheckSymptoms).Methods(http.MethodPost)

	// Clinical routes (admin or doctor)
	clinical := api.NewRoute().Subrouter()
	clinical.Use(r.authMiddleware.Authenticate)
	clinical.Use(middleware.RequireAdminOrDoctor)
	clinical.HandleFunc("/patients", r.patientHandler.Register).Methods(http.MethodPost)
	clinical.HandleFunc("/patients", r.patientHandler.List).Methods(http.MethodGet)
	clinical.HandleFunc("/patients/{id}", r.patientHandler.Get).Methods(http.MethodGet)
	clinical.HandleFunc("/patients/{id}/discharge", r.patientHandler.Discharge).Methods(http.MethodPost)
	clinical.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)

	// Consultation routes (doctor only)
	consultation := api.NewRoute().Subrouter()
	consultation.Use(r.authMiddleware.Authenticate)
	consultation.Use(middleware.RequireDoctor)
	consultation.HandleFunc("/consultation/ai-assist", r.consultationHandler.Submit).Methods(http.MethodPost)
	consultation.HandleFunc("/consultations", r.consultationHandler.List).Methods(http.MethodGet)
	consultation.HandleFunc("/consultations/{id}", r.consultationHandler.Get).Methods(http.MethodGet)
	consultation.HandleFunc("/consultations/{id}/dispose", r.consultationHandler.Dispose).Methods(http.MethodPost)

	// Admin routes
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/medicines", r.medicineHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/medicines/{id}/stock", r.medicineHandler.UpdateStock).Methods(http.MethodPatch)

	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
