package http

import (
	"net/http"

	"medivuno-api/internal/delivery/http/handler"
	"medivuno-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	profileHandler      *handler.ProfileHandler
	availabilityHandler *handler.AvailabilityHandler
	appointmentHandler  *handler.AppointmentHandler
	notificationHandler *handler.NotificationHandler
	settingsHandler     *handler.SettingsHandler
	prescriptionHandler *handler.PrescriptionHandler
	messageHandler      *handler.MessageHandler
	adminHandler        *handler.AdminHandler
	streamHandler       *handler.StreamHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	notificationHandler *handler.NotificationHandler,
	settingsHandler *handler.SettingsHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	messageHandler *handler.MessageHandler,
	adminHandler *handler.AdminHandler,
	streamHandler *handler.StreamHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		profileHandler:      profileHandler,
		availabilityHandler: availabilityHandler,
		appointmentHandler:  appointmentHandler,
		notificationHandler: notificationHandler,
		settingsHandler:     settingsHandler,
		prescriptionHandler: prescriptionHandler,
		messageHandler:      messageHandler,
		adminHandler:        adminHandler,
		streamHandler:       streamHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/2fa/verify", r.authHandler.VerifyTwoFactor).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Profile routes
	profile := api.PathPrefix("/profile").Subrouter()
	profile.Use(r.authMiddleware.Authenticate)
	profile.HandleFunc("", r.profileHandler.GetProfile).Methods(http.MethodGet)
	profile.HandleFunc("", r.profileHandler.UpdateProfile).Methods(http.MethodPut)

	// Doctor discovery and public availability
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("", r.profileHandler.SearchDoctors).Methods(http.MethodGet)
	doctors.HandleFunc("/{id}/availability", r.availabilityHandler.GetDoctorAvailability).Methods(http.MethodGet)

	// Availability management (doctor only)
	availability := api.PathPrefix("/availability").Subrouter()
	availability.Use(r.authMiddleware.Authenticate)
	availability.Use(middleware.RequireDoctor)
	availability.HandleFunc("", r.availabilityHandler.GetOwnAvailability).Methods(http.MethodGet)
	availability.HandleFunc("/slots", r.availabilityHandler.CreateSlot).Methods(http.MethodPost)
	availability.HandleFunc("/slots/{id}", r.availabilityHandler.DeleteSlot).Methods(http.MethodDelete)
	availability.HandleFunc("/slots", r.availabilityHandler.DeleteAllOpenSlots).Methods(http.MethodDelete)
	availability.HandleFunc("/weekly", r.availabilityHandler.SetWeeklyHours).Methods(http.MethodPost)

	// Appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.ListMine).Methods(http.MethodGet)
	appointments.HandleFunc("", r.appointmentHandler.Book).Methods(http.MethodPost)
	appointments.HandleFunc("/{id}/reschedule", r.appointmentHandler.Reschedule).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPatch)

	// Notification feed
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.GetFeed).Methods(http.MethodGet)
	notifications.HandleFunc("/read-all", r.notificationHandler.MarkAllRead).Methods(http.MethodPost)
	notifications.HandleFunc("/{id}/read", r.notificationHandler.MarkRead).Methods(http.MethodPatch)
	notifications.HandleFunc("/{id}/archive", r.notificationHandler.Archive).Methods(http.MethodPatch)
	notifications.HandleFunc("/{id}", r.notificationHandler.Delete).Methods(http.MethodDelete)

	// Notification settings
	settings := api.PathPrefix("/settings").Subrouter()
	settings.Use(r.authMiddleware.Authenticate)
	settings.HandleFunc("/notifications", r.settingsHandler.GetNotificationSettings).Methods(http.MethodGet)
	settings.HandleFunc("/notifications", r.settingsHandler.UpdateNotificationSettings).Methods(http.MethodPut)

	// Prescriptions
	prescriptions := api.PathPrefix("/prescriptions").Subrouter()
	prescriptions.Use(r.authMiddleware.Authenticate)
	prescriptions.HandleFunc("", r.prescriptionHandler.ListMine).Methods(http.MethodGet)

	prescriptionsDoctor := api.PathPrefix("/prescriptions").Subrouter()
	prescriptionsDoctor.Use(r.authMiddleware.Authenticate)
	prescriptionsDoctor.Use(middleware.RequireDoctor)
	prescriptionsDoctor.HandleFunc("", r.prescriptionHandler.Issue).Methods(http.MethodPost)

	// Messaging
	messages := api.PathPrefix("/messages").Subrouter()
	messages.Use(r.authMiddleware.Authenticate)
	messages.HandleFunc("", r.messageHandler.Send).Methods(http.MethodPost)
	messages.HandleFunc("/{userId}", r.messageHandler.GetConversation).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", r.adminHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}/status", r.adminHandler.UpdateUserStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/doctors/pending", r.adminHandler.ListPendingDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}/approve", r.adminHandler.ApproveDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}/reject", r.adminHandler.RejectDoctor).Methods(http.MethodPost)

	// Live notification stream
	ws := api.PathPrefix("/ws").Subrouter()
	ws.Use(r.authMiddleware.Authenticate)
	ws.HandleFunc("/notifications", r.streamHandler.Connect).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
