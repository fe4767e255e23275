package httpx

import (
	"encoding/json"
	"net/http"

	"kopesha/internal/config"
	"kopesha/internal/http/handlers"
	loansvc "kopesha/internal/services/loan"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func NewRouter(cfg config.Cfg, svc *loansvc.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.App.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/loans", func(r chi.Router) {
		r.Post("/apply", handlers.ApplyLoan(svc))
		r.Get("/all", handlers.ListLoans(svc))
		r.Delete("/delete/{trackingId}", handlers.DeleteLoan(svc))
		r.Put("/update-offer", handlers.UpdateOffer(svc))
		r.Post("/verify-message", handlers.VerifyMessage(svc))
		r.Get("/mpesa-messages", handlers.MpesaMessages(svc))

		r.Post("/stk-push", handlers.STKPush(svc))
		r.Post("/mpesa/callback", handlers.MpesaCallback(svc))
		r.Get("/mpesa/status/{checkoutRequestID}", handlers.PaymentStatus(svc))
		r.Get("/callbacks", handlers.ListCallbacks(svc))
	})

	return r
}
