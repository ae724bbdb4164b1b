package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/saoodchoudhary/rbmesports/docs"
	"github.com/saoodchoudhary/rbmesports/handlers"
	"github.com/saoodchoudhary/rbmesports/metrics"
	"github.com/saoodchoudhary/rbmesports/middleware"
	"github.com/saoodchoudhary/rbmesports/models"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Tournament    *handlers.TournamentHandler
	Join          *handlers.JoinHandler
	Wallet        *handlers.WalletHandler
	Payment       *handlers.PaymentHandler
	Admin         *handlers.AdminHandler
	Notifications *handlers.NotificationHandler
}

type Options struct {
	Authenticator  middleware.Authenticator
	RateLimiter    *middleware.IPRateLimiter
	Metrics        *metrics.Collectors
	AllowedOrigins []string
	Logger         *slog.Logger
}

func SetupRoutes(router *chi.Mux, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", handlers.Healthz)
	if opts.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	authenticate := middleware.Authenticate(opts.Authenticator, opts.Logger)

	// WebSocket не проходит через таймаут и rate limit
	router.With(authenticate).Get("/ws/notifications", h.Notifications.ServeWs)

	router.Group(func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(middleware.RateLimit(opts.RateLimiter))
		}
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Post("/auth/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/auth/me", h.Auth.Me)
			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/tournaments", func(r chi.Router) {
				r.Get("/", h.Tournament.ListTournaments)
				r.Route("/{tournamentID}", func(r chi.Router) {
					r.Get("/", h.Tournament.GetTournament)
					r.Get("/summary", h.Tournament.GetJoinSummary)
					r.Post("/join", h.Join.Open)
					r.Post("/payments/manual", h.Payment.SubmitManualPayment)
				})
			})

			r.Route("/join", func(r chi.Router) {
				r.Get("/", h.Join.View)
				r.Delete("/", h.Join.Close)
				r.Patch("/tab", h.Join.SetTab)
				r.Put("/composition", h.Join.UpdateComposition)
				r.Put("/coupon-code", h.Join.SetCouponCode)
				r.Post("/coupon", h.Join.ApplyCoupon)
				r.Delete("/coupon", h.Join.ClearCoupon)
				r.Post("/register", h.Join.Register)
			})

			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", h.Wallet.GetWallet)
				r.Post("/add-money/order", h.Wallet.CreateTopUpOrder)
				r.Post("/add-money/verify", h.Wallet.VerifyTopUp)
				r.Post("/withdraw", h.Wallet.Withdraw)
				r.Post("/withdrawal-info", h.Wallet.SaveWithdrawalInfo)
			})

			r.Get("/notifications", h.Notifications.ListNotifications)

			// Защищенные маршруты только для администраторов
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.Authorize(models.RoleAdmin))

				r.Get("/tournaments", h.Admin.ListTournaments)
				r.Post("/tournaments", h.Admin.CreateTournament)
				r.Put("/tournaments/{tournamentID}", h.Admin.UpdateTournament)
				r.Delete("/tournaments/{tournamentID}", h.Admin.DeleteTournament)
				r.Get("/tournaments/{tournamentID}/participants", h.Admin.ListParticipants)
				r.Post("/tournaments/{tournamentID}/winners", h.Admin.DeclareWinners)

				r.Post("/payments/{paymentID}/decision", h.Admin.DecidePayment)

				r.Get("/coupons", h.Admin.ListCoupons)
				r.Post("/coupons", h.Admin.CreateCoupon)
				r.Put("/coupons/{couponID}", h.Admin.UpdateCoupon)
				r.Delete("/coupons/{couponID}", h.Admin.DeleteCoupon)

				r.Get("/withdrawals", h.Admin.ListWithdrawals)
				r.Post("/withdrawals/{withdrawalID}/decision", h.Admin.ProcessWithdrawal)
			})
		})
	})
}
