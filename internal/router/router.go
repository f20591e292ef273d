package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"chatbot-backend/internal/handlers"
	"chatbot-backend/internal/middleware"
	"chatbot-backend/internal/web"
)

func New(
	log *logrus.Logger,
	chatHandler *handlers.ChatHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.CORS(frontendURL))

	r.Get("/", web.Index)
	r.Get("/health", handlers.Health)

	api := func(r chi.Router) {
		r.Get("/hello", handlers.Hello)
		r.Post("/chat", chatHandler.Chat)
	}

	// The browser client talks to /api; /hello and /chat stay reachable at the root.
	r.Group(api)
	r.Route("/api", api)

	return r
}
