package http

import (
	"net/http"

	"focustube/internal/auth"
	"focustube/internal/chat"
	"focustube/internal/config"
	"focustube/internal/http/handler"
	mw "focustube/internal/http/middleware"
	"focustube/internal/ledger"
	"focustube/internal/note"
	"focustube/internal/timer"
	"focustube/internal/timetable"
	"focustube/internal/video"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

type Deps struct {
	Config config.Config
	DB     *gorm.DB
	JWT    *auth.JWT
	Videos *video.Client
	Chat   *chat.Client
	Ledger *ledger.Service
	Notes  *note.Service
	Events *timetable.Service
	Timer  *timer.Engine
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(d.Config.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(d.Config.CORSAllowedOrigins, d.Config.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: d.DB, JWT: d.JWT}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{}
	r.With(auth.RequireAuth(d.JWT)).Get("/me", me.Me)

	videoH := &handler.VideoHandler{Client: d.Videos}
	chatH := &handler.ChatHandler{Client: d.Chat}
	noteH := &handler.NoteHandler{Svc: d.Notes}
	eventH := &handler.TimetableHandler{Svc: d.Events}
	timerH := &handler.TimerHandler{Engine: d.Timer}
	rewardsH := &handler.RewardsHandler{Ledger: d.Ledger, Notes: d.Notes, Sessions: d.Timer.Sessions}

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireAuth(d.JWT))

		r.Post("/videos/search", videoH.Search)
		r.Post("/videos/transcript", videoH.Transcript)
		r.Post("/chat", chatH.Ask)

		r.Route("/notes", func(r chi.Router) {
			r.Post("/", noteH.Create)
			r.Get("/", noteH.List)
			r.Patch("/{id}", noteH.Update)
			r.Post("/{id}/pin", noteH.TogglePin)
			r.Delete("/{id}", noteH.Delete)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", eventH.Create)
			r.Get("/", eventH.List)
			r.Patch("/{id}", eventH.Update)
			r.Delete("/{id}", eventH.Delete)
		})

		r.Route("/timer", func(r chi.Router) {
			r.Get("/", timerH.State)
			r.Post("/start", timerH.Start)
			r.Post("/pause", timerH.Pause)
			r.Post("/reset", timerH.Reset)
		})

		r.Get("/rewards", rewardsH.Dashboard)
	})

	return r
}
