package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Sraju03/editor-sub000/internal/ai"
	"github.com/Sraju03/editor-sub000/internal/api/handlers"
	"github.com/Sraju03/editor-sub000/internal/api/middleware"
	"github.com/Sraju03/editor-sub000/internal/assistant"
	"github.com/Sraju03/editor-sub000/internal/cache"
	"github.com/Sraju03/editor-sub000/internal/config"
	"github.com/Sraju03/editor-sub000/internal/docvault"
	"github.com/Sraju03/editor-sub000/internal/gateway"
	"github.com/Sraju03/editor-sub000/internal/queue"
	"github.com/Sraju03/editor-sub000/internal/storage"
	"github.com/Sraju03/editor-sub000/internal/webhook"
)

type Router struct {
	mux     *chi.Mux
	db      *pgxpool.Pool
	redis   *redis.Client
	cfg     *config.Config
	backend *gateway.Client
	aiGW    ai.Gateway
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config) *Router {
	return &Router{
		mux:     chi.NewRouter(),
		db:      db,
		redis:   rdb,
		cfg:     cfg,
		backend: gateway.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout),
		aiGW:    ai.NewGateway(cfg.LLM),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Services
	store := storage.NewSupabaseStore(rt.cfg.Storage.SupabaseURL, rt.cfg.Storage.SupabaseKey, rt.cfg.Storage.Bucket)
	docRepo := docvault.NewPostgresRepository(rt.db)
	docSvc := docvault.NewService(docRepo, store, rt.cfg.Limits.MaxUploadBytes)
	queueClient := queue.NewClient(rt.cfg.Redis)
	dispatcher := webhook.NewDispatcher(rt.db, rt.cfg.Webhook)
	webhookSvc := webhook.NewService(rt.db, dispatcher)
	drafter := ai.NewDrafter(rt.aiGW, rt.cfg.LLM.DefaultModel)
	asstSvc := assistant.NewService(assistant.NewPgIndex(rt.db), rt.aiGW, rt.cfg.LLM.DefaultModel)
	codes := cache.NewProductCodes(rt.backend, cache.NewCache(rt.redis), rt.cfg.Limits.ProductCacheTTL)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Wizard sessions
		wizardH := handlers.NewWizardHandler(rt.backend, webhookSvc)
		r.Route("/wizard/sessions", func(r chi.Router) {
			r.Post("/", wizardH.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", wizardH.Get)
				r.Post("/fields", wizardH.SetFields)
				r.Post("/next", wizardH.Next)
				r.Post("/back", wizardH.Back)
				r.Post("/submit", wizardH.Submit)
				r.Post("/sections", wizardH.ToggleSection)
				r.Post("/product-code", wizardH.SelectProductCode)
				r.Post("/predicate", wizardH.SelectPredicate)
				r.Post("/intended-use", wizardH.GenerateIntendedUse)
				r.Get("/predicates", wizardH.SuggestPredicates)
				r.Delete("/", wizardH.Discard)
			})
		})

		// Product classification listing
		codesH := handlers.NewProductCodeHandler(codes)
		r.Get("/product-codes", codesH.List)

		// Document vault
		docH := handlers.NewDocumentHandler(docSvc, queueClient, webhookSvc, rt.cfg.Limits.MaxUploadBytes)
		r.Route("/documents", func(r chi.Router) {
			r.Post("/", docH.Upload)
			r.Get("/", docH.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", docH.Get)
				r.Post("/reupload", docH.Reupload)
				r.Post("/tags", docH.AddTag)
				r.Patch("/", docH.EditMetadata)
				r.Delete("/", docH.Delete)
			})
		})

		// Readiness scoring
		readinessH := handlers.NewReadinessHandler(rt.backend, docSvc)
		r.Get("/readiness", readinessH.Report)

		// Drafting
		aiH := handlers.NewAIHandler(drafter, rt.aiGW)
		r.Route("/ai", func(r chi.Router) {
			r.Get("/models", aiH.Models)
			r.Post("/intended-use", aiH.IntendedUse)
			r.Post("/predicate-suggest", aiH.PredicateSuggest)
			r.Post("/section-draft", aiH.SectionDraft)
			r.Post("/rewrite", aiH.Rewrite)
		})

		// Assistant
		asstH := handlers.NewAssistantHandler(asstSvc)
		r.Route("/assistant", func(r chi.Router) {
			r.Post("/search", asstH.Search)
			r.Post("/ask", asstH.Ask)
		})

		// Webhook subscriptions
		webhookH := handlers.NewWebhookHandler(webhookSvc)
		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/", webhookH.Create)
			r.Get("/", webhookH.List)
			r.Delete("/{id}", webhookH.Delete)
		})
	})

	return r
}
