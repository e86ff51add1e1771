// Command web exposes the studio as a single-session JSON API: the
// same catalog, generation pipeline, and order flow as the bot, keyed
// to one in-memory session.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"aigc-c2m-studio/internal/catalog"
	"aigc-c2m-studio/internal/gemini"
	"aigc-c2m-studio/internal/httpclient"
	"aigc-c2m-studio/internal/studio"
)

// sessionKey identifies the single web session in the store.
const sessionKey int64 = 1

type server struct {
	store          *studio.Store
	orch           *studio.Orchestrator
	requestTimeout time.Duration
	logger         *slog.Logger
}

type apiError struct {
	Error string `json:"error"`
}

func main() {
	_ = godotenv.Load()

	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		panic("GEMINI_API_KEY is required")
	}

	addr := strings.TrimSpace(getEnv("WEB_ADDR", ":8080"))

	httpTimeout := time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 180)) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 180 * time.Second
	}

	requestTimeout := time.Duration(getEnvInt("REQUEST_TIMEOUT_SECONDS", 240)) * time.Second
	if requestTimeout <= 0 {
		requestTimeout = 240 * time.Second
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	httpClient := httpclient.New(httpclient.Options{
		PreferIPv4: getEnvBool("PREFER_IPV4", true),
		Timeout:    httpTimeout,
	})

	gem := gemini.New(gemini.Options{
		APIKey:     apiKey,
		BaseURL:    strings.TrimSpace(getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")),
		APIVersion: strings.TrimSpace(getEnv("GEMINI_API_VERSION", "v1beta")),
		HTTPClient: httpClient,
		Logger:     logger,
	})

	store := studio.NewStore(studio.StoreOptions{})

	s := &server{
		store: store,
		orch: studio.NewOrchestrator(studio.OrchestratorOptions{
			Store:     store,
			Generator: gem,
			Logger:    logger,
		}),
		requestTimeout: requestTimeout,
		logger:         logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/catalog", s.handleCatalog)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("GET /api/session", s.handleSessionGet)
	mux.HandleFunc("POST /api/session", s.handleSessionUpdate)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/preview", s.handlePreview)
	mux.HandleFunc("GET /api/quote", s.handleQuote)
	mux.HandleFunc("POST /api/orders", s.handlePlaceOrder)
	mux.HandleFunc("GET /api/orders", s.handleOrders)
	mux.HandleFunc("POST /api/gallery", s.handleSave)
	mux.HandleFunc("GET /api/gallery", s.handleGallery)
	mux.HandleFunc("POST /api/cart", s.handleArchive)
	mux.HandleFunc("GET /api/cart", s.handleCart)
	mux.HandleFunc("POST /api/remix", s.handleRemix)
	mux.HandleFunc("POST /api/reset", s.handleReset)

	srv := &http.Server{
		Addr:              addr,
		Handler:           withLogging(mux, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       90 * time.Second,
	}

	logger.Info("web started", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "err", err)
	}
}

type catalogResponse struct {
	Categories []catalogCategory `json:"categories"`
	Styles     []catalog.Style   `json:"styles"`
}

type catalogCategory struct {
	ID        catalog.Category   `json:"id"`
	Name      string             `json:"name"`
	BasePrice int                `json:"base_price"`
	Materials []catalog.Material `json:"materials"`
	Sizes     []string           `json:"sizes"`
	Colors    []catalog.Color    `json:"colors,omitempty"`
}

func (s *server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	resp := catalogResponse{Styles: catalog.Styles()}
	for _, c := range catalog.Categories() {
		spec, _ := catalog.Get(c)
		resp.Categories = append(resp.Categories, catalogCategory{
			ID:        c,
			Name:      spec.Name,
			BasePrice: spec.BasePrice,
			Materials: spec.Materials,
			Sizes:     spec.SizeOptions(),
			Colors:    spec.Colors,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json"})
		return
	}

	st, ok := s.store.Login(sessionKey, body.Phone)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "phone is required"})
		return
	}
	writeJSON(w, http.StatusOK, st.Account)
}

func (s *server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Get(sessionKey))
}

type sessionUpdate struct {
	Prompt         *string `json:"prompt,omitempty"`
	Style          *string `json:"style,omitempty"`
	Category       *string `json:"category,omitempty"`
	ReferenceImage *string `json:"reference_image,omitempty"`
	Material       *string `json:"material,omitempty"`
	SizeOrModel    *string `json:"size_or_model,omitempty"`
	Color          *string `json:"color,omitempty"`
}

func (s *server) handleSessionUpdate(w http.ResponseWriter, r *http.Request) {
	var body sessionUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json"})
		return
	}

	var badField string
	st := s.store.Update(sessionKey, func(st *studio.State) {
		if body.Category != nil {
			if !st.SetCategory(catalog.Category(strings.ToUpper(*body.Category))) {
				badField = "category"
				return
			}
		}
		if body.Style != nil {
			if !st.SetStyle(*body.Style) {
				badField = "style"
				return
			}
		}
		if body.Prompt != nil {
			st.SetPrompt(*body.Prompt)
		}
		if body.ReferenceImage != nil {
			st.SetReferenceImage(*body.ReferenceImage)
		}
		if body.Material != nil {
			st.Selection.MaterialID = *body.Material
		}
		if body.SizeOrModel != nil {
			st.Selection.SizeOrModel = *body.SizeOrModel
		}
		if body.Color != nil {
			st.Selection.ColorID = *body.Color
		}
	})
	if badField != "" {
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: "unknown " + badField})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	st, err := s.orch.GenerateArtwork(ctx, sessionKey)
	if err != nil {
		writeStudioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *server) handlePreview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
	defer cancel()

	st, err := s.orch.RefreshSceneMockup(ctx, sessionKey)
	if err != nil {
		writeStudioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

type quoteResponse struct {
	Category catalog.Category `json:"category"`
	Price    int              `json:"price"`
	LeadTime string           `json:"lead_time"`
}

func (s *server) handleQuote(w http.ResponseWriter, r *http.Request) {
	st := s.store.Get(sessionKey)
	price, lead := st.Quote()
	writeJSON(w, http.StatusOK, quoteResponse{
		Category: st.Session.Category,
		Price:    price,
		LeadTime: lead,
	})
}

func (s *server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	st := s.store.Get(sessionKey)
	o, err := s.store.PlaceOrder(sessionKey, st.Selection.MaterialID, st.Selection.SizeOrModel, st.Selection.ColorID)
	if err != nil {
		writeStudioError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (s *server) handleOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Get(sessionKey).Orders)
}

func (s *server) handleSave(w http.ResponseWriter, r *http.Request) {
	art, ok := s.store.SaveToGallery(sessionKey)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: "no artwork to save"})
		return
	}
	writeJSON(w, http.StatusCreated, art)
}

func (s *server) handleGallery(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Get(sessionKey).Gallery)
}

func (s *server) handleArchive(w http.ResponseWriter, r *http.Request) {
	item, ok := s.store.ArchiveToCart(sessionKey)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, apiError{Error: "no design to archive"})
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *server) handleCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Get(sessionKey).Cart)
}

func (s *server) handleRemix(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ArtworkID string `json:"artwork_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid json"})
		return
	}

	if err := s.store.StartFromArtwork(sessionKey, body.ArtworkID); err != nil {
		writeStudioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.Get(sessionKey))
}

func (s *server) handleReset(w http.ResponseWriter, r *http.Request) {
	st := s.store.Update(sessionKey, func(st *studio.State) { st.ResetSession() })
	writeJSON(w, http.StatusOK, st)
}

func writeStudioError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, studio.ErrAuthRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, studio.ErrInsufficientPoints):
		status = http.StatusPaymentRequired
	case errors.Is(err, studio.ErrBusy):
		status = http.StatusConflict
	case errors.Is(err, studio.ErrEmptyPrompt),
		errors.Is(err, studio.ErrNoArtwork),
		errors.Is(err, studio.ErrUnknownArtwork):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, studio.ErrGenerationFailed),
		errors.Is(err, studio.ErrPreviewFailed):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, apiError{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func withLogging(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("http", "method", r.Method, "path", r.URL.Path, "dur_ms", time.Since(start).Milliseconds())
	})
}
