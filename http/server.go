package http

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/smartscrape"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

// Form defaults shown on first load.
const (
	DefaultTitle  = "Smart Scraper with Azure OpenAI"
	DefaultPrompt = "Find some information about what does the company do, the name, and a contact email."
	DefaultURL    = "https://scrapegraphai.com/"
)

// DefaultHistoryLimit is how many recent runs the form page lists.
const DefaultHistoryLimit = 10

// ShutdownTimeout bounds graceful shutdown in Close.
const ShutdownTimeout = 10 * time.Second

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Server serves the scraper form and its JSON API.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the bind address used by Open.
	Addr string

	Dispatcher *smartscrape.Dispatcher

	// Runs records every dispatched scrape when set.
	Runs smartscrape.RunService

	Logger *slog.Logger
}

// NewServer creates a Server around the dispatcher.
func NewServer(d *smartscrape.Dispatcher, logger *slog.Logger) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		Dispatcher: d,
		Logger:     logger,
	}
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/", s.handleSubmit)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/scrape", s.handleAPIScrape)
		r.Get("/runs", s.handleAPIRuns)
		r.Get("/runs/{id}", s.handleAPIRun)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open starts listening on Addr. Call Serve to handle requests.
func (s *Server) Open() (err error) {
	s.ln, err = net.Listen("tcp", s.Addr)
	return err
}

// Serve handles requests until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.Serve(s.ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.Close()
	})
	return g.Wait()
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

type pageData struct {
	Title      string
	Prompt     string
	URL        string
	Invalid    string
	Error      string
	HasResult  bool
	ResultJSON string
	Runs       []*smartscrape.Run
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, &pageData{
		Title:  DefaultTitle,
		Prompt: DefaultPrompt,
		URL:    DefaultURL,
	})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, &pageData{Title: DefaultTitle, Invalid: "invalid form submission"})
		return
	}

	data := &pageData{
		Title:  DefaultTitle,
		Prompt: r.PostForm.Get("prompt"),
		URL:    r.PostForm.Get("url"),
	}

	req, result, err := s.dispatch(r.Context(), data.Prompt, data.URL)
	if err != nil {
		status := ErrorStatusCode(smartscrape.ErrorCode(err))
		if req == nil && smartscrape.IsValidation(err) {
			data.Invalid = smartscrape.ErrorMessage(err)
		} else {
			data.Error = smartscrape.ErrorMessage(err)
		}
		s.render(w, r, status, data)
		return
	}

	out, err := smartscrape.FormatJSON(result)
	if err != nil {
		data.Error = err.Error()
		s.render(w, r, http.StatusInternalServerError, data)
		return
	}
	data.HasResult = true
	data.ResultJSON = out
	s.render(w, r, http.StatusOK, data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleAPIScrape(w http.ResponseWriter, r *http.Request) {
	var body smartscrape.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	_, result, err := s.dispatch(r.Context(), body.Prompt, body.SourceURL)
	if err != nil {
		writeError(w, ErrorStatusCode(smartscrape.ErrorCode(err)), smartscrape.ErrorMessage(err))
		return
	}
	if result == nil {
		result = smartscrape.ScrapeResult{}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAPIRuns(w http.ResponseWriter, r *http.Request) {
	if s.Runs == nil {
		writeError(w, http.StatusNotFound, "history disabled")
		return
	}
	runs, err := s.Runs.FindRuns(r.Context(), smartscrape.RunFilter{Limit: DefaultHistoryLimit})
	if err != nil {
		writeError(w, http.StatusInternalServerError, smartscrape.ErrorMessage(err))
		return
	}
	if runs == nil {
		runs = []*smartscrape.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleAPIRun(w http.ResponseWriter, r *http.Request) {
	if s.Runs == nil {
		writeError(w, http.StatusNotFound, "history disabled")
		return
	}
	run, err := s.Runs.FindRunByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, ErrorStatusCode(smartscrape.ErrorCode(err)), smartscrape.ErrorMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// dispatch runs one scrape and records it when history is enabled.
// Recording failures are logged and never fail the scrape. The request is
// nil when the inputs were rejected before loading the configuration.
func (s *Server) dispatch(ctx context.Context, prompt, sourceURL string) (*smartscrape.ScrapeRequest, smartscrape.ScrapeResult, error) {
	begin := time.Now()
	req, result, err := s.Dispatcher.Dispatch(ctx, prompt, sourceURL)
	if req == nil || s.Runs == nil {
		return req, result, err
	}

	run := smartscrape.NewRun(req, result, err, time.Since(begin))
	if rerr := s.Runs.CreateRun(ctx, run); rerr != nil {
		s.Logger.Warn("record run", "url", req.SourceURL, "err", rerr)
	}
	return req, result, err
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data *pageData) {
	if s.Runs != nil {
		runs, err := s.Runs.FindRuns(r.Context(), smartscrape.RunFilter{Limit: DefaultHistoryLimit})
		if err != nil {
			s.Logger.Warn("list runs", "err", err)
		}
		data.Runs = runs
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, data); err != nil {
		s.Logger.Error("render", "err", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		next.ServeHTTP(ww, r)
		s.Logger.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(begin),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(code string) int {
	switch code {
	case smartscrape.EINVALID:
		return http.StatusBadRequest
	case smartscrape.ENOTFOUND:
		return http.StatusNotFound
	case smartscrape.EMISSINGCRED, smartscrape.ECONFIG:
		return http.StatusInternalServerError
	case smartscrape.ETIMEOUT:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
