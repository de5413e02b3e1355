package web

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"redmics/internal/config"
	"redmics/internal/locale"
	appLog "redmics/internal/log"
	"redmics/internal/model"
	"redmics/internal/query"
	"redmics/internal/render"
)

// Server exposes the calendar feed over HTTP.
type Server struct {
	cfg *config.Config
	src query.Source
	mux *http.ServeMux
}

// NewServer constructs a new Server reading items from src.
func NewServer(cfg *config.Config, src query.Source) *Server {
	s := &Server{
		cfg: cfg,
		src: src,
		mux: http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty username or password counts as disabled.
	if s.cfg.BasicAuth.Username == "" || s.cfg.BasicAuth.Password == "" {
		return false
	}
	return true
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /health stays reachable without credentials.
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="redmics", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// StartServer starts an HTTP server bound to cfg.Listen.
func StartServer(_ context.Context, cfg *config.Config, src query.Source) error {
	s := NewServer(cfg, src)
	appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen)
	return http.ListenAndServe(cfg.Listen, s.Handler())
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/icalendar.ics", s.handleICalendar)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleICalendar serves the rendered calendar feed.
//
// GET /icalendar.ics?render_issues=2&render_versions=2&render_summary=1&render_description=3
//
//	&status=open&assignment=my&user=jsmith&project=7&alarm=15m
//
// Strategy parameters are single-digit codes; anything unrecognized falls
// back to the configured defaults so that hand-edited subscription URLs keep
// working. A failing item selection degrades to an empty calendar document
// rather than an error page, since feed readers surface HTTP errors poorly.
func (s *Server) handleICalendar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	settings := s.decodeSettings(r)

	renderer, err := render.New(settings, locale.Default())
	if err != nil {
		appLog.Error("invalid render settings", err)
		http.Error(w, "invalid render settings", http.StatusInternalServerError)
		return
	}

	opts, err := s.decodeQueryOptions(r)
	issues := []model.Issue{}
	versions := []model.Version{}
	if err != nil {
		// Same degradation as a failing selection below.
		appLog.Warn("no items have been selected", "err", err)
	} else {
		issues, versions = s.selectItems(ctx, settings, opts)
	}

	doc, err := renderer.ICS(issues, versions)
	if err != nil {
		appLog.Error("render failed", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	appLog.Info("calendar feed served",
		"issues", len(issues),
		"versions", len(versions),
		"issue_strategy", string(settings.Issues),
		"version_strategy", string(settings.Versions),
	)

	w.Header().Set("Content-Type", render.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

// decodeSettings resolves the effective settings bundle: URL codes first,
// configured defaults for everything the URL leaves out.
func (s *Server) decodeSettings(r *http.Request) render.Settings {
	q := r.URL.Query()

	settings := render.Settings{
		Issues:         render.IssueStrategy(s.cfg.Render.Issues),
		Versions:       render.VersionStrategy(s.cfg.Render.Versions),
		Summary:        render.SummaryStrategy(s.cfg.Render.Summary),
		Description:    render.DescriptionStrategy(s.cfg.Render.Description),
		Hostname:       s.cfg.Hostname,
		BaseURL:        s.cfg.BaseURL,
		PriorityLevels: s.cfg.PriorityLevels,
	}

	if v, ok := render.DecodeIssueStrategy(q.Get("render_issues")); ok {
		settings.Issues = v
	}
	if v, ok := render.DecodeVersionStrategy(q.Get("render_versions")); ok {
		settings.Versions = v
	}
	if v, ok := render.DecodeSummaryStrategy(q.Get("render_summary")); ok {
		settings.Summary = v
	}
	if v, ok := render.DecodeDescriptionStrategy(q.Get("render_description")); ok {
		settings.Description = v
	}

	if raw := q.Get("alarm"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			appLog.Warn("ignoring bad alarm offset", "alarm", raw)
		} else {
			settings.Alarm = &d
		}
	}

	return settings
}

// decodeQueryOptions resolves the selection options for the query layer.
// status defaults to all when absent.
func (s *Server) decodeQueryOptions(r *http.Request) (query.Options, error) {
	q := r.URL.Query()
	var opts query.Options

	status := q.Get("status")
	if status == "" {
		status = string(query.StatusAll)
	}
	st, err := query.ParseStatusFilter(status)
	if err != nil {
		return opts, err
	}
	opts.Status = st

	assignment := q.Get("assignment")
	if assignment == "" {
		assignment = string(query.AssignmentAll)
	}
	as, err := query.ParseAssignmentFilter(assignment)
	if err != nil {
		return opts, err
	}
	opts.Assignment = as

	if raw := q.Get("project"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return opts, err
		}
		opts.ProjectID = id
	}

	// The requesting identity comes from basic auth when enabled, otherwise
	// from the user parameter.
	opts.UserLogin = q.Get("user")
	if u, _, ok := r.BasicAuth(); ok && opts.UserLogin == "" {
		opts.UserLogin = u
	}

	return opts, nil
}

// selectItems asks the query collaborator for the participating records. A
// failing selection is logged and degrades to empty lists; the feed must
// stay a valid calendar document. Kinds rendered with the none strategy are
// not queried at all.
func (s *Server) selectItems(ctx context.Context, settings render.Settings, opts query.Options) ([]model.Issue, []model.Version) {
	issues := []model.Issue{}
	versions := []model.Version{}

	if settings.Issues != render.IssueNone {
		got, err := s.src.Issues(ctx, opts)
		if err != nil {
			appLog.Warn("no issues have been selected", "err", err)
		} else {
			issues = got
		}
	}
	if settings.Versions != render.VersionNone {
		got, err := s.src.Versions(ctx, opts)
		if err != nil {
			appLog.Warn("no versions have been selected", "err", err)
		} else {
			versions = got
		}
	}
	return issues, versions
}
