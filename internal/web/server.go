package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"teachersday/internal/gallery"
	"teachersday/internal/photo"

	"github.com/CAFxX/httpcompression"
	"github.com/starfederation/datastar-go/datastar"
	"go.uber.org/zap"
)

//go:embed templates/*.html static/*.js static/*.css
var assetsFS embed.FS

// DefaultDatastarURL is the client bundle the page loads when none is configured.
const DefaultDatastarURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

type ServerConfig struct {
	Addr    string
	Gallery *gallery.Gallery
	Logger  *zap.Logger

	// DatastarURL overrides where the browser fetches the datastar client.
	// The page still works (full reloads) when it cannot be loaded.
	DatastarURL string

	// DisableWatch turns off live refresh when the photo folder changes.
	DisableWatch bool
}

type Server struct {
	cfg      ServerConfig
	tmpl     *template.Template
	log      *zap.Logger
	greeting template.HTML
	compress func(http.Handler) http.Handler
	watch    *dirWatcher
}

func NewServer(cfg ServerConfig) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.DatastarURL = strings.TrimSpace(cfg.DatastarURL)
	if cfg.Addr == "" {
		return nil, errors.New("web: addr is empty")
	}
	if cfg.Gallery == nil {
		return nil, errors.New("web: gallery is nil")
	}
	if cfg.DatastarURL == "" {
		cfg.DatastarURL = DefaultDatastarURL
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("web")

	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim":     strings.TrimSpace,
		"photoURL": photoURL,
	}).ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:      cfg,
		tmpl:     tmpl,
		log:      log,
		greeting: renderMarkdownHTML(cfg.Gallery.Roster().Greeting()),
		compress: compress,
	}
	if !cfg.DisableWatch {
		w, err := newDirWatcher(cfg.Gallery.Dir(), 300*time.Millisecond, log)
		if err != nil {
			// Live refresh is a convenience; the page works without it.
			log.Warn("photo folder watch disabled", zap.Error(err))
		} else {
			srv.watch = w
		}
	}
	return srv, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

// Close stops the folder watcher. Open /events streams end when their
// requests do.
func (s *Server) Close() error {
	if s.watch == nil {
		return nil
	}
	return s.watch.Close()
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /{$}", s.compress(http.HandlerFunc(s.handleHome)))
	mux.Handle("GET /static/app.css", s.compress(http.HandlerFunc(s.handleAppCSS)))
	mux.Handle("GET /static/app.js", s.compress(http.HandlerFunc(s.handleAppJS)))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /panel", s.handlePanel)
	mux.HandleFunc("GET /events", s.handleEvents)
	mux.HandleFunc("GET /photos/{name}", s.handlePhoto)
	return s.withRequestLog(mux)
}

type pageVM struct {
	Title       string
	Subtitle    string
	Footer      string
	Greeting    template.HTML
	Teachers    []string
	Selected    string
	Signals     string
	DatastarURL string
	Live        bool
	Panel       gallery.Result
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	g := s.cfg.Gallery
	ros := g.Roster()

	selected := strings.TrimSpace(r.URL.Query().Get("teacher"))
	if selected == "" {
		selected = ros.First()
	}

	vm := pageVM{
		Title:       ros.Title(),
		Subtitle:    ros.Subtitle(),
		Footer:      ros.Footer(),
		Greeting:    s.greeting,
		Teachers:    ros.Names(),
		Selected:    selected,
		Signals:     signalsJSON(selected),
		DatastarURL: s.cfg.DatastarURL,
		Live:        s.watch != nil,
		Panel:       g.Show(selected),
	}
	s.writeHTMLTemplate(w, "page.html", vm)
}

type panelSignals struct {
	Teacher string `json:"teacher"`
}

// handlePanel re-renders the photo panel for the datastar "teacher" signal.
func (s *Server) handlePanel(w http.ResponseWriter, r *http.Request) {
	var sig panelSignals
	if err := datastar.ReadSignals(r, &sig); err != nil {
		http.Error(w, "bad signals: "+err.Error(), http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(sig.Teacher)
	if name == "" {
		name = s.cfg.Gallery.Roster().First()
	}

	html, err := s.renderTemplate("panel.html", s.cfg.Gallery.Show(name))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElements(html); err != nil {
		s.log.Debug("panel patch failed", zap.Error(err))
	}
}

// refreshScript asks the page to fetch the panel again for whatever is
// currently selected.
const refreshScript = `document.getElementById('teacher-select')?.dispatchEvent(new Event('change'))`

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	// Subscribe before the SSE headers go out so a client that has seen the
	// response start cannot miss a change.
	var changes <-chan struct{}
	if s.watch != nil {
		ch, cancel := s.watch.subscribe()
		defer cancel()
		changes = ch
	}
	sse := datastar.NewSSE(w, r)

	keepAlive := time.NewTicker(25 * time.Second)
	defer keepAlive.Stop()

	for {
		select {
		case <-sse.Context().Done():
			return
		case <-keepAlive.C:
			_ = sse.PatchSignals([]byte(`{}`))
		case _, ok := <-changes:
			if !ok {
				return
			}
			if err := sse.ExecuteScript(refreshScript); err != nil {
				return
			}
		}
	}
}

func (s *Server) handlePhoto(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	m, err := s.cfg.Gallery.Photo(name)
	if err != nil {
		if errors.Is(err, photo.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	f, err := os.Open(m.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// The folder is re-read on every request; do not let browsers pin an old file.
	w.Header().Set("Cache-Control", "no-store")
	http.ServeContent(w, r, m.Name, st.ModTime(), f)
}

func (s *Server) handleAppJS(w http.ResponseWriter, r *http.Request) {
	s.writeAsset(w, r, "static/app.js", "application/javascript; charset=utf-8")
}

func (s *Server) handleAppCSS(w http.ResponseWriter, r *http.Request) {
	s.writeAsset(w, r, "static/app.css", "text/css; charset=utf-8")
}

func (s *Server) writeAsset(w http.ResponseWriter, r *http.Request, name, contentType string) {
	b, err := assetsFS.ReadFile(name)
	if err != nil || len(b) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) renderTemplate(name string, data any) (string, error) {
	var b strings.Builder
	if err := s.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (s *Server) writeHTMLTemplate(w http.ResponseWriter, name string, data any) {
	html, err := s.renderTemplate(name, data)
	if err != nil {
		s.log.Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func photoURL(teacher string) string {
	return "/photos/" + url.PathEscape(teacher)
}
