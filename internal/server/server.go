package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"docurequest/internal/storage"
	"docurequest/internal/wizard"
	"docurequest/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS
var decoder = form.NewDecoder()

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	templates *template.Template
	validator *wizard.Validator

	cookie *securecookie.SecureCookie

	drafts    wizard.Store
	uploads   storage.Uploads
	submitter wizard.Submitter
	statuses  wizard.StatusFetcher

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	drafts wizard.Store,
	uploads storage.Uploads,
	submitter wizard.Submitter,
	statuses wizard.StatusFetcher,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)
	if len(hashKey) == 0 || len(blockKey) == 0 {
		logger.Warn("cookie keys not configured, generating ephemeral keys; sessions will not survive a restart")
		hashKey = securecookie.GenerateRandomKey(32)
		blockKey = securecookie.GenerateRandomKey(32)
	}

	cookie := securecookie.New(hashKey, blockKey)
	cookie.MaxAge(config.SessionMaxAgeSec)

	s := &Service{
		logger:    logger,
		config:    config,
		validator: wizard.NewValidator(),
		cookie:    cookie,

		drafts:    drafts,
		uploads:   uploads,
		submitter: submitter,
		statuses:  statuses,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.Group(func(r *flow.Mux) {
		r.Use(s.WithSession)

		r.HandleFunc("/", s.handleHome, http.MethodGet)

		r.HandleFunc("/request/step1", s.handleGetPersonalInfo, http.MethodGet)
		r.HandleFunc("/request/step1", s.handlePostPersonalInfo, http.MethodPost)
		r.HandleFunc("/request/step2", s.handleGetDocumentInfo, http.MethodGet)
		r.HandleFunc("/request/step2", s.handlePostDocumentInfo, http.MethodPost)
		r.HandleFunc("/request/step2/back", s.handlePostDocumentInfoBack, http.MethodPost)
		r.HandleFunc("/request/step3", s.handleGetUpload, http.MethodGet)
		r.HandleFunc("/request/step3", s.handlePostUpload, http.MethodPost)
		r.HandleFunc("/request/step3/back", s.handlePostUploadBack, http.MethodPost)
		r.HandleFunc("/request/file", s.handleGetUploadedFile, http.MethodGet)

		r.HandleFunc("/request/review", s.handleGetReview, http.MethodGet)
		r.HandleFunc("/request/review/edit/:step|^[0-2]$", s.handlePostReviewEdit, http.MethodPost)
		r.HandleFunc("/request/review/dismiss", s.handlePostDismissError, http.MethodPost)
		r.HandleFunc("/request/submit", s.handlePostSubmit, http.MethodPost)
		r.HandleFunc("/request/new", s.handlePostNewRequest, http.MethodPost)

		r.HandleFunc("/status", s.handleGetStatusSearch, http.MethodGet)
		r.HandleFunc("/status", s.handlePostStatusSearch, http.MethodPost)
		r.HandleFunc("/status/:id", s.handleGetStatus, http.MethodGet)
	})

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"megabytes": func(b int64) string {
			return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"safeURL": func(s *string) template.URL {
			if s == nil {
				return ""
			}
			return template.URL(*s)
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
