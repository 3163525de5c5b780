package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"internhub/internal/http/handlers"
	"internhub/internal/http/metrics"
	httpmw "internhub/internal/http/middleware"
	"internhub/internal/security"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	InternshipHandler  *handlers.InternshipHandler
	ApplicationHandler *handlers.ApplicationHandler
	ProfileHandler     *handlers.ProfileHandler
	AdminHandler       *handlers.AdminHandler
	FileHandler        *handlers.FileHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	Logger             *logrus.Logger
	RequestTimeout     time.Duration
	MaxBodyBytes       int64
}

type Router struct {
	deps           RouterDependencies
	metricsHandler *metrics.Handler
}

func NewRouter(deps RouterDependencies) http.Handler {
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = 10 << 20
	}
	return &Router{deps: deps, metricsHandler: metrics.NewHandler(deps.Metrics)}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(),
		httpmw.RequestID,
		httpmw.Logging(r.deps.Logger),
		httpmw.BodyLimit(r.deps.MaxBodyBytes),
		httpmw.Recover(r.deps.Logger),
		httpmw.Metrics(r.deps.Metrics),
		httpmw.Timeout(r.deps.RequestTimeout),
	)
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.metricsHandler.ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/send-otp":
			r.deps.AuthHandler.SendOTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/register":
			r.deps.AuthHandler.Register(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/login":
			r.deps.AuthHandler.Login(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/forgot-password":
			r.deps.AuthHandler.ForgotPassword(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/reset-password":
			r.deps.AuthHandler.ResetPassword(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/admin/login":
			r.deps.AuthHandler.AdminLogin(w, req)
			return
		case req.Method == http.MethodGet && path == "/api/internships":
			r.deps.InternshipHandler.List(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/resume/"):
			r.deps.FileHandler.Resume(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/profile-picture/"):
			r.deps.FileHandler.ProfilePicture(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/internships/") && !strings.HasSuffix(path, "/apply"):
			r.deps.InternshipHandler.Get(w, req)
			return
		}

		if strings.HasPrefix(path, "/api/admin/") {
			protected := r.deps.AuthMiddleware.Authenticate(
				httpmw.RequireRole(security.RoleAdmin)(http.HandlerFunc(r.handleAdmin)))
			protected.ServeHTTP(w, req)
			return
		}

		if strings.HasPrefix(path, "/api/") {
			protected := r.deps.AuthMiddleware.Authenticate(
				httpmw.RequireRole(security.RoleUser)(http.HandlerFunc(r.handleUser)))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleUser(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/internships/") && strings.HasSuffix(path, "/apply"):
		r.deps.ApplicationHandler.Apply(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/my-applications":
		r.deps.ApplicationHandler.MyApplications(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/profile":
		r.deps.ProfileHandler.Get(w, req)
		return
	case req.Method == http.MethodPut && path == "/api/profile":
		r.deps.ProfileHandler.Update(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/profile/resume":
		r.deps.ProfileHandler.UploadResume(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/profile/picture":
		r.deps.ProfileHandler.UploadPicture(w, req)
		return
	}

	http.NotFound(w, req)
}

func (r *Router) handleAdmin(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodGet && path == "/api/admin/me":
		r.deps.AdminHandler.Me(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/uploads":
		r.deps.AdminHandler.ListUploads(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/internships":
		r.deps.AdminHandler.ListInternships(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/admin/internships":
		r.deps.AdminHandler.CreateInternship(w, req)
		return
	case req.Method == http.MethodPost && path == "/api/admin/internships/bulk-upload":
		r.deps.AdminHandler.BulkUpload(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/api/admin/internships/") && strings.HasSuffix(path, "/toggle"):
		r.deps.AdminHandler.ToggleInternship(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/admin/internships/"):
		r.deps.AdminHandler.GetInternship(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/admin/internships/"):
		r.deps.AdminHandler.UpdateInternship(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/admin/internships/"):
		r.deps.AdminHandler.DeleteInternship(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/applications":
		r.deps.AdminHandler.ListApplications(w, req)
		return
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/admin/applications/") && strings.HasSuffix(path, "/status"):
		r.deps.AdminHandler.UpdateApplicationStatus(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/users":
		r.deps.AdminHandler.ListUsers(w, req)
		return
	case req.Method == http.MethodGet && path == "/api/admin/users/download":
		r.deps.AdminHandler.DownloadUsers(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/admin/users/"):
		r.deps.AdminHandler.DeleteUser(w, req)
		return
	}

	http.NotFound(w, req)
}
