package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"devicehub/internal/dto"
	"devicehub/internal/observability/metrics"
	"devicehub/internal/observability/middleware"
	"devicehub/internal/service"

	"github.com/go-chi/chi/v5"
)

// Fields the listing endpoint may project. The password column is not here
// and never will be.
var projectableUserFields = map[string]func(u dto.UserResponse) any{
	"idUsuario": func(u dto.UserResponse) any { return u.ID },
	"nombre":    func(u dto.UserResponse) any { return u.Name },
	"email":     func(u dto.UserResponse) any { return u.Email },
}

func userRoutes(svc *service.UserService) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.RequestIDFromContext(r.Context())
			var req dto.RegisterUserRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				metrics.UserRegistrationsTotal.WithLabelValues("failure").Inc()
				return
			}
			res, err := svc.Register(r.Context(), req)
			if err != nil {
				writeError(w, err)
				metrics.UserRegistrationsTotal.WithLabelValues("failure").Inc()
				slog.Warn("user registration failed", "error", err, "request_id", reqID)
				return
			}
			metrics.UserRegistrationsTotal.WithLabelValues("success").Inc()
			slog.Info("user registered", "user_id", res.ID, "is_admin", res.IsAdmin, "request_id", reqID)
			writeJSON(w, http.StatusCreated, res)
		})

		r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.RequestIDFromContext(r.Context())
			var req dto.LoginRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				metrics.UserLoginsTotal.WithLabelValues("failure").Inc()
				return
			}
			res, err := svc.Authenticate(r.Context(), req)
			if err != nil {
				writeError(w, err)
				metrics.UserLoginsTotal.WithLabelValues("failure").Inc()
				slog.Warn("login failed", "error", err, "request_id", reqID)
				return
			}
			metrics.UserLoginsTotal.WithLabelValues("success").Inc()
			writeJSON(w, http.StatusOK, res)
		})

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			fields := r.URL.Query().Get("fields")
			if fields == "" {
				fields = "idUsuario, email, nombre"
			}
			users, err := svc.List(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}

			requested := strings.Split(fields, ",")
			out := make([]map[string]any, 0, len(users))
			for _, u := range users {
				view := dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
				row := map[string]any{}
				for _, f := range requested {
					f = strings.TrimSpace(f)
					if project, ok := projectableUserFields[f]; ok {
						row[f] = project(view)
					}
				}
				out = append(out, row)
			}
			writeJSON(w, http.StatusOK, out)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := parseUintParam(r, "id")
			if err != nil {
				http.Error(w, "invalid user id", http.StatusBadRequest)
				return
			}
			res, err := svc.Get(r.Context(), id)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := parseUintParam(r, "id")
			if err != nil {
				http.Error(w, "invalid user id", http.StatusBadRequest)
				return
			}
			var req dto.UpdateUserRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			if id != req.ID {
				http.Error(w, "user ids do not match", http.StatusBadRequest)
				return
			}
			res, err := svc.Update(r.Context(), id, req)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Patch("/{id}", func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.RequestIDFromContext(r.Context())
			id, err := parseUintParam(r, "id")
			if err != nil {
				http.Error(w, "invalid user id", http.StatusBadRequest)
				return
			}
			var req dto.PromoteRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			if id != req.NewAdmin {
				http.Error(w, "user ids do not match", http.StatusBadRequest)
				return
			}
			res, err := svc.Promote(r.Context(), req.Requester, req.NewAdmin)
			if err != nil {
				writeError(w, err)
				slog.Warn("promotion failed", "error", err, "target", req.NewAdmin, "request_id", reqID)
				return
			}
			slog.Info("user promoted", "user_id", res.ID, "requester", req.Requester, "request_id", reqID)
			writeJSON(w, http.StatusOK, res)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := parseUintParam(r, "id")
			if err != nil {
				http.Error(w, "invalid user id", http.StatusBadRequest)
				return
			}
			res, err := svc.Remove(r.Context(), id)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})
	}
}
