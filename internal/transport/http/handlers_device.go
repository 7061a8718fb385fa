package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"devicehub/internal/dto"
	"devicehub/internal/observability/metrics"
	"devicehub/internal/observability/middleware"
	"devicehub/internal/service"

	"github.com/go-chi/chi/v5"
)

func deviceRoutes(svc *service.DeviceService) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.RequestIDFromContext(r.Context())
			var req dto.CreateDeviceRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				metrics.DeviceWritesTotal.WithLabelValues("create", "failure").Inc()
				return
			}
			res, err := svc.Create(r.Context(), req)
			if err != nil {
				writeError(w, err)
				metrics.DeviceWritesTotal.WithLabelValues("create", "failure").Inc()
				slog.Warn("device creation failed", "error", err, "device_id", req.ID, "request_id", reqID)
				return
			}
			metrics.DeviceWritesTotal.WithLabelValues("create", "success").Inc()
			slog.Info("device created", "device_id", res.ID, "sensors", len(res.Sensors), "request_id", reqID)
			writeJSON(w, http.StatusCreated, res)
		})

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			res, err := svc.ListAll(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Get("/byusuario/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, err := parseUintParam(r, "id")
			if err != nil {
				http.Error(w, "invalid user id", http.StatusBadRequest)
				return
			}
			res, err := svc.ListByUser(r.Context(), id)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
			res, err := svc.GetView(r.Context(), chi.URLParam(r, "id"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Patch("/{id}", func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.RequestIDFromContext(r.Context())
			id := chi.URLParam(r, "id")
			var req dto.UpdateDeviceRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				metrics.DeviceWritesTotal.WithLabelValues("update", "failure").Inc()
				return
			}
			if id != req.ID {
				http.Error(w, "device ids do not match", http.StatusBadRequest)
				metrics.DeviceWritesTotal.WithLabelValues("update", "failure").Inc()
				return
			}
			res, err := svc.Update(r.Context(), id, req)
			if err != nil {
				writeError(w, err)
				metrics.DeviceWritesTotal.WithLabelValues("update", "failure").Inc()
				slog.Warn("device update failed", "error", err, "device_id", id, "request_id", reqID)
				return
			}
			metrics.DeviceWritesTotal.WithLabelValues("update", "success").Inc()
			writeJSON(w, http.StatusOK, res)
		})

		r.Delete("/removeRelation/{idDispositivo}/{idUsuario}", func(w http.ResponseWriter, r *http.Request) {
			userID, err := parseUintParam(r, "idUsuario")
			if err != nil {
				http.Error(w, "invalid user id", http.StatusBadRequest)
				return
			}
			res, err := svc.UnlinkUser(r.Context(), chi.URLParam(r, "idDispositivo"), userID)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
			reqID := middleware.RequestIDFromContext(r.Context())
			id := chi.URLParam(r, "id")
			res, err := svc.Remove(r.Context(), id)
			if err != nil {
				writeError(w, err)
				metrics.DeviceWritesTotal.WithLabelValues("delete", "failure").Inc()
				return
			}
			metrics.DeviceWritesTotal.WithLabelValues("delete", "success").Inc()
			slog.Info("device removed", "device_id", id, "request_id", reqID)
			writeJSON(w, http.StatusOK, res)
		})
	}
}
