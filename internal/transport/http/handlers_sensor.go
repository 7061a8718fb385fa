package http

import (
	"encoding/json"
	"net/http"

	"devicehub/internal/dto"
	"devicehub/internal/service"

	"github.com/go-chi/chi/v5"
)

func sensorRoutes(svc *service.SensorService) func(chi.Router) {
	return func(r chi.Router) {
		r.Post("/", func(w http.ResponseWriter, r *http.Request) {
			var req dto.SensorRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			res, err := svc.Create(r.Context(), req)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, res)
		})

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			res, err := svc.List(r.Context())
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Get("/{tipo}", func(w http.ResponseWriter, r *http.Request) {
			res, err := svc.Get(r.Context(), chi.URLParam(r, "tipo"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Put("/{tipo}", func(w http.ResponseWriter, r *http.Request) {
			tipo := chi.URLParam(r, "tipo")
			var req dto.SensorRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
			if tipo != req.Type {
				http.Error(w, "sensor types do not match", http.StatusBadRequest)
				return
			}
			res, err := svc.Update(r.Context(), tipo, req)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})

		r.Delete("/{tipo}", func(w http.ResponseWriter, r *http.Request) {
			res, err := svc.Remove(r.Context(), chi.URLParam(r, "tipo"))
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, res)
		})
	}
}
