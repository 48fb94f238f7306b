package http

import (
	"net/http"
	"time"

	"wellnest/internal/auth"
	"wellnest/internal/models"
	"wellnest/internal/stats"
)

type healthEntryRequest struct {
	Date            *FlexTime `json:"date"`
	Steps           int       `json:"steps"`
	WaterGlasses    int       `json:"water_glasses"`
	SleepHours      float64   `json:"sleep_hours"`
	ExerciseMinutes int       `json:"exercise_minutes"`
}

func (a *API) handleListHealthEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing user")
		return
	}
	entries, err := a.Repo.ListHealthEntries(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list health entries")
		return
	}
	if entries == nil {
		entries = []models.HealthEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (a *API) handleSaveHealthEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing user")
		return
	}
	var req healthEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	date := stats.StartOfDay(time.Now())
	if d := req.Date.ToTimePtr(); d != nil {
		date = stats.StartOfDay(*d)
	}
	if req.Steps < 0 || req.WaterGlasses < 0 || req.SleepHours < 0 || req.ExerciseMinutes < 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Metrics must be non-negative")
		return
	}
	entry, err := a.Repo.UpsertHealthEntry(r.Context(), &models.HealthEntry{
		UserID:          userID,
		Date:            date,
		Steps:           req.Steps,
		WaterGlasses:    req.WaterGlasses,
		SleepHours:      req.SleepHours,
		ExerciseMinutes: req.ExerciseMinutes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save health entry")
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
