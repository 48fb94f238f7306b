package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"wellnest/internal/auth"
	"wellnest/internal/models"
	"wellnest/internal/notice"
	"wellnest/internal/stats"
	"wellnest/internal/store"
)

// FlexTime accepts YYYY-MM-DD from date inputs as well as RFC3339 timestamps.
type FlexTime struct {
	time.Time
}

func (ft *FlexTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		ft.Time = t
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		ft.Time = t
		return nil
	}
	return errors.New("invalid date/time format")
}

func (ft *FlexTime) ToTimePtr() *time.Time {
	if ft == nil || ft.Time.IsZero() {
		return nil
	}
	t := ft.Time
	return &t
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type entityResponse struct {
	ID string `json:"id"`
}

type settingsRequest struct {
	DailyWaterGoal       int             `json:"daily_water_goal"`
	DailyStepGoal        int             `json:"daily_step_goal"`
	DailyExerciseGoal    int             `json:"daily_exercise_goal"`
	DailySleepGoal       float64         `json:"daily_sleep_goal"`
	MonthlyExpenseBudget decimal.Decimal `json:"monthly_expense_budget"`
	ReminderFrequency    string          `json:"reminder_frequency"`
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password required")
		return
	}
	userID, err := a.Service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, "REGISTRATION_FAILED", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, entityResponse{ID: userID})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	userID, accessToken, refreshToken, err := a.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
		return
	}
	// Delayed first run; the hourly sweep picks the session up afterwards.
	a.Scheduler.KickAfterLogin(userID)
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: accessToken, RefreshToken: refreshToken})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing user")
		return
	}
	var req logoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := a.Service.Logout(r.Context(), userID, req.RefreshToken); err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to end session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing user")
		return
	}
	user, err := a.Repo.GetUserByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing user")
		return
	}
	// Lazy create: the row appears with defaults on first read.
	settings, err := a.Repo.EnsureSettings(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (a *API) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing user")
		return
	}
	var req settingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ReminderFrequency == "" {
		req.ReminderFrequency = models.ReminderDaily
	}
	settings, err := a.Repo.UpdateSettings(r.Context(), &models.UserSettings{
		UserID:               userID,
		DailyWaterGoal:       req.DailyWaterGoal,
		DailyStepGoal:        req.DailyStepGoal,
		DailyExerciseGoal:    req.DailyExerciseGoal,
		DailySleepGoal:       req.DailySleepGoal,
		MonthlyExpenseBudget: req.MonthlyExpenseBudget,
		ReminderFrequency:    req.ReminderFrequency,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (a *API) handleListNotices(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing user")
		return
	}
	notices := a.Notices.For(userID)
	if notices == nil {
		notices = []notice.Notice{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notices": notices})
}

func (a *API) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing user")
		return
	}
	data, err := store.Load(r.Context(), a.Repo, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load dashboard")
		return
	}

	now := time.Now()
	tasks := data.Tasks.Items()
	expenses := data.Expenses.Items()
	completed, total := stats.TaskCounts(tasks)

	summary := map[string]any{
		"tasks": map[string]any{
			"completed":     completed,
			"total":         total,
			"high_priority": stats.CountHighPriorityPending(tasks),
		},
		"expenses": map[string]any{
			"spent_today": stats.TodayExpenseTotal(expenses, now),
			"spent_month": stats.MonthExpenseTotal(expenses, now),
			"by_category": stats.CategoryBreakdown(expenses),
		},
	}
	if data.Settings != nil {
		spent := stats.MonthExpenseTotal(expenses, now)
		summary["budget_percent"] = stats.BudgetPercent(spent, data.Settings.MonthlyExpenseBudget)
	}
	if entry := stats.EntryForDate(data.Health.Items(), now); entry != nil {
		summary["health"] = map[string]any{
			"entry": entry,
			"score": stats.HealthScore(*entry, data.Settings),
		}
	}
	writeJSON(w, http.StatusOK, summary)
}
