// internal/handlers/daily_learning_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_health_learning/internal/middleware"
	"go_health_learning/internal/model"
	"go_health_learning/internal/service"
	"go_health_learning/internal/webutil"

	"github.com/google/uuid"
)

type DailyLearningHandler struct {
	service service.DailyLearningService
}

func NewDailyLearningHandler(s service.DailyLearningService) *DailyLearningHandler {
	return &DailyLearningHandler{service: s}
}

// requestContext はハンドラ共通の前処理 (ロガーとユーザーIDの取得)
func requestContext(w http.ResponseWriter, r *http.Request, handler string) (*slog.Logger, uuid.UUID, bool) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", handler))
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return nil, uuid.Nil, false
	}
	return logger, userID, true
}

// SelectGroup は POST /daily-learning/select-group
func (h *DailyLearningHandler) SelectGroup(w http.ResponseWriter, r *http.Request) {
	logger, userID, ok := requestContext(w, r, "SelectGroup")
	if !ok {
		return
	}

	var req model.SelectGroupRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid select-group request", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	groupID, err := webutil.ParseUUIDField(req.LearningContentGroupID, "learningContentGroupId")
	if err != nil {
		logger.Warn("Invalid learning content group ID", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	progress, err := h.service.SelectGroup(r.Context(), userID, groupID)
	if err != nil {
		logger.Warn("Error selecting group in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Group selected", slog.String("group_id", groupID.String()), slog.String("progress_id", progress.ID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, model.NewProgressResponse(progress))
}

// CompleteStep は POST /daily-learning/complete-step
func (h *DailyLearningHandler) CompleteStep(w http.ResponseWriter, r *http.Request) {
	logger, userID, ok := requestContext(w, r, "CompleteStep")
	if !ok {
		return
	}

	var req model.CompleteStepRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid complete-step request", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	stepID, err := webutil.ParseUUIDField(req.StepID, "stepId")
	if err != nil {
		logger.Warn("Invalid step ID", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	progress, err := h.service.CompleteStep(r.Context(), userID, stepID)
	if err != nil {
		logger.Warn("Error completing step in service", slog.Any("error", err), slog.String("step_id", stepID.String()))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Step completed", slog.String("step_id", stepID.String()), slog.Bool("is_completed", progress.IsCompleted))
	webutil.RespondWithJSON(w, http.StatusOK, model.NewProgressResponse(progress))
}

// GetCurrent は GET /daily-learning/current?groupId=
func (h *DailyLearningHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	logger, userID, ok := requestContext(w, r, "GetCurrent")
	if !ok {
		return
	}

	groupID, err := webutil.ParseOptionalUUIDQuery(r, "groupId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	view, err := h.service.GetCurrentLearningContent(r.Context(), userID, groupID)
	if err != nil {
		logger.Warn("Error getting current learning content", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, view)
}

// GetProgress は GET /daily-learning/progress/{groupId}
func (h *DailyLearningHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	logger, userID, ok := requestContext(w, r, "GetProgress")
	if !ok {
		return
	}

	groupID, err := webutil.ParseUUIDParam(r, "groupId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userID, groupID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewProgressResponse(progress))
}

// ListProgress は GET /daily-learning/progress
func (h *DailyLearningHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	logger, userID, ok := requestContext(w, r, "ListProgress")
	if !ok {
		return
	}

	progresses, err := h.service.ListProgress(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp := make([]*model.ProgressResponse, 0, len(progresses))
	for _, p := range progresses {
		resp = append(resp, model.NewProgressResponse(p))
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}

// GetSummary は GET /daily-learning/summary
func (h *DailyLearningHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger, userID, ok := requestContext(w, r, "GetSummary")
	if !ok {
		return
	}

	summary, err := h.service.GetDailyLearningSummary(r.Context(), userID)
	if err != nil {
		logger.Warn("Error getting daily learning summary", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary)
}

// GetTodaySession は GET /daily-learning/session/{groupId}
func (h *DailyLearningHandler) GetTodaySession(w http.ResponseWriter, r *http.Request) {
	logger, userID, ok := requestContext(w, r, "GetTodaySession")
	if !ok {
		return
	}

	groupID, err := webutil.ParseUUIDParam(r, "groupId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	session, err := h.service.GetTodaySession(r.Context(), userID, groupID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewSessionResponse(session))
}

// ListTodaySessions は GET /daily-learning/sessions
func (h *DailyLearningHandler) ListTodaySessions(w http.ResponseWriter, r *http.Request) {
	logger, userID, ok := requestContext(w, r, "ListTodaySessions")
	if !ok {
		return
	}

	sessions, err := h.service.ListTodaySessions(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp := make([]*model.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, model.NewSessionResponse(s))
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp)
}
