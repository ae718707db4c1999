// internal/handlers/interest_group_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_health_learning/internal/model"
	"go_health_learning/internal/service"
	"go_health_learning/internal/webutil"
)

type InterestGroupHandler struct {
	service service.InterestGroupService
}

func NewInterestGroupHandler(s service.InterestGroupService) *InterestGroupHandler {
	return &InterestGroupHandler{service: s}
}

// Get は GET /user-interest-group
func (h *InterestGroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger, userID, ok := requestContext(w, r, "GetInterestGroup")
	if !ok {
		return
	}

	interest, err := h.service.Get(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewInterestGroupResponse(interest))
}

// Put は PUT /user-interest-group
func (h *InterestGroupHandler) Put(w http.ResponseWriter, r *http.Request) {
	logger, userID, ok := requestContext(w, r, "PutInterestGroup")
	if !ok {
		return
	}

	var req model.SetInterestGroupRequest
	if err := webutil.DecodeAndValidate(w, r, &req); err != nil {
		logger.Warn("Invalid interest group request", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	groupID, err := webutil.ParseUUIDField(req.LearningContentGroupID, "learningContentGroupId")
	if err != nil {
		logger.Warn("Invalid learning content group ID", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	interest, err := h.service.Set(r.Context(), userID, groupID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewInterestGroupResponse(interest))
}

// Delete は DELETE /user-interest-group
func (h *InterestGroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger, userID, ok := requestContext(w, r, "DeleteInterestGroup")
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), userID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
