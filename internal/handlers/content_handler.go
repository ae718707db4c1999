// internal/handlers/content_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"go_health_learning/internal/middleware"
	"go_health_learning/internal/model"
	"go_health_learning/internal/service"
	"go_health_learning/internal/webutil"
)

type ContentHandler struct {
	service service.ContentService
}

func NewContentHandler(s service.ContentService) *ContentHandler {
	return &ContentHandler{service: s}
}

// ListGroups は GET /learning-content/groups
func (h *ContentHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "ListGroups"))

	groups, err := h.service.ListGroups(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if groups == nil {
		groups = []*model.LearningContentGroup{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, groups)
}

// GetGroup は GET /learning-content/groups/{groupId}
func (h *ContentHandler) GetGroup(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetGroup"))

	groupID, err := webutil.ParseUUIDParam(r, "groupId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	group, err := h.service.GetGroup(r.Context(), groupID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, group)
}

// GetGroupTree は GET /learning-content/groups/{groupId}/tree
func (h *ContentHandler) GetGroupTree(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context()).With(slog.String("handler", "GetGroupTree"))

	groupID, err := webutil.ParseUUIDParam(r, "groupId")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	tree, err := h.service.GetGroupTree(r.Context(), groupID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, tree)
}
