package api

import (
	"net/http"
	"strconv"

	"rcfm/internal/models"
)

func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.writeError(w, http.StatusNotFound, "History is not enabled", nil)
		return
	}

	query := r.URL.Query()
	filter := models.HistoryFilter{Limit: 50}

	if successStr := query.Get("success"); successStr != "" {
		success, err := strconv.ParseBool(successStr)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid success filter", err)
			return
		}
		filter.Success = &success
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 1000 {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	records, err := h.history.GetTransferRecords(filter)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to get history", err)
		return
	}
	if records == nil {
		records = []*models.TransferRecord{}
	}

	h.writeSuccess(w, http.StatusOK, records, "")
}
