package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Sraju03/editor-sub000/internal/cache"
	"github.com/Sraju03/editor-sub000/internal/gateway"
)

type ProductCodeHandler struct {
	codes cache.ProductCodeSource
}

func NewProductCodeHandler(codes cache.ProductCodeSource) *ProductCodeHandler {
	return &ProductCodeHandler{codes: codes}
}

func (h *ProductCodeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	codes, err := h.codes.ProductCodes(r.Context(), page, limit, q.Get("search"))
	if err != nil {
		var server *gateway.ServerError
		if errors.As(err, &server) {
			writeJSON(w, server.Status, map[string]string{"error": server.Message})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": codes,
		"page":  page,
		"limit": limit,
		"count": len(codes),
	})
}
