package handlers

import (
	"net/http"
	"strings"

	"github.com/rogerio-castellano/finance-tracker/internal/models"
)

// ListCategoriesHandler godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param type query string false "income or expense"
// @Success 200 {object} CategoriesResult
// @Failure 401 {object} ErrorResult
// @Failure 500 {object} ErrorResult
// @Router /api/categories [get]
// @Security BearerAuth
func ListCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	var kind *models.Kind
	if k, ok := models.ParseKind(strings.TrimSpace(r.URL.Query().Get("type"))); ok {
		kind = &k
	}

	categories, err := categoryRepo.List(r.Context(), kind)
	if err != nil {
		writeError(w, r, err)
		return
	}

	respond(w, r, http.StatusOK, CategoriesResult{Success: true, Data: categories})
}
