package handler

import (
	"net/http"

	packagesdomain "cafeteria-qr-go/internal/domain/packages"
)

type packageResponse struct {
	ID             int64  `json:"id"`
	Description    string `json:"descripcion"`
	AvailableMeals int    `json:"comidas_disponibles"`
	Price          string `json:"precio"`
}

func (h *Handlers) ListPackages(w http.ResponseWriter, r *http.Request) {
	items, err := h.Packages.ListPackages(r.Context())
	if err != nil {
		h.log.InternalError("packages.list: list failed", err)
		writeInternalError(w)
		return
	}

	response := make([]packageResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toPackageResponse(item))
	}
	writeJSON(w, http.StatusOK, response)
}

func toPackageResponse(item packagesdomain.Package) packageResponse {
	return packageResponse{
		ID:             item.ID,
		Description:    item.Description,
		AvailableMeals: item.AvailableMeals,
		Price:          item.Price.StringFixed(2),
	}
}
