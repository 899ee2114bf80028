package handler

import (
	"net/http"
	"strconv"

	qrdomain "cafeteria-qr-go/internal/domain/qr"
	"cafeteria-qr-go/internal/metrics"
)

func (h *Handlers) GenerateQR(w http.ResponseWriter, r *http.Request) {
	studentID, ok := idParam(r, "alumno_id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	image, err := h.QR.Generate(r.Context(), studentID)
	if err != nil {
		h.log.InternalError("qr.generate: render failed", err, "student_id", studentID)
		writeInternalError(w)
		return
	}

	source := metrics.QRSourceRender
	if image.Cached {
		source = metrics.QRSourceCache
	}
	h.metrics.ObserveQR(source)

	w.Header().Set("Content-Type", qrdomain.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.PNG)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image.PNG)
}
