package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	paymentsdomain "cafeteria-qr-go/internal/domain/payments"
	studentsdomain "cafeteria-qr-go/internal/domain/students"
	"github.com/shopspring/decimal"
)

type createPaymentRequest struct {
	StudentID int64            `json:"id_alumno" validate:"required,gt=0"`
	PackageID int64            `json:"id_paquete" validate:"required,gt=0"`
	Amount    *decimal.Decimal `json:"monto" validate:"required"`
	Date      string           `json:"fecha" validate:"required,datetime=2006-01-02"`
}

type paymentResponse struct {
	ID        int64  `json:"id"`
	Amount    string `json:"monto"`
	Date      string `json:"fecha"`
	StudentID int64  `json:"alumno"`
}

func (h *Handlers) ListPayments(w http.ResponseWriter, r *http.Request) {
	items, err := h.Payments.ListPayments(r.Context())
	if err != nil {
		h.log.InternalError("payments.list: list failed", err)
		writeInternalError(w)
		return
	}

	response := make([]paymentResponse, 0, len(items))
	for _, payment := range items {
		response = append(response, toPaymentResponse(payment))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			writeError(w, http.StatusBadRequest, (&fieldError{Field: typeErr.Field}).Error())
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if err := h.validateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, (&fieldError{Field: fieldDate}).Error())
		return
	}

	logArgs := []any{"student_id", req.StudentID, "package_id", req.PackageID, "amount", req.Amount.String()}
	payment, err := h.Payments.CreatePayment(r.Context(), paymentsdomain.CreateInput{
		StudentID: req.StudentID,
		PackageID: req.PackageID,
		Amount:    *req.Amount,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, paymentsdomain.ErrNegativeAmount):
			writeError(w, http.StatusBadRequest, (&fieldError{Field: "monto"}).Error())
		case errors.Is(err, studentsdomain.ErrStudentNotFound):
			h.log.BusinessError("payments.create: student not found", err, logArgs...)
			writeError(w, http.StatusNotFound, msgStudentMissing)
		case errors.Is(err, packagesdomain.ErrPackageNotFound):
			h.log.BusinessError("payments.create: package not found", err, logArgs...)
			writeError(w, http.StatusNotFound, msgPackageMissing)
		default:
			h.log.InternalError("payments.create: create failed", err, logArgs...)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusCreated, toPaymentResponse(*payment))
}

func toPaymentResponse(payment paymentsdomain.Payment) paymentResponse {
	return paymentResponse{
		ID:        payment.ID,
		Amount:    payment.Amount.StringFixed(2),
		Date:      formatDate(payment.Date),
		StudentID: payment.StudentID,
	}
}
