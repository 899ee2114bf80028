package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	consumptiondomain "cafeteria-qr-go/internal/domain/consumption"
	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	studentsdomain "cafeteria-qr-go/internal/domain/students"
	"cafeteria-qr-go/internal/metrics"
)

const (
	fieldStudentID = "id_alumno"
	fieldPackageID = "id_paquete"
	fieldDate      = "fecha"
)

const (
	msgConsumptionCreated = "Consumo registrado con éxito"
	msgConsumptionExists  = "Ya existe un registro de consumo para este alumno hoy."
	msgStudentMissing     = "El alumno no existe"
	msgPackageMissing     = "El paquete no existe"
)

var errInvalidBody = errors.New("invalid json body")

type registerConsumptionRequest struct {
	StudentID int64  `json:"id_alumno"`
	PackageID int64  `json:"id_paquete"`
	Date      string `json:"fecha" validate:"required,datetime=2006-01-02"`
}

type consumptionResponse struct {
	ID        int64  `json:"id"`
	StudentID int64  `json:"alumno"`
	PackageID int64  `json:"paquete"`
	Date      string `json:"fecha"`
}

func (h *Handlers) RegisterConsumption(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeRegisterConsumption(r)
	if err != nil {
		h.metrics.ObserveRegistration(metrics.RegistrationInvalid)
		var fieldErr *fieldError
		if errors.As(err, &fieldErr) {
			h.log.BusinessError("consumption.register: invalid field", err, "field", fieldErr.Field)
			writeError(w, http.StatusBadRequest, fieldErr.Error())
			return
		}
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	date, err := parseDateRequired(req.Date)
	if err != nil {
		h.metrics.ObserveRegistration(metrics.RegistrationInvalid)
		writeError(w, http.StatusBadRequest, (&fieldError{Field: fieldDate}).Error())
		return
	}

	logArgs := []any{"student_id", req.StudentID, "package_id", req.PackageID, "date", req.Date}
	_, err = h.Consumption.Register(r.Context(), consumptiondomain.RegisterInput{
		StudentID: req.StudentID,
		PackageID: req.PackageID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, consumptiondomain.ErrConsumptionExists):
			h.metrics.ObserveRegistration(metrics.RegistrationDuplicate)
			h.log.BusinessError("consumption.register: already registered", err, logArgs...)
			writeError(w, http.StatusConflict, msgConsumptionExists)
		case errors.Is(err, studentsdomain.ErrStudentNotFound):
			h.metrics.ObserveRegistration(metrics.RegistrationStudentNotFound)
			h.log.BusinessError("consumption.register: student not found", err, logArgs...)
			writeError(w, http.StatusNotFound, msgStudentMissing)
		case errors.Is(err, packagesdomain.ErrPackageNotFound):
			h.metrics.ObserveRegistration(metrics.RegistrationPackageNotFound)
			h.log.BusinessError("consumption.register: package not found", err, logArgs...)
			writeError(w, http.StatusNotFound, msgPackageMissing)
		default:
			h.metrics.ObserveRegistration(metrics.RegistrationError)
			h.log.InternalError("consumption.register: register failed", err, logArgs...)
			writeInternalError(w)
		}
		return
	}

	h.metrics.ObserveRegistration(metrics.RegistrationCreated)
	writeJSON(w, http.StatusCreated, messageResponse{Message: msgConsumptionCreated})
}

func (h *Handlers) ListStudentConsumption(w http.ResponseWriter, r *http.Request) {
	studentID, ok := idParam(r, "id_alumno")
	if !ok {
		writeError(w, http.StatusNotFound, msgStudentNotFound)
		return
	}

	records, err := h.Consumption.ListByStudent(r.Context(), studentID)
	if err != nil {
		if errors.Is(err, studentsdomain.ErrStudentNotFound) {
			writeError(w, http.StatusNotFound, msgStudentNotFound)
			return
		}
		h.log.InternalError("consumption.list: list failed", err, "student_id", studentID)
		writeInternalError(w)
		return
	}

	response := make([]consumptionResponse, 0, len(records))
	for _, record := range records {
		response = append(response, consumptionResponse{
			ID:        record.ID,
			StudentID: record.StudentID,
			PackageID: record.PackageID,
			Date:      formatDate(record.Date),
		})
	}
	writeJSON(w, http.StatusOK, response)
}

// decodeRegisterConsumption first checks that every field is present and
// scalar, in declaration order, then coerces the values.
func (h *Handlers) decodeRegisterConsumption(r *http.Request) (registerConsumptionRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || raw == nil {
		return registerConsumptionRequest{}, errInvalidBody
	}

	values := make(map[string]scalar, 3)
	for _, field := range []string{fieldStudentID, fieldPackageID, fieldDate} {
		value, ok := scalarField(raw, field)
		if !ok {
			return registerConsumptionRequest{}, &fieldError{Field: field}
		}
		values[field] = value
	}

	studentID, ok := values[fieldStudentID].int64()
	if !ok {
		return registerConsumptionRequest{}, &fieldError{Field: fieldStudentID}
	}
	packageID, ok := values[fieldPackageID].int64()
	if !ok {
		return registerConsumptionRequest{}, &fieldError{Field: fieldPackageID}
	}
	date := values[fieldDate]
	if !date.isString {
		return registerConsumptionRequest{}, &fieldError{Field: fieldDate}
	}

	req := registerConsumptionRequest{
		StudentID: studentID,
		PackageID: packageID,
		Date:      strings.TrimSpace(date.text),
	}
	if err := h.validateStruct(req); err != nil {
		return registerConsumptionRequest{}, err
	}
	return req, nil
}

// scalar is a JSON string or number taken from a request body.
type scalar struct {
	text     string
	isString bool
}

func scalarField(raw map[string]json.RawMessage, name string) (scalar, bool) {
	value, ok := raw[name]
	if !ok {
		return scalar{}, false
	}
	value = bytes.TrimSpace(value)
	if len(value) == 0 {
		return scalar{}, false
	}

	switch c := value[0]; {
	case c == '"':
		var text string
		if err := json.Unmarshal(value, &text); err != nil {
			return scalar{}, false
		}
		return scalar{text: text, isString: true}, true
	case c == '-' || (c >= '0' && c <= '9'):
		return scalar{text: string(value)}, true
	default:
		return scalar{}, false
	}
}

// int64 accepts integral numbers and decimal integer strings.
func (s scalar) int64() (int64, bool) {
	text := strings.TrimSpace(s.text)
	if parsed, err := strconv.ParseInt(text, 10, 64); err == nil {
		return parsed, true
	}
	if s.isString {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
