package handler

import (
	"errors"
	"net/http"

	studentsdomain "cafeteria-qr-go/internal/domain/students"
)

const msgStudentNotFound = "Alumno no encontrado"

type studentResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"nombre"`
	LastName  string  `json:"apellido"`
	Grade     *string `json:"grado"`
}

func (h *Handlers) ListStudents(w http.ResponseWriter, r *http.Request) {
	items, err := h.Students.ListStudents(r.Context())
	if err != nil {
		h.log.InternalError("students.list: list failed", err)
		writeInternalError(w)
		return
	}

	response := make([]studentResponse, 0, len(items))
	for _, student := range items {
		response = append(response, toStudentResponse(student))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id_alumno")
	if !ok {
		writeError(w, http.StatusNotFound, msgStudentNotFound)
		return
	}

	student, err := h.Students.GetStudent(r.Context(), id)
	if err != nil {
		if errors.Is(err, studentsdomain.ErrStudentNotFound) {
			writeError(w, http.StatusNotFound, msgStudentNotFound)
			return
		}
		h.log.InternalError("students.get: get failed", err, "student_id", id)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, toStudentResponse(*student))
}

func toStudentResponse(student studentsdomain.Student) studentResponse {
	return studentResponse{
		ID:        student.ID,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		Grade:     student.Grade,
	}
}
