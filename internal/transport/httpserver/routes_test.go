package httpserver

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cafeteria-qr-go/internal/config"
	consumptiondomain "cafeteria-qr-go/internal/domain/consumption"
	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	paymentsdomain "cafeteria-qr-go/internal/domain/payments"
	qrdomain "cafeteria-qr-go/internal/domain/qr"
	studentsdomain "cafeteria-qr-go/internal/domain/students"
	"cafeteria-qr-go/internal/metrics"
	"cafeteria-qr-go/internal/repository/inmemory"
	"cafeteria-qr-go/internal/transport/httpserver/handler"
	"cafeteria-qr-go/pkg/logger"
	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/shopspring/decimal"
)

type testEnv struct {
	store  *fakeStore
	router http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	grade := "5B"
	store := &fakeStore{
		students: []studentsdomain.Student{
			{ID: 1, FirstName: "Ana", LastName: "Pérez", Grade: &grade, ResponsiblePartyID: 1},
			{ID: 2, FirstName: "Luis", LastName: "Gómez", ResponsiblePartyID: 1},
		},
		packages: []packagesdomain.Package{
			{ID: 2, Description: "Paquete mensual", AvailableMeals: 20, Price: decimal.RequireFromString("450")},
		},
		nextID: 100,
	}
	store.payments = []paymentsdomain.Payment{
		{ID: 1, Date: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("450"), PackageID: 2, ResponsiblePartyID: 1, StudentID: 1},
	}

	services := handler.Services{
		Students:    studentsdomain.NewService(studentsRepo{store}),
		Packages:    packagesdomain.NewService(packagesRepo{store}),
		Payments:    paymentsdomain.NewService(paymentsRepo{store}),
		Consumption: consumptiondomain.NewService(consumptionRepo{store}),
		QR:          qrdomain.NewService(qrdomain.Options{CacheTTL: time.Minute}, inmemory.NewQRImageCache(0)),
	}
	m := metrics.New()
	log := logger.Discard()
	cfg := config.Config{AllowedOrigins: []string{"*"}, MetricsEnabled: true}

	return &testEnv{
		store:  store,
		router: NewRouter(cfg, handler.New(services, m, log), m, log),
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec, rec.Body.Bytes()
}

func decodeBody(t *testing.T, data []byte, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
}

func errorMessage(t *testing.T, data []byte) string {
	t.Helper()
	var body map[string]interface{}
	decodeBody(t, data, &body)
	message, _ := body["error"].(string)
	return message
}

func TestRegisterConsumptionScenario(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/registrar_consumo", `{"id_alumno":1,"id_paquete":2,"fecha":"2024-05-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, body)
	}
	var created map[string]string
	decodeBody(t, body, &created)
	if created["mensaje"] == "" {
		t.Fatalf("expected mensaje in response, got %s", body)
	}

	rec, body = env.do(t, http.MethodPost, "/registrar_consumo", `{"id_alumno":1,"id_paquete":2,"fecha":"2024-05-01"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, body)
	}
	if errorMessage(t, body) == "" {
		t.Fatalf("expected error message on conflict")
	}

	rec, body = env.do(t, http.MethodPost, "/registrar_consumo", `{"id_alumno":1,"id_paquete":2,"fecha":"2024-05-02"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for next day, got %d: %s", rec.Code, body)
	}
	if len(env.store.records) != 2 {
		t.Fatalf("expected 2 stored records, got %d", len(env.store.records))
	}
}

func TestRegisterConsumptionAcceptsStringIDs(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/registrar_consumo", `{"id_alumno":"1","id_paquete":"2","fecha":"2024-05-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, body)
	}
	if env.store.records[0].StudentID != 1 || env.store.records[0].PackageID != 2 {
		t.Fatalf("unexpected stored record %+v", env.store.records[0])
	}
}

func TestRegisterConsumptionInvalidFields(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing student", `{"id_paquete":2,"fecha":"2024-05-01"}`, "id_alumno"},
		{"missing package", `{"id_alumno":1,"fecha":"2024-05-01"}`, "id_paquete"},
		{"missing date", `{"id_alumno":1,"id_paquete":2}`, "fecha"},
		{"null student", `{"id_alumno":null,"id_paquete":2,"fecha":"2024-05-01"}`, "id_alumno"},
		{"object package", `{"id_alumno":1,"id_paquete":{"id":2},"fecha":"2024-05-01"}`, "id_paquete"},
		{"array date", `{"id_alumno":1,"id_paquete":2,"fecha":["2024-05-01"]}`, "fecha"},
		{"bool student", `{"id_alumno":true,"id_paquete":2,"fecha":"2024-05-01"}`, "id_alumno"},
		{"non numeric student", `{"id_alumno":"abc","id_paquete":2,"fecha":"2024-05-01"}`, "id_alumno"},
		{"fractional package", `{"id_alumno":1,"id_paquete":2.5,"fecha":"2024-05-01"}`, "id_paquete"},
		{"bad date", `{"id_alumno":1,"id_paquete":2,"fecha":"01/05/2024"}`, "fecha"},
		{"impossible date", `{"id_alumno":1,"id_paquete":2,"fecha":"2024-02-30"}`, "fecha"},
		{"missing wins over coercion", `{"id_alumno":"abc","id_paquete":2}`, "fecha"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec, body := env.do(t, http.MethodPost, "/registrar_consumo", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, body)
			}
			message := errorMessage(t, body)
			if !strings.HasSuffix(message, ": "+tc.field) {
				t.Fatalf("expected message naming %s, got %q", tc.field, message)
			}
			if len(env.store.records) != 0 {
				t.Fatalf("expected nothing stored")
			}
		})
	}
}

func TestRegisterConsumptionMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{`not json`, `[1,2,3]`, `null`} {
		rec, _ := env.do(t, http.MethodPost, "/registrar_consumo", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", body, rec.Code)
		}
	}
}

func TestRegisterConsumptionNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/registrar_consumo", `{"id_alumno":99,"id_paquete":77,"fecha":"2024-05-01"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown student, got %d: %s", rec.Code, body)
	}
	if errorMessage(t, body) != "El alumno no existe" {
		t.Fatalf("unexpected message %s", body)
	}

	rec, body = env.do(t, http.MethodPost, "/registrar_consumo", `{"id_alumno":1,"id_paquete":77,"fecha":"2024-05-01"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown package, got %d: %s", rec.Code, body)
	}
	if errorMessage(t, body) != "El paquete no existe" {
		t.Fatalf("unexpected message %s", body)
	}
}

func TestRegisterConsumptionHidesStoreErrors(t *testing.T) {
	env := newTestEnv(t)
	env.store.failing = true

	rec, body := env.do(t, http.MethodPost, "/registrar_consumo", `{"id_alumno":1,"id_paquete":2,"fecha":"2024-05-01"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(string(body), "10.0.0.5") {
		t.Fatalf("store detail leaked: %s", body)
	}
	if errorMessage(t, body) != "Error interno del servidor" {
		t.Fatalf("unexpected message %s", body)
	}
}

func TestListStudents(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/alumnos", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var items []map[string]interface{}
	decodeBody(t, body, &items)
	if len(items) != len(env.store.students) {
		t.Fatalf("expected %d students, got %d", len(env.store.students), len(items))
	}
	if items[0]["nombre"] != "Ana" || items[0]["grado"] != "5B" {
		t.Fatalf("unexpected first student %v", items[0])
	}
	if items[1]["grado"] != nil {
		t.Fatalf("expected null grade, got %v", items[1]["grado"])
	}
}

func TestListStudentsEmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	env.store.students = nil

	_, body := env.do(t, http.MethodGet, "/alumnos", "")
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestGetStudent(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/alumnos/2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var student map[string]interface{}
	decodeBody(t, body, &student)
	if student["id"] != float64(2) || student["apellido"] != "Gómez" {
		t.Fatalf("unexpected student %v", student)
	}

	rec, body = env.do(t, http.MethodGet, "/alumnos/99", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if errorMessage(t, body) != "Alumno no encontrado" {
		t.Fatalf("unexpected message %s", body)
	}

	rec, _ = env.do(t, http.MethodGet, "/alumnos/abc", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-integer id, got %d", rec.Code)
	}
}

func TestStudentConsumptionHistory(t *testing.T) {
	env := newTestEnv(t)
	for _, date := range []string{"2024-05-01", "2024-05-02"} {
		rec, body := env.do(t, http.MethodPost, "/registrar_consumo", `{"id_alumno":1,"id_paquete":2,"fecha":"`+date+`"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("register %s: %d %s", date, rec.Code, body)
		}
	}

	rec, body := env.do(t, http.MethodGet, "/alumnos/1/consumos", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var items []map[string]interface{}
	decodeBody(t, body, &items)
	if len(items) != 2 || items[0]["fecha"] != "2024-05-02" {
		t.Fatalf("unexpected history %s", body)
	}

	rec, _ = env.do(t, http.MethodGet, "/alumnos/99/consumos", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListPayments(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/pagos", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var items []map[string]interface{}
	decodeBody(t, body, &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(items))
	}
	if items[0]["monto"] != "450.00" || items[0]["fecha"] != "2024-04-30" || items[0]["alumno"] != float64(1) {
		t.Fatalf("unexpected payment %v", items[0])
	}
}

func TestCreatePayment(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/pagos", `{"id_alumno":2,"id_paquete":2,"monto":"120.5","fecha":"2024-05-03"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, body)
	}
	var payment map[string]interface{}
	decodeBody(t, body, &payment)
	if payment["monto"] != "120.50" || payment["alumno"] != float64(2) {
		t.Fatalf("unexpected payment %v", payment)
	}

	rec, body = env.do(t, http.MethodPost, "/pagos", `{"id_alumno":2,"id_paquete":2,"monto":-1,"fecha":"2024-05-03"}`)
	if rec.Code != http.StatusBadRequest || !strings.HasSuffix(errorMessage(t, body), ": monto") {
		t.Fatalf("expected 400 naming monto, got %d: %s", rec.Code, body)
	}

	rec, body = env.do(t, http.MethodPost, "/pagos", `{"id_alumno":2,"id_paquete":2,"fecha":"2024-05-03"}`)
	if rec.Code != http.StatusBadRequest || !strings.HasSuffix(errorMessage(t, body), ": monto") {
		t.Fatalf("expected 400 for missing monto, got %d: %s", rec.Code, body)
	}

	rec, body = env.do(t, http.MethodPost, "/pagos", `{"id_alumno":"dos","id_paquete":2,"monto":1,"fecha":"2024-05-03"}`)
	if rec.Code != http.StatusBadRequest || !strings.HasSuffix(errorMessage(t, body), ": id_alumno") {
		t.Fatalf("expected 400 naming id_alumno, got %d: %s", rec.Code, body)
	}

	rec, _ = env.do(t, http.MethodPost, "/pagos", `{"id_alumno":50,"id_paquete":2,"monto":1,"fecha":"2024-05-03"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown student, got %d", rec.Code)
	}

	_, body = env.do(t, http.MethodGet, "/pagos", "")
	var items []map[string]interface{}
	decodeBody(t, body, &items)
	if len(items) != 2 {
		t.Fatalf("expected 2 payments after create, got %d", len(items))
	}
}

func TestListPackages(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/paquetes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var items []map[string]interface{}
	decodeBody(t, body, &items)
	if len(items) != 1 || items[0]["precio"] != "450.00" || items[0]["comidas_disponibles"] != float64(20) {
		t.Fatalf("unexpected packages %s", body)
	}
}

func TestGenerateQR(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/generar_qr/7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Fatalf("expected image/png, got %s", got)
	}

	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("bitmap: %v", err)
	}
	result, err := zxingqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("decode qr: %v", err)
	}
	if result.GetText() != "https://cafeteria-qr.vercel.app/scan/7" {
		t.Fatalf("unexpected payload %s", result.GetText())
	}

	rec, _ = env.do(t, http.MethodGet, "/generar_qr/siete", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-integer id, got %d", rec.Code)
	}
}

func TestMetricsExposeRegistrations(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/registrar_consumo", `{"id_alumno":1,"id_paquete":2,"fecha":"2024-05-01"}`)
	env.do(t, http.MethodPost, "/registrar_consumo", `{"id_alumno":1,"id_paquete":2,"fecha":"2024-05-01"}`)
	env.do(t, http.MethodGet, "/generar_qr/1", "")
	env.do(t, http.MethodGet, "/generar_qr/1", "")

	rec, body := env.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	text := string(body)
	for _, want := range []string{
		`cafeteria_consumption_registrations_total{result="created"} 1`,
		`cafeteria_consumption_registrations_total{result="duplicate"} 1`,
		`cafeteria_qr_generated_total{source="render"} 1`,
		`cafeteria_qr_generated_total{source="cache"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in metrics output", want)
		}
	}
}

func TestHealthAndCORS(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS header")
	}
}
