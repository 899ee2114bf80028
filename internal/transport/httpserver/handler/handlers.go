package handler

import (
	consumptiondomain "cafeteria-qr-go/internal/domain/consumption"
	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	paymentsdomain "cafeteria-qr-go/internal/domain/payments"
	qrdomain "cafeteria-qr-go/internal/domain/qr"
	studentsdomain "cafeteria-qr-go/internal/domain/students"
	"cafeteria-qr-go/internal/metrics"
	"cafeteria-qr-go/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type Services struct {
	Students    *studentsdomain.Service
	Packages    *packagesdomain.Service
	Payments    *paymentsdomain.Service
	Consumption *consumptiondomain.Service
	QR          *qrdomain.Service
}

type Handlers struct {
	Students    *studentsdomain.Service
	Packages    *packagesdomain.Service
	Payments    *paymentsdomain.Service
	Consumption *consumptiondomain.Service
	QR          *qrdomain.Service
	metrics     *metrics.Metrics
	validate    *validator.Validate
	log         logger.Logger
}

func New(services Services, m *metrics.Metrics, log logger.Logger) *Handlers {
	if m == nil {
		m = metrics.New()
	}
	return &Handlers{
		Students:    services.Students,
		Packages:    services.Packages,
		Payments:    services.Payments,
		Consumption: services.Consumption,
		QR:          services.QR,
		metrics:     m,
		validate:    newValidator(),
		log:         log,
	}
}
