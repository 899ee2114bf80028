package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"cafeteria-qr-go/internal/config"
	"cafeteria-qr-go/internal/db"
	consumptiondomain "cafeteria-qr-go/internal/domain/consumption"
	packagesdomain "cafeteria-qr-go/internal/domain/packages"
	paymentsdomain "cafeteria-qr-go/internal/domain/payments"
	qrdomain "cafeteria-qr-go/internal/domain/qr"
	studentsdomain "cafeteria-qr-go/internal/domain/students"
	"cafeteria-qr-go/internal/metrics"
	"cafeteria-qr-go/internal/repository/inmemory"
	redisrepo "cafeteria-qr-go/internal/repository/redis"
	consumptionsql "cafeteria-qr-go/internal/repository/sql/consumption"
	packagessql "cafeteria-qr-go/internal/repository/sql/packages"
	paymentssql "cafeteria-qr-go/internal/repository/sql/payments"
	studentssql "cafeteria-qr-go/internal/repository/sql/students"
	"cafeteria-qr-go/internal/transport/httpserver"
	"cafeteria-qr-go/internal/transport/httpserver/handler"
	"cafeteria-qr-go/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if cfg.DB.AutoMigrate {
		log.Info("app: running migrations")
		err = db.Migrate(dbConn,
			&studentsdomain.ResponsibleParty{},
			&studentsdomain.Student{},
			&packagesdomain.Package{},
			&paymentsdomain.Payment{},
			&consumptiondomain.Record{},
		)
		if err != nil {
			closeDB(dbConn)
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	a := &App{cfg: cfg, db: dbConn}

	qrCache, err := a.newQRCache(log)
	if err != nil {
		closeDB(dbConn)
		return nil, err
	}

	services := handler.Services{
		Students:    studentsdomain.NewService(studentssql.NewSQL(dbConn)),
		Packages:    packagesdomain.NewService(packagessql.NewSQL(dbConn)),
		Payments:    paymentsdomain.NewService(paymentssql.NewSQL(dbConn)),
		Consumption: consumptiondomain.NewService(consumptionsql.NewSQL(dbConn)),
		QR: qrdomain.NewService(qrdomain.Options{
			BaseURL:  cfg.QR.BaseURL,
			Size:     cfg.QR.Size,
			CacheTTL: cfg.QR.CacheTTL,
		}, qrCache),
	}

	m := metrics.New()

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handler.New(services, m, log), m, log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)

	return a, nil
}

// newQRCache uses Redis when REDIS_ADDR is set and a process-local cache otherwise.
func (a *App) newQRCache(log logger.Logger) (qrdomain.Cache, error) {
	if a.cfg.Redis.Addr == "" {
		return inmemory.NewQRImageCache(0), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := redisrepo.NewClient(ctx, a.cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.redis = client
	log.Info("app: qr cache backed by redis", "addr", a.cfg.Redis.Addr)
	return redisrepo.NewQRImageCache(client, log), nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

func closeDB(conn *gorm.DB) {
	if sqlDB, err := conn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
