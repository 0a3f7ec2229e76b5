package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dmehra2102/clinic-api/internal/config"
	"github.com/dmehra2102/clinic-api/internal/domain/appointment"
	v1 "github.com/dmehra2102/clinic-api/internal/handler/v1"
	"github.com/dmehra2102/clinic-api/internal/repository"
	"github.com/dmehra2102/clinic-api/internal/service"
	"github.com/dmehra2102/clinic-api/pkg/database"
	"github.com/dmehra2102/clinic-api/pkg/logger"
	"github.com/dmehra2102/clinic-api/pkg/metrics"
	"github.com/dmehra2102/clinic-api/pkg/tracer"
)

func main() {
	if err := run(); err != nil {
		zap.NewExample().Fatal("server exited", zap.Error(err))
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	log.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	collector := metrics.NewCollector("clinic")

	appointmentRepo := repository.NewAppointmentRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	cabinetRepo := repository.NewCabinetRepository(db)
	specializationRepo := repository.NewSpecializationRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	tx := repository.NewTransactor(db)

	auditSvc := service.NewAuditService(auditRepo, collector, log)
	defer auditSvc.Shutdown()

	limits := appointment.SlotLimits{
		MaxPerDay:   cfg.Scheduling.MaxPerDoctorPerDay,
		MinInterval: cfg.Scheduling.MinInterval,
	}

	appointmentSvc := service.NewAppointmentService(
		appointmentRepo, patientRepo, doctorRepo, tx, limits, auditSvc, collector, log)
	patientSvc := service.NewPatientService(patientRepo, appointmentRepo, tx, auditSvc, collector, log)
	doctorSvc := service.NewDoctorService(
		doctorRepo, specializationRepo, cabinetRepo, appointmentRepo, tx, auditSvc, log)
	cabinetSvc := service.NewCabinetService(cabinetRepo, doctorRepo, auditSvc, log)
	specializationSvc := service.NewSpecializationService(specializationRepo, doctorRepo, auditSvc, log)

	router := v1.NewRouter(v1.RouterDeps{
		Config:            cfg,
		DB:                db,
		Logger:            log,
		Collector:         collector,
		AppointmentSvc:    appointmentSvc,
		PatientSvc:        patientSvc,
		DoctorSvc:         doctorSvc,
		CabinetSvc:        cabinetSvc,
		SpecializationSvc: specializationSvc,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}
