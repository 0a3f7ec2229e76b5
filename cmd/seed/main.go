package main

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dmehra2102/clinic-api/internal/config"
	"github.com/dmehra2102/clinic-api/internal/domain/appointment"
	"github.com/dmehra2102/clinic-api/internal/domain/cabinet"
	"github.com/dmehra2102/clinic-api/internal/domain/doctor"
	"github.com/dmehra2102/clinic-api/internal/domain/patient"
	"github.com/dmehra2102/clinic-api/internal/domain/specialization"
	"github.com/dmehra2102/clinic-api/internal/repository"
	"github.com/dmehra2102/clinic-api/internal/service"
	"github.com/dmehra2102/clinic-api/pkg/database"
	"github.com/dmehra2102/clinic-api/pkg/logger"
)

var defaultSpecializations = []string{
	"Therapist",
	"Surgeon",
	"Cardiologist",
	"Neurologist",
	"Ophthalmologist",
	"Pediatrician",
	"Dermatologist",
}

const (
	doctorCount  = 10
	patientCount = 40
)

// Seeds the database with demo data: the default specializations, a
// floor of cabinets, a staff of doctors, a patient registry, and a
// believable schedule for the next few days. Appointments go through
// the booking service so every seeded visit satisfies the slot rules.
func main() {
	if err := run(); err != nil {
		zap.NewExample().Fatal("seed failed", zap.Error(err))
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

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	if err := database.Migrate(db, log); err != nil {
		return err
	}

	ctx := context.Background()
	faker := gofakeit.New(0)

	specRepo := repository.NewSpecializationRepository(db)
	cabinetRepo := repository.NewCabinetRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	tx := repository.NewTransactor(db)

	auditSvc := service.NewAuditService(auditRepo, nil, log)
	defer auditSvc.Shutdown()

	limits := appointment.SlotLimits{
		MaxPerDay:   cfg.Scheduling.MaxPerDoctorPerDay,
		MinInterval: cfg.Scheduling.MinInterval,
	}
	bookingSvc := service.NewAppointmentService(
		appointmentRepo, patientRepo, doctorRepo, tx, limits, auditSvc, nil, log)

	specs, err := seedSpecializations(ctx, specRepo)
	if err != nil {
		return err
	}
	log.Info("specializations ready", zap.Int("count", len(specs)))

	cabinets, err := seedCabinets(ctx, cabinetRepo, faker)
	if err != nil {
		return err
	}
	log.Info("cabinets ready", zap.Int("count", len(cabinets)))

	doctors, err := seedDoctors(ctx, doctorRepo, faker, specs, cabinets)
	if err != nil {
		return err
	}
	log.Info("doctors ready", zap.Int("count", len(doctors)))

	patients, err := seedPatients(ctx, patientRepo, faker)
	if err != nil {
		return err
	}
	log.Info("patients ready", zap.Int("count", len(patients)))

	booked := seedSchedule(ctx, bookingSvc, faker, doctors, patients, cfg.Scheduling)
	log.Info("schedule ready", zap.Int("appointments", booked))

	return nil
}

func seedSpecializations(ctx context.Context, repo *repository.SpecializationRepository) ([]*specialization.Specialization, error) {
	out := make([]*specialization.Specialization, 0, len(defaultSpecializations))
	for _, name := range defaultSpecializations {
		if existing, err := repo.GetByName(ctx, name); err == nil {
			out = append(out, existing)
			continue
		}
		sp := &specialization.Specialization{Name: name}
		if err := repo.Create(ctx, sp); err != nil {
			return nil, fmt.Errorf("seeding specialization %q: %w", name, err)
		}
		out = append(out, sp)
	}
	return out, nil
}

func seedCabinets(ctx context.Context, repo *repository.CabinetRepository, faker *gofakeit.Faker) ([]*cabinet.Cabinet, error) {
	out := make([]*cabinet.Cabinet, 0, 12)
	for floor := 1; floor <= 3; floor++ {
		for room := 1; room <= 4; room++ {
			cb := &cabinet.Cabinet{
				Number:      fmt.Sprintf("%d%02d", floor, room),
				Floor:       floor,
				Description: faker.Sentence(6),
			}
			if err := repo.Create(ctx, cb); err != nil {
				// Re-running the seeder against a populated database is
				// fine; existing cabinets are kept as they are.
				continue
			}
			out = append(out, cb)
		}
	}
	if len(out) == 0 {
		existing, err := repo.List(ctx, cabinet.ListQuery{Page: 1, PageSize: 100})
		if err != nil {
			return nil, err
		}
		out = existing
	}
	return out, nil
}

func seedDoctors(ctx context.Context, repo *repository.DoctorRepository, faker *gofakeit.Faker, specs []*specialization.Specialization, cabinets []*cabinet.Cabinet) ([]*doctor.Doctor, error) {
	out := make([]*doctor.Doctor, 0, doctorCount)
	for i := 0; i < doctorCount; i++ {
		spec := specs[i%len(specs)]
		var cabinetID *uuid.UUID
		if len(cabinets) > 0 {
			id := cabinets[i%len(cabinets)].ID
			cabinetID = &id
		}
		d := &doctor.Doctor{
			FullName:        faker.Name(),
			Phone:           faker.Phone(),
			ExperienceYears: faker.Number(1, 35),
			Specializations: []*specialization.Specialization{spec},
			CabinetID:       cabinetID,
		}
		if err := repo.Create(ctx, d); err != nil {
			return nil, fmt.Errorf("seeding doctor: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}

func seedPatients(ctx context.Context, repo *repository.PatientRepository, faker *gofakeit.Faker) ([]*patient.Patient, error) {
	out := make([]*patient.Patient, 0, patientCount)
	for i := 0; i < patientCount; i++ {
		p := &patient.Patient{
			FullName:        faker.Name(),
			BirthDate:       faker.DateRange(time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC)),
			Phone:           faker.Phone(),
			Address:         faker.Address().Address,
			InsuranceNumber: faker.Numerify("################"),
		}
		if err := repo.Create(ctx, p); err != nil {
			// Insurance number collision on rerun, skip.
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// seedSchedule books visits for the coming week. Rejections by the
// booking rules are expected when slots collide and are simply skipped.
func seedSchedule(ctx context.Context, svc *service.AppointmentService, faker *gofakeit.Faker, doctors []*doctor.Doctor, patients []*patient.Patient, sched config.SchedulingConfig) int {
	if len(doctors) == 0 || len(patients) == 0 {
		return 0
	}

	booked := 0
	today := time.Now().Truncate(24 * time.Hour)
	for day := 1; day <= 5; day++ {
		date := today.AddDate(0, 0, day)
		for _, d := range doctors {
			visits := faker.Number(2, 6)
			for v := 0; v < visits; v++ {
				slot := appointment.TimeOfDay(int(sched.DayStart.Minutes()) + v*30)
				p := patients[faker.Number(0, len(patients)-1)]

				_, err := svc.Schedule(ctx, &appointment.CreateCommand{
					PatientID: p.ID,
					DoctorID:  d.ID,
					Date:      date,
					Time:      slot,
				}, "seed", "127.0.0.1")
				if err != nil {
					continue
				}
				booked++
			}
		}
	}
	return booked
}
