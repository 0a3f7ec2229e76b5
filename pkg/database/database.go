package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmehra2102/clinic-api/internal/config"
	"github.com/dmehra2102/clinic-api/internal/domain"
	"github.com/dmehra2102/clinic-api/internal/domain/appointment"
	"github.com/dmehra2102/clinic-api/internal/domain/cabinet"
	"github.com/dmehra2102/clinic-api/internal/domain/doctor"
	"github.com/dmehra2102/clinic-api/internal/domain/patient"
	"github.com/dmehra2102/clinic-api/internal/domain/specialization"
)

func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
		PrepareStmt:          true,
		TranslateError:       true,
		DisableAutomaticPing: false,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: false,
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	schemas := []string{"clinic", "audit"} // logical namespaces
	for _, schema := range schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&specialization.Specialization{},
		&cabinet.Cabinet{},
		&patient.Patient{},
		&doctor.Doctor{},
		&appointment.Appointment{},
		&domain.AuditLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	if err := createConstraints(db); err != nil {
		return fmt.Errorf("creating constraints: %w", err)
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// createConstraints adds the referential actions and partial unique
// indexes AutoMigrate cannot express. The two unique indexes are the
// commit-time backstop for the slot checks: two racing bookings for the
// same doctor or patient slot both pass validation, but the second one
// fails its insert instead of silently double-booking.
func createConstraints(db *gorm.DB) error {
	ddl := []struct {
		name  string
		query string
	}{
		{
			name: "fk_appointments_patient_cascade",
			query: `ALTER TABLE clinic.appointments
				DROP CONSTRAINT IF EXISTS fk_appointments_patient,
				ADD CONSTRAINT fk_appointments_patient
				FOREIGN KEY (patient_id) REFERENCES clinic.patients (id) ON DELETE CASCADE`,
		},
		{
			name: "fk_appointments_doctor_restrict",
			query: `ALTER TABLE clinic.appointments
				DROP CONSTRAINT IF EXISTS fk_appointments_doctor,
				ADD CONSTRAINT fk_appointments_doctor
				FOREIGN KEY (doctor_id) REFERENCES clinic.doctors (id) ON DELETE RESTRICT`,
		},
		{
			name: "uq_appointments_doctor_slot",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_doctor_slot
				ON clinic.appointments (doctor_id, appointment_date, appointment_time)
				WHERE status = 'scheduled'`,
		},
		{
			name: "uq_appointments_patient_slot",
			query: `CREATE UNIQUE INDEX IF NOT EXISTS uq_appointments_patient_slot
				ON clinic.appointments (patient_id, appointment_date, appointment_time)
				WHERE status = 'scheduled'`,
		},
		{
			name: "idx_appointments_doctor_day",
			query: `CREATE INDEX IF NOT EXISTS idx_appointments_doctor_day
				ON clinic.appointments (doctor_id, appointment_date, appointment_time)`,
		},
	}

	for _, d := range ddl {
		if err := db.Exec(d.query).Error; err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
	}

	return nil
}
