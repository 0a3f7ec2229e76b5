package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dmehra2102/clinic-api/internal/config"
	"github.com/dmehra2102/clinic-api/internal/service"
	"github.com/dmehra2102/clinic-api/pkg/metrics"
)

type RouterDeps struct {
	Config            *config.Config
	DB                *gorm.DB
	Logger            *zap.Logger
	Collector         *metrics.Collector
	AppointmentSvc    *service.AppointmentService
	PatientSvc        *service.PatientService
	DoctorSvc         *service.DoctorService
	CabinetSvc        *service.CabinetService
	SpecializationSvc *service.SpecializationService
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(deps.Logger))
	r.Use(MetricsMiddleware(deps.Collector))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	appointmentH := NewAppointmentHandler(deps.AppointmentSvc, deps.Config.Scheduling)
	patientH := NewPatientHandler(deps.PatientSvc, deps.AppointmentSvc)
	doctorH := NewDoctorHandler(deps.DoctorSvc, deps.AppointmentSvc)
	cabinetH := NewCabinetHandler(deps.CabinetSvc)
	specializationH := NewSpecializationHandler(deps.SpecializationSvc)

	api := r.Group("/api/v1")
	{
		appointments := api.Group("/appointments")
		{
			appointments.POST("", appointmentH.Create)
			appointments.GET("", appointmentH.List)
			appointments.GET("/:id", appointmentH.Get)
			appointments.PUT("/:id", appointmentH.Update)
			appointments.PATCH("/:id/cancel", appointmentH.Cancel)
			appointments.PATCH("/:id/complete", appointmentH.Complete)
			appointments.DELETE("/:id", appointmentH.Delete)
		}

		patients := api.Group("/patients")
		{
			patients.POST("", patientH.Create)
			patients.GET("", patientH.List)
			patients.GET("/:id", patientH.Get)
			patients.PUT("/:id", patientH.Update)
			patients.DELETE("/:id", patientH.Delete)
			patients.GET("/:id/appointments", patientH.Appointments)
		}

		doctors := api.Group("/doctors")
		{
			doctors.POST("", doctorH.Create)
			doctors.GET("", doctorH.List)
			doctors.GET("/:id", doctorH.Get)
			doctors.PUT("/:id", doctorH.Update)
			doctors.DELETE("/:id", doctorH.Delete)
			doctors.GET("/:id/appointments", doctorH.Appointments)
			doctors.GET("/:id/schedule", doctorH.Schedule)
			doctors.POST("/:id/specializations/:specId", doctorH.AddSpecialization)
			doctors.DELETE("/:id/specializations/:specId", doctorH.RemoveSpecialization)
		}

		cabinets := api.Group("/cabinets")
		{
			cabinets.POST("", cabinetH.Create)
			cabinets.GET("", cabinetH.List)
			cabinets.GET("/:id", cabinetH.Get)
			cabinets.PUT("/:id", cabinetH.Update)
			cabinets.DELETE("/:id", cabinetH.Delete)
			cabinets.GET("/:id/doctors", cabinetH.Doctors)
		}

		specializations := api.Group("/specializations")
		{
			specializations.POST("", specializationH.Create)
			specializations.GET("", specializationH.List)
			specializations.GET("/:id", specializationH.Get)
			specializations.DELETE("/:id", specializationH.Delete)
		}
	}

	return r
}
