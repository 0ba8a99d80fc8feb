package service

import (
	"context"

	"go.uber.org/zap"

	"carepulse/config"
	"carepulse/internal/domain"
	"carepulse/internal/repository"
	"carepulse/internal/storage"
)

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Notifier    AppointmentNotifier
	PasskeyHash string
}

type Services struct {
	User        UserService
	Patient     PatientService
	Appointment AppointmentService
	Admin       AdminService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:        NewUserService(deps.Repos.Users, deps.Logger),
		Patient:     NewPatientService(deps.Repos.Documents, deps.FileStorage, deps.Config.S3.PresignTTL, deps.Logger),
		Appointment: NewAppointmentService(deps.Repos.Documents, deps.Notifier, deps.Logger),
		Admin:       NewAdminService(deps.PasskeyHash, deps.Config.Admin, deps.Logger),
	}
}

type UserService interface {
	CreateUser(ctx context.Context, params domain.CreateUserParams) (*domain.User, error)
	FindUsersByEmail(ctx context.Context, email string) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

type PatientService interface {
	RegisterPatient(ctx context.Context, params domain.RegisterPatientParams) (*domain.Patient, error)
	GetPatientByUserID(ctx context.Context, userID string) (*domain.Patient, error)
	GetIdentificationDocument(ctx context.Context, userID string) (*domain.Attachment, error)
}

type AppointmentService interface {
	CreateAppointment(ctx context.Context, params domain.CreateAppointmentParams) (*domain.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*domain.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, update domain.AppointmentUpdate) (*domain.Appointment, error)
	ListRecent(ctx context.Context) (*domain.RecentAppointments, error)
}

type AdminService interface {
	CreateSession(ctx context.Context, passkey string) (*domain.AdminToken, error)
	ParseToken(ctx context.Context, token string) error
}

// AppointmentNotifier receives every appointment change, e.g. the admin feed.
type AppointmentNotifier interface {
	Publish(event domain.AppointmentEvent)
}
