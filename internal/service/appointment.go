package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"carepulse/internal/domain"
	"carepulse/internal/repository"
)

// recentLimit caps the rows of the admin table. Counts cover every record.
const recentLimit = 100

type AppointmentServiceImpl struct {
	docs     repository.DocumentRepository
	notifier AppointmentNotifier
	logger   *zap.Logger
}

func NewAppointmentService(docs repository.DocumentRepository, notifier AppointmentNotifier, logger *zap.Logger) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		docs:     docs,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *AppointmentServiceImpl) CreateAppointment(ctx context.Context, params domain.CreateAppointmentParams) (*domain.Appointment, error) {
	if params.Status == "" {
		params.Status = domain.AppointmentStatusPending
	}

	data, err := toData(params)
	if err != nil {
		return nil, err
	}

	doc, err := s.docs.Create(ctx, domain.CollectionAppointments, "", data)
	if err != nil {
		s.logger.Error("failed to create appointment", zap.String("patientId", params.PatientID), zap.Error(err))
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	appointment, err := appointmentFromDocument(doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment created", zap.String("appointmentId", appointment.ID))
	s.publish(domain.AppointmentCreated, appointment)
	return appointment, nil
}

func (s *AppointmentServiceImpl) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	doc, err := s.docs.Get(ctx, domain.CollectionAppointments, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("failed to get appointment", zap.String("appointmentId", id), zap.Error(err))
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return appointmentFromDocument(doc)
}

// UpdateAppointment writes only the fields set on update.
func (s *AppointmentServiceImpl) UpdateAppointment(ctx context.Context, id string, update domain.AppointmentUpdate) (*domain.Appointment, error) {
	payload := update.Payload()
	if len(payload) == 0 {
		return s.GetAppointment(ctx, id)
	}

	doc, err := s.docs.Update(ctx, domain.CollectionAppointments, id, payload)
	if err != nil {
		s.logger.Error("failed to update appointment", zap.String("appointmentId", id), zap.Error(err))
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	appointment, err := appointmentFromDocument(doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info("appointment updated", zap.String("appointmentId", id), zap.String("status", string(appointment.Status)))
	s.publish(domain.AppointmentUpdated, appointment)
	return appointment, nil
}

// ListRecent returns the newest appointments with their patient names and
// the number of appointments per status.
func (s *AppointmentServiceImpl) ListRecent(ctx context.Context) (*domain.RecentAppointments, error) {
	list, err := s.docs.List(ctx, domain.CollectionAppointments, domain.DocumentFilter{OrderDesc: true, Limit: recentLimit})
	if err != nil {
		s.logger.Error("failed to list appointments", zap.Error(err))
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	recent := &domain.RecentAppointments{
		TotalCount: list.Total,
		Documents:  make([]domain.Appointment, 0, len(list.Documents)),
	}

	counts := map[domain.AppointmentStatus]*int{
		domain.AppointmentStatusScheduled: &recent.ScheduledCount,
		domain.AppointmentStatusPending:   &recent.PendingCount,
		domain.AppointmentStatusCancelled: &recent.CancelledCount,
	}
	for status, count := range counts {
		byStatus, err := s.docs.List(ctx, domain.CollectionAppointments, domain.DocumentFilter{
			Equal: map[string]any{"status": string(status)},
			Limit: 1,
		})
		if err != nil {
			return nil, fmt.Errorf("count %s appointments: %w", status, err)
		}
		*count = byStatus.Total
	}

	names := make(map[string]string)
	for i := range list.Documents {
		appointment, err := appointmentFromDocument(&list.Documents[i])
		if err != nil {
			s.logger.Warn("skipping unreadable appointment", zap.String("appointmentId", list.Documents[i].ID), zap.Error(err))
			continue
		}
		appointment.PatientName = s.patientName(ctx, appointment.PatientID, names)
		recent.Documents = append(recent.Documents, *appointment)
	}

	return recent, nil
}

func (s *AppointmentServiceImpl) patientName(ctx context.Context, patientID string, cache map[string]string) string {
	if patientID == "" {
		return ""
	}
	if name, ok := cache[patientID]; ok {
		return name
	}

	name := ""
	doc, err := s.docs.Get(ctx, domain.CollectionPatients, patientID)
	if err != nil {
		s.logger.Warn("patient of appointment not found", zap.String("patientId", patientID), zap.Error(err))
	} else if patient, err := patientFromDocument(doc); err == nil {
		name = patient.Name
	}
	cache[patientID] = name
	return name
}

func (s *AppointmentServiceImpl) publish(eventType domain.AppointmentEventType, appointment *domain.Appointment) {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(domain.AppointmentEvent{Type: eventType, Appointment: *appointment})
}
