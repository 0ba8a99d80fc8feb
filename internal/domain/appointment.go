package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID                 string            `json:"id"`
	PatientID          string            `json:"patient"`
	UserID             string            `json:"userId"`
	PrimaryPhysician   string            `json:"primaryPhysician"`
	Schedule           time.Time         `json:"schedule"`
	Reason             string            `json:"reason"`
	Note               string            `json:"note,omitempty"`
	Status             AppointmentStatus `json:"status"`
	CancellationReason string            `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
	PatientName        string            `json:"patientName,omitempty"`
}

type CreateAppointmentParams struct {
	UserID           string            `json:"userId"`
	PatientID        string            `json:"patient"`
	PrimaryPhysician string            `json:"primaryPhysician"`
	Schedule         time.Time         `json:"schedule"`
	Reason           string            `json:"reason"`
	Note             string            `json:"note"`
	Status           AppointmentStatus `json:"status"`
}

// AppointmentUpdate is a partial update. Nil fields are left untouched by
// the store.
type AppointmentUpdate struct {
	PrimaryPhysician   *string            `json:"primaryPhysician,omitempty"`
	Schedule           *time.Time         `json:"schedule,omitempty"`
	Status             *AppointmentStatus `json:"status,omitempty"`
	CancellationReason *string            `json:"cancellationReason,omitempty"`
}

// Payload returns only the fields set on u, keyed as they are stored.
func (u AppointmentUpdate) Payload() map[string]any {
	out := make(map[string]any, 4)
	if u.PrimaryPhysician != nil {
		out["primaryPhysician"] = *u.PrimaryPhysician
	}
	if u.Schedule != nil {
		out["schedule"] = u.Schedule.UTC().Format(time.RFC3339)
	}
	if u.Status != nil {
		out["status"] = string(*u.Status)
	}
	if u.CancellationReason != nil {
		out["cancellationReason"] = *u.CancellationReason
	}
	return out
}

type RecentAppointments struct {
	TotalCount     int           `json:"totalCount"`
	ScheduledCount int           `json:"scheduledCount"`
	PendingCount   int           `json:"pendingCount"`
	CancelledCount int           `json:"cancelledCount"`
	Documents      []Appointment `json:"documents"`
}

type AppointmentEventType string

const (
	AppointmentCreated AppointmentEventType = "appointment.created"
	AppointmentUpdated AppointmentEventType = "appointment.updated"
)

type AppointmentEvent struct {
	Type        AppointmentEventType `json:"type"`
	Appointment Appointment          `json:"appointment"`
}
