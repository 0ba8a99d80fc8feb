package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"

	"carepulse/internal/domain"
	"carepulse/internal/repository"
	"carepulse/internal/storage"
)

// Optional registration fields. A re-registration writes them even when empty
// so that cleared values replace the stored ones.
var clearablePatientKeys = []string{
	"allergies",
	"currentMedication",
	"familyMedicalHistory",
	"pastMedicalHistory",
	"identificationType",
	"identificationNumber",
	"identificationDocumentId",
}

type PatientServiceImpl struct {
	docs       repository.DocumentRepository
	files      storage.FileStorage
	presignTTL time.Duration
	logger     *zap.Logger
}

// NewPatientService builds the patient service. files may be nil when no
// object storage is configured; registrations with a document then fail.
func NewPatientService(docs repository.DocumentRepository, files storage.FileStorage, presignTTL time.Duration, logger *zap.Logger) *PatientServiceImpl {
	return &PatientServiceImpl{
		docs:       docs,
		files:      files,
		presignTTL: presignTTL,
		logger:     logger,
	}
}

// RegisterPatient stores the registration of a user, replacing an earlier one.
// The document is uploaded first and removed again if the record cannot be
// written. A document of the earlier registration is removed once replaced
// or dropped.
func (s *PatientServiceImpl) RegisterPatient(ctx context.Context, params domain.RegisterPatientParams) (*domain.Patient, error) {
	var key string
	if params.Attachment != nil {
		if s.files == nil {
			return nil, fmt.Errorf("upload identification document: %w: no file storage", domain.ErrUnavailable)
		}
		uploaded, err := s.files.UploadFile(ctx, params.Attachment.Data, params.Attachment.FileName)
		if err != nil {
			s.logger.Error("failed to upload identification document", zap.String("userId", params.UserID), zap.Error(err))
			return nil, fmt.Errorf("upload identification document: %w", err)
		}
		key = uploaded
	}

	patient, previousKey, err := s.save(ctx, params, key)
	if err != nil {
		s.logger.Error("failed to store patient", zap.String("userId", params.UserID), zap.Error(err))
		s.discard(ctx, key)
		return nil, err
	}
	if previousKey != "" && previousKey != key {
		s.discard(ctx, previousKey)
	}

	s.logger.Info("patient registered", zap.String("patientId", patient.ID), zap.String("userId", params.UserID))
	return patient, nil
}

func (s *PatientServiceImpl) save(ctx context.Context, params domain.RegisterPatientParams, key string) (*domain.Patient, string, error) {
	existing, err := s.findByUserID(ctx, params.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	data, err := toData(patientRecord(params, key), "identificationDocumentUrl")
	if err != nil {
		return nil, "", err
	}
	for _, k := range clearablePatientKeys {
		if _, ok := data[k]; !ok {
			data[k] = ""
		}
	}

	var doc *domain.Document
	var previousKey string
	if existing != nil {
		previousKey = existing.IdentificationDocumentID
		doc, err = s.docs.Update(ctx, domain.CollectionPatients, existing.ID, data)
	} else {
		doc, err = s.docs.Create(ctx, domain.CollectionPatients, "", data)
	}
	if err != nil {
		return nil, "", fmt.Errorf("store patient: %w", err)
	}

	patient, err := patientFromDocument(doc)
	if err != nil {
		return nil, "", err
	}
	return patient, previousKey, nil
}

func patientRecord(params domain.RegisterPatientParams, key string) domain.Patient {
	return domain.Patient{
		UserID:                   params.UserID,
		Name:                     params.Name,
		Email:                    params.Email,
		Phone:                    params.Phone,
		BirthDate:                params.BirthDate,
		Gender:                   params.Gender,
		Address:                  params.Address,
		Occupation:               params.Occupation,
		EmergencyContactName:     params.EmergencyContactName,
		EmergencyContactNumber:   params.EmergencyContactNumber,
		PrimaryPhysician:         params.PrimaryPhysician,
		InsuranceProvider:        params.InsuranceProvider,
		InsurancePolicyNumber:    params.InsurancePolicyNumber,
		Allergies:                params.Allergies,
		CurrentMedication:        params.CurrentMedication,
		FamilyMedicalHistory:     params.FamilyMedicalHistory,
		PastMedicalHistory:       params.PastMedicalHistory,
		IdentificationType:       params.IdentificationType,
		IdentificationNumber:     params.IdentificationNumber,
		IdentificationDocumentID: key,
		TreatmentConsent:         params.TreatmentConsent,
		DisclosureConsent:        params.DisclosureConsent,
		PrivacyConsent:           params.PrivacyConsent,
	}
}

func (s *PatientServiceImpl) discard(ctx context.Context, key string) {
	if key == "" || s.files == nil {
		return
	}
	if err := s.files.DeleteFile(ctx, key); err != nil {
		s.logger.Warn("failed to delete identification document", zap.String("key", key), zap.Error(err))
	}
}

func (s *PatientServiceImpl) findByUserID(ctx context.Context, userID string) (*domain.Patient, error) {
	list, err := s.docs.List(ctx, domain.CollectionPatients, domain.DocumentFilter{
		Equal:     map[string]any{"userId": userID},
		OrderDesc: true,
		Limit:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("find patient: %w", err)
	}
	if len(list.Documents) == 0 {
		return nil, fmt.Errorf("patient of user %s: %w", userID, domain.ErrNotFound)
	}
	return patientFromDocument(&list.Documents[0])
}

func (s *PatientServiceImpl) GetPatientByUserID(ctx context.Context, userID string) (*domain.Patient, error) {
	patient, err := s.findByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patient.IdentificationDocumentID != "" && s.files != nil {
		url, err := s.files.GetPresignedURL(ctx, patient.IdentificationDocumentID, s.presignTTL)
		if err != nil {
			s.logger.Warn("failed to presign identification document", zap.String("patientId", patient.ID), zap.Error(err))
		} else {
			patient.IdentificationDocumentURL = url
		}
	}
	return patient, nil
}

func (s *PatientServiceImpl) GetIdentificationDocument(ctx context.Context, userID string) (*domain.Attachment, error) {
	patient, err := s.findByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient.IdentificationDocumentID == "" {
		return nil, fmt.Errorf("identification document of user %s: %w", userID, domain.ErrNotFound)
	}
	if s.files == nil {
		return nil, fmt.Errorf("identification document: %w: no file storage", domain.ErrUnavailable)
	}

	data, err := s.files.GetFile(ctx, patient.IdentificationDocumentID)
	if err != nil {
		return nil, fmt.Errorf("identification document: %w", err)
	}
	contentType, _, err := storage.DetectDocument(data, patient.IdentificationDocumentID)
	if err != nil {
		return nil, err
	}

	return domain.NewAttachment(path.Base(patient.IdentificationDocumentID), contentType, data), nil
}
