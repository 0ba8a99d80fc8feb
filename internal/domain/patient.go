package domain

import (
	"time"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type Patient struct {
	ID                        string    `json:"id"`
	UserID                    string    `json:"userId"`
	Name                      string    `json:"name"`
	Email                     string    `json:"email"`
	Phone                     string    `json:"phone"`
	BirthDate                 time.Time `json:"birthDate"`
	Gender                    Gender    `json:"gender"`
	Address                   string    `json:"address"`
	Occupation                string    `json:"occupation"`
	EmergencyContactName      string    `json:"emergencyContactName"`
	EmergencyContactNumber    string    `json:"emergencyContactNumber"`
	PrimaryPhysician          string    `json:"primaryPhysician"`
	InsuranceProvider         string    `json:"insuranceProvider"`
	InsurancePolicyNumber     string    `json:"insurancePolicyNumber"`
	Allergies                 string    `json:"allergies,omitempty"`
	CurrentMedication         string    `json:"currentMedication,omitempty"`
	FamilyMedicalHistory      string    `json:"familyMedicalHistory,omitempty"`
	PastMedicalHistory        string    `json:"pastMedicalHistory,omitempty"`
	IdentificationType        string    `json:"identificationType,omitempty"`
	IdentificationNumber      string    `json:"identificationNumber,omitempty"`
	IdentificationDocumentID  string    `json:"identificationDocumentId,omitempty"`
	IdentificationDocumentURL string    `json:"identificationDocumentUrl,omitempty"`
	TreatmentConsent          bool      `json:"treatmentConsent"`
	DisclosureConsent         bool      `json:"disclosureConsent"`
	PrivacyConsent            bool      `json:"privacyConsent"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

// RegisterPatientParams carries a full registration. Attachment is nil unless
// the patient provided an identification document.
type RegisterPatientParams struct {
	UserID                 string      `json:"userId"`
	Name                   string      `json:"name"`
	Email                  string      `json:"email"`
	Phone                  string      `json:"phone"`
	BirthDate              time.Time   `json:"birthDate"`
	Gender                 Gender      `json:"gender"`
	Address                string      `json:"address"`
	Occupation             string      `json:"occupation"`
	EmergencyContactName   string      `json:"emergencyContactName"`
	EmergencyContactNumber string      `json:"emergencyContactNumber"`
	PrimaryPhysician       string      `json:"primaryPhysician"`
	InsuranceProvider      string      `json:"insuranceProvider"`
	InsurancePolicyNumber  string      `json:"insurancePolicyNumber"`
	Allergies              string      `json:"allergies,omitempty"`
	CurrentMedication      string      `json:"currentMedication,omitempty"`
	FamilyMedicalHistory   string      `json:"familyMedicalHistory,omitempty"`
	PastMedicalHistory     string      `json:"pastMedicalHistory,omitempty"`
	IdentificationType     string      `json:"identificationType,omitempty"`
	IdentificationNumber   string      `json:"identificationNumber,omitempty"`
	TreatmentConsent       bool        `json:"treatmentConsent"`
	DisclosureConsent      bool        `json:"disclosureConsent"`
	PrivacyConsent         bool        `json:"privacyConsent"`
	Attachment             *Attachment `json:"-"`
}
