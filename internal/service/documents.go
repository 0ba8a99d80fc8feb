package service

import (
	"encoding/json"
	"fmt"

	"carepulse/internal/domain"
)

// Keys owned by the document envelope rather than its data.
var envelopeKeys = []string{"id", "createdAt", "updatedAt"}

// toData flattens v into the key/value form stored in a document, using the
// JSON names of its fields.
func toData(v any, drop ...string) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	for _, key := range append(envelopeKeys, drop...) {
		delete(data, key)
	}
	return data, nil
}

func fromData(data map[string]any, v any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

func patientFromDocument(doc *domain.Document) (*domain.Patient, error) {
	var p domain.Patient
	if err := fromData(doc.Data, &p); err != nil {
		return nil, err
	}
	p.ID = doc.ID
	p.CreatedAt = doc.CreatedAt
	p.UpdatedAt = doc.UpdatedAt
	return &p, nil
}

func appointmentFromDocument(doc *domain.Document) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := fromData(doc.Data, &a); err != nil {
		return nil, err
	}
	a.ID = doc.ID
	a.CreatedAt = doc.CreatedAt
	a.UpdatedAt = doc.UpdatedAt
	return &a, nil
}
