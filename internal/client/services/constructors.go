package services

import (
	"encoding/json"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/mapper"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
)

// InventoryService manages frame and lens stock.
type InventoryService = CollectionService[models.InventoryFields]

// PatientService manages patient contact records.
type PatientService = CollectionService[models.PatientFields]

// DiagnosisService manages optometric exam results.
type DiagnosisService = CollectionService[models.DiagnosisFields]

// PrescriptionService manages lens orders and their payment state.
type PrescriptionService = CollectionService[models.PrescriptionFields]

func NewInventoryService(deps Deps) *InventoryService {
	return newCollectionService(deps,
		func(ownerID string, f models.InventoryFields) models.Payload {
			return mapper.InventoryToPayload(ownerID, f)
		},
		func(raw json.RawMessage) (string, models.InventoryFields, error) {
			var row struct {
				ID string `json:"id"`
				models.InventoryPayload
			}
			if err := json.Unmarshal(raw, &row); err != nil {
				return "", models.InventoryFields{}, err
			}
			f, err := mapper.InventoryFromPayload(row.InventoryPayload)
			return row.ID, f, err
		})
}

func NewPatientService(deps Deps) *PatientService {
	return newCollectionService(deps,
		func(ownerID string, f models.PatientFields) models.Payload {
			return mapper.PatientToPayload(ownerID, f)
		},
		func(raw json.RawMessage) (string, models.PatientFields, error) {
			var row struct {
				ID string `json:"id"`
				models.PatientPayload
			}
			if err := json.Unmarshal(raw, &row); err != nil {
				return "", models.PatientFields{}, err
			}
			f, err := mapper.PatientFromPayload(row.PatientPayload)
			return row.ID, f, err
		})
}

func NewDiagnosisService(deps Deps) *DiagnosisService {
	return newCollectionService(deps,
		func(ownerID string, f models.DiagnosisFields) models.Payload {
			return mapper.DiagnosisToPayload(ownerID, f)
		},
		func(raw json.RawMessage) (string, models.DiagnosisFields, error) {
			var row struct {
				ID string `json:"id"`
				models.DiagnosisPayload
			}
			if err := json.Unmarshal(raw, &row); err != nil {
				return "", models.DiagnosisFields{}, err
			}
			f, err := mapper.DiagnosisFromPayload(row.DiagnosisPayload)
			return row.ID, f, err
		})
}

func NewPrescriptionService(deps Deps) *PrescriptionService {
	return newCollectionService(deps,
		func(ownerID string, f models.PrescriptionFields) models.Payload {
			return mapper.PrescriptionToPayload(ownerID, f)
		},
		func(raw json.RawMessage) (string, models.PrescriptionFields, error) {
			var row struct {
				ID string `json:"id"`
				models.PrescriptionPayload
			}
			if err := json.Unmarshal(raw, &row); err != nil {
				return "", models.PrescriptionFields{}, err
			}
			f, err := mapper.PrescriptionFromPayload(row.PrescriptionPayload)
			return row.ID, f, err
		})
}
