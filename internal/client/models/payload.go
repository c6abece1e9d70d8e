package models

import (
	"encoding/json"
	"fmt"
)

// Payload is the transport-shaped snapshot of a record, as the remote API
// expects it. Numeric fields are carried as strings because the backend
// schema stores them as text; unset fields marshal as explicit JSON null so
// that remote updates can clear a column. The set of implementations is
// closed: one per collection, dispatched exhaustively via Kind.
type Payload interface {
	// Kind returns the collection this payload targets.
	Kind() Collection
}

// InventoryPayload is the wire shape of an inventory item.
type InventoryPayload struct {
	OwnerID  string  `json:"owner_id"`
	Name     *string `json:"nombre"`
	Quantity *string `json:"cantidad"`
	Price    *string `json:"precio"`
	Material *string `json:"material"`
	Color    *string `json:"color"`
}

func (InventoryPayload) Kind() Collection { return CollectionInventory }

// PatientPayload is the wire shape of a patient record.
type PatientPayload struct {
	OwnerID string  `json:"owner_id"`
	Name    *string `json:"nombre"`
	Age     *string `json:"edad"`
	Phone   *string `json:"telefono"`
	Email   *string `json:"correo"`
	Address *string `json:"direccion"`
}

func (PatientPayload) Kind() Collection { return CollectionPatients }

// DiagnosisPayload is the wire shape of a diagnosis.
type DiagnosisPayload struct {
	OwnerID       string  `json:"owner_id"`
	PatientID     *string `json:"paciente_id"`
	SphereRight   *string `json:"esfera_od"`
	CylinderRight *string `json:"cilindro_od"`
	AxisRight     *string `json:"eje_od"`
	SphereLeft    *string `json:"esfera_oi"`
	CylinderLeft  *string `json:"cilindro_oi"`
	AxisLeft      *string `json:"eje_oi"`
	Notes         *string `json:"notas"`
}

func (DiagnosisPayload) Kind() Collection { return CollectionDiagnoses }

// PrescriptionPayload is the wire shape of a prescription order.
type PrescriptionPayload struct {
	OwnerID     string  `json:"owner_id"`
	PatientID   *string `json:"paciente_id"`
	LensType    *string `json:"tipo_lente"`
	Total       *string `json:"total"`
	Deposit     *string `json:"abono"`
	DeliveryDue *string `json:"fecha_entrega"`
	Notes       *string `json:"notas"`
}

func (PrescriptionPayload) Kind() Collection { return CollectionPrescriptions }

// EncodePayload marshals a payload for durable storage in the outbox.
func EncodePayload(p Payload) (json.RawMessage, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", p.Kind(), err)
	}
	return b, nil
}

// DecodePayload restores the typed payload for a stored outbox snapshot.
// The collection tag selects the variant; unknown tags are an error rather
// than a loosely-typed fallback.
func DecodePayload(c Collection, raw json.RawMessage) (Payload, error) {
	switch c {
	case CollectionInventory:
		var p InventoryPayload
		return p, json.Unmarshal(raw, &p)
	case CollectionPatients:
		var p PatientPayload
		return p, json.Unmarshal(raw, &p)
	case CollectionDiagnoses:
		var p DiagnosisPayload
		return p, json.Unmarshal(raw, &p)
	case CollectionPrescriptions:
		var p PrescriptionPayload
		return p, json.Unmarshal(raw, &p)
	default:
		return nil, fmt.Errorf("unknown collection %q", c)
	}
}
