package models

import "github.com/shopspring/decimal"

// InventoryFields are the domain fields of an inventory item (frames,
// lenses, consumables). JSON tags match the backend column names.
type InventoryFields struct {
	Name     *string          `json:"nombre"`
	Quantity *int64           `json:"cantidad"`
	Price    *decimal.Decimal `json:"precio"`
	Material *string          `json:"material"`
	Color    *string          `json:"color"`
}

func (InventoryFields) Collection() Collection { return CollectionInventory }

func (f InventoryFields) MergedWith(patch InventoryFields) InventoryFields {
	if patch.Name != nil {
		f.Name = patch.Name
	}
	if patch.Quantity != nil {
		f.Quantity = patch.Quantity
	}
	if patch.Price != nil {
		f.Price = patch.Price
	}
	if patch.Material != nil {
		f.Material = patch.Material
	}
	if patch.Color != nil {
		f.Color = patch.Color
	}
	return f
}

// PatientFields are the domain fields of a patient record.
type PatientFields struct {
	Name    *string `json:"nombre"`
	Age     *int64  `json:"edad"`
	Phone   *string `json:"telefono"`
	Email   *string `json:"correo"`
	Address *string `json:"direccion"`
}

func (PatientFields) Collection() Collection { return CollectionPatients }

func (f PatientFields) MergedWith(patch PatientFields) PatientFields {
	if patch.Name != nil {
		f.Name = patch.Name
	}
	if patch.Age != nil {
		f.Age = patch.Age
	}
	if patch.Phone != nil {
		f.Phone = patch.Phone
	}
	if patch.Email != nil {
		f.Email = patch.Email
	}
	if patch.Address != nil {
		f.Address = patch.Address
	}
	return f
}

// DiagnosisFields hold one optometric measurement set per eye. PatientID
// references the patient by server id and may be unset while the patient
// itself is still waiting to be synced.
type DiagnosisFields struct {
	PatientID     *string          `json:"paciente_id"`
	SphereRight   *decimal.Decimal `json:"esfera_od"`
	CylinderRight *decimal.Decimal `json:"cilindro_od"`
	AxisRight     *int64           `json:"eje_od"`
	SphereLeft    *decimal.Decimal `json:"esfera_oi"`
	CylinderLeft  *decimal.Decimal `json:"cilindro_oi"`
	AxisLeft      *int64           `json:"eje_oi"`
	Notes         *string          `json:"notas"`
}

func (DiagnosisFields) Collection() Collection { return CollectionDiagnoses }

func (f DiagnosisFields) MergedWith(patch DiagnosisFields) DiagnosisFields {
	if patch.PatientID != nil {
		f.PatientID = patch.PatientID
	}
	if patch.SphereRight != nil {
		f.SphereRight = patch.SphereRight
	}
	if patch.CylinderRight != nil {
		f.CylinderRight = patch.CylinderRight
	}
	if patch.AxisRight != nil {
		f.AxisRight = patch.AxisRight
	}
	if patch.SphereLeft != nil {
		f.SphereLeft = patch.SphereLeft
	}
	if patch.CylinderLeft != nil {
		f.CylinderLeft = patch.CylinderLeft
	}
	if patch.AxisLeft != nil {
		f.AxisLeft = patch.AxisLeft
	}
	if patch.Notes != nil {
		f.Notes = patch.Notes
	}
	return f
}

// PrescriptionFields are the domain fields of a lens prescription order.
type PrescriptionFields struct {
	PatientID   *string          `json:"paciente_id"`
	LensType    *string          `json:"tipo_lente"`
	Total       *decimal.Decimal `json:"total"`
	Deposit     *decimal.Decimal `json:"abono"`
	DeliveryDue *string          `json:"fecha_entrega"`
	Notes       *string          `json:"notas"`
}

func (PrescriptionFields) Collection() Collection { return CollectionPrescriptions }

func (f PrescriptionFields) MergedWith(patch PrescriptionFields) PrescriptionFields {
	if patch.PatientID != nil {
		f.PatientID = patch.PatientID
	}
	if patch.LensType != nil {
		f.LensType = patch.LensType
	}
	if patch.Total != nil {
		f.Total = patch.Total
	}
	if patch.Deposit != nil {
		f.Deposit = patch.Deposit
	}
	if patch.DeliveryDue != nil {
		f.DeliveryDue = patch.DeliveryDue
	}
	if patch.Notes != nil {
		f.Notes = patch.Notes
	}
	return f
}
