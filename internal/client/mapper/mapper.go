// Package mapper translates between local record field sets and the
// transport payload shapes the remote API expects. All functions are pure:
// the same fields always produce the same payload, regardless of
// connectivity state, so the facade's immediate remote write and the
// synchronizer's deferred replay send identical bytes for the same record.
package mapper

import (
	"fmt"
	"strconv"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
	"github.com/shopspring/decimal"
)

// InventoryToPayload serializes inventory fields for transport. Numeric
// fields become their canonical decimal string; unset fields stay nil and
// marshal as explicit null.
func InventoryToPayload(ownerID string, f models.InventoryFields) models.InventoryPayload {
	return models.InventoryPayload{
		OwnerID:  ownerID,
		Name:     f.Name,
		Quantity: intString(f.Quantity),
		Price:    decimalString(f.Price),
		Material: f.Material,
		Color:    f.Color,
	}
}

func PatientToPayload(ownerID string, f models.PatientFields) models.PatientPayload {
	return models.PatientPayload{
		OwnerID: ownerID,
		Name:    f.Name,
		Age:     intString(f.Age),
		Phone:   f.Phone,
		Email:   f.Email,
		Address: f.Address,
	}
}

func DiagnosisToPayload(ownerID string, f models.DiagnosisFields) models.DiagnosisPayload {
	return models.DiagnosisPayload{
		OwnerID:       ownerID,
		PatientID:     f.PatientID,
		SphereRight:   decimalString(f.SphereRight),
		CylinderRight: decimalString(f.CylinderRight),
		AxisRight:     intString(f.AxisRight),
		SphereLeft:    decimalString(f.SphereLeft),
		CylinderLeft:  decimalString(f.CylinderLeft),
		AxisLeft:      intString(f.AxisLeft),
		Notes:         f.Notes,
	}
}

func PrescriptionToPayload(ownerID string, f models.PrescriptionFields) models.PrescriptionPayload {
	return models.PrescriptionPayload{
		OwnerID:     ownerID,
		PatientID:   f.PatientID,
		LensType:    f.LensType,
		Total:       decimalString(f.Total),
		Deposit:     decimalString(f.Deposit),
		DeliveryDue: f.DeliveryDue,
		Notes:       f.Notes,
	}
}

// InventoryFromPayload is the inverse mapping, used when reconciling remote
// rows into the local store. Transport strings that fail to parse as their
// numeric type are reported as errors rather than silently dropped.
func InventoryFromPayload(p models.InventoryPayload) (models.InventoryFields, error) {
	qty, err := parseInt(p.Quantity, "cantidad")
	if err != nil {
		return models.InventoryFields{}, err
	}
	price, err := parseDecimal(p.Price, "precio")
	if err != nil {
		return models.InventoryFields{}, err
	}
	return models.InventoryFields{
		Name:     p.Name,
		Quantity: qty,
		Price:    price,
		Material: p.Material,
		Color:    p.Color,
	}, nil
}

func PatientFromPayload(p models.PatientPayload) (models.PatientFields, error) {
	age, err := parseInt(p.Age, "edad")
	if err != nil {
		return models.PatientFields{}, err
	}
	return models.PatientFields{
		Name:    p.Name,
		Age:     age,
		Phone:   p.Phone,
		Email:   p.Email,
		Address: p.Address,
	}, nil
}

func DiagnosisFromPayload(p models.DiagnosisPayload) (models.DiagnosisFields, error) {
	f := models.DiagnosisFields{PatientID: p.PatientID, Notes: p.Notes}
	var err error
	if f.SphereRight, err = parseDecimal(p.SphereRight, "esfera_od"); err != nil {
		return models.DiagnosisFields{}, err
	}
	if f.CylinderRight, err = parseDecimal(p.CylinderRight, "cilindro_od"); err != nil {
		return models.DiagnosisFields{}, err
	}
	if f.AxisRight, err = parseInt(p.AxisRight, "eje_od"); err != nil {
		return models.DiagnosisFields{}, err
	}
	if f.SphereLeft, err = parseDecimal(p.SphereLeft, "esfera_oi"); err != nil {
		return models.DiagnosisFields{}, err
	}
	if f.CylinderLeft, err = parseDecimal(p.CylinderLeft, "cilindro_oi"); err != nil {
		return models.DiagnosisFields{}, err
	}
	if f.AxisLeft, err = parseInt(p.AxisLeft, "eje_oi"); err != nil {
		return models.DiagnosisFields{}, err
	}
	return f, nil
}

func PrescriptionFromPayload(p models.PrescriptionPayload) (models.PrescriptionFields, error) {
	total, err := parseDecimal(p.Total, "total")
	if err != nil {
		return models.PrescriptionFields{}, err
	}
	deposit, err := parseDecimal(p.Deposit, "abono")
	if err != nil {
		return models.PrescriptionFields{}, err
	}
	return models.PrescriptionFields{
		PatientID:   p.PatientID,
		LensType:    p.LensType,
		Total:       total,
		Deposit:     deposit,
		DeliveryDue: p.DeliveryDue,
		Notes:       p.Notes,
	}, nil
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func intString(n *int64) *string {
	if n == nil {
		return nil
	}
	s := strconv.FormatInt(*n, 10)
	return &s
}

func parseDecimal(s *string, field string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal in %s: %w", field, err)
	}
	return &d, nil
}

func parseInt(s *string, field string) (*int64, error) {
	if s == nil {
		return nil, nil
	}
	n, err := strconv.ParseInt(*s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer in %s: %w", field, err)
	}
	return &n, nil
}
