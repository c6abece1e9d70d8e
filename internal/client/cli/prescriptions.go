package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
)

func (a *App) prescriptionCommand(ctx context.Context, verb string, id int64) {
	switch verb {
	case "list":
		a.listPrescriptions(ctx)
	case "add":
		a.addPrescription(ctx)
	case "update":
		a.updatePrescription(ctx, id)
	case "delete":
		a.removePrescription(ctx, id)
	case "show":
		a.showPrescription(ctx, id)
	}
}

func (a *App) promptPrescriptionFields() (models.PrescriptionFields, error) {
	var f models.PrescriptionFields
	var err error
	if f.PatientID, err = GetOptionalText(a.reader, "Paciente (remote id)", os.Stdout); err != nil {
		return f, err
	}
	if f.LensType, err = GetOptionalText(a.reader, "Tipo de lente", os.Stdout); err != nil {
		return f, err
	}
	if f.Total, err = GetOptionalDecimal(a.reader, "Total", os.Stdout); err != nil {
		return f, err
	}
	if f.Deposit, err = GetOptionalDecimal(a.reader, "Abono", os.Stdout); err != nil {
		return f, err
	}
	if f.DeliveryDue, err = GetOptionalText(a.reader, "Fecha de entrega", os.Stdout); err != nil {
		return f, err
	}
	f.Notes, err = GetOptionalText(a.reader, "Notas", os.Stdout)
	return f, err
}

func (a *App) listPrescriptions(ctx context.Context) {
	recs, err := a.prescriptions.List(ctx)
	if err != nil {
		reportWriteError(err)
		return
	}
	for _, r := range recs {
		fmt.Printf("%s[%d] paciente=%s  %s  total=%s abono=%s  entrega=%s\n",
			syncMark(r.SyncStatus), r.LocalID, strOr(r.Fields.PatientID),
			strOr(r.Fields.LensType), decOr(r.Fields.Total), decOr(r.Fields.Deposit),
			strOr(r.Fields.DeliveryDue))
	}
}

func (a *App) addPrescription(ctx context.Context) {
	f, err := a.promptPrescriptionFields()
	if err != nil {
		reportWriteError(err)
		return
	}
	localID, err := a.prescriptions.Add(ctx, f)
	if err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Added prescription [%d].\n", localID)
}

func (a *App) updatePrescription(ctx context.Context, id int64) {
	fmt.Println("Enter new values; leave a field empty to keep it.")
	patch, err := a.promptPrescriptionFields()
	if err != nil {
		reportWriteError(err)
		return
	}
	if err := a.prescriptions.Update(ctx, id, patch); err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Updated prescription [%d].\n", id)
}

func (a *App) removePrescription(ctx context.Context, id int64) {
	if err := a.prescriptions.Remove(ctx, id); err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Removed prescription [%d].\n", id)
}

func (a *App) showPrescription(ctx context.Context, id int64) {
	r, err := a.prescriptions.Get(ctx, id)
	if err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Prescription [%d] (%s)\n", r.LocalID, r.SyncStatus)
	fmt.Println("  Paciente:     ", strOr(r.Fields.PatientID))
	fmt.Println("  Tipo de lente:", strOr(r.Fields.LensType))
	fmt.Println("  Total:        ", decOr(r.Fields.Total))
	fmt.Println("  Abono:        ", decOr(r.Fields.Deposit))
	fmt.Println("  Entrega:      ", strOr(r.Fields.DeliveryDue))
	fmt.Println("  Notas:        ", strOr(r.Fields.Notes))
	if r.ServerID != "" {
		fmt.Println("  Remote id:    ", r.ServerID)
	}
}
