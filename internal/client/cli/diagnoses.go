package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
)

func (a *App) diagnosisCommand(ctx context.Context, verb string, id int64) {
	switch verb {
	case "list":
		a.listDiagnoses(ctx)
	case "add":
		a.addDiagnosis(ctx)
	case "update":
		a.updateDiagnosis(ctx, id)
	case "delete":
		a.removeDiagnosis(ctx, id)
	case "show":
		a.showDiagnosis(ctx, id)
	}
}

func (a *App) promptDiagnosisFields() (models.DiagnosisFields, error) {
	var f models.DiagnosisFields
	var err error
	if f.PatientID, err = GetOptionalText(a.reader, "Paciente (remote id)", os.Stdout); err != nil {
		return f, err
	}
	if f.SphereRight, err = GetOptionalDecimal(a.reader, "Esfera OD", os.Stdout); err != nil {
		return f, err
	}
	if f.CylinderRight, err = GetOptionalDecimal(a.reader, "Cilindro OD", os.Stdout); err != nil {
		return f, err
	}
	if f.AxisRight, err = GetOptionalInt(a.reader, "Eje OD", os.Stdout); err != nil {
		return f, err
	}
	if f.SphereLeft, err = GetOptionalDecimal(a.reader, "Esfera OI", os.Stdout); err != nil {
		return f, err
	}
	if f.CylinderLeft, err = GetOptionalDecimal(a.reader, "Cilindro OI", os.Stdout); err != nil {
		return f, err
	}
	if f.AxisLeft, err = GetOptionalInt(a.reader, "Eje OI", os.Stdout); err != nil {
		return f, err
	}
	f.Notes, err = GetOptionalText(a.reader, "Notas", os.Stdout)
	return f, err
}

func (a *App) listDiagnoses(ctx context.Context) {
	recs, err := a.diagnoses.List(ctx)
	if err != nil {
		reportWriteError(err)
		return
	}
	for _, r := range recs {
		fmt.Printf("%s[%d] paciente=%s  OD %s/%s x%s  OI %s/%s x%s\n",
			syncMark(r.SyncStatus), r.LocalID, strOr(r.Fields.PatientID),
			decOr(r.Fields.SphereRight), decOr(r.Fields.CylinderRight), intOr(r.Fields.AxisRight),
			decOr(r.Fields.SphereLeft), decOr(r.Fields.CylinderLeft), intOr(r.Fields.AxisLeft))
	}
}

func (a *App) addDiagnosis(ctx context.Context) {
	f, err := a.promptDiagnosisFields()
	if err != nil {
		reportWriteError(err)
		return
	}
	localID, err := a.diagnoses.Add(ctx, f)
	if err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Added diagnosis [%d].\n", localID)
}

func (a *App) updateDiagnosis(ctx context.Context, id int64) {
	fmt.Println("Enter new values; leave a field empty to keep it.")
	patch, err := a.promptDiagnosisFields()
	if err != nil {
		reportWriteError(err)
		return
	}
	if err := a.diagnoses.Update(ctx, id, patch); err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Updated diagnosis [%d].\n", id)
}

func (a *App) removeDiagnosis(ctx context.Context, id int64) {
	if err := a.diagnoses.Remove(ctx, id); err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Removed diagnosis [%d].\n", id)
}

func (a *App) showDiagnosis(ctx context.Context, id int64) {
	r, err := a.diagnoses.Get(ctx, id)
	if err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Diagnosis [%d] (%s)\n", r.LocalID, r.SyncStatus)
	fmt.Println("  Paciente:   ", strOr(r.Fields.PatientID))
	fmt.Printf("  OD: esfera %s, cilindro %s, eje %s\n",
		decOr(r.Fields.SphereRight), decOr(r.Fields.CylinderRight), intOr(r.Fields.AxisRight))
	fmt.Printf("  OI: esfera %s, cilindro %s, eje %s\n",
		decOr(r.Fields.SphereLeft), decOr(r.Fields.CylinderLeft), intOr(r.Fields.AxisLeft))
	fmt.Println("  Notas:      ", strOr(r.Fields.Notes))
	if r.ServerID != "" {
		fmt.Println("  Remote id:  ", r.ServerID)
	}
}
