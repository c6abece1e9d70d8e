package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
)

func (a *App) patientCommand(ctx context.Context, verb string, id int64) {
	switch verb {
	case "list":
		a.listPatients(ctx)
	case "add":
		a.addPatient(ctx)
	case "update":
		a.updatePatient(ctx, id)
	case "delete":
		a.removePatient(ctx, id)
	case "show":
		a.showPatient(ctx, id)
	}
}

func (a *App) promptPatientFields() (models.PatientFields, error) {
	var f models.PatientFields
	var err error
	if f.Name, err = GetOptionalText(a.reader, "Nombre", os.Stdout); err != nil {
		return f, err
	}
	if f.Age, err = GetOptionalInt(a.reader, "Edad", os.Stdout); err != nil {
		return f, err
	}
	if f.Phone, err = GetOptionalText(a.reader, "Telefono", os.Stdout); err != nil {
		return f, err
	}
	if f.Email, err = GetOptionalText(a.reader, "Correo", os.Stdout); err != nil {
		return f, err
	}
	f.Address, err = GetOptionalText(a.reader, "Direccion", os.Stdout)
	return f, err
}

func (a *App) listPatients(ctx context.Context) {
	recs, err := a.patients.List(ctx)
	if err != nil {
		reportWriteError(err)
		return
	}
	for _, r := range recs {
		fmt.Printf("%s[%d] %s  edad=%s  tel=%s\n",
			syncMark(r.SyncStatus), r.LocalID, strOr(r.Fields.Name),
			intOr(r.Fields.Age), strOr(r.Fields.Phone))
	}
}

func (a *App) addPatient(ctx context.Context) {
	f, err := a.promptPatientFields()
	if err != nil {
		reportWriteError(err)
		return
	}
	localID, err := a.patients.Add(ctx, f)
	if err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Added patient [%d].\n", localID)
}

func (a *App) updatePatient(ctx context.Context, id int64) {
	fmt.Println("Enter new values; leave a field empty to keep it.")
	patch, err := a.promptPatientFields()
	if err != nil {
		reportWriteError(err)
		return
	}
	if err := a.patients.Update(ctx, id, patch); err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Updated patient [%d].\n", id)
}

func (a *App) removePatient(ctx context.Context, id int64) {
	if err := a.patients.Remove(ctx, id); err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Removed patient [%d].\n", id)
}

func (a *App) showPatient(ctx context.Context, id int64) {
	r, err := a.patients.Get(ctx, id)
	if err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Patient [%d] (%s)\n", r.LocalID, r.SyncStatus)
	fmt.Println("  Nombre:   ", strOr(r.Fields.Name))
	fmt.Println("  Edad:     ", intOr(r.Fields.Age))
	fmt.Println("  Telefono: ", strOr(r.Fields.Phone))
	fmt.Println("  Correo:   ", strOr(r.Fields.Email))
	fmt.Println("  Direccion:", strOr(r.Fields.Address))
	if r.ServerID != "" {
		fmt.Println("  Remote id:", r.ServerID)
	}
}
