package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/andresMonthn/OpticSave-sub000/internal/client/models"
)

func (a *App) inventoryCommand(ctx context.Context, verb string, id int64) {
	switch verb {
	case "list":
		a.listInventory(ctx)
	case "add":
		a.addInventory(ctx)
	case "update":
		a.updateInventory(ctx, id)
	case "delete":
		a.removeInventory(ctx, id)
	case "show":
		a.showInventory(ctx, id)
	}
}

func (a *App) promptInventoryFields() (models.InventoryFields, error) {
	var f models.InventoryFields
	var err error
	if f.Name, err = GetOptionalText(a.reader, "Nombre", os.Stdout); err != nil {
		return f, err
	}
	if f.Quantity, err = GetOptionalInt(a.reader, "Cantidad", os.Stdout); err != nil {
		return f, err
	}
	if f.Price, err = GetOptionalDecimal(a.reader, "Precio", os.Stdout); err != nil {
		return f, err
	}
	if f.Material, err = GetOptionalText(a.reader, "Material", os.Stdout); err != nil {
		return f, err
	}
	f.Color, err = GetOptionalText(a.reader, "Color", os.Stdout)
	return f, err
}

func (a *App) listInventory(ctx context.Context) {
	recs, err := a.inventory.List(ctx)
	if err != nil {
		reportWriteError(err)
		return
	}
	for _, r := range recs {
		fmt.Printf("%s[%d] %s  cant=%s  precio=%s  %s %s\n",
			syncMark(r.SyncStatus), r.LocalID, strOr(r.Fields.Name),
			intOr(r.Fields.Quantity), decOr(r.Fields.Price),
			strOr(r.Fields.Material), strOr(r.Fields.Color))
	}
}

func (a *App) addInventory(ctx context.Context) {
	f, err := a.promptInventoryFields()
	if err != nil {
		reportWriteError(err)
		return
	}
	localID, err := a.inventory.Add(ctx, f)
	if err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Added inventory item [%d].\n", localID)
}

func (a *App) updateInventory(ctx context.Context, id int64) {
	fmt.Println("Enter new values; leave a field empty to keep it.")
	patch, err := a.promptInventoryFields()
	if err != nil {
		reportWriteError(err)
		return
	}
	if err := a.inventory.Update(ctx, id, patch); err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Updated inventory item [%d].\n", id)
}

func (a *App) removeInventory(ctx context.Context, id int64) {
	if err := a.inventory.Remove(ctx, id); err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Removed inventory item [%d].\n", id)
}

func (a *App) showInventory(ctx context.Context, id int64) {
	r, err := a.inventory.Get(ctx, id)
	if err != nil {
		reportWriteError(err)
		return
	}
	fmt.Printf("Inventory [%d] (%s)\n", r.LocalID, r.SyncStatus)
	fmt.Println("  Nombre:  ", strOr(r.Fields.Name))
	fmt.Println("  Cantidad:", intOr(r.Fields.Quantity))
	fmt.Println("  Precio:  ", decOr(r.Fields.Price))
	fmt.Println("  Material:", strOr(r.Fields.Material))
	fmt.Println("  Color:   ", strOr(r.Fields.Color))
	if r.ServerID != "" {
		fmt.Println("  Remote id:", r.ServerID)
	}
}
