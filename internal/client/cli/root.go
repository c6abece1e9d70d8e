package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.ownerID != "" {
		s = a.ownerID + " "
	}
	s += string(a.monitor.State())
	return fmt.Sprintf("(%s)", s)
}

// Root runs the interactive command loop until EOF or an exit command.
func (a *App) Root(ctx context.Context) {
	fmt.Println("OpticSave CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	_ = a.Login(ctx)

	for {
		fmt.Printf("opticsave %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.printHelp()

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			a.printStatus(ctx)

		case "offline":
			a.monitor.AcceptOffline(ctx)
			fmt.Println("Offline mode accepted; changes will be queued.")

		case "sync":
			a.syncNow(ctx)

		case "refresh":
			a.refresh(ctx)

		case "list", "add", "update", "delete", "show":
			a.entityCommand(ctx, cmd, args)

		case "exit", "quit":
			fmt.Println("Bye!")
			return

		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

func (a *App) printHelp() {
	if !a.isLoggedIn() {
		fmt.Println("Available commands: login, status, exit")
		return
	}
	fmt.Println("Available commands:")
	fmt.Println("  list|add|update|delete|show <entity> [id]")
	fmt.Println("      entities: inv, pac, dia, rec")
	fmt.Println("  sync      replay queued changes")
	fmt.Println("  refresh   pull remote rows into the local store")
	fmt.Println("  status    connectivity and backlog overview")
	fmt.Println("  offline   accept working offline")
	fmt.Println("  logout, exit")
}

// entityCommand routes a verb to the collection it targets. update, delete
// and show need a local id argument.
func (a *App) entityCommand(ctx context.Context, verb string, args []string) {
	if len(args) == 0 {
		fmt.Printf("Usage: %s <entity> [id]\n", verb)
		return
	}
	entity := args[0]

	var id int64
	if verb == "update" || verb == "delete" || verb == "show" {
		if len(args) < 2 {
			fmt.Printf("Usage: %s %s <id>\n", verb, entity)
			return
		}
		parsed, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			fmt.Println("Invalid id:", args[1])
			return
		}
		id = parsed
	}

	switch entity {
	case "inv", "inventario", "inventarios":
		a.inventoryCommand(ctx, verb, id)
	case "pac", "paciente", "pacientes":
		a.patientCommand(ctx, verb, id)
	case "dia", "diagnostico", "diagnosticos":
		a.diagnosisCommand(ctx, verb, id)
	case "rec", "receta", "prescripcion", "prescripciones":
		a.prescriptionCommand(ctx, verb, id)
	default:
		fmt.Println("Unknown entity:", entity)
	}
}
