package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"santiice/internal/domain"
)

func runCatalog(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing catalog action: list, add, rename, delete, sort, price, bulk, dark-mode or policy")
	}
	action, args := args[0], args[1:]
	if action != "list" {
		if _, err := a.auth.Require(ctx, domain.PermissionConfig); err != nil {
			return err
		}
	}

	fs := newFlagSet("catalog " + action)
	clientFlag := fs.String("client", "OXXO", "OXXO or KIOSKO")
	name := fs.String("name", "", "Branch name")
	newName := fs.String("new", "", "New branch name (rename)")
	sizeFlag := fs.String("size", "", "5kg or 15kg (price, bulk)")
	price := fs.Float64("price", 0, "Unit price (price, bulk)")
	allowHigh := fs.Bool("allow-high", true, "Allow editing high confidence tickets (policy)")
	threshold := fs.Float64("threshold", 70, "Confidence below which editing is allowed (policy)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	client, err := domain.ParseClientType(*clientFlag)
	if err != nil {
		return err
	}

	switch action {
	case "list":
		return printBranches(a, client)
	case "add":
		err = a.catalog.AddSucursal(ctx, client, *name)
	case "rename":
		err = a.catalog.RenameSucursal(ctx, client, *name, *newName)
	case "delete":
		err = a.catalog.DeleteSucursal(ctx, client, *name)
	case "sort":
		err = a.catalog.SortSucursales(ctx, client)
	case "price", "bulk":
		size, perr := parseSize(*sizeFlag)
		if perr != nil {
			return perr
		}
		if action == "price" {
			err = a.catalog.UpdatePrecio(ctx, client, *name, size, *price)
		} else {
			err = a.catalog.BulkUpdatePrecio(ctx, client, size, *price)
		}
	case "dark-mode":
		var dark bool
		dark, err = a.catalog.ToggleDarkMode(ctx)
		if err == nil {
			fmt.Println("Modo oscuro:", dark)
			return nil
		}
	case "policy":
		err = a.catalog.UpdateConfig(ctx, domain.CatalogPatch{
			AllowHighConfidenceEdit: allowHigh,
			MinConfidenceThreshold:  threshold,
		})
	default:
		fs.Usage()
		return flag.ErrHelp
	}
	if err != nil {
		return err
	}
	return printBranches(a, client)
}

func printBranches(a *app, client domain.ClientType) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintf(w, "SUCURSAL %s\t5KG\t15KG\t\n", client)
	for _, b := range a.catalog.Branches(client) {
		custom := ""
		if b.Custom {
			custom = "*"
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\n", b.Name, b.Prices[domain.Size5kg], b.Prices[domain.Size15kg], custom)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	c := a.catalog.Catalog()
	fmt.Printf("Edición con confianza alta: %t, umbral: %.0f%%\n", c.AllowHighConfidenceEdit, c.MinConfidenceThreshold)
	return nil
}
