package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"santiice/internal/domain"
	"santiice/internal/usecase"

	"github.com/schollz/progressbar/v3"
)

func runProcess(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("process")
	additional := fs.Bool("additional", false, "Append to the current review instead of replacing it")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := a.auth.Require(ctx, domain.PermissionTickets); err != nil {
		return err
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("Procesando %d ticket(s)", fs.NArg())),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan struct{})
	go func() {
		tick := time.NewTicker(100 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-done:
				return
			case <-tick.C:
				_ = bar.Add(1)
			}
		}
	}()
	out, err := a.tickets.Process(ctx, fs.Args(), *additional)
	close(done)
	_ = bar.Finish()
	if err != nil {
		return err
	}

	fmt.Printf("%d ticket(s) procesado(s)\n", out.Processed)
	for _, c := range domain.ClientTypes {
		if n := out.NewCounts[c]; n > 0 {
			fmt.Printf("  %d nuevo(s) %s\n", n, c)
		}
	}
	return printReview(a)
}

func runReview(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("review")
	asJSON := fs.Bool("json", false, "Print tickets as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *asJSON {
		return printJSON(a.review.Tickets())
	}
	return printReview(a)
}

func printReview(a *app) error {
	catalog := a.catalog.Catalog()
	selected := a.review.Selected()
	isSelected := make(map[string]bool, len(selected))
	for _, id := range selected {
		isSelected[id] = true
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "SEL\tID\tCLIENTE\tSUCURSAL\tFECHA\tREFERENCIA\tPRODUCTOS\tCONF\tESTADO")
	for _, t := range a.review.Tickets() {
		mark := " "
		if isSelected[t.ID] {
			mark = "*"
		}
		state := string(t.Status)
		if t.Status == domain.StatusProcessed && domain.NeedsAttention(t) {
			state = "atención"
		}
		if t.Status == domain.StatusError && t.Error != "" {
			state = "error: " + t.Error
		}
		conf := fmt.Sprintf("%.0f%%", t.Confidence)
		if !domain.CanEditQuantity(t, catalog) {
			conf += " (bloqueado)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			mark, t.ID, t.ClientType, t.Sucursal.Display(), t.Fecha.Display(), reference(t), products(t), conf, state)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	counts := a.review.AttentionCounts()
	fmt.Printf("Requieren atención: OXXO %d, KIOSKO %d\n", counts[domain.ClientOXXO], counts[domain.ClientKIOSKO])
	return nil
}

func reference(t domain.Ticket) string {
	if t.ClientType == domain.ClientKIOSKO {
		return "folio " + t.Folio.Display()
	}
	return fmt.Sprintf("rem %s / ped %s", t.Remision.Display(), t.PedidoAdicional.Display())
}

func products(t domain.Ticket) string {
	parts := make([]string, 0, len(t.Products))
	for i, p := range t.Products {
		parts = append(parts, fmt.Sprintf("[%d] %s x%d", i, p.Label, p.Quantity))
	}
	return strings.Join(parts, "; ")
}

func runEdit(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("edit")
	id := fs.String("id", "", "Ticket id")
	field := fs.String("field", "", "sucursal, fecha, remision, pedido_adicional or folio")
	value := fs.String("value", "", "New value")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.review.UpdateTicket(ctx, *id, domain.TicketField(*field), *value); err != nil {
		return err
	}
	return printReview(a)
}

func runQuantity(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("qty")
	id := fs.String("id", "", "Ticket id")
	index := fs.Int("index", 0, "Product position")
	value := fs.Int("value", 0, "Quantity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	t, err := a.review.Ticket(*id)
	if err != nil {
		return err
	}
	if !domain.CanEditQuantity(t, a.catalog.Catalog()) {
		fmt.Fprintln(os.Stderr, "Aviso: la confianza del ticket supera el umbral de edición")
	}
	if err := a.review.UpdateQuantity(ctx, *id, *index, *value); err != nil {
		return err
	}
	return printReview(a)
}

func parseSize(s string) (domain.ProductSize, error) {
	size, ok := domain.ParseProductSize(s)
	if !ok {
		return "", fmt.Errorf("unknown product size %q", s)
	}
	return size, nil
}

func runAddProduct(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("add-product")
	id := fs.String("id", "", "Ticket id")
	sizeFlag := fs.String("size", "5kg", "5kg or 15kg")
	qty := fs.Int("qty", 1, "Quantity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	size, err := parseSize(*sizeFlag)
	if err != nil {
		return err
	}
	p, err := a.review.AddProductToTicket(ctx, *id, size, *qty)
	if err != nil {
		return err
	}
	fmt.Printf("Producto agregado: %s x%d a $%.2f\n", p.Label, p.Quantity, p.UnitCost)
	return nil
}

func runDeleteProduct(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("delete-product")
	id := fs.String("id", "", "Ticket id")
	index := fs.Int("index", -1, "Product position")
	if err := fs.Parse(args); err != nil {
		return err
	}
	err := a.review.DeleteProductFromTicket(ctx, *id, *index)
	if errors.Is(err, usecase.ErrLastProduct) {
		fmt.Println("No se puede eliminar el último producto del ticket")
		return nil
	}
	if err != nil {
		return err
	}
	return printReview(a)
}

func runDeleteTicket(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("delete-ticket")
	id := fs.String("id", "", "Ticket id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.review.DeleteTicket(ctx, *id); err != nil {
		return err
	}
	fmt.Println("Ticket eliminado")
	return nil
}

func runSelect(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("select")
	all := fs.Bool("all", false, "Select every processed ticket")
	deselect := fs.Bool("clear", false, "Deselect the given ids, or everything when none are given")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var err error
	switch {
	case *deselect && fs.NArg() == 0:
		err = a.review.Deselect(ctx, a.review.Selected()...)
	case *deselect:
		err = a.review.Deselect(ctx, fs.Args()...)
	case *all:
		err = a.review.SelectAll(ctx)
	default:
		err = a.review.Select(ctx, fs.Args()...)
	}
	if err != nil {
		return err
	}
	return printReview(a)
}

func runConfirm(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("confirm")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := a.auth.Require(ctx, domain.PermissionTickets); err != nil {
		return err
	}
	res, err := a.tickets.Confirm(ctx, fs.Args())
	if res != nil {
		printConfirmation(res)
	}
	return err
}

func printConfirmation(res *domain.ConfirmResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tARCHIVO\tESTADO\tMENSAJE")
	for _, r := range res.Results {
		status := r.Status
		if r.Duplicated {
			status += " (duplicado)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Filename, status, r.Message)
	}
	_ = w.Flush()
	s := res.Summary
	fmt.Printf("Total %d, exitosos %d, errores %d, duplicados %d\n", s.Total, s.Success, s.Errors, s.Duplicated)
	if res.Error != "" {
		fmt.Println("Error:", res.Error)
	}
}

func runExportTickets(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("export-tickets")
	out := fs.String("out", "tickets.xlsx", "Output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", *out, err)
	}
	defer f.Close()
	if err := a.tickets.ExportXLSX(f, fs.Args()); err != nil {
		return err
	}
	fmt.Println("Exportado a", *out)
	return nil
}

func runManual(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("manual")
	client := fs.String("client", "", "OXXO or KIOSKO")
	fecha := fs.String("fecha", "", "Date")
	sucursal := fs.String("sucursal", "", "Branch")
	remision := fs.String("remision", "", "OXXO remision")
	pedido := fs.String("pedido", "", "OXXO pedido adicional")
	folio := fs.String("folio", "", "KIOSKO folio")
	p5 := fs.Int("p5", 0, "5kg bags")
	p15 := fs.Int("p15", 0, "15kg bags")
	send := fs.Bool("send", false, "Confirm immediately instead of adding to the review")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entry := usecase.ManualEntry{
		Client:   domain.ClientType(strings.ToUpper(*client)),
		Fecha:    *fecha,
		Sucursal: *sucursal,
		Remision: *remision,
		Pedido:   *pedido,
		Folio:    *folio,
	}
	// The first line is the one the form requires, so the size typed first leads.
	if *p5 > 0 || *p15 == 0 {
		entry.Products = append(entry.Products, usecase.ManualProduct{Size: domain.Size5kg, Quantity: *p5})
	}
	if *p15 > 0 {
		entry.Products = append(entry.Products, usecase.ManualProduct{Size: domain.Size15kg, Quantity: *p15})
	}

	var vErr *usecase.ValidationError
	if *send {
		if _, err := a.auth.Require(ctx, domain.PermissionTickets); err != nil {
			return err
		}
		res, err := a.tickets.ConfirmManual(ctx, []usecase.ManualEntry{entry})
		if errors.As(err, &vErr) {
			return printValidation(vErr)
		}
		if err != nil {
			return err
		}
		printConfirmation(res)
		return nil
	}

	t, err := a.review.AddManualTicket(ctx, entry)
	if errors.As(err, &vErr) {
		return printValidation(vErr)
	}
	if err != nil {
		return err
	}
	fmt.Println("Ticket manual agregado:", t.ID)
	return nil
}

func printValidation(err *usecase.ValidationError) error {
	fmt.Fprintln(os.Stderr, "Por favor complete todos los campos obligatorios")
	for field, msg := range err.Fields {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
	}
	return flag.ErrHelp
}

func runReset(ctx context.Context, a *app, _ []string) error {
	if err := a.review.Reset(ctx); err != nil {
		return err
	}
	fmt.Println("Revisión reiniciada")
	return nil
}
