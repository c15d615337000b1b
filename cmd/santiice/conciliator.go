package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"santiice/internal/domain"
	"santiice/internal/gateway"
	"santiice/internal/usecase"

	"github.com/schollz/progressbar/v3"
)

func runClients(ctx context.Context, a *app, _ []string) error {
	clients, err := a.conciliation.Clients(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Aviso: usando la lista de clientes local:", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tESTADO\tTOLERANCIA")
	for _, c := range clients {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f%% / $%.2f\n", c.ID, c.Name, c.Status, c.Tolerances.Percentage, c.Tolerances.Absolute)
	}
	return w.Flush()
}

func runConciliate(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("conciliate")
	clientFlag := fs.String("client", "OXXO", "OXXO or KIOSKO")
	start := fs.String("start", "", "Start date (YYYY-MM-DD)")
	end := fs.String("end", "", "End date (YYYY-MM-DD)")
	source := fs.String("source", "", "Client sales file (.xlsx, .xls, .csv)")
	looker := fs.String("looker", "", "Looker export file (.xlsx, .xls, .csv)")
	export := fs.String("export", "", "Also write the records locally as csv or xlsx")
	dir := fs.String("dir", ".", "Directory for exported files")
	asJSON := fs.Bool("json", false, "Print the results as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := a.auth.Require(ctx, domain.PermissionConciliator); err != nil {
		return err
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("Conciliando"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
	onProgress := func(p domain.Progress) {
		if p.Message != "" {
			bar.Describe(p.Message)
		}
		_ = bar.Set(int(p.Percent))
	}

	res, err := a.conciliation.Run(ctx, usecase.RunRequest{
		Client:     domain.ClientType(*clientFlag),
		DateRange:  domain.DateRange{StartDate: *start, EndDate: *end},
		SourcePath: *source,
		LookerPath: *looker,
	}, onProgress)
	_ = bar.Finish()
	fmt.Println()
	if err != nil {
		return err
	}

	if *asJSON {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		printSummary(res)
	}
	if *export != "" {
		return exportRecords(a, *clientFlag, *export, *dir, res.Records)
	}
	return nil
}

func printSummary(res *domain.Results) {
	fmt.Println("Sesión:", res.SessionID)
	if s := res.Summary; s != nil {
		fmt.Printf("Registros %d, conciliados %d, en tolerancia %d, diferencias %d, faltantes %d\n",
			s.TotalRecords, s.ExactMatches, s.WithinTolerance, s.MajorDifferences, s.MissingRecords)
		fmt.Printf("Tasa de conciliación %.2f%%, diferencia total $%.2f\n", s.ReconciliationRate, s.TotalDifference)
	}
}

func exportRecords(a *app, client, format, dir string, records []domain.Record) error {
	path := filepath.Join(dir, gateway.ExportFileName(client, time.Now(), format))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case "csv":
		err = a.conciliation.ExportCSV(f, records)
	case "xlsx":
		err = a.conciliation.ExportXLSX(f, records)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exportado a", path)
	return nil
}

func runHistory(ctx context.Context, a *app, args []string) error {
	action := "list"
	if len(args) > 0 {
		action = args[0]
	}
	id := ""
	if len(args) > 1 {
		id = args[1]
	}

	switch action {
	case "list":
		entries, err := a.history.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCLIENTE\tFECHA\tESTADO\tRANGO\tARCHIVOS")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s..%s\t%s, %s\n",
				e.ID, e.Client, e.Date, e.Status, e.DateRange.StartDate, e.DateRange.EndDate, e.Files.Source, e.Files.Looker)
		}
		return w.Flush()
	case "show":
		res, err := a.history.Results(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(res)
	case "delete":
		return a.history.Delete(ctx, id)
	case "clear":
		return a.history.Clear(ctx)
	}
	return fmt.Errorf("unknown history action %q", action)
}

func runDownload(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("download")
	session := fs.String("session", "", "Session id")
	reportType := fs.String("type", "xlsx", "xlsx or csv")
	dir := fs.String("dir", ".", "Output directory")
	remove := fs.Bool("delete", false, "Delete the session on the backend afterwards")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := a.auth.Require(ctx, domain.PermissionConciliator); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(*dir, "santiice-download-*")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	name, err := a.conciliation.Download(ctx, *session, *reportType, tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return err
	}
	path := filepath.Join(*dir, filepath.Base(name))
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("could not save report: %w", err)
	}
	fmt.Println("Descargado", path)

	if *remove {
		return a.conciliation.DeleteSession(ctx, *session)
	}
	return nil
}
