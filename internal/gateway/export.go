package gateway

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"santiice/internal/domain"

	"github.com/xuri/excelize/v2"
)

var recordHeaders = []string{"ID", "Valor Cliente", "Valor Looker", "Diferencia", "Estado"}

var ticketHeaders = []string{
	"Ticket", "Archivo", "Cliente", "Sucursal", "Fecha", "Remisión", "Pedido Adicional", "Folio",
	"Producto", "Tipo", "Cantidad", "Costo", "Importe",
}

const (
	recordsSheet = "Conciliacion"
	ticketsSheet = "Tickets"
)

// ExportFileName is conciliacion_<CLIENT>_<YYYY-MM-DD>.<ext>.
func ExportFileName(client string, day time.Time, ext string) string {
	return fmt.Sprintf("conciliacion_%s_%s.%s", client, day.Format(time.DateOnly), strings.TrimPrefix(ext, "."))
}

// Exporter writes reconciliation records and confirmed tickets to spreadsheets.
type Exporter struct{}

// NewExporter creates a new exporter instance.
func NewExporter() *Exporter {
	return &Exporter{}
}

// category prefers the backend's label and derives one from the status otherwise.
func category(r domain.Record) string {
	if r.Category != "" {
		return r.Category
	}
	return domain.StatusLabel(r.Status)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RecordsCSV writes records as CSV with a header row.
func (e *Exporter) RecordsCSV(w io.Writer, records []domain.Record) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(recordHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID,
			formatAmount(r.ClientValue),
			formatAmount(r.LookerValue),
			formatAmount(r.Difference),
			category(r),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("error writing record %s: %w", r.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// RecordsXLSX writes records as a single-sheet workbook. Rows with a
// difference are highlighted.
func (e *Exporter) RecordsXLSX(w io.Writer, records []domain.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return fmt.Errorf("could not name sheet: %w", err)
	}
	if err := writeHeaderRow(f, recordsSheet, recordHeaders); err != nil {
		return err
	}
	diffStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "9A0511"}})
	if err != nil {
		return fmt.Errorf("could not create style: %w", err)
	}

	for i, r := range records {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := []interface{}{r.ID, r.ClientValue, r.LookerValue, r.Difference, category(r)}
		if err := f.SetSheetRow(recordsSheet, cell, &values); err != nil {
			return fmt.Errorf("could not write record %s: %w", r.ID, err)
		}
		if r.Difference != 0 {
			first, _ := excelize.CoordinatesToCellName(1, row)
			last, _ := excelize.CoordinatesToCellName(len(values), row)
			if err := f.SetCellStyle(recordsSheet, first, last, diffStyle); err != nil {
				return fmt.Errorf("could not style record %s: %w", r.ID, err)
			}
		}
	}
	return f.Write(w)
}

// TicketsXLSX writes one row per product of the formatted tickets.
func (e *Exporter) TicketsXLSX(w io.Writer, tickets []domain.FormattedTicket) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ticketsSheet); err != nil {
		return fmt.Errorf("could not name sheet: %w", err)
	}
	if err := writeHeaderRow(f, ticketsSheet, ticketHeaders); err != nil {
		return err
	}

	row := 2
	for _, t := range tickets {
		for _, p := range t.Productos {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := []interface{}{
				t.ID, t.Filename, string(t.SucursalType), t.Sucursal, t.Fecha, t.Remision, t.PedidoAdicional, t.Folio,
				p.Descripcion, string(p.Tipo), p.Cantidad, p.Costo, p.Costo * float64(p.Cantidad),
			}
			if err := f.SetSheetRow(ticketsSheet, cell, &values); err != nil {
				return fmt.Errorf("could not write ticket %s: %w", t.ID, err)
			}
			row++
		}
	}
	return f.Write(w)
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("could not create style: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("could not write header %s: %w", h, err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", last, bold)
}
