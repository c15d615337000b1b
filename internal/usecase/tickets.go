package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"santiice/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrNoFiles          = errors.New("no ticket images given")
	ErrUnsupportedImage = errors.New("only JPEG and PNG images are accepted")
	ErrProcessFailed    = errors.New("ticket processing failed")
)

var imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// TicketsUseCase drives the OCR backend: upload, review handoff and confirmation.
type TicketsUseCase struct {
	gateway   TicketGateway
	review    *ReviewUseCase
	formatter *SubmissionFormatter
	exporter  Exporter
}

// NewTicketsUseCase wires the ticket flows.
func NewTicketsUseCase(gateway TicketGateway, review *ReviewUseCase, formatter *SubmissionFormatter, exporter Exporter) *TicketsUseCase {
	return &TicketsUseCase{gateway: gateway, review: review, formatter: formatter, exporter: exporter}
}

// ProcessOutcome is the result of an upload batch.
type ProcessOutcome struct {
	Processed int
	Tickets   []domain.Ticket
	// NewCounts is only set for additional batches.
	NewCounts map[domain.ClientType]int
}

// Process sends images for extraction. The first batch starts a review
// session, additional batches are appended to it.
func (uc *TicketsUseCase) Process(ctx context.Context, paths []string, additional bool) (*ProcessOutcome, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	for _, p := range paths {
		if !imageExtensions[strings.ToLower(filepath.Ext(p))] {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, filepath.Base(p))
		}
	}

	res, err := uc.gateway.Process(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("could not process tickets: %w", err)
	}
	if !res.Success {
		return nil, ErrProcessFailed
	}

	out := &ProcessOutcome{Processed: res.Processed, Tickets: res.Results}
	if additional {
		counts, err := uc.review.Append(ctx, res.Results)
		if err != nil {
			return nil, err
		}
		out.NewCounts = counts
	} else if err := uc.review.Load(ctx, res.Results); err != nil {
		return nil, err
	}

	zap.L().Info("usecase: tickets processed",
		zap.Int("files", len(paths)),
		zap.Int("processed", res.Processed),
		zap.Bool("additional", additional))
	return out, nil
}

// Confirm submits the given tickets, or the selection when ids is empty.
// Tickets needing attention block the whole batch. A transport failure is
// reported as a result with every ticket in error.
func (uc *TicketsUseCase) Confirm(ctx context.Context, ids []string) (*domain.ConfirmResult, error) {
	tickets, err := uc.review.Confirmable(ids)
	if err != nil {
		return nil, err
	}
	res := uc.submit(ctx, uc.formatter.Format(tickets))
	if err := uc.review.MarkConfirmed(ctx, res); err != nil {
		return res, err
	}
	return res, nil
}

// ConfirmManual validates and submits operator-typed tickets directly,
// without going through the review session.
func (uc *TicketsUseCase) ConfirmManual(ctx context.Context, entries []ManualEntry) (*domain.ConfirmResult, error) {
	if len(entries) == 0 {
		return nil, ErrNothingSelected
	}
	tickets := make([]domain.Ticket, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
		tickets = append(tickets, e.Ticket(NewManualTicketID(), uc.formatter.prices))
	}
	return uc.submit(ctx, uc.formatter.Format(tickets)), nil
}

func (uc *TicketsUseCase) submit(ctx context.Context, formatted []domain.FormattedTicket) *domain.ConfirmResult {
	res, err := uc.gateway.Confirm(ctx, formatted)
	if err == nil {
		return res
	}
	zap.L().Error("usecase: could not confirm tickets", zap.Error(err), zap.Int("tickets", len(formatted)))
	return failedConfirmation(formatted, err)
}

// failedConfirmation reports every ticket as failed with the transport error.
func failedConfirmation(tickets []domain.FormattedTicket, err error) *domain.ConfirmResult {
	msg := err.Error()
	out := &domain.ConfirmResult{
		Success: false,
		Error:   msg,
		Results: make([]domain.ConfirmItem, 0, len(tickets)),
		Summary: domain.ConfirmSummary{Total: len(tickets), Errors: len(tickets)},
	}
	for _, t := range tickets {
		filename := t.Filename
		if filename == "" {
			filename = "Unknown file"
		}
		out.Results = append(out.Results, domain.ConfirmItem{
			ID:       t.ID,
			Filename: filename,
			Status:   "error",
			Message:  msg,
			Error:    msg,
		})
	}
	return out
}

// ExportXLSX writes the formatted tickets in ids, or in the selection when
// ids is empty, without confirming them.
func (uc *TicketsUseCase) ExportXLSX(w io.Writer, ids []string) error {
	if len(ids) == 0 {
		ids = uc.review.Selected()
	}
	var picked []domain.Ticket
	for _, t := range uc.review.Tickets() {
		if contains(ids, t.ID) {
			picked = append(picked, t)
		}
	}
	if len(picked) == 0 {
		return ErrNothingSelected
	}
	if err := uc.exporter.TicketsXLSX(w, uc.formatter.Format(picked)); err != nil {
		return fmt.Errorf("could not export tickets: %w", err)
	}
	return nil
}
