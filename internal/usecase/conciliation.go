package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"santiice/internal/domain"

	"go.uber.org/zap"
)

// MaxUploadSize is the largest file the backend accepts.
const MaxUploadSize = 50 << 20

const dateLayout = "2006-01-02"

var (
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrUnsupportedFile  = errors.New("only .xlsx, .xls and .csv files are accepted")
	ErrFileTooLarge     = errors.New("file exceeds 50 MB")
	ErrPollExhausted    = errors.New("results still not ready")
)

var spreadsheetExtensions = map[string]bool{".xlsx": true, ".xls": true, ".csv": true}

// PollOptions bounds the results polling loop. The wait between attempts
// starts at Interval and doubles up to MaxInterval.
type PollOptions struct {
	Interval    time.Duration
	MaxInterval time.Duration
	MaxAttempts int
}

// DefaultPollOptions waits 3s, doubling to 30s, for at most 20 attempts.
func DefaultPollOptions() PollOptions {
	return PollOptions{Interval: 3 * time.Second, MaxInterval: 30 * time.Second, MaxAttempts: 20}
}

// RunRequest is one reconciliation to run.
type RunRequest struct {
	Client     domain.ClientType
	DateRange  domain.DateRange
	SourcePath string
	LookerPath string
}

// Validate checks the request before anything is sent.
func (r RunRequest) Validate() error {
	if !r.Client.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownClient, r.Client)
	}
	start, err := time.Parse(dateLayout, r.DateRange.StartDate)
	if err != nil {
		return fmt.Errorf("%w: start date %q", ErrInvalidDateRange, r.DateRange.StartDate)
	}
	end, err := time.Parse(dateLayout, r.DateRange.EndDate)
	if err != nil {
		return fmt.Errorf("%w: end date %q", ErrInvalidDateRange, r.DateRange.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, r.DateRange.EndDate, r.DateRange.StartDate)
	}
	for _, p := range []string{r.SourcePath, r.LookerPath} {
		if err := checkSpreadsheet(p); err != nil {
			return err
		}
	}
	return nil
}

func checkSpreadsheet(path string) error {
	if !spreadsheetExtensions[strings.ToLower(filepath.Ext(path))] {
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("could not stat %s: %w", path, err)
	}
	if info.Size() > MaxUploadSize {
		return fmt.Errorf("%w: %s", ErrFileTooLarge, filepath.Base(path))
	}
	return nil
}

// ConciliationUseCase drives a reconciliation session on the backend.
type ConciliationUseCase struct {
	gateway  ConciliatorGateway
	history  *HistoryUseCase
	exporter Exporter
	poll     PollOptions
}

// NewConciliationUseCase wires the reconciliation flows.
func NewConciliationUseCase(gateway ConciliatorGateway, history *HistoryUseCase, exporter Exporter, poll PollOptions) *ConciliationUseCase {
	return &ConciliationUseCase{gateway: gateway, history: history, exporter: exporter, poll: poll}
}

// Clients lists the supported clients. When the backend cannot be reached
// the built-in list is returned along with the error.
func (uc *ConciliationUseCase) Clients(ctx context.Context) ([]domain.ClientInfo, error) {
	clients, err := uc.gateway.Clients(ctx)
	if err != nil {
		return domain.DefaultClients(), fmt.Errorf("could not list clients: %w", err)
	}
	return clients, nil
}

type runOutcome struct {
	results *domain.Results
	err     error
}

// Run uploads both files, starts processing and waits for the results. Push
// events from the progress feed and the polling loop race; whichever finishes
// first decides the outcome and the other is cancelled. A completed run is
// saved to history exactly once.
func (uc *ConciliationUseCase) Run(ctx context.Context, req RunRequest, onProgress func(domain.Progress)) (*domain.Results, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if onProgress == nil {
		onProgress = func(domain.Progress) {}
	}

	sessionID, err := uc.gateway.CreateSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}
	log := zap.L().With(zap.String("session", sessionID), zap.String("client", string(req.Client)))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	feed, err := uc.gateway.Subscribe(runCtx, sessionID)
	if err != nil {
		log.Warn("usecase: progress feed unavailable, polling only", zap.Error(err))
		feed = nil
	}

	onProgress(domain.Progress{Step: "upload", Percent: 10, Message: "Subiendo archivos"})
	if err := uc.gateway.Upload(ctx, sessionID, domain.FileSource, req.SourcePath); err != nil {
		return nil, err
	}
	if err := uc.gateway.Upload(ctx, sessionID, domain.FileLooker, req.LookerPath); err != nil {
		return nil, err
	}
	onProgress(domain.Progress{Step: "process", Percent: 30, Message: "Procesando conciliación"})
	err = uc.gateway.Process(ctx, domain.ProcessRequest{
		SessionID:  sessionID,
		ClientType: string(req.Client),
		DateRange:  req.DateRange,
	})
	if err != nil {
		return nil, fmt.Errorf("could not start processing: %w", err)
	}

	done := make(chan runOutcome, 1)
	var once sync.Once
	finish := func(o runOutcome) {
		once.Do(func() {
			done <- o
			cancel()
		})
	}

	var wg sync.WaitGroup
	if feed != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uc.watchFeed(runCtx, sessionID, feed, onProgress, finish)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		uc.pollResults(runCtx, sessionID, finish)
	}()

	outcome := <-done
	wg.Wait()
	if outcome.err != nil {
		log.Error("usecase: reconciliation failed", zap.Error(outcome.err))
		return nil, outcome.err
	}

	res := outcome.results
	if res.SessionID == "" {
		res.SessionID = sessionID
	}
	onProgress(domain.Progress{Step: "completed", Percent: 100, Message: "Conciliación completada"})
	_, err = uc.history.Save(ctx, domain.SessionEntry{
		ID:        sessionID,
		Client:    string(req.Client),
		Status:    "completed",
		Summary:   res.Summary,
		Records:   res.Records,
		Files:     domain.SessionFiles{Source: filepath.Base(req.SourcePath), Looker: filepath.Base(req.LookerPath)},
		DateRange: req.DateRange,
	})
	if err != nil {
		log.Warn("usecase: could not save session history", zap.Error(err))
	}
	log.Info("usecase: reconciliation completed", zap.Int("records", len(res.Records)))
	return res, nil
}

func (uc *ConciliationUseCase) watchFeed(ctx context.Context, sessionID string, feed <-chan domain.ProgressEvent, onProgress func(domain.Progress), finish func(runOutcome)) {
	for {
		var ev domain.ProgressEvent
		var ok bool
		select {
		case <-ctx.Done():
			return
		case ev, ok = <-feed:
			if !ok {
				return
			}
		}

		switch ev.Type {
		case domain.EventProgress:
			onProgress(domain.Progress{Step: ev.Step, Percent: ev.Progress, Message: ev.Message})
		case domain.EventCompleted:
			if ev.Result.Complete() {
				finish(runOutcome{results: ev.Result})
				return
			}
			res, err := uc.gateway.Results(ctx, sessionID)
			if err == nil {
				finish(runOutcome{results: res})
				return
			}
			if errors.Is(err, domain.ErrSessionFailed) {
				finish(runOutcome{err: err})
				return
			}
		case domain.EventError:
			msg := ev.Message
			if msg == "" {
				msg = "Error desconocido"
			}
			finish(runOutcome{err: fmt.Errorf("%w: %s", domain.ErrSessionFailed, msg)})
			return
		}
	}
}

func (uc *ConciliationUseCase) pollResults(ctx context.Context, sessionID string, finish func(runOutcome)) {
	wait := uc.poll.Interval
	timer := time.NewTimer(wait)
	defer timer.Stop()

	for attempt := 1; uc.poll.MaxAttempts <= 0 || attempt <= uc.poll.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			finish(runOutcome{err: ctx.Err()})
			return
		case <-timer.C:
		}

		res, err := uc.gateway.Results(ctx, sessionID)
		switch {
		case err == nil:
			finish(runOutcome{results: res})
			return
		case errors.Is(err, domain.ErrSessionFailed):
			finish(runOutcome{err: err})
			return
		case ctx.Err() != nil:
			finish(runOutcome{err: ctx.Err()})
			return
		case !errors.Is(err, domain.ErrNotReady):
			zap.L().Debug("usecase: results poll failed", zap.String("session", sessionID), zap.Int("attempt", attempt), zap.Error(err))
		}

		wait *= 2
		if uc.poll.MaxInterval > 0 && wait > uc.poll.MaxInterval {
			wait = uc.poll.MaxInterval
		}
		timer.Reset(wait)
	}
	finish(runOutcome{err: fmt.Errorf("%w after %d attempts", ErrPollExhausted, uc.poll.MaxAttempts)})
}

// Results fetches the results of a session from the backend.
func (uc *ConciliationUseCase) Results(ctx context.Context, sessionID string) (*domain.Results, error) {
	return uc.gateway.Results(ctx, sessionID)
}

// Download writes a backend report into w and returns its file name.
func (uc *ConciliationUseCase) Download(ctx context.Context, sessionID, reportType string, w io.Writer) (string, error) {
	if reportType != "xlsx" && reportType != "csv" {
		return "", fmt.Errorf("%w: report type %q", ErrUnsupportedFile, reportType)
	}
	name, err := uc.gateway.Download(ctx, sessionID, reportType, w)
	if err != nil {
		return "", fmt.Errorf("could not download report: %w", err)
	}
	return name, nil
}

// DeleteSession discards a session on the backend.
func (uc *ConciliationUseCase) DeleteSession(ctx context.Context, sessionID string) error {
	if err := uc.gateway.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("could not delete session: %w", err)
	}
	return nil
}

// ExportCSV writes records as CSV.
func (uc *ConciliationUseCase) ExportCSV(w io.Writer, records []domain.Record) error {
	if err := uc.exporter.RecordsCSV(w, records); err != nil {
		return fmt.Errorf("could not export csv: %w", err)
	}
	return nil
}

// ExportXLSX writes records as an Excel workbook.
func (uc *ConciliationUseCase) ExportXLSX(w io.Writer, records []domain.Record) error {
	if err := uc.exporter.RecordsXLSX(w, records); err != nil {
		return fmt.Errorf("could not export xlsx: %w", err)
	}
	return nil
}
