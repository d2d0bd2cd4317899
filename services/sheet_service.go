package services

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/cloud30/cloud30-sales-api/config"
	"github.com/cloud30/cloud30-sales-api/metrics"
)

// Sheet names inside the spreadsheet. Each sheet is an append-only ledger
// with a single header row.
const (
	SheetCustomers   = "Customers"
	SheetOrders      = "Orders"
	SheetPayments    = "Payments"
	SheetInvoiceLogs = "InvoiceLogs"
)

// TabularStore is the storage interface every ledger component talks to.
// It is key-addressed: mutations name the row by the value of its first
// column, never by position, so a concurrent append cannot redirect an
// update onto the wrong row.
type TabularStore interface {
	// ReadRows returns the data rows of a sheet, header excluded, in append
	// order.
	ReadRows(ctx context.Context, sheetName string) ([][]string, error)

	// AppendRow appends one row after the last non-empty row of the sheet.
	AppendRow(ctx context.Context, sheetName string, row []string) error

	// UpdateCellByKey overwrites a single cell in the row whose first column
	// equals key. Returns ErrRowNotFound when no row matches.
	UpdateCellByKey(ctx context.Context, sheetName, key string, column int, value string) error
}

// SheetService implements TabularStore on top of the Google Sheets API.
type SheetService struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

var tabularStoreInstance TabularStore

// InitSheetService builds the Google Sheets client from the service account
// credentials in the configuration and installs it as the process-wide store.
func InitSheetService(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (TabularStore, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.GoogleServiceAccount)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheets client: %w", err)
	}

	tabularStoreInstance = &SheetService{
		svc:           svc,
		spreadsheetID: cfg.GoogleSheetID,
		logger:        logger.With("component", "sheets"),
		metrics:       m,
	}
	return tabularStoreInstance, nil
}

// GetTabularStore returns the initialized store instance.
func GetTabularStore() TabularStore {
	return tabularStoreInstance
}

// SetTabularStore sets the store instance (primarily for testing).
func SetTabularStore(store TabularStore) {
	tabularStoreInstance = store
}

// ReadRows fetches the full sheet and drops the header row.
func (s *SheetService) ReadRows(ctx context.Context, sheetName string) ([][]string, error) {
	readRange := fmt.Sprintf("%s!A:Z", sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		s.count(sheetName, "read", "error")
		return nil, upstream("sheets", fmt.Errorf("read %s: %w", sheetName, err))
	}
	s.count(sheetName, "read", "ok")

	values := resp.Values
	if len(values) <= 1 {
		return nil, nil
	}
	rows := make([][]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends a single row using USER_ENTERED input, matching how rows
// were written historically so the sheet keeps interpreting numbers as
// numbers.
func (s *SheetService) AppendRow(ctx context.Context, sheetName string, row []string) error {
	appendRange := fmt.Sprintf("%s!A:Z", sheetName)
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, appendRange, &sheets.ValueRange{
		Values: [][]interface{}{values},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		s.count(sheetName, "append", "error")
		return upstream("sheets", fmt.Errorf("append %s: %w", sheetName, err))
	}
	s.count(sheetName, "append", "ok")
	return nil
}

// UpdateCellByKey locates the row by its key column immediately before
// writing. The read and the write are still two round trips, so a row
// deleted in between can fail the update, but an append can no longer shift
// the write onto a neighbouring row.
func (s *SheetService) UpdateCellByKey(ctx context.Context, sheetName, key string, column int, value string) error {
	rows, err := s.ReadRows(ctx, sheetName)
	if err != nil {
		return err
	}

	rowIndex := -1
	for i, row := range rows {
		if len(row) > 0 && row[0] == key {
			rowIndex = i
			break
		}
	}
	if rowIndex == -1 {
		return ErrRowNotFound
	}

	// +2: one for the header row, one because sheet rows are 1-based.
	cellRange := fmt.Sprintf("%s!%s%d", sheetName, columnLetter(column), rowIndex+2)
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, cellRange, &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		s.count(sheetName, "update", "error")
		return upstream("sheets", fmt.Errorf("update %s %s: %w", sheetName, cellRange, err))
	}
	s.count(sheetName, "update", "ok")
	return nil
}

func (s *SheetService) count(sheet, op, status string) {
	if s.metrics != nil {
		s.metrics.SheetRequests.WithLabelValues(sheet, op, status).Inc()
	}
}

// columnLetter converts a zero-based column index to its A1 letter. The
// ledgers never grow past column Z.
func columnLetter(column int) string {
	return string(rune('A' + column))
}
