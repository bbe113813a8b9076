package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"BoatSharing/internal/config"
	"BoatSharing/internal/lib/sl"
)

// Store appends submission rows to a Google Sheets spreadsheet using a
// service account. A Store is built once at startup; when credentials are
// missing or authorization fails the constructor returns nil and every
// submission degrades to a store-unavailable outcome instead of the
// process failing.
type Store struct {
	srv           *sheets.Service
	spreadsheetId string
	sheetName     string
	log           *slog.Logger
}

// New authorizes against the Sheets API. Returns (nil, nil) when no
// credentials are configured.
func New(ctx context.Context, conf *config.Config, log *slog.Logger) (*Store, error) {
	logger := log.With(sl.Module("sheets"))

	if conf.Sheets.CredentialsJson == "" || conf.Sheets.SpreadsheetId == "" {
		logger.Error("google sheets credentials not configured, submissions will not be persisted")
		return nil, nil
	}

	jwtConf, err := google.JWTConfigFromJSON([]byte(conf.Sheets.CredentialsJson), sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	logger.Info("authorized in google sheets", slog.String("spreadsheet_id", conf.Sheets.SpreadsheetId))

	return &Store{
		srv:           srv,
		spreadsheetId: conf.Sheets.SpreadsheetId,
		sheetName:     conf.Sheets.SheetName,
		log:           logger,
	}, nil
}

// Available reports whether the store connection was established.
func (s *Store) Available() bool {
	return s != nil && s.srv != nil
}

// Append adds one row to the end of the configured sheet.
func (s *Store) Append(ctx context.Context, row []interface{}) error {
	vr := &sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	_, err := s.srv.Spreadsheets.Values.
		Append(s.spreadsheetId, s.sheetName, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending row to %s: %w", s.sheetName, err)
	}

	return nil
}
