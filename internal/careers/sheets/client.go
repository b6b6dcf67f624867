package sheets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

type clientState int

const (
	stateUninitialized clientState = iota
	stateReady
	stateDisabled
)

// StorageUnavailableError wraps any failure that makes the sheet backend
// unusable for a request: a disabled client, an auth failure, or a remote
// call error. Category distinguishes the likely fix.
type StorageUnavailableError struct {
	Op       string
	Status   int
	Category string
	Err      error
}

func (e *StorageUnavailableError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("sheets unavailable during %s (%s, http %d): %v", e.Op, e.Category, e.Status, e.Err)
	}
	return fmt.Sprintf("sheets unavailable during %s (%s): %v", e.Op, e.Category, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error { return e.Err }

// ClientConfig holds the three required credentials.
type ClientConfig struct {
	SheetID             string
	ServiceAccountEmail string
	PrivateKey          string
}

// Client performs range-addressed reads and writes against one spreadsheet.
// Initialization is lazy and memoized: the first call builds the
// authenticated service; any credential failure moves the client to a
// terminal disabled state and every later call fails fast.
type Client struct {
	cfg ClientConfig

	mu      sync.Mutex
	state   clientState
	svc     *sheetsapi.Service
	initErr error
}

func NewClient(cfg ClientConfig) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) ensureReady(ctx context.Context) (*sheetsapi.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case stateReady:
		return c.svc, nil
	case stateDisabled:
		return nil, &StorageUnavailableError{
			Op:       "init",
			Category: "credential",
			Err:      c.initErr,
		}
	}

	svc, err := c.initialize(ctx)
	if err != nil {
		c.state = stateDisabled
		c.initErr = err
		return nil, &StorageUnavailableError{
			Op:       "init",
			Category: "credential",
			Err:      err,
		}
	}
	c.state = stateReady
	c.svc = svc
	return svc, nil
}

func (c *Client) initialize(ctx context.Context) (*sheetsapi.Service, error) {
	if c.cfg.SheetID == "" || c.cfg.ServiceAccountEmail == "" || c.cfg.PrivateKey == "" {
		return nil, errors.New("sheet credentials incomplete")
	}

	key, err := ParsePrivateKey(c.cfg.PrivateKey)
	if err != nil {
		return nil, err
	}

	conf := &jwt.Config{
		Email:      c.cfg.ServiceAccountEmail,
		PrivateKey: []byte(key),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	// Fetch a token eagerly so bad credentials disable the client up front
	// instead of failing on the first data call.
	if _, err := conf.TokenSource(ctx).Token(); err != nil {
		return nil, fmt.Errorf("service account auth: %w", err)
	}

	svc, err := sheetsapi.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("build sheets service: %w", err)
	}
	return svc, nil
}

// ReadRange returns the rows in rangeSpec. An empty range is not an error.
func (c *Client) ReadRange(ctx context.Context, rangeSpec string) ([][]string, error) {
	svc, err := c.ensureReady(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := svc.Spreadsheets.Values.Get(c.cfg.SheetID, rangeSpec).Context(ctx).Do()
	if err != nil {
		return nil, c.remoteErr("read "+rangeSpec, err)
	}
	return toStringRows(resp.Values), nil
}

// AppendRows appends after existing content. Used for header seeding only;
// data writes use UpdateRange to avoid duplicating headers.
func (c *Client) AppendRows(ctx context.Context, rangeSpec string, rows [][]string) error {
	svc, err := c.ensureReady(ctx)
	if err != nil {
		return err
	}
	vr := &sheetsapi.ValueRange{Values: toAnyRows(rows)}
	_, err = svc.Spreadsheets.Values.Append(c.cfg.SheetID, rangeSpec, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return c.remoteErr("append "+rangeSpec, err)
	}
	return nil
}

// UpdateRange overwrites the rectangular region rangeSpec.
func (c *Client) UpdateRange(ctx context.Context, rangeSpec string, rows [][]string) error {
	svc, err := c.ensureReady(ctx)
	if err != nil {
		return err
	}
	vr := &sheetsapi.ValueRange{Values: toAnyRows(rows)}
	_, err = svc.Spreadsheets.Values.Update(c.cfg.SheetID, rangeSpec, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return c.remoteErr("update "+rangeSpec, err)
	}
	return nil
}

func (c *Client) remoteErr(op string, err error) error {
	status := 0
	category := "remote"
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		status = apiErr.Code
		switch apiErr.Code {
		case 401, 403:
			category = "permission"
		case 404:
			category = "not-found"
		}
	}
	return &StorageUnavailableError{Op: op, Status: status, Category: category, Err: err}
}

func toStringRows(values [][]any) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, fmt.Sprint(v))
		}
		rows = append(rows, cells)
	}
	return rows
}

func toAnyRows(rows [][]string) [][]any {
	out := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, 0, len(row))
		for _, v := range row {
			cells = append(cells, v)
		}
		out = append(out, cells)
	}
	return out
}
