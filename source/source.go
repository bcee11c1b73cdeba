// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/danielhkuo/ranked-choice/ballot"
)

// DefaultSheet is the tab Google Forms writes responses to
const DefaultSheet = "Form Responses 1"

// SheetPrefix marks a source identifier as a Google Sheets ID
const SheetPrefix = "sheet:"

// Source supplies raw response rows; the first row is the header
type Source interface {
	Records(ctx context.Context) ([][]string, error)
}

// FileSource reads a CSV export from disk
type FileSource struct {
	Path string
}

func (s FileSource) Records(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ballot source: %w", err)
	}
	defer f.Close()

	return readCSV(f)
}

// HTTPSource downloads a CSV export, e.g. a published spreadsheet
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Records(ctx context.Context) ([][]string, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ballot source: %w", err)
	}
	defer resp.Body.Close()

	slog.Info("ballot source fetched",
		"url", s.URL,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch ballot source: unexpected status %s", resp.Status)
	}

	return readCSV(resp.Body)
}

// SheetURL is the CSV export URL for one tab of a link-shared Google Sheet
func SheetURL(id, sheet string) string {
	q := url.Values{}
	q.Set("tqx", "out:csv")
	q.Set("sheet", sheet)
	return "https://docs.google.com/spreadsheets/d/" + url.PathEscape(id) + "/gviz/tq?" + q.Encode()
}

// Open picks a Source for an identifier: an http(s) URL, a "sheet:<id>"
// Google Sheets ID, or a file path
func Open(identifier string) (Source, error) {
	switch {
	case identifier == "":
		return nil, errors.New("ballot source identifier required")
	case strings.HasPrefix(identifier, "http://"), strings.HasPrefix(identifier, "https://"):
		return HTTPSource{URL: identifier}, nil
	case strings.HasPrefix(identifier, SheetPrefix):
		id := strings.TrimPrefix(identifier, SheetPrefix)
		if id == "" {
			return nil, errors.New("sheet ID required after " + SheetPrefix)
		}
		return HTTPSource{URL: SheetURL(id, DefaultSheet)}, nil
	default:
		return FileSource{Path: identifier}, nil
	}
}

// Fetch reads the source and builds the table for one question
func Fetch(ctx context.Context, src Source, question string) (*ballot.Table, error) {
	records, err := src.Records(ctx)
	if err != nil {
		return nil, err
	}
	return Table(records, question)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // response rows may be shorter than the header

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		slog.Warn("no data found")
		return nil, ErrNoData
	}
	return records, nil
}
