package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rebeliceyang/lazynav/internal/history"
	"github.com/rebeliceyang/lazynav/internal/navtree"
)

// Format is an export encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ErrUnknownFormat is returned for unsupported export formats
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// IndexRecord is one exported index entry. ParentID is null for top-level items.
type IndexRecord struct {
	ID          string  `json:"id"`
	Level       int     `json:"level"`
	HasChildren bool    `json:"has_children"`
	ParentID    *string `json:"parent_id"`
	Label       string  `json:"label"`
}

// IndexRecords converts the index to records in document order
func IndexRecords(idx *navtree.Index) []IndexRecord {
	entries := idx.Entries()
	records := make([]IndexRecord, 0, len(entries))
	for _, e := range entries {
		r := IndexRecord{
			ID:          e.ID,
			Level:       e.Level,
			HasChildren: e.HasChildren,
			Label:       e.Label,
		}
		if e.HasParent() {
			parent := e.ParentID
			r.ParentID = &parent
		}
		records = append(records, r)
	}
	return records
}

// WriteIndex encodes the index to w
func WriteIndex(w io.Writer, idx *navtree.Index, format Format) error {
	switch format {
	case FormatCSV:
		return writeIndexCSV(w, idx)
	case FormatJSON:
		return writeJSON(w, IndexRecords(idx))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeIndexCSV(w io.Writer, idx *navtree.Index) error {
	writer := csv.NewWriter(w)

	// Write header
	if err := writer.Write([]string{"id", "level", "has_children", "parent_id", "label"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range IndexRecords(idx) {
		parent := ""
		if r.ParentID != nil {
			parent = *r.ParentID
		}
		row := []string{
			r.ID,
			strconv.Itoa(r.Level),
			strconv.FormatBool(r.HasChildren),
			parent,
			r.Label,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteVisits encodes visit log entries to w
func WriteVisits(w io.Writer, visits []history.Visit, format Format) error {
	switch format {
	case FormatCSV:
		return writeVisitsCSV(w, visits)
	case FormatJSON:
		type visitRecord struct {
			NodeID    string    `json:"node_id"`
			Label     string    `json:"label"`
			Href      string    `json:"href"`
			External  bool      `json:"external"`
			SessionID string    `json:"session_id"`
			VisitedAt time.Time `json:"visited_at"`
		}
		records := make([]visitRecord, 0, len(visits))
		for _, v := range visits {
			records = append(records, visitRecord{
				NodeID:    v.NodeID,
				Label:     v.Label,
				Href:      v.Href,
				External:  v.External,
				SessionID: v.SessionID,
				VisitedAt: v.VisitedAt.UTC(),
			})
		}
		return writeJSON(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeVisitsCSV(w io.Writer, visits []history.Visit) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"visited_at", "node_id", "label", "href", "external", "session_id"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, v := range visits {
		row := []string{
			v.VisitedAt.UTC().Format("2006-01-02 15:04:05"),
			v.NodeID,
			v.Label,
			v.Href,
			strconv.FormatBool(v.External),
			v.SessionID,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeJSON(w io.Writer, v any) error {
	// Marshal to JSON with pretty printing
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ExportIndexToFile writes the index to path in the given format
func ExportIndexToFile(idx *navtree.Index, path string, format Format) error {
	// Create the file
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WriteIndex(file, idx, format); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
