package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rebeliceyang/lazynav/internal/history"
	"github.com/rebeliceyang/lazynav/internal/models"
	"github.com/rebeliceyang/lazynav/internal/navtree"
)

func testIndex(t *testing.T) *navtree.Index {
	t.Helper()
	tree, err := navtree.Render(&models.TreeData{
		Groups: []models.TreeGroup{
			{Items: []*models.TreeNode{{ID: "home", Label: "Home", Current: true}}},
			{Items: []*models.TreeNode{
				{ID: "apps", Label: "Apps, Tools & \"More\"", Items: []*models.TreeNode{
					{ID: "find", Label: "Find", External: true},
				}},
			}},
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return navtree.BuildIndex(tree)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "CSV", " csv "} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestWriteIndex_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteIndex(&buf, testIndex(t), FormatCSV); err != nil {
		t.Fatalf("WriteIndex failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}

	// Header + 3 rows
	if len(records) != 4 {
		t.Fatalf("Expected 4 records, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "id,level,has_children,parent_id,label" {
		t.Errorf("Unexpected header: %v", records[0])
	}
	if records[1][3] != "" {
		t.Errorf("Expected empty parent for top-level item, got %q", records[1][3])
	}
	if records[2][4] != "Apps, Tools & \"More\"" {
		t.Errorf("Label not round-tripped: %q", records[2][4])
	}
	if records[3][0] != "find" || records[3][1] != "2" || records[3][3] != "apps" {
		t.Errorf("Unexpected child row: %v", records[3])
	}
}

func TestWriteIndex_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteIndex(&buf, testIndex(t), FormatJSON); err != nil {
		t.Fatalf("WriteIndex failed: %v", err)
	}

	if !strings.Contains(buf.String(), `"parent_id": null`) {
		t.Errorf("Expected null parent for top-level items:\n%s", buf.String())
	}

	var records []IndexRecord
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[2].ParentID == nil || *records[2].ParentID != "apps" {
		t.Errorf("Expected parent apps, got %v", records[2].ParentID)
	}
	if !records[1].HasChildren {
		t.Error("Expected apps to have children")
	}
}

func TestWriteIndex_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteIndex(&buf, testIndex(t), Format("yaml")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestExportIndexToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")

	if err := ExportIndexToFile(testIndex(t), path, FormatJSON); err != nil {
		t.Fatalf("ExportIndexToFile failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty export file")
	}

	if err := ExportIndexToFile(testIndex(t), filepath.Join(t.TempDir(), "missing", "x.json"), FormatJSON); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestWriteVisits(t *testing.T) {
	visits := []history.Visit{
		{SessionID: "s1", NodeID: "find", Label: "Find", Href: "https://find.example.com", External: true,
			VisitedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
	}

	var buf bytes.Buffer
	if err := WriteVisits(&buf, visits, FormatCSV); err != nil {
		t.Fatalf("WriteVisits CSV: %v", err)
	}
	if !strings.Contains(buf.String(), "2026-01-02 03:04:05,find,Find,https://find.example.com,true,s1") {
		t.Errorf("Unexpected CSV:\n%s", buf.String())
	}

	buf.Reset()
	if err := WriteVisits(&buf, visits, FormatJSON); err != nil {
		t.Fatalf("WriteVisits JSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"visited_at": "2026-01-02T03:04:05Z"`) {
		t.Errorf("Unexpected JSON:\n%s", buf.String())
	}
}
