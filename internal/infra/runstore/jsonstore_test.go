package runstore

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/drueck/reboot/internal/domain"
)

func fixedID() string { return "3f2504e0-4f89-11d3-9a0c-0305e82c3301" }

func sampleReport() domain.Report {
	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	return domain.Report{
		Path:         "inputs/Day 22.txt",
		Dims:         3,
		Instructions: 22,
		Applied:      20,
		Skipped:      2,
		Volume:       590784,
		Boxes:        311,
		Bounds:       []domain.Range{{Lo: -49, Hi: 47}, {Lo: -41, Hi: 50}, {Lo: -50, Hi: 46}},
		Region:       &domain.Range{Lo: -50, Hi: 50},
		StartedAt:    start,
		EndedAt:      start.Add(3 * time.Millisecond),
	}
}

func TestSaveReport_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()

	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIDs(fixedID))

	id, err := store.SaveReport(sampleReport())
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}
	if id != fixedID() {
		t.Fatalf("expected id %s, got %s", fixedID(), id)
	}

	wantFile := filepath.Join(tmp, "runs", "20260203T101112Z_day-22_3f2504e0.json")
	b, err := os.ReadFile(wantFile)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var decoded domain.Report
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := sampleReport()
	want.ID = fixedID()
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(filepath.Join(tmp, "runs", "index.jsonl")); !os.IsNotExist(err) {
		t.Fatalf("expected no index without WithIndex, stat err=%v", err)
	}
}

func TestSaveReport_KeepsExistingIDAndFillsStart(t *testing.T) {
	tmp := t.TempDir()
	now := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)

	cfg := domain.DefaultConfig()
	cfg.Runs.Dir = "reports"
	store := NewJSONStore(tmp, cfg, WithNow(func() time.Time { return now }))

	r := sampleReport()
	r.ID = "abcdef0123456789"
	r.StartedAt = time.Time{}

	id, err := store.SaveReport(r)
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}
	if id != r.ID {
		t.Fatalf("expected id %s, got %s", r.ID, id)
	}

	wantFile := filepath.Join(tmp, "reports", "20260506T070809Z_day-22_abcdef01.json")
	if _, err := os.Stat(wantFile); err != nil {
		t.Fatalf("expected file at %s: %v", wantFile, err)
	}
}

func TestSaveReport_WritesIndex(t *testing.T) {
	tmp := t.TempDir()

	ids := []string{"11111111-aaaa", "22222222-bbbb"}
	next := 0
	store := NewJSONStore(tmp, domain.DefaultConfig(),
		WithIndex(true),
		WithIDs(func() string { id := ids[next]; next++; return id }),
	)

	for range ids {
		if _, err := store.SaveReport(sampleReport()); err != nil {
			t.Fatalf("SaveReport error: %v", err)
		}
	}

	f, err := os.Open(filepath.Join(tmp, "runs", "index.jsonl"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()

	var lines []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("unmarshal index line: %v", err)
		}
		lines = append(lines, m)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 index lines, got %d", len(lines))
	}
	if lines[1]["id"] != "22222222-bbbb" || lines[1]["file"] != "20260203T101112Z_day-22_22222222.json" {
		t.Fatalf("unexpected index line %v", lines[1])
	}
	if lines[0]["volume"] != float64(590784) {
		t.Fatalf("unexpected volume in index %v", lines[0]["volume"])
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Day 22":          "day-22",
		"  input_large  ": "input-large",
		"a..b--c":         "a-b-c",
		"***":             "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
