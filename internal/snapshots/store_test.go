package snapshots

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yabelyaev/N3xFin/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sampleReport(month string) *models.Report {
	return &models.Report{
		ReportID:      "user-1-" + month,
		UserID:        "user-1",
		Month:         month,
		GeneratedAt:   time.Date(2024, 4, 1, 6, 0, 0, 0, time.UTC),
		TotalSpending: 1100,
		NetSavings:    900,
		Insights:      []string{"steady month"},
	}
}

func TestStoreSaveLoadList(t *testing.T) {
	store := New(t.TempDir(), quietLogger())

	for _, month := range []string{"2024-01", "2024-03", "2024-02"} {
		if err := store.Save(sampleReport(month)); err != nil {
			t.Fatalf("Save(%s): %v", month, err)
		}
	}

	got, err := store.Load("user-1-2024-02")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Month != "2024-02" || got.TotalSpending != 1100 {
		t.Errorf("loaded report = %+v", got)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}
	wantOrder := []string{"2024-03", "2024-02", "2024-01"}
	for i, s := range summaries {
		if s.Month != wantOrder[i] {
			t.Errorf("summary %d month = %s, want %s (newest first)", i, s.Month, wantOrder[i])
		}
	}
}

func TestStoreLoadMissing(t *testing.T) {
	store := New(t.TempDir(), quietLogger())
	if _, err := store.Load("user-1-2024-01"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	store := New(t.TempDir(), quietLogger())
	r := sampleReport("2024-01")
	if err := store.Save(r); err != nil {
		t.Fatal(err)
	}
	r.TotalSpending = 9999
	if err := store.Save(r); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load(r.ReportID)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalSpending != 9999 {
		t.Errorf("regenerated report not overwritten, spending = %v", got.TotalSpending)
	}
}

func TestEncryptedStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewEncrypted(dir, "hunter2", quietLogger())
	if err != nil {
		t.Fatalf("NewEncrypted: %v", err)
	}
	if !IsEncrypted(dir) {
		t.Error("directory should be marked encrypted")
	}

	if err := store.Save(sampleReport("2024-01")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Bytes on disk must not be the plaintext report.
	raw, err := os.ReadFile(store.path("user-1-2024-01"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(raw), "steady month") {
		t.Error("snapshot stored in plaintext despite password")
	}
	if !isAgeEncrypted(raw) {
		t.Error("snapshot missing age header")
	}

	got, err := store.Load("user-1-2024-01")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Insights[0] != "steady month" {
		t.Errorf("round trip lost content: %+v", got)
	}
}

func TestEncryptedStoreWrongPassword(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewEncrypted(dir, "correct", quietLogger()); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := NewEncrypted(dir, "wrong", quietLogger()); err == nil {
		t.Error("wrong password should fail verification")
	}
	if _, err := NewEncrypted(dir, "correct", quietLogger()); err != nil {
		t.Errorf("correct password should reopen: %v", err)
	}
}
