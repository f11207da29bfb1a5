// Package snapshots persists generated reports in the local data
// directory so past months stay browsable without refetching. Files are
// age-encrypted at rest when the store is created with a password.
package snapshots

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yabelyaev/N3xFin/internal/models"
)

const (
	snapshotExt = ".json"

	// markerFile flags a directory whose snapshots are encrypted, so
	// the server knows to prompt for the password before serving.
	markerFile = ".encrypted"

	// verifyFile holds a tiny known plaintext used to check a
	// password without touching real snapshots.
	verifyFile = ".verify"
)

// verifyMagic is the content of the verification file.
type verifyMagic struct {
	Magic   string `json:"magic"`
	Version int    `json:"version"`
}

var wantMagic = verifyMagic{Magic: "n3xfin-snapshot-verify", Version: 1}

// Store reads and writes report snapshots under one directory.
type Store struct {
	dir      string
	password string
	logger   *logrus.Logger
}

// New opens a plaintext store.
func New(dir string, logger *logrus.Logger) *Store {
	return &Store{dir: dir, logger: logger}
}

// NewEncrypted opens an encrypted store, writing the marker and
// verification files on first use and checking the password against
// them afterwards.
func NewEncrypted(dir, password string, logger *logrus.Logger) (*Store, error) {
	s := &Store{dir: dir, password: password, logger: logger}

	marker := filepath.Join(dir, markerFile)
	if _, err := os.Stat(marker); os.IsNotExist(err) {
		if err := s.writeVerify(); err != nil {
			return nil, err
		}
		if err := os.WriteFile(marker, []byte{}, 0o600); err != nil {
			return nil, fmt.Errorf("writing encryption marker: %w", err)
		}
		return s, nil
	}

	if err := s.checkVerify(); err != nil {
		return nil, err
	}
	return s, nil
}

// IsEncrypted reports whether the directory holds encrypted snapshots.
func IsEncrypted(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, markerFile))
	return err == nil
}

// Save writes a report snapshot atomically, replacing any previous
// snapshot for the same report id.
func (s *Store) Save(report *models.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report %s: %w", report.ReportID, err)
	}
	if err := s.writeFile(s.path(report.ReportID), data); err != nil {
		return err
	}
	s.logger.WithField("reportId", report.ReportID).Info("saved report snapshot")
	return nil
}

// Load reads a report snapshot by id. A missing snapshot returns
// os.ErrNotExist via the underlying read.
func (s *Store) Load(reportID string) (*models.Report, error) {
	data, err := s.readFile(s.path(reportID))
	if err != nil {
		return nil, err
	}
	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", reportID, err)
	}
	return &report, nil
}

// List returns summaries for every stored report, newest month first.
func (s *Store) List() ([]models.ReportSummary, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot dir: %w", err)
	}

	var summaries []models.ReportSummary
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, snapshotExt) || strings.HasPrefix(name, ".") {
			continue
		}
		report, err := s.Load(strings.TrimSuffix(name, snapshotExt))
		if err != nil {
			s.logger.WithError(err).WithField("file", name).Warn("skipping unreadable snapshot")
			continue
		}
		summaries = append(summaries, models.ReportSummary{
			ReportID:      report.ReportID,
			Month:         report.Month,
			GeneratedAt:   report.GeneratedAt,
			TotalSpending: report.TotalSpending,
			NetSavings:    report.NetSavings,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Month > summaries[j].Month
	})
	return summaries, nil
}

func (s *Store) path(reportID string) string {
	return filepath.Join(s.dir, reportID+snapshotExt)
}

func (s *Store) writeVerify() error {
	data, err := json.Marshal(wantMagic)
	if err != nil {
		return fmt.Errorf("encoding verify magic: %w", err)
	}
	return s.writeFile(filepath.Join(s.dir, verifyFile), data)
}

func (s *Store) checkVerify() error {
	data, err := s.readFile(filepath.Join(s.dir, verifyFile))
	if err != nil {
		return fmt.Errorf("reading verification file (wrong password?): %w", err)
	}
	var got verifyMagic
	if err := json.Unmarshal(data, &got); err != nil || got != wantMagic {
		return fmt.Errorf("snapshot password verification failed")
	}
	return nil
}
