package store

import (
	"encoding/json"
	"time"

	"smartresume/internal/errors"

	"gorm.io/gorm"
)

// Snapshot is the whole-store export format. IDs and timestamps are
// preserved so an import restores the store exactly.
type Snapshot struct {
	Resumes      []Resume      `json:"resumes"`
	CoverLetters []CoverLetter `json:"coverLetters"`
	ExportedAt   time.Time     `json:"exportedAt"`
}

// ExportAll serializes the entire store to JSON.
func (s *Store) ExportAll() ([]byte, error) {
	snapshot := Snapshot{ExportedAt: time.Now().UTC()}

	if err := s.db.Order("id").Find(&snapshot.Resumes).Error; err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to export resumes", err)
	}
	if err := s.db.Order("id").Find(&snapshot.CoverLetters).Error; err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to export cover letters", err)
	}

	out, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to encode export", err)
	}
	s.logger.Info("Store exported",
		"resumes", len(snapshot.Resumes),
		"cover_letters", len(snapshot.CoverLetters))
	return out, nil
}

// ImportAll replaces the store's contents with the given snapshot.
// Existing data is cleared first; the whole import is one transaction,
// so a malformed snapshot leaves the store untouched.
func (s *Store) ImportAll(data []byte) error {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return errors.NewValidationError(errors.ErrCodeImportFailed,
			"Import data is not a valid store snapshot", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := clearAll(tx); err != nil {
			return err
		}

		// Resumes first so cover letter links resolve.
		for i := range snapshot.Resumes {
			if err := tx.Create(&snapshot.Resumes[i]).Error; err != nil {
				return errors.NewStorageError(errors.ErrCodeImportFailed,
					"Failed to import resume", err).
					WithContext("id", snapshot.Resumes[i].ID)
			}
		}
		for i := range snapshot.CoverLetters {
			if err := tx.Create(&snapshot.CoverLetters[i]).Error; err != nil {
				return errors.NewStorageError(errors.ErrCodeImportFailed,
					"Failed to import cover letter", err).
					WithContext("id", snapshot.CoverLetters[i].ID)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Store imported",
		"resumes", len(snapshot.Resumes),
		"cover_letters", len(snapshot.CoverLetters))
	return nil
}

// ClearAll removes every record from the store.
func (s *Store) ClearAll() error {
	err := s.db.Transaction(clearAll)
	if err == nil {
		s.logger.Info("Store cleared")
	}
	return err
}

func clearAll(tx *gorm.DB) error {
	// Letters first to respect the foreign key.
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&CoverLetter{}).Error; err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to clear cover letters", err)
	}
	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Resume{}).Error; err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to clear resumes", err)
	}
	return nil
}
