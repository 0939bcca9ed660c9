package store

import (
	"encoding/json"
	stderrors "errors"
	"time"

	"smartresume/internal/errors"
	"smartresume/internal/types"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = stderrors.New("record not found")

// Resume is a saved resume snapshot. The snapshot itself lives in Data
// as an opaque JSON blob; Name and TargetRole are duplicated out of it
// for listings so list queries never touch the blob.
type Resume struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	TargetRole   string         `gorm:"size:255" json:"targetRole"`
	Data         datatypes.JSON `json:"data"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	CoverLetters []CoverLetter  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// CoverLetter is a saved cover letter, optionally linked to a resume.
// A nil ResumeID means the letter stands alone; deleting a resume
// removes its letters.
type CoverLetter struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ResumeID    *uint     `gorm:"index" json:"resumeId,omitempty"`
	CompanyName string    `gorm:"size:255" json:"companyName"`
	JobTitle    string    `gorm:"size:255" json:"jobTitle"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ResumeSummary is the listing row for resumes: metadata only, no blob.
type ResumeSummary struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	TargetRole string    `json:"targetRole"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ResumeRecord is a fully loaded resume with its snapshot decoded.
type ResumeRecord struct {
	ID         uint             `json:"id"`
	Name       string           `json:"name"`
	TargetRole string           `json:"targetRole"`
	Data       types.ResumeData `json:"data"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// Store is the persistence layer over one local SQLite file.
type Store struct {
	db     *gorm.DB
	logger *errors.Logger
}

// Open opens (creating if necessary) the database at path and migrates
// the schema. Opening an existing file is idempotent. Foreign keys are
// enforced at the connection level.
func Open(path string, logger *errors.Logger) (*Store, error) {
	dsn := path + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to open database", err).WithContext("path", path)
	}

	if err := db.AutoMigrate(&Resume{}, &CoverLetter{}); err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to migrate database schema", err)
	}

	logger.Debug("Store opened", "path", path)
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to unwrap database", err)
	}
	return sqlDB.Close()
}

// SaveResume inserts (id == 0) or updates a resume. The snapshot is
// stored as-is; only name and target role are lifted out for listings.
// Returns the record's id.
func (s *Store) SaveResume(name, targetRole string, data types.ResumeData, id uint) (uint, error) {
	blob, err := json.Marshal(data)
	if err != nil {
		return 0, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to encode resume snapshot", err)
	}

	if id == 0 {
		rec := Resume{
			Name:       name,
			TargetRole: targetRole,
			Data:       datatypes.JSON(blob),
		}
		if err := s.db.Create(&rec).Error; err != nil {
			return 0, errors.NewStorageError(errors.ErrCodeStorageFailed,
				"Failed to save resume", err)
		}
		s.logger.Info("Resume saved", "id", rec.ID, "name", name)
		return rec.ID, nil
	}

	var rec Resume
	if err := s.db.First(&rec, id).Error; err != nil {
		return 0, mapRecordError(err, "resume", id)
	}

	rec.Name = name
	rec.TargetRole = targetRole
	rec.Data = datatypes.JSON(blob)
	if err := s.db.Save(&rec).Error; err != nil {
		return 0, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to update resume", err)
	}
	s.logger.Info("Resume updated", "id", rec.ID, "name", name)
	return rec.ID, nil
}

// GetResume loads a resume with its snapshot decoded. Returns
// ErrNotFound (wrapped) when the id does not exist.
func (s *Store) GetResume(id uint) (*ResumeRecord, error) {
	var rec Resume
	if err := s.db.First(&rec, id).Error; err != nil {
		return nil, mapRecordError(err, "resume", id)
	}

	var data types.ResumeData
	if len(rec.Data) > 0 {
		if err := json.Unmarshal(rec.Data, &data); err != nil {
			return nil, errors.NewStorageError(errors.ErrCodeInvalidSnapshot,
				"Stored resume snapshot is corrupt", err).WithContext("id", id)
		}
	}

	return &ResumeRecord{
		ID:         rec.ID,
		Name:       rec.Name,
		TargetRole: rec.TargetRole,
		Data:       data,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}, nil
}

// ListResumes returns resume metadata ordered most recently updated
// first. The snapshot blobs are not read.
func (s *Store) ListResumes() ([]ResumeSummary, error) {
	var summaries []ResumeSummary
	err := s.db.Model(&Resume{}).
		Select("id", "name", "target_role", "created_at", "updated_at").
		Order("updated_at DESC").
		Find(&summaries).Error
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to list resumes", err)
	}
	return summaries, nil
}

// DeleteResume removes a resume and its linked cover letters in one
// transaction.
func (s *Store) DeleteResume(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var rec Resume
		if err := tx.First(&rec, id).Error; err != nil {
			return mapRecordError(err, "resume", id)
		}
		if err := tx.Where("resume_id = ?", id).Delete(&CoverLetter{}).Error; err != nil {
			return errors.NewStorageError(errors.ErrCodeStorageFailed,
				"Failed to delete linked cover letters", err)
		}
		if err := tx.Delete(&Resume{}, id).Error; err != nil {
			return errors.NewStorageError(errors.ErrCodeStorageFailed,
				"Failed to delete resume", err)
		}
		return nil
	})
	if err == nil {
		s.logger.Info("Resume deleted", "id", id)
	}
	return err
}

// SaveCoverLetter inserts (id == 0) or updates a cover letter. A
// non-nil resumeID must reference an existing resume.
func (s *Store) SaveCoverLetter(resumeID *uint, company, jobTitle, content string, id uint) (uint, error) {
	if resumeID != nil {
		var count int64
		if err := s.db.Model(&Resume{}).Where("id = ?", *resumeID).Count(&count).Error; err != nil {
			return 0, errors.NewStorageError(errors.ErrCodeStorageFailed,
				"Failed to check linked resume", err)
		}
		if count == 0 {
			return 0, errors.NewValidationError(errors.ErrCodeRecordNotFound,
				"Linked resume does not exist", ErrNotFound).WithContext("resume_id", *resumeID)
		}
	}

	if id == 0 {
		rec := CoverLetter{
			ResumeID:    resumeID,
			CompanyName: company,
			JobTitle:    jobTitle,
			Content:     content,
		}
		if err := s.db.Create(&rec).Error; err != nil {
			return 0, errors.NewStorageError(errors.ErrCodeStorageFailed,
				"Failed to save cover letter", err)
		}
		s.logger.Info("Cover letter saved", "id", rec.ID, "company", company)
		return rec.ID, nil
	}

	var rec CoverLetter
	if err := s.db.First(&rec, id).Error; err != nil {
		return 0, mapRecordError(err, "cover letter", id)
	}

	rec.ResumeID = resumeID
	rec.CompanyName = company
	rec.JobTitle = jobTitle
	rec.Content = content
	if err := s.db.Save(&rec).Error; err != nil {
		return 0, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to update cover letter", err)
	}
	s.logger.Info("Cover letter updated", "id", rec.ID, "company", company)
	return rec.ID, nil
}

// GetCoverLetter loads one cover letter.
func (s *Store) GetCoverLetter(id uint) (*CoverLetter, error) {
	var rec CoverLetter
	if err := s.db.First(&rec, id).Error; err != nil {
		return nil, mapRecordError(err, "cover letter", id)
	}
	return &rec, nil
}

// ListCoverLettersForResume returns a resume's letters, most recently
// updated first.
func (s *Store) ListCoverLettersForResume(resumeID uint) ([]CoverLetter, error) {
	var letters []CoverLetter
	err := s.db.Where("resume_id = ?", resumeID).
		Order("updated_at DESC").
		Find(&letters).Error
	if err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to list cover letters", err)
	}
	return letters, nil
}

// ListCoverLetters returns all letters, most recently updated first.
func (s *Store) ListCoverLetters() ([]CoverLetter, error) {
	var letters []CoverLetter
	if err := s.db.Order("updated_at DESC").Find(&letters).Error; err != nil {
		return nil, errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to list cover letters", err)
	}
	return letters, nil
}

// DeleteCoverLetter removes one cover letter.
func (s *Store) DeleteCoverLetter(id uint) error {
	var rec CoverLetter
	if err := s.db.First(&rec, id).Error; err != nil {
		return mapRecordError(err, "cover letter", id)
	}
	if err := s.db.Delete(&rec).Error; err != nil {
		return errors.NewStorageError(errors.ErrCodeStorageFailed,
			"Failed to delete cover letter", err)
	}
	s.logger.Info("Cover letter deleted", "id", id)
	return nil
}

// mapRecordError converts gorm lookup failures to the application
// taxonomy, wrapping ErrNotFound so callers can test with errors.Is.
func mapRecordError(err error, kind string, id uint) error {
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NewStorageError(errors.ErrCodeRecordNotFound,
			"No such "+kind, ErrNotFound).WithContext("id", id)
	}
	return errors.NewStorageError(errors.ErrCodeStorageFailed,
		"Failed to load "+kind, err).WithContext("id", id)
}
