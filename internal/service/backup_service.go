package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slp_caseload_backend/internal/model"
	"slp_caseload_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

// BackupService dumps the full dataset to a JSON snapshot in the storage
// provider and restores from one. Restore is destructive and gated to
// admins at the route layer.

type BackupService struct {
	DB      *gorm.DB
	Storage *StorageService
}

func NewBackupService(db *gorm.DB, storage *StorageService) *BackupService {
	return &BackupService{DB: db, Storage: storage}
}

// BackupSnapshot is the on-disk backup format. Users are excluded; account
// management is handled separately from clinical data.
type BackupSnapshot struct {
	Version        int                    `json:"version"`
	CreatedAt      time.Time              `json:"createdAt"`
	Schools        []model.School         `json:"schools"`
	Contacts       []model.Contact        `json:"contacts"`
	Students       []model.Student        `json:"students"`
	Goals          []model.Goal           `json:"goals"`
	Sessions       []model.SessionLog     `json:"sessions"`
	Trials         []model.TrialResult    `json:"trials"`
	Slots          []model.ScheduleSlot   `json:"slots"`
	Communications []model.Communication  `json:"communications"`
	Reports        []model.ProgressReport `json:"reports"`
}

const backupFormatVersion = 1

// CreateBackup snapshots every clinical table and uploads the JSON to the
// storage provider. Returns the object URL.
func (s *BackupService) CreateBackup(ctx context.Context) (string, error) {
	snapshot := BackupSnapshot{
		Version:   backupFormatVersion,
		CreatedAt: time.Now(),
	}

	collect := []struct {
		dest interface{}
	}{
		{&snapshot.Schools},
		{&snapshot.Contacts},
		{&snapshot.Students},
		{&snapshot.Goals},
		{&snapshot.Sessions},
		{&snapshot.Trials},
		{&snapshot.Slots},
		{&snapshot.Communications},
		{&snapshot.Reports},
	}
	for _, c := range collect {
		if err := s.DB.Find(c.dest).Error; err != nil {
			return "", err
		}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("backups/caseload_%s.json", time.Now().Format("20060102_150405"))
	return s.Storage.Provider.Upload(ctx, name, bytes.NewReader(data), int64(len(data)), util.MimeJSON)
}

// RestoreBackup replaces all clinical data with the snapshot's contents.
// Runs in one transaction so a malformed snapshot leaves the database
// untouched.
func (s *BackupService) RestoreBackup(data []byte) error {
	var snapshot BackupSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("invalid backup file: %w", err)
	}
	if snapshot.Version != backupFormatVersion {
		return fmt.Errorf("unsupported backup version %d", snapshot.Version)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// children first, parents last
		wipe := []interface{}{
			&model.TrialResult{},
			&model.SessionLog{},
			&model.ProgressReport{},
			&model.Communication{},
			&model.ScheduleSlot{},
			&model.Goal{},
			&model.Student{},
			&model.Contact{},
			&model.School{},
		}
		for _, m := range wipe {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}

		insert := []struct {
			rows interface{}
			size int
		}{
			{snapshot.Schools, len(snapshot.Schools)},
			{snapshot.Contacts, len(snapshot.Contacts)},
			{snapshot.Students, len(snapshot.Students)},
			{snapshot.Goals, len(snapshot.Goals)},
			{snapshot.Sessions, len(snapshot.Sessions)},
			{snapshot.Trials, len(snapshot.Trials)},
			{snapshot.Slots, len(snapshot.Slots)},
			{snapshot.Communications, len(snapshot.Communications)},
			{snapshot.Reports, len(snapshot.Reports)},
		}
		for _, batch := range insert {
			if batch.size == 0 {
				continue
			}
			if err := tx.CreateInBatches(batch.rows, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
