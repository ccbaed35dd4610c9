package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
)

// SnapshotSink stores an exported snapshot and returns where it was written.
type SnapshotSink interface {
	Put(ctx context.Context, name string, body []byte) (string, error)
}

// snapshotDocument is the backup file layout.
type snapshotDocument struct {
	Version     int                        `json:"version"`
	TakenAt     time.Time                  `json:"takenAt"`
	Collections map[string]json.RawMessage `json:"collections"`
}

const snapshotVersion = 1

type backupService struct {
	BaseService
	txManager portsrepo.TransactionManager
	snapshots portsrepo.SnapshotReader
	sink      SnapshotSink
}

// NewBackupService creates a backup service. A nil sink leaves backups disabled.
func NewBackupService(txManager portsrepo.TransactionManager, snapshots portsrepo.SnapshotReader, sink SnapshotSink, options ...ServiceOption) portssvc.BackupSvc {
	return &backupService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		snapshots:   snapshots,
		sink:        sink,
	}
}

var _ portssvc.BackupSvc = (*backupService)(nil)

// Backup exports every collection as one JSON document and records the time of the backup.
func (s *backupService) Backup(ctx context.Context) (*dto.BackupResponse, error) {
	if s.sink == nil || s.snapshots == nil {
		return nil, apperrors.NewAppError(http.StatusServiceUnavailable, "backups are not configured", nil)
	}

	collections, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot store: %w", err)
	}

	takenAt := s.Now().UTC()
	body, err := json.Marshal(snapshotDocument{Version: snapshotVersion, TakenAt: takenAt, Collections: collections})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	name := fmt.Sprintf("shopledger-%s.json", takenAt.Format("20060102T150405Z"))
	location, err := s.sink.Put(ctx, name, body)
	if err != nil {
		s.LogError(ctx, err, "Failed to upload backup", slog.String("name", name))
		return nil, fmt.Errorf("failed to upload backup: %w", err)
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		return repos.System().SetLastBackup(ctx, takenAt)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record backup time: %w", err)
	}

	s.LogInfo(ctx, "Backup written", slog.String("location", location), slog.Int("bytes", len(body)))
	return &dto.BackupResponse{Location: location, Bytes: len(body), TakenAt: takenAt.Format(time.RFC3339)}, nil
}
