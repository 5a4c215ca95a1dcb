package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/halloffame/hall-of-fame/models"
	"github.com/halloffame/hall-of-fame/repositories"
	"github.com/halloffame/hall-of-fame/storage"
)

const (
	backupVersion   = "1.0"
	backupEntryName = "app-backup.json"
	backupExtension = ".hof"

	// Zip bombs are not a realistic dataset.
	maxBackupEntrySize = 64 << 20
)

// BackupPayload is the document stored inside a backup archive.
type BackupPayload struct {
	Players     []models.Player     `json:"players"`
	Games       []models.Game       `json:"games"`
	Matches     []models.Match      `json:"matches"`
	Tournaments []models.Tournament `json:"tournaments"`
	ExportDate  time.Time           `json:"exportDate"`
	Version     string              `json:"version"`
}

// BackupArchive is a rendered backup ready for download or upload.
type BackupArchive struct {
	FileName string
	Content  []byte
}

// ImportSummary reports what an accepted backup replaced the dataset with.
type ImportSummary struct {
	Players     int        `json:"players"`
	Games       int        `json:"games"`
	Matches     int        `json:"matches"`
	Tournaments int        `json:"tournaments"`
	ExportDate  *time.Time `json:"exportDate,omitempty"`
}

// Snapshotter provides the full dataset for export.
type Snapshotter interface {
	Snapshot(ctx context.Context) (Snapshot, error)
}

// BackupService renders and restores full-dataset backup archives.
// The uploader is optional; without one, automatic backups are skipped.
type BackupService struct {
	snapshotter    Snapshotter
	playerRepo     repositories.PlayerRepository
	gameRepo       repositories.GameRepository
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	txRunner       repositories.TxRunner
	uploader       storage.Uploader
	logger         *slog.Logger
}

func NewBackupService(
	snapshotter Snapshotter,
	playerRepo repositories.PlayerRepository,
	gameRepo repositories.GameRepository,
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	txRunner repositories.TxRunner,
	uploader storage.Uploader,
	logger *slog.Logger,
) *BackupService {
	return &BackupService{
		snapshotter:    snapshotter,
		playerRepo:     playerRepo,
		gameRepo:       gameRepo,
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		txRunner:       txRunner,
		uploader:       uploader,
		logger:         logger,
	}
}

// Export renders the whole dataset as a zip archive holding one JSON
// document, named hall-of-fame-backup-YYYY-MM-DD with the .hof extension.
func (s *BackupService) Export(ctx context.Context) (*BackupArchive, error) {
	snapshot, err := s.snapshotter.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	payload := BackupPayload{
		Players:     snapshot.Players,
		Games:       snapshot.Games,
		Matches:     snapshot.Matches,
		Tournaments: snapshot.Tournaments,
		ExportDate:  time.Now().UTC(),
		Version:     backupVersion,
	}
	if payload.Players == nil {
		payload.Players = []models.Player{}
	}
	if payload.Games == nil {
		payload.Games = []models.Game{}
	}
	if payload.Matches == nil {
		payload.Matches = []models.Match{}
	}
	if payload.Tournaments == nil {
		payload.Tournaments = []models.Tournament{}
	}

	document, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup payload: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entry, err := zw.Create(backupEntryName)
	if err != nil {
		return nil, fmt.Errorf("creating backup entry: %w", err)
	}
	if _, err := entry.Write(document); err != nil {
		return nil, fmt.Errorf("writing backup entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing backup archive: %w", err)
	}

	fileName := fmt.Sprintf("hall-of-fame-backup-%s%s",
		payload.ExportDate.Format("2006-01-02"), backupExtension)

	return &BackupArchive{FileName: fileName, Content: buf.Bytes()}, nil
}

// importPayload uses pointers for the required collections so a backup
// missing one of them is told apart from an empty one.
type importPayload struct {
	Players     *[]models.Player    `json:"players"`
	Games       *[]models.Game      `json:"games"`
	Matches     *[]models.Match     `json:"matches"`
	Tournaments []models.Tournament `json:"tournaments"`
	ExportDate  *time.Time          `json:"exportDate"`
}

// Import replaces the whole dataset with the content of a backup
// archive. Players, games and matches must all be present; tournaments
// are optional for archives written before tournaments existed.
func (s *BackupService) Import(ctx context.Context, fileName string, archive io.ReaderAt, size int64) (*ImportSummary, error) {
	if fileName != "" && !strings.HasSuffix(strings.ToLower(fileName), backupExtension) {
		return nil, ErrBackupInvalidArchive
	}

	zr, err := zip.NewReader(archive, size)
	if err != nil {
		return nil, ErrBackupInvalidArchive
	}

	var payload importPayload
	found := false
	for _, f := range zr.File {
		if f.Name != backupEntryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, ErrBackupInvalidArchive
		}
		document, err := io.ReadAll(io.LimitReader(rc, maxBackupEntrySize))
		rc.Close()
		if err != nil {
			return nil, ErrBackupInvalidArchive
		}
		if err := json.Unmarshal(document, &payload); err != nil {
			return nil, ErrBackupInvalidStructure
		}
		found = true
		break
	}
	if !found {
		return nil, ErrBackupInvalidArchive
	}
	if payload.Players == nil || payload.Games == nil || payload.Matches == nil {
		return nil, ErrBackupInvalidStructure
	}

	err = s.txRunner.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.ReplaceAll(ctx, exec, *payload.Matches); err != nil {
			return fmt.Errorf("replacing matches: %w", err)
		}
		if err := s.playerRepo.ReplaceAll(ctx, exec, *payload.Players); err != nil {
			return fmt.Errorf("replacing players: %w", err)
		}
		if err := s.gameRepo.ReplaceAll(ctx, exec, *payload.Games); err != nil {
			return fmt.Errorf("replacing games: %w", err)
		}
		if err := s.tournamentRepo.ReplaceAll(ctx, exec, payload.Tournaments); err != nil {
			return fmt.Errorf("replacing tournaments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{
		Players:     len(*payload.Players),
		Games:       len(*payload.Games),
		Matches:     len(*payload.Matches),
		Tournaments: len(payload.Tournaments),
		ExportDate:  payload.ExportDate,
	}
	s.logger.Info("backup imported",
		"players", summary.Players,
		"games", summary.Games,
		"matches", summary.Matches,
		"tournaments", summary.Tournaments)
	return summary, nil
}

// AutoBackup exports the dataset and uploads the archive off-site.
// It is a no-op when no uploader is configured.
func (s *BackupService) AutoBackup(ctx context.Context) error {
	if s.uploader == nil {
		return nil
	}

	archive, err := s.Export(ctx)
	if err != nil {
		return fmt.Errorf("exporting automatic backup: %w", err)
	}

	key := "backups/auto/" + archive.FileName
	result, err := s.uploader.Upload(ctx, key, "application/zip", bytes.NewReader(archive.Content))
	if err != nil {
		return fmt.Errorf("uploading automatic backup: %w", err)
	}

	s.logger.Info("automatic backup uploaded", "key", result.Key, "location", result.Location)
	return nil
}

// RunAutoBackups uploads a backup on every tick until the context ends.
func (s *BackupService) RunAutoBackups(ctx context.Context, interval time.Duration) {
	if s.uploader == nil || interval <= 0 {
		s.logger.Info("automatic backups disabled")
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("automatic backups started", "interval", interval.String())
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("automatic backups stopped")
			return
		case <-ticker.C:
			if err := s.AutoBackup(ctx); err != nil {
				s.logger.Error("automatic backup failed", "error", err)
			}
		}
	}
}
