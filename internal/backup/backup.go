// Package backup periodically snapshots the full inventory as JSON and
// uploads it to an S3-compatible bucket (R2 in production). Snapshots are a
// disaster-recovery net on top of the database's own backups.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"jewel-backend/internal/config"
	"jewel-backend/internal/models"
	"jewel-backend/internal/repositories"
	"jewel-backend/internal/timeutil"
)

type Snapshot struct {
	TakenAt    time.Time           `json:"takenAt"`
	Counters   []*models.Counter   `json:"counters"`
	Containers []*models.Container `json:"containers"`
	Pieces     []*models.Piece     `json:"pieces"`
}

type Uploader struct {
	client     *s3.Client
	bucket     string
	interval   time.Duration
	counters   *repositories.CounterRepository
	containers *repositories.ContainerRepository
	pieces     *repositories.PieceRepository
}

// NewUploader builds the S3 client from config. Returns an error when
// credentials are unusable; the caller then runs without backups.
func NewUploader(cfg *config.Config,
	counters *repositories.CounterRepository,
	containers *repositories.ContainerRepository,
	pieces *repositories.PieceRepository,
) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Backup.AccessKey,
			cfg.Backup.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Backup.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Backup.Endpoint)
		}
	})

	return &Uploader{
		client:     client,
		bucket:     cfg.Backup.Bucket,
		interval:   time.Duration(cfg.Backup.IntervalMinutes) * time.Minute,
		counters:   counters,
		containers: containers,
		pieces:     pieces,
	}, nil
}

// Run uploads snapshots on the configured interval until ctx is canceled.
// Blocks; call in a goroutine.
func (u *Uploader) Run(ctx context.Context) {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	log.Printf("[Backup] snapshot uploader running every %s", u.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := u.SnapshotNow(ctx); err != nil {
				log.Printf("[Backup] snapshot failed: %v", err)
			}
		}
	}
}

// SnapshotNow collects the full inventory and uploads one snapshot object.
func (u *Uploader) SnapshotNow(ctx context.Context) error {
	snap, err := u.collect(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("snapshots/inventory-%s.json", snap.TakenAt.Format("2006-01-02T15-04-05"))
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("[Backup] uploaded %s (%d bytes)", key, len(data))
	return nil
}

func (u *Uploader) collect(ctx context.Context) (*Snapshot, error) {
	counters, err := u.counters.List(ctx)
	if err != nil {
		return nil, err
	}
	containers, err := u.containers.List(ctx)
	if err != nil {
		return nil, err
	}
	pieces, err := u.pieces.List(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		TakenAt:    timeutil.Now(),
		Counters:   counters,
		Containers: containers,
		Pieces:     pieces,
	}, nil
}
