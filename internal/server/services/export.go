package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/obelousov/pixelboard/internal/server/config"
	"github.com/obelousov/pixelboard/internal/server/models"
	"github.com/obelousov/pixelboard/internal/server/repositories/repomanager"
)

const exportURLValidity = 15 * time.Minute

// exportPageSize bounds memory while paging events out of the database.
const exportPageSize = 500

type ExportService struct {
	repos  repomanager.RepositoryManager
	config *sc.Config
}

func NewExportService(m repomanager.RepositoryManager, config *sc.Config) *ExportService {
	return &ExportService{repos: m, config: config}
}

func makeStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("exports/%d/%d/%d/%v.csv", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ExportService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// ExportPurchaseEvents writes all purchase events in the filter range as CSV
// to object storage and returns a presigned GET URL for the file.
func (s *ExportService) ExportPurchaseEvents(ctx context.Context, filter *models.EventFilter) (string, error) {
	data, err := s.renderCSV(ctx, filter)
	if err != nil {
		return "", err
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := makeStorageKey()

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", fmt.Errorf("upload error: %w", err)
	}

	presignClient := s3.NewPresignClient(client)
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(exportURLValidity))
	if err != nil {
		return "", fmt.Errorf("presign error: %w", err)
	}

	return req.URL, nil
}

func (s *ExportService) renderCSV(ctx context.Context, filter *models.EventFilter) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "pixel_id", "customer_name", "fb_trace_id", "status", "created_at"}); err != nil {
		return nil, err
	}

	page := *filter
	page.Limit = exportPageSize
	page.Offset = 0

	for {
		events, _, err := s.repos.PurchaseEvents().List(ctx, &page)
		if err != nil {
			return nil, err
		}

		for _, e := range events {
			record := []string{e.ID, e.PixelID, e.CustomerName, e.FBTraceID, e.Status, e.CreatedAt.Format(time.RFC3339)}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}

		if len(events) < exportPageSize {
			break
		}
		page.Offset += exportPageSize
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
