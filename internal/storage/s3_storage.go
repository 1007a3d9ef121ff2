package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/mariyae/catalog-backend/config"
	"github.com/mariyae/catalog-backend/internal/app/model"
	"github.com/mariyae/catalog-backend/pkg/logger"
)

// maxFetchBytes caps remote images pulled by UploadFromURL.
const maxFetchBytes = 25 << 20

// S3MediaStore keeps media in an S3 bucket. Object keys follow
// <cloud>/<kind>/upload/<folder>/<uuid><ext>, so the public id of an object
// is <folder>/<uuid> and its URL is <baseURL>/<key>.
type S3MediaStore struct {
	client     *s3.Client
	bucket     string
	baseURL    string
	cloudName  string
	httpClient *http.Client
}

type PresignedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
	PublicID  string `json:"publicId"`
	Key       string `json:"key"`
}

func NewS3MediaStore(cfg config.MediaConfig) *S3MediaStore {
	var awsCfg aws.Config
	var err error

	// If credentials are provided, use them. Otherwise, use default credential chain
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.TODO(),
			awsconfig.WithRegion(cfg.Region),
		)
		if err != nil {
			logger.Warn("Failed to load default AWS config, using region only", map[string]interface{}{
				"error": err.Error(),
			})
			awsCfg = aws.Config{
				Region: cfg.Region,
			}
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &S3MediaStore{
		client:     client,
		bucket:     cfg.Bucket,
		baseURL:    baseURL,
		cloudName:  cfg.CloudName,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// objectKey builds the key of a new object and returns it with its public id.
func (s *S3MediaStore) objectKey(folder string, kind model.MediaKind, ext string) (key, publicID string) {
	publicID = path.Join(folder, uuid.New().String())
	return s.keyFor(publicID, kind) + ext, publicID
}

func (s *S3MediaStore) keyFor(publicID string, kind model.MediaKind) string {
	return path.Join(s.cloudName, string(kind), "upload", publicID)
}

func (s *S3MediaStore) urlFor(key string) string {
	return s.baseURL + "/" + key
}

func (s *S3MediaStore) Upload(ctx context.Context, data []byte, folder string, kind model.MediaKind) (model.MediaRef, error) {
	contentType := http.DetectContentType(data)
	key, publicID := s.objectKey(folder, kind, extensionFor(contentType))

	logger.Debug("Uploading media object", map[string]interface{}{
		"key":          key,
		"size":         len(data),
		"content_type": contentType,
	})

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Failed to upload media object", err, map[string]interface{}{
			"key": key,
		})
		return model.MediaRef{}, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return model.MediaRef{URL: s.urlFor(key), PublicID: publicID}, nil
}

func (s *S3MediaStore) UploadFromURL(ctx context.Context, rawURL, folder string) (model.MediaRef, error) {
	data, err := s.fetch(ctx, rawURL)
	if err != nil {
		return model.MediaRef{}, err
	}
	return s.Upload(ctx, data, folder, model.MediaImage)
}

func (s *S3MediaStore) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid media url %q: %w", rawURL, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}
	if len(data) > maxFetchBytes {
		return nil, fmt.Errorf("media at %s exceeds %d bytes", rawURL, maxFetchBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media at %s is empty", rawURL)
	}
	return data, nil
}

// Delete removes every object stored under publicID for the given kind.
// The extension is not part of the public id, so the object is found by prefix.
func (s *S3MediaStore) Delete(ctx context.Context, publicID string, kind model.MediaKind) error {
	prefix := s.keyFor(publicID, kind)

	listed, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", publicID, err)
	}

	deleted := 0
	for _, object := range listed.Contents {
		key := aws.ToString(object.Key)
		// prefix "a/b" must not match "a/bc.jpg"
		if key != prefix && !strings.HasPrefix(key, prefix+".") {
			continue
		}
		if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    object.Key,
		}); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
		deleted++
	}

	logger.Debug("Media object deleted", map[string]interface{}{
		"public_id": publicID,
		"objects":   deleted,
	})
	return nil
}

// PresignUpload issues a PUT URL valid for 15 minutes, letting a client send
// a file straight to the bucket.
func (s *S3MediaStore) PresignUpload(ctx context.Context, folder string, kind model.MediaKind, contentType string) (*PresignedURLResponse, error) {
	key, publicID := s.objectKey(folder, kind, extensionFor(contentType))

	presignClient := s3.NewPresignClient(s.client)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	presignedReq, err := presignClient.PresignPutObject(ctx, input, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &PresignedURLResponse{
		UploadURL: presignedReq.URL,
		FileURL:   s.urlFor(key),
		PublicID:  publicID,
		Key:       key,
	}, nil
}
