package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	cfg "github.com/maheshrc27/socialflow/configs"
	"github.com/maheshrc27/socialflow/internal/ai"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// AssetService turns generated image bytes into a stable URL. With R2
// configured the bytes are uploaded to Cloudflare R2; otherwise an inline
// data URL is returned so the rest of the flow is unaffected.
type AssetService struct {
	config cfg.Config
}

func NewAssetService(cfg cfg.Config) *AssetService {
	return &AssetService{config: cfg}
}

func (s *AssetService) StoreImage(ctx context.Context, img *ai.Image) (string, error) {
	if img == nil {
		return "", errors.New("image is nil")
	}
	if img.URL != "" {
		return img.URL, nil
	}
	if len(img.Data) == 0 {
		return "", errors.New("image has neither data nor url")
	}

	fileType, err := filetype.Match(img.Data)
	if err != nil || fileType == types.Unknown {
		return "", fmt.Errorf("unsupported image type: %w", err)
	}
	if fileType.Extension != "png" && fileType.Extension != "jpg" && fileType.Extension != "jpeg" {
		return "", fmt.Errorf("image type %s is not allowed", fileType.Extension)
	}

	if s.config.R2.BucketName == "" {
		return fmt.Sprintf("data:%s;base64,%s", fileType.MIME.Value, base64.StdEncoding.EncodeToString(img.Data)), nil
	}

	key, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	if err := s.uploadToR2(ctx, key, img.Data, fileType.MIME.Value); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", s.config.R2.PublicURL, key), nil
}

func (s *AssetService) r2Client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.config.R2.AccessKey, s.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", s.config.R2.AccountID))
	}), nil
}

func (s *AssetService) uploadToR2(ctx context.Context, key string, file []byte, contentType string) error {
	client, err := s.r2Client(ctx)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(contentType),
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
