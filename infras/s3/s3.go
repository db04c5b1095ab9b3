package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"hostel/config"
	"hostel/infras/otel"
	"hostel/shared/constant"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
	defaultRegion     = "auto"
)

// S3 stores small generated documents such as booking receipts.
type S3 interface {
	Upload(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error)
	Delete(ctx context.Context, directory, fileName string) error
}

type s3Impl struct {
	client *s3.Client
	bucket string
	public string
	otel   otel.Otel
}

func New(config *config.Config, otel otel.Otel) S3 {
	s3Cfg := config.External.S3

	region := s3Cfg.Region
	if region == constant.Empty {
		region = defaultRegion
	}

	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s3Cfg.AccessKeyID, s3Cfg.SecretAccessKey, "")),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3Cfg.Endpoint != constant.Empty {
			o.BaseEndpoint = aws.String(s3Cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Impl{
		client: client,
		bucket: s3Cfg.BucketName,
		public: strings.TrimSuffix(s3Cfg.PublicURL, "/"),
		otel:   otel,
	}
}

func (svc *s3Impl) Upload(ctx context.Context, directory, fileName, contentType string, data []byte) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    svc.bucket,
	})

	reader := bytes.NewReader(data)

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(objectKey),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(reader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str(otelAttrObjectKey, objectKey).Msg("failed to upload object to S3")

		return constant.Empty, fmt.Errorf("failed to upload object to S3: %w", err)
	}

	return ObjectURL(svc.public, svc.bucket, objectKey), nil
}

func (svc *s3Impl) Delete(ctx context.Context, directory, fileName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: objectKey,
		otelAttrBucket:    svc.bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str(otelAttrObjectKey, objectKey).Msg("failed to delete object from S3")

		return fmt.Errorf("failed to delete object from S3: %w", err)
	}

	return nil
}

// ObjectURL returns the public address of objectKey, falling back to an s3:// URI when no
// public base URL is configured.
func ObjectURL(publicURL, bucket, objectKey string) string {
	if publicURL == constant.Empty {
		return fmt.Sprintf("s3://%s/%s", bucket, objectKey)
	}

	return fmt.Sprintf("%s/%s", strings.TrimSuffix(publicURL, "/"), objectKey)
}
