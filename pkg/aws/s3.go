package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Presigner issues presigned upload URLs.
type Presigner interface {
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (*PresignedUpload, error)
}

// PresignedUpload is returned to the admin client which PUTs the file directly to S3.
type PresignedUpload struct {
	URL       string            `json:"url"`
	Headers   map[string]string `json:"headers"`
	Key       string            `json:"key"`
	PublicURL string            `json:"publicUrl"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// S3Presigner presigns PUT requests against a single bucket.
type S3Presigner struct {
	presigner *s3.PresignClient
	bucket    string
	region    string
}

func NewS3Presigner(cfg sdkaws.Config, bucket string) *S3Presigner {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.BaseEndpoint != nil
	})
	return &S3Presigner{
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		region:    cfg.Region,
	}
}

// PresignPut generates a presigned PUT URL for key.
func (p *S3Presigner) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (*PresignedUpload, error) {
	input := &s3.PutObjectInput{
		Bucket:      sdkaws.String(p.bucket),
		Key:         sdkaws.String(key),
		ContentType: sdkaws.String(contentType),
	}

	presigned, err := p.presigner.PresignPutObject(ctx, input, func(o *s3.PresignOptions) {
		o.Expires = expiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign put object: %w", err)
	}

	headers := make(map[string]string)
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return &PresignedUpload{
		URL:       presigned.URL,
		Headers:   headers,
		Key:       key,
		PublicURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key),
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}
