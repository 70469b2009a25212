package services

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Service issues presigned URLs for profile photo uploads and reads. The
// objects never pass through this server.
type S3Service struct {
	Client *s3.Client
	Bucket string
}

// NewS3Service initializes the S3 client for the given region and bucket.
func NewS3Service(region, bucket string) *S3Service {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config for S3: %v", err)
	}
	return &S3Service{Client: s3.NewFromConfig(cfg), Bucket: bucket}
}

// GenerateUploadURL generates a presigned URL for uploading a profile photo.
// The object key is namespaced per user so uploads cannot clobber each other.
func (ss *S3Service) GenerateUploadURL(ctx context.Context, userID, fileName, fileType string) (string, string, error) {
	key := "profile-photos/" + userID + "/" + time.Now().UTC().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(ss.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(ss.Client)
	presigned, err := presigner.PresignPutObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presigned.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a stored photo.
func (ss *S3Service) GenerateReadURL(ctx context.Context, key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(ss.Bucket),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(ss.Client)
	presigned, err := presigner.PresignGetObject(ctx, params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}
