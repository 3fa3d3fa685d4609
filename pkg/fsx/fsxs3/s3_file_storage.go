package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/talenthub/portal/pkg/errx"
	"github.com/talenthub/portal/pkg/fsx"
	"github.com/talenthub/portal/pkg/kernel"
	"github.com/talenthub/portal/pkg/logx"
)

// CredentialSource selects how the S3 client authenticates. The choice
// is an explicit configuration value, never inferred from ambient
// process state, so it stays testable and injectable.
type CredentialSource string

const (
	// CredentialsStatic uses an inline access key pair
	CredentialsStatic CredentialSource = "static"
	// CredentialsProfile uses a named profile from the shared config file
	CredentialsProfile CredentialSource = "profile"
	// CredentialsDefault uses the SDK's default resolution chain
	CredentialsDefault CredentialSource = "default"
)

// Config describes the storage target and how to reach it
type Config struct {
	Region string
	Bucket string

	// Prefix pins uploads to a fixed key prefix. When empty, the
	// client falls back to find-or-create of FolderName.
	Prefix string

	// FolderName is the folder searched for (and created if absent)
	// when no fixed Prefix is configured.
	FolderName string

	Credentials     CredentialSource
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Profile         string

	// CallTimeout bounds each outbound provider call
	CallTimeout time.Duration

	// DownloadURLTTL is the validity window of resolved download URLs
	DownloadURLTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.FolderName == "" {
		c.FolderName = "uploads"
	}
	if c.Credentials == "" {
		c.Credentials = CredentialsDefault
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 30 * time.Second
	}
	if c.DownloadURLTTL <= 0 {
		c.DownloadURLTTL = 15 * time.Minute
	}
	return c
}

// LoadAWSConfig resolves an aws.Config according to the configured
// credential source. Exactly one source activates per client.
func LoadAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	cfg = cfg.withDefaults()

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	switch cfg.Credentials {
	case CredentialsStatic:
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return aws.Config{}, fmt.Errorf("static credentials selected but access key pair is incomplete")
		}
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken),
		))
	case CredentialsProfile:
		if cfg.Profile == "" {
			return aws.Config{}, fmt.Errorf("profile credentials selected but no profile name given")
		}
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	case CredentialsDefault:
		// default chain: env, shared config, instance metadata
	default:
		return aws.Config{}, fmt.Errorf("unknown credential source %q", cfg.Credentials)
	}

	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// S3FileStorage implements fsx.FileStorage against an S3 bucket
type S3FileStorage struct {
	client    *s3.Client
	presigner *s3.PresignClient
	cfg       Config

	mu     sync.Mutex
	prefix string // resolved folder prefix, cached after first upload
}

// NewS3FileStorage wires a storage client over an existing S3 client
func NewS3FileStorage(client *s3.Client, cfg Config) *S3FileStorage {
	cfg = cfg.withDefaults()
	return &S3FileStorage{
		client:    client,
		presigner: s3.NewPresignClient(client),
		cfg:       cfg,
		prefix:    strings.Trim(cfg.Prefix, "/"),
	}
}

// Upload stores the document and marks that single object public-read
func (s *S3FileStorage) Upload(ctx context.Context, data []byte, filename string) (*fsx.StoredFile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	prefix, err := s.resolvePrefix(ctx)
	if err != nil {
		return nil, errx.Wrap(err, "resolve storage folder", errx.TypeExternal)
	}

	key := objectKey(prefix, filename)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		// keep the provider's original diagnostic in the chain
		return nil, errx.Wrap(err, "upload document to storage", errx.TypeExternal).
			WithDetail("key", key).
			WithDetail("provider_error", err.Error())
	}

	return &fsx.StoredFile{
		ID:  kernel.FileID(key),
		URL: kernel.FileURL(s.objectURL(key)),
	}, nil
}

// ResolveDownloadURL returns a fresh presigned URL, or empty when the
// provider cannot resolve the file
func (s *S3FileStorage) ResolveDownloadURL(ctx context.Context, id kernel.FileID) (kernel.FileURL, error) {
	if id.IsEmpty() {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	key := id.String()
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if !errors.As(err, &notFound) {
			logx.Errorf("resolve download url for %s: %v", key, err)
		}
		return "", nil
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.cfg.DownloadURLTTL))
	if err != nil {
		logx.Errorf("presign download url for %s: %v", key, err)
		return "", nil
	}

	return kernel.FileURL(req.URL), nil
}

// Delete removes the file; failures are reported, not raised
func (s *S3FileStorage) Delete(ctx context.Context, id kernel.FileID) bool {
	if id.IsEmpty() {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(id.String()),
	})
	if err != nil {
		logx.Errorf("delete stored file %s: %v", id, err)
		return false
	}
	return true
}

// resolvePrefix returns the configured prefix, or finds/creates the
// named folder exactly once so repeated uploads don't proliferate
// duplicated containers.
func (s *S3FileStorage) resolvePrefix(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prefix != "" {
		return s.prefix, nil
	}

	folderKey := s.cfg.FolderName + "/"

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.cfg.Bucket),
		Delimiter: aws.String("/"),
	})
	if err != nil {
		return "", fmt.Errorf("list bucket folders: %w", err)
	}

	for _, cp := range out.CommonPrefixes {
		if aws.ToString(cp.Prefix) == folderKey {
			s.prefix = s.cfg.FolderName
			return s.prefix, nil
		}
	}

	// folder marker object makes the prefix visible to future lists
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(folderKey),
	})
	if err != nil {
		return "", fmt.Errorf("create storage folder %q: %w", s.cfg.FolderName, err)
	}

	s.prefix = s.cfg.FolderName
	return s.prefix, nil
}

func (s *S3FileStorage) objectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

// objectKey builds a key unique per upload. The random segment keeps
// concurrent users' files apart and makes replacing a document with
// one of the same filename produce a distinct object, so deleting the
// old file can never hit the new one.
func objectKey(prefix, filename string) string {
	return path.Join(prefix, uuid.NewString(), filename)
}
