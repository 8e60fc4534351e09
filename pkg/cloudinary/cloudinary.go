package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary. Folder is the
// root under which all submission assets are stored.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Service stores submission files in Cloudinary. Upload names may carry a
// slash-separated scope (assignments/<id>/students/<id>/file.ext); the scope
// becomes nested folders under the configured root so one assignment's
// submissions stay grouped together.
type Service struct {
	client *cloudinary.Cloudinary
	root   string
	logger zerolog.Logger
}

// New constructs a Cloudinary service instance.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Service{
		client: cld,
		root:   cfg.Folder,
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Upload sends the file to Cloudinary and returns a secure URL.
func (s *Service) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	folder, publicID := uploadTarget(s.root, name)

	params := uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: "auto",
	}

	result, err := s.client.Upload.Upload(ctx, reader, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	s.logger.Info().
		Str("folder", folder).
		Str("public_id", result.PublicID).
		Msg("file uploaded to cloudinary")

	return result.SecureURL, nil
}

// uploadTarget splits a scoped name into the nested storage folder and a
// collision-safe public ID derived from the base filename.
func uploadTarget(root, name string) (string, string) {
	dir, base := path.Split(name)

	segments := make([]string, 0, 2)
	if trimmed := strings.Trim(root, "/"); trimmed != "" {
		segments = append(segments, trimmed)
	}
	if trimmed := strings.Trim(dir, "/"); trimmed != "" {
		segments = append(segments, trimmed)
	}

	return strings.Join(segments, "/"), publicIDFor(base)
}

func publicIDFor(filename string) string {
	stem := strings.TrimSuffix(filename, path.Ext(filename))
	stem = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, stem)

	stem = strings.Trim(stem, "-")
	if stem == "" {
		stem = "upload"
	}

	return fmt.Sprintf("%s-%d", stem, time.Now().Unix())
}
