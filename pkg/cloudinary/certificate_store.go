package cloudinary

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CertificateStore uploads bar certificates to Cloudinary and hands back the
// secure URL stored on the lawyer profile.
type CertificateStore struct {
	client *cld.Cloudinary
	folder string
}

func NewCertificateStore(cloudinaryURL string, folder string) (*CertificateStore, error) {
	client, err := cld.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	if folder == "" {
		folder = "lawconnect/bar_certificates"
	}
	return &CertificateStore{client: client, folder: folder}, nil
}

func (s *CertificateStore) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if base == "" || base == "." {
		base = "certificate"
	}
	// Certificates are immutable evidence; a random suffix keeps reuploads
	// from overwriting each other.
	publicID := base + "-" + uuid.NewString()[:8]

	result, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       s.folder,
		PublicID:     publicID,
		ResourceType: "auto",
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
