package render

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const pdfContentType = "application/pdf"

// ObjectStorage is the remote blob contract the upload sink needs.
// Public URLs are deterministically derivable from the key.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	PublicURL(key string) string
}

// Download is a rendered document destined for a local save
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// NewDownload wraps PDF bytes with the download filename
// "{type}-{reference}.pdf"
func NewDownload(kind DocumentKind, reference string, data []byte) *Download {
	return &Download{
		Filename:    fmt.Sprintf("%s-%s.pdf", kind, reference),
		ContentType: pdfContentType,
		Data:        data,
	}
}

// UploadSink stores rendered documents in remote object storage and
// resolves their public URL. Upload failures propagate; there is no
// retry.
type UploadSink struct {
	storage ObjectStorage
	logger  *zap.Logger
	now     func() time.Time
}

// NewUploadSink creates an upload sink backed by the given storage
func NewUploadSink(storage ObjectStorage, logger *zap.Logger) *UploadSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadSink{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Upload stores the PDF under "pdfs/{type}-{reference}-{timestamp}.pdf"
// and returns its public URL
func (s *UploadSink) Upload(ctx context.Context, kind DocumentKind, reference string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", NewRenderError(ErrCodeInvalidInput, "no PDF data to upload", nil)
	}

	key := fmt.Sprintf("pdfs/%s-%s-%d.pdf", kind, reference, s.now().UnixMilli())
	if err := s.storage.Upload(ctx, key, data, pdfContentType); err != nil {
		s.logger.Error("pdf upload failed",
			zap.String("key", key), zap.Error(err))
		return "", NewRenderError(ErrCodeStorageFailed, "pdf upload failed", err)
	}

	url := s.storage.PublicURL(key)
	s.logger.Info("pdf uploaded",
		zap.String("key", key), zap.Int("bytes", len(data)))
	return url, nil
}
