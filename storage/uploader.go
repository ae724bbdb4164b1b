package storage

import (
	"context"
	"io"
	"path"
	"strings"
)

// Префиксы ключей в бакете: скриншоты оплат и баннеры турниров хранятся раздельно.
const (
	PaymentProofPrefix = "payment-proofs"
	BannerPrefix       = "tournament-banners"
)

// UploadResult describes a stored object. Location is its public URL.
type UploadResult struct {
	Key      string
	Location string
	ETag     string
	Size     int64
}

// FileUploader stores user-supplied files: payment screenshots and tournament banners.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// ObjectKey собирает ключ под prefix. Пустые части, "." и ".." и слэши по краям отбрасываются.
func ObjectKey(prefix string, parts ...string) string {
	elems := make([]string, 0, len(parts)+1)
	elems = append(elems, prefix)
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" || p == "." || p == ".." {
			continue
		}
		elems = append(elems, p)
	}
	return path.Join(elems...)
}
