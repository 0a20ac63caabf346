package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// BlobInfo describes a stored blob and how to reach it.
type BlobInfo struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size"`
}

// BlobStore accepts a named byte stream and hands back a resolvable URL.
type BlobStore interface {
	Put(ctx context.Context, filename string, r io.Reader) (*BlobInfo, error)
	Open(pathname string) (*os.File, error)
}

// LocalBlobStore persists blobs on disk under a base directory and
// serves them through the API's /blobs route. In signed mode every
// returned URL carries an HMAC token the blob handler verifies.
type LocalBlobStore struct {
	baseDir       string
	publicBaseURL string
	signer        *URLSigner
}

// NewLocalBlobStore ensures the base directory exists and returns a handle.
// Pass a nil signer for public-read access.
func NewLocalBlobStore(baseDir, publicBaseURL string, signer *URLSigner) (*LocalBlobStore, error) {
	if baseDir == "" {
		baseDir = "./blobs"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &LocalBlobStore{
		baseDir:       baseDir,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		signer:        signer,
	}, nil
}

// Put streams the reader into a new blob. The stored pathname gets a
// random suffix so repeated uploads of the same filename never clobber
// each other; the previous blob simply becomes unreferenced.
func (s *LocalBlobStore) Put(ctx context.Context, filename string, r io.Reader) (*BlobInfo, error) {
	if filename == "" {
		return nil, fmt.Errorf("filename required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pathname := uniquePathname(filename)
	path := filepath.Join(s.baseDir, pathname)

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create blob file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	size, err := io.Copy(file, r)
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write blob stream: %w", err)
	}

	blobURL, err := s.resolveURL(pathname)
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	return &BlobInfo{
		URL:         blobURL,
		Pathname:    pathname,
		ContentType: mime.TypeByExtension(filepath.Ext(pathname)),
		Size:        size,
	}, nil
}

// Open returns a read-only handle for a stored blob.
func (s *LocalBlobStore) Open(pathname string) (*os.File, error) {
	cleaned := filepath.Clean(pathname)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") || filepath.IsAbs(cleaned) {
		return nil, fmt.Errorf("invalid blob pathname")
	}
	file, err := os.Open(filepath.Join(s.baseDir, cleaned))
	if err != nil {
		return nil, fmt.Errorf("open blob file: %w", err)
	}
	return file, nil
}

// Signer exposes the configured signer, nil when access is public.
func (s *LocalBlobStore) Signer() *URLSigner {
	return s.signer
}

func (s *LocalBlobStore) resolveURL(pathname string) (string, error) {
	base := fmt.Sprintf("%s/blobs/%s", s.publicBaseURL, url.PathEscape(pathname))
	if s.signer == nil {
		return base, nil
	}
	token, _, err := s.signer.Generate(pathname)
	if err != nil {
		return "", fmt.Errorf("sign blob url: %w", err)
	}
	return base + "?token=" + url.QueryEscape(token), nil
}

func uniquePathname(filename string) string {
	name := filepath.Base(filename)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		stem = "blob"
	}
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s%s", stem, suffix, ext)
}
