// Package storage uploads media to an object store and hands back the
// public URL that is persisted on the owning document.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Fazeelit/mohafizbackend/internal/apperr"
)

// Object is a stored file. Key addresses it in the bucket; URL is what
// clients fetch.
type Object struct {
	Key string
	URL string
}

type Uploader interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader, size int64) (Object, error)
	Delete(ctx context.Context, key string) error
}

// ErrNotConfigured is what every upload returns when no object store is set up.
var ErrNotConfigured = apperr.Unavailable("Media storage is not configured")

// NewKey builds folder/yyyy/mm/dd/<uuid><ext> keeping the uploaded file extension.
func NewKey(folder, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", strings.Trim(folder, "/"), now.UTC().Format("2006/01/02"), uuid.NewString(), ext)
}

// Disabled rejects uploads. Deletes succeed since there is nothing to remove.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, string, io.Reader, int64) (Object, error) {
	return Object{}, ErrNotConfigured
}

func (Disabled) Delete(context.Context, string) error { return nil }

// Memory keeps objects in process. Test-only; main never wires it.
type Memory struct {
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemory(baseURL string) *Memory {
	return &Memory{BaseURL: strings.TrimRight(baseURL, "/"), objects: map[string][]byte{}}
}

func (m *Memory) Upload(_ context.Context, folder, filename, _ string, body io.Reader, _ int64) (Object, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return Object{}, err
	}
	key := NewKey(folder, filename, time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return Object{Key: key, URL: m.BaseURL + "/" + key}, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Has reports whether key is stored.
func (m *Memory) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Rule restricts what a multipart file field may carry.
type Rule struct {
	// Types are accepted content-type prefixes.
	Types   []string
	MaxSize int64
	// Label names the accepted kind in error messages.
	Label string
}

var (
	PDF   = Rule{Types: []string{"application/pdf"}, MaxSize: 10 << 20, Label: "PDF"}
	Video = Rule{Types: []string{"video/"}, MaxSize: 2 << 30, Label: "video"}
	Image = Rule{Types: []string{"image/"}, MaxSize: 10 << 20, Label: "image"}
)

// ContentType is the declared type of fh, falling back to its extension.
func ContentType(fh *multipart.FileHeader) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(fh.Filename))); byExt != "" {
			ct = byExt
		}
	}
	return ct
}

// Accept validates fh against r.
func Accept(fh *multipart.FileHeader, r Rule) error {
	ct := ContentType(fh)
	ok := false
	for _, t := range r.Types {
		if strings.HasPrefix(ct, t) {
			ok = true
			break
		}
	}
	if !ok {
		return apperr.Validation(fmt.Sprintf("Only %s files are allowed", r.Label))
	}
	if r.MaxSize > 0 && fh.Size > r.MaxSize {
		return apperr.Validation(fmt.Sprintf("File too large. Maximum size is %s", humanSize(r.MaxSize)))
	}
	return nil
}

// Save validates fh against r and uploads it under folder.
func Save(ctx context.Context, u Uploader, folder string, fh *multipart.FileHeader, r Rule) (Object, error) {
	if err := Accept(fh, r); err != nil {
		return Object{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return Object{}, apperr.Validation("Could not read uploaded file")
	}
	defer f.Close()
	return u.Upload(ctx, folder, fh.Filename, ContentType(fh), f, fh.Size)
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<30 && n%(1<<30) == 0:
		return fmt.Sprintf("%dGB", n>>30)
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%dMB", n>>20)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
