package qr

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	ContentType    = "image/png"
	DefaultBaseURL = "https://cafeteria-qr.vercel.app"
	DefaultSize    = 256
)

type Options struct {
	BaseURL  string
	Size     int
	CacheTTL time.Duration
}

type Image struct {
	PNG    []byte
	Cached bool
}

type Service struct {
	baseURL  string
	size     int
	cacheTTL time.Duration
	cache    Cache
}

func NewService(opts Options, cache Cache) *Service {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	if cache == nil || opts.CacheTTL <= 0 {
		cache = noopCache{}
	}

	return &Service{
		baseURL:  baseURL,
		size:     size,
		cacheTTL: opts.CacheTTL,
		cache:    cache,
	}
}

// ScanURL is the payload encoded in a student's QR code.
func (s *Service) ScanURL(studentID int64) string {
	return s.baseURL + "/scan/" + strconv.FormatInt(studentID, 10)
}

func (s *Service) Generate(ctx context.Context, studentID int64) (Image, error) {
	key := s.cacheKey(studentID)
	if cached, ok := s.cache.Get(ctx, key); ok {
		return Image{PNG: cached, Cached: true}, nil
	}

	png, err := qrcode.Encode(s.ScanURL(studentID), qrcode.Medium, s.size)
	if err != nil {
		return Image{}, fmt.Errorf("encode qr for student %d: %w", studentID, err)
	}

	s.cache.Set(ctx, key, png, s.cacheTTL)
	return Image{PNG: png}, nil
}

func (s *Service) cacheKey(studentID int64) string {
	return fmt.Sprintf("qr:%d:%d", s.size, studentID)
}
