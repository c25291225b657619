// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package images stores user-uploaded recipe and profile images in the
// public bucket, accepting the data URLs the forms submit.
package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/cenkalti/backoff/v5"

	"github.com/recipehub/server/internal/validate"
)

// ErrInvalidDataURL reports a submitted image that is not a base64
// image data URL.
var ErrInvalidDataURL = errors.New("images: invalid image data URL")

// ParseDataURL decodes a base64 image data URL into its content type
// and raw bytes.
func ParseDataURL(dataURL string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data prefix", ErrInvalidDataURL)
	}
	ct, contents, ok := strings.Cut(rest, ";")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing content type", ErrInvalidDataURL)
	}

	if !strings.HasPrefix(ct, "image/") {
		return "", nil, fmt.Errorf("%w: only image data URLs supported, got %q", ErrInvalidDataURL, ct)
	}

	b64, ok := strings.CutPrefix(contents, "base64,")
	if !ok {
		return "", nil, fmt.Errorf("%w: only base64 data URLs supported", ErrInvalidDataURL)
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", nil, fmt.Errorf("%w: decoding base64: %v", ErrInvalidDataURL, err)
	}
	return ct, data, nil
}

func NewWriter(storage *storage.Client, bucket string) *Writer {
	return &Writer{
		storage: storage,
		bucket:  bucket,
	}
}

// Writer writes image objects to the public bucket and returns their
// serving URLs.
type Writer struct {
	storage *storage.Client
	bucket  string
}

// Write stores the image under pathNoExt with an extension derived from
// the content type. Writes are idempotent per path so transient upload
// failures are retried.
func (w *Writer) Write(ctx context.Context, pathNoExt string, contentType string, data []byte) (string, error) {
	ext, ok := strings.CutPrefix(contentType, "image/")
	if !ok {
		return "", fmt.Errorf("images: unsupported content type %q", contentType)
	}
	path := pathNoExt + "." + ext

	url, err := backoff.Retry(ctx, func() (string, error) {
		return w.writeObject(ctx, path, contentType, data)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(3))
	if err != nil {
		return "", fmt.Errorf("images: writing image object: %w", err)
	}
	return url, nil
}

// StoreUpload decodes a submitted image data URL, applies the upload
// limits and writes the object. A non-empty Result reports a rejected
// upload; err reports malformed input (ErrInvalidDataURL) or a failed
// write.
func (w *Writer) StoreUpload(ctx context.Context, pathNoExt string, dataURL string) (string, validate.Result, error) {
	ct, data, err := ParseDataURL(dataURL)
	if err != nil {
		return "", nil, err
	}
	if result := validate.Image(ct, int64(len(data))); !result.Valid() {
		return "", result, nil
	}

	url, err := w.Write(ctx, pathNoExt, ct, data)
	if err != nil {
		return "", nil, err
	}
	return url, nil, nil
}

func (w *Writer) writeObject(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	wc := w.storage.Bucket(w.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("images: writing object: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("images: closing object writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", w.bucket, path), nil
}
