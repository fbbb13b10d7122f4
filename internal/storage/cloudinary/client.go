// Package cloudinary is a thin client for a Cloudinary-compatible upload API.
package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"family-tree-go/internal/config"
	"family-tree-go/internal/domain/media"
	"github.com/go-resty/resty/v2"
)

type Client struct {
	http      *resty.Client
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

type destroyResponse struct {
	Result string `json:"result"`
}

func New(cfg config.StorageConfig) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/" + cfg.CloudName).
			SetTimeout(cfg.Timeout),
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		folder:    cfg.Folder,
	}
}

// Upload pushes the file bytes as a signed multipart upload and returns the
// stored object's URL and public id.
func (c *Client) Upload(ctx context.Context, file media.File) (media.StoredObject, error) {
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := c.sign(map[string]string{
		"folder":    c.folder,
		"timestamp": timestamp,
	})

	var result uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", file.Name, bytes.NewReader(file.Data)).
		SetFormData(map[string]string{
			"api_key":   c.apiKey,
			"timestamp": timestamp,
			"folder":    c.folder,
			"signature": signature,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/auto/upload")
	if err != nil {
		return media.StoredObject{}, fmt.Errorf("storage upload: %w", err)
	}
	if resp.IsError() {
		return media.StoredObject{}, fmt.Errorf("storage upload: %s", errorMessage(result, resp.Status()))
	}

	return media.StoredObject{URL: result.SecureURL, PublicID: result.PublicID}, nil
}

// Delete destroys a stored object by public id.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := c.sign(map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	})

	var result destroyResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"api_key":   c.apiKey,
			"public_id": publicID,
			"timestamp": timestamp,
			"signature": signature,
		}).
		SetResult(&result).
		Post("/image/destroy")
	if err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("storage delete: %s", resp.Status())
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("storage delete: %s", result.Result)
	}
	return nil
}

// ExtractPublicID recovers the public id from a delivery URL, e.g.
// ".../image/upload/v1712345/uploads/abc123.png" yields "uploads/abc123".
func (c *Client) ExtractPublicID(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	uploadIdx := -1
	for i, part := range parts {
		if part == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx == len(parts)-1 {
		return ""
	}

	rest := parts[uploadIdx+1:]
	// Skip the version segment (v<digits>).
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") && isDigits(rest[0][1:]) {
		rest = rest[1:]
	}

	publicID := strings.Join(rest, "/")
	if idx := strings.LastIndex(publicID, "."); idx > 0 {
		publicID = publicID[:idx]
	}
	return publicID
}

// sign computes the Cloudinary request signature: sorted params joined with
// '&', secret appended, SHA-1 hex digest.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func errorMessage(result uploadResponse, fallback string) string {
	if result.Error.Message != "" {
		return result.Error.Message
	}
	return fallback
}
