// Package facedetect crops an avatar around the most prominent face in an
// uploaded portrait. Detection is delegated to an external HTTP service and
// the crop itself is done locally.
package facedetect

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"family-tree-go/internal/config"
	"family-tree-go/internal/domain/media"
	"github.com/go-resty/resty/v2"
)

// Box is a face bounding box in pixel coordinates.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type detectResponse struct {
	Faces []Box `json:"faces"`
}

type Client struct {
	http *resty.Client
}

func NewClient(cfg config.FaceDetectConfig) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(cfg.URL, "/")).
			SetTimeout(cfg.Timeout),
	}
}

// Detect returns the bounding boxes of all faces found in the image bytes.
func (c *Client) Detect(ctx context.Context, image []byte) ([]Box, error) {
	var result detectResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("image", "portrait", bytes.NewReader(image)).
		SetResult(&result).
		Post("/detect")
	if err != nil {
		return nil, fmt.Errorf("face detect: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("face detect: %s", resp.Status())
	}
	return result.Faces, nil
}

// DetectAndCrop implements media.FaceCropper. It detects faces, picks the
// largest one and returns a circular PNG crop around it.
func (c *Client) DetectAndCrop(ctx context.Context, image []byte) ([]byte, error) {
	boxes, err := c.Detect(ctx, image)
	if err != nil {
		return nil, err
	}
	if len(boxes) == 0 {
		return nil, media.ErrNoFaceDetected
	}
	return CropFace(image, largestBox(boxes))
}

func largestBox(boxes []Box) Box {
	best := boxes[0]
	for _, b := range boxes[1:] {
		if b.Width*b.Height > best.Width*best.Height {
			best = b
		}
	}
	return best
}
