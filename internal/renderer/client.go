// internal/renderer/client.go
package renderer

import (
	"context"
	"fmt"
	"strings"

	"transit-report/internal/common/config"
	"transit-report/internal/common/errors"
	commonhttp "transit-report/internal/common/http"
	"transit-report/internal/common/logger"
)

// Client talks to the presentation mutation service.
type Client struct {
	http     *commonhttp.Client
	shapeURL string
	imageURL string
	logger   logger.Logger
}

type shapeUpdate struct {
	ReferenceElementKey string `json:"referenceElementKey"`
	Content             string `json:"content"`
}

type imageUpdate struct {
	ReferenceElementKey string `json:"referenceElementKey"`
	ImageURL            string `json:"imageUrl"`
}

func NewClient(cfg config.RendererConfig, log logger.Logger) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		http:     commonhttp.NewClient(config.GetDuration(cfg.Timeout)),
		shapeURL: base + cfg.ShapeUpdatePath,
		imageURL: base + cfg.ImageUpdatePath,
		logger:   log.With(map[string]interface{}{"component": "renderer"}),
	}
}

// UpdateShape replaces the text of a template element.
func (c *Client) UpdateShape(ctx context.Context, referenceElementKey, content string) error {
	return c.post(ctx, c.shapeURL, referenceElementKey, shapeUpdate{
		ReferenceElementKey: referenceElementKey,
		Content:             content,
	})
}

// UpdateImage points a picture element at imageURL.
func (c *Client) UpdateImage(ctx context.Context, referenceElementKey, imageURL string) error {
	return c.post(ctx, c.imageURL, referenceElementKey, imageUpdate{
		ReferenceElementKey: referenceElementKey,
		ImageURL:            imageURL,
	})
}

func (c *Client) post(ctx context.Context, url, referenceElementKey string, payload interface{}) error {
	resp, err := c.http.PostJSON(ctx, url, payload, nil)
	if err != nil {
		c.logger.Error("renderer request failed", map[string]interface{}{
			"referenceElementKey": referenceElementKey,
			"error":               err.Error(),
		})
		return errors.NewRendererRequestFailedError(referenceElementKey, err)
	}
	if !resp.OK() {
		c.logger.Error("renderer returned non-success", map[string]interface{}{
			"referenceElementKey": referenceElementKey,
			"status":              resp.StatusCode,
		})
		return errors.NewRendererRequestFailedError(referenceElementKey, fmt.Errorf("status %d", resp.StatusCode))
	}
	return nil
}
