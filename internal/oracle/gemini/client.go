// Package gemini implements the TextOracle port against the Google
// Generative Language REST API. The client sends a single non-streaming
// generateContent request per call; retries and fallback copy are the
// caller's concern.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
	"github.com/sajhahub/sajha-hub-backend/internal/repository/ports"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 30 * time.Second
)

var ErrEmptyCompletion = errors.New("gemini: empty completion")

type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	cfg  Config
	http *http.Client
}

var _ ports.TextOracle = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	Tools            []tool            `json:"tools,omitempty"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
	GoogleMaps   *struct{} `json:"google_maps,omitempty"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends the prompt and returns the first candidate's concatenated
// text along with any web grounding citations, in response order.
func (c *Client) Generate(ctx context.Context, prompt string, opts ports.OracleOptions) (string, []domain.Citation, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if opts.UseSearch {
		req.Tools = append(req.Tools, tool{GoogleSearch: &struct{}{}})
	}
	if opts.UseMaps {
		req.Tools = append(req.Tools, tool{GoogleMaps: &struct{}{}})
	}
	if opts.JSONResponse {
		req.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", nil, fmt.Errorf("gemini: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("gemini: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", nil, fmt.Errorf("gemini: call: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", nil, fmt.Errorf("gemini: read response: %w", err)
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	if decoded.Error != nil {
		return "", nil, fmt.Errorf("gemini: api error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}
	if len(decoded.Candidates) == 0 {
		return "", nil, ErrEmptyCompletion
	}

	cand := decoded.Candidates[0]
	var text string
	for _, p := range cand.Content.Parts {
		text += p.Text
	}
	if text == "" {
		return "", nil, ErrEmptyCompletion
	}

	var citations []domain.Citation
	if cand.GroundingMetadata != nil {
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Web == nil || chunk.Web.URI == "" {
				continue
			}
			citations = append(citations, domain.Citation{
				URL:   chunk.Web.URI,
				Title: chunk.Web.Title,
			})
		}
	}
	return text, citations, nil
}
