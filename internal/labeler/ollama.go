package labeler

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// labelPrompt asks the vision model for machine-parseable output: one label
// per line, confidence last.
const labelPrompt = `Describe the physical product in this photo as short labels.
Output one label per line followed by a confidence between 0 and 1.
Example:
usb drive 0.92
electronics 0.85
No other text.`

// OllamaConfig configures the Ollama vision-model adapter.
type OllamaConfig struct {
	Endpoint  string
	Model     string
	Timeout   time.Duration
	MaxLabels int
}

// DefaultOllamaConfig returns defaults for a local Ollama install.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		Endpoint:  "http://localhost:11434",
		Model:     "llava",
		Timeout:   60 * time.Second,
		MaxLabels: 20,
	}
}

// Ollama labels images through a locally hosted Ollama vision model.
type Ollama struct {
	cfg    OllamaConfig
	client *resty.Client
}

// NewOllama creates an Ollama adapter from config, filling in defaults for
// zero values.
func NewOllama(cfg OllamaConfig) *Ollama {
	def := DefaultOllamaConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = def.Endpoint
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxLabels <= 0 {
		cfg.MaxLabels = def.MaxLabels
	}
	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetTimeout(cfg.Timeout)
	return &Ollama{cfg: cfg, client: client}
}

type generateRequest struct {
	Model  string   `json:"model"`
	Prompt string   `json:"prompt"`
	Images []string `json:"images"`
	Stream bool     `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Labels implements Labeler. It sends the image to the model and parses the
// line-oriented label list from the response.
func (o *Ollama) Labels(ctx context.Context, imagePath string) ([]Label, error) {
	data, err := os.ReadFile(imagePath) //nolint:gosec // G304: labeling a caller-provided image path
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	var out generateResponse
	resp, err := o.client.R().
		SetContext(ctx).
		SetBody(generateRequest{
			Model:  o.cfg.Model,
			Prompt: labelPrompt,
			Images: []string{base64.StdEncoding.EncodeToString(data)},
			Stream: false,
		}).
		SetResult(&out).
		Post("/api/generate")
	if err != nil {
		return nil, fmt.Errorf("label request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("label request failed: %s", resp.Status())
	}

	return o.parseLabels(out.Response), nil
}

// parseLabels reads "label text 0.87" lines, skipping anything that does not
// end in a parseable confidence.
func (o *Ollama) parseLabels(response string) []Label {
	var labels []Label
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		conf, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil || conf < 0 || conf > 1 {
			continue
		}
		text := strings.Join(fields[:len(fields)-1], " ")
		text = strings.TrimRight(text, ",:")
		if text == "" {
			continue
		}
		labels = append(labels, Label{Text: text, Confidence: conf})
		if len(labels) >= o.cfg.MaxLabels {
			break
		}
	}
	return labels
}
