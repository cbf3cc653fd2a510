package gemini

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"

	"PostureRefine/pkg/aistudio"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrEmptyResponse = errors.New("no response from Gemini API")

type Part struct {
	Text  string
	Image []byte // JPEG payload
}

// StructuredRequest describes one schema-constrained generation call: the
// multimodal parts plus the JSON schema the reply must satisfy.
type StructuredRequest struct {
	SystemInstruction string
	Parts             []Part
	ResponseSchema    *genai.Schema
}

type IGemini interface {
	GenerateStructured(ctx context.Context, req StructuredRequest) (string, error)
	ModelName() string
}

type geminiClient struct {
	modelName string

	mu      sync.Mutex
	keys    aistudio.IKeySelector
	client  *genai.Client
	keyUsed string
}

func NewGeminiClient(keys aistudio.IKeySelector) IGemini {
	modelName := os.Getenv("GEMINI_MODEL_NAME")
	if modelName == "" {
		modelName = "gemini-3-flash-preview"
	}

	return &geminiClient{
		modelName: modelName,
		keys:      keys,
	}
}

func (g *geminiClient) ModelName() string {
	return g.modelName
}

// clientForActiveKey rebuilds the underlying genai client whenever the
// selected credential changed since the last call.
func (g *geminiClient) clientForActiveKey(ctx context.Context) (*genai.Client, error) {
	cred, err := g.keys.ActiveKey()
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil && g.keyUsed == cred.Key {
		return g.client, nil
	}

	if g.client != nil {
		g.client.Close()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cred.Key))
	if err != nil {
		return nil, err
	}

	g.client = client
	g.keyUsed = cred.Key
	return client, nil
}

func (g *geminiClient) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	client, err := g.clientForActiveKey(ctx)
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(g.modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = req.ResponseSchema

	if req.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.SystemInstruction)},
		}
	}

	parts := make([]genai.Part, 0, len(req.Parts))
	for _, p := range req.Parts {
		if p.Text != "" {
			parts = append(parts, genai.Text(p.Text))
		}
		if p.Image != nil {
			parts = append(parts, genai.ImageData("jpeg", p.Image))
		}
	}

	res, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}

	return sb.String(), nil
}
