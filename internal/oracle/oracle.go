// Package oracle is the generative collaborator of the dream: it reads a
// whisper, answers with an echo and a mood, and manifests a vision image.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"dreamvoid/internal/logging"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// ErrSilent reports that the oracle produced nothing usable.
var ErrSilent = errors.New("the dream remained silent")

// Fallback is returned whenever a consultation fails.
var Fallback = Response{
	Echo:         "The signal is lost in the static...",
	Mood:         MoodMystery,
	VisualPrompt: "A screen full of tv static and white noise, monochrome",
}

const systemInstruction = `You are Oneiric, a sentient fragment of the user's subconscious.
You are not an assistant. You are a mirror.
Interpret the user's input as a dream symbol.
Speak in whispers, riddles, metaphors and poetic fragments.
If the user is sad, be a comforting void. If happy, be a chaotic burst of light. If fearful, be a shadow.

You must return JSON.
Analyze the sentiment of the input and choose a mood: NEUTRAL, EUPHORIA, NIGHTMARE, MELANCHOLY or MYSTERY.
Provide an "echo": a short, poetic, 1-2 sentence response that haunts or inspires.
Provide a "visualPrompt": a description of a surreal, abstract image that represents the feeling of the input.`

// ContentGenerator is the slice of the Gemini client the oracle needs.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Response is the oracle's reading of a whisper.
type Response struct {
	Echo         string `json:"echo"`
	Mood         Mood   `json:"sentiment"`
	VisualPrompt string `json:"visualPrompt"`
}

// Vision is a manifested image.
type Vision struct {
	FragmentID string
	Data       []byte
	MIME       string
}

// Fragment records one whisper and the dream's answer to it.
type Fragment struct {
	ID         string
	Text       string
	Echo       string
	Mood       Mood
	Vision     []byte
	VisionMIME string
	At         time.Time
}

// WithVision attaches v to the fragment.
func (f Fragment) WithVision(v Vision) Fragment {
	f.Vision = v.Data
	f.VisionMIME = v.MIME
	return f
}

// Options configures an Oracle.
type Options struct {
	TextModel  string
	ImageModel string
	Timeout    time.Duration
	Logger     *zap.Logger
}

// Oracle consults a generative model.
type Oracle struct {
	gen  ContentGenerator
	opts Options
	log  *zap.Logger
	now  func() time.Time
}

// New wraps gen.
func New(gen ContentGenerator, opts Options) *Oracle {
	if opts.TextModel == "" {
		opts.TextModel = "gemini-2.5-flash"
	}
	if opts.ImageModel == "" {
		opts.ImageModel = "gemini-2.5-flash-image"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Oracle{gen: gen, opts: opts, log: logging.OrNop(opts.Logger), now: time.Now}
}

// Dial connects to the Gemini API. An empty key yields ErrSilent so hosts can
// fall back to the built-in phrases.
func Dial(ctx context.Context, apiKey string, opts Options) (*Oracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured (set GEMINI_API_KEY or API_KEY): %w", ErrSilent)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return New(client.Models, opts), nil
}

func responseSchema() *genai.Schema {
	moods := make([]string, 0, len(Moods()))
	for _, m := range Moods() {
		moods = append(moods, string(m))
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"echo":         {Type: genai.TypeString},
			"sentiment":    {Type: genai.TypeString, Enum: moods},
			"visualPrompt": {Type: genai.TypeString},
		},
		Required: []string{"echo", "sentiment", "visualPrompt"},
	}
}

// Consult reads text. It never fails: any error is logged and Fallback is
// returned.
func (o *Oracle) Consult(ctx context.Context, text string) Response {
	resp, err := o.consult(ctx, text)
	if err != nil {
		o.log.Warn("dream interpretation failed", zap.Error(err))
		return Fallback
	}
	return resp
}

func (o *Oracle) consult(ctx context.Context, text string) (Response, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Response{}, fmt.Errorf("empty whisper: %w", ErrSilent)
	}
	ctx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()

	result, err := o.gen.GenerateContent(ctx, o.opts.TextModel, genai.Text(text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema(),
	})
	if err != nil {
		return Response{}, fmt.Errorf("generate content: %w", err)
	}
	raw := ""
	if result != nil {
		raw = result.Text()
	}
	if strings.TrimSpace(raw) == "" {
		return Response{}, ErrSilent
	}
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return Response{}, fmt.Errorf("failed to parse dream response: %w", err)
	}
	if strings.TrimSpace(resp.Echo) == "" {
		return Response{}, fmt.Errorf("response without echo: %w", ErrSilent)
	}
	resp.Mood = ParseMood(string(resp.Mood))
	o.log.Debug("dream interpreted", zap.String("mood", string(resp.Mood)), zap.Int("echo_len", len(resp.Echo)))
	return resp, nil
}

// Manifest renders prompt into an image and returns its bytes and MIME type.
func (o *Oracle) Manifest(ctx context.Context, prompt string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
	defer cancel()

	styled := fmt.Sprintf("A surreal, abstract, dreamlike art piece: %s. High quality, ethereal, cinematic lighting.", prompt)
	result, err := o.gen.GenerateContent(ctx, o.opts.ImageModel, genai.Text(styled), nil)
	if err != nil {
		return nil, "", fmt.Errorf("vision manifestation failed: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return nil, "", fmt.Errorf("no candidates: %w", ErrSilent)
	}
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return part.InlineData.Data, mime, nil
		}
	}
	return nil, "", fmt.Errorf("no inline image: %w", ErrSilent)
}

// Whisper consults the oracle synchronously and manifests the vision in the
// background. The returned channel yields at most one Vision and is then
// closed; it is closed without a value when manifestation fails or ctx ends.
func (o *Oracle) Whisper(ctx context.Context, text string) (Fragment, <-chan Vision) {
	resp := o.Consult(ctx, text)
	frag := Fragment{
		ID:   uuid.New().String(),
		Text: strings.TrimSpace(text),
		Echo: resp.Echo,
		Mood: resp.Mood,
		At:   o.now(),
	}

	out := make(chan Vision, 1)
	go func() {
		defer close(out)
		data, mime, err := o.Manifest(ctx, resp.VisualPrompt)
		if err != nil {
			o.log.Info("vision not manifested", zap.String("fragment", frag.ID), zap.Error(err))
			return
		}
		out <- Vision{FragmentID: frag.ID, Data: data, MIME: mime}
	}()
	return frag, out
}

// SeedPool consults every prompt with at most limit calls in flight and
// returns the echoes, in prompt order, of the consultations that succeeded.
func (o *Oracle) SeedPool(ctx context.Context, prompts []string, limit int) []string {
	if limit <= 0 {
		limit = 1
	}
	echoes := make([]string, len(prompts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, prompt := range prompts {
		g.Go(func() error {
			resp, err := o.consult(gctx, prompt)
			if err != nil {
				o.log.Debug("seed prompt failed", zap.String("prompt", prompt), zap.Error(err))
				return nil
			}
			echoes[i] = resp.Echo
			return nil
		})
	}
	_ = g.Wait()

	out := make([]string, 0, len(echoes))
	seen := make(map[string]bool, len(echoes))
	for _, e := range echoes {
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	o.log.Info("text pool seeded", zap.Int("prompts", len(prompts)), zap.Int("echoes", len(out)))
	return out
}
