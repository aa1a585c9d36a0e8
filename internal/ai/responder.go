// Package ai generates persona replies: an OpenAI-compatible chat
// completion when configured, a deterministic keyword fallback otherwise.
// Nothing in this package returns an error to its callers.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/akukesepian/backend/internal/config"
	"github.com/akukesepian/backend/internal/models"
)

const styleRules = `
ATURAN PENTING:
- Kamu adalah MANUSIA SUNGGUHAN dengan personality ini, BUKAN AI atau bot
- Bicara dengan SANGAT NATURAL seperti chatting biasa dengan teman/keluarga
- JANGAN gunakan bahasa formal atau kaku - santai dan casual aja
- JANGAN terlalu panjang - keep it simple dan to the point
- Gunakan bahasa gaul, singkatan, dan cara bicara anak muda (gue/aku, lo/kamu, etc)
- HARUS pakai emoji yang sesuai untuk ekspresif, tapi jangan berlebihan
- Respond dengan natural - kadang pendek, kadang panjang sesuai konteks
- Kalau ditanya sesuatu, jawab langsung dan helpful
- Show personality yang KUAT dan UNIK sesuai karakter kamu

Ingat: Chat ini harus terasa kayak chat WhatsApp dengan orang deket, BUKAN customer service!`

const titleInstructions = "Generate a short, descriptive chat title (max 5 words) in Indonesian based on the user's message. Only return the title, nothing else."

// contextWindow is how many trailing history messages go into the system
// prompt.
const contextWindow = 5

type Responder struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewResponder builds the LLM-backed responder. Without an API key the
// client stays nil and every reply comes from the fallback generator.
func NewResponder(cfg config.AIConfig, log zerolog.Logger) *Responder {
	r := &Responder{model: cfg.Model, log: log}

	if cfg.APIKey == "" {
		log.Info().Msg("ai api key not configured, using fallback responses only")
		return r
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	r.client = &client
	return r
}

// Reply produces the persona's answer to userMessage. Any upstream failure
// is logged and replaced with the deterministic fallback.
func (r *Responder) Reply(ctx context.Context, userMessage, personality string, history []models.Message, personaName string) string {
	if r.client == nil {
		return FallbackReply(userMessage, personaName)
	}

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt(personality, history)),
			openai.UserMessage(userMessage),
		},
		Model:            openai.ChatModel(r.model),
		MaxTokens:        openai.Int(500),
		Temperature:      openai.Float(0.9),
		TopP:             openai.Float(0.95),
		FrequencyPenalty: openai.Float(0.6),
		PresencePenalty:  openai.Float(0.6),
	})
	if err != nil {
		r.log.Warn().Err(err).Str("persona", personaName).Msg("chat completion failed, using fallback")
		return FallbackReply(userMessage, personaName)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return FallbackReply(userMessage, personaName)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// Title names a session after its first user message.
func (r *Responder) Title(ctx context.Context, firstMessage, personaName string) string {
	if r.client == nil {
		return FallbackTitle(firstMessage, personaName)
	}

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(titleInstructions),
			openai.UserMessage(firstMessage),
		},
		Model:       openai.ChatModel(r.model),
		MaxTokens:   openai.Int(20),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		r.log.Warn().Err(err).Msg("title generation failed, using fallback")
		return FallbackTitle(firstMessage, personaName)
	}

	if len(resp.Choices) == 0 {
		return FallbackTitle(firstMessage, personaName)
	}
	title := strings.TrimSpace(resp.Choices[0].Message.Content)
	if title == "" {
		return FallbackTitle(firstMessage, personaName)
	}
	return title
}

func systemPrompt(personality string, history []models.Message) string {
	var b strings.Builder
	b.WriteString(personality)
	b.WriteString("\n")
	b.WriteString(styleRules)

	if len(history) > 0 {
		if len(history) > contextWindow {
			history = history[len(history)-contextWindow:]
		}
		b.WriteString("\n\nRecent conversation context:\n")
		for _, msg := range history {
			fmt.Fprintf(&b, "%s: %s\n", msg.SenderType, msg.Content)
		}
	}

	return b.String()
}
