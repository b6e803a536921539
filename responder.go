package main

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Responder produces one persona's reply to a prompt.
// history holds the earlier lines the persona is allowed to see, oldest first.
type Responder interface {
	Respond(ctx context.Context, persona Persona, history []string, prompt string) (string, error)
}

// Default sampling temperatures when none is configured.
const (
	gameTemperature       = 0.8
	roundtableTemperature = 0.7
)

var defaultModels = map[string]string{
	"gemini": "gemini-2.5-flash",
	"openai": "gpt-4o-mini",
	"claude": "claude-3-5-haiku-latest",
	"groq":   "llama-3.3-70b-versatile",
	"ollama": "llama3.2",
}

const groqBaseURL = "https://api.groq.com/openai/v1"

type llmResponder struct {
	llm      llms.Model
	callOpts []llms.CallOption
}

func (r *llmResponder) Respond(ctx context.Context, persona Persona, history []string, prompt string) (string, error) {
	human := prompt
	if len(history) > 0 {
		human = "これまでの発言:\n" + strings.Join(history, "\n") + "\n\n" + prompt
	}
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, persona.systemPrompt()),
		llms.TextParts(llms.ChatMessageTypeHuman, human),
	}

	var fullText strings.Builder
	opts := append(append([]llms.CallOption(nil), r.callOpts...), llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
		fullText.Write(chunk)
		return nil
	}))

	resp, err := r.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(fullText.String())
	// Not every provider honours the streaming callback.
	if text == "" && resp != nil && len(resp.Choices) > 0 {
		text = strings.TrimSpace(resp.Choices[0].Content)
	}
	return text, nil
}

// buildCallOpts builds LLM call options from the config.
// fallbackTemp applies when no temperature is configured or it does not parse.
func buildCallOpts(cfg AppConfig, fallbackTemp float64) []llms.CallOption {
	temp := fallbackTemp
	if cfg.Temperature != "" {
		if f, err := strconv.ParseFloat(cfg.Temperature, 64); err == nil {
			temp = f
		} else {
			log.Printf("Responder: invalid temperature %q: %v", cfg.Temperature, err)
		}
	}
	opts := []llms.CallOption{llms.WithTemperature(temp)}
	DebugLog("buildCallOpts", "temperature=%.2f", temp)

	if cfg.Thinking != "" {
		mode := llms.ThinkingMode(cfg.Thinking)
		switch mode {
		case llms.ThinkingModeNone, llms.ThinkingModeLow, llms.ThinkingModeMedium, llms.ThinkingModeHigh, llms.ThinkingModeAuto:
			opts = append(opts, llms.WithThinkingMode(mode))
			log.Printf("Responder: thinking=%s", mode)
		default:
			log.Printf("Responder: invalid thinking %q (valid: none, low, medium, high, auto)", cfg.Thinking)
		}
	}

	return opts
}

// modelFor returns the configured model or the provider's default.
func modelFor(cfg AppConfig) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	return defaultModels[cfg.Provider]
}

// newModel constructs the langchaingo model for the configured provider.
func newModel(ctx context.Context, cfg AppConfig) (llms.Model, error) {
	model := modelFor(cfg)

	switch cfg.Provider {
	case "gemini":
		llm, err := googleai.New(ctx, googleai.WithAPIKey(cfg.GoogleAPIKey), googleai.WithDefaultModel(model))
		if err != nil {
			return nil, fmt.Errorf("init Gemini (%s): %w", model, err)
		}
		log.Printf("Responder: Gemini model=%s", model)
		return llm, nil
	case "openai":
		llm, err := openai.New(openai.WithModel(model), openai.WithToken(cfg.OpenAIAPIKey))
		if err != nil {
			return nil, fmt.Errorf("init OpenAI (%s): %w", model, err)
		}
		log.Printf("Responder: OpenAI model=%s", model)
		return llm, nil
	case "claude":
		llm, err := anthropic.New(anthropic.WithModel(model), anthropic.WithToken(cfg.AnthropicAPIKey))
		if err != nil {
			return nil, fmt.Errorf("init Claude (%s): %w", model, err)
		}
		log.Printf("Responder: Claude model=%s", model)
		return llm, nil
	case "groq":
		llm, err := openai.New(
			openai.WithModel(model),
			openai.WithBaseURL(groqBaseURL),
			openai.WithToken(cfg.GroqAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("init Groq (%s): %w", model, err)
		}
		log.Printf("Responder: Groq model=%s", model)
		return llm, nil
	case "ollama":
		llm, err := ollama.New(ollama.WithModel(model), ollama.WithServerURL(cfg.OllamaURL))
		if err != nil {
			return nil, fmt.Errorf("init Ollama (%s at %s): %w", model, cfg.OllamaURL, err)
		}
		log.Printf("Responder: Ollama model=%s url=%s", model, cfg.OllamaURL)
		return llm, nil
	case "openai-compatible":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("base_url is required for openai-compatible provider")
		}
		if model == "" {
			return nil, fmt.Errorf("model is required for openai-compatible provider")
		}
		opts := []openai.Option{
			openai.WithModel(model),
			openai.WithBaseURL(cfg.BaseURL),
		}
		if cfg.APIKey != "" {
			opts = append(opts, openai.WithToken(cfg.APIKey))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("init openai-compatible (%s at %s): %w", model, cfg.BaseURL, err)
		}
		log.Printf("Responder: openai-compatible model=%s url=%s", model, cfg.BaseURL)
		return llm, nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// newResponder wires the configured model into a Responder.
func newResponder(ctx context.Context, cfg AppConfig) (Responder, error) {
	llm, err := newModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	fallback := gameTemperature
	if cfg.Mode == modeRoundtable {
		fallback = roundtableTemperature
	}
	return &llmResponder{llm: llm, callOpts: buildCallOpts(cfg, fallback)}, nil
}
