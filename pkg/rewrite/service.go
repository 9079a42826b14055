// Package rewrite tailors experience descriptions to a proposal with a chat model.
package rewrite

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/artem13815/docmaker/pkg/llm"
	"github.com/artem13815/docmaker/pkg/logger"
)

const (
	Provider      = "OpenRouter"
	NotConfigured = "AI service not configured. Please set OPENROUTER_API_KEY or OPENAI_API_KEY."

	maxTokens   = 500
	temperature = 0.7

	systemPrompt = "You are a professional resume writer specializing in tailoring experiences to match project proposals."
)

// Models is the catalogue offered to callers, keyed by OpenRouter model id.
var Models = []ModelInfo{
	{ID: "openai/gpt-3.5-turbo", Label: "GPT-3.5 Turbo (Fast, Cost-effective)"},
	{ID: "openai/gpt-4", Label: "GPT-4 (High Quality, More Expensive)"},
	{ID: "openai/gpt-4-turbo", Label: "GPT-4 Turbo (Balanced)"},
	{ID: "anthropic/claude-3-sonnet", Label: "Claude 3 Sonnet (Creative)"},
	{ID: "anthropic/claude-3-haiku", Label: "Claude 3 Haiku (Fast)"},
	{ID: "google/gemini-pro", Label: "Gemini Pro (Google)"},
	{ID: "meta-llama/llama-2-70b-chat", Label: "Llama 2 70B (Open Source)"},
	{ID: "mistralai/mixtral-8x7b-instruct", Label: "Mixtral 8x7B (Open Source)"},
}

type ModelInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Request struct {
	Original string
	// Context is what the rewrite should align with, usually the proposal context.
	Context string
	// Instruction is an optional extra instruction from the user.
	Instruction string
	// Model overrides the configured model when set.
	Model string
}

// Result never carries an error value: failures are reported in Error and the
// original text is echoed back in Content.
type Result struct {
	Success     bool       `json:"success"`
	Content     string     `json:"content"`
	Original    string     `json:"original"`
	Model       string     `json:"model_used,omitempty"`
	Usage       *llm.Usage `json:"usage,omitempty"`
	Error       string     `json:"error,omitempty"`
	Unavailable bool       `json:"unavailable,omitempty"`
}

type Status struct {
	Available  bool   `json:"available"`
	Configured bool   `json:"configured"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
}

type Service struct {
	model llm.ChatModel
	log   *zap.Logger
}

// New returns a service; model may be nil when no API key is configured.
func New(model llm.ChatModel, log *zap.Logger) *Service {
	return &Service{model: model, log: logger.OrNop(log).Named("rewrite")}
}

func (s *Service) Configured() bool { return s.model != nil }

func (s *Service) Status() Status {
	st := Status{Available: s.Configured(), Configured: s.Configured(), Provider: Provider}
	if s.model != nil {
		st.Model = s.model.Model()
	}
	return st
}

func (s *Service) Rewrite(ctx context.Context, req Request) Result {
	if s.model == nil {
		return Result{Content: req.Original, Original: req.Original, Error: NotConfigured, Unavailable: true}
	}

	out, err := s.model.Complete(ctx, llm.Request{
		Model:       req.Model,
		System:      systemPrompt,
		User:        Prompt(req.Original, req.Context, req.Instruction),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		s.log.Warn("rewrite failed", zap.Error(err))
		return Result{Content: req.Original, Original: req.Original, Error: "AI service error: " + err.Error()}
	}
	content := strings.TrimSpace(out.Content)
	if content == "" {
		s.log.Warn("rewrite returned empty content", zap.String("model", out.Model))
		return Result{Content: req.Original, Original: req.Original, Error: "AI service error: empty response"}
	}
	usage := out.Usage
	return Result{
		Success:  true,
		Content:  content,
		Original: req.Original,
		Model:    out.Model,
		Usage:    &usage,
	}
}

// Prompt builds the user message sent to the model.
func Prompt(original, alignment, instruction string) string {
	var b strings.Builder
	b.WriteString("You are an effective resume writer for project estimation consultant business. ")
	b.WriteString("Rewrite the following experience description to better align with the proposal context while maintaining accuracy and professionalism.\n\n")
	b.WriteString("Proposal Context: " + alignment + "\n\n")
	b.WriteString("Original Experience Description: " + original + "\n\n")
	b.WriteString("Rewrite the experience to:\n")
	b.WriteString("1. Emphasize skills and achievements relevant to the proposal\n")
	b.WriteString("2. Use action verbs and quantifiable results where possible\n")
	b.WriteString("3. Maintain professional tone and clarity\n")
	b.WriteString("4. Keep it concise but impactful\n")
	b.WriteString("5. Resume is a company resume, not a personal resume.")
	if instruction = strings.TrimSpace(instruction); instruction != "" {
		b.WriteString("\n\nAdditional Instructions: " + instruction)
	}
	b.WriteString("\n\nRewritten Description:")
	return b.String()
}
