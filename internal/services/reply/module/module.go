// Package module wires the reply pipeline into the API using modkit
package module

import (
	"context"

	"chatguard/internal/adapters/llm"
	"chatguard/internal/core/chance"
	modkit "chatguard/internal/modkit"
	"chatguard/internal/modkit/httpkit"
	modreg "chatguard/internal/modkit/module"
	"chatguard/internal/platform/logger"
	guarddom "chatguard/internal/services/guard/domain"
	"chatguard/internal/services/reply/domain"
	replyhttp "chatguard/internal/services/reply/http"
	replysvc "chatguard/internal/services/reply/service"
)

// Module implements the reply module
type Module struct {
	modkit.Base

	svc replysvc.Service
}

// Ports declares the optional injected ports for this module
type Ports struct {
	Guard guarddom.ServicePort
}

// Exported are the ports this module offers other modules
type Exported struct {
	Reply domain.ServicePort
}

// llmAdapter maps the pipeline port onto the completions client
type llmAdapter struct{ c *llm.Client }

func (a llmAdapter) Chat(ctx context.Context, msgs []domain.Message, temperature float64) (string, error) {
	out := make([]llm.Message, len(msgs))
	for i, m := range msgs {
		out[i] = llm.Message{Role: m.Role, Content: m.Content}
	}
	return a.c.Chat(ctx, out, temperature)
}

// logSender records bubbles in the log when no channel is attached
type logSender struct{ log logger.Logger }

func (s logSender) Send(_ context.Context, to, text string) error {
	s.log.Info().Str("to", to).Int("chars", len(text)).Msg("bubble")
	return nil
}

// NewLLM builds the completions client described by o
func NewLLM(o Options) domain.LLM {
	return llmAdapter{c: llm.NewClient(llm.Options{
		BaseURL:    o.LLMURL,
		Model:      o.LLMModel,
		APIKey:     o.LLMKey,
		Timeout:    o.LLMTimeout,
		MaxRetries: o.LLMRetries,
		MaxTokens:  o.LLMMaxTokens,
	})}
}

// New constructs the reply module with options read from env
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	o := FromConfig(deps.Cfg)
	return NewWith(deps, o, NewLLM(o), opts...)
}

// NewWith constructs the reply module around an explicit model
func NewWith(deps modkit.Deps, o Options, model domain.LLM, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("reply"),
		modkit.WithPrefix("/reply"),
	}, opts...)...)

	log := deps.Log.With().Str("component", "reply").Logger()
	svcOpts := []replysvc.Option{
		replysvc.WithLogger(log),
		replysvc.WithSender(logSender{log: log}),
	}
	if o.Seed != 0 {
		svcOpts = append(svcOpts, replysvc.WithSource(chance.New(o.Seed)))
	}
	if g, ok := guardPort(b); ok {
		svcOpts = append(svcOpts, replysvc.WithGuard(g))
	}

	svc := replysvc.New(o.ServiceConfig(), model, svcOpts...)

	return &Module{Base: b, svc: svc}
}

// guardPort prefers injected ports and falls back to what the guard module registered
func guardPort(b modkit.Base) (guarddom.ServicePort, bool) {
	if p, ok := b.Injected().(Ports); ok && p.Guard != nil {
		return p.Guard, true
	}
	return modreg.Lookup[guarddom.ServicePort]("guard")
}

// MountRoutes mounts the reply routes under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.Mount(r, func(sub httpkit.Router) { replyhttp.Register(sub, m.svc) })
}

// Ports exports the reply service
func (m *Module) Ports() any { return Exported{Reply: m.svc} }
