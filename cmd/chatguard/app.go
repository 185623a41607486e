package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"chatguard/internal/core/chance"
	"chatguard/internal/platform/config"
	"chatguard/internal/platform/logger"
	"chatguard/internal/services/reply/domain"
	replymod "chatguard/internal/services/reply/module"
	replysvc "chatguard/internal/services/reply/service"
)

type app struct {
	in  io.Reader
	out io.Writer

	seed    uint64
	asJSON  bool
	noColor bool

	// model is nil until a command needs it, tests set it up front
	model domain.LLM
	svc   replysvc.Service
}

func newApp(in io.Reader, out io.Writer) *app { return &app{in: in, out: out} }

// service builds the pipeline once per process from CORE_REPLY_ and SERVICE_LLM_
func (a *app) service() replysvc.Service {
	if a.svc != nil {
		return a.svc
	}
	o := replymod.FromConfig(config.New())
	if a.model == nil {
		a.model = replymod.NewLLM(o)
	}
	opts := []replysvc.Option{replysvc.WithLogger(logger.Get().With().Str("component", "cli").Logger())}
	if a.seed != 0 {
		opts = append(opts, replysvc.WithSource(chance.New(a.seed)))
	}
	a.svc = replysvc.New(o.ServiceConfig(), a.model, opts...)
	return a.svc
}

// seedPtr pins a preview call when --seed is set
func (a *app) seedPtr() *uint64 {
	if a.seed == 0 {
		return nil
	}
	s := a.seed
	return &s
}

// text joins the args, or reads stdin when there are none
func (a *app) text(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(a.in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "", fmt.Errorf("no text given")
	}
	return s, nil
}

// emit prints v as JSON under --json, otherwise calls human
func (a *app) emit(v any, human func()) error {
	if !a.asJSON {
		human()
		return nil
	}
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printf(format string, args ...any) { fmt.Fprintf(a.out, format, args...) }

func paint(attr color.Attribute, s string) string { return color.New(attr).Sprint(s) }

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "chatguard",
		Short:         "Run reply pipeline stages and guard checks locally",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if a.noColor {
				color.NoColor = true
			}
			cmd.SetOut(a.out)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.out)
	root.SetIn(a.in)

	pf := root.PersistentFlags()
	pf.Uint64Var(&a.seed, "seed", 0, "pin random draws (0 leaves them unseeded)")
	pf.BoolVar(&a.asJSON, "json", false, "print results as JSON")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		sanitizeCmd(a),
		sentimentCmd(a),
		loopCmd(a),
		humanizeCmd(a),
		segmentCmd(a),
		pauseCmd(a),
		composeCmd(a),
		propagateCmd(a),
	)
	return root
}
