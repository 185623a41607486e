package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"chatguard/internal/core/loop"
	"chatguard/internal/core/segment"
	"chatguard/internal/core/sentiment"
	guarddom "chatguard/internal/services/guard/domain"
	guardsvc "chatguard/internal/services/guard/service"
	"chatguard/internal/services/reply/domain"
)

func sanitizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sanitize [text...]",
		Short: "Strip control characters, redact injection phrasing and PII",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.text(args)
			if err != nil {
				return err
			}
			out := a.service().Sanitize(text)
			return a.emit(out, func() {
				a.printf("%s\n", out.Text)
				if out.Injection {
					a.printf("%s injection phrasing found\n", paint(color.FgRed, "!"))
				}
			})
		},
	}
}

var sentimentColor = map[sentiment.Sentiment]color.Attribute{
	sentiment.Risk:     color.FgRed,
	sentiment.Positive: color.FgGreen,
	sentiment.Neutral:  color.FgYellow,
}

func sentimentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment [text...]",
		Short: "Triage a message as RISK, POSITIVE or NEUTRAL",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.text(args)
			if err != nil {
				return err
			}
			res := a.service().Sentiment(text)
			return a.emit(res, func() {
				a.printf("%s score=%.2f\n", paint(sentimentColor[res.Sentiment], string(res.Sentiment)), res.Score)
				for _, t := range res.Triggers {
					a.printf("  - %s\n", t)
				}
			})
		},
	}
}

var loopColor = map[loop.Status]color.Attribute{
	loop.StatusOK:       color.FgGreen,
	loop.StatusLoop:     color.FgYellow,
	loop.StatusEscalate: color.FgRed,
}

func loopCmd(a *app) *cobra.Command {
	var previous, candidate string
	cmd := &cobra.Command{
		Use:   "loop --previous TEXT --candidate TEXT [user text...]",
		Short: "Compare two replies and print the repair directive when they loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.LoopInput{Previous: previous, Candidate: candidate}
			if len(args) > 0 {
				in.UserText, _ = a.text(args)
			}
			out := a.service().Loop(in)
			return a.emit(out, func() {
				a.printf("%s similarity=%d confidence=%.2f\n", paint(loopColor[out.Status], string(out.Status)), out.Similarity, out.Confidence)
				if out.Repair != "" {
					a.printf("\n%s\n", out.Repair)
				}
			})
		},
	}
	cmd.Flags().StringVar(&previous, "previous", "", "previous outgoing reply")
	cmd.Flags().StringVar(&candidate, "candidate", "", "candidate reply")
	_ = cmd.MarkFlagRequired("previous")
	_ = cmd.MarkFlagRequired("candidate")
	return cmd
}

func humanizeCmd(a *app) *cobra.Command {
	var mood, name string
	cmd := &cobra.Command{
		Use:   "humanize [text...]",
		Short: "Rewrite a reply so it reads like a person typing",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.text(args)
			if err != nil {
				return err
			}
			out := a.service().Humanize(domain.HumanizeInput{Text: text, Mood: mood, UserName: name, Seed: a.seedPtr()})
			return a.emit(out, func() { a.printf("%s\n", out.Text) })
		},
	}
	cmd.Flags().StringVar(&mood, "mood", "", "PROFESSIONAL or CASUAL")
	cmd.Flags().StringVar(&name, "name", "", "lead first name")
	return cmd
}

func segmentCmd(a *app) *cobra.Command {
	var o segment.Options
	cmd := &cobra.Command{
		Use:   "segment [text...]",
		Short: "Split a reply into chat bubbles with typing delays",
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.MaxBubbles > 10 {
				return fmt.Errorf("--max-bubbles must be at most 10")
			}
			text, err := a.text(args)
			if err != nil {
				return err
			}
			bubbles := a.service().Segment(domain.SegmentInput{Text: text, Options: o, Seed: a.seedPtr()})
			return a.emit(bubbles, func() {
				for i, b := range bubbles {
					a.printf("%s %s\n", paint(color.FgCyan, fmt.Sprintf("[%d +%dms]", i+1, b.DelayMs)), b.Text)
				}
			})
		},
	}
	cmd.Flags().IntVar(&o.MaxBubbles, "max-bubbles", 0, "bubble cap, 0 uses the configured value")
	cmd.Flags().IntVar(&o.BaseDelayMs, "base-delay", 0, "base delay in ms")
	cmd.Flags().IntVar(&o.MsPerWord, "ms-per-word", 0, "typing delay per word in ms")
	return cmd
}

func pauseCmd(a *app) *cobra.Command {
	var response string
	cmd := &cobra.Command{
		Use:   "pause [incoming text...]",
		Short: "Compute the pause before the first bubble",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.text(args)
			if err != nil {
				return err
			}
			out := a.service().Pause(domain.PauseInput{Incoming: text, Response: response, Seed: a.seedPtr()})
			return a.emit(out, func() { a.printf("%dms\n", out.PauseMs) })
		},
	}
	cmd.Flags().StringVar(&response, "response", "", "reply about to be sent")
	return cmd
}

func composeCmd(a *app) *cobra.Command {
	var in domain.ComposeInput
	cmd := &cobra.Command{
		Use:   "compose [incoming text...]",
		Short: "Run the full pipeline against the configured model",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.text(args)
			if err != nil {
				return err
			}
			in.Incoming = text
			out, err := a.service().Compose(cmd.Context(), in)
			if err != nil {
				return err
			}
			return a.emit(out, func() {
				a.printf("%s %s\n", paint(sentimentColor[out.Sentiment.Sentiment], string(out.Sentiment.Sentiment)),
					paint(loopColor[out.Loop.Status], string(out.Loop.Status)))
				if out.Fallback {
					a.printf("%s fallback reply\n", paint(color.FgYellow, "!"))
				}
				for _, issue := range out.Issues {
					a.printf("%s %s\n", paint(color.FgYellow, "!"), issue)
				}
				a.printf("pause %dms\n", out.PauseMs)
				for _, s := range out.Schedule {
					a.printf("%s %s\n", paint(color.FgCyan, fmt.Sprintf("[+%dms]", s.WaitMs)), s.Text)
				}
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.PreviousReply, "previous", "", "previous outgoing reply")
	f.StringVar(&in.UserName, "name", "", "lead first name")
	f.StringVar(&in.Mood, "mood", "", "PROFESSIONAL or CASUAL")
	f.StringVar(&in.Persona, "persona", "", "system prompt override")
	return cmd
}

func propagateCmd(a *app) *cobra.Command {
	var source, direction string
	cmd := &cobra.Command{
		Use:   "propagate --source SOURCE --direction DIRECTION",
		Short: "Decide whether an update may be synced toward a system",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := guarddom.Direction(direction)
			if dir != guarddom.ToHubSpot && dir != guarddom.ToSupabase {
				return fmt.Errorf("unknown direction %q", direction)
			}
			ok := guardsvc.ShouldPropagate(guarddom.ParseSource(source), dir)
			return a.emit(map[string]bool{"propagate": ok}, func() {
				if ok {
					a.printf("%s\n", paint(color.FgGreen, "propagate"))
					return
				}
				a.printf("%s\n", paint(color.FgRed, "skip"))
			})
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "update source, e.g. internal_api")
	cmd.Flags().StringVar(&direction, "direction", "", "to_hubspot or to_supabase")
	_ = cmd.MarkFlagRequired("direction")
	return cmd
}
