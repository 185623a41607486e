package pacing

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chatguard/internal/core/chance"
	"chatguard/internal/core/segment"
)

func TestSmartPause_NoJitter(t *testing.T) {
	mid := chance.Const(0.5)
	tests := []struct {
		name     string
		incoming string
		response string
		want     int
	}{
		// 800 + 5/400*60000 + 5/200*60000 = 800+750+1500
		{"plain statement", "I want to train mornings", "", 3050},
		// 3050 + 500
		{"question mark", "I want to train mornings?", "", 3550},
		// starts with interrogative, 4 words: 800+600+1200+500
		{"interrogative lead", "When can we start", "", 3100},
		// 2 words: 800+300+600-200 = 1500
		{"short casual", "sounds good", "", 1500},
		// response capped at 20 words: 800 + 300 + 6000 -> clamped
		{"long response", "sounds good", strings.Repeat("w ", 50), MaxPauseMs},
		// blank is not omitted: 800 + 750 + 0
		{"blank response", "I want to train mornings", "   ", 1550},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SmartPause(tc.incoming, tc.response, mid); got != tc.want {
				t.Fatalf("SmartPause = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSmartPause_Emoji(t *testing.T) {
	// 7 fields, 2 emoji: 800+1050+2100-200
	if got := SmartPause("love it see you then 💪 🔥", "", chance.Const(0.5)); got != 3750 {
		t.Fatalf("SmartPause = %d", got)
	}
}

func TestSmartPause_Bounds(t *testing.T) {
	inputs := []string{"", "hi", "?", strings.Repeat("word ", 5000), "مرحبا كيف حالك؟"}
	for seed := uint64(0); seed < 100; seed++ {
		src := chance.New(seed)
		for _, in := range inputs {
			got := SmartPause(in, "", src)
			if got < MinPauseMs || got > MaxPauseMs {
				t.Fatalf("SmartPause(%q) = %d out of bounds", in, got)
			}
		}
	}
	if got := SmartPause("", "", chance.Const(0)); got != MinPauseMs {
		t.Fatalf("empty = %d", got)
	}
}

func TestSchedule(t *testing.T) {
	bs := []segment.Bubble{{Text: "a b c"}, {Text: "d e f", DelayMs: 900}}
	got := Schedule(2000, bs)
	want := []Send{{Text: "a b c", WaitMs: 2000}, {Text: "d e f", WaitMs: 900}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Schedule (-want +got):\n%s", diff)
	}
	if Total(got) != 2900 {
		t.Fatalf("Total = %d", Total(got))
	}
}
