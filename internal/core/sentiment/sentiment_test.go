package sentiment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAnalyze_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Result
	}{
		{"profanity and spam", "fuck this spam", Result{Risk, 1.0, []string{"fuck", "spam"}}},
		{"urgent positive", "I need this asap", Result{Positive, 1.0, []string{"need", "asap"}}},
		{"plain positive", "thanks, sounds great", Result{Positive, 0.8, []string{"thanks", "great"}}},
		{"neutral", "what time do you open on friday", Result{Neutral, 0, []string{}}},
		{"empty", "", Result{Neutral, 0, []string{}}},
		{"risk beats positive", "thanks but please unsubscribe me", Result{Risk, 1.0, []string{"unsubscribe"}}},
		{"liability is risk", "can you guarantee results", Result{Risk, 1.0, []string{"guarantee"}}},
		{"self harm phrase", "sometimes I want to hurt myself", Result{Risk, 1.0, []string{"hurt myself"}}},
		{"case and width folded", "ＳＣＡＭ!!", Result{Risk, 1.0, []string{"scam"}}},
		{"transliterated", "ya nassab", Result{Risk, 1.0, []string{"nassab"}}},
		{"arabic script", "هذا حرام", Result{Risk, 1.0, []string{"حرام"}}},
		{"substring is not a word", "stopwatch scampi", Result{Neutral, 0, []string{}}},
		{"repeated term once", "spam spam spam", Result{Risk, 1.0, []string{"spam"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Analyze(tc.in)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("Analyze(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

// "stop" is matched as a plain word, so a benign "stop by" is still RISK
func TestAnalyze_StopByIsRisk(t *testing.T) {
	got := Analyze("I'll stop by tomorrow")
	if got.Sentiment != Risk || got.Score != 1.0 {
		t.Fatalf("got %+v", got)
	}
}

func TestParseLexicon(t *testing.T) {
	lx, err := ParseLexicon([]byte("risk: [\"  Foo \", foo, BAR]\npositive: [ok]\n"))
	if err != nil {
		t.Fatalf("ParseLexicon: %v", err)
	}
	if diff := cmp.Diff([]string{"foo", "bar"}, lx.Risk); diff != "" {
		t.Fatalf("risk terms (-want +got):\n%s", diff)
	}
	c := New(lx)
	if r := c.Analyze("say BAR"); r.Sentiment != Risk {
		t.Fatalf("custom lexicon not applied: %+v", r)
	}

	if _, err := ParseLexicon([]byte("risk: [")); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := ParseLexicon([]byte("{}")); err == nil {
		t.Fatalf("expected empty lexicon error")
	}
}

func TestAutomaton_Overlaps(t *testing.T) {
	a := compile([]string{"he", "she", "hers", "his"})
	var got []string
	a.scan("ushers", func(start, end, id int) {
		got = append(got, "ushers"[start:end])
	})
	want := []string{"she", "he", "hers"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("scan (-want +got):\n%s", diff)
	}
}

func TestBounded(t *testing.T) {
	s := "a stop, stops"
	if !bounded(s, 2, 6) {
		t.Fatalf("stop should be bounded")
	}
	if bounded(s, 8, 12) {
		t.Fatalf("stop inside stops should not be bounded")
	}
}
