package completion

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSuggestPrefersPrefixMatches(t *testing.T) {
	c := New("help", "history")

	got := c.Suggest("hge", 3)
	if len(got) == 0 || got[0] != "HGET" {
		t.Fatalf("Suggest(hge) = %v, want HGET first", got)
	}

	got = c.Suggest("hist", 2)
	if diff := cmp.Diff([]string{"history", "HEXISTS"}, got); diff != "" {
		t.Fatalf("Suggest(hist) mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestEmpty(t *testing.T) {
	c := New()
	if got := c.Suggest("  ", 5); got != nil {
		t.Fatalf("Suggest(blank) = %v, want nil", got)
	}
	if got := c.Suggest("qqqqq", 5); len(got) != 0 {
		t.Fatalf("Suggest(qqqqq) = %v, want none", got)
	}
}

func TestSuggestLimit(t *testing.T) {
	c := New()
	if got := c.Suggest("z", 2); len(got) != 2 {
		t.Fatalf("Suggest(z, 2) returned %d items: %v", len(got), got)
	}
}

func TestComplete(t *testing.T) {
	c := New("help")
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"ping", "PING ", true},
		{"  lran", "LRANGE ", true},
		{"hel", "help ", true},
		{"GET key", "GET key", false},
		{"", "", false},
		{"xyzzyq", "xyzzyq", false},
	}
	for _, tc := range cases {
		got, ok := c.Complete(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("Complete(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestNewDeduplicates(t *testing.T) {
	c := New("ping", "help", "help")
	count := 0
	for _, w := range c.words {
		if w == "ping" || w == "PING" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one PING entry, got %d", count)
	}
}
