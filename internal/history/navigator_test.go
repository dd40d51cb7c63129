package history

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNavigatorRoundTrip(t *testing.T) {
	for n := 0; n <= 5; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			nav := NewNavigator(nil)
			var cmds []string
			for i := 0; i < n; i++ {
				cmd := fmt.Sprintf("SET k%d %d", i, i)
				cmds = append(cmds, cmd)
				nav.Append(cmd)
			}

			var back []string
			for i := 0; i < n; i++ {
				got, ok := nav.Prev("draft text")
				if !ok {
					t.Fatalf("Prev #%d returned false", i)
				}
				back = append(back, got)
			}
			want := make([]string, 0, n)
			for i := n - 1; i >= 0; i-- {
				want = append(want, cmds[i])
			}
			if diff := cmp.Diff(want, back, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("Prev sequence mismatch (-want +got):\n%s", diff)
			}

			var forward []string
			for i := 0; i < n; i++ {
				got, ok := nav.Next()
				if !ok {
					t.Fatalf("Next #%d returned false", i)
				}
				forward = append(forward, got)
			}
			if n == 0 {
				return
			}
			wantForward := append(append([]string(nil), cmds[1:]...), "draft text")
			if diff := cmp.Diff(wantForward, forward); diff != "" {
				t.Fatalf("Next sequence mismatch (-want +got):\n%s", diff)
			}
			if nav.Browsing() {
				t.Fatalf("expected cursor back at 0")
			}
			if _, ok := nav.Next(); ok {
				t.Fatalf("Next at offset 0 must be a no-op")
			}
		})
	}
}

func TestNavigatorBoundaryIsIdempotent(t *testing.T) {
	nav := NewNavigator([]string{"GET a", "GET b"})

	if got, ok := nav.Prev(""); !ok || got != "GET b" {
		t.Fatalf("Prev = %q,%v", got, ok)
	}
	if got, ok := nav.Prev("ignored"); !ok || got != "GET a" {
		t.Fatalf("Prev = %q,%v", got, ok)
	}
	for i := 0; i < 3; i++ {
		if got, ok := nav.Prev("ignored"); ok {
			t.Fatalf("Prev past oldest returned %q", got)
		}
		if nav.Cursor() != 2 {
			t.Fatalf("cursor moved past boundary: %d", nav.Cursor())
		}
	}
	if got, ok := nav.Next(); !ok || got != "GET b" {
		t.Fatalf("Next = %q,%v", got, ok)
	}
	if got, ok := nav.Next(); !ok || got != "" {
		t.Fatalf("Next should restore empty draft, got %q,%v", got, ok)
	}
}

func TestNavigatorDraftSavedOnlyWhenBrowsingStarts(t *testing.T) {
	nav := NewNavigator([]string{"one", "two", "three"})

	nav.Prev("my draft")
	nav.Prev("edited history text")
	nav.Next()
	got, ok := nav.Next()
	if !ok || got != "my draft" {
		t.Fatalf("draft = %q,%v want %q", got, ok, "my draft")
	}

	nav.Prev("second draft")
	got, _ = nav.Next()
	if got != "second draft" {
		t.Fatalf("draft = %q want %q", got, "second draft")
	}
}

func TestNavigatorAppendResetsCursor(t *testing.T) {
	nav := NewNavigator([]string{"one"})
	nav.Prev("")
	nav.Append("two")
	if nav.Browsing() {
		t.Fatalf("Append should reset the cursor")
	}
	if got, _ := nav.Prev(""); got != "two" {
		t.Fatalf("Prev after Append = %q want %q", got, "two")
	}
	if diff := cmp.Diff([]string{"one", "two"}, nav.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestNavigatorEmpty(t *testing.T) {
	nav := NewNavigator(nil)
	if _, ok := nav.Prev("x"); ok {
		t.Fatalf("Prev on empty log must report false")
	}
	if _, ok := nav.Next(); ok {
		t.Fatalf("Next on empty log must report false")
	}
}
