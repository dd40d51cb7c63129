package features

import "testing"

func TestEnabled(t *testing.T) {
	if !Enabled(nil, PersistHistory) {
		t.Fatalf("persist_history should default on")
	}
	if Enabled(nil, Banner) {
		t.Fatalf("banner should default off")
	}
	if !Enabled(map[string]bool{Banner: true}, Banner) {
		t.Fatalf("override should enable banner")
	}
	if Enabled(map[string]bool{PersistHistory: false}, PersistHistory) {
		t.Fatalf("override should disable persist_history")
	}
	if Enabled(nil, "nope") || IsKnown("nope") {
		t.Fatalf("unknown feature must be off and unknown")
	}
}
