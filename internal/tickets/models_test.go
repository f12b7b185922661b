package tickets

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"open", "in_progress", "pending", "resolved", "closed"} {
		if !ValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "OPEN", "done", "working"} {
		if ValidStatus(s) {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestValidPriority(t *testing.T) {
	for _, p := range []string{"low", "medium", "high", "critical"} {
		if !ValidPriority(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}
	for _, p := range []string{"", "p1", "urgent", "High"} {
		if ValidPriority(p) {
			t.Errorf("expected %q to be rejected", p)
		}
	}
}
