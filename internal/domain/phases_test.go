package domain

import "testing"

func TestPhaseSequence(t *testing.T) {
	// 13 фаз строго по порядку, цикл замыкается после Cleanup
	p := PhasePreparation
	for i := 0; i < int(PhaseCount)-1; i++ {
		next, wrapped := p.Next()
		if wrapped {
			t.Fatalf("Unexpected wrap at phase %s", p)
		}
		if next != p+1 {
			t.Fatalf("Expected phase %d after %s, got %d", p+1, p, next)
		}
		p = next
	}

	if p != PhaseCleanup {
		t.Fatalf("Expected to end at CLEANUP, got %s", p)
	}
	next, wrapped := p.Next()
	if !wrapped || next != PhasePreparation {
		t.Errorf("Expected wrap to PREPARATION, got %s (wrapped=%v)", next, wrapped)
	}
}

func TestCombatStateTerminal(t *testing.T) {
	if StateNotStarted.Terminal() || StateInProgress.Terminal() {
		t.Error("Expected NOT_STARTED and IN_PROGRESS to be non-terminal")
	}
	if !StateCompleted.Terminal() || !StateInterrupted.Terminal() {
		t.Error("Expected COMPLETED and INTERRUPTED to be terminal")
	}
}
