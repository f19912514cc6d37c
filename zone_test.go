package naadsm

import "testing"

func TestZoneFocusModule_PendingActivatesAtMidnight(t *testing.T) {
	z := NewZoneFocusModule()
	z.Run(Event{Tag: RequestForZoneFocus, Herd: 7, Day: 2, Reason: "TraceBack"}, nil, nil)

	if !z.HasPendingActions() {
		t.Error("expected a freshly requested focus point to count as pending")
	}
	if len(z.Active()) != 0 {
		t.Error("expected no active focus points before the next Midnight")
	}

	z.Run(Event{Tag: Midnight, Day: 3}, nil, nil)

	if z.HasPendingActions() {
		t.Error("expected pending to clear once Midnight promotes it to active")
	}
	active := z.Active()
	if len(active) != 1 || active[0].HerdID != 7 || active[0].Reason != "TraceBack" {
		t.Fatal("expected the focus point to survive into the active set unchanged")
	}
}

func TestZoneFocusModule_ResetClearsBothSets(t *testing.T) {
	z := NewZoneFocusModule()
	z.Run(Event{Tag: RequestForZoneFocus, Herd: 1, Day: 1}, nil, nil)
	z.Run(Event{Tag: Midnight, Day: 2}, nil, nil)
	z.Reset()

	if len(z.Active()) != 0 || z.HasPendingActions() {
		t.Error("expected Reset to clear both pending and active focus points")
	}
}
