package naadsm

import "testing"

func TestPrioritySet_IndexForProductionOuter(t *testing.T) {
	p := NewPrioritySet(3, 2, true, TimeWaitingThird)
	if idx := p.IndexFor(1, 1); idx != 3 {
		t.Errorf(UnequalIntParameterError, "IndexFor(1,1) prodOuter", 3, idx)
	}
}

func TestPrioritySet_IndexForReasonOuter(t *testing.T) {
	p := NewPrioritySet(3, 2, false, TimeWaitingThird)
	if idx := p.IndexFor(1, 1); idx != 4 {
		t.Errorf(UnequalIntParameterError, "IndexFor(1,1) reasonOuter", 4, idx)
	}
}

func TestPrioritySet_StrictOrderPopsLowestSubQueueFirst(t *testing.T) {
	p := NewPrioritySet(2, 1, true, TimeWaitingThird)
	p.Push(1, request{herdID: 10, enqueueDay: 5, priority: 2})
	p.Push(0, request{herdID: 20, enqueueDay: 1, priority: 1})

	req, _, ok := p.PopNext()
	if !ok {
		t.Fatal("expected a pending request")
	}
	if req.herdID != 20 {
		t.Errorf(UnequalIntParameterError, "popped herd", 20, req.herdID)
	}
}

func TestPrioritySet_GlobalOldestIgnoresSubQueueOrder(t *testing.T) {
	p := NewPrioritySet(2, 1, true, TimeWaitingFirst)
	p.Push(1, request{herdID: 10, enqueueDay: 1, priority: 2})
	p.Push(0, request{herdID: 20, enqueueDay: 5, priority: 1})

	req, _, ok := p.PopNext()
	if !ok {
		t.Fatal("expected a pending request")
	}
	if req.herdID != 10 {
		t.Errorf(UnequalIntParameterError, "oldest-first popped herd", 10, req.herdID)
	}
}

func TestPrioritySet_RemoveByBackReference(t *testing.T) {
	p := NewPrioritySet(1, 1, true, TimeWaitingThird)
	loc := p.Push(0, request{herdID: 1})
	p.Remove(loc)
	if _, _, ok := p.PopNext(); ok {
		t.Error("expected sub-queue to be empty after Remove")
	}
}

func TestPrioritySet_PopNextReturnsMatchingElement(t *testing.T) {
	p := NewPrioritySet(1, 1, true, TimeWaitingThird)
	locA := p.Push(0, request{herdID: 1, enqueueDay: 1})
	locB := p.Push(0, request{herdID: 1, enqueueDay: 2})

	_, elem, ok := p.PopNext()
	if !ok {
		t.Fatal("expected a pending request")
	}
	if elem != locA.elem {
		t.Error("expected PopNext to return the FIFO-front element's pointer")
	}
	if elem == locB.elem {
		t.Error("PopNext must not return the second, still-queued request's element")
	}
}

func TestPrioritySet_ShouldReplaceTimeWaitingThird(t *testing.T) {
	p := NewPrioritySet(2, 1, true, TimeWaitingThird)
	existing := request{priority: 2}
	lower := request{priority: 1}
	higher := request{priority: 3}
	if !p.ShouldReplace(existing, lower) {
		t.Error("expected a lower-priority candidate to replace under TimeWaitingThird")
	}
	if p.ShouldReplace(existing, higher) {
		t.Error("expected a higher-priority candidate not to replace under TimeWaitingThird")
	}
}
