package turn

import "testing"

func TestCostBoundaries(t *testing.T) {
	cases := []struct {
		base, speed, want int
	}{
		{6, 50, 2},
		{6, 10, 3},
		{10, 0, 10},
	}
	for _, c := range cases {
		if got := Cost(c.base, c.speed); got != c.want {
			t.Errorf("Cost(%d,%d) = %d, want %d", c.base, c.speed, got, c.want)
		}
	}
}

func TestCostNeverIncreasesWithSpeed(t *testing.T) {
	for base := 1; base <= 10; base++ {
		prev := Cost(base, 0)
		if prev < 2 {
			t.Fatalf("Cost(%d,0) = %d, want >= 2", base, prev)
		}
		for l := 1; l <= 100; l++ {
			cur := Cost(base, l)
			if cur < 2 {
				t.Fatalf("Cost(%d,%d) = %d, want >= 2", base, l, cur)
			}
			if cur > prev {
				t.Fatalf("Cost(%d,%d)=%d > Cost(%d,%d)=%d, cost increased with speed", base, l, cur, base, l-1, prev)
			}
			prev = cur
		}
	}
}

func TestQueueAtMostOneEntryPerEntity(t *testing.T) {
	q := NewQueue()
	q.Enqueue("npc-1", 100)
	q.Enqueue("npc-1", 50) // earlier tick replaces
	q.Enqueue("npc-1", 200) // later tick must not override

	if q.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", q.Len())
	}
	due := q.PollDueBefore(50)
	if len(due) != 1 || due[0] != "npc-1" {
		t.Fatalf("expected npc-1 due at 50, got %v", due)
	}
}

func TestQueueStableOrdering(t *testing.T) {
	q := NewQueue()
	q.Enqueue("a", 10)
	q.Enqueue("b", 10)
	q.Enqueue("c", 10)

	due := q.PollDueBefore(10)
	want := []string{"a", "b", "c"}
	if len(due) != 3 {
		t.Fatalf("expected 3 due, got %d", len(due))
	}
	for i, id := range due {
		if string(id) != want[i] {
			t.Fatalf("expected stable fifo order %v, got %v", want, due)
		}
	}
}

func TestQueueRemove(t *testing.T) {
	q := NewQueue()
	q.Enqueue("npc-1", 10)
	q.Remove("npc-1")
	if q.Contains("npc-1") {
		t.Fatal("expected npc-1 removed")
	}
	if due := q.PollDueBefore(100); len(due) != 0 {
		t.Fatalf("expected nothing due, got %v", due)
	}
}
