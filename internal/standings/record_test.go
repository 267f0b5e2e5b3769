package standings

import "testing"

func TestRecordPct(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want float64
	}{
		{"empty record is .500", Record{}, 0.5},
		{"undefeated", Record{Wins: 3}, 1},
		{"winless", Record{Losses: 4}, 0},
		{"five and three", Record{Wins: 5, Losses: 3}, 0.625},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.Pct(); got != tt.want {
				t.Errorf("Pct() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecordIncrementBy(t *testing.T) {
	var r Record
	r.IncrementBy(1)
	r.IncrementBy(1)
	r.IncrementBy(-1)
	r.IncrementBy(0)
	r.IncrementBy(-3)
	if r.Wins != 2 || r.Losses != 4 {
		t.Errorf("record = %d-%d, want 2-4", r.Wins, r.Losses)
	}
	if r.Played() != 6 {
		t.Errorf("Played() = %d, want 6", r.Played())
	}
}

func TestRecordAddSub(t *testing.T) {
	a := Record{Wins: 3, Losses: 1}
	b := Record{Wins: 1, Losses: 2}

	if got := a.Add(b); got != (Record{Wins: 4, Losses: 3}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Record{Wins: 2, Losses: -1}) {
		t.Errorf("Sub = %+v", got)
	}
	if a != (Record{Wins: 3, Losses: 1}) {
		t.Errorf("Add/Sub mutated receiver: %+v", a)
	}
}
