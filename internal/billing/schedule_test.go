package billing

import (
	"testing"
	"time"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
)

var baseAnchor = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func daysAfter(d int) time.Time { return baseAnchor.Add(time.Duration(d) * 24 * time.Hour) }

func TestElapsedCycles(t *testing.T) {
	tests := []struct {
		name      string
		kind      enum.PlanKind
		maxCycles int
		now       time.Time
		want      int
	}{
		{"before first due date", enum.PlanKindWeekly, 4, daysAfter(6), 0},
		{"exactly first due date", enum.PlanKindWeekly, 4, daysAfter(7), 1},
		{"mid second cycle", enum.PlanKindWeekly, 4, daysAfter(10), 1},
		{"two cycles matured", enum.PlanKindWeekly, 4, daysAfter(14), 2},
		{"all cycles matured", enum.PlanKindWeekly, 4, daysAfter(28), 4},
		{"clamped beyond max", enum.PlanKindWeekly, 4, daysAfter(365), 4},
		{"monthly one cycle", enum.PlanKindMonthly, 3, daysAfter(30), 1},
		{"monthly before first due", enum.PlanKindMonthly, 3, daysAfter(29), 0},
		{"now before anchor", enum.PlanKindWeekly, 4, daysAfter(-3), 0},
		{"zero max cycles", enum.PlanKindWeekly, 0, daysAfter(100), 0},
		{"negative max cycles", enum.PlanKindWeekly, -2, daysAfter(100), 0},
		{"unknown plan kind", enum.PlanKind(-1), 4, daysAfter(100), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ElapsedCycles(baseAnchor, tt.kind, tt.maxCycles, tt.now)
			if got != tt.want {
				t.Errorf("ElapsedCycles() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestElapsedCyclesMonotone(t *testing.T) {
	prev := 0
	for d := 0; d <= 120; d++ {
		got := ElapsedCycles(baseAnchor, enum.PlanKindWeekly, 12, daysAfter(d))
		if got < prev {
			t.Fatalf("elapsed cycles decreased from %d to %d at day %d", prev, got, d)
		}
		if got > 12 {
			t.Fatalf("elapsed cycles %d exceeded max at day %d", got, d)
		}
		prev = got
	}
}

func TestNextDueDate(t *testing.T) {
	t.Run("first cycle pending", func(t *testing.T) {
		got := NextDueDate(baseAnchor, enum.PlanKindWeekly, 4, daysAfter(3))
		want := daysAfter(7)
		if got == nil || !got.Equal(want) {
			t.Fatalf("NextDueDate() = %v, want %v", got, want)
		}
	})

	t.Run("second cycle pending", func(t *testing.T) {
		got := NextDueDate(baseAnchor, enum.PlanKindWeekly, 4, daysAfter(10))
		want := daysAfter(14)
		if got == nil || !got.Equal(want) {
			t.Fatalf("NextDueDate() = %v, want %v", got, want)
		}
	})

	t.Run("all cycles matured", func(t *testing.T) {
		if got := NextDueDate(baseAnchor, enum.PlanKindWeekly, 4, daysAfter(28)); got != nil {
			t.Fatalf("NextDueDate() = %v, want nil", got)
		}
	})

	t.Run("zero max cycles", func(t *testing.T) {
		if got := NextDueDate(baseAnchor, enum.PlanKindWeekly, 0, daysAfter(1)); got != nil {
			t.Fatalf("NextDueDate() = %v, want nil", got)
		}
	})

	t.Run("monthly interval", func(t *testing.T) {
		got := NextDueDate(baseAnchor, enum.PlanKindMonthly, 3, daysAfter(45))
		want := daysAfter(60)
		if got == nil || !got.Equal(want) {
			t.Fatalf("NextDueDate() = %v, want %v", got, want)
		}
	})
}

func TestCurrentCycleWindow(t *testing.T) {
	due := daysAfter(14)
	from, to := CurrentCycleWindow(due, enum.PlanKindWeekly)
	if !from.Equal(daysAfter(7)) {
		t.Errorf("window start = %v, want %v", from, daysAfter(7))
	}
	if !to.Equal(due) {
		t.Errorf("window end = %v, want %v", to, due)
	}
}
