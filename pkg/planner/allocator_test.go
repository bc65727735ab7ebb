package planner

import (
	"reflect"
	"testing"

	"github.com/arnavshah/study-planner-go/pkg/models"
)

func sumMinutes(rows []models.DailyAllocation) int {
	sum := 0
	for _, r := range rows {
		sum += r.Minutes
	}
	return sum
}

func TestAllocateDay_SingleAutoSubject(t *testing.T) {
	subjects := []Subject{{Name: "Math", Importance: 5}}
	got := AllocateDay(monday, 240, subjects, nil, Tuning{ImportanceStrength: 1, UrgencyStrength: 1.2})
	if len(got) != 1 || got[0].Minutes != 240 {
		t.Fatalf("Expected Math to take the whole 240 minutes, got %+v", got)
	}
}

func TestAllocateDay_ZeroCap(t *testing.T) {
	subjects := []Subject{{Name: "Math", Importance: 5}}
	if got := AllocateDay(monday, 0, subjects, nil, Tuning{}); len(got) != 0 {
		t.Errorf("Expected no allocation, got %+v", got)
	}
}

func TestAllocateDay_RoundingNeverExceedsCap(t *testing.T) {
	subjects := []Subject{
		{Name: "A", Importance: 3},
		{Name: "B", Importance: 3},
		{Name: "C", Importance: 3},
	}
	got := AllocateDay(monday, 100, subjects, nil, Tuning{})
	if sum := sumMinutes(got); sum > 100 {
		t.Errorf("Expected at most 100 minutes, got %d", sum)
	}
	for _, r := range got {
		if r.Minutes%Granularity != 0 {
			t.Errorf("Expected multiples of 5, got %d for %s", r.Minutes, r.Subject)
		}
	}
	if len(got) != 3 {
		t.Errorf("Expected all three subjects to get time, got %+v", got)
	}
}

func TestAllocateDay_FixedShareAndRemainder(t *testing.T) {
	target := 600
	subjects := []Subject{
		{Name: "Social", Importance: 2, TargetMinutes: &target},
		{Name: "English", Importance: 4},
	}
	eligible := map[string]int{"Social": 2400}

	got := AllocateDay(monday, 240, subjects, eligible, Tuning{})
	if len(got) != 2 {
		t.Fatalf("Expected two rows, got %+v", got)
	}
	if got[0].Subject != "Social" || got[0].Minutes != 60 {
		t.Errorf("Expected Social 60, got %+v", got[0])
	}
	if got[1].Subject != "English" || got[1].Minutes != 180 {
		t.Errorf("Expected English 180, got %+v", got[1])
	}
}

func TestAllocateDay_FixedSharesScaledToCap(t *testing.T) {
	big := 10000
	subjects := []Subject{
		{Name: "A", Importance: 3, TargetMinutes: &big},
		{Name: "B", Importance: 3, TargetMinutes: &big},
		{Name: "Auto", Importance: 5},
	}
	eligible := map[string]int{"A": 240, "B": 240}

	got := AllocateDay(monday, 240, subjects, eligible, Tuning{})
	if sum := sumMinutes(got); sum != 240 {
		t.Errorf("Expected the day to be filled exactly, got %d", sum)
	}
	for _, r := range got {
		if r.Subject == "Auto" {
			t.Errorf("Expected no room left for auto subjects, got %+v", r)
		}
	}
}

func TestAllocateDay_NoAllocationAfterExam(t *testing.T) {
	target := 300
	subjects := []Subject{
		{Name: "Fixed", Importance: 3, TargetMinutes: &target, ExamDate: examIn(-1)},
		{Name: "Auto", Importance: 3, ExamDate: examIn(-2)},
	}
	got := AllocateDay(monday, 240, subjects, map[string]int{"Fixed": 480}, Tuning{})
	if len(got) != 0 {
		t.Errorf("Expected nothing after exams, got %+v", got)
	}
}

func TestEligibleCapTotals(t *testing.T) {
	target := 60
	subjects := []Subject{
		{Name: "Fixed", TargetMinutes: &target, ExamDate: examIn(1)},
		{Name: "Auto"},
	}
	caps := []DayCap{
		{Date: monday, Minutes: 100},
		{Date: monday.AddDays(1), Minutes: 50},
		{Date: monday.AddDays(2), Minutes: 70},
	}
	totals := EligibleCapTotals(caps, subjects)
	if totals["Fixed"] != 150 {
		t.Errorf("Expected 150, got %d", totals["Fixed"])
	}
	if _, ok := totals["Auto"]; ok {
		t.Error("Expected auto subjects to be skipped")
	}
}

func TestAllocateDay_SameResultEveryRun(t *testing.T) {
	var subjects []Subject
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		subjects = append(subjects, Subject{Name: name, Importance: i%5 + 1, ExamDate: examIn(i + 1)})
	}
	tuning := Tuning{ImportanceStrength: 1.3, UrgencyStrength: 0.7}

	first := AllocateDay(monday, 235, subjects, nil, tuning)
	for i := 0; i < 50; i++ {
		got := AllocateDay(monday, 235, subjects, nil, tuning)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("Run %d differs: %+v vs %+v", i, got, first)
		}
	}
}
