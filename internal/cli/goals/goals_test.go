package goals

import (
	"strings"
	"testing"

	"github.com/julianstephens/jagruk/internal/cli/clitest"
)

func TestGoalLifecycle(t *testing.T) {
	ctx, out := clitest.New(t, "")

	if err := (&GoalAddCmd{Title: "Ship v1", Type: "career", Action: "write tests"}).Run(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := (&GoalAddCmd{Title: "See the aurora", Type: "bucket"}).Run(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := (&GoalAddCmd{Title: " "}).Run(ctx); err == nil {
		t.Error("blank goal should fail")
	}

	if err := (&GoalProgressCmd{Goal: "ship v1", Progress: 40}).Run(ctx); err != nil {
		t.Fatalf("progress: %v", err)
	}
	if err := (&GoalProgressCmd{Goal: "ship v1", Progress: 140}).Run(ctx); err == nil {
		t.Error("progress above 100 should fail")
	}
	if err := (&GoalToggleCmd{Goal: "See the aurora"}).Run(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	tr, _ := ctx.Tracker()
	goals := tr.Snapshot().Goals
	if len(goals) != 2 {
		t.Fatalf("goals = %d, want 2", len(goals))
	}
	if goals[0].Progress != 40 || goals[0].Completed {
		t.Errorf("career goal = %+v", goals[0])
	}
	if !goals[1].Completed || goals[1].Progress != 0 {
		t.Errorf("bucket goal = %+v, completion must not touch progress", goals[1])
	}

	out.Reset()
	if err := (&GoalListCmd{Open: true}).Run(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Ship v1") || !strings.Contains(got, "next: write tests") || strings.Contains(got, "aurora") {
		t.Errorf("list output:\n%s", got)
	}

	if err := (&GoalRmCmd{Goal: goals[0].ID[:8]}).Run(ctx); err != nil {
		t.Fatalf("rm by id prefix: %v", err)
	}
	if n := len(tr.Snapshot().Goals); n != 1 {
		t.Errorf("goals after rm = %d, want 1", n)
	}
	if err := (&GoalRmCmd{Goal: "nope"}).Run(ctx); err == nil {
		t.Error("removing an unknown goal should fail")
	}
}
