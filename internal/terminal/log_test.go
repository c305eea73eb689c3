package terminal

import (
	"context"
	"fmt"
	"testing"

	"github.com/pixil98/corvax-lab/internal/sim"
	"github.com/pixil98/go-testutil"
)

func TestFeedbackLog_Bounded(t *testing.T) {
	l := NewFeedbackLog(3)
	for i := range 5 {
		l.Publish(context.Background(), sim.Feedback{Text: fmt.Sprintf("entry %d", i)})
	}

	lines := l.Tail(80, 10)
	testutil.AssertEqual(t, "lines", len(lines), 3)
	testutil.AssertEqual(t, "oldest", lines[0].text, "entry 2")
	testutil.AssertEqual(t, "newest", lines[2].text, "entry 4")
}

func TestFeedbackLog_TailWraps(t *testing.T) {
	l := NewFeedbackLog(0)
	l.Add(sim.Feedback{Text: "Built catLair!", Color: sim.ColorSuccess})
	l.Add(sim.Feedback{Text: "Cooldown! Wait 2 min.", Color: sim.ColorError})

	lines := l.Tail(10, 2)
	testutil.AssertEqual(t, "lines", len(lines), 2)
	testutil.AssertEqual(t, "newest", lines[1].text, "min.")
	testutil.AssertEqual(t, "color", lines[1].color, sim.ColorError)
}
