package session

import "testing"

func TestPhaseString(t *testing.T) {
	cases := map[Phase]string{
		PhaseHandshake:      "handshake",
		PhaseStatus:         "status",
		PhaseLogin:          "login",
		PhaseConfiguration:  "configuration",
		PhasePlay:           "play",
		PhaseClosed:         "closed",
		Phase(99):           "unknown",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
