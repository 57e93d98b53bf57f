package httpapi

import "testing"

func TestIsHandlerSpan(t *testing.T) {
	cases := map[string]bool{
		"httpapi.Handler.SimulateTransfer": true,
		"httpapi.Handler.ListPlayers":      true,
		"httpapi.RequestLogging":           false,
		"httpapi.writeError":               false,
		"usecase.SimulationService":        false,
	}
	for name, want := range cases {
		if got := isHandlerSpan(name); got != want {
			t.Fatalf("isHandlerSpan(%q) = %v, want %v", name, got, want)
		}
	}
}
