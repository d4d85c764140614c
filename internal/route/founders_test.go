package route

import "testing"

func TestRequiresFoundersForSlashRoute(t *testing.T) {
	tests := []struct {
		slash string
		want  bool
	}{
		{slash: "MyCarMindATO/Driver", want: false},
		{slash: "/mycarmindato/driver/", want: false},
		{slash: "MyCarMindATO/Traveler", want: false},
		{slash: "MyCarMindATO/Trucker", want: true},
		{slash: "NAMC", want: false},
		{slash: "/NAMC/", want: false},
		{slash: "", want: false},
	}

	for _, tt := range tests {
		if got := RequiresFoundersForSlashRoute(tt.slash); got != tt.want {
			t.Errorf("RequiresFoundersForSlashRoute(%q) = %v, want %v", tt.slash, got, tt.want)
		}
	}
}

func TestGate_ExtraFreeRoutes(t *testing.T) {
	g := NewGate("MyCarMindATO/Trucker", "  ")

	if g.RequiresFounders("MyCarMindATO/Trucker") {
		t.Error("extra free route should not require founders")
	}
	if g.RequiresFounders("MyCarMindATO/Driver") {
		t.Error("built-in free route should stay free")
	}
	if !g.RequiresFounders("MyCarMindATO/Fleet") {
		t.Error("unlisted sub-route should require founders")
	}
}

func TestGate_NilUsesDefaults(t *testing.T) {
	var g *Gate
	if g.RequiresFounders("MyCarMindATO/Driver") {
		t.Error("nil gate should allow built-in free routes")
	}
	if !g.RequiresFounders("MyCarMindATO/Trucker") {
		t.Error("nil gate should gate unlisted sub-routes")
	}
}
