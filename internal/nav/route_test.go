package nav

import "testing"

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Route
	}{
		{
			name: "already canonical",
			raw:  "/tasks",
			want: RouteTasks,
		},
		{
			name: "trailing slash",
			raw:  "/documents/",
			want: RouteDocuments,
		},
		{
			name: "uppercase",
			raw:  "/DocVault",
			want: RouteDocVault,
		},
		{
			name: "query string",
			raw:  "/tasks?filter=today",
			want: RouteTasks,
		},
		{
			name: "fragment",
			raw:  "/scan#viewfinder",
			want: RouteScan,
		},
		{
			name: "missing leading slash",
			raw:  "home",
			want: RouteHome,
		},
		{
			name: "empty",
			raw:  "",
			want: Route("/"),
		},
		{
			name: "bare root",
			raw:  "/",
			want: Route("/"),
		},
		{
			name: "surrounding whitespace",
			raw:  "  /profile  ",
			want: RouteProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRoute(tt.raw); got != tt.want {
				t.Errorf("NormalizeRoute(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMap_Validate(t *testing.T) {
	if err := DefaultMap().Validate(); err != nil {
		t.Fatalf("DefaultMap().Validate() = %v", err)
	}

	broken := Map{
		RouteHome: {Right: Route("/nowhere")},
	}
	if err := broken.Validate(); err == nil {
		t.Error("Validate() should reject a target missing from the map")
	}
}

func TestMap_Neighbors(t *testing.T) {
	m := DefaultMap()

	n, ok := m.Neighbors(RouteDocuments)
	if !ok {
		t.Fatal("documents should be in the default map")
	}
	if n.Right != RouteDocVault {
		t.Errorf("documents right neighbor = %q, want %q", n.Right, RouteDocVault)
	}
	if n.Left != RouteTasks {
		t.Errorf("documents left neighbor = %q, want %q", n.Left, RouteTasks)
	}

	if _, ok := m.Neighbors(RouteScan); ok {
		t.Error("scan should not be in the swipe map")
	}

	profile, ok := m.Neighbors(RouteProfile)
	if !ok {
		t.Fatal("profile should be in the default map")
	}
	if profile.Left != "" || profile.Right != "" {
		t.Error("profile should be terminal in both directions")
	}
}
