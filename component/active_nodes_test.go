package component

import "testing"

func TestActiveNodes(t *testing.T) {
	attack := HashNodeName("Attack")
	idle := HashNodeName("Idle")

	tests := []struct {
		name  string
		steps func(a *ActiveNodes)
		check func(t *testing.T, a *ActiveNodes)
	}{
		{
			name:  "enter_marks_active",
			steps: func(a *ActiveNodes) { a.Enter(attack) },
			check: func(t *testing.T, a *ActiveNodes) {
				if !a.IsActive(attack) {
					t.Fatalf("expected Attack active")
				}
				if a.IsActive(idle) {
					t.Fatalf("did not expect Idle active")
				}
			},
		},
		{
			name: "enter_is_idempotent",
			steps: func(a *ActiveNodes) {
				a.Enter(attack)
				a.Enter(attack)
			},
			check: func(t *testing.T, a *ActiveNodes) {
				if a.Len() != 1 {
					t.Fatalf("expected 1 active node, got %d", a.Len())
				}
			},
		},
		{
			name: "exit_removes",
			steps: func(a *ActiveNodes) {
				a.Enter(attack)
				a.Exit(attack)
			},
			check: func(t *testing.T, a *ActiveNodes) {
				if a.IsActive(attack) {
					t.Fatalf("expected Attack inactive after exit")
				}
			},
		},
		{
			name:  "exit_absent_is_noop",
			steps: func(a *ActiveNodes) { a.Exit(attack) },
			check: func(t *testing.T, a *ActiveNodes) {
				if a.Len() != 0 {
					t.Fatalf("expected empty set, got %d", a.Len())
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewActiveNodes()
			tc.steps(a)
			tc.check(t, a)
		})
	}
}
