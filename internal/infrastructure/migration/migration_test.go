package migration

import "testing"

func TestMigrationsOrdered(t *testing.T) {
	ms := Migrations()
	if len(ms) == 0 || ms[0].Name != "create_render_jobs" {
		t.Fatalf("table creation must run first: %+v", ms)
	}
	seen := map[string]bool{}
	for _, m := range ms {
		if m.Up == nil {
			t.Fatalf("migration %s has no Up step", m.Name)
		}
		if seen[m.Name] {
			t.Fatalf("duplicate migration %s", m.Name)
		}
		seen[m.Name] = true
	}
}
