package ingest

import "testing"

func TestExecutionContext(t *testing.T) {
	ec := NewExecutionContext()

	if _, ok := ec.Get("missing"); ok {
		t.Error("expected missing key")
	}
	if got := ec.GetInt("missing", 7); got != 7 {
		t.Errorf("expected default 7, got %d", got)
	}

	ec.Put("keyword", "golang")
	ec.PutInt("page", 3)
	ec.PutInt64("log_id", 42)

	if v, _ := ec.Get("keyword"); v != "golang" {
		t.Errorf("unexpected value %q", v)
	}
	if got := ec.GetInt("page", 0); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := ec.GetInt64("log_id", 0); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}

	// Non-numeric values fall back to the default.
	ec.Put("page", "garbage")
	if got := ec.GetInt("page", 9); got != 9 {
		t.Errorf("expected default on garbage, got %d", got)
	}

	ec.Remove("keyword")
	if _, ok := ec.Get("keyword"); ok {
		t.Error("expected removed key")
	}

	snapshot := ec.Snapshot()
	snapshot["log_id"] = "mutated"
	if v, _ := ec.Get("log_id"); v != "42" {
		t.Error("snapshot mutation must not affect the context")
	}

	restored := RestoreExecutionContext(map[string]string{"page": "5"})
	if got := restored.GetInt("page", 0); got != 5 {
		t.Errorf("expected restored 5, got %d", got)
	}
}
