package model

import "testing"

func TestIDSetAddIdempotent(t *testing.T) {
	s := IDSet{"P1"}
	s = s.Add("T1")
	s = s.Add("T1")
	s = s.Add("P1")
	if len(s) != 2 {
		t.Errorf("set size = %d, want 2", len(s))
	}
	if !s.Contains("P1") || !s.Contains("T1") {
		t.Error("set should contain both ids")
	}
	if s.Contains("X1") {
		t.Error("set should not contain unknown id")
	}
}

func TestIDSetValueNilAsEmptyArray(t *testing.T) {
	var s IDSet
	v, err := s.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v != "[]" {
		t.Errorf("nil set serialized as %v, want []", v)
	}
}

func TestIDSetScan(t *testing.T) {
	var s IDSet
	if err := s.Scan([]byte(`["P1","T1"]`)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(s) != 2 || !s.Contains("P1") {
		t.Errorf("scanned set = %v", s)
	}

	var empty IDSet
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("Scan nil failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("nil scans to empty set, got %v", empty)
	}

	var bad IDSet
	if err := bad.Scan(123); err == nil {
		t.Error("scan of unsupported type should fail")
	}
}

func TestConversationUuidDeterministic(t *testing.T) {
	a := ConversationUuid("S1", "P1", "T1")
	b := ConversationUuid("S1", "P1", "T1")
	if a != b {
		t.Errorf("same triple should derive same uuid: %s vs %s", a, b)
	}
	if len(a) != 20 || a[0] != 'C' {
		t.Errorf("uuid format unexpected: %s", a)
	}
	if c := ConversationUuid("S2", "P1", "T1"); c == a {
		t.Error("different triple should derive different uuid")
	}
	// 三元组字段间有分隔，拼接歧义不应撞车
	if d := ConversationUuid("S1P", "1", "T1"); d == a {
		t.Error("field boundaries should be unambiguous")
	}
}
