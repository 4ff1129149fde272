package config

import "testing"

func TestSplitOriginsDefaults(t *testing.T) {
	out := splitOrigins("")
	if len(out) != 2 {
		t.Fatalf("expected 2 default origins, got %d", len(out))
	}
	if out[0] != "https://landok.netlify.app" {
		t.Errorf("unexpected first default origin: %s", out[0])
	}
}

func TestSplitOriginsList(t *testing.T) {
	out := splitOrigins(" https://a.example , http://b.example ,, ")
	if len(out) != 2 {
		t.Fatalf("expected 2 origins, got %d: %v", len(out), out)
	}
	if out[0] != "https://a.example" || out[1] != "http://b.example" {
		t.Errorf("origins not trimmed: %v", out)
	}
}
