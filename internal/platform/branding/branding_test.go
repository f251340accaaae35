package branding

import "testing"

func TestAppName(t *testing.T) {
	if AppName != "Orbnet" {
		t.Fatalf("expected app name Orbnet, got %q", AppName)
	}
}
