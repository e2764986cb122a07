package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestPromptDefaults(t *testing.T) {
	c := DefaultConfig()
	var out bytes.Buffer
	if err := Prompt(strings.NewReader("\n\n\n\n\n"), &out, &c); err != nil {
		t.Fatal(err)
	}
	if c.Rule != "23/3" || c.Width != 80 || c.Height != 30 || c.RandomDensity != 0.25 || c.FrameRate != 80*time.Millisecond {
		t.Fatalf("empty answers changed the config: %+v", c)
	}
	if !strings.Contains(out.String(), "Rule variant (default: 23/3)") {
		t.Fatalf("rule question missing:\n%s", out.String())
	}
}

func TestPromptAnswers(t *testing.T) {
	c := DefaultConfig()
	var out bytes.Buffer
	in := strings.NewReader("16/6\n40\n20\n0.5\n0.2\n")
	if err := Prompt(in, &out, &c); err != nil {
		t.Fatal(err)
	}
	if c.Rule != "16/6" || c.Width != 40 || c.Height != 20 || c.RandomDensity != 0.5 || c.FrameRate != 200*time.Millisecond {
		t.Fatalf("answers not applied: %+v", c)
	}
}

func TestPromptRetriesInvalid(t *testing.T) {
	c := DefaultConfig()
	var out bytes.Buffer
	in := strings.NewReader("2x/3\nhighlife\n-5\n0\n12\n\n2\n0.9\n")
	if err := Prompt(in, &out, &c); err != nil {
		t.Fatal(err)
	}
	if c.Rule != "highlife" || c.Width != 12 || c.Height != 30 || c.RandomDensity != 0.9 {
		t.Fatalf("retries not applied: %+v", c)
	}
	if n := strings.Count(out.String(), "Invalid value"); n != 4 {
		t.Fatalf("reported %d invalid values, want 4:\n%s", n, out.String())
	}
}

func TestPromptStopsAtEOF(t *testing.T) {
	c := DefaultConfig()
	if err := Prompt(strings.NewReader("conway\n50"), &bytes.Buffer{}, &c); err != nil {
		t.Fatal(err)
	}
	if c.Rule != "conway" || c.Width != 50 || c.Height != 30 {
		t.Fatalf("unexpected config after EOF: %+v", c)
	}
}
