package dropscript

import (
	"strings"
	"testing"
)

func testView(index int) TokenView {
	return TokenView{
		Index:      index,
		UniqueID:   "founders-0007",
		Rarity:     "Rare",
		SeedDigest: "5b0c3d6e",
		Traits:     map[string]string{"genre": "Fantasy", "archetype": "Familiar"},
	}
}

func mustCompile(t *testing.T, source string) *Policy {
	t.Helper()
	p, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return p
}

func TestCompileRequiresOnToken(t *testing.T) {
	if _, err := Compile("var x = 1;"); err == nil {
		t.Fatal("expected error for missing onToken()")
	}
	if _, err := Compile("onToken = 3;"); err == nil {
		t.Fatal("expected error for non-function onToken")
	}
	if _, err := Compile("onToken = function(t) { return KEEP }"); err != nil {
		t.Fatalf("valid policy failed to compile: %v", err)
	}
}

func TestCompileRejectsBrokenSource(t *testing.T) {
	_, err := Compile("onToken = function(t { return KEEP }")
	if err == nil {
		t.Fatal("expected error for a syntax error")
	}
}

func TestEvaluateVerdicts(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Verdict
	}{
		{"keep constant", "return KEEP", Keep},
		{"skip constant", "return SKIP", Skip},
		{"stop constant", "return STOP", Stop},
		{"keep string", `return "keep"`, Keep},
		{"skip string", `return "skip"`, Skip},
		{"stop string upper", `return "STOP"`, Stop},
		{"true keeps", "return true", Keep},
		{"false skips", "return false", Skip},
		{"no return keeps", "", Keep},
		{"null keeps", "return null", Keep},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := mustCompile(t, "onToken = function(t) { "+tc.body+" }")
			got, err := p.Evaluate(testView(0))
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("verdict = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestEvaluateRejectsUnknownVerdict(t *testing.T) {
	for _, body := range []string{`return "maybe"`, "return 7", "return {}"} {
		p := mustCompile(t, "onToken = function(t) { "+body+" }")
		if _, err := p.Evaluate(testView(0)); err == nil {
			t.Errorf("script body %q: expected verdict error", body)
		}
	}
}

func TestEvaluateSeesTokenFields(t *testing.T) {
	p := mustCompile(t, `
		onToken = function(t) {
			if (t.index !== 7) return SKIP
			if (t.uniqueId !== "founders-0007") return SKIP
			if (t.rarity !== "Rare") return SKIP
			if (t.seedDigest !== "5b0c3d6e") return SKIP
			if (t.traits.genre !== "Fantasy") return SKIP
			if (t.traits.archetype !== "Familiar") return SKIP
			return KEEP
		}
	`)

	got, err := p.Evaluate(testView(7))
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if got != Keep {
		t.Errorf("verdict for matching token = %s, want keep", got)
	}

	got, err = p.Evaluate(testView(3))
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if got != Skip {
		t.Errorf("verdict for mismatched index = %s, want skip", got)
	}
}

func TestSandboxBlocksEscapes(t *testing.T) {
	p := mustCompile(t, `
		onToken = function(t) {
			if (typeof require !== "undefined") return SKIP
			if (typeof fetch !== "undefined") return SKIP
			if (typeof XMLHttpRequest !== "undefined") return SKIP
			if (typeof eval !== "undefined") return SKIP
			if (typeof Function !== "undefined") return SKIP
			if (typeof Date !== "undefined") return SKIP
			if (typeof Math.random !== "undefined") return SKIP
			return KEEP
		}
	`)
	got, err := p.Evaluate(testView(0))
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if got != Keep {
		t.Error("a blocked global is still reachable from the script")
	}
}

func TestEvaluateCapturesLogs(t *testing.T) {
	p := mustCompile(t, `
		onToken = function(t) {
			log("reviewing", t.index)
			return KEEP
		}
	`)
	for i := 0; i < 3; i++ {
		if _, err := p.Evaluate(testView(i)); err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
	}

	logs := p.GetLogs()
	if len(logs) != 3 {
		t.Fatalf("len(logs) = %d, want 3", len(logs))
	}
	if logs[0].Message != "reviewing 0" {
		t.Errorf("first log = %q, want %q", logs[0].Message, "reviewing 0")
	}
	if logs[2].Message != "reviewing 2" {
		t.Errorf("last log = %q, want %q", logs[2].Message, "reviewing 2")
	}

	p.ClearLogs()
	if got := len(p.GetLogs()); got != 0 {
		t.Errorf("len(logs) after clear = %d, want 0", got)
	}
}

func TestEvaluateInterruptsRunawayScript(t *testing.T) {
	p := mustCompile(t, "onToken = function(t) { for (;;) {} }")
	_, err := p.Evaluate(testView(0))
	if err == nil {
		t.Fatal("expected timeout error for an endless loop")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error = %q, want a timeout", err)
	}
}

func TestVerdictString(t *testing.T) {
	if got := Keep.String(); got != "keep" {
		t.Errorf("Keep.String() = %q, want %q", got, "keep")
	}
	if got := Verdict(9).String(); got != "Verdict(9)" {
		t.Errorf("Verdict(9).String() = %q, want %q", got, "Verdict(9)")
	}
	if Verdict(9).Valid() {
		t.Error("Verdict(9) should not be valid")
	}
}
