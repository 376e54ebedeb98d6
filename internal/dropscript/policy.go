// Package dropscript runs operator-supplied review scripts over batch drops.
// A policy is a sandboxed JavaScript program defining onToken(token); for each
// generated token it returns KEEP, SKIP or STOP. Reviews are reproducible: the
// runtime exposes no clock, no randomness and no I/O.
package dropscript

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// Verdict is a policy's ruling on a single token.
type Verdict int

const (
	// Keep admits the token into the drop.
	Keep Verdict = iota
	// Skip leaves the token out and moves on to the next one.
	Skip
	// Stop leaves the token out and ends the review early.
	Stop
)

var verdictNames = map[Verdict]string{
	Keep: "keep",
	Skip: "skip",
	Stop: "stop",
}

func (v Verdict) String() string {
	if name, ok := verdictNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// Valid reports whether v is one of the three rulings.
func (v Verdict) Valid() bool {
	_, ok := verdictNames[v]
	return ok
}

// TokenView is the read-only token shape handed to onToken.
type TokenView struct {
	Index      int
	UniqueID   string
	Rarity     string
	SeedDigest string
	Traits     map[string]string
}

// LogEntry is a single log message from the script.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

const (
	compileTimeout = 2 * time.Second
	callTimeout    = 1 * time.Second

	maxLogEntries = 500
)

// Policy wraps a goja runtime holding a compiled review script. Evaluate is
// serialized internally, so one Policy can review a whole drop.
type Policy struct {
	runtime *goja.Runtime
	mu      sync.Mutex

	// Log buffer filled by the script's log() calls.
	logs   []LogEntry
	logsMu sync.Mutex
}

// Compile runs the policy source in a fresh sandboxed runtime and checks that
// it defined onToken(token).
func Compile(source string) (*Policy, error) {
	p := &Policy{runtime: goja.New()}
	p.injectGlobals()

	if err := p.runWithTimeout(compileTimeout, func() error {
		p.mu.Lock()
		defer p.mu.Unlock()
		if _, err := p.runtime.RunString(source); err != nil {
			return fmt.Errorf("policy script error: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	fn := p.runtime.Get("onToken")
	if fn == nil || goja.IsUndefined(fn) || goja.IsNull(fn) {
		return nil, fmt.Errorf("policy script does not define onToken(token)")
	}
	if _, ok := goja.AssertFunction(fn); !ok {
		return nil, fmt.Errorf("onToken is not a function")
	}
	return p, nil
}

// injectGlobals registers log, console.log and the verdict constants.
func (p *Policy) injectGlobals() {
	// log(...args) appends to the log buffer.
	p.runtime.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		msg := strings.Join(parts, " ")

		p.logsMu.Lock()
		if len(p.logs) >= maxLogEntries {
			p.logs = p.logs[1:]
		}
		p.logs = append(p.logs, LogEntry{Time: time.Now(), Message: msg})
		p.logsMu.Unlock()

		return goja.Undefined()
	})

	// console.log is an alias for log.
	console := p.runtime.NewObject()
	console.Set("log", p.runtime.Get("log"))
	p.runtime.Set("console", console)

	// Verdict constants returned from onToken.
	p.runtime.Set("KEEP", int(Keep))
	p.runtime.Set("SKIP", int(Skip))
	p.runtime.Set("STOP", int(Stop))

	// Block dangerous globals.
	p.runtime.Set("require", goja.Undefined())
	p.runtime.Set("fetch", goja.Undefined())
	p.runtime.Set("XMLHttpRequest", goja.Undefined())
	p.runtime.Set("eval", goja.Undefined())
	p.runtime.Set("Function", goja.Undefined())

	// A review must rule the same way on every rerun: no clock, no randomness.
	p.runtime.Set("Date", goja.Undefined())
	if math := p.runtime.Get("Math"); math != nil && !goja.IsUndefined(math) {
		math.ToObject(p.runtime).Set("random", goja.Undefined())
	}
}

// Evaluate hands one token to onToken and maps the returned value onto a
// Verdict. Returning nothing keeps the token; an unrecognized value is an
// error rather than a silent keep.
func (p *Policy) Evaluate(view TokenView) (Verdict, error) {
	var out goja.Value
	err := p.runWithTimeout(callTimeout, func() error {
		p.mu.Lock()
		defer p.mu.Unlock()

		fn := p.runtime.Get("onToken")
		if fn == nil || goja.IsUndefined(fn) || goja.IsNull(fn) {
			return fmt.Errorf("onToken(token) is not defined")
		}
		callable, ok := goja.AssertFunction(fn)
		if !ok {
			return fmt.Errorf("onToken is not a function")
		}

		result, err := callable(goja.Undefined(), p.tokenValue(view))
		if err != nil {
			return fmt.Errorf("onToken error: %w", err)
		}
		out = result
		return nil
	})
	if err != nil {
		return Keep, err
	}
	return verdictFromValue(out)
}

// tokenValue builds the JS object a script sees for one token.
func (p *Policy) tokenValue(view TokenView) goja.Value {
	token := p.runtime.NewObject()
	token.Set("index", view.Index)
	token.Set("uniqueId", view.UniqueID)
	token.Set("rarity", view.Rarity)
	token.Set("seedDigest", view.SeedDigest)
	traits := p.runtime.NewObject()
	for k, v := range view.Traits {
		traits.Set(k, v)
	}
	token.Set("traits", traits)
	return token
}

func verdictFromValue(v goja.Value) (Verdict, error) {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return Keep, nil
	}
	switch ev := v.Export().(type) {
	case int64:
		if vd := Verdict(ev); vd.Valid() {
			return vd, nil
		}
	case float64:
		if iv := int64(ev); float64(iv) == ev {
			if vd := Verdict(iv); vd.Valid() {
				return vd, nil
			}
		}
	case string:
		switch strings.ToLower(ev) {
		case "keep":
			return Keep, nil
		case "skip":
			return Skip, nil
		case "stop":
			return Stop, nil
		}
	case bool:
		if ev {
			return Keep, nil
		}
		return Skip, nil
	}
	return Keep, fmt.Errorf("onToken returned %s, want KEEP, SKIP or STOP", v.String())
}

// GetLogs returns a copy of the current log buffer.
func (p *Policy) GetLogs() []LogEntry {
	p.logsMu.Lock()
	defer p.logsMu.Unlock()
	out := make([]LogEntry, len(p.logs))
	copy(out, p.logs)
	return out
}

// ClearLogs clears the log buffer.
func (p *Policy) ClearLogs() {
	p.logsMu.Lock()
	defer p.logsMu.Unlock()
	p.logs = p.logs[:0]
}

func (p *Policy) runWithTimeout(timeout time.Duration, fn func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		// Interrupt a runaway script execution.
		p.runtime.Interrupt("script execution timeout")
		select {
		case err := <-done:
			if err != nil {
				return fmt.Errorf("script timed out: %w", err)
			}
			return fmt.Errorf("script timed out")
		case <-time.After(200 * time.Millisecond):
			return fmt.Errorf("script timed out")
		}
	}
}
