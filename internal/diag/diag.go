// Package diag collects compiler diagnostics across concurrent pipeline
// stages: a span-aware diagnostics bag shared by the lexer, parser,
// semantizer and code generator.
package diag

import (
	"fmt"
	"sync"
)

// Span locates a lexeme or AST node in the original source text. Line and
// Column are 1-based. LineSlice holds the full source line the span is on,
// for use in error reports that quote the offending line.
type Span struct {
	Line      int
	Column    int
	Slice     string
	LineSlice string
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Join returns a span that covers both a and b, taking the line/line slice
// of whichever starts first. Used by the parser to build spans for
// desugared or parenthesized nodes that have no single lexeme of their own.
func Join(a, b Span) Span {
	if b.Line < a.Line || (b.Line == a.Line && b.Column < a.Column) {
		a, b = b, a
	}
	end := b.Column - a.Column + len(b.Slice)
	slice := a.Slice
	if a.Line == b.Line && len(a.LineSlice) >= a.Column-1+end && end > 0 {
		lo := a.Column - 1
		hi := lo + end
		if lo >= 0 && hi <= len(a.LineSlice) && hi >= lo {
			slice = a.LineSlice[lo:hi]
		}
	}
	return Span{Line: a.Line, Column: a.Column, Slice: slice, LineSlice: a.LineSlice}
}

// Diagnostic is a single reported error, tied to the span that caused it.
type Diagnostic struct {
	Span Span
	Msg  string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Span, d.Msg)
}

// Bag collects diagnostics reported by possibly-concurrent compiler stages.
// A single goroutine owns the backing slice, fed over a channel, so callers
// never need to take a lock themselves before reporting an error.
type Bag struct {
	listen chan Diagnostic
	stop   chan struct{}
	done   chan struct{}

	mu    sync.Mutex
	items []Diagnostic
}

// NewBag starts the collector goroutine and returns a ready-to-use Bag.
// Callers must call Close once no more diagnostics will be reported.
func NewBag() *Bag {
	b := &Bag{
		listen: make(chan Diagnostic),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		items:  make([]Diagnostic, 0, 16),
	}
	go b.run()
	return b
}

func (b *Bag) run() {
	defer close(b.done)
	for {
		select {
		case d := <-b.listen:
			b.mu.Lock()
			b.items = append(b.items, d)
			b.mu.Unlock()
		case <-b.stop:
			return
		}
	}
}

// Add reports a new diagnostic at span, formatted like fmt.Sprintf.
func (b *Bag) Add(span Span, format string, args ...interface{}) {
	b.listen <- Diagnostic{Span: span, Msg: fmt.Sprintf(format, args...)}
}

// Close stops the collector goroutine. Further calls to Add will block
// forever and must not happen after Close returns.
func (b *Bag) Close() {
	close(b.stop)
	<-b.done
}

// Len reports how many diagnostics have been collected so far.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Items returns a copy of the diagnostics collected so far, in report order.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Diagnostic, len(b.items))
	copy(out, b.items)
	return out
}

// Summary formats the error count the way the driver prints it on exit.
func (b *Bag) Summary() string {
	return fmt.Sprintf("%d error(s) found", b.Len())
}
