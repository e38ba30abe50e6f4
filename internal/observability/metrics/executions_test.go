package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

type capturedMetric struct {
	name string
	tags map[string]string
}

type fakeSink struct {
	counts  []capturedMetric
	timings []capturedMetric
}

func (f *fakeSink) Count(name string, _ int64, tags map[string]string) {
	f.counts = append(f.counts, capturedMetric{name: name, tags: tags})
}

func (f *fakeSink) Gauge(string, float64, map[string]string) {}

func (f *fakeSink) Timing(name string, _ time.Duration, tags map[string]string) {
	f.timings = append(f.timings, capturedMetric{name: name, tags: tags})
}

func TestEmitExecution(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	EmitExecution(sink, ExecutionMetric{
		Trigger:  "scheduled",
		Result:   ResultSuccess,
		Duration: 120 * time.Millisecond,
	})

	if len(sink.counts) != 1 {
		t.Fatalf("expected 1 count, got %d", len(sink.counts))
	}
	if sink.counts[0].name != "executor.executions" {
		t.Fatalf("unexpected counter name %q", sink.counts[0].name)
	}
	if got := sink.counts[0].tags["trigger"]; got != "scheduled" {
		t.Fatalf("trigger tag = %q, want scheduled", got)
	}
	if len(sink.timings) != 1 {
		t.Fatalf("expected 1 timing, got %d", len(sink.timings))
	}
	if _, ok := sink.counts[0].tags["error_class"]; ok {
		t.Fatal("successful execution should not carry error_class tag")
	}
}

func TestEmitExecutionTagsErrorClass(t *testing.T) {
	t.Parallel()

	sink := &fakeSink{}
	EmitExecution(sink, ExecutionMetric{
		Trigger: "manual",
		Result:  ResultError,
		Err:     fmt.Errorf("wrapped: %w", errors.New("boom")),
	})

	if len(sink.counts) != 1 {
		t.Fatalf("expected 1 count, got %d", len(sink.counts))
	}
	if got := sink.counts[0].tags["error_class"]; got != "errors_errorstring" {
		t.Fatalf("error_class tag = %q, want errors_errorstring", got)
	}
	if len(sink.timings) != 0 {
		t.Fatalf("zero duration should not emit timing, got %d", len(sink.timings))
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	if got := Classify(nil); got != "" {
		t.Fatalf("Classify(nil) = %q, want empty", got)
	}

	err := fmt.Errorf("outer: %w", &time.ParseError{})
	if got := Classify(err); got != "time_parseerror" {
		t.Fatalf("Classify = %q, want time_parseerror", got)
	}
}

func TestCloneTags(t *testing.T) {
	t.Parallel()

	if CloneTags(nil) != nil {
		t.Fatal("CloneTags(nil) should be nil")
	}

	src := map[string]string{"a": "1"}
	dst := CloneTags(src)
	dst["a"] = "2"
	if src["a"] != "1" {
		t.Fatal("CloneTags did not copy")
	}
}
