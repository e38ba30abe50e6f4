// Package metrics emits standardised engine metrics over a statsd.Sink.
package metrics

import (
	goerrors "errors"
	"reflect"
	"strings"
	"time"

	"github.com/geoscout/geoscout/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// ExecutionMetric captures details about one search execution for metric
// emission.
type ExecutionMetric struct {
	Trigger  string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitExecution emits the per-execution counter and timing. A nil sink is a
// no-op.
func EmitExecution(sink statsd.Sink, in ExecutionMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"trigger": in.Trigger,
		"result":  in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("executor.executions", 1, tags)

	if in.Duration > 0 {
		sink.Timing("executor.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map, returning nil for empty input.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Classify returns a normalized error type name suitable for tagging metrics
// and logs. It unwraps to the innermost concrete type and lowercases it.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
