package runtime

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/sibylline/sibyl/internal/augur/service/qa/domain/entity"
)

// tracedTool wraps an invokable tool so every call emits an action event
// before the real invocation and an observation event after it. The
// wrapper is what guarantees the step log mirrors the tool loop: the
// engine never records steps itself.
type tracedTool struct {
	inner   tool.InvokableTool
	events  EventSink
	scratch *scratchpad
}

func newTracedTool(inner tool.InvokableTool, events EventSink, scratch *scratchpad) *tracedTool {
	return &tracedTool{inner: inner, events: events, scratch: scratch}
}

func (t *tracedTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return t.inner.Info(ctx)
}

func (t *tracedTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	name := t.toolName(ctx)

	if t.events != nil {
		t.events.OnEvent(ctx, entity.ActionEvent{
			Tool:      name,
			ToolInput: argumentsInJSON,
			Log:       fmt.Sprintf("Invoking: `%s` with `%s`", name, argumentsInJSON),
			At:        time.Now().UTC(),
		})
	}

	out, err := t.inner.InvokableRun(ctx, argumentsInJSON, opts...)
	if err != nil {
		// Tools report their own failures as observation text; an error
		// here is infrastructure-level and aborts the whole run.
		return "", err
	}

	if t.scratch != nil {
		t.scratch.add(name, out)
	}
	if t.events != nil {
		t.events.OnEvent(ctx, entity.ObservationEvent{
			Output: out,
			At:     time.Now().UTC(),
		})
	}
	return out, nil
}

func (t *tracedTool) toolName(ctx context.Context) string {
	info, err := t.inner.Info(ctx)
	if err != nil || info == nil {
		return "unknown_tool"
	}
	return info.Name
}

// scratchpad collects tool observations during a run so an agent stopped
// at its turn ceiling can still compose a final answer from what it saw.
type scratchpad struct {
	mu    sync.Mutex
	notes []string
}

func newScratchpad() *scratchpad {
	return &scratchpad{}
}

func (s *scratchpad) add(toolName, output string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, fmt.Sprintf("%s: %s", toolName, output))
}

func (s *scratchpad) render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Join(s.notes, "\n")
}
