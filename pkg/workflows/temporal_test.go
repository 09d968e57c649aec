package workflows

import (
	"context"
	"errors"
	"testing"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
)

type fakeStarter struct {
	err  error
	opts []client.StartWorkflowOptions
}

func (f *fakeStarter) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
	f.opts = append(f.opts, options)
	return nil, f.err
}

func noopWorkflow() {}

func TestStart(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStarted bool
		wantErr     bool
	}{
		{"started", nil, true, false},
		{"already started", serviceerror.NewWorkflowExecutionAlreadyStarted("exists", "", ""), false, false},
		{"server failure", errors.New("unavailable"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeStarter{err: tt.err}
			started, err := Start(context.Background(), s, "notify-1", "queue", noopWorkflow)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if started != tt.wantStarted {
				t.Fatalf("started = %v, want %v", started, tt.wantStarted)
			}
			if len(s.opts) != 1 {
				t.Fatalf("expected one start call, got %d", len(s.opts))
			}
			opts := s.opts[0]
			if opts.ID != "notify-1" || opts.TaskQueue != "queue" {
				t.Fatalf("unexpected options %+v", opts)
			}
			if !opts.WorkflowExecutionErrorWhenAlreadyStarted {
				t.Fatal("duplicate starts must surface as errors")
			}
			if opts.WorkflowIDReusePolicy != enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE {
				t.Fatalf("reuse policy = %v", opts.WorkflowIDReusePolicy)
			}
		})
	}
}
