//spellchecker:words status
package status_test

//spellchecker:words errors strings testing github iomemory internal status pkglib
import (
	"errors"
	"strings"
	"testing"

	"github.com/FAU-CDI/iomemory/internal/status"
	"github.com/tkw1536/pkglib/perf"
)

func TestStatus_Nil(t *testing.T) {
	t.Parallel()

	var st *status.Status

	// none of these may panic
	st.Log("message")
	st.LogDebug("message")
	st.LogError("message", errors.New("error"))
	st.SetCT(1, 2)
	st.Close()

	called := false
	if err := st.DoStage(status.StageLoad, func() error { called = true; return nil }); err != nil {
		t.Errorf("DoStage() returned %v", err)
	}
	if !called {
		t.Error("DoStage() did not call f")
	}

	if got := st.Diff(); got != (perf.Diff{}) {
		t.Errorf("Diff() = %v, want zero", got)
	}
	if !st.Progress().Done {
		t.Error("nil status is not done")
	}
}

func TestStatus_DoStage(t *testing.T) {
	t.Parallel()

	var builder strings.Builder
	st := status.New(&builder, false)

	if err := st.DoStage(status.StageLoad, func() error {
		st.SetCT(5, 10)
		if got := st.Progress(); got.Stage != status.StageLoad || got.Current != 5 || got.Total != 10 {
			t.Errorf("Progress() = %v", got)
		}
		return nil
	}); err != nil {
		t.Errorf("DoStage() returned %v", err)
	}

	errFailed := errors.New("something failed")
	if err := st.DoStage(status.StageExportSQL, func() error { return errFailed }); !errors.Is(err, errFailed) {
		t.Errorf("DoStage() returned %v, want %v", err, errFailed)
	}

	if got := st.Progress(); got != (status.Progress{}) {
		t.Errorf("Progress() = %v after all stages ended", got)
	}
	if got := st.Diff(); got.Time < 0 {
		t.Errorf("Diff() = %v", got)
	}

	output := builder.String()
	for _, want := range []string{
		"msg=start stage=load",
		"load: 5/10",
		"msg=end stage=load",
		"current=5 total=10",
		`msg="FAILED failed stage"`,
		`err="something failed"`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output does not contain %q:\n%s", want, output)
		}
	}
}

func TestStatus_LogDebug(t *testing.T) {
	t.Parallel()

	var quiet, verbose strings.Builder
	status.New(&quiet, false).LogDebug("hidden")
	status.New(&verbose, true).LogDebug("shown")

	if strings.Contains(quiet.String(), "hidden") {
		t.Error("debug message logged without debug")
	}
	if !strings.Contains(verbose.String(), "shown") {
		t.Error("debug message not logged with debug")
	}
}

func TestStatus_Close(t *testing.T) {
	t.Parallel()

	st := status.New(nil, false)
	st.Close()

	called := false
	if err := st.DoStage(status.StageLoad, func() error {
		called = true
		st.SetCT(1, 2)
		return nil
	}); err != nil {
		t.Errorf("DoStage() returned %v", err)
	}
	if !called {
		t.Error("DoStage() did not call f")
	}
	if !st.Progress().Done {
		t.Error("closed status is not done")
	}
	if got := st.Diff(); got != (perf.Diff{}) {
		t.Errorf("Diff() = %v, want zero", got)
	}
}

func TestStageStats_Progress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		stats status.StageStats
		want  string
	}{
		{status.StageStats{Stage: status.StageLoad}, ""},
		{status.StageStats{Stage: status.StageLoad, Current: 3, Total: 7}, "load: 3/7"},
		{status.StageStats{Stage: status.StageLoad, Current: 7, Total: 7}, "load: 7"},
		{status.StageStats{Stage: status.StageLoad, Current: 12}, "load: 12"},
	}
	for _, tt := range tests {
		if got := tt.stats.Progress(); got != tt.want {
			t.Errorf("Progress() = %q, want %q", got, tt.want)
		}
	}
}
