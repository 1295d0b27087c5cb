package view

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	apperrors "countrydata/cli/internal/errors"
	"countrydata/cli/internal/record"
	"countrydata/cli/internal/render"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	timeout = time.Second
	tick    = 5 * time.Millisecond
)

// fakeDisplay records every call as a short string.
type fakeDisplay struct {
	mu    sync.Mutex
	calls []string
	last  render.Output
}

func (d *fakeDisplay) add(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, s)
}

func (d *fakeDisplay) SetLoading(on bool)   { d.add(fmt.Sprintf("loading=%t", on)) }
func (d *fakeDisplay) ShowError(msg string) { d.add("error:" + msg) }
func (d *fakeDisplay) HideError()           { d.add("hide-error") }
func (d *fakeDisplay) HideOutput()          { d.add("hide-output") }
func (d *fakeDisplay) ShowOutput(out render.Output) {
	d.mu.Lock()
	d.last = out
	d.mu.Unlock()
	d.add("output:" + out.Mode.String())
}
func (d *fakeDisplay) SetActiveView(m render.Mode) { d.add("active:" + m.String()) }

func (d *fakeDisplay) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = nil
}

// fakeFetcher returns a canned result and counts calls.
type fakeFetcher struct {
	rec   record.Record
	err   error
	calls []string
	// block, when set, is waited on before returning.
	block chan struct{}
}

func (f *fakeFetcher) FetchCountryData(ctx context.Context, name string) (record.Record, error) {
	f.calls = append(f.calls, name)
	if f.block != nil {
		<-f.block
	}
	return f.rec, f.err
}

func paris(t *testing.T) record.Record {
	t.Helper()
	rec, err := record.Decode([]byte(`{"capital": "Paris", "languages": ["French"]}`))
	require.NoError(t, err)
	return rec
}

func TestSubmit_Success(t *testing.T) {
	f := &fakeFetcher{rec: paris(t)}
	d := &fakeDisplay{}
	c := NewController(f, d, nil)

	require.NoError(t, c.Submit(context.Background(), "France"))

	assert.Equal(t, []string{"France"}, f.calls)
	want := []string{"loading=true", "hide-error", "hide-output", "output:table", "loading=false"}
	if diff := cmp.Diff(want, d.calls); diff != "" {
		t.Fatal(diff)
	}
	assert.Equal(t, []render.Row{{Key: "Capital", Value: "Paris"}, {Key: "Languages", Value: "French"}}, d.last.Rows)

	st := c.State()
	assert.Equal(t, PhaseSuccess, st.Phase)
	assert.Equal(t, []string{"capital", "languages"}, st.Record.Keys())
}

func TestSubmit_EmptySelectionSendsNothing(t *testing.T) {
	f := &fakeFetcher{rec: paris(t)}
	d := &fakeDisplay{}
	c := NewController(f, d, nil)

	err := c.Submit(context.Background(), "")

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.Empty(t, f.calls)
	assert.Equal(t, []string{"error:Please select a country first."}, d.calls)
	assert.Equal(t, PhaseIdle, c.State().Phase)
}

func TestSubmit_ServerError(t *testing.T) {
	f := &fakeFetcher{err: apperrors.Server(404, "Country not found")}
	d := &fakeDisplay{}
	c := NewController(f, d, nil)

	err := c.Submit(context.Background(), "Atlantis")
	require.Error(t, err)

	msg := "An error occurred while fetching data. Please try again. Error: Country not found"
	want := []string{"loading=true", "hide-error", "hide-output", "error:" + msg, "loading=false"}
	if diff := cmp.Diff(want, d.calls); diff != "" {
		t.Fatal(diff)
	}
	st := c.State()
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Equal(t, msg, st.Message)
}

func TestSubmit_FailureKeepsHeldRecord(t *testing.T) {
	f := &fakeFetcher{rec: paris(t)}
	d := &fakeDisplay{}
	c := NewController(f, d, nil)
	require.NoError(t, c.Submit(context.Background(), "France"))

	f.rec, f.err = nil, apperrors.Wrap(apperrors.KindNetwork, "request failed", fmt.Errorf("connection refused"))
	require.Error(t, c.Submit(context.Background(), "Japan"))

	st := c.State()
	assert.Equal(t, PhaseFailed, st.Phase)
	assert.Equal(t, []string{"capital", "languages"}, st.Record.Keys())

	// Output is hidden after a failure; switching the view only moves the emphasis.
	d.reset()
	assert.True(t, c.SwitchView(render.ModeJSON))
	assert.Equal(t, []string{"active:json"}, d.calls)
}

func TestSubmit_RefusedWhileLoading(t *testing.T) {
	f := &fakeFetcher{rec: paris(t), block: make(chan struct{})}
	c := NewController(f, &fakeDisplay{}, nil)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), "France") }()

	require.Eventually(t, func() bool { return c.State().Phase == PhaseLoading }, timeout, tick)
	assert.ErrorIs(t, c.Submit(context.Background(), "Japan"), ErrBusy)

	close(f.block)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"France"}, f.calls)
}

func TestSwitchView_ReRendersWithoutFetching(t *testing.T) {
	f := &fakeFetcher{rec: paris(t)}
	d := &fakeDisplay{}
	c := NewController(f, d, nil)
	require.NoError(t, c.Submit(context.Background(), "France"))
	d.reset()

	assert.True(t, c.SwitchView(render.ModeJSON))

	assert.Len(t, f.calls, 1)
	assert.Equal(t, []string{"active:json", "output:json"}, d.calls)
	assert.Equal(t, "{\n  \"capital\": \"Paris\",\n  \"languages\": [\n    \"French\"\n  ]\n}", d.last.JSON)
	assert.Equal(t, render.ModeJSON, c.Mode())
}

func TestSwitchView_SameModeIsNoop(t *testing.T) {
	f := &fakeFetcher{rec: paris(t)}
	d := &fakeDisplay{}
	c := NewController(f, d, nil)
	require.NoError(t, c.Submit(context.Background(), "France"))
	d.reset()

	assert.False(t, c.SwitchView(render.ModeTable))
	assert.Empty(t, d.calls)
	assert.Len(t, f.calls, 1)
}

func TestSwitchView_BeforeAnyRecord(t *testing.T) {
	d := &fakeDisplay{}
	c := NewController(&fakeFetcher{}, d, nil, WithMode(render.ModeJSON))

	assert.True(t, c.SwitchView(render.ModeTable))
	assert.Equal(t, []string{"active:table"}, d.calls)
}

func TestSubmit_RendersInActiveMode(t *testing.T) {
	f := &fakeFetcher{rec: paris(t)}
	d := &fakeDisplay{}
	c := NewController(f, d, &render.Renderer{Decorator: render.HTMLDecorator{}}, WithMode(render.ModeJSON))

	require.NoError(t, c.Submit(context.Background(), "France"))

	assert.Equal(t, render.ModeJSON, d.last.Mode)
	assert.Contains(t, d.last.Decorated, `<span class="json-key">"capital":</span>`)
}

func TestFailureMessage(t *testing.T) {
	assert.Equal(t, "", FailureMessage(nil))
	assert.Equal(t, "Please select a country first.",
		FailureMessage(apperrors.New(apperrors.KindValidation, "Please select a country first.")))
	assert.Equal(t, FetchFailedPrefix+"HTTP error! status: 500",
		FailureMessage(apperrors.Server(500, "HTTP error! status: 500")))
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("json")
	assert.True(t, ok)
	assert.Equal(t, render.ModeJSON, m)

	m, ok = ParseMode("table")
	assert.True(t, ok)
	assert.Equal(t, render.ModeTable, m)

	_, ok = ParseMode("xml")
	assert.False(t, ok)
}
