package importer

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"reflect"
	"testing"

	"github.com/dd0wney/glsgraph/pkg/model"
	"github.com/dd0wney/glsgraph/pkg/progress"
)

// recordingStore logs every call in order
type recordingStore struct {
	calls    []string
	failOn   string
	inSess   bool
	sessions int
	onWrite  func()
}

func (s *recordingStore) WithBulkSession(ctx context.Context, fn func(ctx context.Context) error) error {
	s.sessions++
	s.inSess = true
	s.calls = append(s.calls, "begin")
	defer func() {
		s.inSess = false
		s.calls = append(s.calls, "commit")
	}()
	return fn(ctx)
}

func (s *recordingStore) write(kind string, n int) error {
	if !s.inSess {
		return fmt.Errorf("%s written outside a session", kind)
	}
	call := fmt.Sprintf("%s:%d", kind, n)
	s.calls = append(s.calls, call)
	if s.onWrite != nil {
		s.onWrite()
	}
	if call == s.failOn {
		return errors.New("write failed")
	}
	return nil
}

func (s *recordingStore) SaveNodes(_ context.Context, nodes []model.Node) error {
	return s.write("nodes", len(nodes))
}

func (s *recordingStore) SaveEdges(_ context.Context, edges []model.Edge) error {
	return s.write("edges", len(edges))
}

func (s *recordingStore) UpdateEdgeDelays(_ context.Context, delays []model.Edge) (int64, error) {
	if err := s.write("delays", len(delays)); err != nil {
		return 0, err
	}
	return int64(len(delays)), nil
}

func batchesOf[T any](sizes []int, failure error) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		for _, n := range sizes {
			if !yield(make([]T, n), nil) {
				return
			}
		}
		if failure != nil {
			yield(nil, failure)
		}
	}
}

// fakeParser yields fixed batch sizes and reports one byte per record
type fakeParser struct {
	nodes, edges, delays []int
	failure              error
}

func (p fakeParser) Nodes(_ string, obs progress.Observer) iter.Seq2[[]model.Node, error] {
	obs.Update(1)
	return batchesOf[model.Node](p.nodes, nil)
}

func (p fakeParser) Edges(_ string, obs progress.Observer) iter.Seq2[[]model.Edge, error] {
	obs.Update(1)
	return batchesOf[model.Edge](p.edges, p.failure)
}

func (p fakeParser) Delays(_ string, obs progress.Observer) iter.Seq2[[]model.Edge, error] {
	obs.Update(1)
	return batchesOf[model.Edge](p.delays, p.failure)
}

// TestNetlistImporter_Sequencing tests that every node batch precedes every
// edge batch, all inside one session
func TestNetlistImporter_Sequencing(t *testing.T) {
	store := &recordingStore{}
	var counter progress.Counter

	summary, err := NewNetlistImporter(store, fakeParser{nodes: []int{3, 2}, edges: []int{4, 4, 1}}).
		Import(context.Background(), "design.v", &counter)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	want := []string{"begin", "nodes:3", "nodes:2", "edges:4", "edges:4", "edges:1", "commit"}
	if !reflect.DeepEqual(store.calls, want) {
		t.Errorf("calls = %v, want %v", store.calls, want)
	}
	if !reflect.DeepEqual(counter.Phases(), []string{PhaseNodes, PhaseEdges}) {
		t.Errorf("phases = %v", counter.Phases())
	}
	if summary.Nodes != 5 || summary.Edges != 9 || summary.Batches != 5 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Bytes != 2 || counter.Bytes() != 2 {
		t.Errorf("bytes = %d (observer %d), want 2", summary.Bytes, counter.Bytes())
	}
	if summary.RunID == "" || summary.File != "design.v" {
		t.Errorf("summary identity = %q %q", summary.RunID, summary.File)
	}
}

// TestNetlistImporter_StopsOnWriteError tests that a failing batch ends the
// import after the session is released
func TestNetlistImporter_StopsOnWriteError(t *testing.T) {
	store := &recordingStore{failOn: "nodes:2"}

	_, err := NewNetlistImporter(store, fakeParser{nodes: []int{3, 2, 7}, edges: []int{1}}).
		Import(context.Background(), "design.v", nil)
	if err == nil {
		t.Fatal("expected an error")
	}

	want := []string{"begin", "nodes:3", "nodes:2", "commit"}
	if !reflect.DeepEqual(store.calls, want) {
		t.Errorf("calls = %v, want %v", store.calls, want)
	}
}

// TestNetlistImporter_ParseError tests that a stream error is returned
func TestNetlistImporter_ParseError(t *testing.T) {
	store := &recordingStore{}
	broken := errors.New("read failed")

	summary, err := NewNetlistImporter(store, fakeParser{nodes: []int{1}, edges: []int{2}, failure: broken}).
		Import(context.Background(), "design.v", nil)
	if !errors.Is(err, broken) {
		t.Fatalf("err = %v, want %v", err, broken)
	}
	if summary.Edges != 2 {
		t.Errorf("edges before failure = %d, want 2", summary.Edges)
	}
}

// TestNetlistImporter_Cancellation tests that cancellation is observed
// between batches
func TestNetlistImporter_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := &recordingStore{onWrite: cancel}

	_, err := NewNetlistImporter(store, fakeParser{nodes: []int{1, 1, 1}, edges: []int{1}}).
		Import(ctx, "design.v", nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}

	want := []string{"begin", "nodes:1", "commit"}
	if !reflect.DeepEqual(store.calls, want) {
		t.Errorf("calls = %v, want %v", store.calls, want)
	}
}

// TestDelayImporter_Sequencing tests the single delay phase
func TestDelayImporter_Sequencing(t *testing.T) {
	store := &recordingStore{}
	var counter progress.Counter

	summary, err := NewDelayImporter(store, fakeParser{delays: []int{100000, 5}}).
		Import(context.Background(), "design.sdf", &counter)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	want := []string{"begin", "delays:100000", "delays:5", "commit"}
	if !reflect.DeepEqual(store.calls, want) {
		t.Errorf("calls = %v, want %v", store.calls, want)
	}
	if !reflect.DeepEqual(counter.Phases(), []string{PhaseDelays}) {
		t.Errorf("phases = %v", counter.Phases())
	}
	if summary.Delays != 100005 || summary.Updated != 100005 || summary.Batches != 2 {
		t.Errorf("summary = %+v", summary)
	}
}

type fixedFinder struct {
	edges    []model.Edge
	err      error
	maxDepth int
}

func (f *fixedFinder) FindMaxDelayPath(_ context.Context, _, _ string, maxDepth int) ([]model.Edge, error) {
	f.maxDepth = maxDepth
	return f.edges, f.err
}

// TestTracer tests path totals and node listing
func TestTracer(t *testing.T) {
	finder := &fixedFinder{edges: []model.Edge{
		{Src: "a", Dst: "b", DelayRise: 0.25, DelayFall: 0.1},
		{Src: "b", Dst: "c", DelayRise: 0.5, DelayFall: 0.75},
	}}
	tracer := NewTracer(finder, 7)

	path, err := tracer.Trace(context.Background(), "a", "")
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if path.Total != 1.0 {
		t.Errorf("total = %v, want 1", path.Total)
	}
	if !reflect.DeepEqual(path.Nodes(), []string{"a", "b", "c"}) {
		t.Errorf("nodes = %v", path.Nodes())
	}
	if finder.maxDepth != 7 {
		t.Errorf("maxDepth passed = %d, want 7", finder.maxDepth)
	}
}

// TestTracer_NoPath tests the empty result
func TestTracer_NoPath(t *testing.T) {
	path, err := NewTracer(&fixedFinder{}, 0).Trace(context.Background(), "a", "z")
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if !path.Empty() || path.Edges == nil || path.Nodes() != nil {
		t.Errorf("path = %+v, want empty non-nil edges", path)
	}
}

// TestTracer_Error tests that store errors are returned
func TestTracer_Error(t *testing.T) {
	boom := errors.New("boom")
	if _, err := NewTracer(&fixedFinder{err: boom}, 0).Trace(context.Background(), "a", ""); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}
