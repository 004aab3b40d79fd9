package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ncobase/tasklist/ecode"
	"github.com/ncobase/tasklist/logging/logger"
	"github.com/ncobase/tasklist/types"
)

// fakeService is an in-memory TaskService that counts calls and can be told to fail.
type fakeService struct {
	mu    sync.Mutex
	tasks []types.Task
	seq   int
	now   time.Time
	calls map[string]int
	fail  map[string]error
}

func newFakeService(tasks ...types.Task) *fakeService {
	return &fakeService{
		tasks: tasks,
		now:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		calls: map[string]int{},
		fail:  map[string]error{},
	}
}

func (f *fakeService) tick() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

func (f *fakeService) enter(op string) error {
	f.calls[op]++
	return f.fail[op]
}

func (f *fakeService) index(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeService) List(context.Context) ([]types.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("list"); err != nil {
		return nil, err
	}
	return append([]types.Task(nil), f.tasks...), nil
}

func (f *fakeService) Create(_ context.Context, title string, color types.Color) (types.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("create"); err != nil {
		return types.Task{}, err
	}
	f.seq++
	now := f.tick()
	t := types.Task{ID: fmt.Sprintf("t%d", f.seq), Title: title, Color: color, CreatedAt: now, UpdatedAt: now}
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeService) Update(_ context.Context, id, title string, color types.Color) (types.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("update"); err != nil {
		return types.Task{}, err
	}
	i := f.index(id)
	if i < 0 {
		return types.Task{}, &ecode.RequestFailed{StatusCode: 404, Message: "task does not exist"}
	}
	f.tasks[i].Title, f.tasks[i].Color, f.tasks[i].UpdatedAt = title, color, f.tick()
	return f.tasks[i], nil
}

func (f *fakeService) Toggle(_ context.Context, id string) (types.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("toggle"); err != nil {
		return types.Task{}, err
	}
	i := f.index(id)
	if i < 0 {
		return types.Task{}, &ecode.RequestFailed{StatusCode: 404, Message: "task does not exist"}
	}
	f.tasks[i].Completed = !f.tasks[i].Completed
	f.tasks[i].UpdatedAt = f.tick()
	return f.tasks[i], nil
}

func (f *fakeService) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.enter("delete"); err != nil {
		return err
	}
	i := f.index(id)
	if i < 0 {
		return &ecode.RequestFailed{StatusCode: 404, Message: "task does not exist"}
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

func (f *fakeService) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func newStore(svc TaskService) *Store {
	return New(svc, logger.Discard())
}

func TestNewStartsLoading(t *testing.T) {
	s := newStore(newFakeService())
	st := s.State()
	if !st.Loading || st.Tasks == nil || len(st.Tasks) != 0 {
		t.Errorf("unexpected initial state %+v", st)
	}
}

func TestLoadEmptyRemote(t *testing.T) {
	svc := newFakeService()
	s := newStore(svc)

	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	st := s.State()
	if st.Loading || len(st.Tasks) != 0 {
		t.Errorf("expected loaded empty state, got %+v", st)
	}
	if svc.count("list") != 1 {
		t.Errorf("expected one list request, got %d", svc.count("list"))
	}
}

func TestLoadFailureKeepsCollection(t *testing.T) {
	svc := newFakeService()
	s := newStore(svc)
	ctx := context.Background()

	if _, err := s.Add(ctx, "Buy milk", types.Blue); err != nil {
		t.Fatalf("add: %v", err)
	}
	boom := &ecode.TransportError{Op: "tasks.list", Err: errors.New("connection refused")}
	svc.fail["list"] = boom

	err := s.Load(ctx)
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	st := s.State()
	if st.Loading {
		t.Error("expected loading=false after failed load")
	}
	if len(st.Tasks) != 1 || st.Tasks[0].Title != "Buy milk" {
		t.Errorf("expected collection untouched, got %+v", st.Tasks)
	}
	if svc.count("list") != 1 {
		t.Errorf("expected no retry, got %d list calls", svc.count("list"))
	}
}

func TestLoadDedupesIDs(t *testing.T) {
	now := time.Now().UTC()
	svc := newFakeService(
		types.Task{ID: "a", Title: "old", Color: types.Red, CreatedAt: now, UpdatedAt: now},
		types.Task{ID: "b", Title: "other", Color: types.Blue, CreatedAt: now, UpdatedAt: now},
		types.Task{ID: "a", Title: "new", Color: types.Red, CreatedAt: now, UpdatedAt: now},
	)
	s := newStore(svc)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != "a" || tasks[0].Title != "new" || tasks[1].ID != "b" {
		t.Errorf("unexpected deduped tasks %+v", tasks)
	}
}

func TestAddAppendsWithUniqueIDs(t *testing.T) {
	svc := newFakeService()
	s := newStore(svc)
	ctx := context.Background()

	a, err := s.Add(ctx, "Buy milk", types.Blue)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	b, err := s.Add(ctx, "Walk dog", types.Brown)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if a.Completed || b.Completed {
		t.Error("expected new tasks not completed")
	}
	if a.ID == b.ID {
		t.Errorf("expected unique ids, got %q twice", a.ID)
	}
	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != a.ID || tasks[1].ID != b.ID {
		t.Errorf("expected arrival order, got %+v", tasks)
	}
	if svc.count("create") != 2 {
		t.Errorf("expected one request per add, got %d", svc.count("create"))
	}
}

func TestCreateFailureLeavesStateUntouched(t *testing.T) {
	svc := newFakeService()
	s := newStore(svc)
	svc.fail["create"] = &ecode.RequestFailed{StatusCode: 500, Message: "Failed to create task"}

	_, err := s.Add(context.Background(), "Buy milk", types.Blue)
	var rf *ecode.RequestFailed
	if !errors.As(err, &rf) || rf.Message != "Failed to create task" || rf.StatusCode != 500 {
		t.Fatalf("expected RequestFailed with server message, got %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Errorf("expected empty collection, got %+v", s.Tasks())
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	s := newStore(newFakeService())
	ctx := context.Background()

	task, err := s.Add(ctx, "Buy milk", types.Blue)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	first, err := s.ToggleCompletion(ctx, task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !first.Completed || first.UpdatedAt.Before(task.UpdatedAt) {
		t.Errorf("unexpected first toggle %+v", first)
	}
	second, err := s.ToggleCompletion(ctx, task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if second.Completed != task.Completed || second.UpdatedAt.Before(first.UpdatedAt) {
		t.Errorf("unexpected second toggle %+v", second)
	}
	local, ok := s.FindByID(task.ID)
	if !ok || local.Completed != task.Completed || !local.UpdatedAt.Equal(second.UpdatedAt) {
		t.Errorf("local state not replaced with server version: %+v", local)
	}
}

func TestUpdateReplacesLocalTask(t *testing.T) {
	s := newStore(newFakeService())
	ctx := context.Background()

	task, _ := s.Add(ctx, "Buy milk", types.Blue)
	other, _ := s.Add(ctx, "Walk dog", types.Brown)

	updated, err := s.Update(ctx, task.ID, "Buy oat milk", types.Green)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Buy oat milk" || updated.Color != types.Green {
		t.Errorf("unexpected updated task %+v", updated)
	}
	tasks := s.Tasks()
	if tasks[0] != updated || tasks[1] != other {
		t.Errorf("expected only the edited task replaced, got %+v", tasks)
	}
}

func TestMutationErrorsAreReturned(t *testing.T) {
	svc := newFakeService()
	s := newStore(svc)
	ctx := context.Background()
	task, _ := s.Add(ctx, "Buy milk", types.Blue)
	before := s.Tasks()

	if _, err := s.Update(ctx, "missing", "title", types.Red); !ecode.IsRequestFailed(err) {
		t.Errorf("update: expected RequestFailed, got %v", err)
	}
	if _, err := s.ToggleCompletion(ctx, "missing"); !ecode.IsRequestFailed(err) {
		t.Errorf("toggle: expected RequestFailed, got %v", err)
	}
	svc.fail["delete"] = &ecode.TransportError{Op: "tasks.delete", Err: errors.New("reset")}
	if err := s.Remove(ctx, task.ID); !ecode.IsTransport(err) {
		t.Errorf("remove: expected TransportError, got %v", err)
	}

	after := s.Tasks()
	if len(after) != len(before) || after[0] != before[0] {
		t.Errorf("expected state untouched by failures, got %+v", after)
	}
}

func TestRemoveThenFind(t *testing.T) {
	s := newStore(newFakeService())
	ctx := context.Background()

	task, _ := s.Add(ctx, "Buy milk", types.Blue)
	if _, ok := s.FindByID(task.ID); !ok {
		t.Fatal("expected task to be found")
	}
	if err := s.Remove(ctx, task.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := s.FindByID(task.ID); ok {
		t.Error("expected task gone after remove")
	}
	if got, ok := s.FindByID("never-existed"); ok || got != (types.Task{}) {
		t.Errorf("expected zero task for unknown id, got %+v", got)
	}
}

func TestObservers(t *testing.T) {
	s := newStore(newFakeService())
	ctx := context.Background()

	var states []State
	unsubscribe := s.Subscribe(ObserverFunc(func(st State) { states = append(states, st) }))

	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	task, _ := s.Add(ctx, "Buy milk", types.Blue)
	_, _ = s.ToggleCompletion(ctx, task.ID)
	_ = s.Remove(ctx, task.ID)

	if len(states) != 4 {
		t.Fatalf("expected 4 notifications (load, add, toggle, remove), got %d", len(states))
	}
	if states[0].Loading || len(states[0].Tasks) != 0 {
		t.Errorf("unexpected load notification %+v", states[0])
	}
	if len(states[1].Tasks) != 1 || states[1].Tasks[0].Completed {
		t.Errorf("unexpected add notification %+v", states[1])
	}
	if !states[2].Tasks[0].Completed {
		t.Errorf("unexpected toggle notification %+v", states[2])
	}
	if len(states[3].Tasks) != 0 {
		t.Errorf("unexpected remove notification %+v", states[3])
	}

	unsubscribe()
	unsubscribe()
	_, _ = s.Add(ctx, "Walk dog", types.Brown)
	if len(states) != 4 {
		t.Errorf("expected no notifications after unsubscribe, got %d", len(states))
	}
}

func TestStateIsACopy(t *testing.T) {
	s := newStore(newFakeService())
	task, err := s.Add(context.Background(), "Buy milk", types.Blue)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	st := s.State()
	st.Tasks[0].Title = "mutated"
	if got, _ := s.FindByID(task.ID); got.Title != "Buy milk" {
		t.Errorf("snapshot shares memory with the store: %q", got.Title)
	}
}

func TestReloadNotifiesLoading(t *testing.T) {
	s := newStore(newFakeService())
	ctx := context.Background()
	if err := s.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}

	var loading []bool
	s.Subscribe(ObserverFunc(func(st State) { loading = append(loading, st.Loading) }))
	if err := s.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(loading) != 2 || !loading[0] || loading[1] {
		t.Errorf("expected [true false], got %v", loading)
	}
}

func TestConcurrentMutations(t *testing.T) {
	svc := newFakeService()
	s := newStore(svc)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			task, err := s.Add(ctx, fmt.Sprintf("task %02d", i), types.Colors[i%len(types.Colors)])
			if err != nil {
				t.Errorf("add: %v", err)
				return
			}
			if _, err := s.ToggleCompletion(ctx, task.ID); err != nil {
				t.Errorf("toggle: %v", err)
			}
			_ = s.State()
		}(i)
	}
	wg.Wait()

	tasks := s.Tasks()
	if len(tasks) != 20 {
		t.Fatalf("expected 20 tasks, got %d", len(tasks))
	}
	seen := map[string]bool{}
	for _, task := range tasks {
		if seen[task.ID] {
			t.Errorf("duplicate id %s", task.ID)
		}
		seen[task.ID] = true
		if !task.Completed {
			t.Errorf("expected %s completed", task.ID)
		}
	}
}
