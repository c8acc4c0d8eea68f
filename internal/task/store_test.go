package task_test

import (
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"tasker/internal/config"
	"tasker/internal/task"
	"tasker/internal/testutil"
)

func newStore(t *testing.T, blobs *testutil.FakeBlobs) *task.Store {
	t.Helper()
	s, err := task.New(context.Background(), blobs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func mustCreate(t *testing.T, s *task.Store, text string) task.Task {
	t.Helper()
	tk, err := s.Create(context.Background(), text)
	if err != nil {
		t.Fatalf("Create(%q): %v", text, err)
	}
	return tk
}

func TestScenario_CreateToggleClear(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, testutil.NewFakeBlobs())

	milk := mustCreate(t, s, "Buy milk")
	if milk != (task.Task{ID: 1, Text: "Buy milk", Completed: false}) {
		t.Errorf("unexpected first task %+v", milk)
	}
	dog := mustCreate(t, s, "Walk dog")
	if dog.ID != 2 {
		t.Errorf("expected id 2, got %d", dog.ID)
	}

	ok, err := s.ToggleCompleted(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("ToggleCompleted: ok=%v err=%v", ok, err)
	}
	got, _ := s.Get(1)
	if !got.Completed {
		t.Error("expected task 1 completed")
	}

	ok, err = s.ClearCompleted(ctx)
	if err != nil || !ok {
		t.Fatalf("ClearCompleted: ok=%v err=%v", ok, err)
	}
	want := []task.Task{{ID: 2, Text: "Walk dog"}}
	if !reflect.DeepEqual(s.All(), want) {
		t.Errorf("expected %+v, got %+v", want, s.All())
	}
}

func TestCreate_TrimsText(t *testing.T) {
	s := newStore(t, testutil.NewFakeBlobs())
	tk := mustCreate(t, s, "  Walk dog \n")
	if tk.Text != "Walk dog" {
		t.Errorf("expected trimmed text, got %q", tk.Text)
	}
}

func TestCreate_EmptyText(t *testing.T) {
	blobs := testutil.NewFakeBlobs()
	s := newStore(t, blobs)

	_, err := s.Create(context.Background(), "   ")
	if !errors.Is(err, task.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if len(s.All()) != 0 {
		t.Error("expected no task created")
	}
	if blobs.Sets != 0 {
		t.Errorf("expected no persist, got %d", blobs.Sets)
	}
}

func TestCreate_PersistsEveryTime(t *testing.T) {
	blobs := testutil.NewFakeBlobs()
	s := newStore(t, blobs)
	mustCreate(t, s, "a")
	mustCreate(t, s, "b")
	if blobs.Sets != 2 {
		t.Errorf("expected 2 persists, got %d", blobs.Sets)
	}
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	blobs := testutil.NewFakeBlobs()
	s := newStore(t, blobs)
	mustCreate(t, s, "Buy milk")

	ok, err := s.Rename(ctx, 1, "  Buy oat milk ")
	if err != nil || !ok {
		t.Fatalf("Rename: ok=%v err=%v", ok, err)
	}
	got, _ := s.Get(1)
	if got.Text != "Buy oat milk" {
		t.Errorf("unexpected text %q", got.Text)
	}

	ok, err = s.Rename(ctx, 99, "x")
	if err != nil || ok {
		t.Errorf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestRename_BlankTextRejected(t *testing.T) {
	blobs := testutil.NewFakeBlobs()
	s := newStore(t, blobs)
	mustCreate(t, s, "Buy milk")
	before := blobs.Sets

	ok, err := s.Rename(context.Background(), 1, "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected blank rename to be rejected")
	}
	got, _ := s.Get(1)
	if got.Text != "Buy milk" {
		t.Errorf("text changed to %q", got.Text)
	}
	if blobs.Sets != before {
		t.Error("expected no persist for rejected rename")
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	blobs := testutil.NewFakeBlobs()
	s := newStore(t, blobs)
	mustCreate(t, s, "a")
	mustCreate(t, s, "b")
	mustCreate(t, s, "c")
	before := blobs.Sets

	ok, err := s.Delete(ctx, 2)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	want := []task.Task{{ID: 1, Text: "a"}, {ID: 3, Text: "c"}}
	if !reflect.DeepEqual(s.All(), want) {
		t.Errorf("expected %+v, got %+v", want, s.All())
	}
	if blobs.Sets != before+1 {
		t.Error("expected one persist after delete")
	}

	ok, err = s.Delete(ctx, 2)
	if err != nil || ok {
		t.Errorf("expected miss on second delete, got ok=%v err=%v", ok, err)
	}
	if blobs.Sets != before+1 {
		t.Error("expected no persist when nothing was removed")
	}
}

func TestCreateDeleteCount(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, testutil.NewFakeBlobs())

	creates, deletes := 0, 0
	ops := []struct {
		create bool
		id     int64
	}{
		{true, 0}, {true, 0}, {false, 1}, {false, 1}, {true, 0},
		{false, 42}, {true, 0}, {false, 3}, {false, 2}, {true, 0},
	}
	for _, op := range ops {
		if op.create {
			mustCreate(t, s, "task")
			creates++
			continue
		}
		ok, err := s.Delete(ctx, op.id)
		if err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if ok {
			deletes++
		}
	}
	if got := len(s.All()); got != creates-deletes {
		t.Errorf("expected %d tasks, got %d", creates-deletes, got)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, testutil.NewFakeBlobs())
	mustCreate(t, s, "a")

	s.ToggleCompleted(ctx, 1)
	s.ToggleCompleted(ctx, 1)
	got, _ := s.Get(1)
	if got.Completed {
		t.Error("expected task back to incomplete")
	}

	ok, err := s.ToggleCompleted(ctx, 7)
	if err != nil || ok {
		t.Errorf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestClearCompleted_KeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, testutil.NewFakeBlobs())
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		mustCreate(t, s, text)
	}
	s.ToggleCompleted(ctx, 2)
	s.ToggleCompleted(ctx, 4)

	completed := s.Completed()
	if len(completed) != 2 || completed[0].ID != 2 || completed[1].ID != 4 {
		t.Errorf("unexpected completed %+v", completed)
	}

	ok, err := s.ClearCompleted(ctx)
	if err != nil || !ok {
		t.Fatalf("ClearCompleted: ok=%v err=%v", ok, err)
	}
	if len(s.Completed()) != 0 {
		t.Error("expected no completed tasks")
	}
	var ids []int64
	for _, tk := range s.All() {
		ids = append(ids, tk.ID)
	}
	if !reflect.DeepEqual(ids, []int64{1, 3, 5}) {
		t.Errorf("expected ids [1 3 5], got %v", ids)
	}
}

func TestClearCompleted_NothingToClear(t *testing.T) {
	blobs := testutil.NewFakeBlobs()
	s := newStore(t, blobs)
	mustCreate(t, s, "a")
	before := blobs.Sets

	ok, err := s.ClearCompleted(context.Background())
	if err != nil || ok {
		t.Errorf("expected false, got ok=%v err=%v", ok, err)
	}
	if blobs.Sets != before {
		t.Error("expected no persist")
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	s := newStore(t, testutil.NewFakeBlobs())
	mustCreate(t, s, "a")
	all := s.All()
	all[0].Text = "mutated"
	got, _ := s.Get(1)
	if got.Text != "a" {
		t.Error("All must not expose internal state")
	}
}

func TestCounts(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, testutil.NewFakeBlobs())
	if s.Counts() != (task.Counts{}) {
		t.Errorf("expected zero counts, got %+v", s.Counts())
	}
	mustCreate(t, s, "a")
	mustCreate(t, s, "b")
	mustCreate(t, s, "c")
	s.ToggleCompleted(ctx, 3)
	want := task.Counts{Total: 3, Completed: 1, Remaining: 2}
	if s.Counts() != want {
		t.Errorf("expected %+v, got %+v", want, s.Counts())
	}
}

func TestHydrate_RoundTrip(t *testing.T) {
	ctx := context.Background()
	blobs := testutil.NewFakeBlobs()
	s := newStore(t, blobs)
	mustCreate(t, s, "Buy milk")
	mustCreate(t, s, "Walk dog")
	mustCreate(t, s, "Call mom")
	s.ToggleCompleted(ctx, 2)
	if err := s.Persist(ctx); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	fresh := newStore(t, blobs)
	if !reflect.DeepEqual(fresh.All(), s.All()) {
		t.Errorf("expected %+v, got %+v", s.All(), fresh.All())
	}
}

func TestIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	blobs := testutil.NewFakeBlobs()
	s := newStore(t, blobs)
	mustCreate(t, s, "a")
	mustCreate(t, s, "b")
	s.Delete(ctx, 2)

	if tk := mustCreate(t, s, "c"); tk.ID != 3 {
		t.Errorf("expected id 3, got %d", tk.ID)
	}

	// Also across hydration after deleting the newest task.
	s.Delete(ctx, 3)
	fresh := newStore(t, blobs)
	if tk := mustCreate(t, fresh, "d"); tk.ID != 4 {
		t.Errorf("expected id 4 after hydration, got %d", tk.ID)
	}
}

func TestCreate_MaxStoredIDNotReused(t *testing.T) {
	blobs := testutil.NewFakeBlobs()
	blobs.Put(config.DefaultKey, `[{"id":1,"text":"a","completed":false},{"id":9223372036854775807,"text":"b","completed":false}]`)

	s := newStore(t, blobs)
	if len(s.All()) != 0 {
		t.Fatalf("expected out-of-range document ignored, got %+v", s.All())
	}
	if tk := mustCreate(t, s, "c"); tk.ID != 1 {
		t.Errorf("expected id 1, got %d", tk.ID)
	}

	fresh := newStore(t, blobs)
	if got := len(fresh.All()); got != 1 {
		t.Errorf("expected 1 task after rehydrate, got %d", got)
	}
}

func TestCreate_IDSpaceExhausted(t *testing.T) {
	ctx := context.Background()
	blobs := testutil.NewFakeBlobs()
	blobs.Put(config.DefaultKey, `{"version":1,"next_id":9223372036854775806,"tasks":[{"id":1,"text":"a","completed":false}]}`)
	s := newStore(t, blobs)

	last := mustCreate(t, s, "b")
	if last.ID != math.MaxInt64-1 {
		t.Fatalf("expected id %d, got %d", int64(math.MaxInt64-1), last.ID)
	}
	sets := blobs.Sets

	_, err := s.Create(ctx, "c")
	if !errors.Is(err, task.ErrIDSpaceExhausted) {
		t.Fatalf("expected ErrIDSpaceExhausted, got %v", err)
	}
	if blobs.Sets != sets {
		t.Error("expected no write after refused create")
	}
	if got := len(s.All()); got != 2 {
		t.Errorf("expected 2 tasks, got %d", got)
	}

	fresh := newStore(t, blobs)
	want := []task.Task{{ID: 1, Text: "a"}, {ID: math.MaxInt64 - 1, Text: "b"}}
	if !reflect.DeepEqual(fresh.All(), want) {
		t.Fatalf("expected %+v after rehydrate, got %+v", want, fresh.All())
	}
	if _, err := fresh.Create(ctx, "c"); !errors.Is(err, task.ErrIDSpaceExhausted) {
		t.Errorf("expected ErrIDSpaceExhausted after rehydrate, got %v", err)
	}
}

func TestHydrate_Absent(t *testing.T) {
	s := newStore(t, testutil.NewFakeBlobs())
	if len(s.All()) != 0 {
		t.Error("expected empty collection")
	}
	if tk := mustCreate(t, s, "first"); tk.ID != 1 {
		t.Errorf("expected id 1, got %d", tk.ID)
	}
}

func TestHydrate_LegacyArray(t *testing.T) {
	blobs := testutil.NewFakeBlobs()
	blobs.Put(config.DefaultKey, `[{"id":1718000000000,"text":"Buy milk","completed":true},{"id":1718000000500,"text":"Walk dog","completed":false}]`)

	s := newStore(t, blobs)
	want := []task.Task{
		{ID: 1718000000000, Text: "Buy milk", Completed: true},
		{ID: 1718000000500, Text: "Walk dog"},
	}
	if !reflect.DeepEqual(s.All(), want) {
		t.Fatalf("expected %+v, got %+v", want, s.All())
	}
	if tk := mustCreate(t, s, "next"); tk.ID != 1718000000501 {
		t.Errorf("expected id after legacy max, got %d", tk.ID)
	}

	raw, _ := blobs.Raw(config.DefaultKey)
	if !strings.HasPrefix(raw, `{"version":1,"next_id":1718000000502,`) {
		t.Errorf("expected document format after persist, got %s", raw)
	}
}

func TestHydrate_Unreadable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "not json"},
		{"wrong shape", `{"tasks":"nope"}`},
		{"missing field", `[{"id":1,"text":"a"}]`},
		{"bad id", `[{"id":0,"text":"a","completed":false}]`},
		{"duplicate ids", `[{"id":1,"text":"a","completed":false},{"id":1,"text":"b","completed":false}]`},
		{"future version", `{"version":2,"next_id":1,"tasks":[]}`},
		{"id at max int64", `[{"id":1,"text":"a","completed":false},{"id":9223372036854775807,"text":"b","completed":false}]`},
		{"next_id past max int64", `{"version":1,"next_id":9223372036854775808,"tasks":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blobs := testutil.NewFakeBlobs()
			blobs.Put(config.DefaultKey, tt.raw)
			s := newStore(t, blobs)
			if len(s.All()) != 0 {
				t.Errorf("expected empty collection, got %+v", s.All())
			}
		})
	}
}

func TestHydrate_BlobError(t *testing.T) {
	blobs := testutil.NewFakeBlobs()
	blobs.GetErr = errors.New("connection refused")
	_, err := task.New(context.Background(), blobs)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestPersistError(t *testing.T) {
	blobs := testutil.NewFakeBlobs()
	s := newStore(t, blobs)
	blobs.SetErr = errors.New("disk full")

	tk, err := s.Create(context.Background(), "a")
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected persist error, got %v", err)
	}
	// The in-memory mutation stays applied.
	if _, ok := s.Get(tk.ID); !ok {
		t.Error("expected task kept in memory")
	}
}

func TestWithKey(t *testing.T) {
	blobs := testutil.NewFakeBlobs()
	s, err := task.New(context.Background(), blobs, task.WithKey("work"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mustCreate(t, s, "a")
	if _, ok := blobs.Raw("work"); !ok {
		t.Error("expected value under custom key")
	}
	if _, ok := blobs.Raw(config.DefaultKey); ok {
		t.Error("expected nothing under default key")
	}
}

func TestIndependentInstances(t *testing.T) {
	a := newStore(t, testutil.NewFakeBlobs())
	b := newStore(t, testutil.NewFakeBlobs())
	mustCreate(t, a, "only in a")
	if len(b.All()) != 0 {
		t.Error("stores must not share state")
	}
}
