package repository

import (
	"context"
	"testing"

	"workoutLists/internal/testutil"
	"workoutLists/models"
)

func TestListRepository_SortedEntries(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "sortedentries")
	ctx := context.Background()
	r := NewListRepository(d, "alice")

	lid := mustCreateList(t, r, d, "Full Body")
	mustCreateEntry(t, r, d, lid, "deadlift", i64(5))
	mustCreateEntry(t, r, d, lid, "Curl", i64(3))
	mustCreateEntry(t, r, d, lid, "bench", i64(3))
	done := mustCreateEntry(t, r, d, lid, "abs", i64(1))
	if ok, err := r.ToggleEntry(ctx, lid, done); err != nil || !ok {
		t.Fatalf("toggle: %v %v", ok, err)
	}

	got, err := r.SortedEntries(ctx, lid)
	if err != nil {
		t.Fatalf("SortedEntries: %v", err)
	}
	want := []string{"bench", "Curl", "deadlift", "abs"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("position %d: got %q want %q", i, got[i].Title, want[i])
		}
	}
}

func TestListRepository_SortedEntriesWithoutSetsLast(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "sortednullsets")
	ctx := context.Background()
	r := NewListRepository(d, "alice")

	lid := mustCreateList(t, r, d, "Mobility")
	mustCreateEntry(t, r, d, lid, "aaa-no-sets", nil)
	mustCreateEntry(t, r, d, lid, "zzz-three", i64(3))
	mustCreateEntry(t, r, d, lid, "mmm-one", i64(1))
	mustCreateEntry(t, r, d, lid, "bbb-no-sets", nil)

	got, err := r.SortedEntries(ctx, lid)
	if err != nil {
		t.Fatalf("SortedEntries: %v", err)
	}
	want := []string{"mmm-one", "zzz-three", "aaa-no-sets", "bbb-no-sets"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Fatalf("position %d: got %q want %q", i, got[i].Title, want[i])
		}
	}
}

func TestListRepository_ToggleEntryTwice(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "toggle")
	ctx := context.Background()
	r := NewListRepository(d, "alice")

	lid := mustCreateList(t, r, d, "Arms")
	eid := mustCreateEntry(t, r, d, lid, "curl", nil)

	for i, want := range []bool{true, false} {
		ok, err := r.ToggleEntry(ctx, lid, eid)
		if err != nil || !ok {
			t.Fatalf("toggle %d: ok=%v err=%v", i, ok, err)
		}
		e, err := r.GetEntry(ctx, lid, eid)
		if err != nil || e == nil {
			t.Fatalf("GetEntry: %+v %v", e, err)
		}
		if e.Done != want {
			t.Fatalf("after toggle %d done=%v want %v", i, e.Done, want)
		}
	}
	if ok, err := r.ToggleEntry(ctx, lid, eid+50); err != nil || ok {
		t.Fatalf("toggle unknown: ok=%v err=%v", ok, err)
	}
}

func TestListRepository_CompleteAllEntries(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "completeall")
	ctx := context.Background()
	r := NewListRepository(d, "alice")

	lid := mustCreateList(t, r, d, "Cardio")
	mustCreateEntry(t, r, d, lid, "run", nil)
	mustCreateEntry(t, r, d, lid, "bike", nil)

	if ok, err := r.CompleteAllEntries(ctx, lid); err != nil || !ok {
		t.Fatalf("first complete all: ok=%v err=%v", ok, err)
	}
	l, err := r.GetList(ctx, lid)
	if err != nil || l == nil || !l.IsDone() || l.HasUndoneEntries() {
		t.Fatalf("list should be complete: %+v %v", l, err)
	}

	// Nothing left to do: an owned, complete list reports false.
	if ok, err := r.CompleteAllEntries(ctx, lid); err != nil || ok {
		t.Fatalf("second complete all: ok=%v err=%v", ok, err)
	}
	if out, err := r.CompleteAllEntriesOutcome(ctx, lid); err != nil || out != CompleteNoOp {
		t.Fatalf("outcome on complete list: %v %v", out, err)
	}
	if out, err := r.CompleteAllEntriesOutcome(ctx, lid+77); err != nil || out != CompleteNotFound {
		t.Fatalf("outcome on unknown list: %v %v", out, err)
	}

	// An empty owned list is also a no-op.
	empty := mustCreateList(t, r, d, "Empty")
	if ok, err := r.CompleteAllEntries(ctx, empty); err != nil || ok {
		t.Fatalf("complete all on empty list: ok=%v err=%v", ok, err)
	}

	mustCreateEntry(t, r, d, lid, "swim", nil)
	if out, err := r.CompleteAllEntriesOutcome(ctx, lid); err != nil || out != CompleteUpdated {
		t.Fatalf("outcome with undone entry: %v %v", out, err)
	}
}

func TestCompleteOutcome_String(t *testing.T) {
	for out, want := range map[CompleteOutcome]string{
		CompleteNotFound: "not found",
		CompleteNoOp:     "noop",
		CompleteUpdated:  "updated",
	} {
		if out.String() != want {
			t.Errorf("%d: got %q want %q", out, out.String(), want)
		}
	}
}

func TestListRepository_CreateEntryAttributes(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "entryattrs")
	ctx := context.Background()
	r := NewListRepository(d, "alice")

	lid := mustCreateList(t, r, d, "Strength")
	dur, weight := 45.5, 102.5
	ok, err := r.CreateEntry(ctx, lid, "squat", models.EntryAttrs{Sets: i64(5), Reps: i64(5), Duration: &dur, Weight: &weight})
	if err != nil || !ok {
		t.Fatalf("CreateEntry: ok=%v err=%v", ok, err)
	}
	ok, err = r.CreateEntry(ctx, lid, "stretch", models.EntryAttrs{})
	if err != nil || !ok {
		t.Fatalf("CreateEntry bare: ok=%v err=%v", ok, err)
	}

	es, err := r.SortedEntries(ctx, lid)
	if err != nil || len(es) != 2 {
		t.Fatalf("SortedEntries: %+v %v", es, err)
	}
	// Entries without sets sort after numbered ones.
	full, bare := es[0], es[1]
	if bare.Title != "stretch" || bare.Sets != nil || bare.Reps != nil || bare.Duration != nil || bare.Weight != nil {
		t.Fatalf("bare entry: %+v", bare)
	}
	if full.Sets == nil || *full.Sets != 5 || full.Reps == nil || *full.Reps != 5 ||
		full.Duration == nil || *full.Duration != dur || full.Weight == nil || *full.Weight != weight {
		t.Fatalf("full entry: %+v", full)
	}
	if full.Done || full.Owner != "alice" || full.ListID != lid {
		t.Fatalf("entry defaults: %+v", full)
	}

	if ok, err := r.CreateEntry(ctx, lid+500, "nowhere", models.EntryAttrs{}); err != nil || ok {
		t.Fatalf("CreateEntry unknown list: ok=%v err=%v", ok, err)
	}
}

func TestListRepository_DeleteEntry(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "deleteentry")
	ctx := context.Background()
	r := NewListRepository(d, "alice")

	lid := mustCreateList(t, r, d, "Shoulders")
	eid := mustCreateEntry(t, r, d, lid, "press", nil)
	other := mustCreateList(t, r, d, "Other")

	// The entry id only resolves together with its own list id.
	if ok, err := r.DeleteEntry(ctx, other, eid); err != nil || ok {
		t.Fatalf("delete via wrong list: ok=%v err=%v", ok, err)
	}
	if ok, err := r.DeleteEntry(ctx, lid, eid); err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if e, err := r.GetEntry(ctx, lid, eid); err != nil || e != nil {
		t.Fatalf("entry still present: %+v %v", e, err)
	}
}
