package ingest

import (
	"testing"

	"github.com/google/uuid"

	"github.com/openparl/tally/internal/members"
)

func testMember(name, status string) members.Member {
	return members.Member{ID: uuid.New(), Name: name, Status: status}
}

func TestResolverExactMatch(t *testing.T) {
	r := newMemberResolver()
	want := testMember("Jane Smith", members.StatusActive)
	r.add(want)

	got, ok := r.Resolve("Jane Smith")
	if !ok {
		t.Fatal("Resolve() did not match exact name")
	}
	if got.ID != want.ID {
		t.Errorf("Resolve() ID = %v, want %v", got.ID, want.ID)
	}
}

func TestResolverFirstLastFallback(t *testing.T) {
	r := newMemberResolver()
	want := testMember("Michael D. Chong", members.StatusActive)
	r.add(want)

	got, ok := r.Resolve("Michael Chong")
	if !ok {
		t.Fatal("Resolve() did not match via first+last key")
	}
	if got.ID != want.ID {
		t.Errorf("Resolve() ID = %v, want %v", got.ID, want.ID)
	}
}

func TestResolverAmbiguousFallback(t *testing.T) {
	r := newMemberResolver()
	r.add(testMember("Jane A. Smith", members.StatusActive))
	r.add(testMember("Jane B. Smith", members.StatusActive))

	if _, ok := r.Resolve("Jane Smith"); ok {
		t.Error("Resolve() matched an ambiguous first+last key")
	}
}

func TestResolverCleansScrapedNames(t *testing.T) {
	r := newMemberResolver()
	want := testMember("Jane Smith", members.StatusActive)
	r.add(want)

	if _, ok := r.Resolve("Hon. Jane Smith (Toronto Centre)"); !ok {
		t.Error("Resolve() did not clean the scraped name")
	}
}

func TestResolverActive(t *testing.T) {
	r := newMemberResolver()
	r.add(testMember("Jane Smith", members.StatusActive))
	r.add(testMember("John Doe", members.StatusFormer))

	active := r.Active()
	if len(active) != 1 {
		t.Fatalf("Active() returned %d members, want 1", len(active))
	}
	if active[0].Name != "Jane Smith" {
		t.Errorf("Active()[0].Name = %q, want Jane Smith", active[0].Name)
	}
}
