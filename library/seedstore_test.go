package library

import (
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *SeedStore {
	t.Helper()
	dir := t.TempDir()
	store, err := OpenSeedStore(filepath.Join(dir, "seed.db"))
	if err != nil {
		t.Fatalf("open seed store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSeedStoreRoundTrip(t *testing.T) {
	store := tempStore(t)

	books := []*Book{
		{ID: "BK-001", Title: "Java Fundamentals", Author: "Evans", Subject: "CS", Category: CategoryTextbook},
		{ID: "BK-002", Title: "The Java Saga", Author: "Brown", Subject: "Fantasy", Category: CategoryNovel},
	}
	people := []*Person{
		{ID: "BOR-0001", Name: "Sam", Email: "sam@mail.com", Role: RoleBorrower},
		{ID: "STF-0001", Name: "Mueller", Role: RoleStaff, PasswordHash: "$2a$10$fake"},
	}
	if err := store.Save(books, people); err != nil {
		t.Fatalf("save: %v", err)
	}

	gotBooks, err := store.Books()
	if err != nil {
		t.Fatalf("books: %v", err)
	}
	if len(gotBooks) != 2 || gotBooks[0].Category != CategoryTextbook || gotBooks[1].Category != CategoryNovel {
		t.Fatalf("book round trip failed: %+v", gotBooks)
	}

	gotPeople, err := store.People()
	if err != nil {
		t.Fatalf("people: %v", err)
	}
	if len(gotPeople) != 2 || gotPeople[1].Role != RoleStaff || gotPeople[1].PasswordHash == "" {
		t.Fatalf("person round trip failed: %+v", gotPeople)
	}
}

func TestSeedStoreUpsert(t *testing.T) {
	store := tempStore(t)

	if err := store.PutBook(&Book{ID: "BK-001", Title: "Old", Author: "A", Subject: "S", Category: CategoryNovel}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.PutBook(&Book{ID: "BK-001", Title: "New", Author: "A", Subject: "S", Category: CategoryReference}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	books, err := store.Books()
	if err != nil {
		t.Fatalf("books: %v", err)
	}
	if len(books) != 1 || books[0].Title != "New" || books[0].Category != CategoryReference {
		t.Fatalf("upsert should overwrite in place: %+v", books)
	}
}

func TestSeedStoreLoadInto(t *testing.T) {
	store := tempStore(t)

	err := store.Save(
		[]*Book{{ID: "BK-001", Title: "T", Author: "A", Subject: "S", Category: CategoryTextbook}},
		[]*Person{
			{ID: "BOR-0001", Name: "Sam", Role: RoleBorrower},
			{ID: "STF-0001", Name: "Mueller", Role: RoleStaff},
		},
	)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	e := NewEngine()
	if err := store.LoadInto(e); err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(e.ListBooks()) != 1 {
		t.Fatalf("engine should hold the seeded book")
	}
	if !e.IssueBook("BOR-0001", "BK-001", "STF-0001") {
		t.Fatalf("seeded records should circulate")
	}
}
