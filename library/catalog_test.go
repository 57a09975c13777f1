package library

import "testing"

func TestCatalogAddRemove(t *testing.T) {
	c := NewCatalog()
	if c.Len() != 0 {
		t.Fatalf("new catalog should be empty")
	}

	c.Add(&Book{ID: "BK-001", Title: "First", Author: "A", Category: CategoryTextbook})
	c.Add(&Book{ID: "BK-002", Title: "Second", Author: "B", Category: CategoryNovel})
	if c.Len() != 2 {
		t.Fatalf("want 2 books, got %d", c.Len())
	}

	removed, ok := c.Remove("BK-001")
	if !ok || removed.Title != "First" {
		t.Fatalf("remove should return the prior record")
	}
	if _, ok := c.Remove("NO-SUCH"); ok {
		t.Fatalf("removing unknown ID should report absence")
	}
	if _, ok := c.Find("BK-001"); ok {
		t.Fatalf("removed book should be gone")
	}
}

func TestCatalogOverwriteKeepsOrder(t *testing.T) {
	c := NewCatalog()
	c.Add(&Book{ID: "BK-001", Title: "Old", Author: "A"})
	c.Add(&Book{ID: "BK-002", Title: "Mid", Author: "B"})
	c.Add(&Book{ID: "BK-001", Title: "New", Author: "A"})

	all := c.All()
	if len(all) != 2 {
		t.Fatalf("overwrite must not duplicate, got %d books", len(all))
	}
	if all[0].ID != "BK-001" || all[0].Title != "New" {
		t.Fatalf("overwritten book keeps its catalog position, got %s/%s", all[0].ID, all[0].Title)
	}
	if all[1].ID != "BK-002" {
		t.Fatalf("catalog order broken")
	}
}

func TestCatalogSearch(t *testing.T) {
	c := NewCatalog()
	c.Add(&Book{ID: "BK-001", Title: "Java Fundamentals", Author: "Evans"})
	c.Add(&Book{ID: "BK-002", Title: "The Java Saga", Author: "Brown"})
	c.Add(&Book{ID: "BK-003", Title: "Java API Handbook", Author: "Sun"})

	if got := c.Search("JAVA"); len(got) != 3 {
		t.Fatalf("case-insensitive title search: want 3, got %d", len(got))
	}
	if got := c.Search("brown"); len(got) != 1 || got[0].ID != "BK-002" {
		t.Fatalf("author search failed")
	}
	if got := c.Search("bk-003"); len(got) != 1 || got[0].ID != "BK-003" {
		t.Fatalf("exact-ID search failed")
	}
	// ID matching is exact, not substring.
	if got := c.Search("BK-00"); len(got) != 0 {
		t.Fatalf("partial ID should not match, got %d results", len(got))
	}

	// Results come back in catalog order.
	got := c.Search("java")
	for i, want := range []string{"BK-001", "BK-002", "BK-003"} {
		if got[i].ID != want {
			t.Fatalf("result %d: want %s, got %s", i, want, got[i].ID)
		}
	}
}

func TestDirectoryRoles(t *testing.T) {
	d := NewDirectory()
	d.RegisterBorrower(&Person{ID: "BOR-0001", Name: "Sam"})
	d.RegisterStaff(&Person{ID: "STF-0001", Name: "Mueller"})

	p, ok := d.Find("BOR-0001")
	if !ok || p.Role != RoleBorrower {
		t.Fatalf("borrower registration should tag the borrower role")
	}
	p, ok = d.Find("STF-0001")
	if !ok || p.Role != RoleStaff {
		t.Fatalf("staff registration should tag the staff role")
	}

	if n := d.CountByRole(RoleBorrower); n != 1 {
		t.Fatalf("want 1 borrower, got %d", n)
	}
	if got := d.All(); len(got) != 2 || got[0].ID != "BOR-0001" {
		t.Fatalf("All should list everyone in registration order")
	}

	// Re-registering with the other role re-tags the same record.
	d.RegisterStaff(&Person{ID: "BOR-0001", Name: "Sam"})
	p, _ = d.Find("BOR-0001")
	if p.Role != RoleStaff {
		t.Fatalf("overwrite should update the role")
	}
	if len(d.All()) != 2 {
		t.Fatalf("overwrite must not duplicate")
	}
}

func TestHoldQueueOrdering(t *testing.T) {
	q := NewHoldQueue()
	q.Append("BOR-0001", "BK-001")
	q.Append("BOR-0002", "BK-001")
	q.Append("BOR-0001", "BK-002")

	holds := q.ForBook("BK-001")
	if len(holds) != 2 || holds[0].BorrowerID != "BOR-0001" || holds[1].BorrowerID != "BOR-0002" {
		t.Fatalf("queue order incorrect")
	}

	q.RemoveIfMatches("BOR-0001", "BK-001")
	holds = q.ForBook("BK-001")
	if len(holds) != 1 || holds[0].BorrowerID != "BOR-0002" {
		t.Fatalf("removal should only drop the exact pair")
	}
	if len(q.ForBook("BK-002")) != 1 {
		t.Fatalf("other book's hold must survive")
	}
}
