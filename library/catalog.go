package library

import "strings"

// Catalog owns the set of book records. Iteration order is insertion order
// so listings and search results come back in catalog order.
type Catalog struct {
	books map[string]*Book
	order []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{books: make(map[string]*Book)}
}

// Add inserts a book, overwriting any record with the same ID. Existing
// loans are untouched.
func (c *Catalog) Add(b *Book) {
	if _, ok := c.books[b.ID]; !ok {
		c.order = append(c.order, b.ID)
	}
	c.books[b.ID] = b
}

// Remove deletes the record and returns it. It does not check for an
// active loan referencing the book.
func (c *Catalog) Remove(id string) (*Book, bool) {
	b, ok := c.books[id]
	if !ok {
		return nil, false
	}
	delete(c.books, id)
	for i, bid := range c.order {
		if bid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return b, true
}

// Find looks up a book by ID.
func (c *Catalog) Find(id string) (*Book, bool) {
	b, ok := c.books[id]
	return b, ok
}

// Search matches keyword case-insensitively as a substring of title or
// author, or as the exact book ID.
func (c *Catalog) Search(keyword string) []*Book {
	k := strings.ToLower(keyword)
	var matches []*Book
	for _, id := range c.order {
		b := c.books[id]
		if strings.Contains(strings.ToLower(b.Title), k) ||
			strings.Contains(strings.ToLower(b.Author), k) ||
			strings.EqualFold(b.ID, keyword) {
			matches = append(matches, b)
		}
	}
	return matches
}

// All returns every book in catalog order.
func (c *Catalog) All() []*Book {
	books := make([]*Book, 0, len(c.order))
	for _, id := range c.order {
		books = append(books, c.books[id])
	}
	return books
}

// Len reports the number of books in the catalog.
func (c *Catalog) Len() int { return len(c.books) }
