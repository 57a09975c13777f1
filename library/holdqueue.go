package library

import "time"

// HoldQueue is the global, append-only sequence of reservation requests.
// First-requested-first-served order falls out of insertion order because
// requests are only ever appended.
type HoldQueue struct {
	requests []*HoldRequest
}

// NewHoldQueue returns an empty queue.
func NewHoldQueue() *HoldQueue {
	return &HoldQueue{}
}

// Append records a new request stamped with the current time.
func (q *HoldQueue) Append(borrowerID, bookID string) *HoldRequest {
	hr := &HoldRequest{
		BorrowerID:  borrowerID,
		BookID:      bookID,
		RequestedAt: time.Now(),
	}
	q.requests = append(q.requests, hr)
	return hr
}

// ForBook returns the pending requests for a book in request order.
func (q *HoldQueue) ForBook(bookID string) []*HoldRequest {
	var holds []*HoldRequest
	for _, hr := range q.requests {
		if hr.BookID == bookID {
			holds = append(holds, hr)
		}
	}
	return holds
}

// RemoveIfMatches drops every pending request for the exact borrower/book
// pair. Called after that borrower has been issued the book.
func (q *HoldQueue) RemoveIfMatches(borrowerID, bookID string) {
	kept := q.requests[:0]
	for _, hr := range q.requests {
		if hr.BorrowerID == borrowerID && hr.BookID == bookID {
			continue
		}
		kept = append(kept, hr)
	}
	q.requests = kept
}
