package domain

import "time"

// Session holds the item list a user is building and the last comparison over it.
// Result is nil whenever Items changed after the last comparison.
type Session struct {
	ID        string            `json:"id"`
	Items     []Item            `json:"items"`
	Result    *ComparisonResult `json:"result"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Clone returns a deep copy so stored sessions are never aliased by callers
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Items = make([]Item, len(s.Items))
	copy(out.Items, s.Items)
	out.Result = s.Result.Clone()
	return &out
}
