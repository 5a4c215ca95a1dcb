package models

// Tournament defines an inclusive date window [StartDate, EndDate] that
// scopes rankings and constrains which matches may be associated with it.
// A nil EndDate means the tournament is still open-ended.
type Tournament struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   Date   `json:"startDate"`
	EndDate     *Date  `json:"endDate"`
}

// Contains reports whether the given day falls inside the tournament window.
func (t Tournament) Contains(d Date) bool {
	if d.Before(t.StartDate) {
		return false
	}
	if t.EndDate != nil && d.After(*t.EndDate) {
		return false
	}
	return true
}

// Completed reports whether the tournament window closed before today.
func (t Tournament) Completed(today Date) bool {
	return t.EndDate != nil && t.EndDate.Before(today)
}
