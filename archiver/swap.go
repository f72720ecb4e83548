package archiver

import (
	"sort"
	"time"
)

// archiveFiles is used to satisfy a sort.Sort interface.
type archiveFiles struct {
	Files  []string
	stamps []time.Time
}

// Len is part of sort.Interface.
func (a *archiveFiles) Len() int {
	return len(a.Files)
}

// Swap is part of sort.Interface. We track two slices, so swap them both!
func (a *archiveFiles) Swap(i, j int) {
	a.Files[i], a.Files[j] = a.Files[j], a.Files[i]
	a.stamps[i], a.stamps[j] = a.stamps[j], a.stamps[i]
}

// Less is part of the sort.Sort interface.
// The files are sorted according to their time stamp.
// We always want to return the slice with the oldest files first.
func (a *archiveFiles) Less(i, j int) bool {
	return a.stamps[i].Before(a.stamps[j])
}

// Our archiveFiles struct must satisfy a sort.Interface.
var _ sort.Interface = (*archiveFiles)(nil)
