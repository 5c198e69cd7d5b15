// Package console holds pieces shared by the emsctl views.
package console

import (
	"strings"
	"sync"
)

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Banner is the persistent error line shown above a view. Views clear it
// when the next operation starts.
type Banner struct {
	mu  sync.RWMutex
	msg string
}

func (b *Banner) Set(prefix string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msg = prefix + ": " + err.Error()
}

func (b *Banner) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msg = ""
}

func (b *Banner) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.msg
}

// JoinCSV renders rows as comma-joined lines without quoting.
func JoinCSV(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, ",")
	}
	return strings.Join(lines, "\n")
}

// Matches reports whether value equals want, treating empty and sentinel as "any".
func Matches(value, want, sentinel string) bool {
	return want == "" || want == sentinel || value == want
}
