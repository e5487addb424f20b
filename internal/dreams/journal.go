package dreams

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyEntry    = errors.New("dreams: journal entry is empty")
	ErrEntryNotFound = errors.New("dreams: journal entry not found")
)

// Entry is one recorded dream.
type Entry struct {
	ID      string    `json:"id"`
	Date    time.Time `json:"date"`
	Text    string    `json:"text"`
	Symbols []string  `json:"symbols"`
}

// Journal keeps dream entries for the current session only.
type Journal struct {
	mu      sync.RWMutex
	dict    *Dictionary
	entries []Entry
	now     func() time.Time
}

// NewJournal creates an empty journal that tags entries using dict.
func NewJournal(dict *Dictionary) *Journal {
	return &Journal{dict: dict, now: time.Now}
}

// Add records a dream and tags the symbols it mentions.
func (j *Journal) Add(text string) (Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, ErrEmptyEntry
	}

	var names []string
	for _, s := range j.dict.Detect(text) {
		names = append(names, s.Symbol)
	}
	e := Entry{
		ID:      uuid.NewString(),
		Date:    j.now(),
		Text:    text,
		Symbols: names,
	}

	j.mu.Lock()
	j.entries = append(j.entries, e)
	j.mu.Unlock()
	return e, nil
}

// Entries returns all entries, newest first.
func (j *Journal) Entries() []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := slices.Clone(j.entries)
	slices.Reverse(out)
	return out
}

// Remove deletes an entry by id.
func (j *Journal) Remove(id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	for i, e := range j.entries {
		if e.ID == id {
			j.entries = slices.Delete(j.entries, i, i+1)
			return nil
		}
	}
	return ErrEntryNotFound
}

// Len returns the number of entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Recurring counts how often each symbol appears across entries.
func (j *Journal) Recurring() map[string]int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	counts := make(map[string]int)
	for _, e := range j.entries {
		for _, s := range e.Symbols {
			counts[s]++
		}
	}
	return counts
}
