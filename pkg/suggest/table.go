package suggest

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// TableEntry maps a known prefix to an ordered list of completions.
type TableEntry struct {
	Prefix      string
	Completions []string
}

type tableItem struct {
	order int
	entry TableEntry
}

// Table is a static completion table keyed by lowercase prefix.
// Lookups match in both directions: keys the typed text starts with,
// and keys that start with the typed text.
type Table struct {
	trie *patricia.Trie
	size int
}

// NewTable indexes entries. Declaration order is kept for tie breaking;
// a repeated prefix keeps its first entry.
func NewTable(entries []TableEntry) *Table {
	t := &Table{trie: patricia.NewTrie()}
	for _, e := range entries {
		key := patricia.Prefix(strings.ToLower(e.Prefix))
		if !t.trie.Insert(key, tableItem{order: t.size, entry: e}) {
			log.Warnf("Duplicate completion table prefix %q ignored", e.Prefix)
			continue
		}
		t.size++
	}
	return t
}

// Len is the number of distinct prefixes in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Matches returns every entry whose key is a prefix of the lowercase input
// or extends it, in declaration order.
func (t *Table) Matches(lowerPrefix string) []TableEntry {
	items := t.collect(lowerPrefix)
	entries := make([]TableEntry, len(items))
	for i, it := range items {
		entries[i] = it.entry
	}
	return entries
}

// Best returns the matching entry whose key the input extends furthest.
// When no key is a prefix of the input, the first extending key in declaration order wins.
func (t *Table) Best(lowerPrefix string) (TableEntry, bool) {
	items := t.collect(lowerPrefix)
	if len(items) == 0 {
		return TableEntry{}, false
	}
	reach := func(it tableItem) int {
		key := strings.ToLower(it.entry.Prefix)
		if strings.HasPrefix(lowerPrefix, key) {
			return len(key)
		}
		return 0
	}
	sort.SliceStable(items, func(i, j int) bool { return reach(items[i]) > reach(items[j]) })
	return items[0].entry, true
}

func (t *Table) collect(lowerPrefix string) []tableItem {
	if t == nil || t.size == 0 {
		return nil
	}
	seen := make(map[int]bool)
	var items []tableItem
	visit := func(_ patricia.Prefix, item patricia.Item) error {
		it := item.(tableItem)
		if !seen[it.order] {
			seen[it.order] = true
			items = append(items, it)
		}
		return nil
	}

	key := patricia.Prefix(lowerPrefix)
	if err := t.trie.VisitPrefixes(key, visit); err != nil {
		log.Errorf("Error visiting table prefixes of %q: %v", lowerPrefix, err)
	}
	if err := t.trie.VisitSubtree(key, visit); err != nil {
		log.Errorf("Error visiting table subtree of %q: %v", lowerPrefix, err)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].order < items[j].order })
	return items
}
