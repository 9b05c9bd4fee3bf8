package tuning

// Cache is the engine-side snapshot of a provider's frequency table.
type Cache struct {
	table Table
}

// NewCache returns a Cache initialised with the default table.
func NewCache() *Cache {
	return &Cache{table: defaultTable}
}

// Refresh polls every note of p and stores the result in the snapshot.
// It reports whether any entry differs from the previous snapshot.
// Frequencies that are not finite and positive keep their previous value.
func (c *Cache) Refresh(p Provider) bool {
	changed := false
	for i := range c.table {
		hz := p.Frequency(i)
		if hz == c.table[i] || !ValidFrequency(hz) {
			continue
		}
		c.table[i] = hz
		changed = true
	}
	return changed
}

// Table returns the current snapshot. The returned pointer is owned by the
// cache and must be treated as read-only.
func (c *Cache) Table() *Table {
	return &c.table
}

// Frequency returns the cached frequency of note, or 0 if note is out of range.
func (c *Cache) Frequency(note int) float64 {
	if !ValidNote(note) {
		return 0
	}
	return c.table[note]
}

// Reset restores the default table.
func (c *Cache) Reset() {
	c.table = defaultTable
}
