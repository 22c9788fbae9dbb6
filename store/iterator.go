package store

import (
	"bytes"

	"github.com/iov-one/tescrow/errors"
)

// mergeIterator walks the cached entries of a cache wrap together with the
// iterator of its parent store. A cached entry shadows a parent entry with
// the same key and deleted entries are skipped.
type mergeIterator struct {
	cached    []entry
	under     Iterator
	ascending bool

	// head is the next parent entry when loaded is set.
	head       Model
	loaded     bool
	underEmpty bool
}

func (m *mergeIterator) Next() ([]byte, []byte, error) {
	for {
		if err := m.fill(); err != nil {
			return nil, nil, err
		}
		if len(m.cached) == 0 {
			if m.underEmpty {
				return nil, nil, errors.ErrIteratorDone
			}
			return m.pop()
		}

		e := m.cached[0]
		if !m.underEmpty {
			switch m.order(e.key, m.head.Key) {
			case 1:
				return m.pop()
			case 0:
				m.loaded = false
			}
		}
		m.cached = m.cached[1:]
		if !e.deleted {
			return e.key, e.value, nil
		}
	}
}

// order compares keys in iteration order.
func (m *mergeIterator) order(a, b []byte) int {
	if m.ascending {
		return bytes.Compare(a, b)
	}
	return bytes.Compare(b, a)
}

func (m *mergeIterator) fill() error {
	if m.loaded || m.underEmpty {
		return nil
	}
	key, value, err := m.under.Next()
	if errors.ErrIteratorDone.Is(err) {
		m.underEmpty = true
		return nil
	}
	if err != nil {
		return err
	}
	m.head, m.loaded = Pair(key, value), true
	return nil
}

func (m *mergeIterator) pop() ([]byte, []byte, error) {
	m.loaded = false
	return m.head.Key, m.head.Value, nil
}

func (m *mergeIterator) Release() {
	m.under.Release()
	m.cached = nil
}
