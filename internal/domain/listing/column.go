package listing

import "time"

// Kind is the semantic type of a sortable column.
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindDate   Kind = "date"
	KindBool   Kind = "boolean"
)

// Column is a sortable column of a list of T.
type Column[T any] struct {
	Key     string
	Kind    Kind
	compare func(a, b T, dir Direction) int
}

// Compare orders two rows by this column.
func (c Column[T]) Compare(a, b T, dir Direction) int {
	if c.compare == nil {
		return 0
	}
	return c.compare(a, b, dir)
}

// TextColumn builds a column ordered by CompareText.
func TextColumn[T any](key string, value func(T) string) Column[T] {
	return Column[T]{
		Key:  key,
		Kind: KindText,
		compare: func(a, b T, dir Direction) int {
			return CompareText(value(a), value(b), dir)
		},
	}
}

// NumberColumn builds a column ordered by CompareNumber.
func NumberColumn[T any](key string, value func(T) float64) Column[T] {
	return Column[T]{
		Key:  key,
		Kind: KindNumber,
		compare: func(a, b T, dir Direction) int {
			va, vb := value(a), value(b)
			return CompareNumber(&va, &vb, dir)
		},
	}
}

// DateColumn builds a column ordered by CompareDate over optional timestamps.
func DateColumn[T any](key string, value func(T) *time.Time) Column[T] {
	return Column[T]{
		Key:  key,
		Kind: KindDate,
		compare: func(a, b T, dir Direction) int {
			return CompareDate(FormatDate(value(a)), FormatDate(value(b)), dir)
		},
	}
}

// BoolColumn builds a column ordered by CompareBool.
func BoolColumn[T any](key string, value func(T) bool) Column[T] {
	return Column[T]{
		Key:  key,
		Kind: KindBool,
		compare: func(a, b T, dir Direction) int {
			return CompareBool(value(a), value(b), dir)
		},
	}
}

// Schema describes one list view: its sortable columns, the fields the
// search term is matched against and the sort configuration used when
// nothing valid is stored.
type Schema[T any] struct {
	Name       string
	Columns    []Column[T]
	Searchable []func(T) string
	Default    SortConfig
}

// Column looks up a column by key.
func (s Schema[T]) Column(key string) (Column[T], bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// ColumnKeys returns the sortable column keys in declaration order.
func (s Schema[T]) ColumnKeys() []string {
	keys := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		keys = append(keys, c.Key)
	}
	return keys
}

// Accepts reports whether cfg names a known column with a valid direction.
func (s Schema[T]) Accepts(cfg SortConfig) bool {
	if !cfg.Sort.IsValid() {
		return false
	}
	_, ok := s.Column(cfg.Key)
	return ok
}

// Normalize returns cfg when the schema accepts it and the default otherwise.
func (s Schema[T]) Normalize(cfg SortConfig) SortConfig {
	if s.Accepts(cfg) {
		return cfg
	}
	return s.Default
}
