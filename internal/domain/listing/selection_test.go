package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection_Toggle(t *testing.T) {
	s := NewSelection()

	assert.True(t, s.Toggle("a"))
	assert.True(t, s.Has("a"))
	assert.False(t, s.Toggle("a"))
	assert.False(t, s.Has("a"))
}

func TestSelection_ToggleAll(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
		visible  []string
		want     []string
	}{
		{"empty selects visible", nil, []string{"b", "a"}, []string{"a", "b"}},
		{"all visible selected clears", []string{"a", "b"}, []string{"a", "b"}, []string{}},
		{"partial selection selects visible", []string{"a"}, []string{"a", "b"}, []string{"a", "b"}},
		{"hidden selections dropped", []string{"a", "z"}, []string{"a", "b"}, []string{"a", "b"}},
		{"nothing visible clears", []string{"a"}, nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelection()
			for _, id := range tt.selected {
				s.Toggle(id)
			}
			s.ToggleAll(tt.visible)
			assert.Equal(t, tt.want, s.IDs())
		})
	}
}

func TestSelection_Clear(t *testing.T) {
	s := NewSelection()
	s.Toggle("a")
	s.Toggle("b")
	s.Clear()
	assert.Equal(t, 0, s.Len())
}
