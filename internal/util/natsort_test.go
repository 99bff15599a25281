package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaturalSort(t *testing.T) {
	names := []string{"host2", "host10", "host1"}
	NaturalSort(names)
	assert.Equal(t, []string{"host1", "host2", "host10"}, names)
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"host1", "host2", true},
		{"host2", "host10", true},
		{"host10", "host2", false},
		{"a", "b", true},
		{"a", "a", false},
		{"", "a", true},
		{"a", "", false},
		{"web1.example.com", "web10.example.com", true},
		{"web10.example.com", "web9.example.com", false},
		{"db-2-replica", "db-10-replica", true},
		{"abc", "abc1", true},
		{"100", "99", false},
		{"099", "100", true},
		{"1", "01", true}, // equal value, fewer leading zeros first
		{"host01b", "host1a", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NaturalLess(tt.a, tt.b), "NaturalLess(%q, %q)", tt.a, tt.b)
	}
}

func TestNaturalSortMixed(t *testing.T) {
	names := []string{"vm-20", "vm-3", "alpha", "vm-3a", "10", "2", "vm-3.example.com"}
	NaturalSort(names)
	assert.Equal(t, []string{"2", "10", "alpha", "vm-3", "vm-3.example.com", "vm-3a", "vm-20"}, names)
}
