package vdab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		raw                      string
		title, company, location string
	}{
		{"Boekhouder - Acme BV - Gent", "Boekhouder", "Acme BV", "Gent"},
		{"Boekhouder - Acme BV", "Boekhouder", "Acme BV", ""},
		{"Boekhouder", "Boekhouder", "", ""},
		{"", "", "", ""},
		// Company names with a dash keep everything between the first
		// and last segment together.
		{"Developer - Smith - Jones NV - Leuven", "Developer", "Smith - Jones NV", "Leuven"},
		{"  Magazijnier   -  Depot  -  Hasselt ", "Magazijnier", "Depot", "Hasselt"},
	}
	for _, tt := range tests {
		title, company, location := splitTitle(tt.raw)
		assert.Equal(t, tt.title, title, tt.raw)
		assert.Equal(t, tt.company, company, tt.raw)
		assert.Equal(t, tt.location, location, tt.raw)
	}
}
