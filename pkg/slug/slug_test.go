// Copyright (c) 2026 Undervalued Books. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/undervaluedbooks/api/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline used for book links.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "Dune", "dune"},
		{"spaces_to_hyphens", "The Master and Margarita", "the-master-and-margarita"},
		{"accents_removed", "Les Misérables", "les-miserables"},
		{"punctuation_stripped", "Who's Afraid of Virginia Woolf?", "who-s-afraid-of-virginia-woolf"},
		{"collapsed_hyphens", "War  --  and  Peace", "war-and-peace"},
		{"empty_string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
