// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yomira-search/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := map[string]string{
		"Acción":               "accion",
		"Ciencia ficción":      "ciencia-ficcion",
		"Recuentos de la vida": "recuentos-de-la-vida",
		"  Sci-Fi!! ":          "sci-fi",
		"Psicológico":          "psicologico",
		"":                     "",
	}

	for input, want := range tests {
		assert.Equal(t, want, slug.From(input), input)
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, slug.Key("ACCIÓN"), slug.Key("accion"))
	assert.Equal(t, "fantasia", slug.Key("Fantasía"))
	assert.Equal(t, "accion", slug.StripMarks("acción"))
}
