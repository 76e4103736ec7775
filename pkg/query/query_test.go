// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/yomira-search/pkg/query"
)

func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(nil))
	assert.Equal(t, []string{"Acción", "Drama", "Terror"}, query.StringSlice([]string{"Acción, Drama", " ", "Terror,"}))
}

func TestInt(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"", nil},
		{"abc", nil},
		{"12.5", nil},
		{" 2019 ", intPtr(2019)},
		{"-3", intPtr(-3)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, query.Int(tt.raw))
		})
	}
}

func TestFloat(t *testing.T) {
	assert.Nil(t, query.Float(""))
	assert.Nil(t, query.Float("NaN"))
	assert.Nil(t, query.Float("+Inf"))
	assert.Nil(t, query.Float("7,5"))

	got := query.Float("7.5")
	require.NotNil(t, got)
	assert.InDelta(t, 7.5, *got, 1e-9)
}

func intPtr(v int) *int { return &v }
