// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses raw URL query values into typed, optional values.
package query

import (
	"math"
	"strconv"
	"strings"
)

// StringSlice flattens repeated and comma-separated values into a trimmed slice.
// Empty entries are dropped.
func StringSlice(vals []string) []string {
	var res []string
	for _, val := range vals {
		for _, v := range strings.Split(val, ",") {
			if clean := strings.TrimSpace(v); clean != "" {
				res = append(res, clean)
			}
		}
	}
	return res
}

// Int parses raw as an integer. Invalid or empty input yields nil.
func Int(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// Float parses raw as a finite float. Invalid, empty, NaN or infinite input yields nil.
func Float(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
