package main

import (
	"strings"
	"testing"
)

func TestFormatFlags(t *testing.T) {
	tcs := []struct {
		name string
		cfg  MainConfig
		want string
	}{
		{name: "none", cfg: MainConfig{}, want: ""},
		{name: "json", cfg: MainConfig{J: true}, want: "-j"},
		{name: "yaml", cfg: MainConfig{Y: true}, want: "-y"},
		{name: "two", cfg: MainConfig{J: true, T: true}, want: "-j -t"},
		{name: "all", cfg: MainConfig{J: true, Y: true, T: true}, want: "-j -y -t"},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := strings.Join(tc.cfg.formatFlags(), " ")
			if got != tc.want {
				t.Errorf("formatFlags = %q, want %q", got, tc.want)
			}
		})
	}
}
