package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Ayakkabı & Çanta", "ayakkabi-canta"},
		{"Électronique", "electronique"},
		{"  Hello   World  ", "hello-world"},
		{"Shoes---Boots", "shoes-boots"},
		{"Größe 42", "grosse-42"},
		{"Smørrebrød", "smorrebrod"},
		{"100% Cotton", "100-cotton"},
		{"café", "cafe"},
		{"!!!", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	s := Slugify("Ayakkabı & Çanta")
	require.Equal(t, s, Slugify(s))
}
