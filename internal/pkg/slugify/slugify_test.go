package slugify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Hello World", want: "hello-world"},
		{in: "Éducation & Tech", want: "education-tech"},
		{in: "  déjà   vu  ", want: "deja-vu"},
		{in: "100% bénévole", want: "100-benevole"},
		{in: "---", want: ""},
		{in: "", want: ""},
		{in: "Journée Portes-Ouvertes 2025!", want: "journee-portes-ouvertes-2025"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestMakeUnique(t *testing.T) {
	taken := map[string]bool{"atelier": true, "atelier-1": true}
	exists := func(s string) (bool, error) { return taken[s], nil }

	got, err := MakeUnique("atelier", 50, exists)
	assert.NoError(t, err)
	assert.Equal(t, "atelier-2", got)

	got, err = MakeUnique("libre", 50, exists)
	assert.NoError(t, err)
	assert.Equal(t, "libre", got)
}

func TestMakeUnique_TruncatesToMaxLen(t *testing.T) {
	got, err := MakeUnique("une-tres-longue-base", 8, func(string) (bool, error) { return false, nil })
	assert.NoError(t, err)
	assert.Equal(t, "une-tres", got)
}
