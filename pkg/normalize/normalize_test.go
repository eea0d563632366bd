package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Villegascvrr/entalpiamvp-sub000/pkg/normalize"
)

func TestFold(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Tubería", "tuberia"},
		{"LÁMINA", "lamina"},
		{"Calderería Núñez", "caldereria nunez"},
		{"cobre", "cobre"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, normalize.Fold(c.in))
	}
}

func TestContains(t *testing.T) {
	assert.True(t, normalize.Contains("Tubería de cobre 15mm", "tuberia"))
	assert.True(t, normalize.Contains("Tuberia de cobre", "TUBERÍA"))
	assert.True(t, normalize.Contains("Lámina de cobre 0.5mm", "LAMINA"))
	assert.False(t, normalize.Contains("Barra de cobre", "tuberia"))
}
