package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientLabel(t *testing.T) {
	tests := []struct {
		name      string
		lastname  string
		firstname string
		want      string
	}{
		{name: "regular", lastname: "Tremblay", firstname: "Marie", want: "Tremblay, Ma."},
		{name: "short first name", lastname: "Roy", firstname: "J", want: "Roy, J."},
		{name: "accented", lastname: "Côté", firstname: "Élodie", want: "Côté, Él."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClientLabel(tt.lastname, tt.firstname))
		})
	}
}

func TestNormalizeSet(t *testing.T) {
	got := NormalizeSet([]string{" pork", "beef", "", "pork", "  "})
	assert.Equal(t, []string{"beef", "pork"}, got)
}

func TestSetDifference(t *testing.T) {
	avoid := []string{"pork", "peanuts", "celery", "onion"}
	got := SetDifference(avoid, []string{"pork"}, []string{"onion", "garlic"})
	assert.Equal(t, []string{"celery", "peanuts"}, got)
}

func TestSetIntersection(t *testing.T) {
	got := SetIntersection([]string{"onion", "pork", "fish"}, []string{"pork", "carrot", "onion"})
	assert.Equal(t, []string{"onion", "pork"}, got)

	assert.Empty(t, SetIntersection(nil, []string{"pork"}))
}

func TestKitchenItemIsSpecial(t *testing.T) {
	assert.False(t, KitchenItem{}.IsSpecial())
	assert.True(t, KitchenItem{IncompatibleIngredients: []string{"pork"}}.IsSpecial())
}
