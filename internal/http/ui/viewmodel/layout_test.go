package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigation(t *testing.T) {
	admin := Navigation(true)
	assert.Len(t, admin, 1)
	assert.Equal(t, "/admin", admin[0].Href)

	customer := Navigation(false)
	labels := make([]string, 0, len(customer))
	for _, item := range customer {
		labels = append(labels, item.Label)
	}
	assert.Equal(t, []string{"Beranda", "Booking", "Dashboard"}, labels)
}
