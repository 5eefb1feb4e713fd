package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revobooking/revo-ui/internal/domain/ident"
)

type rec struct {
	id   ident.ID
	name string
}

func TestEditTarget_SingleTarget(t *testing.T) {
	var e EditTarget[string]
	assert.False(t, e.Active())
	assert.False(t, e.Is(""))

	e = StartEdit[string]("1", "Bali")
	assert.True(t, e.Is("1"))
	assert.Equal(t, "Bali", e.Buffer())

	e = StartEdit[string]("2", "Tokyo")
	assert.False(t, e.Is("1"), "starting a second edit replaces the first")
	assert.True(t, e.Is("2"))

	e = e.Cancel()
	assert.False(t, e.Active())
	assert.Empty(t, e.Buffer())
}

func TestStartEditFor(t *testing.T) {
	items := []rec{{"1", "Bali"}, {"2", "Tokyo"}}
	idOf := func(r rec) ident.ID { return r.id }
	toBuf := func(r rec) string { return r.name }

	e := StartEditFor(items, "2", idOf, toBuf)
	assert.True(t, e.Is("2"))
	assert.Equal(t, "Tokyo", e.Buffer())

	assert.False(t, StartEditFor(items, "9", idOf, toBuf).Active())
	assert.False(t, StartEditFor(items, "", idOf, toBuf).Active())
}
