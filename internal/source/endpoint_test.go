package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpointValidate(t *testing.T) {
	t.Run("valid endpoint", func(t *testing.T) {
		ep := New("https://birds.example.com/feed", "Example Feed", "xeno-canto", 85)
		assert.NoError(t, ep.Validate())
	})

	t.Run("rejects empty address", func(t *testing.T) {
		ep := New("", "No Address", "community", 50)
		err := ep.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "address cannot be empty")
	})

	t.Run("rejects declared quality over 100", func(t *testing.T) {
		ep := New("https://a.example.com", "A", "community", 101)
		assert.Error(t, ep.Validate())
	})

	t.Run("rejects negative declared quality", func(t *testing.T) {
		ep := New("https://a.example.com", "A", "community", -1)
		assert.Error(t, ep.Validate())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		ep := New("https://a.example.com", "A", "community", 50)
		ep.Status = Status("flapping")
		assert.Error(t, ep.Validate())
	})
}

func TestStatusValidate(t *testing.T) {
	for _, s := range []Status{StatusUnknown, StatusOnline, StatusOffline} {
		assert.NoError(t, s.Validate())
	}
	assert.Error(t, Status("bogus").Validate())
}

func TestDedupe(t *testing.T) {
	t.Run("keeps first occurrence", func(t *testing.T) {
		a1 := New("https://a.example.com", "A first", "community", 80)
		b := New("https://b.example.com", "B", "community", 70)
		a2 := New("https://a.example.com", "A second", "archive", 60)

		deduped := Dedupe([]*Endpoint{a1, b, a2})

		assert.Len(t, deduped, 2)
		assert.Same(t, a1, deduped[0])
		assert.Same(t, b, deduped[1])
		assert.Equal(t, "A first", deduped[0].Label)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Dedupe(nil))
	})
}
