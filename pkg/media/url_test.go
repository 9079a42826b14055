package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	b := NewURLBuilder("https://docs.example.com/")

	id := int64(42)
	u := b.URL(&id)
	require.NotNil(t, u)
	assert.Equal(t, "https://docs.example.com/api/media/42/raw", *u)

	assert.Nil(t, b.URL(nil))
	zero := int64(0)
	assert.Nil(t, b.URL(&zero))
}
