package podcast

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemConstructors(t *testing.T) {
	item, err := AudioItem(1, "report.pdf", "http://x/a.mp3")
	require.NoError(t, err)
	assert.True(t, item.HasAudio())
	assert.Empty(t, item.Summary)

	item, err = SummaryItem(2, "notes.txt", "s1")
	require.NoError(t, err)
	assert.False(t, item.HasAudio())
	assert.Equal(t, "s1", item.Summary)

	_, err = AudioItem(3, "a.pdf", "")
	assert.ErrorIs(t, err, ErrEmptyItem)
	_, err = SummaryItem(4, "a.pdf", "")
	assert.ErrorIs(t, err, ErrEmptyItem)
}

func TestCollectionPrependOrder(t *testing.T) {
	c := &Collection{}
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.All())

	for i := 1; i <= 3; i++ {
		c.Prepend(Item{ID: int64(i), Title: fmt.Sprintf("item %d", i), AudioURL: "u"})
	}

	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, "item 3", all[0].Title)
	assert.Equal(t, "item 1", all[2].Title)

	all[0].Title = "changed"
	assert.Equal(t, "item 3", c.All()[0].Title, "All returns a copy")
}

func TestCollectionPrependWith(t *testing.T) {
	c := &Collection{}
	c.Prepend(Item{ID: 1, Title: "first", Summary: "s"})

	item := c.PrependWith(func(size int) Item {
		return Item{ID: 2, Title: fmt.Sprintf("Demo podcast %d", size+1), AudioURL: "u"}
	})
	assert.Equal(t, "Demo podcast 2", item.Title)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, item, c.All()[0])
}

func TestIDSourceStrictlyIncreasing(t *testing.T) {
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ids := NewIDSource(func() time.Time { return frozen })

	first := ids.Next()
	assert.Equal(t, frozen.UnixMilli(), first)
	assert.Equal(t, first+1, ids.Next())
	assert.Equal(t, first+2, ids.Next())
}
