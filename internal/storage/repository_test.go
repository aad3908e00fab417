package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAddsNewURL(t *testing.T) {
	h := NewHistory()

	assert.True(t, h.Append(ListNews, "https://example.com/a", 50))
	assert.True(t, h.Contains(ListNews, "https://example.com/a"))
	assert.False(t, h.Contains(ListEditorials, "https://example.com/a"))
	assert.Equal(t, 1, h.Len(ListNews))
}

func TestAppendSkipsDuplicates(t *testing.T) {
	h := NewHistory()

	require.True(t, h.Append(ListEditorials, "u1", 50))
	assert.False(t, h.Append(ListEditorials, "u1", 50))
	assert.Equal(t, []string{"u1"}, h.Editorials)
}

func TestAppendEvictsOldestFirst(t *testing.T) {
	h := NewHistory()

	for i := 0; i < 60; i++ {
		require.True(t, h.Append(ListNews, fmt.Sprintf("u%02d", i), 50))
		assert.LessOrEqual(t, h.Len(ListNews), 50)
	}

	require.Len(t, h.News, 50)
	assert.Equal(t, "u10", h.News[0])
	assert.Equal(t, "u59", h.News[49])
	assert.False(t, h.Contains(ListNews, "u09"))
}

func TestEvictedURLCanBeAppendedAgain(t *testing.T) {
	h := NewHistory()
	h.Append(ListNews, "first", 2)
	h.Append(ListNews, "second", 2)
	h.Append(ListNews, "third", 2)

	assert.False(t, h.Contains(ListNews, "first"))
	assert.True(t, h.Append(ListNews, "first", 2))
	assert.Equal(t, []string{"third", "first"}, h.News)
}

func TestUnknownList(t *testing.T) {
	h := NewHistory()

	assert.False(t, h.Append(List("bogus"), "u", 50))
	assert.False(t, h.Contains(List("bogus"), "u"))
	assert.Equal(t, 0, h.Len(List("bogus")))
}

func TestNormalizeReplacesNilLists(t *testing.T) {
	h := &History{News: []string{"a"}}
	h.Normalize(50)

	assert.Equal(t, []string{"a"}, h.News)
	assert.NotNil(t, h.Editorials)
	assert.NotNil(t, h.NewsArticles)
}

func TestNormalizeTrimsEveryList(t *testing.T) {
	var news, editorials []string
	for i := 0; i < 60; i++ {
		news = append(news, fmt.Sprintf("n%d", i))
	}
	for i := 0; i < 3; i++ {
		editorials = append(editorials, fmt.Sprintf("e%d", i))
	}
	h := &History{News: news, Editorials: editorials}

	h.Normalize(50)

	require.Len(t, h.News, 50)
	assert.Equal(t, "n10", h.News[0], "oldest entries are dropped")
	assert.Equal(t, "n59", h.News[49])
	assert.Equal(t, editorials, h.Editorials)
	assert.Empty(t, h.NewsArticles)
}
