package postgres

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revuehub/api/internal/domain/entity"
)

// List scans every row before genres are attached, so the genre writes go
// through pointers collected across many appends. Growing the collection must
// not detach earlier pointers from the titles the caller finally receives.
func TestListKeepsGenresAttachedAcrossGrowth(t *testing.T) {
	const n = 40 // enough appends to force several slice reallocations

	ptrs := make([]*entity.Title, 0)
	for i := 0; i < n; i++ {
		ptrs = append(ptrs, &entity.Title{ID: int64(i + 1), Name: fmt.Sprintf("title-%d", i+1)})
	}

	// attachGenres writes through the collected pointers after scanning is
	// done; simulate that write order here.
	for _, p := range ptrs {
		p.Genres = []entity.Genre{{ID: p.ID, Slug: fmt.Sprintf("genre-%d", p.ID)}}
	}

	titles := flattenTitles(ptrs)
	require.Len(t, titles, n)
	for i, title := range titles {
		require.Len(t, title.Genres, 1, "title %d lost its genres", i+1)
		assert.Equal(t, fmt.Sprintf("genre-%d", title.ID), title.Genres[0].Slug)
	}
}

func TestFlattenTitlesEmpty(t *testing.T) {
	assert.Empty(t, flattenTitles(nil))
}
