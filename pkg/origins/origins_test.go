package origins

import (
	"context"
	"errors"
	"testing"

	mocks "github.com/cbodonnell/worldlens/mocks/github.com/cbodonnell/worldlens/pkg/repositories"
	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatic_Origin(t *testing.T) {
	s := Static{"arena": {X: 1000, Y: 1000}}

	origin, err := s.Origin(context.Background(), "arena")
	require.NoError(t, err)
	assert.Equal(t, types.Origin{X: 1000, Y: 1000}, origin)

	_, err = s.Origin(context.Background(), "town1")
	assert.ErrorIs(t, err, ErrUnknownMap)
}

func TestRepositoryResolver_CachesLookups(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewRepository(t)
	repo.EXPECT().LoadOrigin(mock.Anything, "town1").Return(types.Origin{X: 1, Y: 2}, nil).Once()
	repo.EXPECT().LoadOrigin(mock.Anything, "town2").Return(types.Origin{}, &repositories.ErrNotFound{What: "map town2"}).Once()

	r, err := NewRepositoryResolver(repo, 4)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		origin, err := r.Origin(ctx, "town1")
		require.NoError(t, err)
		assert.Equal(t, types.Origin{X: 1, Y: 2}, origin)
	}

	_, err = r.Origin(ctx, "town2")
	assert.ErrorIs(t, err, ErrUnknownMap)
}

func TestRepositoryResolver_Save(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewRepository(t)
	repo.EXPECT().SaveOrigin(mock.Anything, "arena", types.Origin{X: 5, Y: 6}).Return(nil).Once()

	r, err := NewRepositoryResolver(repo, 0)
	require.NoError(t, err)
	require.NoError(t, r.Save(ctx, "arena", types.Origin{X: 5, Y: 6}))

	// served from cache, LoadOrigin is never called
	origin, err := r.Origin(ctx, "arena")
	require.NoError(t, err)
	assert.Equal(t, types.Origin{X: 5, Y: 6}, origin)
}

func TestChain_Origin(t *testing.T) {
	ctx := context.Background()
	failing := mocks.NewRepository(t)
	failing.EXPECT().LoadOrigin(mock.Anything, "dungeon").Return(types.Origin{}, errors.New("connection reset")).Once()
	fromRepo, err := NewRepositoryResolver(failing, 1)
	require.NoError(t, err)

	c := Chain{
		Static{"arena": {X: 1000, Y: 1000}},
		fromRepo,
	}

	origin, err := c.Origin(ctx, "arena")
	require.NoError(t, err)
	assert.Equal(t, types.Origin{X: 1000, Y: 1000}, origin)

	_, err = c.Origin(ctx, "dungeon")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownMap)

	_, err = Chain{Static{}}.Origin(ctx, "nowhere")
	assert.ErrorIs(t, err, ErrUnknownMap)
}
