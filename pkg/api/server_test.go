package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mocks "github.com/cbodonnell/worldlens/mocks/github.com/cbodonnell/worldlens/pkg/repositories"
	"github.com/cbodonnell/worldlens/pkg/game/types"
	"github.com/cbodonnell/worldlens/pkg/origins"
	"github.com/cbodonnell/worldlens/pkg/repositories"
	"github.com/cbodonnell/worldlens/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, repo *mocks.Repository) (http.Handler, *state.InMemorySnapshotStore) {
	t.Helper()
	store := state.NewInMemorySnapshotStore()
	resolver, err := origins.NewRepositoryResolver(repo, 0)
	require.NoError(t, err)
	return NewRouter(NewAPIServerOptions{
		Store:   store,
		Origins: resolver,
		Lister:  repo,
	}), store
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetSnapshot(t *testing.T) {
	h, store := newTestRouter(t, mocks.NewRepository(t))

	rec := serve(h, http.MethodGet, "/snapshot", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	entities := types.NewEntities()
	entities.Add(types.NewMob(0x4000000, 1500, types.Point{X: 2, Y: -2}, &types.Health{Max: 100, Current: 50}))
	require.NoError(t, store.Set(context.Background(), &types.Snapshot{
		Session:   "session",
		Tick:      3,
		Map:       types.NewMap("arena", types.Origin{X: 1000, Y: 1000}),
		Character: types.NewCharacter(types.Point{X: 1, Y: 1}),
		Entities:  entities,
	}))

	rec = serve(h, http.MethodGet, "/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var got types.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(3), got.Tick)
	assert.Equal(t, "arena", got.Map.Name)
	assert.Equal(t, types.KindCharacter, got.Character.Kind)
	require.Len(t, got.Entities.Mobs, 1)
	assert.Equal(t, &types.Health{Max: 100, Current: 50}, got.Entities.Mobs[0].Health)
}

func TestGetOrigin(t *testing.T) {
	repo := mocks.NewRepository(t)
	repo.EXPECT().LoadOrigin(mock.Anything, "arena").Return(types.Origin{X: 1000, Y: 1000}, nil).Once()
	repo.EXPECT().LoadOrigin(mock.Anything, "dungeon").Return(types.Origin{}, &repositories.ErrNotFound{What: "map dungeon"}).Once()
	h, _ := newTestRouter(t, repo)

	rec := serve(h, http.MethodGet, "/maps/arena/origin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"x":1000,"y":1000}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/maps/dungeon/origin", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPutOrigin(t *testing.T) {
	repo := mocks.NewRepository(t)
	repo.EXPECT().SaveOrigin(mock.Anything, "town1", types.Origin{X: -12.5, Y: 40}).Return(nil).Once()
	h, _ := newTestRouter(t, repo)

	rec := serve(h, http.MethodPut, "/maps/town1/origin", `{"x":-12.5,"y":40}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// served from the resolver cache afterwards
	rec = serve(h, http.MethodGet, "/maps/town1/origin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"x":-12.5,"y":40}`, rec.Body.String())

	rec = serve(h, http.MethodPut, "/maps/town1/origin", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListOrigins(t *testing.T) {
	repo := mocks.NewRepository(t)
	repo.EXPECT().ListOrigins(mock.Anything).Return(map[string]types.Origin{"arena": {X: 1, Y: 2}}, nil).Once()
	h, _ := newTestRouter(t, repo)

	rec := serve(h, http.MethodGet, "/maps", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"arena":{"x":1,"y":2}}`, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	h, store := newTestRouter(t, mocks.NewRepository(t))

	rec := serve(h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","tick":0}`, rec.Body.String())

	require.NoError(t, store.Set(context.Background(), &types.Snapshot{
		Session: "abc",
		Tick:    9,
		Map:     types.NewMap("arena", types.Origin{}),
	}))
	rec = serve(h, http.MethodGet, "/healthz", "")
	assert.JSONEq(t, `{"status":"ok","session":"abc","tick":9,"map":"arena"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestRouter(t, mocks.NewRepository(t))

	rec := serve(h, http.MethodOptions, "/maps/arena/origin", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET, PUT, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestGetOrigin_FallsBackToConfiguredOrigins(t *testing.T) {
	repo := mocks.NewRepository(t)
	repo.EXPECT().LoadOrigin(mock.Anything, "town1").Return(types.Origin{}, &repositories.ErrNotFound{What: "map town1"}).Once()
	repo.EXPECT().SaveOrigin(mock.Anything, "town1", types.Origin{X: 5, Y: 6}).Return(nil).Once()
	repo.EXPECT().LoadOrigin(mock.Anything, "dungeon").Return(types.Origin{}, &repositories.ErrNotFound{What: "map dungeon"}).Once()

	resolver, err := origins.NewRepositoryResolver(repo, 0)
	require.NoError(t, err)
	h := NewRouter(NewAPIServerOptions{
		Store:    state.NewInMemorySnapshotStore(),
		Origins:  resolver,
		Resolver: origins.Chain{resolver, origins.Static{"town1": {X: 1000, Y: 1000}}},
	})

	rec := serve(h, http.MethodGet, "/maps/town1/origin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"x":1000,"y":1000}`, rec.Body.String())

	// a stored origin overrides the configured one
	rec = serve(h, http.MethodPut, "/maps/town1/origin", `{"x":5,"y":6}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = serve(h, http.MethodGet, "/maps/town1/origin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"x":5,"y":6}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/maps/dungeon/origin", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
