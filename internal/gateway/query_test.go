package gateway

import (
	"context"
	"testing"

	"tribex/internal/gatewaytest"
	"tribex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryBuilder_WireQuery(t *testing.T) {
	c := New(gatewaytest.UnreachableConfig(t.TempDir()))

	q := c.From("posts").
		Select("*,profiles(name,avatar_url)").
		Eq("club_id", "c1").
		Order("created_at", true).
		Limit(10)

	wire := q.wireQuery()
	assert.Equal(t, "*,profiles(name,avatar_url)", wire.Get("select"))
	assert.Equal(t, "eq.c1", wire.Get("club_id"))
	assert.Equal(t, "created_at.desc", wire.Get("order"))
	assert.Equal(t, "10", wire.Get("limit"))
}

func TestQueryBuilder_OrderAscending(t *testing.T) {
	c := New(gatewaytest.UnreachableConfig(t.TempDir()))
	wire := c.From("posts").Order("created_at", false).wireQuery()
	assert.Equal(t, "created_at.asc", wire.Get("order"))
}

func TestGet_DecodesRows(t *testing.T) {
	srv := gatewaytest.New(t)
	srv.SeedPost(t, gatewaytest.Post{UserID: "u1", Content: "um"})
	srv.SeedPost(t, gatewaytest.Post{UserID: "u2", Content: "dois"})
	c := newTestClient(t, srv)

	var rows []models.Post
	err := c.From("posts").Select("*").Get(context.Background(), &rows)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestGet_EqFilter(t *testing.T) {
	srv := gatewaytest.New(t)
	srv.SeedPost(t, gatewaytest.Post{UserID: "u1", Content: "meu"})
	srv.SeedPost(t, gatewaytest.Post{UserID: "u2", Content: "de outra pessoa"})
	c := newTestClient(t, srv)

	var rows []models.Post
	err := c.From("posts").Select("*").Eq("user_id", "u1").Get(context.Background(), &rows)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "meu", rows[0].Content)
}

func TestGet_Limit(t *testing.T) {
	srv := gatewaytest.New(t)
	for i := 0; i < 5; i++ {
		srv.SeedPost(t, gatewaytest.Post{UserID: "u1", Content: "post"})
	}
	c := newTestClient(t, srv)

	var rows []models.Post
	err := c.From("posts").Select("*").Limit(3).Get(context.Background(), &rows)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestGet_SingleZeroRowsIsNotFound(t *testing.T) {
	srv := gatewaytest.New(t)
	c := newTestClient(t, srv)

	var row map[string]any
	err := c.From("profiles").Select("*").Eq("id", "nao-existe").Single().Get(context.Background(), &row)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, "NOT_FOUND"))
}

func TestGet_UnknownTable(t *testing.T) {
	srv := gatewaytest.New(t)
	c := newTestClient(t, srv)

	var rows []map[string]any
	err := c.From("missing_table").Select("*").Get(context.Background(), &rows)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, "NOT_FOUND"))
}

func TestGet_UnreachableService(t *testing.T) {
	c := New(gatewaytest.UnreachableConfig(t.TempDir()))

	var rows []models.Post
	err := c.From("posts").Select("*").Get(context.Background(), &rows)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, "UNAVAILABLE"))
}

func TestInsert_ReturnsRepresentation(t *testing.T) {
	srv := gatewaytest.New(t)
	c := newTestClient(t, srv)

	var created models.Post
	row := map[string]any{"user_id": "u1", "content": "criado"}
	err := c.From("posts").Insert(context.Background(), row, &created)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "criado", created.Content)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestInsert_NilDest(t *testing.T) {
	srv := gatewaytest.New(t)
	c := newTestClient(t, srv)

	row := map[string]any{"club_id": "c1", "user_id": "u1", "role": "member"}
	err := c.From("club_members").Insert(context.Background(), row, nil)
	require.NoError(t, err)

	var member gatewaytest.ClubMember
	require.NoError(t, srv.DB.First(&member, "club_id = ? AND user_id = ?", "c1", "u1").Error)
	assert.Equal(t, "member", member.Role)
}

func TestInsert_UniqueViolationIsConflict(t *testing.T) {
	srv := gatewaytest.New(t)
	c := newTestClient(t, srv)
	ctx := context.Background()

	row := map[string]any{"club_id": "c1", "user_id": "u1", "role": "member"}
	require.NoError(t, c.From("club_members").Insert(ctx, row, nil))

	err := c.From("club_members").Insert(ctx, row, nil)
	require.Error(t, err)
	assert.True(t, models.HasCode(err, "CONFLICT"))
}

func TestMapStatusError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     errorBody
		wantCode string
	}{
		{"unique violation by sqlstate", 409, errorBody{Code: "23505"}, "CONFLICT"},
		{"unique violation by message", 500, errorBody{Message: "duplicate key value violates unique constraint"}, "CONFLICT"},
		{"unauthorized", 401, errorBody{Message: "JWT expired"}, "UNAUTHORIZED"},
		{"forbidden", 403, errorBody{}, "UNAUTHORIZED"},
		{"not found", 404, errorBody{}, "NOT_FOUND"},
		{"single row miss", 406, errorBody{Code: "PGRST116"}, "NOT_FOUND"},
		{"conflict", 409, errorBody{}, "CONFLICT"},
		{"bad request", 400, errorBody{ErrorDescription: "Invalid login credentials"}, "VALIDATION_ERROR"},
		{"unprocessable", 422, errorBody{Msg: "User already registered"}, "VALIDATION_ERROR"},
		{"server error", 500, errorBody{}, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapStatusError(tt.status, tt.body)
			assert.True(t, models.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}
