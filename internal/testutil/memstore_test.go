package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staydesk/backoffice-api/internal/database"
	"github.com/staydesk/backoffice-api/internal/models"
)

func TestMemStore_Semantics(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	id1, err := s.Create(ctx, database.CollectionRooms, models.Fields{"number": "101", "status": "occupied", "floor": 1})
	require.NoError(t, err)
	id2, err := s.Create(ctx, database.CollectionRooms, models.Fields{"number": "102", "status": "vacant-clean", "floor": 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	require.NoError(t, s.Delete(ctx, database.CollectionRooms, id1))
	id3, err := s.Create(ctx, database.CollectionRooms, models.Fields{"number": "103"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id3, "ids are max+1")

	require.NoError(t, s.Update(ctx, database.CollectionRooms, id2, models.Fields{"status": "occupied"}))
	var room models.Room
	require.NoError(t, s.Get(ctx, database.CollectionRooms, id2, &room))
	assert.Equal(t, models.RoomStatusOccupied, room.Status)
	assert.Equal(t, "102", room.Number, "shallow merge keeps other fields")

	err = s.Update(ctx, database.CollectionRooms, 42, models.Fields{"status": "occupied"})
	assert.True(t, database.IsNotFound(err))
	assert.True(t, database.IsNotFound(s.Delete(ctx, database.CollectionRooms, 42)))

	var rooms []models.Room
	require.NoError(t, s.List(ctx, database.CollectionRooms, &rooms))
	require.Len(t, rooms, 2)
	assert.Equal(t, int64(2), rooms[0].ID)

	var recent []models.Room
	require.NoError(t, s.Recent(ctx, database.CollectionRooms, 1, &recent))
	require.Len(t, recent, 1)
	assert.Equal(t, int64(3), recent[0].ID)
}

func TestMemStore_FailWith(t *testing.T) {
	s := NewMemStore()
	s.FailWith("list", database.CollectionGuests, errors.New("offline"))

	var guests []models.Guest
	err := s.List(context.Background(), database.CollectionGuests, &guests)
	assert.True(t, database.IsBackendFailure(err))

	s.Clear("list", database.CollectionGuests)
	assert.NoError(t, s.List(context.Background(), database.CollectionGuests, &guests))
	assert.Empty(t, guests)
}
