package services

import (
	"context"
	"testing"
	"time"

	"github.com/GaganMittal847/Companio/internal/apperr"
	"github.com/GaganMittal847/Companio/internal/events"
	"github.com/GaganMittal847/Companio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	svc       *chatService
	messages  *fakeMessages
	lists     *fakeChatLists
	publisher *recordingPublisher
	clock     *fixedClock
}

func newChatFixture() *chatFixture {
	f := &chatFixture{
		messages:  newFakeMessages(),
		lists:     newFakeChatLists(),
		publisher: &recordingPublisher{},
		clock:     newClock(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)),
	}
	f.svc = NewChatService(f.messages, f.lists, f.publisher, nopLogger).(*chatService)
	f.svc.now = f.clock.Now
	return f
}

func (f *chatFixture) send(t *testing.T, userID, name, msg string) *models.Message {
	t.Helper()
	m, err := f.svc.Append(context.Background(), models.CreateMessageRequest{RequestID: "R1", Msg: msg, UserID: userID, UserName: name})
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	return m
}

func TestChatMessagesAreOrdered(t *testing.T) {
	f := newChatFixture()
	f.send(t, "USER1", "Alice", "hi")
	f.send(t, "USER2", "Bob", "hello")
	f.send(t, "USER1", "Alice", "see you at six")

	out, err := f.svc.List(context.Background(), "R1")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"hi", "hello", "see you at six"}, []string{out[0].Msg, out[1].Msg, out[2].Msg})

	list := f.lists.byReq["R1"]
	require.NotNil(t, list)
	assert.Equal(t, "see you at six", list.LatestMsg)
	assert.Len(t, list.Users, 2, "each sender is added once")
	assert.Equal(t, []string{events.ChatMessageCreated, events.ChatMessageCreated, events.ChatMessageCreated}, f.publisher.types())
}

func TestChatMessagesSortedRegardlessOfInsertionOrder(t *testing.T) {
	f := newChatFixture()
	// Written late to early, as a delayed client would.
	f.clock.Advance(10 * time.Second)
	f.send(t, "USER1", "Alice", "third")
	f.clock.Advance(-6 * time.Second)
	f.send(t, "USER2", "Bob", "second")
	f.clock.Advance(-4 * time.Second)
	f.send(t, "USER1", "Alice", "first")

	out, err := f.svc.List(context.Background(), "R1")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{out[0].Msg, out[1].Msg, out[2].Msg})
	assert.True(t, out[0].CDt.Before(out[1].CDt))
	assert.True(t, out[1].CDt.Before(out[2].CDt))
}

func TestChatUpdateResetsTimestamp(t *testing.T) {
	f := newChatFixture()
	first := f.send(t, "USER1", "Alice", "hi")
	f.send(t, "USER2", "Bob", "hello")

	edited := "hi there"
	m, err := f.svc.Update(context.Background(), first.ID.Hex(), models.UpdateMessageRequest{Msg: &edited})
	require.NoError(t, err)
	assert.Equal(t, f.clock.Now(), m.CDt)

	out, err := f.svc.List(context.Background(), "R1")
	require.NoError(t, err)
	assert.Equal(t, "hi there", out[1].Msg, "edited message moves to the end")
	assert.Equal(t, "hi there", f.lists.byReq["R1"].LatestMsg)
}

func TestChatUpdateAndDeleteMissing(t *testing.T) {
	f := newChatFixture()
	msg := "x"
	ctx := context.Background()

	_, err := f.svc.Update(ctx, "65f0c1a2b3c4d5e6f7a8b9c0", models.UpdateMessageRequest{Msg: &msg})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	_, err = f.svc.Update(ctx, "bad-id", models.UpdateMessageRequest{Msg: &msg})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	err = f.svc.Delete(ctx, "65f0c1a2b3c4d5e6f7a8b9c0")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	m := f.send(t, "USER1", "Alice", "bye")
	require.NoError(t, f.svc.Delete(ctx, m.ID.Hex()))
	out, _ := f.svc.List(ctx, "R1")
	assert.Empty(t, out)
}

func TestChatLists(t *testing.T) {
	f := newChatFixture()
	ctx := context.Background()

	c, err := f.svc.CreateChatList(ctx, models.CreateChatListRequest{
		RequestID: "R2",
		Users:     []models.ChatParticipant{{ID: "USER1", Name: "Alice"}, {ID: "USER2", Name: "Bob"}},
	})
	require.NoError(t, err)
	assert.Nil(t, c.LatestMsgTime)

	_, err = f.svc.CreateChatList(ctx, models.CreateChatListRequest{RequestID: "R2", Users: []models.ChatParticipant{{ID: "USER1", Name: "Alice"}}})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	out, err := f.svc.ChatLists(ctx, "USER2")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "R2", out[0].RequestID)

	_, err = f.svc.ChatLists(ctx, " ")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}
