package thread

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/internal/api"
)

type sendCall struct {
	chatID  int64
	userID  int64
	content string
}

type fakeChatsAPI struct {
	messages  map[int64][]api.Message
	listErr   error
	listCalls int

	sendErr   error
	sendCalls []sendCall
}

func (f *fakeChatsAPI) ListMessages(ctx context.Context, chatID int64) ([]api.Message, error) {
	f.listCalls++
	return f.messages[chatID], f.listErr
}

func (f *fakeChatsAPI) SendMessage(ctx context.Context, chatID, userID int64, content string) (*api.Message, error) {
	f.sendCalls = append(f.sendCalls, sendCall{chatID: chatID, userID: userID, content: content})
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	return &api.Message{ID: 100, Content: content, UserID: userID}, nil
}

type fakeChatList struct {
	refreshCalls int
}

func (f *fakeChatList) Refresh(ctx context.Context) error {
	f.refreshCalls++
	return nil
}

func TestSendWhitespaceOnlyDraftIsLocalNoop(t *testing.T) {
	chatsAPI := &fakeChatsAPI{}
	chatList := &fakeChatList{}
	model := New(chatsAPI, chatList, 1)
	model.Select(5)

	for _, draft := range []string{"", "   ", "\n\t "} {
		model.SetDraft(draft)
		require.NoError(t, model.Send(context.Background()))
	}
	assert.Empty(t, chatsAPI.sendCalls)
	assert.Equal(t, 0, chatsAPI.listCalls)
	assert.Equal(t, 0, chatList.refreshCalls)
}

func TestSendClearsDraftAndRefreshesBoth(t *testing.T) {
	chatsAPI := &fakeChatsAPI{messages: map[int64][]api.Message{
		5: {{ID: 100, Content: "hello", UserID: 1}},
	}}
	chatList := &fakeChatList{}
	model := New(chatsAPI, chatList, 1)
	model.Select(5)
	model.SetDraft("hello")

	require.NoError(t, model.Send(context.Background()))

	require.Len(t, chatsAPI.sendCalls, 1)
	call := chatsAPI.sendCalls[0]
	assert.Equal(t, int64(5), call.chatID)
	assert.Equal(t, int64(1), call.userID)
	assert.Equal(t, "hello", call.content)

	assert.Empty(t, model.Draft())
	assert.Equal(t, 1, chatsAPI.listCalls)
	assert.Equal(t, 1, chatList.refreshCalls)
	require.Len(t, model.Messages(), 1)
}

// The draft goes out exactly as typed; surrounding whitespace is not
// stripped from the payload.
func TestSendSubmitsDraftVerbatim(t *testing.T) {
	chatsAPI := &fakeChatsAPI{}
	model := New(chatsAPI, &fakeChatList{}, 1)
	model.Select(5)
	model.SetDraft("  hello  ")

	require.NoError(t, model.Send(context.Background()))
	require.Len(t, chatsAPI.sendCalls, 1)
	assert.Equal(t, "  hello  ", chatsAPI.sendCalls[0].content)
}

func TestSendTransportFailureKeepsDraft(t *testing.T) {
	chatsAPI := &fakeChatsAPI{sendErr: errors.New("connection refused")}
	chatList := &fakeChatList{}
	model := New(chatsAPI, chatList, 1)
	model.Select(5)
	model.SetDraft("hello")

	require.Error(t, model.Send(context.Background()))
	assert.Equal(t, "hello", model.Draft())
	assert.Equal(t, 0, chatsAPI.listCalls)
	assert.Equal(t, 0, chatList.refreshCalls)
}

func TestSendRejectionClearsDraftSilently(t *testing.T) {
	chatsAPI := &fakeChatsAPI{sendErr: &api.Error{StatusCode: 403, Reason: "user cannot write to this chat"}}
	chatList := &fakeChatList{}
	model := New(chatsAPI, chatList, 1)
	model.Select(5)
	model.SetDraft("hello")

	require.NoError(t, model.Send(context.Background()))
	assert.Empty(t, model.Draft())
	assert.Equal(t, 1, chatsAPI.listCalls)
	assert.Equal(t, 1, chatList.refreshCalls)
}

func TestSendWithoutSelectionIsNoop(t *testing.T) {
	chatsAPI := &fakeChatsAPI{}
	model := New(chatsAPI, &fakeChatList{}, 1)
	model.SetDraft("hello")

	require.NoError(t, model.Send(context.Background()))
	assert.Empty(t, chatsAPI.sendCalls)
	assert.Equal(t, "hello", model.Draft())
}

func TestSelectDiscardsPreviousMessages(t *testing.T) {
	chatsAPI := &fakeChatsAPI{messages: map[int64][]api.Message{
		5: {{ID: 1, Content: "old"}},
		6: {{ID: 2, Content: "new"}},
	}}
	model := New(chatsAPI, &fakeChatList{}, 1)
	model.Select(5)
	require.NoError(t, model.Refresh(context.Background()))
	require.Len(t, model.Messages(), 1)

	model.Select(6)
	assert.Empty(t, model.Messages())
	require.NoError(t, model.Refresh(context.Background()))
	require.Len(t, model.Messages(), 1)
	assert.Equal(t, "new", model.Messages()[0].Content)
}

// A response that arrives after the selection has moved on must not
// overwrite the newer conversation's state.
func TestLateResponseForSupersededSelectionIsDropped(t *testing.T) {
	started := make(chan struct{})
	proceed := make(chan struct{})
	chatsAPI := &blockingChatsAPI{started: started, proceed: proceed, messages: map[int64][]api.Message{
		5: {{ID: 1, Content: "stale"}},
		6: {{ID: 2, Content: "fresh"}},
	}}
	model := New(chatsAPI, &fakeChatList{}, 1)
	model.Select(5)

	done := make(chan error)
	go func() { done <- model.Refresh(context.Background()) }()
	<-started

	// Selection moves on while the first response is in flight.
	model.Select(6)
	close(proceed)
	require.NoError(t, <-done)
	assert.Empty(t, model.Messages())

	require.NoError(t, model.Refresh(context.Background()))
	require.Len(t, model.Messages(), 1)
	assert.Equal(t, "fresh", model.Messages()[0].Content)
}

type blockingChatsAPI struct {
	started  chan struct{}
	proceed  chan struct{}
	messages map[int64][]api.Message
	calls    int
}

func (b *blockingChatsAPI) ListMessages(ctx context.Context, chatID int64) ([]api.Message, error) {
	b.calls++
	if b.calls == 1 {
		close(b.started)
		<-b.proceed
	}
	return b.messages[chatID], nil
}

func (b *blockingChatsAPI) SendMessage(ctx context.Context, chatID, userID int64, content string) (*api.Message, error) {
	return nil, errors.New("not implemented")
}
