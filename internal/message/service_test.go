// AngelaMos | 2026
// service_test.go

package message_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakerycrew/crew-backend/internal/core"
	"github.com/bakerycrew/crew-backend/internal/message"
	"github.com/bakerycrew/crew-backend/internal/policy"
)

const (
	devID = "00000000-0000-0000-0000-000000000001"
	m1ID  = "00000000-0000-0000-0000-000000000011"
	m2ID  = "00000000-0000-0000-0000-000000000012"
	u1ID  = "00000000-0000-0000-0000-000000000021"
	u2ID  = "00000000-0000-0000-0000-000000000022"
	u3ID  = "00000000-0000-0000-0000-000000000023"
)

var (
	developer = policy.Actor{ID: devID, Role: policy.RoleDeveloper}
	manager1  = policy.Actor{ID: m1ID, Role: policy.RoleManager, Shift: policy.ShiftFirst}
	user1     = policy.Actor{ID: u1ID, Role: policy.RoleUser, Shift: policy.ShiftFirst, ManagerID: m1ID}
	orphan    = policy.Actor{ID: u3ID, Role: policy.RoleUser, Shift: policy.ShiftSecond}
)

type fakeRepo struct {
	mu       sync.Mutex
	subjects map[string]policy.Subject
	messages []message.Message
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{subjects: map[string]policy.Subject{
		devID: {ID: devID, Role: policy.RoleDeveloper},
		m1ID:  {ID: m1ID, Role: policy.RoleManager, Shift: policy.ShiftFirst},
		m2ID:  {ID: m2ID, Role: policy.RoleManager, Shift: policy.ShiftSecond},
		u1ID:  {ID: u1ID, Role: policy.RoleUser, Shift: policy.ShiftFirst},
		u2ID:  {ID: u2ID, Role: policy.RoleUser, Shift: policy.ShiftSecond},
		u3ID:  {ID: u3ID, Role: policy.RoleUser, Shift: policy.ShiftSecond},
	}}
}

func (f *fakeRepo) GetRecipient(_ context.Context, id string) (policy.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.subjects[id]
	if !ok {
		return policy.Subject{}, core.ErrNotFound
	}
	return s, nil
}

func (f *fakeRepo) Create(_ context.Context, msg *message.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	msg.SentDate = time.Now().Add(time.Duration(len(f.messages)) * time.Second)
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeRepo) filter(keep func(message.Message) bool) []message.Message {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []message.Message{}
	for _, m := range f.messages {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentDate.After(out[j].SentDate) })
	return out
}

func (f *fakeRepo) ListInbox(_ context.Context, userID string) ([]message.Message, error) {
	return f.filter(func(m message.Message) bool { return m.ReceiverID == userID }), nil
}

func (f *fakeRepo) ListSent(_ context.Context, userID string) ([]message.Message, error) {
	return f.filter(func(m message.Message) bool { return m.SenderID == userID }), nil
}

func TestSendFollowsHierarchy(t *testing.T) {
	tests := []struct {
		name      string
		sender    policy.Actor
		recipient string
		reason    policy.Reason
	}{
		{"user to own manager", user1, m1ID, ""},
		{"user to other manager", user1, m2ID, policy.ReasonMessageUser},
		{"user to peer", user1, u2ID, policy.ReasonMessageUser},
		{"user without manager", orphan, m2ID, policy.ReasonMessageUser},
		{"manager to user in shift", manager1, u1ID, ""},
		{"manager to user in other shift", manager1, u2ID, policy.ReasonMessageManager},
		{"manager to manager", manager1, m2ID, policy.ReasonMessageManager},
		{"manager to developer", manager1, devID, policy.ReasonMessageManager},
		{"developer to anyone", developer, u2ID, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := message.NewService(newFakeRepo())

			msg, err := svc.Send(context.Background(), tt.sender, message.SendMessageRequest{
				RecipientID: tt.recipient,
				Content:     "  hello  ",
			})
			if tt.reason == "" {
				require.NoError(t, err)
				assert.Equal(t, "hello", msg.Content)
				assert.Equal(t, message.TypePersonal, msg.MessageType)
				assert.Equal(t, tt.sender.ID, msg.SenderID)
				return
			}

			var denial *policy.Denial
			require.True(t, errors.As(err, &denial))
			assert.Equal(t, tt.reason, denial.Reason)
		})
	}
}

func TestSendToMissingRecipient(t *testing.T) {
	svc := message.NewService(newFakeRepo())

	_, err := svc.Send(context.Background(), developer, message.SendMessageRequest{
		RecipientID: "00000000-0000-0000-0000-0000000000ff",
		Content:     "hi",
	})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestInboxAndSentAreNewestFirst(t *testing.T) {
	repo := newFakeRepo()
	svc := message.NewService(repo)
	ctx := context.Background()

	for _, content := range []string{"first", "second"} {
		_, err := svc.Send(ctx, manager1, message.SendMessageRequest{
			RecipientID: u1ID,
			Content:     content,
			MessageType: message.TypeAnnouncement,
		})
		require.NoError(t, err)
	}

	inbox, err := svc.Inbox(ctx, u1ID)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "second", inbox[0].Content)
	assert.Equal(t, message.TypeAnnouncement, inbox[0].MessageType)

	sent, err := svc.Sent(ctx, m1ID)
	require.NoError(t, err)
	assert.Len(t, sent, 2)

	empty, err := svc.Inbox(ctx, m1ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = svc.Inbox(ctx, "")
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}
