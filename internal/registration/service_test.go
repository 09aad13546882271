package registration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Devansh2835/EventSpark/internal/auth"
	"github.com/Devansh2835/EventSpark/internal/email"
	"github.com/Devansh2835/EventSpark/internal/event"
	"github.com/Devansh2835/EventSpark/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRegRepo struct {
	mu   sync.Mutex
	regs map[string]Registration // keyed event_id/user_id
	next int
}

func newMemRegRepo() *memRegRepo {
	return &memRegRepo{regs: map[string]Registration{}}
}

func regKey(eventID, userID string) string {
	return eventID + "/" + userID
}

func (m *memRegRepo) Create(ctx context.Context, eventID, userID string) (Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := regKey(eventID, userID)
	if _, ok := m.regs[key]; ok {
		return Registration{}, ErrAlreadyRegistered
	}
	m.next++
	reg := Registration{
		ID:        fmt.Sprintf("reg-%d", m.next),
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	m.regs[key] = reg
	return reg, nil
}

func (m *memRegRepo) Delete(ctx context.Context, eventID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := regKey(eventID, userID)
	_, ok := m.regs[key]
	delete(m.regs, key)
	return ok, nil
}

func (m *memRegRepo) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.regs[regKey(eventID, userID)]
	return ok, nil
}

func (m *memRegRepo) ListForEvent(ctx context.Context, eventID string) ([]Attendee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Attendee
	for _, r := range m.regs {
		if r.EventID == eventID {
			out = append(out, Attendee{
				RegistrationID: r.ID,
				UserID:         r.UserID,
				RegisteredAt:   r.CreatedAt,
			})
		}
	}
	return out, nil
}

func (m *memRegRepo) ListForUser(ctx context.Context, userID string) ([]Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Registration
	for _, r := range m.regs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

type memEventRepo struct {
	mu     sync.Mutex
	events map[string]event.Event
}

func (m *memEventRepo) Create(ctx context.Context, d event.Draft, createdBy string) (event.Event, error) {
	return event.Event{}, nil
}

func (m *memEventRepo) Update(ctx context.Context, id string, d event.Draft) (*event.Event, error) {
	return nil, nil
}

func (m *memEventRepo) Delete(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (m *memEventRepo) GetByID(ctx context.Context, id string) (*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memEventRepo) List(ctx context.Context) ([]event.Event, error) {
	return nil, nil
}

func (m *memEventRepo) setRegistered(id string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.events[id]
	e.Registered = n
	m.events[id] = e
}

type memUserRepo struct {
	users map[string]auth.User
}

func (m *memUserRepo) Create(ctx context.Context, name, emailAddr, hash string, role session.Role) (auth.User, error) {
	return auth.User{}, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, emailAddr string) (*auth.User, error) {
	return nil, nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*auth.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUserRepo) MarkVerified(ctx context.Context, id string) error { return nil }

type recorderMailer struct {
	mu    sync.Mutex
	sends int
	qr    []byte
	done  chan struct{}
}

func (r *recorderMailer) SendOTP(to, name, code string) error { return nil }

func (r *recorderMailer) SendRegistrationConfirmation(to, name string, ev email.EventDetails, qrPNG []byte) error {
	r.mu.Lock()
	r.sends++
	r.qr = qrPNG
	r.mu.Unlock()
	if r.done != nil {
		select {
		case r.done <- struct{}{}:
		default:
		}
	}
	return nil
}

func newServiceForTests() (*Service, *memEventRepo, *recorderMailer) {
	events := &memEventRepo{events: map[string]event.Event{
		"evt-1": {
			ID:       "evt-1",
			Title:    "Tech Fest",
			Venue:    "Main Auditorium",
			StartsAt: time.Now().Add(48 * time.Hour),
			Capacity: 2,
		},
	}}
	users := &memUserRepo{users: map[string]auth.User{
		"usr-1": {ID: "usr-1", Name: "Asha", Email: "asha@college.edu"},
	}}
	mailer := &recorderMailer{done: make(chan struct{}, 1)}
	svc := NewService(newMemRegRepo(), events, users, mailer)
	return svc, events, mailer
}

func TestRegister_SendsQRConfirmation(t *testing.T) {
	ctx := context.Background()
	svc, _, mailer := newServiceForTests()

	reg, err := svc.Register(ctx, "evt-1", "usr-1")
	require.NoError(t, err)
	assert.Equal(t, "evt-1", reg.EventID)

	select {
	case <-mailer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation mail was never sent")
	}

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	assert.Equal(t, 1, mailer.sends)
	assert.NotEmpty(t, mailer.qr)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, mailer.qr[:4])
}

func TestRegister_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, events, _ := newServiceForTests()

	_, err := svc.Register(ctx, "missing", "usr-1")
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = svc.Register(ctx, "evt-1", "usr-1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "evt-1", "usr-1")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	events.setRegistered("evt-1", 2)
	_, err = svc.Register(ctx, "evt-1", "usr-2")
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestCancelAndCheck(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newServiceForTests()

	err := svc.Cancel(ctx, "evt-1", "usr-1")
	assert.ErrorIs(t, err, ErrNotRegistered)

	_, err = svc.Register(ctx, "evt-1", "usr-1")
	require.NoError(t, err)

	registered, err := svc.IsRegistered(ctx, "evt-1", "usr-1")
	require.NoError(t, err)
	assert.True(t, registered)

	require.NoError(t, svc.Cancel(ctx, "evt-1", "usr-1"))

	registered, err = svc.IsRegistered(ctx, "evt-1", "usr-1")
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestListForEvent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newServiceForTests()

	_, err := svc.ListForEvent(ctx, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = svc.Register(ctx, "evt-1", "usr-1")
	require.NoError(t, err)

	attendees, err := svc.ListForEvent(ctx, "evt-1")
	require.NoError(t, err)
	assert.Len(t, attendees, 1)
}
