package orders

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	current   Status
	getErr    error
	updateErr error
	updates   []Status
}

func (s *fakeStore) GetStatus(_ context.Context, _ string) (Status, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.current, nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, _ string, st Status) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updates = append(s.updates, st)
	return nil
}

type fakeHub struct {
	err    error
	pushed []Status
}

func (h *fakeHub) Broadcast(_ string, status Status) error {
	if h.err != nil {
		return h.err
	}
	h.pushed = append(h.pushed, status)
	return nil
}

type fakeActor struct {
	name  string
	admin bool
}

func (a fakeActor) Subject() string       { return a.name }
func (a fakeActor) CanManageOrders() bool { return a.admin }

func TestRequestTransitionSuccess(t *testing.T) {
	store := &fakeStore{current: StatusPending}
	hub := &fakeHub{}
	g := &Gateway{Store: store, Hub: hub}

	got, err := g.RequestTransition(context.Background(), "o1", "Preparing", fakeActor{name: "admin@yummybites.in", admin: true})
	if err != nil {
		t.Fatalf("RequestTransition: %v", err)
	}
	if got != StatusPreparing {
		t.Errorf("status = %q, want %q", got, StatusPreparing)
	}
	if len(store.updates) != 1 || store.updates[0] != StatusPreparing {
		t.Errorf("store updates = %v, want [Preparing]", store.updates)
	}
	if len(hub.pushed) != 1 || hub.pushed[0] != StatusPreparing {
		t.Errorf("broadcasts = %v, want [Preparing]", hub.pushed)
	}
}

func TestRequestTransitionInvalidStatus(t *testing.T) {
	store := &fakeStore{current: StatusPending}
	g := &Gateway{Store: store, Hub: &fakeHub{}}

	_, err := g.RequestTransition(context.Background(), "o1", "Teleported", fakeActor{admin: true})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
	if len(store.updates) != 0 {
		t.Errorf("store touched on invalid status: %v", store.updates)
	}
}

func TestRequestTransitionUnauthorized(t *testing.T) {
	store := &fakeStore{current: StatusPending}
	g := &Gateway{Store: store, Hub: &fakeHub{}}

	for name, actor := range map[string]Actor{
		"nil actor": nil,
		"non-admin": fakeActor{name: "diner@example.com"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := g.RequestTransition(context.Background(), "o1", "Confirmed", actor)
			if !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("err = %v, want ErrUnauthorized", err)
			}
		})
	}
	if len(store.updates) != 0 {
		t.Errorf("store touched by unauthorized caller: %v", store.updates)
	}
}

func TestRequestTransitionNotFound(t *testing.T) {
	store := &fakeStore{getErr: ErrNotFound}
	hub := &fakeHub{}
	g := &Gateway{Store: store, Hub: hub}

	_, err := g.RequestTransition(context.Background(), "ghost", "Confirmed", fakeActor{admin: true})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(hub.pushed) != 0 {
		t.Errorf("broadcast fired for missing order: %v", hub.pushed)
	}
}

func TestRequestTransitionPersistenceError(t *testing.T) {
	store := &fakeStore{current: StatusPending, updateErr: errors.New("connection reset")}
	hub := &fakeHub{}
	g := &Gateway{Store: store, Hub: hub}

	_, err := g.RequestTransition(context.Background(), "o1", "Confirmed", fakeActor{admin: true})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}
	if len(hub.pushed) != 0 {
		t.Errorf("broadcast fired after failed write: %v", hub.pushed)
	}
}

func TestRequestTransitionBroadcastFailureSwallowed(t *testing.T) {
	store := &fakeStore{current: StatusPreparing}
	g := &Gateway{Store: store, Hub: &fakeHub{err: errors.New("hub down")}}

	got, err := g.RequestTransition(context.Background(), "o1", "Delivered", fakeActor{admin: true})
	if err != nil {
		t.Fatalf("broadcast failure leaked to caller: %v", err)
	}
	if got != StatusDelivered {
		t.Errorf("status = %q, want %q", got, StatusDelivered)
	}
	if len(store.updates) != 1 {
		t.Errorf("store updates = %v, want one update", store.updates)
	}
}
