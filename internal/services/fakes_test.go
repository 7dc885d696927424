package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"storefront/internal/domain"
)

// memTable is an ordered in-memory table used by the fake stores.
type memTable[T any] struct {
	mu     sync.Mutex
	order  []string
	rows   map[string]T
	id     func(T) string
	seq    int
	err    error
	writes int
	reads  int
}

func newMemTable[T any](id func(T) string) *memTable[T] {
	return &memTable[T]{rows: map[string]T{}, id: id}
}

func (m *memTable[T]) list() ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]T, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rows[id])
	}
	return out, nil
}

func (m *memTable[T]) get(id string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	var zero T
	if m.err != nil {
		return zero, m.err
	}
	v, ok := m.rows[id]
	if !ok {
		return zero, sql.ErrNoRows
	}
	return v, nil
}

func (m *memTable[T]) find(match func(T) bool) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	var zero T
	if m.err != nil {
		return zero, m.err
	}
	for _, id := range m.order {
		if match(m.rows[id]) {
			return m.rows[id], nil
		}
	}
	return zero, sql.ErrNoRows
}

func (m *memTable[T]) nextID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	return fmt.Sprintf("id-%d", m.seq)
}

func (m *memTable[T]) put(v T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.writes++
	id := m.id(v)
	if _, ok := m.rows[id]; !ok {
		m.order = append(m.order, id)
	}
	m.rows[id] = v
	return nil
}

func (m *memTable[T]) remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.writes++
	delete(m.rows, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeUserStore struct{ t *memTable[domain.User] }

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{t: newMemTable(func(u domain.User) string { return u.ID })}
}

func (f *fakeUserStore) List(context.Context) ([]domain.User, error) { return f.t.list() }
func (f *fakeUserStore) GetByID(_ context.Context, id string) (domain.User, error) {
	return f.t.get(id)
}
func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (domain.User, error) {
	return f.t.find(func(u domain.User) bool { return u.Email == email })
}
func (f *fakeUserStore) Create(_ context.Context, u domain.User) (domain.User, error) {
	if u.ID == "" {
		u.ID = f.t.nextID()
	}
	return u, f.t.put(u)
}
func (f *fakeUserStore) Update(_ context.Context, u domain.User) error {
	cur, err := f.t.get(u.ID)
	if err != nil {
		return err
	}
	u.PasswordHash = cur.PasswordHash
	return f.t.put(u)
}
func (f *fakeUserStore) UpdatePassword(_ context.Context, id, hash string) error {
	cur, err := f.t.get(id)
	if err != nil {
		return err
	}
	cur.PasswordHash = hash
	return f.t.put(cur)
}
func (f *fakeUserStore) Delete(_ context.Context, id string) error { return f.t.remove(id) }

type fakeProductStore struct{ t *memTable[domain.Product] }

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{t: newMemTable(func(p domain.Product) string { return p.ID })}
}

func (f *fakeProductStore) List(context.Context) ([]domain.Product, error) { return f.t.list() }
func (f *fakeProductStore) GetByID(_ context.Context, id string) (domain.Product, error) {
	return f.t.get(id)
}
func (f *fakeProductStore) GetByName(_ context.Context, name string) (domain.Product, error) {
	return f.t.find(func(p domain.Product) bool { return p.Name == name })
}
func (f *fakeProductStore) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	if p.ID == "" {
		p.ID = f.t.nextID()
	}
	return p, f.t.put(p)
}
func (f *fakeProductStore) Update(_ context.Context, p domain.Product) error { return f.t.put(p) }
func (f *fakeProductStore) Delete(_ context.Context, id string) error       { return f.t.remove(id) }

type fakePurchaseStore struct{ t *memTable[domain.Purchase] }

func newFakePurchaseStore() *fakePurchaseStore {
	return &fakePurchaseStore{t: newMemTable(func(p domain.Purchase) string { return p.ID })}
}

func (f *fakePurchaseStore) List(context.Context) ([]domain.Purchase, error) { return f.t.list() }
func (f *fakePurchaseStore) GetByID(_ context.Context, id string) (domain.Purchase, error) {
	return f.t.get(id)
}
func (f *fakePurchaseStore) GetByName(_ context.Context, name string) (domain.Purchase, error) {
	return f.t.find(func(p domain.Purchase) bool { return p.Name == name })
}
func (f *fakePurchaseStore) Create(_ context.Context, p domain.Purchase) (domain.Purchase, error) {
	if p.ID == "" {
		p.ID = f.t.nextID()
	}
	return p, f.t.put(p)
}
func (f *fakePurchaseStore) Update(_ context.Context, p domain.Purchase) error { return f.t.put(p) }
func (f *fakePurchaseStore) Delete(_ context.Context, id string) error        { return f.t.remove(id) }
