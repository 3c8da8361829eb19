package internal

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memRoster is an in-memory Roster with the same integrity rules as Store.
type memRoster struct {
	mu sync.Mutex

	nextUser   int
	nextPlayer int
	users      map[int]memUser
	players    map[int]Player
	favs       map[int]map[int]bool
	slots      map[int]map[string]int

	// err, when set, is returned by every store call after user resolution.
	err error
}

type memUser struct {
	username string
	passHash string
}

func newMemRoster() *memRoster {
	return &memRoster{
		users:   map[int]memUser{},
		players: map[int]Player{},
		favs:    map[int]map[int]bool{},
		slots:   map[int]map[string]int{},
	}
}

func (m *memRoster) UserID(_ context.Context, username string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, u := range m.users {
		if u.username == username {
			return id, nil
		}
	}
	return 0, ErrUserNotFound
}

func (m *memRoster) CreateUser(_ context.Context, username, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	for _, u := range m.users {
		if u.username == username {
			return 0, ErrUsernameTaken
		}
	}
	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}
	m.nextUser++
	m.users[m.nextUser] = memUser{username: username, passHash: hash}
	return m.nextUser, nil
}

func (m *memRoster) Authenticate(_ context.Context, username, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	for id, u := range m.users {
		if u.username == username && checkPassword(u.passHash, password) {
			return id, nil
		}
	}
	return 0, ErrInvalidCredentials
}

func (m *memRoster) GetUser(_ context.Context, id int) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return User{ID: id, Username: u.username}, nil
}

func (m *memRoster) ListUsers(context.Context) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []User{}
	for id, u := range m.users {
		out = append(out, User{ID: id, Username: u.username})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRoster) ListPlayers(context.Context) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []Player{}
	for _, p := range m.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRoster) ListFavorites(_ context.Context, userID int) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []Player{}
	for pid := range m.favs[userID] {
		out = append(out, m.players[pid])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRoster) AddFavorite(_ context.Context, userID int, in PlayerInput) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	var pid int
	if in.PlayerID != nil {
		pid = *in.PlayerID
		if _, ok := m.players[pid]; !ok {
			return 0, ErrPlayerNotFound
		}
	} else {
		m.nextPlayer++
		pid = m.nextPlayer
		p := newPlayer(in)
		p.ID = pid
		m.players[pid] = p
	}
	if m.favs[userID] == nil {
		m.favs[userID] = map[int]bool{}
	}
	if m.favs[userID][pid] {
		return 0, ErrAlreadyFavorite
	}
	m.favs[userID][pid] = true
	return pid, nil
}

func (m *memRoster) RemoveFavorite(_ context.Context, userID int, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	pid := 0
	for id := range m.favs[userID] {
		if m.players[id].Name == name && (pid == 0 || id < pid) {
			pid = id
		}
	}
	if pid == 0 {
		for _, p := range m.players {
			if p.Name == name {
				return false, ErrNotFavorite
			}
		}
		return false, ErrPlayerNotFound
	}
	delete(m.favs[userID], pid)
	for _, f := range m.favs {
		if f[pid] {
			return false, nil
		}
	}
	delete(m.players, pid)
	for _, s := range m.slots {
		for pos, id := range s {
			if id == pid {
				delete(s, pos)
			}
		}
	}
	return true, nil
}

func (m *memRoster) ListLineup(_ context.Context, userID int) ([]LineupSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []LineupSlot{}
	for pos, pid := range m.slots[userID] {
		p, ok := m.players[pid]
		if !ok {
			continue
		}
		out = append(out, LineupSlot{Position: pos, PlayerID: pid, Name: p.Name, Picture: p.Img})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memRoster) SetSlot(_ context.Context, userID int, position string, playerID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if _, ok := m.players[playerID]; !ok {
		return ErrPlayerNotFound
	}
	if m.slots[userID] == nil {
		m.slots[userID] = map[string]int{}
	}
	m.slots[userID][position] = playerID
	return nil
}

func (m *memRoster) ClearSlot(_ context.Context, userID int, position string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.slots[userID], position)
	return nil
}

type fakeCatalog struct {
	results []SearchResult
	news    json.RawMessage
	err     error
	lastQ   string
}

func (f *fakeCatalog) Search(_ context.Context, q string) ([]SearchResult, error) {
	f.lastQ = q
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeCatalog) News(context.Context) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.news, nil
}
