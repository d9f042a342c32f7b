package fakeapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	errEmailTaken    = errors.New("email already registered")
	errUsernameTaken = errors.New("workspace username already exists")
	errNoUser        = errors.New("user not found")
	errNoWorkspace   = errors.New("workspace not found")
	errAlreadyMember = errors.New("already a member")
)

// Member statuses and roles.
const (
	statusAccepted = "accepted"
	statusPending  = "pending"
	roleAdmin      = "admin"
	roleMember     = "member"
)

// User is the public view of an account.
type User struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Workspace is the public view of a workspace. Status is the caller's
// membership status and only set in listings.
type Workspace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Logo        string `json:"logo"`
	MemberCount int    `json:"member_count"`
	UserID      string `json:"user_id"`
	Status      string `json:"status,omitempty"`
}

type userRecord struct {
	User
	hash []byte
}

type memberRecord struct {
	status, role string
	joinedAt     time.Time
}

type workspaceRecord struct {
	Workspace
	createdAt time.Time
	members   map[int32]*memberRecord
}

// memoryDB holds users and workspaces for the lifetime of a Server.
type memoryDB struct {
	mu         sync.RWMutex
	nextUserID int32
	users      map[string]*userRecord // by lower-cased email
	byID       map[int32]*userRecord
	workspaces map[string]*workspaceRecord
	cost       int
}

func newMemoryDB(cost int) *memoryDB {
	return &memoryDB{
		users:      make(map[string]*userRecord),
		byID:       make(map[int32]*userRecord),
		workspaces: make(map[string]*workspaceRecord),
		cost:       cost,
	}
}

func (db *memoryDB) createUser(name, email, password string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), db.cost)
	if err != nil {
		return User{}, err
	}
	key := strings.ToLower(email)

	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.users[key]; ok {
		return User{}, errEmailTaken
	}
	db.nextUserID++
	rec := &userRecord{User: User{ID: db.nextUserID, Name: name, Email: email}, hash: hash}
	db.users[key] = rec
	db.byID[rec.ID] = rec
	return rec.User, nil
}

// authenticate returns the user when password matches.
func (db *memoryDB) authenticate(email, password string) (User, bool) {
	db.mu.RLock()
	rec, ok := db.users[strings.ToLower(email)]
	db.mu.RUnlock()
	if !ok {
		return User{}, false
	}
	if bcrypt.CompareHashAndPassword(rec.hash, []byte(password)) != nil {
		return User{}, false
	}
	return rec.User, true
}

func (db *memoryDB) userByEmail(email string) (User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.users[strings.ToLower(email)]
	if !ok {
		return User{}, errNoUser
	}
	return rec.User, nil
}

// createWorkspace stores a workspace and makes owner its accepted admin.
func (db *memoryDB) createWorkspace(owner int32, name, username, logo string, now time.Time) (Workspace, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, ws := range db.workspaces {
		if strings.EqualFold(ws.Username, username) {
			return Workspace{}, errUsernameTaken
		}
	}
	rec := &workspaceRecord{
		Workspace: Workspace{
			ID:          uuid.NewString(),
			Name:        name,
			Username:    username,
			Logo:        logo,
			MemberCount: 1,
			UserID:      userIDString(owner),
		},
		createdAt: now,
		members:   map[int32]*memberRecord{owner: {status: statusAccepted, role: roleAdmin, joinedAt: now}},
	}
	db.workspaces[rec.ID] = rec
	return rec.Workspace, nil
}

func (db *memoryDB) workspace(id string) (Workspace, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	rec, ok := db.workspaces[id]
	if !ok {
		return Workspace{}, errNoWorkspace
	}
	return rec.Workspace, nil
}

// joined lists the workspaces user belongs to, newest membership first,
// with the membership status filled in.
func (db *memoryDB) joined(user int32, offset, limit int) []Workspace {
	db.mu.RLock()
	defer db.mu.RUnlock()

	type entry struct {
		ws       Workspace
		joinedAt time.Time
	}
	var all []entry
	for _, rec := range db.workspaces {
		m, ok := rec.members[user]
		if !ok {
			continue
		}
		ws := rec.Workspace
		ws.Status = m.status
		all = append(all, entry{ws: ws, joinedAt: m.joinedAt})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].joinedAt.Equal(all[j].joinedAt) {
			return all[i].ws.ID < all[j].ws.ID
		}
		return all[i].joinedAt.After(all[j].joinedAt)
	})

	out := []Workspace{}
	for i := offset; i < len(all) && len(out) < limit; i++ {
		out = append(out, all[i].ws)
	}
	return out
}

// join adds user as a pending member.
func (db *memoryDB) join(user int32, id string, now time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	rec, ok := db.workspaces[id]
	if !ok {
		return errNoWorkspace
	}
	if _, ok := rec.members[user]; ok {
		return errAlreadyMember
	}
	rec.members[user] = &memberRecord{status: statusPending, role: roleMember, joinedAt: now}
	return nil
}
