package server

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	errUserNotFound    = errors.New("user not found")
	errTeamNotFound    = errors.New("team not found")
	errProjectNotFound = errors.New("project not found")
	errEmailTaken      = errors.New("email taken")
)

type userRecord struct {
	ID      int64
	Name    string
	Email   string
	Role    Role
	TeamID  int64
	Created time.Time
}

type teamRecord struct {
	ID        int64
	Name      string
	OwnerID   int64
	MemberIDs []int64
}

type projectRecord struct {
	seq     int64
	project Project
}

// app holds the in-memory state behind the demo modules.
type app struct {
	// mu serializes writes that span stores.
	mu sync.Mutex

	users    *Store[userRecord]
	teams    *Store[teamRecord]
	projects *Store[projectRecord]

	now func() time.Time
}

func newApp() *app {
	return &app{
		users:    NewStore[userRecord](),
		teams:    NewStore[teamRecord](),
		projects: NewStore[projectRecord](),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (a *app) createUser(in CreateUser) (User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	taken := a.users.List(func(u userRecord) bool { return u.Email == in.Email })
	if len(taken) > 0 {
		return User{}, errEmailTaken
	}

	rec := a.users.Create(func(id int64) userRecord {
		return userRecord{ID: id, Name: in.Name, Email: in.Email, Role: in.Role, Created: a.now()}
	})
	return a.userView(rec), nil
}

func (a *app) user(id int64) (User, error) {
	rec, ok := a.users.Get(id)
	if !ok {
		return User{}, errUserNotFound
	}
	return a.userView(rec), nil
}

func (a *app) listUsers(query string) []User {
	query = strings.ToLower(query)
	recs := a.users.List(func(u userRecord) bool {
		return query == "" || strings.Contains(strings.ToLower(u.Name), query)
	})

	out := make([]User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, a.userView(rec))
	}
	return out
}

func (a *app) deleteUser(id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec, ok := a.users.Get(id)
	if !ok {
		return errUserNotFound
	}
	if rec.TeamID != 0 {
		a.teams.Update(rec.TeamID, func(t *teamRecord) {
			t.MemberIDs = slices.DeleteFunc(t.MemberIDs, func(m int64) bool { return m == id })
		})
	}
	a.users.Delete(id)
	return nil
}

func (a *app) createTeam(in CreateTeam) (Team, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.users.Get(in.OwnerID); !ok {
		return Team{}, errUserNotFound
	}

	rec := a.teams.Create(func(id int64) teamRecord {
		return teamRecord{ID: id, Name: in.Name, OwnerID: in.OwnerID, MemberIDs: []int64{in.OwnerID}}
	})
	a.users.Update(in.OwnerID, func(u *userRecord) { u.TeamID = rec.ID })
	return a.teamView(rec), nil
}

func (a *app) team(id int64) (Team, error) {
	rec, ok := a.teams.Get(id)
	if !ok {
		return Team{}, errTeamNotFound
	}
	return a.teamView(rec), nil
}

func (a *app) addMember(teamID, userID int64) (Team, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.teams.Get(teamID); !ok {
		return Team{}, errTeamNotFound
	}
	user, ok := a.users.Get(userID)
	if !ok {
		return Team{}, errUserNotFound
	}

	if user.TeamID != 0 && user.TeamID != teamID {
		a.teams.Update(user.TeamID, func(t *teamRecord) {
			t.MemberIDs = slices.DeleteFunc(t.MemberIDs, func(m int64) bool { return m == userID })
		})
	}
	a.users.Update(userID, func(u *userRecord) { u.TeamID = teamID })

	rec, _ := a.teams.Update(teamID, func(t *teamRecord) {
		if !slices.Contains(t.MemberIDs, userID) {
			t.MemberIDs = append(t.MemberIDs, userID)
		}
	})
	return a.teamView(rec), nil
}

func (a *app) createProject(in CreateProject) (Project, error) {
	if _, ok := a.teams.Get(in.TeamID); !ok {
		return Project{}, errTeamNotFound
	}

	rec := a.projects.Create(func(seq int64) projectRecord {
		return projectRecord{seq: seq, project: Project{
			ID:      uuid.Must(uuid.NewV7()),
			Name:    strings.TrimSpace(in.Name),
			TeamID:  in.TeamID,
			Labels:  in.Labels,
			Meta:    in.Meta,
			Created: a.now(),
		}}
	})
	return rec.project, nil
}

func (a *app) findProject(id uuid.UUID) (projectRecord, bool) {
	found := a.projects.List(func(p projectRecord) bool { return p.project.ID == id })
	if len(found) == 0 {
		return projectRecord{}, false
	}
	return found[0], true
}

func (a *app) project(id uuid.UUID) (Project, error) {
	rec, ok := a.findProject(id)
	if !ok {
		return Project{}, errProjectNotFound
	}
	return rec.project, nil
}

func (a *app) listProjects(teamID int64) []Project {
	recs := a.projects.List(func(p projectRecord) bool {
		return teamID == 0 || p.project.TeamID == teamID
	})

	out := make([]Project, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.project)
	}
	return out
}

func (a *app) deleteProject(id uuid.UUID) error {
	rec, ok := a.findProject(id)
	if !ok || !a.projects.Delete(rec.seq) {
		return errProjectNotFound
	}
	return nil
}

// userView resolves the team of a user. Users nested in the team are not
// resolved again, which keeps the JSON output finite.
func (a *app) userView(rec userRecord) User {
	u := plainUser(rec)
	if rec.TeamID != 0 {
		if team, ok := a.teams.Get(rec.TeamID); ok {
			t := a.teamView(team)
			u.Team = &t
		}
	}
	return u
}

func (a *app) teamView(rec teamRecord) Team {
	t := Team{ID: rec.ID, Name: rec.Name, Members: []User{}}
	if owner, ok := a.users.Get(rec.OwnerID); ok {
		t.Owner = plainUser(owner)
	}
	for _, id := range rec.MemberIDs {
		if m, ok := a.users.Get(id); ok {
			t.Members = append(t.Members, plainUser(m))
		}
	}
	return t
}

func plainUser(rec userRecord) User {
	return User{
		ID:      rec.ID,
		Name:    rec.Name,
		Email:   rec.Email,
		Role:    rec.Role,
		Created: rec.Created,
	}
}
