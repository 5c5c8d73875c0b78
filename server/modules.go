package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vitalvas/baasdoc/model"
	"github.com/vitalvas/baasdoc/openapi"
	"github.com/vitalvas/baasdoc/render"
)

// APIPrefix is the path prefix of every module operation.
const APIPrefix = "/api/v1"

const bearerScheme = "bearerAuth"

var (
	userExample = CreateUser{Name: "Alice", Email: "alice@example.com", Role: RoleAdmin}
	teamExample = CreateTeam{Name: "Platform", OwnerID: 1}
)

// registerUsers declares the users module.
func (s *Server) registerUsers(r chi.Router) {
	mod := s.spec.Module(openapi.Tag{Name: "users", Description: "User accounts"}).
		Prefix(APIPrefix).
		Errors(CodeInternal)
	e := &endpoints{router: r, module: mod}

	e.add(mod.Op(http.MethodGet, "/users").
		OperationID("listUsers").
		Summary("List users").
		Query("q", "Case-insensitive name filter", "").
		Paged(User{}).
		Errors(CodeBadRequest),
		func(w http.ResponseWriter, r *http.Request) {
			pageNo, pageSize, ok := paging(r)
			if !ok {
				render.Error(w, r, CodeBadRequest)
				return
			}
			users := s.app.listUsers(r.URL.Query().Get("q"))
			render.OK(w, http.StatusOK, model.NewPage(users, pageNo, pageSize))
		})

	e.add(mod.Op(http.MethodGet, "/users/{id:[0-9]+}").
		OperationID("getUser").
		Summary("Get a user").
		Response(User{}).
		Errors(CodeInvalidID, CodeUserNotFound),
		func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(r, "id")
			if !ok {
				render.Error(w, r, CodeInvalidID)
				return
			}
			user, err := s.app.user(id)
			if err != nil {
				render.Error(w, r, CodeUserNotFound)
				return
			}
			render.OK(w, http.StatusOK, user)
		})

	e.add(mod.Op(http.MethodPost, "/users").
		OperationID("createUser").
		Summary("Create a user").
		Request(CreateUser{}).
		RequestExample("alice", userExample).
		Response(User{}).
		Status(http.StatusCreated).
		Errors(CodeInvalidBody, CodeTooLarge, CodeUnsupportedMediaType, CodeValidation, CodeEmailTaken),
		func(w http.ResponseWriter, r *http.Request) {
			var in CreateUser
			if !bind(w, r, &in) {
				return
			}
			in.normalize()
			if !in.valid() {
				render.Error(w, r, CodeValidation)
				return
			}

			user, err := s.app.createUser(in)
			if err != nil {
				render.Error(w, r, CodeEmailTaken)
				return
			}
			s.logger.InfoContext(r.Context(), "user created", "id", user.ID)
			render.OK(w, http.StatusCreated, user)
		})

	e.add(mod.Op(http.MethodDelete, "/users/{id:[0-9]+}").
		OperationID("deleteUser").
		Summary("Delete a user").
		Response(model.Unit{}).
		Errors(CodeInvalidID, CodeUserNotFound),
		func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(r, "id")
			if !ok {
				render.Error(w, r, CodeInvalidID)
				return
			}
			if err := s.app.deleteUser(id); err != nil {
				render.Error(w, r, CodeUserNotFound)
				return
			}
			render.OK(w, http.StatusOK, model.Unit{})
		})
}

// registerTeams declares the teams module. Team and User reference each
// other.
func (s *Server) registerTeams(r chi.Router) {
	mod := s.spec.Module(openapi.Tag{Name: "teams", Description: "Teams and membership"}).
		Prefix(APIPrefix).
		Errors(CodeInternal)
	e := &endpoints{router: r, module: mod}

	e.add(mod.Op(http.MethodGet, "/teams/{id:[0-9]+}").
		OperationID("getTeam").
		Summary("Get a team").
		Response(Team{}).
		Errors(CodeInvalidID, CodeTeamNotFound),
		func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(r, "id")
			if !ok {
				render.Error(w, r, CodeInvalidID)
				return
			}
			team, err := s.app.team(id)
			if err != nil {
				render.Error(w, r, CodeTeamNotFound)
				return
			}
			render.OK(w, http.StatusOK, team)
		})

	e.add(mod.Op(http.MethodPost, "/teams").
		OperationID("createTeam").
		Summary("Create a team").
		Description("The owner becomes the first member of the team.").
		Request(CreateTeam{}).
		RequestExample("platform", teamExample).
		Response(Team{}).
		Status(http.StatusCreated).
		Errors(CodeInvalidBody, CodeTooLarge, CodeUnsupportedMediaType, CodeValidation, CodeUserNotFound),
		func(w http.ResponseWriter, r *http.Request) {
			var in CreateTeam
			if !bind(w, r, &in) {
				return
			}
			if in.Name == "" || in.OwnerID < 1 {
				render.Error(w, r, CodeValidation)
				return
			}

			team, err := s.app.createTeam(in)
			if err != nil {
				render.Error(w, r, CodeUserNotFound)
				return
			}
			render.OK(w, http.StatusCreated, team)
		})

	e.add(mod.Op(http.MethodPost, "/teams/{id:[0-9]+}/members").
		OperationID("addTeamMember").
		Summary("Add a member").
		Description("A user belongs to one team at most; adding moves the user.").
		Request(TeamMember{}).
		Response(Team{}).
		Errors(CodeInvalidID, CodeInvalidBody, CodeUnsupportedMediaType, CodeTeamNotFound, CodeUserNotFound),
		func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(r, "id")
			if !ok {
				render.Error(w, r, CodeInvalidID)
				return
			}
			var in TeamMember
			if !bind(w, r, &in) {
				return
			}

			team, err := s.app.addMember(id, in.UserID)
			switch {
			case errors.Is(err, errTeamNotFound):
				render.Error(w, r, CodeTeamNotFound)
			case errors.Is(err, errUserNotFound):
				render.Error(w, r, CodeUserNotFound)
			default:
				render.OK(w, http.StatusOK, team)
			}
		})
}

// registerProjects declares the projects module. It requires the bearer
// token when one is configured.
func (s *Server) registerProjects(r chi.Router) {
	mod := s.spec.Module(openapi.Tag{Name: "projects", Description: "Team projects"}).
		Prefix(APIPrefix).
		Errors(CodeInternal)

	if s.cfg.Auth.Token != "" {
		mod.Security(openapi.SecurityRequirement{bearerScheme: {}}).Errors(CodeUnauthorized)
		r = r.With(bearerAuth(s.cfg.Auth.Token))
	} else {
		mod.Security()
	}
	e := &endpoints{router: r, module: mod}

	projectID := &openapi.Parameter{
		Name:        "id",
		In:          "path",
		Description: "Project id",
		Required:    true,
		Schema:      &openapi.Schema{Type: "string", Format: "uuid"},
	}

	e.add(mod.Op(http.MethodGet, "/projects").
		OperationID("listProjects").
		Summary("List projects").
		Query("teamId", "Only projects of this team", int64(0)).
		Paged(Project{}).
		Errors(CodeBadRequest),
		func(w http.ResponseWriter, r *http.Request) {
			pageNo, pageSize, ok := paging(r)
			if !ok {
				render.Error(w, r, CodeBadRequest)
				return
			}

			var teamID int64
			if v := r.URL.Query().Get("teamId"); v != "" {
				n, err := strconv.ParseInt(v, 10, 64)
				if err != nil || n < 0 {
					render.Error(w, r, CodeBadRequest)
					return
				}
				teamID = n
			}

			render.OK(w, http.StatusOK, model.NewPage(s.app.listProjects(teamID), pageNo, pageSize))
		})

	e.add(mod.Op(http.MethodPost, "/projects").
		OperationID("createProject").
		Summary("Create a project").
		Request(CreateProject{}).
		Response(model.UUIDID{}).
		Status(http.StatusCreated).
		Errors(CodeInvalidBody, CodeTooLarge, CodeUnsupportedMediaType, CodeValidation, CodeTeamNotFound),
		func(w http.ResponseWriter, r *http.Request) {
			var in CreateProject
			if !bind(w, r, &in) {
				return
			}
			if !in.valid() {
				render.Error(w, r, CodeValidation)
				return
			}

			p, err := s.app.createProject(in)
			if err != nil {
				render.Error(w, r, CodeTeamNotFound)
				return
			}
			render.OK(w, http.StatusCreated, model.UUIDID{ID: p.ID})
		})

	e.add(mod.Op(http.MethodGet, "/projects/{id}").
		OperationID("getProject").
		Summary("Get a project").
		Parameter(projectID).
		Response(Project{}).
		Errors(CodeBadRequest, CodeProjectNotFound),
		func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				render.Error(w, r, CodeBadRequest)
				return
			}
			p, err := s.app.project(id)
			if err != nil {
				render.Error(w, r, CodeProjectNotFound)
				return
			}
			render.OK(w, http.StatusOK, p)
		})

	e.add(mod.Op(http.MethodDelete, "/projects/{id}").
		OperationID("deleteProject").
		Summary("Delete a project").
		Parameter(projectID).
		Response(model.Unit{}).
		Errors(CodeBadRequest, CodeProjectNotFound),
		func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(chi.URLParam(r, "id"))
			if err != nil {
				render.Error(w, r, CodeBadRequest)
				return
			}
			if err := s.app.deleteProject(id); err != nil {
				render.Error(w, r, CodeProjectNotFound)
				return
			}
			render.OK(w, http.StatusOK, model.Unit{})
		})
}
