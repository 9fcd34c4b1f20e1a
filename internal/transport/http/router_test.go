package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"edublog/internal/domain"
	"edublog/internal/jwtsigner"
	"edublog/internal/service/impl"
	"edublog/internal/store"
	"edublog/internal/store/storetest"
	transport "edublog/internal/transport/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type env struct {
	t       *testing.T
	st      *store.Store
	srv     http.Handler
	teacher *domain.User
	student *domain.User
}

func newEnv(t *testing.T, opts transport.Options) *env {
	t.Helper()
	st := storetest.Open(t)
	signer, err := jwtsigner.New([]byte("router-test-secret"), 24*time.Hour)
	require.NoError(t, err)

	e := &env{
		t:       t,
		st:      st,
		teacher: storetest.User(t, st, "Prof. João Silva", "joao.silva@escola.com", domain.RoleTeacher),
		student: storetest.User(t, st, "Aluno Pedro Costa", "pedro.costa@aluno.com", domain.RoleStudent),
	}
	e.srv = transport.NewRouter(transport.Services{
		Auth:        impl.NewAuthServiceImpl(st, nil, signer, 24*time.Hour),
		Posts:       impl.NewPostServiceImpl(st),
		Reads:       impl.NewPostReadServiceImpl(st),
		Disciplines: impl.NewDisciplineServiceImpl(st),
	}, opts)
	return e
}

func (e *env) do(method, path, token, body string) *httptest.ResponseRecorder {
	e.t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

func (e *env) login(email string) string {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/auth/login", "", `{"email":"`+email+`"}`)
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())
	var res struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(e.t, res.Token)
	return res.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errBody struct {
	Error    string   `json:"error"`
	Required []string `json:"required"`
	Current  string   `json:"current"`
}

type pageBody struct {
	Data []struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Author struct {
			Name string `json:"name"`
		} `json:"author"`
	} `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

func seedPosts(e *env) {
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	storetest.Post(e.t, e.st, e.teacher.ID, "Publicado", "conteúdo publicado", domain.StatusPublished, base)
	storetest.Post(e.t, e.st, e.teacher.ID, "Rascunho", "conteúdo rascunho", domain.StatusDraft, base.Add(time.Hour))
	storetest.Post(e.t, e.st, e.teacher.ID, "Arquivado", "conteúdo arquivado", domain.StatusArchived, base.Add(2*time.Hour))
}

func TestTeacherLoginListLogout(t *testing.T) {
	e := newEnv(t, transport.Options{})
	seedPosts(e)
	token := e.login("JOAO.SILVA@escola.com")

	rec := e.do(http.MethodGet, "/posts", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[pageBody](t, rec)
	require.Len(t, page.Data, 3)
	require.Equal(t, "Prof. João Silva", page.Data[0].Author.Name)
	require.Equal(t, 1, page.Pagination.Page)
	require.Equal(t, 20, page.Pagination.Limit)

	rec = e.do(http.MethodPost, "/auth/logout", token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = e.do(http.MethodGet, "/posts", token, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Sessão inválida", decode[errBody](t, rec).Error)
}

func TestAnonymousAndStudentSeePublishedOnly(t *testing.T) {
	e := newEnv(t, transport.Options{})
	seedPosts(e)

	for _, token := range []string{"", e.login(e.student.Email)} {
		rec := e.do(http.MethodGet, "/posts", token, "")
		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[pageBody](t, rec)
		require.Len(t, page.Data, 1)
		require.Equal(t, "PUBLISHED", page.Data[0].Status)
	}
}

func TestCreatePostGuards(t *testing.T) {
	e := newEnv(t, transport.Options{})
	body := `{"title":"Título novo","content":"conteúdo do post novo"}`

	rec := e.do(http.MethodPost, "/posts", "", body)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Token não fornecido", decode[errBody](t, rec).Error)

	rec = e.do(http.MethodPost, "/posts", e.login(e.student.Email), body)
	require.Equal(t, http.StatusForbidden, rec.Code)
	eb := decode[errBody](t, rec)
	require.Equal(t, "Acesso negado. Permissão insuficiente.", eb.Error)
	require.Equal(t, []string{"TEACHER"}, eb.Required)
	require.Equal(t, "STUDENT", eb.Current)

	teacher := e.login(e.teacher.Email)
	rec = e.do(http.MethodPost, "/posts", teacher, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[struct {
		ID       string `json:"id"`
		Status   string `json:"status"`
		AuthorID string `json:"authorId"`
	}](t, rec)
	require.Equal(t, "DRAFT", created.Status)
	require.Equal(t, e.teacher.ID.String(), created.AuthorID)
}

func TestCreatePostValidationMessages(t *testing.T) {
	e := newEnv(t, transport.Options{})
	teacher := e.login(e.teacher.Email)

	rec := e.do(http.MethodPost, "/posts", teacher, `{"title":"abcd","content":"conteúdo suficiente"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Título deve ter no mínimo 5 caracteres", decode[errBody](t, rec).Error)

	rec = e.do(http.MethodPost, "/posts", teacher, `{"title":"Título ok","content":"123456789"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Conteúdo deve ter no mínimo 10 caracteres", decode[errBody](t, rec).Error)

	rec = e.do(http.MethodPost, "/posts", teacher, `{"title":"Título ok","content":"conteúdo ok!","disciplineId":"nope"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(http.MethodPost, "/posts", teacher, `{"title":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Corpo da requisição inválido", decode[errBody](t, rec).Error)
}

func TestUpdateAndDeletePost(t *testing.T) {
	e := newEnv(t, transport.Options{})
	post := storetest.Post(t, e.st, e.teacher.ID, "Rascunho", "conteúdo rascunho", domain.StatusDraft, time.Now().UTC())
	teacher := e.login(e.teacher.Email)

	rec := e.do(http.MethodPut, "/posts/"+post.ID.String(), teacher, `{"status":"PUBLISHED"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[struct {
		Title       string     `json:"title"`
		Status      string     `json:"status"`
		PublishedAt *time.Time `json:"publishedAt"`
	}](t, rec)
	require.Equal(t, "PUBLISHED", updated.Status)
	require.Equal(t, "Rascunho", updated.Title)
	require.NotNil(t, updated.PublishedAt)

	rec = e.do(http.MethodPut, "/posts/"+uuid.NewString(), teacher, `{"title":"Outro título"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Post não encontrado", decode[errBody](t, rec).Error)

	rec = e.do(http.MethodDelete, "/posts/"+post.ID.String(), teacher, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = e.do(http.MethodDelete, "/posts/"+post.ID.String(), teacher, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDisciplineIDMustBeUUIDWhenSent(t *testing.T) {
	e := newEnv(t, transport.Options{})
	teacher := e.login(e.teacher.Email)
	disc := storetest.Discipline(t, e.st, "Matematica")
	post := storetest.Post(t, e.st, e.teacher.ID, "Com disciplina", "conteúdo com disciplina", domain.StatusDraft, time.Now().UTC())
	require.NoError(t, e.st.Posts().Update(context.Background(), post.ID, map[string]any{"discipline_id": disc.ID}))

	for _, raw := range []string{`null`, `""`, `42`, `"nope"`} {
		rec := e.do(http.MethodPost, "/posts", teacher, `{"title":"Título ok","content":"conteúdo ok!","disciplineId":`+raw+`}`)
		require.Equal(t, http.StatusBadRequest, rec.Code, "create with disciplineId %s", raw)
		require.Equal(t, "ID da disciplina deve ser um UUID válido", decode[errBody](t, rec).Error)

		rec = e.do(http.MethodPut, "/posts/"+post.ID.String(), teacher, `{"disciplineId":`+raw+`}`)
		require.Equal(t, http.StatusBadRequest, rec.Code, "update with disciplineId %s", raw)
	}

	got, err := e.st.Posts().Get(context.Background(), post.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DisciplineID)
	require.Equal(t, disc.ID, *got.DisciplineID)

	rec := e.do(http.MethodPut, "/posts/"+post.ID.String(), teacher, `{"title":"Sem tocar na disciplina"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, disc.ID.String(), decode[struct {
		DisciplineID string `json:"disciplineId"`
	}](t, rec).DisciplineID)
}

func TestReadTracking(t *testing.T) {
	e := newEnv(t, transport.Options{})
	post := storetest.Post(t, e.st, e.teacher.ID, "Leitura", "conteúdo para ler", domain.StatusPublished, time.Now().UTC())
	student := e.login(e.student.Email)
	path := "/posts/" + post.ID.String() + "/read"

	rec := e.do(http.MethodGet, path, student, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"read":false,"readAt":null}`, rec.Body.String())

	rec = e.do(http.MethodPost, path, student, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	first := decode[map[string]any](t, rec)

	rec = e.do(http.MethodPost, path, student, "")
	require.Equal(t, http.StatusOK, rec.Code)
	again := decode[map[string]any](t, rec)
	require.Equal(t, first["id"], again["id"])
	require.Equal(t, first["readAt"], again["readAt"])

	rec = e.do(http.MethodGet, path, student, "")
	status := decode[struct {
		Read   bool       `json:"read"`
		ReadAt *time.Time `json:"readAt"`
	}](t, rec)
	require.True(t, status.Read)
	require.NotNil(t, status.ReadAt)

	rec = e.do(http.MethodPost, "/posts/"+uuid.NewString()+"/read", student, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginErrors(t *testing.T) {
	e := newEnv(t, transport.Options{})
	cases := []struct {
		body   string
		status int
		msg    string
	}{
		{`{"email":"ghost@escola.com"}`, http.StatusNotFound, "Email não cadastrado"},
		{`{"email":"not-an-email"}`, http.StatusBadRequest, "Email inválido"},
		{`{}`, http.StatusBadRequest, "Email é obrigatório"},
	}
	for _, tc := range cases {
		rec := e.do(http.MethodPost, "/auth/login", "", tc.body)
		require.Equal(t, tc.status, rec.Code, tc.body)
		require.Equal(t, tc.msg, decode[errBody](t, rec).Error)
	}

	var n int64
	require.NoError(t, e.st.DB.Model(&domain.Session{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestAccessGuardStates(t *testing.T) {
	e := newEnv(t, transport.Options{})
	token := e.login(e.student.Email)

	send := func(path, header string) errBody {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		e.srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, header)
		return decode[errBody](t, rec)
	}

	require.Equal(t, "Token não fornecido", send("/disciplines", "Bearer").Error)
	require.Equal(t, "Token inválido", send("/disciplines", "Bearer nonsense").Error)
	require.Equal(t, "Token inválido", send("/posts", "Bearer nonsense").Error)

	require.NoError(t, e.st.DB.Model(&domain.Session{}).
		Where("1 = 1").
		Update("expires_at", time.Now().UTC().Add(-time.Minute)).Error)
	require.Equal(t, "Sessão expirada", send("/disciplines", "Bearer "+token).Error)

	var n int64
	require.NoError(t, e.st.DB.Model(&domain.Session{}).Count(&n).Error)
	require.Zero(t, n, "expired session should have been deleted")
	require.Equal(t, "Sessão inválida", send("/disciplines", "Bearer "+token).Error)
}

func TestBoundaryValidation(t *testing.T) {
	e := newEnv(t, transport.Options{})
	token := e.login(e.student.Email)

	require.Equal(t, http.StatusBadRequest, e.do(http.MethodGet, "/posts?limit=101", "", "").Code)
	require.Equal(t, http.StatusBadRequest, e.do(http.MethodGet, "/posts?page=0", "", "").Code)
	require.Equal(t, http.StatusBadRequest, e.do(http.MethodGet, "/posts/search?query=a", "", "").Code)
	require.Equal(t, http.StatusOK, e.do(http.MethodGet, "/posts/search?author=pr&page=2&limit=5", "", "").Code)

	rec := e.do(http.MethodGet, "/posts/not-a-uuid", token, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "ID do post deve ser um UUID válido", decode[errBody](t, rec).Error)

	rec = e.do(http.MethodGet, "/nowhere", "", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Rota não encontrada", decode[errBody](t, rec).Error)
}

func TestDisciplinesAndHealth(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	e := newEnv(t, transport.Options{Now: func() time.Time { return fixed }})
	storetest.Discipline(t, e.st, "Português")
	storetest.Discipline(t, e.st, "Matemática")

	rec := e.do(http.MethodGet, "/disciplines", e.login(e.teacher.Email), "")
	require.Equal(t, http.StatusOK, rec.Code)
	discs := decode[[]struct {
		Label string `json:"label"`
	}](t, rec)
	require.Len(t, discs, 2)
	require.Equal(t, "Matemática", discs[0].Label)

	rec = e.do(http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"OK","timestamp":"2025-06-01T00:00:00Z"}`, rec.Body.String())
}

func TestLoginRateLimit(t *testing.T) {
	e := newEnv(t, transport.Options{LoginRateLimit: 2})
	body := `{"email":"` + e.student.Email + `"}`
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/auth/login", "", body).Code)
	require.Equal(t, http.StatusOK, e.do(http.MethodPost, "/auth/login", "", body).Code)
	rec := e.do(http.MethodPost, "/auth/login", "", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}
