package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"edublog/internal/domain"
	"edublog/internal/dto"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	maxLimit      = 100
	minSearchTerm = 2
)

func pathPostID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, domain.Invalid("id", "ID do post deve ser um UUID válido")
	}
	return id, nil
}

func parsePage(r *http.Request) (dto.PageRequest, error) {
	var p dto.PageRequest
	q := r.URL.Query()
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, domain.Invalid("page", "Página deve ser um número inteiro maior que 0")
		}
		p.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			return p, domain.Invalid("limit", "Limite deve ser um número entre 1 e 100")
		}
		p.Limit = n
	}
	return p, nil
}

func parseSearch(r *http.Request) (dto.SearchRequest, error) {
	page, err := parsePage(r)
	if err != nil {
		return dto.SearchRequest{}, err
	}
	q := r.URL.Query()
	s := dto.SearchRequest{PageRequest: page}
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"query", &s.Query},
		{"title", &s.Title},
		{"author", &s.Author},
	} {
		if !q.Has(f.name) {
			continue
		}
		v := strings.TrimSpace(q.Get(f.name))
		if utf8.RuneCountInString(v) < minSearchTerm {
			return dto.SearchRequest{}, domain.Invalid(f.name, "Termo de busca deve ter no mínimo 2 caracteres")
		}
		*f.dst = v
	}
	return s, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", domain.Invalid("email", "Email é obrigatório")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", domain.Invalid("email", "Email inválido")
	}
	return email, nil
}

// parseDisciplineID reads an optional disciplineId. An absent field means
// "not sent"; null, "" and non-UUID values are rejected.
func parseDisciplineID(raw json.RawMessage) (*uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var s string
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, &s) != nil {
		return nil, domain.Invalid("disciplineId", msgDisciplineInvalid)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, domain.Invalid("disciplineId", msgDisciplineInvalid)
	}
	return &id, nil
}
