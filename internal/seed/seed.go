// Package seed loads the demo teachers, students, disciplines and posts.
// Running it twice is harmless: rows whose id already exists are skipped.
package seed

import (
	"context"
	"time"

	"edublog/internal/domain"
	"edublog/internal/store"

	"github.com/google/uuid"
)

const day = 24 * time.Hour

var (
	JoaoID  = uuid.MustParse("550e8400-e29b-41d4-a716-446655440001")
	MariaID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440002")
	PedroID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440003")
	AnaID   = uuid.MustParse("550e8400-e29b-41d4-a716-446655440004")

	MatematicaID = uuid.MustParse("660e8400-e29b-41d4-a716-446655440001")
	PortuguesID  = uuid.MustParse("660e8400-e29b-41d4-a716-446655440002")
	CienciasID   = uuid.MustParse("660e8400-e29b-41d4-a716-446655440003")
	HistoriaID   = uuid.MustParse("660e8400-e29b-41d4-a716-446655440004")
	GeografiaID  = uuid.MustParse("660e8400-e29b-41d4-a716-446655440005")
)

func users() []domain.User {
	return []domain.User{
		{ID: JoaoID, Name: "Prof. João Silva", Email: "joao.silva@escola.com", Role: domain.RoleTeacher},
		{ID: MariaID, Name: "Profa. Maria Santos", Email: "maria.santos@escola.com", Role: domain.RoleTeacher},
		{ID: PedroID, Name: "Aluno Pedro Costa", Email: "pedro.costa@aluno.com", Role: domain.RoleStudent},
		{ID: AnaID, Name: "Aluna Ana Oliveira", Email: "ana.oliveira@aluno.com", Role: domain.RoleStudent},
	}
}

func disciplines() []domain.Discipline {
	return []domain.Discipline{
		{ID: MatematicaID, Label: "Matemática"},
		{ID: PortuguesID, Label: "Português"},
		{ID: CienciasID, Label: "Ciências"},
		{ID: HistoriaID, Label: "História"},
		{ID: GeografiaID, Label: "Geografia"},
	}
}

type postSeed struct {
	id         string
	title      string
	content    string
	author     uuid.UUID
	discipline uuid.UUID
	status     domain.PostStatus
	age        time.Duration
}

var postSeeds = []postSeed{
	{
		id:         "880e8400-e29b-41d4-a716-446655440001",
		title:      "Introdução à Álgebra Linear",
		content:    "Vetores, espaços vetoriais e sistemas de equações lineares: os conceitos básicos da Álgebra Linear e onde eles aparecem, da computação gráfica ao aprendizado de máquina.",
		author:     JoaoID,
		discipline: MatematicaID,
		status:     domain.StatusPublished,
		age:        7 * day,
	},
	{
		id:         "880e8400-e29b-41d4-a716-446655440002",
		title:      "A Importância da Leitura na Formação do Cidadão",
		content:    "Ler todos os dias amplia o vocabulário e o pensamento crítico. Algumas sugestões para incentivar a leitura em sala, começando por livros adequados à faixa etária.",
		author:     MariaID,
		discipline: PortuguesID,
		status:     domain.StatusPublished,
		age:        5 * day,
	},
	{
		id:         "880e8400-e29b-41d4-a716-446655440003",
		title:      "Fotossíntese: O Processo que Sustenta a Vida na Terra",
		content:    "Como plantas, algas e algumas bactérias convertem luz em energia química nos cloroplastos, e por que a fase clara e o ciclo de Calvin importam para a ecologia.",
		author:     JoaoID,
		discipline: CienciasID,
		status:     domain.StatusPublished,
		age:        3 * day,
	},
	{
		id:         "880e8400-e29b-41d4-a716-446655440004",
		title:      "A Proclamação da República no Brasil",
		content:    "O 15 de novembro de 1889, o fim da monarquia e as questões militar e religiosa que levaram à república federativa e à separação entre Igreja e Estado.",
		author:     MariaID,
		discipline: HistoriaID,
		status:     domain.StatusPublished,
		age:        1 * day,
	},
	{
		id:         "880e8400-e29b-41d4-a716-446655440005",
		title:      "Dicas para Ensinar Frações de Forma Divertida",
		content:    "Pizzas de papel, receitas e jogos de tabuleiro para ligar frações ao cotidiano. Rascunho aguardando revisão antes da publicação.",
		author:     JoaoID,
		discipline: MatematicaID,
		status:     domain.StatusDraft,
	},
}

func posts(now time.Time) []domain.Post {
	out := make([]domain.Post, 0, len(postSeeds))
	for _, s := range postSeeds {
		at := now.Add(-s.age)
		disc := s.discipline
		p := domain.Post{
			ID:           uuid.MustParse(s.id),
			Title:        s.title,
			Content:      s.content,
			AuthorID:     s.author,
			DisciplineID: &disc,
			CreatedAt:    at,
			UpdatedAt:    at,
		}
		p.Publish(s.status, at)
		out = append(out, p)
	}
	return out
}

// Run inserts the demo data inside one transaction.
func Run(ctx context.Context, st *store.Store, now time.Time) error {
	now = now.UTC()
	return st.WithTx(ctx, func(tx *store.Store) error {
		for _, u := range users() {
			u.CreatedAt, u.UpdatedAt = now, now
			if err := tx.Users().Upsert(ctx, &u); err != nil {
				return err
			}
		}
		for _, d := range disciplines() {
			d.CreatedAt = now
			if err := tx.Disciplines().Upsert(ctx, &d); err != nil {
				return err
			}
		}
		for _, p := range posts(now) {
			if err := tx.Posts().Upsert(ctx, &p); err != nil {
				return err
			}
		}
		return nil
	})
}
