package impl

const (
	msgEmailRequired     = "Email é obrigatório"
	msgTitleTooShort     = "Título deve ter no mínimo 5 caracteres"
	msgTitleTooLong      = "Título deve ter no máximo 255 caracteres"
	msgContentTooShort   = "Conteúdo deve ter no mínimo 10 caracteres"
	msgStatusInvalid     = "Status deve ser DRAFT, PUBLISHED ou ARCHIVED"
	msgDisciplineUnknown = "Disciplina não encontrada"
)
