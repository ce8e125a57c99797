package models

// ReferenceKind names one of the independent lookup tables.
type ReferenceKind string

// The five reference kinds. Values double as URL path segments.
const (
	KindTurmas    ReferenceKind = "turmas"
	KindCursos    ReferenceKind = "cursos"
	KindMateriais ReferenceKind = "materiais"
	KindValores   ReferenceKind = "valores"
	KindEstoque   ReferenceKind = "estoque"
)

// ReferenceSpec declares the persisted shape of a reference kind: its table,
// the writable columns in form order, and the column used as the human label.
// The table and column names below are the only identifiers ever interpolated
// into reference SQL.
type ReferenceSpec struct {
	Table       string
	Columns     []string
	LabelColumn string
}

var referenceSpecs = map[ReferenceKind]ReferenceSpec{
	KindTurmas:    {Table: "turmas", Columns: []string{"nome", "horario"}, LabelColumn: "nome"},
	KindCursos:    {Table: "cursos", Columns: []string{"nome"}, LabelColumn: "nome"},
	KindMateriais: {Table: "materiais", Columns: []string{"nome", "valor"}, LabelColumn: "nome"},
	KindValores:   {Table: "valores", Columns: []string{"descricao", "valor"}, LabelColumn: "descricao"},
	KindEstoque:   {Table: "estoque", Columns: []string{"nome", "quantidade"}, LabelColumn: "nome"},
}

// HasColumn reports whether the column belongs to the kind's writable set.
func (s ReferenceSpec) HasColumn(name string) bool {
	for _, col := range s.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// SpecFor returns the schema description of a kind; ok is false for unknown
// kinds, which callers must treat as a validation failure.
func SpecFor(kind ReferenceKind) (ReferenceSpec, bool) {
	spec, ok := referenceSpecs[kind]
	return spec, ok
}

// ReferenceKinds lists all known kinds in a stable order.
func ReferenceKinds() []ReferenceKind {
	return []ReferenceKind{KindTurmas, KindCursos, KindMateriais, KindValores, KindEstoque}
}

// ReferenceOption is the (id, label) projection backing selection fields.
type ReferenceOption struct {
	ID    int64  `db:"id" json:"id"`
	Label string `db:"label" json:"label"`
}

// ReferenceRow is a full reference record; Fields is keyed by column name.
type ReferenceRow struct {
	ID     int64             `json:"id"`
	Fields map[string]string `json:"fields"`
}
