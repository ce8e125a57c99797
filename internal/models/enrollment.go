package models

// Enrollment is a student registration record (tabela cadastro). The four
// *_id fields are nullable references into the reference tables; they are
// stored as supplied and resolved lazily at read time.
type Enrollment struct {
	Matricula      int64  `db:"matricula" json:"matricula"`
	DataMatricula  string `db:"data_matricula" json:"data_matricula"`
	Nome           string `db:"nome" json:"nome"`
	DataNascimento string `db:"data_nascimento" json:"data_nascimento"`
	Idade          int    `db:"idade" json:"idade"`
	Responsavel    string `db:"responsavel" json:"responsavel"`
	CPF            string `db:"cpf" json:"cpf"`
	RG             string `db:"rg" json:"rg"`
	TelPrincipal   string `db:"tel_principal" json:"tel_principal"`
	TelRecado      string `db:"tel_recado" json:"tel_recado"`
	CEP            string `db:"cep" json:"cep"`
	Logradouro     string `db:"logradouro" json:"logradouro"`
	Numero         string `db:"numero" json:"numero"`
	Complemento    string `db:"complemento" json:"complemento"`
	Bairro         string `db:"bairro" json:"bairro"`
	Cidade         string `db:"cidade" json:"cidade"`
	Email          string `db:"email" json:"email"`
	Instagram      string `db:"instagram" json:"instagram"`
	TurmaID        *int64 `db:"turma_id" json:"turma_id,omitempty"`
	CursoID        *int64 `db:"curso_id" json:"curso_id,omitempty"`
	MaterialID     *int64 `db:"material_id" json:"material_id,omitempty"`
	Vencimento     string `db:"vencimento" json:"vencimento"`
	ValorID        *int64 `db:"valor_id" json:"valor_id,omitempty"`
}

// CreateEnrollmentRequest carries the registration form. The four selection
// fields arrive as the "id - label" strings the option lists produce. No
// field is mandatory: values are stored as supplied, matching the form's
// free-text permissiveness.
type CreateEnrollmentRequest struct {
	Nome           string `json:"nome"`
	DataNascimento string `json:"data_nascimento"`
	Responsavel    string `json:"responsavel"`
	CPF            string `json:"cpf"`
	RG             string `json:"rg"`
	TelPrincipal   string `json:"tel_principal"`
	TelRecado      string `json:"tel_recado"`
	CEP            string `json:"cep"`
	Logradouro     string `json:"logradouro"`
	Numero         string `json:"numero"`
	Complemento    string `json:"complemento"`
	Bairro         string `json:"bairro"`
	Cidade         string `json:"cidade"`
	Email          string `json:"email"`
	Instagram      string `json:"instagram"`
	Turma          string `json:"turma"`
	Curso          string `json:"curso"`
	Material       string `json:"material"`
	Vencimento     string `json:"vencimento"`
	Valor          string `json:"valor"`
}

// EnrollmentSummary is the roster projection: class and course names come
// from LEFT JOINs and are empty when the reference is null or dangling.
type EnrollmentSummary struct {
	Matricula int64  `db:"matricula" json:"matricula"`
	Nome      string `db:"nome" json:"nome"`
	Turma     string `db:"turma" json:"turma"`
	Curso     string `db:"curso" json:"curso"`
}

// enrollmentEditableColumns is the whitelist for partial edits: every stored
// column except the primary key.
var enrollmentEditableColumns = map[string]struct{}{
	"data_matricula":  {},
	"nome":            {},
	"data_nascimento": {},
	"idade":           {},
	"responsavel":     {},
	"cpf":             {},
	"rg":              {},
	"tel_principal":   {},
	"tel_recado":      {},
	"cep":             {},
	"logradouro":      {},
	"numero":          {},
	"complemento":     {},
	"bairro":          {},
	"cidade":          {},
	"email":           {},
	"instagram":       {},
	"turma_id":        {},
	"curso_id":        {},
	"material_id":     {},
	"vencimento":      {},
	"valor_id":        {},
}

// IsEnrollmentColumnEditable reports whether a column may appear in an edit's
// field set.
func IsEnrollmentColumnEditable(column string) bool {
	_, ok := enrollmentEditableColumns[column]
	return ok
}
