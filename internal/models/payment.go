package models

// Payment is one ledger entry (tabela financeiro). Matricula is not checked
// against cadastro and Valor is stored exactly as supplied; the ledger echoes
// what it was given.
type Payment struct {
	ID             int64  `db:"id" json:"id"`
	Matricula      int64  `db:"matricula" json:"matricula"`
	Valor          string `db:"valor" json:"valor"`
	Vencimento     string `db:"vencimento" json:"vencimento"`
	FormaPagamento string `db:"forma_pagamento" json:"forma_pagamento"`
	Anexo          string `db:"anexo" json:"anexo"`
}

// CreatePaymentRequest appends one ledger entry. Anexo is the opaque
// reference returned by the attachment upload, when one exists. Nothing is
// validated: matricula and valor are stored exactly as supplied.
type CreatePaymentRequest struct {
	Matricula      int64  `json:"matricula"`
	Valor          string `json:"valor"`
	Vencimento     string `json:"vencimento"`
	FormaPagamento string `json:"forma_pagamento"`
	Anexo          string `json:"anexo"`
}
