package repository

import "github.com/santoko/kasir-api/internal/domain/entity"

// SaleRepository persists finalized sales and their line snapshots. Sales are
// write-once: there is no update path, only reads for receipts and history.
type SaleRepository interface {
	Create(sale *entity.Sale) error // assigns sale.ID
	CreateLine(line *entity.SaleLine) error
	GetByID(id int64) (*entity.Sale, error)
	GetLinesByReference(referenceNo string) ([]*entity.SaleLine, error)
}

// PaymentRepository appends payment rows. One per finalize.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
}

// LedgerRepository appends ledger (balance) entries. Write-once.
type LedgerRepository interface {
	Create(entry *entity.LedgerEntry) error
}

// CustomerLogRepository appends customer activity rows. Write-once.
type CustomerLogRepository interface {
	Create(log *entity.CustomerLog) error
}
