package kvrepo

import (
	"context"

	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/shop_ledger_app/internal/core/ports/repositories"
)

type invoiceRepository struct {
	tx *tx
}

func (r *invoiceRepository) coll() collection[domain.Invoice] {
	return collection[domain.Invoice]{tx: r.tx, key: KeyInvoices, name: "invoice", id: func(i *domain.Invoice) string { return i.ID }}
}

func (r *invoiceRepository) GetAll(ctx context.Context) ([]domain.Invoice, error) {
	return r.coll().all(ctx)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return r.coll().find(ctx, id)
}

func (r *invoiceRepository) Create(ctx context.Context, invoice domain.Invoice) (*domain.Invoice, error) {
	now := r.tx.db.now()
	invoice.ID = r.tx.db.newID()
	invoice.AuditFields = domain.AuditFields{CreatedAt: now, UpdatedAt: now}
	if err := r.coll().insert(ctx, invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) Update(ctx context.Context, id string, update domain.InvoiceUpdate) (*domain.Invoice, error) {
	return r.coll().modify(ctx, id, func(i *domain.Invoice) error {
		update.Apply(i)
		i.UpdatedAt = r.tx.db.now()
		return nil
	})
}

func (r *invoiceRepository) SetStatus(ctx context.Context, id string, status domain.InvoiceStatus) (*domain.Invoice, error) {
	return r.coll().modify(ctx, id, func(i *domain.Invoice) error {
		i.Status = status
		i.UpdatedAt = r.tx.db.now()
		return nil
	})
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.coll().remove(ctx, id)
}

var _ portsrepo.InvoiceRepositoryFacade = (*invoiceRepository)(nil)

type paymentRepository struct {
	tx *tx
}

func (r *paymentRepository) coll() collection[domain.PaymentRecord] {
	return collection[domain.PaymentRecord]{tx: r.tx, key: KeyPayments, name: "payment", id: func(p *domain.PaymentRecord) string { return p.ID }}
}

func (r *paymentRepository) GetAll(ctx context.Context) ([]domain.PaymentRecord, error) {
	return r.coll().all(ctx)
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.PaymentRecord, error) {
	return r.coll().find(ctx, id)
}

func (r *paymentRepository) Create(ctx context.Context, payment domain.PaymentRecord) (*domain.PaymentRecord, error) {
	now := r.tx.db.now()
	payment.ID = r.tx.db.newID()
	payment.AuditFields = domain.AuditFields{CreatedAt: now, UpdatedAt: now}
	if err := r.coll().insert(ctx, payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, id string, update domain.PaymentUpdate) (*domain.PaymentRecord, error) {
	return r.coll().modify(ctx, id, func(p *domain.PaymentRecord) error {
		update.Apply(p)
		p.UpdatedAt = r.tx.db.now()
		return nil
	})
}

func (r *paymentRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.coll().remove(ctx, id)
}

var _ portsrepo.PaymentRepositoryFacade = (*paymentRepository)(nil)
