package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/shop_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/shop_ledger_app/internal/core/services"
	"github.com/SscSPs/shop_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	env       *testEnv
	ctx       context.Context
	ledger    portssvc.LedgerSvcFacade
	customers portssvc.CustomerSvcFacade
	invoices  portssvc.InvoiceSvcFacade
	payments  portssvc.PaymentSvcFacade
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.env = newTestEnv()
	s.ctx = context.Background()
	s.ledger = services.NewLedgerService(s.env.db, s.env.opts...)
	s.customers = services.NewCustomerService(s.env.db, s.env.opts...)
	s.invoices = services.NewInvoiceService(s.env.db, s.env.opts...)
	s.payments = services.NewPaymentService(s.env.db, s.env.opts...)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) newCustomer(name string) *domain.Customer {
	c, err := s.customers.CreateCustomer(s.ctx, dto.CreateCustomerRequest{Name: name, Phone: "555-0100"})
	s.Require().NoError(err)
	return c
}

func (s *LedgerServiceTestSuite) post(customerID string, t domain.EntryType, amount string) *domain.LedgerEntry {
	entry, err := s.ledger.CreateEntry(s.ctx, dto.CreateLedgerEntryRequest{
		CustomerID:  customerID,
		Type:        t,
		Amount:      dec(amount),
		Description: "manual " + string(t),
	})
	s.Require().NoError(err)
	return entry
}

func (s *LedgerServiceTestSuite) assertBalanceMatchesLedger(customerID string) {
	customer := s.env.customer(s.ctx, customerID)
	s.Require().NotNil(customer)
	expected := domain.SumDeltas(s.env.entriesFor(s.ctx, customerID))
	s.True(expected.Equal(customer.Balance), "stored %s, ledger %s", customer.Balance, expected)
}

func (s *LedgerServiceTestSuite) TestBalanceInvariantAcrossCreateUpdateDelete() {
	c := s.newCustomer("Alice")

	e1 := s.post(c.ID, domain.Credit, "120.50")
	s.assertBalanceMatchesLedger(c.ID)
	e2 := s.post(c.ID, domain.Debit, "20.25")
	s.assertBalanceMatchesLedger(c.ID)
	s.post(c.ID, domain.Credit, "5")
	s.assertBalanceMatchesLedger(c.ID)

	_, err := s.ledger.UpdateEntry(s.ctx, e1.ID, dto.UpdateLedgerEntryRequest{Amount: ptr(dec("100"))})
	s.Require().NoError(err)
	s.assertBalanceMatchesLedger(c.ID)

	_, err = s.ledger.UpdateEntry(s.ctx, e2.ID, dto.UpdateLedgerEntryRequest{Description: ptr("renamed")})
	s.Require().NoError(err)
	s.assertBalanceMatchesLedger(c.ID)

	s.Require().NoError(s.ledger.DeleteEntry(s.ctx, e2.ID))
	s.assertBalanceMatchesLedger(c.ID)

	s.True(dec("105").Equal(s.env.customer(s.ctx, c.ID).Balance))
}

func (s *LedgerServiceTestSuite) TestUpdateCreditToDebitAdjustsByDifference() {
	c := s.newCustomer("Bob")
	entry := s.post(c.ID, domain.Credit, "50")
	s.True(dec("50").Equal(s.env.customer(s.ctx, c.ID).Balance))

	debit := domain.Debit
	updated, err := s.ledger.UpdateEntry(s.ctx, entry.ID, dto.UpdateLedgerEntryRequest{Type: &debit, Amount: ptr(dec("20"))})
	s.Require().NoError(err)
	s.Equal(domain.Debit, updated.Type)
	s.True(dec("-20").Equal(s.env.customer(s.ctx, c.ID).Balance))
}

func (s *LedgerServiceTestSuite) TestRunningBalanceScenario() {
	c := s.newCustomer("Carol")
	invoiceA := s.createInvoice(c.ID, "100")
	invoiceB := s.createInvoice(c.ID, "50")

	_, err := s.ledger.CreateEntry(s.ctx, dto.CreateLedgerEntryRequest{
		CustomerID: c.ID, Type: domain.Credit, Amount: dec("100"), Description: "Invoice A", InvoiceID: &invoiceA.ID,
	})
	s.Require().NoError(err)
	s.True(dec("100").Equal(s.env.customer(s.ctx, c.ID).Balance))

	_, err = s.ledger.CreateEntry(s.ctx, dto.CreateLedgerEntryRequest{
		CustomerID: c.ID, Type: domain.Credit, Amount: dec("50"), Description: "Invoice B", InvoiceID: &invoiceB.ID,
	})
	s.Require().NoError(err)
	s.True(dec("150").Equal(s.env.customer(s.ctx, c.ID).Balance))

	_, err = s.payments.RecordPayment(s.ctx, dto.RecordPaymentRequest{
		InvoiceID: invoiceA.ID, Amount: dec("100"), PaymentMethod: domain.PaymentCash,
	})
	s.Require().NoError(err)
	s.True(dec("50").Equal(s.env.customer(s.ctx, c.ID).Balance))

	paid, err := s.invoices.GetInvoiceByID(s.ctx, invoiceA.ID)
	s.Require().NoError(err)
	s.Equal(domain.InvoicePaid, paid.Status)

	stmt, err := s.ledger.Statement(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Require().Len(stmt.Lines, 3)
	for i, want := range []string{"100", "150", "50"} {
		s.True(dec(want).Equal(stmt.Lines[i].RunningBalance), "line %d: got %s", i, stmt.Lines[i].RunningBalance)
	}
	s.True(dec("150").Equal(stmt.TotalCredits))
	s.True(dec("100").Equal(stmt.TotalDebits))
	s.True(stmt.Consistent)

	listed, err := s.ledger.ListByCustomer(s.ctx, c.ID)
	s.Require().NoError(err)
	s.Require().Len(listed, 3)
	s.Equal(domain.Debit, listed[0].Type, "most recent entry first")
}

func (s *LedgerServiceTestSuite) TestEntryForUnknownCustomerIsKept() {
	entry, err := s.ledger.CreateEntry(s.ctx, dto.CreateLedgerEntryRequest{
		CustomerID: "missing", Type: domain.Credit, Amount: dec("10"), Description: "orphan",
	})
	s.Require().NoError(err)

	fetched, err := s.ledger.GetEntryByID(s.ctx, entry.ID)
	s.Require().NoError(err)
	s.Equal("missing", fetched.CustomerID)
}

func (s *LedgerServiceTestSuite) TestCreateEntryValidation() {
	c := s.newCustomer("Dan")
	_, err := s.ledger.CreateEntry(s.ctx, dto.CreateLedgerEntryRequest{
		CustomerID: c.ID, Type: domain.Credit, Amount: decimal.Zero, Description: "zero",
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Empty(s.env.entriesFor(s.ctx, c.ID))
}

func (s *LedgerServiceTestSuite) TestDeleteUnknownEntry() {
	c := s.newCustomer("Eve")
	s.post(c.ID, domain.Credit, "30")

	err := s.ledger.DeleteEntry(s.ctx, "nope")
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.True(dec("30").Equal(s.env.customer(s.ctx, c.ID).Balance))
	s.Len(s.env.entriesFor(s.ctx, c.ID), 1)
}

func (s *LedgerServiceTestSuite) TestFailedCommitLeavesEntryAndBalanceUntouched() {
	c := s.newCustomer("Frank")
	s.post(c.ID, domain.Credit, "40")

	s.env.store.failCommits.Store(true)
	_, err := s.ledger.CreateEntry(s.ctx, dto.CreateLedgerEntryRequest{
		CustomerID: c.ID, Type: domain.Debit, Amount: dec("15"), Description: "lost",
	})
	s.ErrorIs(err, errCommitFailed)
	s.env.store.failCommits.Store(false)

	s.Len(s.env.entriesFor(s.ctx, c.ID), 1)
	s.True(dec("40").Equal(s.env.customer(s.ctx, c.ID).Balance))
}

func (s *LedgerServiceTestSuite) TestRecomputeRepairsDrift() {
	c := s.newCustomer("Grace")
	s.post(c.ID, domain.Credit, "70")
	s.post(c.ID, domain.Debit, "20")

	s.Require().NoError(s.env.db.WithinTx(s.ctx, setBalance(c.ID, dec("999"))))

	stmt, err := s.ledger.Statement(s.ctx, c.ID)
	s.Require().NoError(err)
	s.False(stmt.Consistent)

	correction, err := s.ledger.RecomputeBalance(s.ctx, c.ID)
	s.Require().NoError(err)
	s.True(correction.Changed())
	s.True(dec("999").Equal(correction.Previous))
	s.True(dec("50").Equal(correction.Corrected))
	s.assertBalanceMatchesLedger(c.ID)

	all, err := s.ledger.RecomputeAllBalances(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.False(all[0].Changed())
}

func (s *LedgerServiceTestSuite) createInvoice(customerID, price string) *domain.Invoice {
	result, err := s.invoices.CreateInvoice(s.ctx, dto.CreateInvoiceRequest{
		CustomerID:  &customerID,
		CompanyName: "Acme Meats",
		Items: []dto.InvoiceItemRequest{{
			ProductID: "unlisted", ProductName: "Sundry", Quantity: dec("1"), UnitType: ptr(domain.UnitPiece), Price: dec(price),
		}},
	})
	s.Require().NoError(err)
	return &result.Invoice
}

func TestOpeningBalanceIsPostedToLedger(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	customers := services.NewCustomerService(env.db, env.opts...)

	c, err := customers.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "Hank", OpeningBalance: ptr(dec("-25"))})
	if !assert.NoError(t, err) {
		return
	}
	assert.True(t, dec("-25").Equal(c.Balance))

	entries := env.entriesFor(ctx, c.ID)
	if assert.Len(t, entries, 1) {
		assert.Equal(t, domain.Debit, entries[0].Type)
		assert.True(t, dec("25").Equal(entries[0].Amount))
		assert.Equal(t, services.OpeningBalanceDescription, entries[0].Description)
	}

	plain, err := customers.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "Ivy"})
	assert.NoError(t, err)
	assert.True(t, plain.Balance.IsZero())
	assert.Empty(t, env.entriesFor(ctx, plain.ID))
}
