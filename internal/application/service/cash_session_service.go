package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellista/pos-checkout-api/internal/domain/entity"
	"github.com/sellista/pos-checkout-api/internal/domain/enum"
	"github.com/sellista/pos-checkout-api/internal/domain/money"
	"github.com/sellista/pos-checkout-api/internal/domain/repository"
	"github.com/sellista/pos-checkout-api/pkg/apperror"
	"github.com/sellista/pos-checkout-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CashSessionService handles till open/close and drawer movements
type CashSessionService struct {
	sessionRepo repository.CashSessionRepository
	logger      *logrus.Logger
}

// NewCashSessionService creates a new cash session service
func NewCashSessionService(sessionRepo repository.CashSessionRepository, logger *logrus.Logger) *CashSessionService {
	return &CashSessionService{
		sessionRepo: sessionRepo,
		logger:      logger,
	}
}

// OpenSessionInput represents the open session input
type OpenSessionInput struct {
	UserID        uuid.UUID
	OpeningAmount float64
	Notes         *string
}

// OpenSession opens the till. Only one session may be open at a time.
func (s *CashSessionService) OpenSession(ctx context.Context, input *OpenSessionInput) (*entity.CashSession, error) {
	open, err := s.sessionRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, apperror.NewConflictError("A cash session is already open")
	}

	opening, err := money.FromFloat(input.OpeningAmount)
	if err != nil {
		return nil, err
	}

	session := &entity.CashSession{
		UserID:        input.UserID,
		Status:        enum.CashSessionOpen,
		OpenedAt:      time.Now(),
		OpeningAmount: money.Clamp0(opening),
		Notes:         input.Notes,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id":     session.ID,
		"opening_amount": session.OpeningAmount,
	}).Info("cash session opened")

	return session, nil
}

// GetCurrent returns the open session, or a not-found error when the till is
// closed.
func (s *CashSessionService) GetCurrent(ctx context.Context) (*entity.CashSession, error) {
	session, err := s.sessionRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Open cash session")
	}
	return session, nil
}

// MovementInput represents a manual drawer movement input
type MovementInput struct {
	Amount      float64
	Description string
}

// RegisterSupply records cash added to the drawer outside of a sale
func (s *CashSessionService) RegisterSupply(ctx context.Context, input *MovementInput) (*entity.CashMovement, error) {
	return s.registerManualMovement(ctx, enum.MovementSupply, input)
}

// RegisterWithdrawal records cash taken out of the drawer
func (s *CashSessionService) RegisterWithdrawal(ctx context.Context, input *MovementInput) (*entity.CashMovement, error) {
	return s.registerManualMovement(ctx, enum.MovementWithdrawal, input)
}

func (s *CashSessionService) registerManualMovement(ctx context.Context, movementType enum.MovementType, input *MovementInput) (*entity.CashMovement, error) {
	session, err := s.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	amount, err := money.FromFloat(input.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount
	}
	if input.Description == "" {
		return nil, apperror.NewBadRequestError("Movement description is required")
	}

	movement := &entity.CashMovement{
		CashSessionID: session.ID,
		Type:          movementType,
		Amount:        amount,
		Description:   input.Description,
	}

	if err := s.sessionRepo.AddMovement(ctx, movement); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"type":       movementType.String(),
		"amount":     amount,
	}).Info("cash movement recorded")

	return movement, nil
}

// RecordSaleMovement appends a sale (or reversal) entry to the open session
// ledger. Amount carries the net cash taken; reversals pass it negated.
func (s *CashSessionService) RecordSaleMovement(ctx context.Context, sessionID uuid.UUID, movementType enum.MovementType, amount decimal.Decimal, description string, saleID uuid.UUID) error {
	movement := &entity.CashMovement{
		CashSessionID: sessionID,
		Type:          movementType,
		Amount:        amount,
		Description:   description,
		ReferenceID:   &saleID,
	}
	return s.sessionRepo.AddMovement(ctx, movement)
}

// CloseSessionInput represents the close session input
type CloseSessionInput struct {
	DeclaredAmount float64
	ClosingNotes   *string
}

// CloseSession closes the till, computing the expected drawer amount
// (opening + cash sales + supplies - withdrawals) and the deviation against
// the counted amount.
func (s *CashSessionService) CloseSession(ctx context.Context, input *CloseSessionInput) (*entity.CashSession, error) {
	session, err := s.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}

	declared, err := money.FromFloat(input.DeclaredAmount)
	if err != nil {
		return nil, err
	}
	declared = money.Clamp0(declared)

	expected := session.OpeningAmount.
		Add(session.SalesTotal).
		Add(session.SupplyTotal).
		Sub(session.WithdrawalTotal)
	deviation := declared.Sub(expected)

	now := time.Now()
	session.Status = enum.CashSessionClosed
	session.ClosedAt = &now
	session.ExpectedAmount = &expected
	session.DeclaredAmount = &declared
	session.Deviation = &deviation
	session.ClosingNotes = input.ClosingNotes

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
		"expected":   expected,
		"declared":   declared,
		"deviation":  deviation,
	}).Info("cash session closed")

	return session, nil
}

// GetSession returns a session with its movement ledger
func (s *CashSessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	session, err := s.sessionRepo.GetWithMovements(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Cash session")
	}
	return session, nil
}

// ListSessions returns past sessions with pagination
func (s *CashSessionService) ListSessions(ctx context.Context, params *pagination.PaginationParams) ([]entity.CashSession, int64, error) {
	return s.sessionRepo.List(ctx, params)
}
