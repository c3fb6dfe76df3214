// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/kmadan/splitledger/internal/models"
)

// ErrNotFound is returned when a requested record does not exist or does
// not belong to the requesting user.
var ErrNotFound = errors.New("not found")

// ObligationRole selects which side of a debt a participant filter
// applies to.
type ObligationRole string

const (
	// RoleCreditor matches obligations where the participant is owed.
	RoleCreditor ObligationRole = "creditor"
	// RoleDebtor matches obligations where the participant owes.
	RoleDebtor ObligationRole = "debtor"
)

// ObligationFilter narrows a debt listing. UserID is required; the other
// fields are ignored when zero-valued.
type ObligationFilter struct {
	UserID      string
	Participant models.Participant
	Role        ObligationRole
	Type        models.DebtType
	Status      models.DebtStatus
}

// Store defines the persistence contract consumed by the services.
// The abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns nil, nil when
	// no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// ListUsers returns every registered user, oldest first.
	ListUsers(ctx context.Context) ([]models.User, error)

	// CreateFriend adds a contact for a user. The friend ID and
	// CreatedAt are populated by the store when unset.
	CreateFriend(ctx context.Context, friend *models.Friend) error

	// ListFriends returns all contacts of a user, oldest first.
	ListFriends(ctx context.Context, userID string) ([]models.Friend, error)

	// DeleteFriend removes a contact. Returns ErrNotFound if the friend
	// does not exist or belongs to another user.
	DeleteFriend(ctx context.Context, userID, friendID string) error

	// CreateExpenseWithDebts persists an expense together with its
	// derived obligations as a single atomic unit: either everything is
	// stored or nothing is. IDs and timestamps are populated by the
	// store when unset.
	CreateExpenseWithDebts(ctx context.Context, expense *models.Expense, debts []models.DebtObligation) error

	// GetExpense retrieves one expense with its shares.
	GetExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error)

	// ListExpenses returns a user's expenses, newest first.
	ListExpenses(ctx context.Context, userID string) ([]models.Expense, error)

	// DeleteExpenseCascade removes an expense and every obligation
	// linked to it. Returns ErrNotFound if the expense does not exist.
	DeleteExpenseCascade(ctx context.Context, userID, expenseID string) error

	// ListObligations returns debts matching the filter in creation
	// order.
	ListObligations(ctx context.Context, filter ObligationFilter) ([]models.DebtObligation, error)

	// SettleObligation transitions a pending obligation to settled and
	// marks the owning expense settled once none of its obligations
	// remain pending. Returns ErrNotFound if there is no matching
	// pending obligation.
	SettleObligation(ctx context.Context, userID, obligationID string) error

	// CreateScan persists a processed bill scan.
	CreateScan(ctx context.Context, scan *models.BillScan) error

	// ListScans returns a user's scan history, newest first.
	ListScans(ctx context.Context, userID string) ([]models.BillScan, error)

	// Close releases any resources held by the store.
	Close() error
}
