package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"croupier/models"
)

func TestBankService_GetBalance(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerEntryRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockLedgerRepo, mockEventBus)

	svc := NewBankService(mockFactory, newTestConfig())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 4200}, nil)

	balance := svc.GetBalance(ctx, 123456)
	assert.Equal(t, int64(4200), balance)

	mockAccountRepo.AssertExpectations(t)
}

func TestBankService_GetBalance_StorageError(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerEntryRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockLedgerRepo, mockEventBus)

	svc := NewBankService(mockFactory, newTestConfig())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(nil, errors.New("connection reset"))

	// A failed read reports an empty balance rather than an error
	balance := svc.GetBalance(ctx, 123456)
	assert.Equal(t, int64(0), balance)

	mockUoW.AssertNotCalled(t, "Commit")
}

func TestBankService_Beg_Granted(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerEntryRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockLedgerRepo, mockEventBus)

	svc := NewBankService(mockFactory, newTestConfig())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 0}, nil)
	mockAccountRepo.On("GetOrCreate", ctx, int64(1)).Return(&models.Account{UserID: 1, Balance: 100000}, nil)
	mockAccountRepo.On("TryHandout", ctx, int64(123456), mock.AnythingOfType("int64")).Return(true, nil)
	mockAccountRepo.On("ForceDebit", ctx, int64(1), mock.AnythingOfType("int64")).Return(nil)

	mockLedgerRepo.On("Record", ctx, mock.Anything).Return(nil)
	mockEventBus.On("Publish", mock.Anything).Return()

	result, err := svc.Beg(ctx, 123456)
	assert.NoError(t, err)
	assert.True(t, result.Granted)
	assert.GreaterOrEqual(t, result.Amount, int64(1))
	assert.LessOrEqual(t, result.Amount, int64(maxBegHandout))
	assert.Equal(t, result.Amount, result.NewBalance)

	mockAccountRepo.AssertExpectations(t)
}

func TestBankService_Beg_NotBroke(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerEntryRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockLedgerRepo, mockEventBus)

	svc := NewBankService(mockFactory, newTestConfig())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 10}, nil)

	result, err := svc.Beg(ctx, 123456)
	assert.NoError(t, err)
	assert.False(t, result.Granted)
	assert.Equal(t, int64(10), result.NewBalance)

	mockAccountRepo.AssertNotCalled(t, "TryHandout", mock.Anything, mock.Anything, mock.Anything)
	mockAccountRepo.AssertNotCalled(t, "ForceDebit", mock.Anything, mock.Anything, mock.Anything)
}

func TestBankService_Beg_LostHandoutRace(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockAccountRepository)
	mockLedgerRepo := new(MockLedgerEntryRepository)
	mockEventBus := new(MockEventPublisher)

	mockUoW.SetRepositories(mockAccountRepo, mockLedgerRepo, mockEventBus)

	svc := NewBankService(mockFactory, newTestConfig())

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// The balance read saw 0, but a concurrent beg cashed in first
	mockAccountRepo.On("GetOrCreate", ctx, int64(123456)).Return(&models.Account{UserID: 123456, Balance: 0}, nil)
	mockAccountRepo.On("TryHandout", ctx, int64(123456), mock.AnythingOfType("int64")).Return(false, nil)

	result, err := svc.Beg(ctx, 123456)
	assert.NoError(t, err)
	assert.False(t, result.Granted)

	mockAccountRepo.AssertNotCalled(t, "ForceDebit", mock.Anything, mock.Anything, mock.Anything)
	mockUoW.AssertNotCalled(t, "Commit")
}
