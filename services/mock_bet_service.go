package services

import (
	"github.com/stretchr/testify/mock"

	"betboard/models"
	"betboard/store"
)

// Ensure MockBetService implements BetServiceInterface
var _ BetServiceInterface = (*MockBetService)(nil)

// MockBetService is a mock implementation for testing and extends `mock.Mock`
type MockBetService struct {
	mock.Mock
}

// CreateBet (Mocked)
func (m *MockBetService) CreateBet(userID string, bet models.Bet) (*models.Bet, error) {
	args := m.Called(userID, bet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

// GetBet (Mocked)
func (m *MockBetService) GetBet(userID, betID string) (*models.Bet, error) {
	args := m.Called(userID, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

// ListBets (Mocked)
func (m *MockBetService) ListBets(userID string, f store.BetFilters) ([]models.Bet, error) {
	args := m.Called(userID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bet), args.Error(1)
}

// ListAllBets (Mocked)
func (m *MockBetService) ListAllBets(f store.BetFilters) ([]models.Bet, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bet), args.Error(1)
}

// UpdateBet (Mocked)
func (m *MockBetService) UpdateBet(userID, betID string, upd models.BetUpdate) (*models.Bet, error) {
	args := m.Called(userID, betID, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

// DeleteBet (Mocked)
func (m *MockBetService) DeleteBet(userID, betID string) error {
	args := m.Called(userID, betID)
	return args.Error(0)
}

// ClearWeek (Mocked)
func (m *MockBetService) ClearWeek(userID string) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

// Ensure MockExtractor implements BetslipExtractor
var _ BetslipExtractor = (*MockExtractor)(nil)

// MockExtractor is a mock bet slip extractor for testing
type MockExtractor struct {
	mock.Mock
}

// AnalyzeBetslip (Mocked)
func (m *MockExtractor) AnalyzeBetslip(imageBytes []byte) (string, error) {
	args := m.Called(imageBytes)
	return args.String(0), args.Error(1)
}
