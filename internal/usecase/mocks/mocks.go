// Package mocks provides hand-written test doubles for the usecase
// interfaces. Each mock behaves like a small in-memory store by default;
// individual methods are overridable through their Func fields.
package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autobid/walletd/internal/domain"
	"github.com/autobid/walletd/internal/usecase"
)

// MockWalletRepository is a mock implementation of WalletRepository.
type MockWalletRepository struct {
	mu      sync.RWMutex
	wallets []*domain.Wallet

	CreateFunc           func(ctx context.Context, wallet *domain.Wallet) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Wallet, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.StoreTx, id string) (*domain.Wallet, error)
	ListByOwnerFunc      func(ctx context.Context, ownerID string) ([]*domain.Wallet, error)
	GetActiveByOwnerFunc func(ctx context.Context, ownerID string) (*domain.Wallet, error)
	CountByOwnerFunc     func(ctx context.Context, ownerID string) (int, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.StoreTx, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error
	UpdateStatusFunc     func(ctx context.Context, id string, status domain.WalletStatus, updatedAt time.Time) error
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{}
}

// Seed stores wallets directly, bypassing Create overrides.
func (m *MockWalletRepository) Seed(wallets ...*domain.Wallet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets = append(m.wallets, wallets...)
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, wallet)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wallets = append(m.wallets, wallet)
	return nil
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id string) (*domain.Wallet, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.wallets {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) GetByIDForUpdate(ctx context.Context, tx usecase.StoreTx, id string) (*domain.Wallet, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockWalletRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Wallet, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Wallet
	for _, w := range m.wallets {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *MockWalletRepository) GetActiveByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	if m.GetActiveByOwnerFunc != nil {
		return m.GetActiveByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, w := range m.wallets {
		if w.OwnerID == ownerID && w.IsActive() {
			return w, nil
		}
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	if m.CountByOwnerFunc != nil {
		return m.CountByOwnerFunc(ctx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, w := range m.wallets {
		if w.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (m *MockWalletRepository) UpdateBalance(ctx context.Context, tx usecase.StoreTx, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, version, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wallets {
		if w.ID == id {
			if w.Version != version {
				return domain.ErrWalletConflict
			}
			w.Balance = balance
			w.Version++
			w.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrWalletNotFound
}

func (m *MockWalletRepository) UpdateStatus(ctx context.Context, id string, status domain.WalletStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wallets {
		if w.ID == id {
			w.Status = status
			w.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrWalletNotFound
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns []*domain.Transaction

	AppendFunc             func(ctx context.Context, tx usecase.StoreTx, txn *domain.Transaction) error
	GetByIDFunc            func(ctx context.Context, id string) (*domain.Transaction, error)
	ListByOwnerFunc        func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error)
	ListRecentByWalletFunc func(ctx context.Context, walletID string, n int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// All returns every appended transaction in insertion order.
func (m *MockTransactionRepository) All() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, len(m.txns))
	copy(out, m.txns)
	return out
}

func (m *MockTransactionRepository) Append(ctx context.Context, tx usecase.StoreTx, txn *domain.Transaction) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, txn)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.txns {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for i := len(m.txns) - 1; i >= 0; i-- {
		if m.txns[i].OwnerID == ownerID {
			out = append(out, m.txns[i])
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) ListRecentByWallet(ctx context.Context, walletID string, n int) ([]*domain.Transaction, error) {
	if m.ListRecentByWalletFunc != nil {
		return m.ListRecentByWalletFunc(ctx, walletID, n)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for i := len(m.txns) - 1; i >= 0 && len(out) < n; i-- {
		t := m.txns[i]
		if t.Status != domain.TransactionStatusSucceeded {
			continue
		}
		if t.Sender.String() == walletID || t.Receiver.String() == walletID {
			out = append(out, t)
		}
	}
	return out, nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users []*domain.User

	CreateFunc        func(ctx context.Context, user *domain.User) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, user)
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository.
type MockSubscriptionRepository struct {
	mu    sync.RWMutex
	tiers map[string]domain.SubscriptionTier

	GetTierFunc func(ctx context.Context, userID string) (domain.SubscriptionTier, error)
	SetTierFunc func(ctx context.Context, userID string, tier domain.SubscriptionTier, updatedAt time.Time) error
}

func NewMockSubscriptionRepository() *MockSubscriptionRepository {
	return &MockSubscriptionRepository{
		tiers: make(map[string]domain.SubscriptionTier),
	}
}

func (m *MockSubscriptionRepository) GetTier(ctx context.Context, userID string) (domain.SubscriptionTier, error) {
	if m.GetTierFunc != nil {
		return m.GetTierFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if tier, ok := m.tiers[userID]; ok {
		return tier, nil
	}
	return domain.TierBasic, nil
}

func (m *MockSubscriptionRepository) SetTier(ctx context.Context, userID string, tier domain.SubscriptionTier, updatedAt time.Time) error {
	if m.SetTierFunc != nil {
		return m.SetTierFunc(ctx, userID, tier, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tiers[userID] = tier
	return nil
}

// MockStoreTx is a no-op storage transaction.
type MockStoreTx struct {
	Committed  bool
	RolledBack bool
}

func (t *MockStoreTx) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockStoreTx) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTxManager is a mock implementation of TxManager.
type MockTxManager struct {
	mu    sync.Mutex
	Begun []*MockStoreTx

	BeginFunc func(ctx context.Context) (usecase.StoreTx, error)
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.StoreTx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockStoreTx{}
	m.Begun = append(m.Begun, tx)
	return tx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + string(rune('0'+m.counter%10)) + "-" + time.Now().Format("150405.000000")
}

// ErrCacheMiss is returned by MockCache for unknown keys.
var ErrCacheMiss = errors.New("cache miss")

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu    sync.RWMutex
	store map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		store: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.store[key]; ok {
		return v, nil
	}
	return nil, ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
	return nil
}
