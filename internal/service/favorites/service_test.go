package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeMarket фейковый клиент избранного с программируемыми отказами
type fakeMarket struct {
	mu      sync.Mutex
	list    []int64
	listErr error

	addErr    error
	removeErr error
	addBlock  chan struct{} // если не nil, AddFavorite ждёт закрытия канала

	addCalls    []int64
	removeCalls []int64
}

func (m *fakeMarket) ListFavorites(context.Context) ([]int64, error) {
	return m.list, m.listErr
}

func (m *fakeMarket) AddFavorite(_ context.Context, productID int64) error {
	m.mu.Lock()
	m.addCalls = append(m.addCalls, productID)
	block := m.addBlock
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	return m.addErr
}

func (m *fakeMarket) RemoveFavorite(_ context.Context, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeCalls = append(m.removeCalls, productID)
	return m.removeErr
}

func TestService_Load(t *testing.T) {
	market := &fakeMarket{list: []int64{42, 17}}
	svc := NewService(market, nopLogger{})

	svc.Load(context.Background())

	assert.True(t, svc.IsFav(42))
	assert.True(t, svc.IsFav(17))
	assert.False(t, svc.IsFav(1))
	assert.Equal(t, []int64{17, 42}, svc.All())
}

func TestService_LoadFailureSwallowed(t *testing.T) {
	market := &fakeMarket{listErr: errors.New("boom")}
	svc := NewService(market, nopLogger{})

	// Избранное не критично: отказ загрузки даёт пустое множество
	svc.Load(context.Background())
	assert.Empty(t, svc.All())
}

func TestService_ToggleAdd(t *testing.T) {
	market := &fakeMarket{}
	svc := NewService(market, nopLogger{})

	fav, err := svc.Toggle(context.Background(), 42)
	require.NoError(t, err)

	assert.True(t, fav)
	assert.True(t, svc.IsFav(42))
	assert.Equal(t, []int64{42}, market.addCalls)
	assert.Empty(t, market.removeCalls)
}

func TestService_ToggleRemove(t *testing.T) {
	market := &fakeMarket{list: []int64{42}}
	svc := NewService(market, nopLogger{})
	svc.Load(context.Background())

	fav, err := svc.Toggle(context.Background(), 42)
	require.NoError(t, err)

	assert.False(t, fav)
	assert.False(t, svc.IsFav(42))
	assert.Equal(t, []int64{42}, market.removeCalls)
}

func TestService_ToggleRollbackOnFailure(t *testing.T) {
	// Сценарий отката: множество пустое, toggle(42) оптимистично добавляет,
	// бэкенд отказывает, множество возвращается к пустому
	market := &fakeMarket{addErr: errors.New("backend down")}
	svc := NewService(market, nopLogger{})

	fav, err := svc.Toggle(context.Background(), 42)

	require.ErrorIs(t, err, ErrInternal)
	assert.False(t, fav)
	assert.False(t, svc.IsFav(42), "membership must equal pre-toggle value after rollback")
}

func TestService_ToggleRemoveRollback(t *testing.T) {
	market := &fakeMarket{list: []int64{42}, removeErr: errors.New("backend down")}
	svc := NewService(market, nopLogger{})
	svc.Load(context.Background())

	fav, err := svc.Toggle(context.Background(), 42)

	require.ErrorIs(t, err, ErrInternal)
	assert.True(t, fav)
	assert.True(t, svc.IsFav(42))
}

func TestService_DuplicateToggleGuard(t *testing.T) {
	block := make(chan struct{})
	market := &fakeMarket{addBlock: block}
	svc := NewService(market, nopLogger{})

	done := make(chan struct{})
	go func() {
		_, err := svc.Toggle(context.Background(), 42)
		assert.NoError(t, err)
		close(done)
	}()

	// Дожидаемся, пока первый toggle уйдёт в полёт
	require.Eventually(t, func() bool {
		market.mu.Lock()
		defer market.mu.Unlock()
		return len(market.addCalls) == 1
	}, time.Second, time.Millisecond)

	// Повторный toggle того же продукта отклоняется, а не перемешивает вызовы
	_, err := svc.Toggle(context.Background(), 42)
	assert.ErrorIs(t, err, ErrToggleInFlight)

	close(block)
	<-done

	assert.True(t, svc.IsFav(42))
	market.mu.Lock()
	defer market.mu.Unlock()
	assert.Equal(t, []int64{42}, market.addCalls)
	assert.Empty(t, market.removeCalls)
}

func TestService_IndependentIDsToggleConcurrently(t *testing.T) {
	block := make(chan struct{})
	market := &fakeMarket{addBlock: block}
	svc := NewService(market, nopLogger{})

	done := make(chan struct{})
	go func() {
		_, err := svc.Toggle(context.Background(), 42)
		assert.NoError(t, err)
		close(done)
	}()

	require.Eventually(t, func() bool {
		market.mu.Lock()
		defer market.mu.Unlock()
		return len(market.addCalls) == 1
	}, time.Second, time.Millisecond)

	// Guard действует на продукт, а не глобально
	market.mu.Lock()
	market.addBlock = nil
	market.mu.Unlock()

	fav, err := svc.Toggle(context.Background(), 17)
	require.NoError(t, err)
	assert.True(t, fav)

	close(block)
	<-done
	assert.Equal(t, []int64{17, 42}, svc.All())
}
