package favorites

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/m04kA/RentMarket-Client/pkg/optimistic"
)

// Service локальное множество избранных продуктов, синхронизированное с бэкендом.
//
// Мутации оптимистичные: множество меняется сразу, вызов бэкенда подтверждает
// изменение, при отказе членство продукта откатывается к снимку. Повторный
// toggle того же продукта до завершения предыдущего отклоняется (per-ID guard),
// поэтому add/remove одного продукта не перемешиваются.
type Service struct {
	client MarketClient
	log    Logger

	mu       sync.Mutex
	set      map[int64]struct{}
	inFlight map[int64]struct{}
}

// NewService создает сервис избранного
func NewService(client MarketClient, log Logger) *Service {
	return &Service{
		client:   client,
		log:      log,
		set:      make(map[int64]struct{}),
		inFlight: make(map[int64]struct{}),
	}
}

// Load загружает полный список избранного с бэкенда
// Отказ не критичен: избранное остаётся пустым, ошибка проглатывается
func (s *Service) Load(ctx context.Context) {
	ids, err := s.client.ListFavorites(ctx)
	if err != nil {
		s.log.Warn("Load: failed to fetch favorites, starting empty: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s.set[id] = struct{}{}
	}
	s.log.Info("Load: %d favorites loaded", len(ids))
}

// IsFav проверяет членство продукта в текущем (возможно оптимистичном) множестве
func (s *Service) IsFav(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[productID]
	return ok
}

// All возвращает отсортированный список избранных продуктов
func (s *Service) All() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]int64, 0, len(s.set))
	for id := range s.set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Toggle переключает членство продукта в избранном
// Возвращает итоговое членство после подтверждения (или отката)
func (s *Service) Toggle(ctx context.Context, productID int64) (bool, error) {
	s.mu.Lock()
	if _, busy := s.inFlight[productID]; busy {
		s.mu.Unlock()
		return s.IsFav(productID), ErrToggleInFlight
	}
	s.inFlight[productID] = struct{}{}
	_, wasFav := s.set[productID]
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, productID)
		s.mu.Unlock()
	}()

	err := optimistic.Mutate(ctx,
		func() bool { return wasFav },
		func() { s.setMembership(productID, !wasFav) },
		func(ctx context.Context) error {
			if wasFav {
				return s.client.RemoveFavorite(ctx, productID)
			}
			return s.client.AddFavorite(ctx, productID)
		},
		func(snap bool) { s.setMembership(productID, snap) },
	)
	if err != nil {
		s.log.Warn("Toggle: product=%d rolled back: %v", productID, err)
		return wasFav, fmt.Errorf("%w: toggle product=%d: %v", ErrInternal, productID, err)
	}

	s.log.Info("Toggle: product=%d favorite=%t", productID, !wasFav)
	return !wasFav, nil
}

func (s *Service) setMembership(productID int64, member bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if member {
		s.set[productID] = struct{}{}
	} else {
		delete(s.set, productID)
	}
}
