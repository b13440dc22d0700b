// Package session хранит bearer-токен текущего пользователя.
// Единственный источник правды о сессии: все модули получают токен отсюда
// через DI, а не читают хранилище напрямую.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store файловое хранилище токена сессии с подпиской на изменения
type Store struct {
	mu    sync.RWMutex
	path  string
	token string
	subs  []func(token string)
}

// NewStore открывает хранилище токена
// Отсутствующий файл не является ошибкой - сессия просто не авторизована
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("session: failed to read token file %s: %w", path, err)
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// Token возвращает текущий токен (пустая строка - нет сессии)
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsAuthenticated сообщает, есть ли активная сессия
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// SetToken сохраняет токен и уведомляет подписчиков
func (s *Store) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: failed to create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("session: failed to persist token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	subs := append([]func(string){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(token)
	}
	return nil
}

// Clear завершает сессию: удаляет файл токена и уведомляет подписчиков
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: failed to remove token file: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	subs := append([]func(string){}, s.subs...)
	s.mu.Unlock()

	for _, fn := range subs {
		fn("")
	}
	return nil
}

// Subscribe регистрирует колбэк на изменение сессии
// Колбэк вызывается вне блокировки, повторная запись в Store из него допустима
func (s *Store) Subscribe(fn func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
