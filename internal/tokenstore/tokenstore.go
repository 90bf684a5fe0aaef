// Package tokenstore реализует долговременное клиентское хранилище
// bearer-токена. Хранится единственный ключ; отсутствие значения
// эквивалентно отсутствию сессии. Токен переживает перезапуск клиента.
package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store описывает контракт хранилища токена.
//
// Запись выполняет только контроллер сессии: Save — при успешном входе,
// Clear — при выходе или отклонённом токене.
type Store interface {
	// Load возвращает сохранённый токен или пустую строку, если его нет.
	Load() (string, error)
	// Save сохраняет токен.
	Save(token string) error
	// Clear удаляет сохранённый токен. Повторный вызов не является ошибкой.
	Clear() error
}

// FileStore хранит токен в файле с правами 0600.
type FileStore struct {
	path string
}

// NewFileStore создаёт хранилище токена по указанному пути.
// Относительный путь разворачивается от домашней директории пользователя.
func NewFileStore(path string) (*FileStore, error) {
	const op = "tokenstore.NewFileStore"
	if !filepath.IsAbs(path) {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		path = filepath.Join(home, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &FileStore{path: path}, nil
}

// Load возвращает сохранённый токен или пустую строку, если файла нет.
func (s *FileStore) Load() (string, error) {
	const op = "tokenstore.Load"
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save сохраняет токен в файл.
func (s *FileStore) Save(token string) error {
	const op = "tokenstore.Save"
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет файл токена.
func (s *FileStore) Clear() error {
	const op = "tokenstore.Clear"
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MemoryStore хранит токен в памяти. Используется в тестах.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore создаёт пустое хранилище в памяти.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load возвращает сохранённый токен.
func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Save сохраняет токен.
func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear удаляет токен.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
