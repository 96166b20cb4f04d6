// Package storage предоставляет типизированное локальное хранилище,
// заменяющее строковые ключи браузерного localStorage. Ключи собираются
// только через Key, поэтому данные одной роли не видны другой.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Виды записей в хранилище
const (
	KindSession = "session"
	KindUser    = "user"
	KindProfile = "profile"
)

// Key представляет типизированный ключ хранилища: роль + вид записи.
// Вызывающий код никогда не конкатенирует строки ключей сам.
type Key struct {
	Role string
	Kind string
}

// String возвращает строковое представление ключа
func (k Key) String() string {
	return k.Role + ":" + k.Kind
}

// Storage определяет интерфейс локального хранилища.
// Реализации подставляются через внедрение зависимостей,
// чтобы тесты могли использовать хранилище в памяти.
type Storage interface {
	Get(key Key) ([]byte, bool)
	Set(key Key, value []byte) error
	Delete(key Key) error
}

// Memory реализует хранилище в памяти
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory создает новое хранилище в памяти
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get возвращает значение по ключу
func (m *Memory) Get(key Key) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key.String()]
	return value, ok
}

// Set сохраняет значение по ключу
func (m *Memory) Set(key Key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key.String()] = value
	return nil
}

// Delete удаляет значение по ключу
func (m *Memory) Delete(key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key.String())
	return nil
}

// File реализует хранилище в файлах: одна запись - один JSON файл
// в каталоге dir
type File struct {
	mu  sync.Mutex
	dir string
}

// NewFile создает файловое хранилище в указанном каталоге
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// path возвращает путь файла для ключа
func (f *File) path(key Key) string {
	name := strings.ReplaceAll(key.String(), ":", "_") + ".json"
	return filepath.Join(f.dir, name)
}

// Get возвращает значение по ключу. Отсутствие файла или ошибка чтения
// трактуются как отсутствие записи.
func (f *File) Get(key Key) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set сохраняет значение по ключу
func (f *File) Set(key Key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(f.path(key), value, 0o600); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	return nil
}

// Delete удаляет значение по ключу; удаление отсутствующей записи не ошибка
func (f *File) Delete(key Key) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete storage file: %w", err)
	}
	return nil
}
