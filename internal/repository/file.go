package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/mmeshcher/lpg-booking-system/internal/model"
)

// storeState описывает содержимое трёх слотов хранилища в JSON-файле.
type storeState struct {
	Users          []model.Account `json:"users"`
	CurrentSession *model.User     `json:"current_session,omitempty"`
	Bookings       []model.Booking `json:"bookings"`
}

// FileRepository хранит учётные записи, сессию и бронирования в одном JSON-файле.
// При пустом пути работает только в памяти (используется в тестах).
// Отсутствующий или повреждённый файл трактуется как пустое хранилище.
type FileRepository struct {
	path string

	mu    sync.Mutex
	state storeState
}

// NewFileRepository создаёт файловый репозиторий и загружает сохранённое состояние.
func NewFileRepository(path string) (*FileRepository, error) {
	r := &FileRepository{path: path}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			var state storeState
			if json.Unmarshal(data, &state) == nil {
				r.state = state
			}
		}
	}

	return r, nil
}

func (r *FileRepository) flush() error {
	if r.path == "" {
		return nil
	}

	data, err := json.Marshal(r.state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}

	return nil
}

// Close ничего не освобождает: запись выполняется сразу при каждой операции.
func (r *FileRepository) Close() error {
	return nil
}

// CreateAccount сохраняет новую учётную запись, если e-mail ещё не занят.
func (r *FileRepository) CreateAccount(_ context.Context, account model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.state.Users {
		if a.Email == account.Email {
			return fmt.Errorf("%w: %s", ErrEmailExists, account.Email)
		}
	}

	r.state.Users = append(r.state.Users, account)

	if err := r.flush(); err != nil {
		r.state.Users = r.state.Users[:len(r.state.Users)-1]
		return err
	}

	return nil
}

// GetAccountByEmail возвращает учётную запись по e-mail (сравнение с учётом регистра).
func (r *FileRepository) GetAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.state.Users {
		if a.Email == email {
			acc := a
			return &acc, nil
		}
	}

	return nil, ErrUserNotFound
}

// SaveSession сохраняет публичную запись пользователя в слот текущей сессии.
func (r *FileRepository) SaveSession(_ context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.state.CurrentSession
	u := user
	r.state.CurrentSession = &u

	if err := r.flush(); err != nil {
		r.state.CurrentSession = prev
		return err
	}

	return nil
}

// LoadSession возвращает сохранённую сессию или ErrSessionNotFound, если слот пуст.
func (r *FileRepository) LoadSession(_ context.Context) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state.CurrentSession == nil {
		return nil, ErrSessionNotFound
	}

	u := *r.state.CurrentSession
	return &u, nil
}

// ClearSession очищает слот текущей сессии. Пустой слот не является ошибкой.
func (r *FileRepository) ClearSession(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.CurrentSession = nil
	return r.flush()
}

// CreateBooking добавляет бронирование в хранилище.
func (r *FileRepository) CreateBooking(_ context.Context, booking model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.state.Bookings = append(r.state.Bookings, booking)

	if err := r.flush(); err != nil {
		r.state.Bookings = r.state.Bookings[:len(r.state.Bookings)-1]
		return err
	}

	return nil
}

// GetBookingsByUser возвращает бронирования пользователя, новые первыми.
func (r *FileRepository) GetBookingsByUser(_ context.Context, userID string) ([]model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bookings []model.Booking
	for _, b := range r.state.Bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})

	return bookings, nil
}
