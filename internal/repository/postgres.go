package repository

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mmeshcher/lpg-booking-system/internal/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresRepository предоставляет доступ к хранилищу данных в PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository создаёт новый репозиторий и инициализирует схему БД через миграции.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	r := &PostgresRepository{pool: pool}

	if err := r.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return r, nil
}

func (r *PostgresRepository) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func (r *PostgresRepository) withRetry(ctx context.Context, fn func() error) error {
	var err error
	delays := []time.Duration{1 * time.Second, 3 * time.Second, 5 * time.Second}

	for i := 0; i <= len(delays); i++ {
		err = fn()
		if err == nil {
			return nil
		}

		// Ошибки контекста не ретраим
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// Ретраи полезны для Serialization Failure и Deadlock.
			if pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected {
				if i < len(delays) {
					time.Sleep(delays[i])
					continue
				}
			}
			break
		}

		if isConnectionError(err) {
			if i < len(delays) {
				time.Sleep(delays[i])
				continue
			}
		}

		break
	}
	return err
}

func isConnectionError(err error) bool {
	// Упрощенная проверка на ошибки соединения
	return strings.Contains(err.Error(), "connection refused") ||
		strings.Contains(err.Error(), "broken pipe") ||
		strings.Contains(err.Error(), "connection reset by peer")
}

// Close закрывает пул соединений с БД.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// CreateAccount сохраняет новую учётную запись. E-mail уникален на уровне индекса.
func (r *PostgresRepository) CreateAccount(ctx context.Context, account model.Account) error {
	err := r.withRetry(ctx, func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO accounts (id, email, full_name, phone, address, password_hash)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			account.ID, account.Email, account.FullName, account.Phone, account.Address, account.PasswordHash,
		)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%w: %s", ErrEmailExists, account.Email)
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetAccountByEmail возвращает учётную запись по e-mail (сравнение с учётом регистра).
func (r *PostgresRepository) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, email, full_name, phone, address, password_hash FROM accounts WHERE email = $1`,
		email,
	)

	var a model.Account
	err := row.Scan(&a.ID, &a.Email, &a.FullName, &a.Phone, &a.Address, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return &a, nil
}

// SaveSession сохраняет публичную запись пользователя в единственный слот текущей сессии.
func (r *PostgresRepository) SaveSession(ctx context.Context, user model.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO current_session (slot, user_id, email, full_name, phone, address, saved_at)
		 VALUES (1, $1, $2, $3, $4, $5, now())
		 ON CONFLICT (slot) DO UPDATE
		 SET user_id = EXCLUDED.user_id,
		     email = EXCLUDED.email,
		     full_name = EXCLUDED.full_name,
		     phone = EXCLUDED.phone,
		     address = EXCLUDED.address,
		     saved_at = EXCLUDED.saved_at`,
		user.ID, user.Email, user.FullName, user.Phone, user.Address,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// LoadSession возвращает сохранённую сессию или ErrSessionNotFound, если слот пуст.
func (r *PostgresRepository) LoadSession(ctx context.Context) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT user_id, email, full_name, phone, address FROM current_session WHERE slot = 1`,
	)

	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	return &u, nil
}

// ClearSession очищает слот текущей сессии. Отсутствие слота не является ошибкой.
func (r *PostgresRepository) ClearSession(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM current_session WHERE slot = 1`)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CreateBooking сохраняет новое бронирование.
func (r *PostgresRepository) CreateBooking(ctx context.Context, booking model.Booking) error {
	err := r.withRetry(ctx, func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO bookings
			 (id, user_id, cylinder_id, quantity, delivery_type, delivery_address,
			  total_amount, delivery_charge, status, payment_status, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			booking.ID, booking.UserID, booking.CylinderID, booking.Quantity,
			string(booking.DeliveryType), booking.DeliveryAddress,
			booking.TotalAmount, booking.DeliveryCharge,
			string(booking.Status), string(booking.PaymentStatus), booking.CreatedAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// GetBookingsByUser возвращает бронирования пользователя, новые первыми.
func (r *PostgresRepository) GetBookingsByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, cylinder_id, quantity, delivery_type, delivery_address,
		        total_amount, delivery_charge, status, payment_status, created_at
		 FROM bookings
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var (
			b             model.Booking
			deliveryType  string
			status        string
			paymentStatus string
		)
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.CylinderID, &b.Quantity,
			&deliveryType, &b.DeliveryAddress,
			&b.TotalAmount, &b.DeliveryCharge,
			&status, &paymentStatus, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}

		b.DeliveryType = model.DeliveryType(deliveryType)
		b.Status = model.BookingStatus(status)
		b.PaymentStatus = model.PaymentStatus(paymentStatus)

		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return bookings, nil
}
