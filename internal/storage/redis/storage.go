package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/staffdir/internal/dependencies/clock"
	"github.com/mcoot/staffdir/internal/model"
	"github.com/mcoot/staffdir/internal/storage"
)

// maxTxRetries bounds optimistic-lock retries on contended records
const maxTxRetries = 5

// Storage is a Redis-backed implementation of the directory store.
// It is used as a shared scratch space: callers Reset it at startup, so
// nothing outlives the process that seeded it.
type Storage struct {
	client *redis.Client
	cfg    Config
	keys   keyspace
	clock  clock.Clock
}

// getter is satisfied by both *redis.Client and *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// New creates a new Redis storage instance
func New(cfg Config, clk clock.Clock) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return NewWithClient(client, cfg, clk), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, clk clock.Clock) *Storage {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultConfig().Prefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
		keys:   keyspace{prefix: cfg.Prefix},
		clock:  clk,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Reset deletes every key in the store's namespace, including the id counters
func (s *Storage) Reset(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, s.keys.all(), 100).Iterator()

	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return s.client.Del(ctx, batch...).Err()
	}
	return nil
}

// Ensure Storage implements the interface
var _ storage.DirectoryStore = (*Storage)(nil)

// Account operations

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	data, err := s.client.Get(ctx, s.keys.account(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	return s.getAccountByIndex(ctx, s.keys.accountUsername(username))
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	return s.getAccountByIndex(ctx, s.keys.accountEmail(email))
}

func (s *Storage) getAccountByIndex(ctx context.Context, indexKey string) (*model.Account, error) {
	id, ok, err := s.lookupIndex(ctx, indexKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return s.GetAccount(ctx, model.AccountID(id))
}

func (s *Storage) CreateAccount(ctx context.Context, candidate model.NewAccount) (*model.Account, error) {
	usernameKey := s.keys.accountUsername(candidate.Username)
	emailKey := s.keys.accountEmail(candidate.Email)

	if err := s.reserve(ctx, []reservation{
		{key: usernameKey, conflict: model.ErrUsernameTaken},
		{key: emailKey, conflict: model.ErrEmailTaken},
	}); err != nil {
		return nil, err
	}

	id, err := s.client.Incr(ctx, s.keys.accountSeq()).Result()
	if err != nil {
		s.release(ctx, usernameKey, emailKey)
		return nil, err
	}

	role := candidate.Role
	if role == "" {
		role = model.RoleEmployee
	}

	account := &model.Account{
		ID:           model.AccountID(id),
		Username:     candidate.Username,
		Email:        candidate.Email,
		PasswordHash: candidate.PasswordHash,
		Role:         role,
		CreatedAt:    s.clock.Now(),
	}

	data, err := json.Marshal(account)
	if err != nil {
		s.release(ctx, usernameKey, emailKey)
		return nil, err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keys.account(account.ID), data, 0)
		pipe.Set(ctx, usernameKey, id, 0)
		pipe.Set(ctx, emailKey, id, 0)
		return nil
	})
	if err != nil {
		s.release(ctx, usernameKey, emailKey)
		return nil, err
	}

	return account, nil
}

// Employee operations

func (s *Storage) ListEmployees(ctx context.Context, filter model.EmployeeFilter) ([]*model.Employee, error) {
	all, err := s.allEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return storage.FilterEmployees(all, filter), nil
}

func (s *Storage) ListEmployeesPaginated(ctx context.Context, page, pageSize int, filter model.EmployeeFilter) (model.EmployeePage, error) {
	matching, err := s.ListEmployees(ctx, filter)
	if err != nil {
		return model.EmployeePage{}, err
	}
	return storage.Paginate(matching, page, pageSize), nil
}

func (s *Storage) GetEmployee(ctx context.Context, id model.EmployeeID) (*model.Employee, error) {
	return s.loadEmployee(ctx, s.client, id)
}

func (s *Storage) GetEmployeeByCode(ctx context.Context, code string) (*model.Employee, error) {
	id, ok, err := s.lookupIndex(ctx, s.keys.employeeCode(code))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrEmployeeNotFound
	}
	return s.GetEmployee(ctx, model.EmployeeID(id))
}

func (s *Storage) CreateEmployee(ctx context.Context, candidate model.NewEmployee) (*model.Employee, error) {
	codeKey := s.keys.employeeCode(candidate.Code)
	emailKey := s.keys.employeeEmail(candidate.Email)

	if err := s.reserve(ctx, []reservation{
		{key: codeKey, conflict: model.ErrEmployeeCodeTaken},
		{key: emailKey, conflict: model.ErrEmployeeEmailTaken},
	}); err != nil {
		return nil, err
	}

	id, err := s.client.Incr(ctx, s.keys.employeeSeq()).Result()
	if err != nil {
		s.release(ctx, codeKey, emailKey)
		return nil, err
	}

	employee := candidate.Build(s.clock.Now())
	employee.ID = model.EmployeeID(id)

	data, err := json.Marshal(employee)
	if err != nil {
		s.release(ctx, codeKey, emailKey)
		return nil, err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keys.employee(employee.ID), data, 0)
		pipe.Set(ctx, codeKey, id, 0)
		pipe.Set(ctx, emailKey, id, 0)
		pipe.ZAdd(ctx, s.keys.employees(), redis.Z{Score: float64(id), Member: id})
		return nil
	})
	if err != nil {
		s.release(ctx, codeKey, emailKey)
		return nil, err
	}

	return employee, nil
}

func (s *Storage) UpdateEmployee(ctx context.Context, id model.EmployeeID, update model.EmployeeUpdate) (*model.Employee, error) {
	key := s.keys.employee(id)
	var result *model.Employee

	err := s.watch(ctx, key, func(tx *redis.Tx) error {
		existing, err := s.loadEmployee(ctx, tx, id)
		if err != nil {
			return err
		}

		updated := update.Apply(existing, s.clock.Now())
		codeChanged := updated.Code != existing.Code
		emailChanged := updated.Email != existing.Email

		var reservations []reservation
		if codeChanged {
			reservations = append(reservations, reservation{key: s.keys.employeeCode(updated.Code), conflict: model.ErrEmployeeCodeTaken})
		}
		if emailChanged {
			reservations = append(reservations, reservation{key: s.keys.employeeEmail(updated.Email), conflict: model.ErrEmployeeEmailTaken})
		}
		if err := s.reserve(ctx, reservations); err != nil {
			return err
		}
		reserved := make([]string, 0, len(reservations))
		for _, r := range reservations {
			reserved = append(reserved, r.key)
		}

		data, err := json.Marshal(updated)
		if err != nil {
			s.release(ctx, reserved...)
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if codeChanged {
				pipe.Set(ctx, s.keys.employeeCode(updated.Code), int64(id), 0)
				pipe.Del(ctx, s.keys.employeeCode(existing.Code))
			}
			if emailChanged {
				pipe.Set(ctx, s.keys.employeeEmail(updated.Email), int64(id), 0)
				pipe.Del(ctx, s.keys.employeeEmail(existing.Email))
			}
			return nil
		})
		if err != nil {
			s.release(ctx, reserved...)
			return err
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Storage) DeleteEmployee(ctx context.Context, id model.EmployeeID) (bool, error) {
	key := s.keys.employee(id)
	deleted := false

	err := s.watch(ctx, key, func(tx *redis.Tx) error {
		existing, err := s.loadEmployee(ctx, tx, id)
		if errors.Is(err, model.ErrEmployeeNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.Del(ctx, s.keys.employeeCode(existing.Code))
			pipe.Del(ctx, s.keys.employeeEmail(existing.Email))
			pipe.ZRem(ctx, s.keys.employees(), int64(id))
			return nil
		})
		if err != nil {
			return err
		}

		deleted = true
		return nil
	})
	return deleted, err
}

// Helpers

// reservation claims a unique index key, failing with conflict when it is held
type reservation struct {
	key      string
	conflict error
}

// reserve claims every key with SETNX. On conflict or error the keys already
// claimed are released and nothing is left behind.
func (s *Storage) reserve(ctx context.Context, reservations []reservation) error {
	claimed := make([]string, 0, len(reservations))
	for _, r := range reservations {
		ok, err := s.client.SetNX(ctx, r.key, pendingMarker, 0).Result()
		if err != nil {
			s.release(ctx, claimed...)
			return err
		}
		if !ok {
			s.release(ctx, claimed...)
			return r.conflict
		}
		claimed = append(claimed, r.key)
	}
	return nil
}

// release drops index reservations. Best effort: a failure here leaves a
// pending marker which lookups already treat as absent.
func (s *Storage) release(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	_ = s.client.Del(ctx, keys...).Err()
}

// lookupIndex resolves an index key to an id. Pending reservations count as absent.
func (s *Storage) lookupIndex(ctx context.Context, key string) (int64, bool, error) {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return id, true, nil
}

func (s *Storage) loadEmployee(ctx context.Context, g getter, id model.EmployeeID) (*model.Employee, error) {
	data, err := g.Get(ctx, s.keys.employee(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrEmployeeNotFound
		}
		return nil, err
	}

	var employee model.Employee
	if err := json.Unmarshal(data, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// allEmployees returns every employee in insertion order
func (s *Storage) allEmployees(ctx context.Context) ([]*model.Employee, error) {
	ids, err := s.client.ZRange(ctx, s.keys.employees(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Employee{}, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		keys = append(keys, s.keys.employee(model.EmployeeID(id)))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	employees := make([]*model.Employee, 0, len(values))
	for _, val := range values {
		raw, ok := val.(string)
		if !ok {
			continue // Deleted between ZRANGE and MGET
		}
		var employee model.Employee
		if err := json.Unmarshal([]byte(raw), &employee); err != nil {
			return nil, fmt.Errorf("decode employee: %w", err)
		}
		employees = append(employees, &employee)
	}
	return employees, nil
}

// watch runs fn under WATCH on key, retrying when another client modifies it
func (s *Storage) watch(ctx context.Context, key string, fn func(tx *redis.Tx) error) error {
	for range maxTxRetries {
		err := s.client.Watch(ctx, fn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update %s: %w", key, redis.TxFailedErr)
}
