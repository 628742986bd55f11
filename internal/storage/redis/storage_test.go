package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/staffdir/internal/dependencies/mocks"
	"github.com/mcoot/staffdir/internal/model"
	"github.com/mcoot/staffdir/internal/storage"
	"github.com/mcoot/staffdir/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.Suite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	s := &StorageSuite{}
	s.NewStore = func(clk *mocks.MockClock) storage.DirectoryStore {
		s.mini = miniredis.RunT(s.T())
		client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
		s.storage = NewWithClient(client, DefaultConfig(), clk)
		return s.storage
	}
	suite.Run(t, s)
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) TestKeysAreNamespaced() {
	_, err := s.Store.CreateEmployee(s.Ctx, storagetest.SampleEmployee("EMP001", "Sarah Johnson", "Engineering"))
	s.Require().NoError(err)

	s.True(s.mini.Exists("staffdir:employee:1"))
	s.True(s.mini.Exists("staffdir:idx:employee_code:EMP001"))
	s.True(s.mini.Exists("staffdir:employees"))

	code, err := s.mini.Get("staffdir:idx:employee_code:EMP001")
	s.Require().NoError(err)
	s.Equal("1", code)
}

func (s *StorageSuite) TestResetClearsNamespaceOnly() {
	_, err := s.Store.CreateAccount(s.Ctx, model.NewAccount{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	s.Require().NoError(err)
	_, err = s.Store.CreateEmployee(s.Ctx, storagetest.SampleEmployee("EMP001", "Sarah Johnson", "Engineering"))
	s.Require().NoError(err)
	s.Require().NoError(s.mini.Set("other:key", "kept"))

	s.Require().NoError(s.storage.Reset(s.Ctx))

	_, err = s.Store.GetAccountByUsername(s.Ctx, "alice")
	s.ErrorIs(err, model.ErrAccountNotFound)
	all, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Empty(all)
	s.True(s.mini.Exists("other:key"))

	// Counters restart after a reset
	created, err := s.Store.CreateEmployee(s.Ctx, storagetest.SampleEmployee("EMP002", "Michael Chen", "Product"))
	s.Require().NoError(err)
	s.Equal(model.EmployeeID(1), created.ID)
}

func (s *StorageSuite) TestPendingReservationIsInvisible() {
	s.Require().NoError(s.mini.Set("staffdir:idx:account_username:ghost", pendingMarker))

	_, err := s.Store.GetAccountByUsername(s.Ctx, "ghost")
	s.ErrorIs(err, model.ErrAccountNotFound)

	_, err = s.Store.CreateAccount(s.Ctx, model.NewAccount{Username: "ghost", Email: "g@x.com", PasswordHash: "h"})
	s.ErrorIs(err, model.ErrUsernameTaken)
}

func (s *StorageSuite) TestFailedCreateReleasesReservations() {
	_, err := s.Store.CreateAccount(s.Ctx, model.NewAccount{Username: "alice", Email: "a@x.com", PasswordHash: "h"})
	s.Require().NoError(err)

	_, err = s.Store.CreateAccount(s.Ctx, model.NewAccount{Username: "bob", Email: "a@x.com", PasswordHash: "h"})
	s.ErrorIs(err, model.ErrEmailTaken)

	s.False(s.mini.Exists("staffdir:idx:account_username:bob"))
}

func (s *StorageSuite) TestCustomPrefix() {
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	cfg := DefaultConfig()
	cfg.Prefix = "tenant2"
	other := NewWithClient(client, cfg, s.Clock)
	defer func() { _ = other.Close() }()

	_, err := other.CreateEmployee(s.Ctx, storagetest.SampleEmployee("EMP001", "Sarah Johnson", "Engineering"))
	s.Require().NoError(err)

	s.True(s.mini.Exists("tenant2:employee:1"))
	all, err := s.Store.ListEmployees(s.Ctx, model.EmployeeFilter{})
	s.Require().NoError(err)
	s.Empty(all)
}
