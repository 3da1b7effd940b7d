package reservation

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"tavolo-be/internal/notify"
	"tavolo-be/internal/param"
	"tavolo-be/internal/table"
	"tavolo-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateTx(ctx context.Context, r *Reservation, tableIDs []uint) error {
	args := m.Called(ctx, r, tableIDs)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, ident Identifier) (*Reservation, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Reservation), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID uint) ([]*Reservation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Reservation), args.Error(1)
}

func (m *MockRepository) ReleaseTx(ctx context.Context, reservationID uint, newStatus *Status, hardDelete bool) ([]uint, error) {
	args := m.Called(ctx, reservationID, newStatus, hardDelete)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockRepository) UpdateFields(ctx context.Context, reservationID uint, params UpdateParams) error {
	args := m.Called(ctx, reservationID, params)
	return args.Error(0)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, reservationID uint, status Status) error {
	args := m.Called(ctx, reservationID, status)
	return args.Error(0)
}

// MockTableRepository is a mock for the table repository
type MockTableRepository struct {
	mock.Mock
}

func (m *MockTableRepository) Create(ctx context.Context, params table.CreateTableParams) (*table.Table, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *MockTableRepository) GetByID(ctx context.Context, id uint) (*table.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*table.Table), args.Error(1)
}

func (m *MockTableRepository) GetAll(ctx context.Context) ([]*table.Table, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*table.Table), args.Error(1)
}

func (m *MockTableRepository) GetByStatus(ctx context.Context, status table.Status) ([]*table.Table, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*table.Table), args.Error(1)
}

func (m *MockTableRepository) LockForAllocation(ctx context.Context, tx *sql.Tx, ids []uint) ([]*table.Table, error) {
	args := m.Called(ctx, tx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*table.Table), args.Error(1)
}

func (m *MockTableRepository) SetStatusTx(ctx context.Context, tx *sql.Tx, ids []uint, status table.Status) error {
	args := m.Called(ctx, tx, ids, status)
	return args.Error(0)
}

// MockParamRepository is a mock for the param catalog
type MockParamRepository struct {
	mock.Mock
}

func (m *MockParamRepository) GetByTypeAndCode(ctx context.Context, typ, code string) (*param.Param, error) {
	args := m.Called(ctx, typ, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*param.Param), args.Error(1)
}

func (m *MockParamRepository) ListByType(ctx context.Context, typ string) ([]*param.Param, error) {
	args := m.Called(ctx, typ)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*param.Param), args.Error(1)
}

func newTestService(repo *MockRepository, tableRepo *MockTableRepository, paramRepo *MockParamRepository) Service {
	return NewService(repo, tableRepo, paramRepo, notify.NopSink{})
}

func confirmedParam() *param.Param {
	return &param.Param{Type: param.TypeReservationStatus, Code: string(StatusConfirmed), Name: "Confirmed"}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	when := time.Now().Add(2 * time.Hour)

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockTableRepo := new(MockTableRepository)
		mockParamRepo := new(MockParamRepository)
		svc := newTestService(mockRepo, mockTableRepo, mockParamRepo)

		mockParamRepo.On("GetByTypeAndCode", ctx, param.TypeReservationStatus, "CONFIRMED").
			Return(confirmedParam(), nil).Once()
		mockRepo.On("CreateTx", ctx, mock.AnythingOfType("*reservation.Reservation"), []uint{1, 2}).
			Run(func(args mock.Arguments) {
				r := args.Get(1).(*Reservation)
				r.ID = 10
				r.Tables = []*table.Table{
					{ID: 1, Capacity: 4, Status: table.StatusOccupied},
					{ID: 2, Capacity: 2, Status: table.StatusOccupied},
				}
			}).
			Return(nil).Once()

		res, err := svc.Create(ctx, CreateParams{
			UserID:          7,
			TableIDs:        []uint{1, 2},
			NumberOfPeople:  5,
			ReservationTime: when,
		})

		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, res.Status)
		assert.NotEmpty(t, res.PublicID)
		assert.Len(t, res.Tables, 2)
		mockRepo.AssertExpectations(t)
		mockParamRepo.AssertExpectations(t)
	})

	t.Run("Invalid party size", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockTableRepository), new(MockParamRepository))

		_, err := svc.Create(ctx, CreateParams{UserID: 7, NumberOfPeople: 0, ReservationTime: when})
		assert.ErrorIs(t, err, ErrInvalidPartySize)
	})

	t.Run("Status code missing from catalog", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockParamRepo := new(MockParamRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), mockParamRepo)

		mockParamRepo.On("GetByTypeAndCode", ctx, param.TypeReservationStatus, "CONFIRMED").
			Return(nil, param.ErrParamNotFound).Once()

		_, err := svc.Create(ctx, CreateParams{UserID: 7, NumberOfPeople: 2, ReservationTime: when})
		assert.ErrorIs(t, err, ErrUnknownStatus)
		mockRepo.AssertNotCalled(t, "CreateTx")
	})

	t.Run("Allocation rejected leaves no side effects", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockParamRepo := new(MockParamRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), mockParamRepo)

		mockParamRepo.On("GetByTypeAndCode", ctx, param.TypeReservationStatus, "CONFIRMED").
			Return(confirmedParam(), nil).Once()
		mockRepo.On("CreateTx", ctx, mock.Anything, []uint{1}).
			Return(ErrInsufficientCapacity).Once()

		_, err := svc.Create(ctx, CreateParams{
			UserID:          7,
			TableIDs:        []uint{1},
			NumberOfPeople:  9,
			ReservationTime: when,
		})
		assert.ErrorIs(t, err, ErrInsufficientCapacity)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_Get(t *testing.T) {
	t.Run("Owner can read", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), new(MockParamRepository))
		ctx := utils.SetUserContext(context.Background(), 7, "guest@example.com", "USER")

		mockRepo.On("Get", ctx, ByID(10)).Return(&Reservation{ID: 10, UserID: 7}, nil).Once()

		res, err := svc.Get(ctx, ByID(10))
		require.NoError(t, err)
		assert.Equal(t, uint(10), res.ID)
	})

	t.Run("Stranger is rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), new(MockParamRepository))
		ctx := utils.SetUserContext(context.Background(), 99, "other@example.com", "USER")

		mockRepo.On("Get", ctx, ByID(10)).Return(&Reservation{ID: 10, UserID: 7}, nil).Once()

		_, err := svc.Get(ctx, ByID(10))
		assert.ErrorIs(t, err, ErrNotReservationOwner)
	})

	t.Run("Staff can read anyone's", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), new(MockParamRepository))
		ctx := utils.SetUserContext(context.Background(), 99, "staff@example.com", "STAFF")

		mockRepo.On("Get", ctx, ByID(10)).Return(&Reservation{ID: 10, UserID: 7}, nil).Once()

		_, err := svc.Get(ctx, ByID(10))
		assert.NoError(t, err)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), new(MockParamRepository))
		ctx := context.Background()

		mockRepo.On("Get", ctx, ByPublicID("nope")).Return(nil, nil).Once()

		_, err := svc.Get(ctx, ByPublicID("nope"))
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Cancel releases held tables", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockParamRepo := new(MockParamRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), mockParamRepo)

		res := &Reservation{ID: 10, UserID: 7, Status: StatusConfirmed, Tables: []*table.Table{{ID: 1}}}
		cancelled := StatusCancelled

		mockRepo.On("Get", ctx, ByID(10)).Return(res, nil).Once()
		mockParamRepo.On("GetByTypeAndCode", ctx, param.TypeReservationStatus, "CANCELLED").
			Return(&param.Param{Code: "CANCELLED"}, nil).Once()
		mockRepo.On("ReleaseTx", ctx, uint(10), &cancelled, false).Return([]uint{1}, nil).Once()

		got, err := svc.Cancel(ctx, ByID(10))
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
		assert.Empty(t, got.Tables)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Completing releases tables too", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockParamRepo := new(MockParamRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), mockParamRepo)

		res := &Reservation{ID: 10, UserID: 7, Status: StatusConfirmed, Tables: []*table.Table{{ID: 1}, {ID: 2}}}
		completed := StatusCompleted
		code := string(StatusCompleted)

		mockRepo.On("Get", ctx, ByID(10)).Return(res, nil).Once()
		mockParamRepo.On("GetByTypeAndCode", ctx, param.TypeReservationStatus, "COMPLETED").
			Return(&param.Param{Code: "COMPLETED"}, nil).Once()
		mockRepo.On("ReleaseTx", ctx, uint(10), &completed, false).Return([]uint{1, 2}, nil).Once()

		got, err := svc.Update(ctx, ByID(10), UpdateParams{StatusCode: &code})
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, got.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Re-cancelling is an idempotent no-op", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockParamRepo := new(MockParamRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), mockParamRepo)

		res := &Reservation{ID: 10, UserID: 7, Status: StatusCancelled}
		code := string(StatusCancelled)

		mockRepo.On("Get", ctx, ByID(10)).Return(res, nil).Once()
		mockParamRepo.On("GetByTypeAndCode", ctx, param.TypeReservationStatus, "CANCELLED").
			Return(&param.Param{Code: "CANCELLED"}, nil).Once()

		got, err := svc.Update(ctx, ByID(10), UpdateParams{StatusCode: &code})
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
		mockRepo.AssertNotCalled(t, "ReleaseTx")
		mockRepo.AssertNotCalled(t, "UpdateStatus")
	})

	t.Run("Leaving a terminal status is rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockParamRepo := new(MockParamRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), mockParamRepo)

		res := &Reservation{ID: 10, UserID: 7, Status: StatusCompleted}
		code := string(StatusConfirmed)

		mockRepo.On("Get", ctx, ByID(10)).Return(res, nil).Once()
		mockParamRepo.On("GetByTypeAndCode", ctx, param.TypeReservationStatus, "CONFIRMED").
			Return(confirmedParam(), nil).Once()

		_, err := svc.Update(ctx, ByID(10), UpdateParams{StatusCode: &code})
		assert.ErrorIs(t, err, ErrTerminalStatus)
	})

	t.Run("Time and note patch", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), new(MockParamRepository))

		res := &Reservation{ID: 10, UserID: 7, Status: StatusConfirmed}
		newTime := time.Now().Add(4 * time.Hour)
		note := "window seat please"

		mockRepo.On("Get", ctx, ByID(10)).Return(res, nil).Once()
		mockRepo.On("UpdateFields", ctx, uint(10), UpdateParams{ReservationTime: &newTime, Note: &note}).
			Return(nil).Once()

		got, err := svc.Update(ctx, ByID(10), UpdateParams{ReservationTime: &newTime, Note: &note})
		require.NoError(t, err)
		assert.Equal(t, newTime, got.ReservationTime)
		require.NotNil(t, got.Note)
		assert.Equal(t, note, *got.Note)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), new(MockParamRepository))

		mockRepo.On("Get", ctx, ByPublicID("pub-1")).
			Return(&Reservation{ID: 10, PublicID: "pub-1", UserID: 7}, nil).Once()
		mockRepo.On("ReleaseTx", ctx, uint(10), (*Status)(nil), true).Return([]uint{3}, nil).Once()

		err := svc.Delete(ctx, ByPublicID("pub-1"))
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Release failure propagates", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, new(MockTableRepository), new(MockParamRepository))
		expectedErr := errors.New("db error")

		mockRepo.On("Get", ctx, ByPublicID("pub-1")).
			Return(&Reservation{ID: 10, PublicID: "pub-1", UserID: 7}, nil).Once()
		mockRepo.On("ReleaseTx", ctx, uint(10), (*Status)(nil), true).Return(nil, expectedErr).Once()

		err := svc.Delete(ctx, ByPublicID("pub-1"))
		assert.Equal(t, expectedErr, err)
	})
}

func TestService_GetAvailableTables(t *testing.T) {
	mockTableRepo := new(MockTableRepository)
	svc := newTestService(new(MockRepository), mockTableRepo, new(MockParamRepository))
	ctx := context.Background()

	expected := []*table.Table{{ID: 1, Status: table.StatusAvailable}}
	mockTableRepo.On("GetByStatus", ctx, table.StatusAvailable).Return(expected, nil).Once()

	tables, err := svc.GetAvailableTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, tables)
}
