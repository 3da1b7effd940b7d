package reservation

import (
	"context"
	"errors"

	"tavolo-be/internal/logger"
	"tavolo-be/internal/metrics"
	"tavolo-be/internal/notify"
	"tavolo-be/internal/param"
	"tavolo-be/internal/table"
	"tavolo-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the reservation engine: it allocates tables to parties,
// manages the status state machine, and releases tables on every
// terminal transition.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*Reservation, error)
	Get(ctx context.Context, ident Identifier) (*Reservation, error)
	ListByUser(ctx context.Context, userID uint) ([]*Reservation, error)
	Update(ctx context.Context, ident Identifier, params UpdateParams) (*Reservation, error)
	Cancel(ctx context.Context, ident Identifier) (*Reservation, error)
	Delete(ctx context.Context, ident Identifier) error
	GetAvailableTables(ctx context.Context) ([]*table.Table, error)
}

type service struct {
	repo      Repository
	tableRepo table.Repository
	paramRepo param.Repository
	sink      notify.Sink
}

func NewService(repo Repository, tableRepo table.Repository, paramRepo param.Repository, sink notify.Sink) Service {
	return &service{repo: repo, tableRepo: tableRepo, paramRepo: paramRepo, sink: sink}
}

// Create allocates tables for the party and persists the reservation.
// The supplied table ids are a preference list walked in order; the
// request succeeds iff the accumulated capacity reaches the party size.
func (s *service) Create(ctx context.Context, params CreateParams) (*Reservation, error) {
	if params.NumberOfPeople <= 0 {
		return nil, ErrInvalidPartySize
	}

	log := logger.FromCtx(ctx).With(
		zap.String("method", "CreateReservation"),
		zap.Uint("user_id", params.UserID),
		zap.Int("number_of_people", params.NumberOfPeople),
	)

	// The catalog is the foreign-key stand-in for the status vocabulary;
	// a missing code is fatal to the request.
	if _, err := s.paramRepo.GetByTypeAndCode(ctx, param.TypeReservationStatus, string(StatusConfirmed)); err != nil {
		if errors.Is(err, param.ErrParamNotFound) {
			return nil, ErrUnknownStatus
		}
		return nil, err
	}

	res := &Reservation{
		PublicID:        uuid.New().String(),
		UserID:          params.UserID,
		ReservationTime: params.ReservationTime,
		NumberOfPeople:  params.NumberOfPeople,
		Note:            params.Note,
		Status:          StatusConfirmed,
	}

	if err := s.repo.CreateTx(ctx, res, params.TableIDs); err != nil {
		log.Info("reservation rejected", zap.Error(err))
		return nil, err
	}

	metrics.ReservationsCreatedTotal.Inc()
	metrics.TablesAllocatedTotal.Add(float64(len(res.Tables)))

	s.sink.ReservationStatus(ctx, res.PublicID, string(res.Status))
	for _, t := range res.Tables {
		s.sink.TableStatus(ctx, t.ID, string(table.StatusOccupied))
	}

	log.Info("reservation confirmed",
		zap.String("public_id", res.PublicID),
		zap.Int("tables", len(res.Tables)),
	)
	return res, nil
}

func (s *service) Get(ctx context.Context, ident Identifier) (*Reservation, error) {
	res, err := s.repo.Get(ctx, ident)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, ErrReservationNotFound
	}
	if err := s.authorize(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]*Reservation, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Update patches time/note/status. A transition into a terminal status
// releases every held table before the status lands.
func (s *service) Update(ctx context.Context, ident Identifier, params UpdateParams) (*Reservation, error) {
	res, err := s.Get(ctx, ident)
	if err != nil {
		return nil, err
	}

	if params.StatusCode != nil {
		if _, err := s.paramRepo.GetByTypeAndCode(ctx, param.TypeReservationStatus, *params.StatusCode); err != nil {
			if errors.Is(err, param.ErrParamNotFound) {
				return nil, ErrUnknownStatus
			}
			return nil, err
		}

		target := Status(*params.StatusCode)

		if res.Status.Terminal() {
			// re-cancelling a cancelled reservation is a harmless no-op
			if target == res.Status {
				return res, nil
			}
			return nil, ErrTerminalStatus
		}

		if target.Terminal() {
			return s.release(ctx, res, target)
		}

		if err := s.repo.UpdateStatus(ctx, res.ID, target); err != nil {
			return nil, err
		}
		res.Status = target
		s.sink.ReservationStatus(ctx, res.PublicID, string(target))
	}

	if params.ReservationTime != nil || params.Note != nil {
		if err := s.repo.UpdateFields(ctx, res.ID, UpdateParams{
			ReservationTime: params.ReservationTime,
			Note:            params.Note,
		}); err != nil {
			return nil, err
		}
		if params.ReservationTime != nil {
			res.ReservationTime = *params.ReservationTime
		}
		if params.Note != nil {
			res.Note = params.Note
		}
	}

	return res, nil
}

func (s *service) Cancel(ctx context.Context, ident Identifier) (*Reservation, error) {
	code := string(StatusCancelled)
	return s.Update(ctx, ident, UpdateParams{StatusCode: &code})
}

// Delete releases all held tables and hard-deletes the row.
func (s *service) Delete(ctx context.Context, ident Identifier) error {
	res, err := s.Get(ctx, ident)
	if err != nil {
		return err
	}

	freed, err := s.repo.ReleaseTx(ctx, res.ID, nil, true)
	if err != nil {
		return err
	}

	metrics.ReservationsReleasedTotal.WithLabelValues("deleted").Inc()
	for _, tableID := range freed {
		s.sink.TableStatus(ctx, tableID, string(table.StatusAvailable))
	}

	logger.FromCtx(ctx).Info("reservation deleted",
		zap.String("public_id", res.PublicID),
		zap.Int("tables_freed", len(freed)),
	)
	return nil
}

func (s *service) GetAvailableTables(ctx context.Context) ([]*table.Table, error) {
	return s.tableRepo.GetByStatus(ctx, table.StatusAvailable)
}

func (s *service) release(ctx context.Context, res *Reservation, target Status) (*Reservation, error) {
	freed, err := s.repo.ReleaseTx(ctx, res.ID, &target, false)
	if err != nil {
		return nil, err
	}

	res.Status = target
	res.Tables = nil

	metrics.ReservationsReleasedTotal.WithLabelValues(string(target)).Inc()

	s.sink.ReservationStatus(ctx, res.PublicID, string(target))
	for _, tableID := range freed {
		s.sink.TableStatus(ctx, tableID, string(table.StatusAvailable))
	}

	logger.FromCtx(ctx).Info("reservation released",
		zap.String("public_id", res.PublicID),
		zap.String("status", string(target)),
		zap.Int("tables_freed", len(freed)),
	)
	return res, nil
}

// authorize allows owners and staff through; everyone else is rejected.
func (s *service) authorize(ctx context.Context, res *Reservation) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		// internal callers without a user context are trusted
		return nil
	}
	if utils.IsStaff(ctx) || res.UserID == userID {
		return nil
	}
	return ErrNotReservationOwner
}
