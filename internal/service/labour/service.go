package labour

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/shramik-labs/labour-backend-go/internal/domain/attendance"
	"github.com/shramik-labs/labour-backend-go/internal/domain/labour"
	"github.com/shramik-labs/labour-backend-go/internal/domain/master/category"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/database"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/events"
	"github.com/shramik-labs/labour-backend-go/internal/pkg/validator"
	"github.com/shramik-labs/labour-backend-go/internal/repository/postgresql"
)

type LabourServiceImpl struct {
	db *database.DB
	labour.LabourRepository
	category.CategoryRepository
	attendance.AttendanceRepository
	hub *events.Hub
}

func NewLabourService(
	db *database.DB,
	labourRepo labour.LabourRepository,
	categoryRepo category.CategoryRepository,
	attendanceRepo attendance.AttendanceRepository,
	hub *events.Hub,
) labour.LabourService {
	return &LabourServiceImpl{
		db:                   db,
		LabourRepository:     labourRepo,
		CategoryRepository:   categoryRepo,
		AttendanceRepository: attendanceRepo,
		hub:                  hub,
	}
}

// Create implements labour.LabourService.
func (s *LabourServiceImpl) Create(ctx context.Context, req labour.CreateLabourRequest) (labour.LabourResponse, error) {
	if err := req.Validate(); err != nil {
		return labour.LabourResponse{}, err
	}

	if req.CategoryID != nil {
		if _, err := s.CategoryRepository.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return labour.LabourResponse{}, category.ErrCategoryNotFound
			}
			return labour.LabourResponse{}, fmt.Errorf("failed to get category: %w", err)
		}
	}

	wage, _ := decimal.NewFromString(req.DailyWage)
	joiningDate, _ := validator.IsValidDate(req.JoiningDate)

	created, err := s.LabourRepository.Create(ctx, labour.Labour{
		Name:        req.Name,
		Aadhaar:     req.Aadhaar,
		DailyWage:   wage,
		Status:      req.Status,
		JoiningDate: joiningDate,
		CategoryID:  req.CategoryID,
		Designation: req.Designation,
		Phone:       req.Phone,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return labour.LabourResponse{}, labour.ErrAadhaarExists
			}
		}
		return labour.LabourResponse{}, fmt.Errorf("failed to create labour: %w", err)
	}

	s.hub.Publish(events.Event{
		Topic: events.TopicLabours,
		Kind:  "labour.created",
		Data:  labour.ToResponse(created),
	})

	return labour.ToResponse(created), nil
}

// Get implements labour.LabourService.
func (s *LabourServiceImpl) Get(ctx context.Context, id string) (labour.LabourResponse, error) {
	l, err := s.LabourRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return labour.LabourResponse{}, labour.ErrLabourNotFound
		}
		return labour.LabourResponse{}, fmt.Errorf("failed to get labour: %w", err)
	}
	return labour.ToResponse(l), nil
}

// Update implements labour.LabourService.
func (s *LabourServiceImpl) Update(ctx context.Context, req labour.UpdateLabourRequest) (labour.LabourResponse, error) {
	if err := req.Validate(); err != nil {
		return labour.LabourResponse{}, err
	}

	existing, err := s.LabourRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return labour.LabourResponse{}, labour.ErrLabourNotFound
		}
		return labour.LabourResponse{}, fmt.Errorf("failed to get labour: %w", err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Aadhaar != nil {
		existing.Aadhaar = *req.Aadhaar
	}
	if req.DailyWage != nil {
		wage, _ := decimal.NewFromString(*req.DailyWage)
		existing.DailyWage = wage
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	if req.JoiningDate != nil {
		joiningDate, _ := validator.IsValidDate(*req.JoiningDate)
		existing.JoiningDate = joiningDate
	}
	if req.CategoryID != nil {
		if _, err := s.CategoryRepository.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return labour.LabourResponse{}, category.ErrCategoryNotFound
			}
			return labour.LabourResponse{}, fmt.Errorf("failed to get category: %w", err)
		}
		existing.CategoryID = req.CategoryID
	}
	if req.Designation != nil {
		existing.Designation = req.Designation
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.PhotoURL != nil {
		existing.PhotoURL = req.PhotoURL
	}

	updated, err := s.LabourRepository.Update(ctx, existing)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return labour.LabourResponse{}, labour.ErrAadhaarExists
			}
		}
		return labour.LabourResponse{}, fmt.Errorf("failed to update labour: %w", err)
	}

	s.hub.Publish(events.Event{
		Topic: events.TopicLabours,
		Kind:  "labour.updated",
		Data:  labour.ToResponse(updated),
	})

	return labour.ToResponse(updated), nil
}

// Delete implements labour.LabourService.
//
// Retention policy: cascade-void. The labour's active attendance records are
// voided inside the same transaction before the roster row is removed, so
// past payroll figures stay auditable after the labour is gone.
func (s *LabourServiceImpl) Delete(ctx context.Context, id string, actorID string) error {
	if validator.IsEmpty(actorID) {
		return fmt.Errorf("actor id is required to delete a labour")
	}

	if _, err := s.LabourRepository.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return labour.ErrLabourNotFound
		}
		return fmt.Errorf("failed to get labour: %w", err)
	}

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if _, err := s.AttendanceRepository.VoidAllForLabour(txCtx, id, time.Now().UTC(), actorID); err != nil {
			return fmt.Errorf("failed to void attendance history: %w", err)
		}

		if err := s.LabourRepository.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete labour: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.hub.Publish(events.Event{
		Topic: events.TopicLabours,
		Kind:  "labour.deleted",
		Data:  map[string]string{"labour_id": id},
	})

	return nil
}

// List implements labour.LabourService.
func (s *LabourServiceImpl) List(ctx context.Context, filter labour.LabourFilter) ([]labour.LabourResponse, error) {
	labours, err := s.LabourRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list labours: %w", err)
	}

	responses := make([]labour.LabourResponse, 0, len(labours))
	for _, l := range labours {
		responses = append(responses, labour.ToResponse(l))
	}
	return responses, nil
}
