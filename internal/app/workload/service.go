package workload

import (
	"context"
	"time"

	"github.com/akhilak5/cafe-ops/internal/adapter/logger"
	"github.com/akhilak5/cafe-ops/internal/domain"
	"github.com/akhilak5/cafe-ops/internal/interfaces"
)

// Service exposes per-staff workload summaries for the admin views:
// active order counts used as capacity hints at assignment time, plus
// average serving minutes for waiters.
type Service struct {
	orderRepo interfaces.OrderRepository
	staffRepo interfaces.StaffRepository
	logger    logger.Logger
	ceiling   time.Duration
}

func NewService(orderRepo interfaces.OrderRepository, staffRepo interfaces.StaffRepository, logger logger.Logger, ceiling time.Duration) *Service {
	if ceiling <= 0 {
		ceiling = 180 * time.Minute
	}
	return &Service{
		orderRepo: orderRepo,
		staffRepo: staffRepo,
		logger:    logger,
		ceiling:   ceiling,
	}
}

func (s *Service) StaffWorkload(ctx context.Context, role domain.Role) ([]interfaces.WorkloadSample, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := s.staffRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var samples []interfaces.WorkloadSample
	for _, member := range staff {
		if member.Role != role || !member.Eligible() {
			continue
		}
		sample := interfaces.WorkloadSample{
			StaffID:      member.ID,
			StaffName:    member.Name,
			ActiveOrders: Count(orders, member.ID, role),
			DoneToday:    DoneToday(orders, member.ID, role, now),
		}
		if role == domain.RoleWaiter {
			// rolling month; older samples say little about current pace
			avg, n := AverageServingMinutes(orders, member.ID, LastDays(30, now), s.ceiling)
			if n > 0 {
				sample.AvgServingMinutes = avg
			}
		}
		samples = append(samples, sample)
	}

	return samples, nil
}
