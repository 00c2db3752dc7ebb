package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	blockedRepo "arborbook/database/repository/blocked"
	"arborbook/config"
	"arborbook/models"
	"arborbook/services/scheduling"
	"arborbook/utils"
)

// GetAvailability serves the availability index for a range, with a short
// Redis cache in front of the store. Cache misses or Redis trouble fall
// through to a fresh build; store faults still propagate.
func (svc *DefaultBookingService) GetAvailability(ctx context.Context, start, end string) (models.AvailabilityIndex, error) {
	startDay, err := time.ParseInLocation(dateLayout, start, time.Local)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("start %q is not a valid YYYY-MM-DD date", start)}
	}
	endDay, err := time.ParseInLocation(dateLayout, end, time.Local)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("end %q is not a valid YYYY-MM-DD date", end)}
	}
	if startDay.After(endDay) {
		return nil, &ValidationError{Message: fmt.Sprintf("start %s is after end %s", start, end)}
	}

	logger := utils.GetLogger()
	cache := utils.CacheClient

	key, err := utils.AvailabilityCacheKey(ctx, start, end)
	if err == nil && key != "" && cache != nil {
		if cached, getErr := cache.Get(ctx, key).Result(); getErr == nil {
			var idx models.AvailabilityIndex
			if json.Unmarshal([]byte(cached), &idx) == nil {
				return idx, nil
			}
		} else if getErr != redis.Nil {
			logger.Sugar().Warnf("availability cache read failed: %v", getErr)
		}
	}

	idx, err := svc.Engine.BuildIndex(ctx, start, end)
	if err != nil {
		return nil, err
	}

	if key != "" && cache != nil {
		if data, marshalErr := json.Marshal(idx); marshalErr == nil {
			ttl := time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second
			if setErr := cache.Set(ctx, key, data, ttl).Err(); setErr != nil {
				logger.Sugar().Warnf("availability cache write failed: %v", setErr)
			}
		}
	}
	return idx, nil
}

func (svc *DefaultBookingService) ListBlockedDates(ctx context.Context, start, end string) ([]models.BlockedDate, error) {
	return svc.Blocked.GetInRange(ctx, start, end)
}

// BlockDate places a manual full-day block on a date.
func (svc *DefaultBookingService) BlockDate(ctx context.Context, date, note string) (*models.BlockedDate, error) {
	return svc.createBlock(ctx, date, models.BlockManual, note)
}

// AllowWeekendDate marks a weekend date explicitly bookable for jobs.
func (svc *DefaultBookingService) AllowWeekendDate(ctx context.Context, date, note string) (*models.BlockedDate, error) {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("date %q is not a valid YYYY-MM-DD date", date)}
	}
	if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
		return nil, &ValidationError{Message: fmt.Sprintf("%s is a %s, not a weekend date", date, wd)}
	}
	return svc.createBlock(ctx, date, models.BlockUnblockedWeekend, note)
}

func (svc *DefaultBookingService) createBlock(ctx context.Context, date string, reason models.BlockReason, note string) (*models.BlockedDate, error) {
	if _, err := time.ParseInLocation(dateLayout, date, time.Local); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("date %q is not a valid YYYY-MM-DD date", date)}
	}

	block := &models.BlockedDate{
		ID:        uuid.New().String(),
		Date:      date,
		Reason:    reason,
		Note:      note,
		BlockedAt: time.Now(),
	}
	if err := svc.Blocked.Create(ctx, block); err != nil {
		if err == blockedRepo.ErrDateTaken {
			return nil, NewRejectionError(scheduling.Decision{
				Reason:  scheduling.ReasonDateBlocked,
				Message: fmt.Sprintf("%s already carries a %s record", date, reason),
			})
		}
		return nil, err
	}
	utils.BumpAvailabilityVersion(ctx)

	utils.GetLogger().Info("blocked-date record created",
		zap.String("date", date), zap.String("reason", string(reason)))
	return block, nil
}

// UnblockDate removes an admin-written record for a date: the manual block
// if one exists, otherwise the weekend override. Job-derived blocks are not
// touched here; they live and die with their booking.
func (svc *DefaultBookingService) UnblockDate(ctx context.Context, date string) error {
	err := svc.Blocked.DeleteByDateAndReason(ctx, date, models.BlockManual)
	if err == blockedRepo.ErrNotFound {
		err = svc.Blocked.DeleteByDateAndReason(ctx, date, models.BlockUnblockedWeekend)
	}
	if err != nil {
		return err
	}
	utils.BumpAvailabilityVersion(ctx)

	utils.GetLogger().Info("blocked-date record removed", zap.String("date", date))
	return nil
}
