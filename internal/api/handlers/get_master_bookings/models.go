package get_master_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/bookings/models"
)

// parseQuery разбирает query-параметры фильтра истории мастера
// Поддерживаются startDate, endDate (YYYY-MM-DD), status и includeInactive
func parseQuery(masterID, userID int64, query url.Values) (*models.GetMasterBookingsRequest, error) {
	req := &models.GetMasterBookingsRequest{
		MasterID: masterID,
		UserID:   userID,
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
