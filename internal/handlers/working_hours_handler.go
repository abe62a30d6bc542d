package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
)

type WorkingHoursHandler struct {
	policy domain.Policy
}

func NewWorkingHoursHandler(policy domain.Policy) *WorkingHoursHandler {
	return &WorkingHoursHandler{policy: policy}
}

type WorkingDay struct {
	Weekday   int    `json:"weekday"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// Get publishes the shop's weekly opening hours.
func (h *WorkingHoursHandler) Get(c *gin.Context) {
	days := make([]WorkingDay, 0, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		hours := h.policy.Hours[wd]
		day := WorkingDay{
			Weekday: int(wd),
			Name:    wd.String(),
			Active:  !hours.Closed(),
		}
		if day.Active {
			day.StartTime = fmt.Sprintf("%02d:00", hours.Open)
			day.EndTime = fmt.Sprintf("%02d:00", hours.Close)
		}
		days = append(days, day)
	}

	c.JSON(http.StatusOK, gin.H{
		"timezone": h.policy.Loc().String(),
		"days":     days,
	})
}
