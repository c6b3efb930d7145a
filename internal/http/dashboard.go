package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardController serves the /api/dashboard summaries.
type DashboardController struct {
	store DashboardStore
}

func NewDashboardController(store DashboardStore) *DashboardController {
	return &DashboardController{store: store}
}

// LastStudySession handles GET /api/dashboard/last_study_session
// An empty history is a 404 with code "no_study_sessions".
func (dc *DashboardController) LastStudySession(c *gin.Context) {
	session, err := dc.store.LastSession(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "last study session")
		return
	}
	c.JSON(http.StatusOK, session)
}

// StudyProgress handles GET /api/dashboard/study_progress
func (dc *DashboardController) StudyProgress(c *gin.Context) {
	progress, err := dc.store.StudyProgress(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "study progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// QuickStats handles GET /api/dashboard/quick_stats
func (dc *DashboardController) QuickStats(c *gin.Context) {
	stats, err := dc.store.QuickStats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "quick stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}
