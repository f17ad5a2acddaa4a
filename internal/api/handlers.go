package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/jagruk/internal/analytics"
	"github.com/julianstephens/jagruk/internal/backup"
	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/logger"
	"github.com/julianstephens/jagruk/internal/models"
	"github.com/julianstephens/jagruk/internal/utils"
)

// maxUploadBytes bounds the raw upload; the cleaned state is checked separately.
const maxUploadBytes = 4 * constants.MaxImportBytes

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, s.t.Snapshot())
}

func (s *Server) getStatus(c *gin.Context) {
	snap := s.t.Snapshot()
	now := s.t.Now()
	today, _ := snap.Entry(snap.CurrentDate)

	c.JSON(http.StatusOK, StatusResponse{
		Date:      snap.CurrentDate,
		Status:    analytics.Status(snap, now),
		Streak:    analytics.DisciplineStreak(snap, now),
		XP:        analytics.Progress(snap.Profile),
		Todos:     analytics.TodoProgress(today),
		Prompt:    analytics.DailyPrompt(snap.CurrentDate),
		Limits:    analytics.HabitLimitUsage(snap, now),
		AvgRating: analytics.AverageRating(snap),
	})
}

func (s *Server) patchEntry(c *gin.Context) {
	date := c.Param("date")
	if date == "today" {
		date = s.t.Today()
	}
	if !utils.ValidateDate(date) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD", Code: codeInvalidRequest})
		return
	}

	var req entryPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeInvalidRequest})
		return
	}

	e, ok := s.t.UpdateEntryUnlessSealed(date, req.patch())
	if !ok {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "entry for " + date + " is sealed", Code: codeSealed})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) listHabits(c *gin.Context) {
	c.JSON(http.StatusOK, analytics.HabitOverview(s.t.Snapshot(), s.t.Now()))
}

func (s *Server) createHabit(c *gin.Context) {
	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeInvalidRequest})
		return
	}
	if req.Type == "" {
		req.Type = models.HabitPositive
	}
	h := s.t.AddHabit(models.HabitDef{Title: req.Title, Type: req.Type, Icon: req.Icon})
	c.JSON(http.StatusCreated, h)
}

func (s *Server) deleteHabit(c *gin.Context) {
	if !s.t.RemoveHabit(c.Param("id")) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "habit not found", Code: codeNotFound})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createTransaction(c *gin.Context) {
	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeInvalidRequest})
		return
	}
	c.JSON(http.StatusCreated, s.t.AddTransaction(req.transaction()))
}

func (s *Server) financeMonth(c *gin.Context) {
	ref, ok := s.refDay(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.MonthlySummary(s.t.Snapshot(), ref))
}

func (s *Server) financeWeek(c *gin.Context) {
	ref, ok := s.refDay(c)
	if !ok {
		return
	}
	snap := s.t.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"series": analytics.SpendSeries(snap, ref),
		"ledger": analytics.Ledger(snap, ref, constants.LedgerLimit),
	})
}

func (s *Server) createGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeInvalidRequest})
		return
	}
	g := s.t.AddGoal(models.Goal{Title: req.Title, Type: req.Type, Reason: req.Reason, Action: req.Action})
	c.JSON(http.StatusCreated, g)
}

func (s *Server) patchGoal(c *gin.Context) {
	var req goalPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeInvalidRequest})
		return
	}
	g, ok := s.t.UpdateGoal(c.Param("id"), req.patch())
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "goal not found", Code: codeNotFound})
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) toggleGoal(c *gin.Context) {
	g, ok := s.t.ToggleGoal(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "goal not found", Code: codeNotFound})
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) importState(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "a backup file is required in field \"file\"", Code: codeInvalidRequest})
		return
	}
	if header.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: backup.ErrTooLarge.Error(), Code: string(backup.TooLarge)})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeInvalidRequest})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: codeInvalidRequest})
		return
	}

	imported, err := s.t.ImportFile(header.Filename, data)
	if err != nil {
		var ie *backup.ImportError
		if errors.As(err, &ie) {
			c.JSON(importStatus(ie.Kind), ErrorResponse{Error: ie.Error(), Code: string(ie.Kind)})
			return
		}
		logger.Error("import could not be saved", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: codeInternal})
		return
	}

	c.JSON(http.StatusOK, ImportResponse{
		Entries:      len(imported.Entries),
		Transactions: len(imported.Transactions),
		Goals:        len(imported.Goals),
	})
}

func importStatus(kind backup.ImportErrorKind) int {
	switch kind {
	case backup.UnsupportedFileType:
		return http.StatusUnsupportedMediaType
	case backup.TooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) exportJSON(c *gin.Context) {
	data, err := s.t.Export()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: codeInternal})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+backup.BackupFileName(s.t.Now())+`"`)
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) exportCSV(c *gin.Context) {
	now := s.t.Now()
	c.Header("Content-Disposition", `attachment; filename="`+backup.LedgerFileName(now)+`"`)
	c.Header("Content-Type", "text/csv")
	c.Status(http.StatusOK)
	if err := backup.WriteLedgerCSV(c.Writer, s.t.Snapshot().Transactions, now.Location()); err != nil {
		logger.Error("ledger export failed", "error", err)
	}
}

// refDay reads the optional ?date= reference day, defaulting to now.
func (s *Server) refDay(c *gin.Context) (time.Time, bool) {
	now := s.t.Now()
	d := c.Query("date")
	if d == "" {
		return now, true
	}
	t, err := utils.ParseDateInLocation(d, now.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD", Code: codeInvalidRequest})
		return now, false
	}
	return t, true
}
