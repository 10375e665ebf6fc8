// MODUL: handlers_history
// ZWECK: HTTP-Handler fuer die benutzerbezogene OCR-Historie
// INPUT: username (Query oder Body), Records
// OUTPUT: {"success": true, ...} oder Fehler
// NEBENEFFEKTE: Schreibt in den history.Store
// ABHAENGIGKEITEN: gin-gonic/gin (extern), history (intern)
// HINWEISE: Store-Fehler liefern 500 {"success": false, "error": msg}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qazasd2518995/ocrproject/api"
	"github.com/qazasd2518995/ocrproject/history"
)

func toAPIRecord(r history.Record) api.HistoryRecord {
	return api.HistoryRecord{
		ID:       r.ID,
		Text:     r.Text,
		OCRType:  r.OCRType,
		Filename: r.Filename,
		Date:     r.Date,
		SyncedAt: r.SyncedAt,
		Extra:    r.Extra,
	}
}

func fromAPIRecord(r api.HistoryRecord) history.Record {
	return history.Record{
		ID:       r.ID,
		Text:     r.Text,
		OCRType:  r.OCRType,
		Filename: r.Filename,
		Date:     r.Date,
		SyncedAt: r.SyncedAt,
		Extra:    r.Extra,
	}
}

func toAPIRecords(records []history.Record) []api.HistoryRecord {
	out := make([]api.HistoryRecord, 0, len(records))
	for _, r := range records {
		out = append(out, toAPIRecord(r))
	}
	return out
}

// queryUsername liest ?username= oder bricht mit 400 ab
func queryUsername(c *gin.Context) (string, bool) {
	username := c.Query("username")
	if username == "" {
		abortHistoryError(c, errUsernameRequired)
		return "", false
	}
	return username, true
}

func (s *Server) ListHistoryHandler(c *gin.Context) {
	username, ok := queryUsername(c)
	if !ok {
		return
	}

	records, err := s.history.List(c.Request.Context(), username)
	if err != nil {
		abortHistoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.HistoryListResponse{Success: true, Data: toAPIRecords(records)})
}

func (s *Server) AddHistoryHandler(c *gin.Context) {
	var req api.HistoryAddRequest
	if err := bindJSON(c, &req); err != nil {
		abortHistoryError(c, err)
		return
	}

	if req.Username == "" {
		abortHistoryError(c, errUsernameRequired)
		return
	}
	if req.Record == nil {
		abortHistoryError(c, errRecordRequired)
		return
	}

	r, err := s.history.Add(c.Request.Context(), req.Username, fromAPIRecord(*req.Record))
	if err != nil {
		abortHistoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.HistoryAddResponse{Success: true, Message: "History added", Record: toAPIRecord(r)})
}

func (s *Server) DeleteHistoryHandler(c *gin.Context) {
	username, ok := queryUsername(c)
	if !ok {
		return
	}

	if err := s.history.Delete(c.Request.Context(), username, c.Param("id")); err != nil {
		abortHistoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Success: true, Message: "Record deleted"})
}

func (s *Server) ClearHistoryHandler(c *gin.Context) {
	username, ok := queryUsername(c)
	if !ok {
		return
	}

	if err := s.history.Clear(c.Request.Context(), username); err != nil {
		abortHistoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Success: true, Message: "History cleared"})
}

func (s *Server) SyncHistoryHandler(c *gin.Context) {
	var req api.HistorySyncRequest
	if err := bindJSON(c, &req); err != nil {
		abortHistoryError(c, err)
		return
	}

	if req.Username == "" {
		abortHistoryError(c, errUsernameRequired)
		return
	}

	local := make([]history.Record, 0, len(req.LocalHistory))
	for _, r := range req.LocalHistory {
		local = append(local, fromAPIRecord(r))
	}

	merged, err := s.history.Sync(c.Request.Context(), req.Username, local)
	if err != nil {
		abortHistoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.HistoryListResponse{Success: true, Data: toAPIRecords(merged), Message: "History synced"})
}
