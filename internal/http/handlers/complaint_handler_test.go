package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestComplaintHandler_Submit_InvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ComplaintHandler{svc: nil}
	r.POST("/complaints", handler.Submit)

	req, _ := http.NewRequest("POST", "/complaints", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComplaintHandler_Submit_InvalidResidentID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ComplaintHandler{svc: nil}
	r.POST("/complaints", handler.Submit)

	body := `{"title":"Noise complaint","category":"Noise","description":"Loud karaoke","resident_id":"not-a-uuid"}`
	req, _ := http.NewRequest("POST", "/complaints", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComplaintHandler_UpdateStatus_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ComplaintHandler{svc: nil}
	r.PATCH("/complaints/:id/status", handler.UpdateStatus)

	req, _ := http.NewRequest("PATCH", "/complaints/abc/status", strings.NewReader(`{"action":"ACCEPT"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestComplaintHandler_Get_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &ComplaintHandler{svc: nil}
	r.GET("/complaints/:id", handler.Get)

	req, _ := http.NewRequest("GET", "/complaints/-5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
