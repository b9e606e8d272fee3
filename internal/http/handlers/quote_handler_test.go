package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestQuoteHandler_Create_Unauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &QuoteHandler{}
	r.POST("/quotes", handler.Create)

	req, _ := http.NewRequest("POST", "/quotes",
		strings.NewReader(`{"job_id":"00000000-0000-0000-0000-000000000001","message":"Сделаю","price":100}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQuoteHandler_Get_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &QuoteHandler{}
	r.GET("/quotes/:id", handler.Get)

	req, _ := http.NewRequest("GET", "/quotes/invalid-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteHandler_List_InvalidJobID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := &QuoteHandler{}
	r.GET("/quotes", handler.List)

	req, _ := http.NewRequest("GET", "/quotes?job_id=not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
