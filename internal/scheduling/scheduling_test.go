package scheduling

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoadenus/CIS-3343-Group-Project-sub004/internal/domain"
)

func TestHTTPChecker_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("date"))
		w.Write([]byte(`{"available": true}`))
	}))
	defer srv.Close()

	checker := NewHTTPChecker(srv.URL, time.Second)
	err := checker.CheckAvailability(context.Background(), time.Now().Add(24*time.Hour))
	assert.NoError(t, err)
}

func TestHTTPChecker_SlotTaken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"available": false}`))
	}))
	defer srv.Close()

	checker := NewHTTPChecker(srv.URL, time.Second)
	err := checker.CheckAvailability(context.Background(), time.Now().Add(24*time.Hour))

	var conflict *domain.SchedulingConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestHTTPChecker_Unreachable(t *testing.T) {
	checker := NewHTTPChecker("http://127.0.0.1:1", 200*time.Millisecond)
	err := checker.CheckAvailability(context.Background(), time.Now().Add(24*time.Hour))

	var dep *domain.DependencyError
	require.ErrorAs(t, err, &dep)
}

func TestHTTPChecker_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	checker := NewHTTPChecker(srv.URL, time.Second)
	err := checker.CheckAvailability(context.Background(), time.Now().Add(24*time.Hour))

	var dep *domain.DependencyError
	require.ErrorAs(t, err, &dep)
}

func TestAlwaysAvailable(t *testing.T) {
	assert.NoError(t, AlwaysAvailable{}.CheckAvailability(context.Background(), time.Now()))
}
