package recognizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIdentifyMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/identify", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "frame.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"employee_number":"EMP-0001","confidence":0.93}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	match, err := client.Identify(context.Background(), []byte("jpeg-bytes"), "frame.jpg")
	require.NoError(t, err)
	require.NotNil(t, match)
	require.Equal(t, "EMP-0001", match.EmployeeNumber)
	require.Equal(t, 0.93, match.Confidence)
}

func TestIdentifyNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"no matching face"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	match, err := client.Identify(context.Background(), []byte("jpeg-bytes"), "")
	require.NoError(t, err)
	require.Nil(t, match)
}

func TestIdentifyServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	_, err := client.Identify(context.Background(), []byte("jpeg-bytes"), "frame.jpg")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestIdentifyMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	_, err := client.Identify(context.Background(), []byte("jpeg-bytes"), "frame.jpg")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestIdentifyTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 50*time.Millisecond)
	_, err := client.Identify(context.Background(), []byte("jpeg-bytes"), "frame.jpg")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestIdentifyConnectionRefused(t *testing.T) {
	// Nothing listens here
	client := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.Identify(context.Background(), []byte("jpeg-bytes"), "frame.jpg")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestEnroll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/enroll", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "EMP-0002", r.FormValue("employee_number"))
		require.Equal(t, "Siti Nurhaliza", r.FormValue("name"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"enrolled"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	err := client.Enroll(context.Background(), "EMP-0002", "Siti Nurhaliza", []byte("jpeg-bytes"), "photo.jpg")
	require.NoError(t, err)
}

func TestEnrollRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"message":"no face detected in image"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, time.Second)
	err := client.Enroll(context.Background(), "EMP-0002", "Siti Nurhaliza", []byte("jpeg-bytes"), "photo.jpg")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnavailable) // a rejection is not a dead service
	require.Contains(t, err.Error(), "no face detected")
}
