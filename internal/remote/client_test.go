package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/remote"
)

func TestUpdatePageSections_SendsPayload(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody map[string][]remote.WireSection

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotAuth = r.Method, r.URL.Path, r.Header.Get("Authorization")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := remote.New(srv.URL+"/", 0)
	err := c.UpdatePageSections(context.Background(), "page-1", "tok", []remote.WireSection{{
		Type: "rich_text", SectionType: "RichText", SortOrder: 0, Visible: true, Name: "Rich text",
		Settings: map[string]any{"heading": "Hi"}, Config: map[string]any{"heading": "Hi"},
	}})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/pages/page-1/sections", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	require.Len(t, gotBody["sections"], 1)
	assert.Equal(t, "RichText", gotBody["sections"][0].SectionType)
	assert.Equal(t, "Hi", gotBody["sections"][0].Config["heading"])
}

func TestUpdatePageSections_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":{"message":"sortOrder must be unique"}}`))
	}))
	defer srv.Close()

	err := remote.New(srv.URL, time.Second).UpdatePageSections(context.Background(), "p", "tok", nil)
	var se *remote.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnprocessableEntity, se.StatusCode)
	assert.Equal(t, "sortOrder must be unique", se.Message)
}

func TestUpdatePageSections_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := remote.New(srv.URL, 0).UpdatePageSections(context.Background(), "p", "", nil)
	var se *remote.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "upstream down", se.Message)
}

func TestDisabledClient(t *testing.T) {
	c := remote.New("", 0)
	assert.False(t, c.Enabled())
	err := c.UpdatePageSections(context.Background(), "p", "tok", nil)
	assert.ErrorIs(t, err, remote.ErrDisabled)
}

func TestFetchPageSections_ResponseShapes(t *testing.T) {
	bodies := map[string]string{
		"wrapped": `{"sections":[{"type":"faq","sectionType":"FAQ","sortOrder":1,"visible":true,"name":"FAQ","settings":{"heading":"Q"}}]}`,
		"data":    `{"data":{"sections":[{"type":"faq","sortOrder":1,"visible":true,"name":"FAQ","config":{"heading":"Q"}}]}}`,
		"bare":    `[{"type":"faq","sortOrder":1,"visible":true,"name":"FAQ","settings":{"heading":"Q"}}]`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			got, err := remote.New(srv.URL, 0).FetchPageSections(context.Background(), "p", "tok")
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "faq", got[0].Type)
			assert.Equal(t, 1, got[0].SortOrder)
			assert.Equal(t, "Q", got[0].Settings["heading"])
		})
	}
}

func TestFetchPageSections_UnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	_, err := remote.New(srv.URL, 0).FetchPageSections(context.Background(), "p", "tok")
	assert.Error(t, err)
}
