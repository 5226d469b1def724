package prefill

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProfileURL(t *testing.T) {
	valid := []string{
		"https://www.linkedin.com/in/janedoe",
		"https://linkedin.com/in/jane-doe-123/",
		"https://fr.linkedin.com/in/janedoe",
	}
	for _, u := range valid {
		assert.NoError(t, ValidateProfileURL(u), u)
	}

	invalid := []string{
		"",
		"not a url",
		"https://example.com/in/janedoe",
		"https://www.linkedin.com/company/acme",
	}
	for _, u := range invalid {
		assert.Error(t, ValidateProfileURL(u), u)
	}
}

func TestFetchHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Write([]byte("<html>page</html>"))
	}))
	defer server.Close()

	html, err := FetchHTML(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>page</html>", html)
}

func TestFetchHTML_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := FetchHTML(context.Background(), server.URL)
	require.Error(t, err)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "429")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("<html></html>"))
	assert.True(t, ShouldUseBrowser(""))

	var long string
	for len(long) < minContentLength {
		long += "<div>rendered content</div>"
	}
	assert.False(t, ShouldUseBrowser(long))
}
