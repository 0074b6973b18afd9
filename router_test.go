package authorpages

import (
	"net/http"
	"testing"
)

func TestStdRouter(t *testing.T) {
	mux := http.NewServeMux()
	r := NewRouter(mux)

	r.HandleMethod(http.MethodGet, "/handle", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("StdRouter HandleMethod"))
	}))
	rec := get(mux, "/handle")
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if rec.Body.String() != "StdRouter HandleMethod" {
		t.Errorf("expected body %q, got %q", "StdRouter HandleMethod", rec.Body.String())
	}
}

func TestMount(t *testing.T) {
	s := newTestServer(t)
	{
		r := NewRouter(http.NewServeMux())
		Mount(r, "/", s)
		rec := get(r, "/author/jane/recipes")
		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if rec.Body.String() != "recipes of jane (recipes)" {
			t.Errorf("unexpected body %q", rec.Body.String())
		}
	}
	{
		r := NewRouter(http.NewServeMux())
		Mount(r, "/blog/", s)
		rec := get(r, "/blog/author/jane")
		if rec.Body.String() != "author jane" {
			t.Errorf("unexpected body %q", rec.Body.String())
		}
		rec = get(r, "/author/jane")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected status %d outside the prefix, got %d", http.StatusNotFound, rec.Code)
		}
	}
}
