package engine

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRemoteSuccess(t *testing.T) {
	var gotBody, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/execute" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(Response{Stack: []string{"4", "h"}})
	}))
	defer srv.Close()

	vs, err := NewRemote(srv.URL+"/", srv.Client()).Run(context.Background(), "2 2 +\n'h")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if gotBody != "2 2 +\n'h" {
		t.Errorf("body = %q", gotBody)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if got := Render(vs); got != "4, h" {
		t.Errorf("got %q", got)
	}
}

func TestRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(Response{Error: "unknown word: h"})
	}))
	defer srv.Close()

	_, err := NewRemote(srv.URL, srv.Client()).Run(context.Background(), "h")
	if err == nil || err.Error() != "unknown word: h" {
		t.Fatalf("err = %v", err)
	}
}

func TestRemotePlainTextFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad things", http.StatusBadRequest)
	}))
	defer srv.Close()

	_, err := NewRemote(srv.URL, srv.Client()).Run(context.Background(), "h")
	if err == nil || err.Error() != "bad things" {
		t.Fatalf("err = %v", err)
	}
}
