package solat

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestFetchMany(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		city := r.URL.Query().Get("cityid")
		if city == "9" {
			http.Error(w, "unknown city", http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"data": {"Prayer": {"Fajr": "05:0%s"}}}`, city)
	}))
	defer server.Close()

	base := *newTestClient(server.URL, time.Second)
	got := FetchMany(context.Background(), base, []int{1, 2, 9}, time.Now(), 2)

	want := map[int]Schedule{
		1: {"fajr": "05:01"},
		2: {"fajr": "05:02"},
		9: Fallback(),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FetchMany() = %v, want %v", got, want)
	}
	if base.CityID != 3 {
		t.Errorf("base client must not be modified, city id now %d", base.CityID)
	}
}

func TestFetchManyEmpty(t *testing.T) {
	got := FetchMany(context.Background(), Client{}, nil, time.Now(), 0)
	if len(got) != 0 {
		t.Errorf("expected no results, got %v", got)
	}
}
